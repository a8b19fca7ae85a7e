/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import "errors"

// Sentinel errors for resource declarations. All of them are configuration
// errors detected before any file is read.
var (
	// ErrConflictingSource indicates more than one of content, backend and combine.
	ErrConflictingSource = errors.New("can only have one of content, combine and backend")

	// ErrInvalidBackend indicates a backend that is not a URL with a host.
	ErrInvalidBackend = errors.New("proxy resource backend is invalid")

	// ErrMissingPath indicates a declaration with neither path nor file.
	ErrMissingPath = errors.New("has no path property")

	// ErrAmbiguousPath indicates an explicit path for a file glob matching several files.
	ErrAmbiguousPath = errors.New("explicit path matches more than one file")
)
