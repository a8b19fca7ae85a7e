/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resource

import "errors"

// Sentinel errors for resource set operations.
var (
	// ErrRelativePath indicates a resource path starting with "." was added.
	ErrRelativePath = errors.New("path can not be relative")

	// ErrCombineMissing indicates a combine resource named an unknown resource.
	ErrCombineMissing = errors.New("cannot combine non-existent resource")

	// ErrNotFound indicates a lookup or load entry for an unknown resource.
	ErrNotFound = errors.New("non-existent resource")

	// ErrEmptyResource indicates a resource with no content, file, backend or combine.
	ErrEmptyResource = errors.New("received no resource etag, content, file, backend or combine")
)
