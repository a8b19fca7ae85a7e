/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"path/filepath"
	"strings"
)

// OutsideRootError reports glob matches that escaped the project root.
type OutsideRootError struct {
	Root string

	// Paths are the offending absolute paths.
	Paths []string
}

func (e *OutsideRootError) Error() string {
	lead := "A path is "
	if len(e.Paths) > 1 {
		lead = "Some paths are "
	}

	rel := make([]string, 0, len(e.Paths))
	for _, p := range e.Paths {
		r, err := filepath.Rel(e.Root, p)
		if err != nil {
			r = p
		}
		rel = append(rel, filepath.ToSlash(r))
	}

	return lead + "outside the project root. Set rootPath to the desired root\n" +
		"to refer to paths outside the configuration file directory.\n  " +
		strings.Join(rel, "\n  ")
}

// NoMatchError reports patterns that were required to match but did not.
type NoMatchError struct {
	Patterns []string
}

func (e *NoMatchError) Error() string {
	return strings.Join(e.Patterns, ", ") + " matched no files"
}
