/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides testing utilities for buster-configuration.
package testutil

import (
	"path"
	"testing"

	"github.com/busterjs/buster-configuration/internal/mapfs"
)

// ProjectRoot is the root directory of the fixture project.
const ProjectRoot = "/home/christian/myproj"

// NewMapFS returns an in-memory filesystem holding files, keyed by paths
// relative to rootPath (absolute keys are used as-is).
func NewMapFS(t *testing.T, rootPath string, files map[string]string) *mapfs.MapFileSystem {
	t.Helper()

	mfs := mapfs.New()
	for name, content := range files {
		p := name
		if !path.IsAbs(p) {
			p = path.Join(rootPath, name)
		}
		mfs.AddFile(p, content, 0644)
	}
	return mfs
}

// NewProjectFS returns the standard fixture project rooted at ProjectRoot:
// two top-level scripts, two sources, two tests and a config file one
// level above the root.
func NewProjectFS(t *testing.T) *mapfs.MapFileSystem {
	t.Helper()

	mfs := NewMapFS(t, ProjectRoot, map[string]string{
		"foo.js":         "var thisIsTheFoo = 5;",
		"bar.js":         "var helloFromBar = 1;",
		"src/1.js":       "1.js",
		"src/2.js":       "2.js",
		"test/1-test.js": "1-test.js",
		"test/2-test.js": "2-test.js",
	})
	mfs.AddFile(path.Join(path.Dir(ProjectRoot), "buster.js"), "module.exports = {};", 0644)
	return mfs
}
