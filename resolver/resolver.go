/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver expands path and glob patterns against a project root.
package resolver

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	busterfs "github.com/busterjs/buster-configuration/fs"
)

// Resolver resolves patterns relative to Root.
type Resolver struct {
	Root string
	FS   busterfs.FileSystem
}

// New creates a resolver anchored at root, which must be absolute.
func New(filesystem busterfs.FileSystem, root string) *Resolver {
	return &Resolver{Root: filepath.Clean(root), FS: filesystem}
}

// Absolute maps a pattern to an absolute path. Absolute patterns that
// already lie under the root are kept; every other pattern, including one
// with a leading slash, is joined onto the root.
func (r *Resolver) Absolute(pattern string) string {
	if filepath.IsAbs(pattern) {
		cleaned := filepath.Clean(pattern)
		if r.inside(cleaned) {
			return cleaned
		}
	}
	return filepath.Join(r.Root, pattern)
}

// Relative returns the slash-separated path of abs relative to the root.
func (r *Resolver) Relative(abs string) string {
	rel, err := filepath.Rel(r.Root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// Outside reports whether abs escapes the root.
func (r *Resolver) Outside(abs string) bool {
	return !r.inside(filepath.Clean(abs))
}

func (r *Resolver) inside(abs string) bool {
	if abs == r.Root {
		return true
	}
	root := r.Root
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, root)
}

// Glob returns the absolute paths of regular files matching pattern.
// A pattern without glob characters matches itself if the file exists.
func (r *Resolver) Glob(ctx context.Context, pattern string) ([]string, error) {
	abs := r.Absolute(pattern)

	if !ContainsGlob(abs) {
		if !busterfs.IsFile(r.FS, abs) {
			return nil, nil
		}
		return []string{abs}, nil
	}

	return r.expandGlob(ctx, abs)
}

// Resolve expands patterns in order and returns the root-relative matches,
// first occurrence winning. A pattern that matches nothing on disk but
// names a resource for which known returns true is kept as a literal.
// Matches outside the root fail with a single *OutsideRootError.
func (r *Resolver) Resolve(ctx context.Context, patterns []string, known func(path string) bool) ([]string, error) {
	var (
		result  []string
		outside []string
		seen    = make(map[string]bool)
	)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		matches, err := r.Glob(ctx, pattern)
		if err != nil {
			return nil, err
		}

		if len(matches) == 0 && known != nil && !ContainsGlob(pattern) {
			literal := strings.TrimLeft(filepath.ToSlash(pattern), "/")
			if known(literal) {
				add(literal)
			}
			continue
		}

		for _, m := range matches {
			if r.Outside(m) {
				outside = append(outside, m)
				continue
			}
			add(r.Relative(m))
		}
	}

	if len(outside) > 0 {
		return nil, &OutsideRootError{Root: r.Root, Paths: outside}
	}

	return result, nil
}

// ContainsGlob returns true if the pattern contains glob characters.
func ContainsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob walks the non-glob prefix of pattern and matches every file
// below it with doublestar.
func (r *Resolver) expandGlob(ctx context.Context, pattern string) ([]string, error) {
	baseDir := pattern
	for ContainsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}

	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))
	relPattern = filepath.ToSlash(relPattern)

	// Without ** a match can be at most this many segments deep
	maxDepth := -1
	if !strings.Contains(relPattern, "**") {
		maxDepth = strings.Count(relPattern, "/") + 1
	}

	var matches []string

	err := fs.WalkDir(r.FS, baseDir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			// Skip directories we can't read
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		relPath := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(path, baseDir), string(filepath.Separator)))

		if d.IsDir() {
			if maxDepth > 0 && relPath != "" && strings.Count(relPath, "/")+1 >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if matched, _ := doublestar.Match(relPattern, relPath); matched {
			matches = append(matches, filepath.Clean(path))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return matches, nil
}
