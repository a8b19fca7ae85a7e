/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package builder turns resource declarations and load patterns into a
// resource set.
package builder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	busterfs "github.com/busterjs/buster-configuration/fs"
	"github.com/busterjs/buster-configuration/internal/logger"
	"github.com/busterjs/buster-configuration/resolver"
	"github.com/busterjs/buster-configuration/resource"
)

// Builder populates a resource set for one project root.
type Builder struct {
	fs       busterfs.FileSystem
	resolver *resolver.Resolver
	set      *resource.Set
}

// New creates a builder that writes into a fresh resource set.
func New(filesystem busterfs.FileSystem, root string) *Builder {
	return NewWithSet(filesystem, root, resource.NewSet())
}

// NewWithSet creates a builder that writes into set.
func NewWithSet(filesystem busterfs.FileSystem, root string, set *resource.Set) *Builder {
	return &Builder{
		fs:       filesystem,
		resolver: resolver.New(filesystem, root),
		set:      set,
	}
}

// ResourceSet returns the set being built.
func (b *Builder) ResourceSet() *resource.Set {
	return b.set
}

// Resolver returns the path resolver anchored at the builder's root.
func (b *Builder) Resolver() *resolver.Resolver {
	return b.resolver
}

// readJob is a pending file read into the served path.
type readJob struct {
	served string
	file   string
	meta   resource.Resource
}

// AddResource adds a single declaration.
func (b *Builder) AddResource(ctx context.Context, d Decl) error {
	return b.AddResources(ctx, []Decl{d})
}

// AddResources adds every declaration to the resource set. Declarations
// are validated first, then file patterns are globbed concurrently,
// entries are registered in declaration order and finally file contents
// are read concurrently. The first error wins.
func (b *Builder) AddResources(ctx context.Context, decls []Decl) error {
	for _, d := range decls {
		if err := d.Validate(); err != nil {
			return err
		}
	}

	matches := make([][]string, len(decls))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range decls {
		if d.Kind() != resource.KindFile {
			continue
		}
		g.Go(func() error {
			m, err := b.expandFilePattern(gctx, d)
			matches[i] = m
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var jobs []readJob
	for i, d := range decls {
		switch d.Kind() {
		case resource.KindFile:
			j, err := b.registerFiles(d, matches[i])
			if err != nil {
				return err
			}
			jobs = append(jobs, j...)
		case resource.KindContent:
			r := d.meta(resource.KindContent)
			r.Content = *d.Content
			if err := b.set.Add(d.Path, r); err != nil {
				return err
			}
		case resource.KindBackend:
			r := d.meta(resource.KindBackend)
			r.Backend = d.Backend
			if err := b.set.Add(d.Path, r); err != nil {
				return err
			}
		case resource.KindCombine:
			if err := b.addCombine(ctx, d); err != nil {
				return err
			}
		}
	}

	return b.readAll(ctx, jobs)
}

// AddFileResources adds root-relative paths as plain file resources.
func (b *Builder) AddFileResources(ctx context.Context, paths []string) error {
	jobs := make([]readJob, 0, len(paths))
	for _, p := range paths {
		j := readJob{
			served: p,
			file:   b.resolver.Absolute(p),
			meta:   resource.Resource{Kind: resource.KindFile},
		}
		b.set.AddPending(j.served, j.file)
		jobs = append(jobs, j)
	}
	return b.readAll(ctx, jobs)
}

// expandFilePattern globs a file declaration. A literal pattern with no
// match is kept so the read reports the I/O error; a glob with no match
// is an error.
func (b *Builder) expandFilePattern(ctx context.Context, d Decl) ([]string, error) {
	pattern := d.File
	if pattern == "" {
		pattern = d.Path
	}

	matches, err := b.resolver.Resolve(ctx, []string{pattern}, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches, nil
	}

	if resolver.ContainsGlob(pattern) {
		return nil, &resolver.NoMatchError{Patterns: []string{pattern}}
	}

	abs := b.resolver.Absolute(pattern)
	if b.resolver.Outside(abs) {
		return nil, &resolver.OutsideRootError{Root: b.resolver.Root, Paths: []string{abs}}
	}
	return []string{b.resolver.Relative(abs)}, nil
}

func (b *Builder) registerFiles(d Decl, matches []string) ([]readJob, error) {
	if d.File != "" && d.Path != "" && len(matches) > 1 {
		return nil, fmt.Errorf("resource %s (%s): %w", d.Path, d.File, ErrAmbiguousPath)
	}

	jobs := make([]readJob, 0, len(matches))
	for _, m := range matches {
		served := m
		if d.File != "" && d.Path != "" {
			served = d.Path
		}
		j := readJob{
			served: served,
			file:   b.resolver.Absolute(m),
			meta:   d.meta(resource.KindFile),
		}
		b.set.AddPending(j.served, j.file)
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// addCombine expands glob entries against known resources and the disk,
// then stores the combine resource. Literal entries are kept as declared
// so a missing one is reported by name.
func (b *Builder) addCombine(ctx context.Context, d Decl) error {
	var combine []string
	for _, entry := range d.Combine {
		if !resolver.ContainsGlob(entry) {
			combine = append(combine, entry)
			continue
		}
		matches, err := b.resolver.Resolve(ctx, []string{entry}, b.set.Has)
		if err != nil {
			return err
		}
		combine = append(combine, matches...)
	}

	r := d.meta(resource.KindCombine)
	r.Combine = combine
	return b.set.Add(d.Path, r)
}

// readAll reads every job concurrently. A failed read removes its
// placeholder so it never stays visible.
func (b *Builder) readAll(ctx context.Context, jobs []readJob) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				b.set.RemovePending(j.served)
				return err
			}

			data, err := b.fs.ReadFile(j.file)
			if err != nil {
				b.set.RemovePending(j.served)
				return err
			}
			logger.Debug("read %s (%d bytes)", j.file, len(data))

			r := j.meta
			r.Content = string(data)
			r.File = j.file
			_, err = b.set.FillPending(j.served, r)
			return err
		})
	}
	return g.Wait()
}
