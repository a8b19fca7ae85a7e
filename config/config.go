/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config manages the named groups of a buster configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/busterjs/buster-configuration/extension"
	busterfs "github.com/busterjs/buster-configuration/fs"
	"github.com/busterjs/buster-configuration/group"
)

var (
	// ErrUnknownParent indicates an extends reference to a group that
	// has not been added.
	ErrUnknownParent = errors.New("cannot extend unknown group")

	// ErrDuplicateGroup indicates a group name that is already taken.
	ErrDuplicateGroup = errors.New("duplicate group")
)

// Configuration is an ordered collection of named groups.
type Configuration struct {
	mu        sync.RWMutex
	groups    []*group.Group
	listeners *group.Registry
	fs        busterfs.FileSystem
	loader    extension.Loader
}

// Option configures a Configuration.
type Option func(*Configuration)

// WithFileSystem sets the filesystem used by every group and by LoadFile.
func WithFileSystem(filesystem busterfs.FileSystem) Option {
	return func(c *Configuration) {
		c.fs = filesystem
	}
}

// WithLoader sets the extension loader used by every group.
func WithLoader(l extension.Loader) Option {
	return func(c *Configuration) {
		c.loader = l
	}
}

// New creates an empty configuration.
func New(opts ...Option) *Configuration {
	c := &Configuration{
		listeners: group.NewRegistry(),
		fs:        busterfs.NewOSFileSystem(),
		loader:    extension.Default,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Groups returns the groups in declaration order.
func (c *Configuration) Groups() []*group.Group {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.groups)
}

// Group returns the group called name.
func (c *Configuration) Group(name string) (*group.Group, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.findLocked(name)
}

func (c *Configuration) findLocked(name string) (*group.Group, bool) {
	for _, g := range c.groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// AddGroup creates a group from decl and appends it. A declaration with
// extends is built on top of the named group, which must already exist.
// Every listener registered with On is attached to the new group.
func (c *Configuration) AddGroup(name string, decl group.Declaration, root string) (*group.Group, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findLocked(name); ok {
		return nil, fmt.Errorf("%w %q", ErrDuplicateGroup, name)
	}

	var g *group.Group
	if decl.Extends != "" {
		parent, ok := c.findLocked(decl.Extends)
		if !ok {
			return nil, fmt.Errorf("%w %q from %q", ErrUnknownParent, decl.Extends, name)
		}
		g = parent.Extend(decl, root)
	} else {
		g = group.Create(decl, root, group.WithFileSystem(c.fs), group.WithLoader(c.loader))
	}

	g.Name = name
	c.listeners.Each(g.On)
	c.groups = append(c.groups, g)
	return g, nil
}

// ResolveGroups resolves every group concurrently. The first failure is
// returned, annotated with the name of the group that failed.
func (c *Configuration) ResolveGroups(ctx context.Context) ([]*group.Group, error) {
	groups := c.Groups()

	eg, egctx := errgroup.WithContext(ctx)
	for _, g := range groups {
		eg.Go(func() error {
			if _, err := g.Resolve(egctx); err != nil {
				return fmt.Errorf("group %s: %w", g.Name, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}

// FilterEnv keeps only the groups whose environment is env. An empty env
// keeps every group.
func (c *Configuration) FilterEnv(env string) *Configuration {
	if env == "" {
		return c
	}
	return c.filter(func(g *group.Group) bool {
		return g.Environment == env
	})
}

// FilterGroup keeps only the groups whose name matches re. A nil re keeps
// every group.
func (c *Configuration) FilterGroup(re *regexp.Regexp) *Configuration {
	if re == nil {
		return c
	}
	return c.filter(func(g *group.Group) bool {
		return re.MatchString(g.Name)
	})
}

func (c *Configuration) filter(keep func(*group.Group) bool) *Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.groups = slices.DeleteFunc(c.groups, func(g *group.Group) bool {
		return !keep(g)
	})
	return c
}

// On registers l for event on every current group and on every group
// added later.
func (c *Configuration) On(event string, l group.Listener) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.listeners.On(event, l)
	for _, g := range c.groups {
		g.On(event, l)
	}
}
