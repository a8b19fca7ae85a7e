/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package group resolves a single configuration group into a resource set.
package group

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/busterjs/buster-configuration/builder"
	"github.com/busterjs/buster-configuration/extension"
	busterfs "github.com/busterjs/buster-configuration/fs"
	"github.com/busterjs/buster-configuration/internal/logger"
	"github.com/busterjs/buster-configuration/resource"
)

// DefaultEnvironment is the environment of groups that do not declare one.
const DefaultEnvironment = "browser"

// Server is the parsed form of a group's server address.
type Server struct {
	Scheme string `yaml:"scheme" json:"scheme"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Path   string `yaml:"path" json:"path"`
}

// String returns the address the server was parsed from, normalized.
func (s *Server) String() string {
	host := s.Host
	if s.Port != 0 {
		host += ":" + strconv.Itoa(s.Port)
	}
	return s.Scheme + "://" + host + s.Path
}

// Configurer is implemented by extension modules.
type Configurer interface {
	Configure(g *Group) error
}

// Group is one independently resolvable unit of configuration.
type Group struct {
	Name        string
	RootPath    string
	Environment string
	Server      *Server
	Extensions  []string
	Options     map[string]any

	// Err is a configuration error found at creation. It is returned by
	// Resolve instead of doing any work.
	Err error

	decl   Declaration
	fs     busterfs.FileSystem
	loader extension.Loader
	events *Registry

	flight     singleflight.Group
	mu         sync.Mutex
	set        *resource.Set
	configured bool
}

// Option configures a Group.
type Option func(*Group)

// WithFileSystem sets the filesystem resources are read from.
func WithFileSystem(filesystem busterfs.FileSystem) Option {
	return func(g *Group) {
		g.fs = filesystem
	}
}

// WithLoader sets the loader used for extensions.
func WithLoader(l extension.Loader) Option {
	return func(g *Group) {
		g.loader = l
	}
}

// Create builds a group from decl. Relative rootPath values are resolved
// against root. Configuration errors do not fail Create; they are
// reported by Resolve.
func Create(decl Declaration, root string, opts ...Option) *Group {
	g := &Group{
		RootPath:    resolveRoot(root, decl.RootPath),
		Environment: decl.environment(),
		Extensions:  slices.Clone(decl.Extensions),
		Options:     decl.options(),
		decl:        decl,
		fs:          busterfs.NewOSFileSystem(),
		loader:      extension.Default,
		events:      NewRegistry(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.Err = decl.unknownOption()
	if decl.Server != "" {
		server, err := ParseServer(decl.Server)
		if err != nil && g.Err == nil {
			g.Err = err
		}
		g.Server = server
	}
	return g
}

// Extend creates a group from decl that inherits from g. See Merge.
// The new group shares g's filesystem and extension loader.
func (g *Group) Extend(decl Declaration, root string, opts ...Option) *Group {
	merged := Merge(g.Declaration(), decl)
	if decl.RootPath == "" {
		merged.RootPath = g.RootPath
	}
	base := []Option{WithFileSystem(g.fs), WithLoader(g.loader)}
	return Create(merged, root, append(base, opts...)...)
}

// Declaration returns the declaration the group was created from.
func (g *Group) Declaration() Declaration {
	return g.decl
}

// Merge returns the declaration of a group extending parent with child.
// Resources and load lists are the parent's followed by the child's.
// Environment, rootPath, server and options are inherited unless child
// sets them. Extensions are not inherited.
func Merge(parent, child Declaration) Declaration {
	pl, cl := parent.loadLists(), child.loadLists()

	merged := Declaration{
		Resources:   append(slices.Clone(parent.Resources), child.Resources...),
		Libs:        addUnique(pl[builder.Libs], cl[builder.Libs]),
		Sources:     addUnique(pl[builder.Sources], cl[builder.Sources]),
		TestLibs:    addUnique(pl[builder.TestLibs], cl[builder.TestLibs]),
		Tests:       addUnique(pl[builder.Tests], cl[builder.Tests]),
		Environment: parent.environment(),
		RootPath:    parent.RootPath,
		Server:      parent.Server,
		Extensions:  slices.Clone(child.Extensions),
		AutoRun:     parent.AutoRun,
		Options:     maps.Clone(parent.Options),
		Unknown:     maps.Clone(child.Unknown),
	}

	if child.Environment != "" || child.Env != "" {
		merged.Environment = child.environment()
	}
	if child.RootPath != "" {
		merged.RootPath = child.RootPath
	}
	if child.Server != "" {
		merged.Server = child.Server
	}
	if child.AutoRun != nil {
		merged.AutoRun = child.AutoRun
	}
	if len(child.Options) > 0 {
		if merged.Options == nil {
			merged.Options = make(map[string]any)
		}
		maps.Copy(merged.Options, child.Options)
	}
	return merged
}

var schemePattern = regexp.MustCompile(`(?i)^[a-z]+://`)

// ParseServer parses an address such as "localhost:1111/buster". The
// scheme defaults to http and the path to "/".
func ParseServer(address string) (*Server, error) {
	if !schemePattern.MatchString(address) {
		address = "http://" + address
	}
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidServer, address, err)
	}

	s := &Server{Scheme: u.Scheme, Host: u.Hostname(), Path: u.Path}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidServer, address, err)
		}
		s.Port = port
	}
	if s.Path == "" {
		s.Path = "/"
	}
	return s, nil
}

// On registers a listener for a group event such as "load:libs".
func (g *Group) On(event string, l Listener) {
	g.events.On(event, l)
}

// ResourceSet returns the resolved set, or nil before a successful Resolve.
func (g *Group) ResourceSet() *resource.Set {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.set
}

// LoadLists returns the group's four load categories with aliases merged.
func (g *Group) LoadLists() builder.LoadLists {
	return g.decl.loadLists()
}

// Resources returns the declared resources.
func (g *Group) Resources() []ResourceDecl {
	return slices.Clone(g.decl.Resources)
}

// Resolve builds the group's resource set. A resolved set is returned
// as is on later calls, and concurrent callers share one resolution.
// A failed resolution is not remembered and may be retried.
func (g *Group) Resolve(ctx context.Context) (*resource.Set, error) {
	if set := g.ResourceSet(); set != nil {
		return set, nil
	}
	if g.Err != nil {
		return nil, g.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := g.flight.DoChan("resolve", func() (any, error) {
		return g.resolve(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*resource.Set), nil
	}
}

func (g *Group) resolve(ctx context.Context) (*resource.Set, error) {
	if set := g.ResourceSet(); set != nil {
		return set, nil
	}

	if err := g.loadExtensions(); err != nil {
		return nil, err
	}

	logger.Debug("resolving group %s in %s", g.describe(), g.RootPath)

	b := builder.New(g.fs, g.RootPath)
	if err := b.AddResources(ctx, g.decl.Resources); err != nil {
		return nil, err
	}

	g.events.Emit(&Event{
		Name:        EventLoadResources,
		Group:       g,
		Root:        g.RootPath,
		ResourceSet: b.ResourceSet(),
	})

	hook := func(c builder.Category, paths []string) []string {
		ev := &Event{
			Name:        c.Event(),
			Group:       g,
			Category:    c,
			Paths:       slices.Clone(paths),
			Root:        g.RootPath,
			ResourceSet: b.ResourceSet(),
		}
		g.events.Emit(ev)
		return ev.Paths
	}
	if err := b.AddAllLoadEntries(ctx, g.decl.loadLists(), hook); err != nil {
		return nil, err
	}

	set := b.ResourceSet()
	g.mu.Lock()
	g.set = set
	g.mu.Unlock()

	logger.Debug("resolved group %s: %d resources, %d load entries", g.describe(), set.Len(), len(set.Load()))
	return set, nil
}

// loadExtensions configures every extension once. Nothing is remembered
// if one of them fails.
func (g *Group) loadExtensions() error {
	g.mu.Lock()
	done := g.configured
	g.mu.Unlock()
	if done {
		return nil
	}

	for _, name := range g.Extensions {
		module, err := g.loader.Load(name)
		if err != nil {
			return &ExtensionError{Err: err}
		}
		c, ok := module.(Configurer)
		if !ok {
			return &ExtensionError{Err: fmt.Errorf("Extension '%s' %w", name, ErrNoConfigure)}
		}
		if err := c.Configure(g); err != nil {
			return &ExtensionError{Err: err}
		}
	}

	g.mu.Lock()
	g.configured = true
	g.mu.Unlock()
	return nil
}

func (g *Group) describe() string {
	if g.Name != "" {
		return g.Name
	}
	return "(unnamed)"
}

func resolveRoot(root, rootPath string) string {
	switch {
	case rootPath == "":
		return filepath.Clean(root)
	case filepath.IsAbs(rootPath):
		return filepath.Clean(rootPath)
	default:
		return filepath.Join(root, rootPath)
	}
}
