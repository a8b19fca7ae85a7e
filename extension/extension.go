/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package extension loads named extension modules. Extensions register
// themselves under a name, usually from an init function, and groups look
// them up by the names listed in their configuration.
package extension

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrModuleNotFound indicates no module is registered under a name.
var ErrModuleNotFound = errors.New("module not found")

// NotFoundError reports a missing module by name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Cannot find module '%s'", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrModuleNotFound
}

// Loader loads an extension module by name. What the module must provide
// is up to the caller.
type Loader interface {
	Load(name string) (any, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (any, error)

// Load calls f(name).
func (f LoaderFunc) Load(name string) (any, error) {
	return f(name)
}

// Registry is a Loader backed by registered modules.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]any)}
}

// Register makes module available under name, replacing any previous one.
func (r *Registry) Register(name string, module any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[name] = module
}

// Load implements Loader.
func (r *Registry) Load(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return m, nil
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for n := range r.modules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry used when no loader is configured.
var Default = NewRegistry()

// Register adds module to the Default registry.
func Register(name string, module any) {
	Default.Register(name, module)
}
