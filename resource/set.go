/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resource

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Set is a resolved resource manifest. It is safe for concurrent use:
// resource declarations of one group write into it from several goroutines.
type Set struct {
	mu        sync.RWMutex
	resources map[string]*Resource
	load      []string
	loaded    map[string]bool
}

// NewSet creates an empty resource set.
func NewSet() *Set {
	return &Set{
		resources: make(map[string]*Resource),
		loaded:    make(map[string]bool),
	}
}

// Add validates r and stores it under path, replacing any existing entry.
// The etag is computed from the content unless one is given.
func (s *Set) Add(path string, r Resource) error {
	if err := validate(path, r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(path, r)
}

func validate(path string, r Resource) error {
	if strings.HasPrefix(path, ".") {
		return fmt.Errorf("%w: %s", ErrRelativePath, path)
	}

	switch r.Kind {
	case KindContent, KindFile, KindCombine:
	case KindBackend:
		if r.Backend == "" {
			return fmt.Errorf("%w: %s", ErrEmptyResource, path)
		}
	default:
		if r.Etag == "" {
			return fmt.Errorf("%w: %s", ErrEmptyResource, path)
		}
	}
	return nil
}

func (s *Set) putLocked(path string, r Resource) error {
	if r.Kind == KindCombine {
		combine := make([]string, 0, len(r.Combine))
		for _, p := range r.Combine {
			np := NormalizePath(p)
			if _, ok := s.resources[np]; !ok {
				return fmt.Errorf("%w %s", ErrCombineMissing, p)
			}
			combine = append(combine, np)
		}
		r.Combine = combine
	}

	if r.Etag == "" && (r.Kind == KindContent || (r.Kind == KindFile && !r.pending)) {
		r.Etag = Etag(r.Content)
	}

	res := r.Clone()
	res.Path = NormalizePath(path)
	s.resources[res.Path] = res
	return nil
}

// AddPending registers a placeholder for a file whose content is still
// being read. It keeps combine and load references valid in the meantime.
func (s *Set) AddPending(path, file string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	np := NormalizePath(path)
	s.resources[np] = &Resource{Path: np, Kind: KindFile, File: file, pending: true}
}

// FillPending replaces the placeholder at path with r. It reports false,
// leaving the set untouched, when the entry is no longer a placeholder
// because a later declaration claimed the path.
func (s *Set) FillPending(path string, r Resource) (bool, error) {
	if err := validate(path, r); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.resources[NormalizePath(path)]
	if !ok || !cur.pending {
		return false, nil
	}
	return true, s.putLocked(path, r)
}

// RemovePending removes the entry at path if it is still a placeholder.
func (s *Set) RemovePending(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	np := NormalizePath(path)
	if r, ok := s.resources[np]; ok && r.pending {
		delete(s.resources, np)
	}
}

// Remove deletes the resource at path and drops it from the load path.
func (s *Set) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	np := NormalizePath(path)
	delete(s.resources, np)
	if s.loaded[np] {
		delete(s.loaded, np)
		s.load = slices.DeleteFunc(s.load, func(p string) bool { return p == np })
	}
}

// Get returns a copy of the resource at path.
func (s *Set) Get(path string) (*Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[NormalizePath(path)]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Has reports whether a resource (pending or not) exists at path.
func (s *Set) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.resources[NormalizePath(path)]
	return ok
}

// AppendToLoad appends paths to the load path. Entries already present
// keep their first position. Every path must name an existing resource.
func (s *Set) AppendToLoad(paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	add, err := s.newLoadEntriesLocked(paths)
	if err != nil {
		return err
	}
	s.load = append(s.load, add...)
	return nil
}

// PrependToLoad inserts paths at the front of the load path.
func (s *Set) PrependToLoad(paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	add, err := s.newLoadEntriesLocked(paths)
	if err != nil {
		return err
	}
	s.load = append(add, s.load...)
	return nil
}

func (s *Set) newLoadEntriesLocked(paths []string) ([]string, error) {
	var add []string
	for _, p := range paths {
		np := NormalizePath(p)
		if _, ok := s.resources[np]; !ok {
			return nil, fmt.Errorf("cannot load %w %s", ErrNotFound, p)
		}
		if s.loaded[np] {
			continue
		}
		s.loaded[np] = true
		add = append(add, np)
	}
	return add, nil
}

// Load returns the ordered load path.
func (s *Set) Load() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.load)
}

// Paths returns every resource path, sorted.
func (s *Set) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.resources))
	for p := range s.resources {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of resources.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

// Manifest is the serializable form of a Set.
type Manifest struct {
	Resources map[string]*Resource `yaml:"resources" json:"resources"`
	Load      []string             `yaml:"load" json:"load"`
}

// Manifest returns a snapshot of the set.
func (s *Set) Manifest() Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := Manifest{
		Resources: make(map[string]*Resource, len(s.resources)),
		Load:      slices.Clone(s.load),
	}
	for p, r := range s.resources {
		m.Resources[p] = r.Clone()
	}
	if m.Load == nil {
		m.Load = []string{}
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Manifest())
}

// MarshalYAML implements yaml.Marshaler.
func (s *Set) MarshalYAML() (any, error) {
	return s.Manifest(), nil
}
