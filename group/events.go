/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package group

import (
	"sync"

	"github.com/busterjs/buster-configuration/builder"
	"github.com/busterjs/buster-configuration/resource"
)

// Event names emitted while a group resolves.
const (
	EventLoadResources = "load:resources"
	EventLoadLibs      = "load:libs"
	EventLoadSources   = "load:sources"
	EventLoadTestLibs  = "load:testLibs"
	EventLoadTests     = "load:tests"
)

// Event is passed to listeners. For load category events a listener may
// replace or edit Paths; the result is what gets appended to the load path.
type Event struct {
	Name     string
	Group    *Group
	Category builder.Category
	Paths    []string
	Root     string
	// ResourceSet is the set under construction.
	ResourceSet *resource.Set
}

// Listener handles an event.
type Listener func(*Event)

type registration struct {
	event    string
	listener Listener
}

// Registry is an ordered list of event listeners.
type Registry struct {
	mu      sync.RWMutex
	entries []registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// On registers l for event.
func (r *Registry) On(event string, l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, registration{event: event, listener: l})
}

// Emit calls every listener registered for ev.Name in registration order.
func (r *Registry) Emit(ev *Event) {
	r.mu.RLock()
	var ls []Listener
	for _, e := range r.entries {
		if e.event == ev.Name {
			ls = append(ls, e.listener)
		}
	}
	r.mu.RUnlock()

	for _, l := range ls {
		l(ev)
	}
}

// Each calls fn for every registration, in order.
func (r *Registry) Each(fn func(event string, l Listener)) {
	r.mu.RLock()
	entries := append([]registration(nil), r.entries...)
	r.mu.RUnlock()

	for _, e := range entries {
		fn(e.event, e.listener)
	}
}
