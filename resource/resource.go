/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resource provides the resolved resource manifest: a mapping from
// served paths to resource metadata plus the ordered load path.
package resource

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"slices"
	"strings"
)

// Kind identifies where a resource's content comes from.
type Kind string

const (
	// KindFile resources are read from disk.
	KindFile Kind = "file"
	// KindContent resources carry literal content.
	KindContent Kind = "content"
	// KindBackend resources are proxied to a remote address.
	KindBackend Kind = "backend"
	// KindCombine resources concatenate other resources.
	KindCombine Kind = "combine"
)

// Resource is a single served artifact.
type Resource struct {
	// Path is the normalized served path (leading slash).
	Path string `yaml:"-" json:"-"`

	Kind Kind `yaml:"kind" json:"kind"`

	// Content is the literal or file content.
	Content string `yaml:"content,omitempty" json:"content,omitempty"`

	// File is the absolute source file for KindFile resources.
	File string `yaml:"file,omitempty" json:"file,omitempty"`

	// Backend is the proxy target URL for KindBackend resources.
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`

	// Combine lists the normalized paths concatenated by KindCombine resources.
	Combine []string `yaml:"combine,omitempty" json:"combine,omitempty"`

	Headers   map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Etag      string            `yaml:"etag,omitempty" json:"etag,omitempty"`
	Cacheable bool              `yaml:"cacheable,omitempty" json:"cacheable,omitempty"`
	Minify    bool              `yaml:"minify,omitempty" json:"minify,omitempty"`

	pending bool
}

// Pending reports whether the resource is a placeholder for an in-flight read.
func (r *Resource) Pending() bool {
	return r.pending
}

// Clone returns a deep copy of the resource.
func (r *Resource) Clone() *Resource {
	c := *r
	c.Combine = slices.Clone(r.Combine)
	c.Headers = maps.Clone(r.Headers)
	return &c
}

// Etag returns the hex SHA-256 digest of content.
func Etag(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// NormalizePath returns p with exactly one leading slash.
func NormalizePath(p string) string {
	return "/" + strings.TrimLeft(p, "/")
}
