/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/busterjs/buster-configuration/resource"
)

// Decl is a single entry of a group's resources list.
// It can be specified as a simple string path or as an object.
type Decl struct {
	// Path is the served path, or the file pattern when File is empty.
	Path string `yaml:"path" json:"path"`

	// File is the disk file (or glob) to serve at Path.
	File string `yaml:"file" json:"file"`

	// Content is literal content. Nil means absent; "" is empty content.
	Content *string `yaml:"content" json:"content"`

	// Backend is the proxy target URL.
	Backend string `yaml:"backend" json:"backend"`

	// Combine lists the resources concatenated into this one.
	Combine []string `yaml:"combine" json:"combine"`

	Headers   map[string]string `yaml:"headers" json:"headers"`
	Etag      string            `yaml:"etag" json:"etag"`
	Cacheable bool              `yaml:"cacheable" json:"cacheable"`
	Minify    bool              `yaml:"minify" json:"minify"`
}

// FileDecl declares a file (or glob) resource.
func FileDecl(path string) Decl {
	return Decl{Path: path}
}

// ContentDecl declares an inline content resource.
func ContentDecl(path, content string) Decl {
	return Decl{Path: path, Content: &content}
}

// BackendDecl declares a proxy resource.
func BackendDecl(path, backend string) Decl {
	return Decl{Path: path, Backend: backend}
}

// CombineDecl declares a resource concatenating paths.
func CombineDecl(path string, paths ...string) Decl {
	return Decl{Path: path, Combine: paths}
}

// UnmarshalYAML handles both string and object forms for Decl.
func (d *Decl) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Path = node.Value
		return nil
	}

	type rawDecl Decl
	return node.Decode((*rawDecl)(d))
}

// UnmarshalJSON handles both string and object forms for Decl.
func (d *Decl) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Path = s
		return nil
	}

	type rawDecl Decl
	return json.Unmarshal(data, (*rawDecl)(d))
}

// Kind reports which content source the declaration uses.
func (d Decl) Kind() resource.Kind {
	switch {
	case d.Content != nil:
		return resource.KindContent
	case d.Backend != "":
		return resource.KindBackend
	case d.Combine != nil:
		return resource.KindCombine
	default:
		return resource.KindFile
	}
}

func (d Decl) String() string {
	if d.File != "" {
		return fmt.Sprintf("{path: %q, file: %q}", d.Path, d.File)
	}
	return fmt.Sprintf("{path: %q}", d.Path)
}

// Validate checks the declaration without touching the filesystem.
func (d Decl) Validate() error {
	sources := 0
	if d.Content != nil {
		sources++
	}
	if d.Backend != "" {
		sources++
	}
	if d.Combine != nil {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("resource %s: %w", d.Path, ErrConflictingSource)
	}

	if d.Path == "" && d.File == "" {
		return fmt.Errorf("resource configuration %s %w", d, ErrMissingPath)
	}

	switch d.Kind() {
	case resource.KindFile:
		if d.File != "" && d.Path != "" && strings.HasPrefix(d.Path, ".") {
			return fmt.Errorf("%w: %s", resource.ErrRelativePath, d.Path)
		}
		return nil
	case resource.KindBackend:
		u, err := url.Parse(d.Backend)
		if err != nil || u.Host == "" {
			return fmt.Errorf("resource %s: %w: %s", d.Path, ErrInvalidBackend, d.Backend)
		}
	}

	if d.Path == "" {
		return fmt.Errorf("resource configuration %s %w", d, ErrMissingPath)
	}
	if strings.HasPrefix(d.Path, ".") {
		return fmt.Errorf("%w: %s", resource.ErrRelativePath, d.Path)
	}
	return nil
}

// meta builds the resource metadata shared by every kind.
func (d Decl) meta(kind resource.Kind) resource.Resource {
	return resource.Resource{
		Kind:      kind,
		Headers:   d.Headers,
		Etag:      d.Etag,
		Cacheable: d.Cacheable,
		Minify:    d.Minify,
	}
}
