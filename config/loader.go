/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	busterfs "github.com/busterjs/buster-configuration/fs"
	"github.com/busterjs/buster-configuration/group"
	"github.com/busterjs/buster-configuration/internal/logger"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "buster"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// ErrInvalidFile indicates a config file whose top level is not a mapping
// of group names to declarations.
var ErrInvalidFile = errors.New("config file must map group names to group declarations")

// Find returns the path of the first buster.{yaml,yml,json} in dir.
func (c *Configuration) Find(dir string) (string, bool) {
	for _, ext := range configExtensions {
		p := filepath.Join(dir, ConfigFileName+ext)
		if c.fs.Exists(p) {
			return p, true
		}
	}
	return "", false
}

// Load searches dir for a config file and adds its groups. It reports
// false, without error, when there is none.
func (c *Configuration) Load(dir string) (bool, error) {
	p, ok := c.Find(dir)
	if !ok {
		return false, nil
	}
	return c.LoadFile(p)
}

// LoadFile adds every group declared in path, in file order, rooted at
// the file's directory. It reports false, without error, when the file
// does not exist. JSON files may contain comments and trailing commas.
func (c *Configuration) LoadFile(path string) (bool, error) {
	if !c.fs.Exists(path) {
		return false, nil
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return false, err
	}
	if filepath.Ext(path) == ".json" {
		data = jsonc.ToJSON(data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Kind == 0 {
		return true, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return false, fmt.Errorf("%s: %w", path, ErrInvalidFile)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return false, err
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value

		var decl group.Declaration
		if err := root.Content[i+1].Decode(&decl); err != nil {
			return false, fmt.Errorf("%s: group %s: %w", path, name, err)
		}
		if _, err := c.AddGroup(name, decl, dir); err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
	}
	logger.Debug("loaded %d group(s) from %s", len(root.Content)/2, path)
	return true, nil
}

// ErrNoConfig indicates that no config file was found.
var ErrNoConfig = errors.New("no buster configuration file found")

// Open loads the config file at path, or searches path when it is a
// directory.
func Open(path string, opts ...Option) (*Configuration, error) {
	c := New(opts...)

	var (
		ok  bool
		err error
	)
	if busterfs.IsDir(c.fs, path) {
		ok, err = c.Load(path)
	} else {
		ok, err = c.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w at %s", ErrNoConfig, path)
	}
	return c, nil
}

// Select applies FilterEnv and, when pattern is not empty, FilterGroup.
func (c *Configuration) Select(env, pattern string) error {
	c.FilterEnv(env)
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid group pattern: %w", err)
	}
	c.FilterGroup(re)
	return nil
}
