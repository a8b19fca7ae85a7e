/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package group

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/busterjs/buster-configuration/builder"
)

// ResourceDecl is a single entry of a group's resources list.
type ResourceDecl = builder.Decl

// Declaration is the parsed configuration object of one group.
type Declaration struct {
	Resources []ResourceDecl `yaml:"resources" json:"resources"`

	// Load lists. Each category has two names whose entries are merged.
	Libs     []string `yaml:"libs" json:"libs"`
	Deps     []string `yaml:"deps" json:"deps"`
	Sources  []string `yaml:"sources" json:"sources"`
	Src      []string `yaml:"src" json:"src"`
	TestLibs []string `yaml:"testLibs" json:"testLibs"`
	SpecLibs []string `yaml:"specLibs" json:"specLibs"`
	Tests    []string `yaml:"tests" json:"tests"`
	Specs    []string `yaml:"specs" json:"specs"`

	// Environment defaults to "browser". Env is an alias.
	Environment string `yaml:"environment" json:"environment"`
	Env         string `yaml:"env" json:"env"`

	// RootPath is resolved against the root the group is created with.
	RootPath string `yaml:"rootPath" json:"rootPath"`

	// Server is an address such as "localhost:1111/buster".
	Server string `yaml:"server" json:"server"`

	// Extends names a previously declared group of the same configuration.
	Extends string `yaml:"extends" json:"extends"`

	Extensions []string `yaml:"extensions" json:"extensions"`

	AutoRun *bool `yaml:"autoRun" json:"autoRun"`

	// Options may carry the same recognized options as the top level.
	Options map[string]any `yaml:"options" json:"options"`

	// Unknown collects every key not listed above.
	Unknown map[string]any `yaml:",inline" json:"-"`
}

// UnmarshalJSON decodes a JSON declaration the same way as YAML, so
// unknown keys are kept in Unknown.
func (d *Declaration) UnmarshalJSON(data []byte) error {
	return yaml.Unmarshal(data, d)
}

// ParseDeclaration decodes a YAML (or JSON) group declaration.
func ParseDeclaration(data []byte) (Declaration, error) {
	var d Declaration
	err := yaml.Unmarshal(data, &d)
	return d, err
}

// configOptions are the keys copied into Group.Options.
var configOptions = []string{"autoRun"}

// toleratedKeys are accepted but have no effect on the group.
var toleratedKeys = map[string]bool{
	"name":         true,
	"serverString": true,
}

// unknownOption returns an error for the first unknown key, in sorted
// order, or nil.
func (d Declaration) unknownOption() error {
	keys := make([]string, 0, len(d.Unknown))
	for k := range d.Unknown {
		if !toleratedKeys[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	return &UnknownOptionError{Option: keys[0], Hint: unknownOptionHelp[keys[0]]}
}

// options extracts the recognized options. Top-level keys win over the
// options mapping.
func (d Declaration) options() map[string]any {
	opts := make(map[string]any)
	for _, k := range configOptions {
		if v, ok := d.Options[k]; ok {
			opts[k] = v
		}
	}
	if d.AutoRun != nil {
		opts["autoRun"] = *d.AutoRun
	}
	return opts
}

// environment returns the declared environment or "browser".
func (d Declaration) environment() string {
	switch {
	case d.Environment != "":
		return d.Environment
	case d.Env != "":
		return d.Env
	default:
		return DefaultEnvironment
	}
}

// loadLists merges each category with its alias, alias entries first.
func (d Declaration) loadLists() builder.LoadLists {
	return builder.LoadLists{
		builder.Libs:     addUnique(d.Deps, d.Libs),
		builder.Sources:  addUnique(d.Src, d.Sources),
		builder.TestLibs: addUnique(d.SpecLibs, d.TestLibs),
		builder.Tests:    addUnique(d.Specs, d.Tests),
	}
}

// addUnique concatenates lists, dropping repeated entries.
func addUnique(lists ...[]string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}
	return result
}
