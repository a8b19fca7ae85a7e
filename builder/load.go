/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"context"

	"github.com/busterjs/buster-configuration/internal/logger"
	"github.com/busterjs/buster-configuration/resolver"
)

// Category is one of the four load lists of a group.
type Category string

const (
	// Libs are loaded first. The "deps" key is an alias.
	Libs Category = "libs"
	// Sources are the code under test. The "src" key is an alias.
	Sources Category = "sources"
	// TestLibs are test helpers. The "specLibs" key is an alias.
	TestLibs Category = "testLibs"
	// Tests are loaded last. The "specs" key is an alias.
	Tests Category = "tests"
)

// Categories lists the load categories in load order.
var Categories = []Category{Libs, Sources, TestLibs, Tests}

// Event returns the name of the event emitted before the category is
// appended to the load path, e.g. "load:libs".
func (c Category) Event() string {
	return "load:" + string(c)
}

// LoadLists holds the canonical pattern list of each category.
type LoadLists map[Category][]string

// LoadHook is called with the matched paths of a category before they are
// added to the load path. It returns the list to use, which may differ.
type LoadHook func(c Category, paths []string) []string

// AddAllLoadEntries resolves every category and appends the results to
// the load path in the order libs, sources, testLibs, tests. Each category
// is resolved only after the previous one is sequenced, so resources
// added by an earlier hook can satisfy later patterns.
func (b *Builder) AddAllLoadEntries(ctx context.Context, lists LoadLists, hook LoadHook) error {
	for _, c := range Categories {
		if err := b.AddLoadEntries(ctx, c, lists[c], hook); err != nil {
			return err
		}
	}
	return nil
}

// AddLoadEntries resolves a single category and appends it to the load path.
func (b *Builder) AddLoadEntries(ctx context.Context, c Category, patterns []string, hook LoadHook) error {
	matches, err := b.resolveLoad(ctx, patterns)
	if err != nil {
		return err
	}
	return b.sequence(ctx, c, matches, hook)
}

// resolveLoad expands load patterns. Declared patterns that match nothing
// on disk or among the known resources are an error.
func (b *Builder) resolveLoad(ctx context.Context, patterns []string) ([]string, error) {
	matches, err := b.resolver.Resolve(ctx, patterns, b.set.Has)
	if err != nil {
		return nil, err
	}
	if len(patterns) > 0 && len(matches) == 0 {
		return nil, &resolver.NoMatchError{Patterns: patterns}
	}
	return matches, nil
}

func (b *Builder) sequence(ctx context.Context, c Category, matches []string, hook LoadHook) error {
	paths := matches
	if hook != nil {
		paths = hook(c, matches)
	}

	var missing []string
	seen := make(map[string]bool)
	for _, p := range paths {
		if !seen[p] && !b.set.Has(p) {
			seen[p] = true
			missing = append(missing, p)
		}
	}
	if err := b.AddFileResources(ctx, missing); err != nil {
		return err
	}

	logger.Debug("%s: %d entries", c, len(paths))
	return b.set.AppendToLoad(paths...)
}
