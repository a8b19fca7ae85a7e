/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version reports the build version of buster-configuration.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags. Empty values fall back to the VCS
// information the go toolchain embeds in the binary.
var (
	Version   = ""
	GitCommit = ""
	BuildTime = ""
)

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

var readBuildInfo = debug.ReadBuildInfo

// Current returns the build description.
func Current() Build {
	b := Build{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}

	info, ok := readBuildInfo()
	if !ok {
		if b.Version == "" {
			b.Version = "dev"
		}
		return b
	}

	b.GoVersion = info.GoVersion
	if b.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.GitCommit == "" {
				b.GitCommit = s.Value
			}
		case "vcs.time":
			if b.BuildTime == "" {
				b.BuildTime = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	if b.Version == "" {
		b.Version = "dev"
	}
	return b
}

// Get returns the version string.
func Get() string {
	return Current().Version
}

// Full returns the version with an abbreviated commit, if known.
func Full() string {
	b := Current()
	if b.GitCommit == "" {
		return b.Version
	}

	commit := b.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if b.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (commit: %s)", b.Version, commit)
}
