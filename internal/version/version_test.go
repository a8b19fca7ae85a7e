/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name    string
		version string
		info    *debug.BuildInfo
		ok      bool
		want    Build
		full    string
	}{
		{
			name: "no build info",
			want: Build{Version: "dev"},
			full: "dev",
		},
		{
			name: "module version and vcs settings",
			info: &debug.BuildInfo{
				GoVersion: "go1.25.5",
				Main:      debug.Module{Version: "v0.4.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			ok: true,
			want: Build{
				Version:   "v0.4.0",
				GitCommit: "0123456789abcdef",
				BuildTime: "2026-01-02T03:04:05Z",
				Dirty:     true,
				GoVersion: "go1.25.5",
			},
			full: "v0.4.0 (commit: 0123456-dirty)",
		},
		{
			name:    "ldflags win over devel build",
			version: "v1.0.0",
			info:    &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ok:      true,
			want:    Build{Version: "v1.0.0"},
			full:    "v1.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.info, tt.ok)
			orig := Version
			Version = tt.version
			t.Cleanup(func() { Version = orig })

			if got := Current(); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if got := Full(); got != tt.full {
				t.Errorf("expected %q, got %q", tt.full, got)
			}
		})
	}
}
