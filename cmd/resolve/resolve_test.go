/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/busterjs/buster-configuration/builder"
	"github.com/busterjs/buster-configuration/group"
	"github.com/busterjs/buster-configuration/testutil"
)

func resolvedGroup(t *testing.T) *group.Group {
	t.Helper()
	g := group.Create(group.Declaration{
		Server:    "localhost:1111",
		Resources: []group.ResourceDecl{builder.ContentDecl("/hello.js", "Hello, World")},
		Libs:      []string{"foo.js"},
	}, testutil.ProjectRoot, group.WithFileSystem(testutil.NewProjectFS(t)))
	g.Name = "browser"
	if _, err := g.Resolve(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []*group.Group{resolvedGroup(t)}, "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out []struct {
		Name        string `json:"name"`
		Environment string `json:"environment"`
		Server      string `json:"server"`
		ResourceSet struct {
			Resources map[string]struct {
				Etag string `json:"etag"`
			} `json:"resources"`
			Load []string `json:"load"`
		} `json:"resourceSet"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	if len(out) != 1 {
		t.Fatalf("expected 1 group, got %d", len(out))
	}
	g := out[0]
	if g.Name != "browser" || g.Environment != "browser" {
		t.Errorf("unexpected group header %+v", g)
	}
	if g.Server != "http://localhost:1111/" {
		t.Errorf("unexpected server %q", g.Server)
	}
	if len(g.ResourceSet.Load) != 1 || g.ResourceSet.Load[0] != "/foo.js" {
		t.Errorf("unexpected load %v", g.ResourceSet.Load)
	}
	want := "03675ac53ff9cd1535ccc7dfcdfa2c458c5218371f418dc136f2d19ac1fbe8a5"
	if got := g.ResourceSet.Resources["/hello.js"].Etag; got != want {
		t.Errorf("expected etag %s, got %s", want, got)
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []*group.Group{resolvedGroup(t)}, "yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"name: browser", "resourceSet:", "- /foo.js"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q:\n%s", want, buf.String())
		}
	}
}

func TestWrite_Errors(t *testing.T) {
	if err := Write(&bytes.Buffer{}, []*group.Group{resolvedGroup(t)}, "xml"); err == nil {
		t.Error("expected unknown format error")
	}

	unresolved := group.Create(group.Declaration{}, testutil.ProjectRoot)
	if err := Write(&bytes.Buffer{}, []*group.Group{unresolved}, "json"); err == nil {
		t.Error("expected error for unresolved group")
	}
}
