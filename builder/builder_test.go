/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder_test

import (
	"errors"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/busterjs/buster-configuration/builder"
	"github.com/busterjs/buster-configuration/resolver"
	"github.com/busterjs/buster-configuration/resource"
	"github.com/busterjs/buster-configuration/testutil"
)

const root = testutil.ProjectRoot

// mustAdd adds decls and fails the test on error.
func mustAdd(t *testing.T, b *builder.Builder, decls ...builder.Decl) {
	t.Helper()
	if err := b.AddResources(t.Context(), decls); err != nil {
		t.Fatalf("AddResources: unexpected error: %v", err)
	}
}

func mustGet(t *testing.T, b *builder.Builder, path string) *resource.Resource {
	t.Helper()
	r, ok := b.ResourceSet().Get(path)
	if !ok {
		t.Fatalf("expected resource at %s", path)
	}
	return r
}

func TestAddResources_Files(t *testing.T) {
	t.Run("string shorthand reads content", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.FileDecl("foo.js"), builder.FileDecl("bar.js"))

		foo := mustGet(t, b, "/foo.js")
		if foo.Content != "var thisIsTheFoo = 5;" {
			t.Errorf("unexpected content %q", foo.Content)
		}
		if foo.Kind != resource.KindFile {
			t.Errorf("expected file kind, got %s", foo.Kind)
		}
		if foo.File != root+"/foo.js" {
			t.Errorf("expected file %s/foo.js, got %s", root, foo.File)
		}
		if foo.Etag != resource.Etag("var thisIsTheFoo = 5;") {
			t.Errorf("unexpected etag %s", foo.Etag)
		}
		if foo.Pending() {
			t.Error("expected read to be complete")
		}

		if got := mustGet(t, b, "/bar.js").Content; got != "var helloFromBar = 1;" {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("globs", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.FileDecl("src/*.js"))
		if got := b.ResourceSet().Paths(); !slices.Equal(got, []string{"/src/1.js", "/src/2.js"}) {
			t.Errorf("unexpected paths %v", got)
		}
	})

	t.Run("globbed file with headers", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.Decl{
			File:    "src/*.js",
			Headers: map[string]string{"X-H": "OK"},
			Minify:  true,
		})

		for _, p := range []string{"/src/1.js", "/src/2.js"} {
			r := mustGet(t, b, p)
			if !maps.Equal(r.Headers, map[string]string{"X-H": "OK"}) {
				t.Errorf("%s: unexpected headers %v", p, r.Headers)
			}
			if !r.Minify {
				t.Errorf("%s: expected minify", p)
			}
		}
	})

	t.Run("explicit file served at path", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.Decl{Path: "/javascripts/1.js", File: "src/1.js"})

		if got := mustGet(t, b, "/javascripts/1.js").Content; got != "1.js" {
			t.Errorf("unexpected content %q", got)
		}
		if b.ResourceSet().Has("/src/1.js") {
			t.Error("file should only be served at its declared path")
		}
	})

	t.Run("explicit path for many files is ambiguous", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		err := b.AddResource(t.Context(), builder.Decl{Path: "/all.js", File: "src/*.js"})
		if !errors.Is(err, builder.ErrAmbiguousPath) {
			t.Errorf("expected ErrAmbiguousPath, got %v", err)
		}
	})

	t.Run("absolute path inside root", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.FileDecl(root+"/src/1.js"))
		if !b.ResourceSet().Has("/src/1.js") {
			t.Error("expected /src/1.js")
		}
	})

	t.Run("explicit etag is kept", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.Decl{Path: "foo.js", Etag: "1234", Cacheable: true})
		r := mustGet(t, b, "/foo.js")
		if r.Etag != "1234" || !r.Cacheable {
			t.Errorf("unexpected resource %+v", r)
		}
	})
}

func TestAddResources_MissingFile(t *testing.T) {
	b := builder.New(testutil.NewProjectFS(t), root)

	err := b.AddResource(t.Context(), builder.FileDecl("does/not/exist.js"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if !strings.Contains(err.Error(), "/does/not/exist.js") {
		t.Errorf("expected error to name the file, got %q", err)
	}
	if b.ResourceSet().Has("/does/not/exist.js") {
		t.Error("failed read must not leave a placeholder")
	}
}

func TestAddResources_ReadErrorRemovesPlaceholder(t *testing.T) {
	mfs := testutil.NewProjectFS(t)
	mfs.FailRead(root+"/bar.js", fs.ErrPermission)
	b := builder.New(mfs, root)

	err := b.AddResources(t.Context(), []builder.Decl{builder.FileDecl("bar.js")})
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected fs.ErrPermission, got %v", err)
	}
	if b.ResourceSet().Has("/bar.js") {
		t.Error("failed read must not leave a placeholder")
	}
}

func TestAddResources_GlobWithoutMatches(t *testing.T) {
	b := builder.New(testutil.NewProjectFS(t), root)
	err := b.AddResource(t.Context(), builder.FileDecl("lib/*.js"))

	var noMatch *resolver.NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
	if err.Error() != "lib/*.js matched no files" {
		t.Errorf("unexpected message %q", err)
	}
}

func TestAddResources_OutsideRoot(t *testing.T) {
	b := builder.New(testutil.NewProjectFS(t), root)
	err := b.AddResource(t.Context(), builder.FileDecl("../*.js"))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"outside the project root", "../buster.js"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to contain %q, got %q", want, err)
		}
	}
}

func TestAddResources_Content(t *testing.T) {
	t.Run("file that does not exist", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.ContentDecl("/does-not-exist.txt", "Hello, World"))
		r := mustGet(t, b, "/does-not-exist.txt")
		if r.Content != "Hello, World" {
			t.Errorf("unexpected content %q", r.Content)
		}
		if r.Etag != "03675ac53ff9cd1535ccc7dfcdfa2c458c5218371f418dc136f2d19ac1fbe8a5" {
			t.Errorf("unexpected etag %s", r.Etag)
		}
	})

	t.Run("overrides existing file", func(t *testing.T) {
		mfs := testutil.NewProjectFS(t)
		b := builder.New(mfs, root)
		mustAdd(t, b, builder.ContentDecl("/foo.js", "Hello, World"))
		if got := mustGet(t, b, "/foo.js").Content; got != "Hello, World" {
			t.Errorf("unexpected content %q", got)
		}
		if n := mfs.Reads(root + "/foo.js"); n != 0 {
			t.Errorf("expected no reads, got %d", n)
		}
	})

	t.Run("later declaration wins over pending file", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.FileDecl("foo.js"), builder.ContentDecl("foo.js", "configured"))
		if got := mustGet(t, b, "/foo.js").Content; got != "configured" {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("empty content is content", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b, builder.ContentDecl("/empty.js", ""))
		r := mustGet(t, b, "/empty.js")
		if r.Kind != resource.KindContent || r.Etag != resource.Etag("") {
			t.Errorf("unexpected resource %+v", r)
		}
	})

	t.Run("headers", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		d := builder.ContentDecl("src/1.js", "Hey")
		d.Headers = map[string]string{"Content-Type": "application/javascript"}
		mustAdd(t, b, d)
		if got := mustGet(t, b, "/src/1.js").Headers["Content-Type"]; got != "application/javascript" {
			t.Errorf("unexpected Content-Type %q", got)
		}
	})
}

func TestAddResources_Backend(t *testing.T) {
	b := builder.New(testutil.NewProjectFS(t), root)
	mustAdd(t, b, builder.BackendDecl("foo", "http://10.0.0.1/"))
	r := mustGet(t, b, "/foo")
	if r.Backend != "http://10.0.0.1/" || r.Kind != resource.KindBackend {
		t.Errorf("unexpected resource %+v", r)
	}
}

func TestAddResources_Combine(t *testing.T) {
	t.Run("in declared order", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b,
			builder.FileDecl("foo.js"),
			builder.FileDecl("bar.js"),
			builder.CombineDecl("/bundle.js", "foo.js", "bar.js"),
		)
		r := mustGet(t, b, "/bundle.js")
		if !slices.Equal(r.Combine, []string{"/foo.js", "/bar.js"}) {
			t.Errorf("unexpected combine %v", r.Combine)
		}
		if r.Etag != "" {
			t.Errorf("expected no etag, got %s", r.Etag)
		}
	})

	t.Run("glob entries", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b,
			builder.FileDecl("foo.js"),
			builder.FileDecl("bar.js"),
			builder.CombineDecl("/bundle.js", "*.js"),
		)
		got := slices.Sorted(slices.Values(mustGet(t, b, "/bundle.js").Combine))
		if !slices.Equal(got, []string{"/bar.js", "/foo.js"}) {
			t.Errorf("unexpected combine %v", got)
		}
	})

	t.Run("inline constituents", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		mustAdd(t, b,
			builder.ContentDecl("script1.js", "1"),
			builder.ContentDecl("script2.js", "2"),
			builder.CombineDecl("/bundle.js", "script1.js", "script2.js"),
		)
		if got := mustGet(t, b, "/bundle.js").Combine; !slices.Equal(got, []string{"/script1.js", "/script2.js"}) {
			t.Errorf("unexpected combine %v", got)
		}
	})

	t.Run("non-existent constituent", func(t *testing.T) {
		b := builder.New(testutil.NewProjectFS(t), root)
		err := b.AddResources(t.Context(), []builder.Decl{
			builder.ContentDecl("script1.js", "1"),
			builder.CombineDecl("/bundle.js", "script1.js", "script2.js"),
		})
		if !errors.Is(err, resource.ErrCombineMissing) {
			t.Fatalf("expected ErrCombineMissing, got %v", err)
		}
		if !strings.Contains(err.Error(), "script2.js") {
			t.Errorf("expected error to name script2.js, got %q", err)
		}
	})
}

func TestDecl_Validate(t *testing.T) {
	content := "x"

	tests := []struct {
		name string
		decl builder.Decl
		err  error
	}{
		{"content and backend", builder.Decl{Path: "/a", Content: &content, Backend: "http://h/"}, builder.ErrConflictingSource},
		{"content and combine", builder.Decl{Path: "/a", Content: &content, Combine: []string{"b"}}, builder.ErrConflictingSource},
		{"backend and combine", builder.Decl{Path: "/a", Backend: "http://h/", Combine: []string{"b"}}, builder.ErrConflictingSource},
		{"backend without host", builder.BackendDecl("/a", "not a url"), builder.ErrInvalidBackend},
		{"backend path only", builder.BackendDecl("/a", "/relative/path"), builder.ErrInvalidBackend},
		{"relative content path", builder.ContentDecl("./a.js", "x"), resource.ErrRelativePath},
		{"relative combine path", builder.CombineDecl("../bundle.js", "a"), resource.ErrRelativePath},
		{"no path", builder.Decl{Headers: map[string]string{"a": "b"}}, builder.ErrMissingPath},
		{"content without path", builder.Decl{Content: &content}, builder.ErrMissingPath},
		{"valid backend", builder.BackendDecl("/a", "http://10.0.0.1/"), nil},
		{"valid file", builder.FileDecl("./src/1.js"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decl.Validate()
			if tt.err == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestAddResources_ValidatesBeforeIO(t *testing.T) {
	mfs := testutil.NewProjectFS(t)
	b := builder.New(mfs, root)

	err := b.AddResources(t.Context(), []builder.Decl{
		builder.FileDecl("foo.js"),
		builder.BackendDecl("/proxy", "nope"),
	})
	if !errors.Is(err, builder.ErrInvalidBackend) {
		t.Fatalf("expected ErrInvalidBackend, got %v", err)
	}
	if n := mfs.Reads(root + "/foo.js"); n != 0 {
		t.Errorf("expected no reads, got %d", n)
	}
	if n := b.ResourceSet().Len(); n != 0 {
		t.Errorf("expected empty set, got %d resources", n)
	}
}
