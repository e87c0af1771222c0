package buildctx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/cruciblehq/cruxfile/internal/descriptor"
)

var (
	_ descriptor.Context = (*Dir)(nil)
	_ descriptor.Context = (*FS)(nil)
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("package main\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDirExists(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"))
	writeFile(t, filepath.Join(root, "cmd", "app", "main.go"))

	ctx, err := NewDir(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{path: ".", want: true},
		{path: "main.go", want: true},
		{path: "cmd/app", want: true},
		{path: "cmd/app/main.go", want: true},
		{path: "go.mod", want: false},
		{path: "cmd/other", want: false},
	}

	for _, tt := range tests {
		got, err := ctx.Exists(tt.path)
		if err != nil {
			t.Fatalf("Exists(%q): unexpected error: %v", tt.path, err)
		}
		if got != tt.want {
			t.Fatalf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDirSymlinkStaysInside(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret"))

	root := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "escape")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	ctx, err := NewDir(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ctx.Exists("escape/secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatal("symlink resolved outside the context root")
	}
}

func TestNewDirErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file")
	writeFile(t, file)

	if _, err := NewDir(file); !errors.Is(err, ErrNotDir) {
		t.Fatalf("error = %v, want %v", err, ErrNotDir)
	}

	if _, err := NewDir(filepath.Join(root, "missing")); !errors.Is(err, ErrContext) {
		t.Fatalf("error = %v, want %v", err, ErrContext)
	}
}

func TestFSExists(t *testing.T) {
	ctx := NewFS(fstest.MapFS{
		"main.go":         {Data: []byte("package main\n")},
		"cmd/app/main.go": {Data: []byte("package main\n")},
	})

	for path, want := range map[string]bool{
		".":       true,
		"main.go": true,
		"cmd/app": true,
		"go.sum":  false,
	} {
		got, err := ctx.Exists(path)
		if err != nil {
			t.Fatalf("Exists(%q): unexpected error: %v", path, err)
		}
		if got != want {
			t.Fatalf("Exists(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestFSInvalidPath(t *testing.T) {
	ctx := NewFS(fstest.MapFS{})
	if _, err := ctx.Exists("../x"); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidPath)
	}
}

func TestValidateAgainstFS(t *testing.T) {
	fsys := fstest.MapFS{"go.mod": {Data: []byte("module x\n")}}

	d, err := descriptor.Parse("FROM golang:1.19\nWORKDIR /usr/src/app\nCOPY . .\nCOPY main.go .\nCMD [\"go\",\"run\",\"main.go\"]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = descriptor.Validate(d, NewFS(fsys))
	if !errors.Is(err, descriptor.ErrMissingSource) {
		t.Fatalf("error = %v, want %v", err, descriptor.ErrMissingSource)
	}
}
