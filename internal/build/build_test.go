package build

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/cruciblehq/cruxfile/internal/buildctx"
	"github.com/cruciblehq/cruxfile/internal/descriptor"
	"github.com/cruciblehq/cruxfile/internal/image"
	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const runDescriptor = "FROM golang:1.19\nWORKDIR /usr/src/app\nCOPY . .\nCMD [\"go\",\"run\",\"main.go\"]\n"

// Resolver that knows a single image and reports a fixed configuration.
type fakeInspector struct {
	known string
	base  ocispec.Image
}

func (f *fakeInspector) Resolve(_ context.Context, ref reference.Named) error {
	if ref.String() != f.known {
		return image.ErrUnknownImage
	}
	return nil
}

func (f *fakeInspector) Inspect(context.Context, reference.Named, string) (ocispec.Image, error) {
	return f.base, nil
}

func TestRunText(t *testing.T) {
	result, err := Run(context.Background(), Options{
		Text:     runDescriptor,
		Context:  buildctx.NewFS(fstest.MapFS{"main.go": {Data: []byte("package main\n")}}),
		Platform: "linux/amd64",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Descriptor.BaseImage != "golang:1.19" {
		t.Fatalf("BaseImage = %q, want golang:1.19", result.Descriptor.BaseImage)
	}
	if result.Config.Config.WorkingDir != "/usr/src/app" {
		t.Fatalf("WorkingDir = %q, want /usr/src/app", result.Config.Config.WorkingDir)
	}
	if !slices.Equal(result.Config.Config.Cmd, []string{"go", "run", "main.go"}) {
		t.Fatalf("Cmd = %v, want [go run main.go]", result.Config.Config.Cmd)
	}
	if result.Digest != image.Digest(result.Descriptor) {
		t.Fatalf("Digest = %s, want %s", result.Digest, image.Digest(result.Descriptor))
	}
	if result.Output != "" {
		t.Fatalf("Output = %q, want empty", result.Output)
	}
}

func TestRunFileWritesConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Cruxfile")
	if err := os.WriteFile(path, []byte(runDescriptor), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(t.TempDir(), "dist")

	result, err := Run(context.Background(), Options{
		Descriptor: path,
		Platform:   "linux/arm64",
		Output:     output,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(output, ConfigFilename)
	if result.Output != want {
		t.Fatalf("Output = %q, want %q", result.Output, want)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var cfg ocispec.Image
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Architecture != "arm64" || cfg.OS != "linux" {
		t.Fatalf("platform = %s/%s, want linux/arm64", cfg.OS, cfg.Architecture)
	}
	if cfg.Config.Labels[ocispec.AnnotationBaseImageName] != "docker.io/library/golang:1.19" {
		t.Fatalf("base label = %q", cfg.Config.Labels[ocispec.AnnotationBaseImageName])
	}
}

func TestRunMissingSource(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Cruxfile")
	text := "FROM golang:1.19\nWORKDIR /usr/src/app\nCOPY main.go .\nCMD [\"go\",\"run\",\"main.go\"]\n"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Run(context.Background(), Options{Descriptor: path})
	if !errors.Is(err, descriptor.ErrMissingSource) {
		t.Fatalf("error = %v, want %v", err, descriptor.ErrMissingSource)
	}
	if !errors.Is(err, ErrBuild) {
		t.Fatalf("error = %v, want %v", err, ErrBuild)
	}
}

func TestRunParseError(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Text:    "FROM golang:1.19\nFROM golang:1.20\n",
		Context: buildctx.NewFS(fstest.MapFS{}),
	})
	if !errors.Is(err, descriptor.ErrDuplicateDirective) {
		t.Fatalf("error = %v, want %v", err, descriptor.ErrDuplicateDirective)
	}
}

func TestRunMissingFile(t *testing.T) {
	_, err := Run(context.Background(), Options{Descriptor: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, ErrFileSystemOperation) {
		t.Fatalf("error = %v, want %v", err, ErrFileSystemOperation)
	}
}

func TestRunUnknownImage(t *testing.T) {
	resolver, err := image.NewStaticResolver("golang:1.20")
	if err != nil {
		t.Fatal(err)
	}

	_, err = Run(context.Background(), Options{
		Text:     runDescriptor,
		Context:  buildctx.NewFS(fstest.MapFS{"main.go": {Data: []byte("package main\n")}}),
		Resolver: resolver,
	})
	if !errors.Is(err, image.ErrUnknownImage) {
		t.Fatalf("error = %v, want %v", err, image.ErrUnknownImage)
	}
}

func TestRunInheritsFromBase(t *testing.T) {
	resolver := &fakeInspector{
		known: "docker.io/library/golang:1.19",
		base: ocispec.Image{
			Config: ocispec.ImageConfig{WorkingDir: "/go", Cmd: []string{"bash"}},
		},
	}

	result, err := Run(context.Background(), Options{
		Text:     "FROM golang:1.19\n",
		Context:  buildctx.NewFS(fstest.MapFS{}),
		Resolver: resolver,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Config.Config.WorkingDir != "/go" {
		t.Fatalf("WorkingDir = %q, want /go", result.Config.Config.WorkingDir)
	}
	if !slices.Equal(result.Config.Config.Cmd, []string{"bash"}) {
		t.Fatalf("Cmd = %v, want [bash]", result.Config.Config.Cmd)
	}
	if result.Descriptor.WorkingDirectory != "" {
		t.Fatalf("descriptor mutated: WorkingDirectory = %q", result.Descriptor.WorkingDirectory)
	}
}

func TestRunNothingToRun(t *testing.T) {
	resolver := &fakeInspector{known: "docker.io/library/scratchy:latest"}

	_, err := Run(context.Background(), Options{
		Text:     "FROM scratchy\nCMD []\n",
		Context:  buildctx.NewFS(fstest.MapFS{}),
		Resolver: resolver,
	})
	if !errors.Is(err, image.ErrNoCommand) {
		t.Fatalf("error = %v, want %v", err, image.ErrNoCommand)
	}
}

func TestRunEmptyCommandInheritsBase(t *testing.T) {
	resolver := &fakeInspector{
		known: "docker.io/library/golang:1.19",
		base: ocispec.Image{
			Config: ocispec.ImageConfig{WorkingDir: "/go", Cmd: []string{"bash"}},
		},
	}

	result, err := Run(context.Background(), Options{
		Text:     "FROM golang:1.19\nCMD []\n",
		Context:  buildctx.NewFS(fstest.MapFS{}),
		Resolver: resolver,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(result.Config.Config.Cmd, []string{"bash"}) {
		t.Fatalf("Cmd = %v, want [bash]", result.Config.Config.Cmd)
	}
	if result.Descriptor.DefaultCommand == nil || len(result.Descriptor.DefaultCommand) != 0 {
		t.Fatalf("DefaultCommand = %#v, want empty", result.Descriptor.DefaultCommand)
	}
}

func TestRunEmptyText(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Text:    "",
		Context: buildctx.NewFS(fstest.MapFS{}),
	})
	if !errors.Is(err, descriptor.ErrMissingBaseImage) {
		t.Fatalf("error = %v, want %v", err, descriptor.ErrMissingBaseImage)
	}
	if errors.Is(err, ErrFileSystemOperation) {
		t.Fatalf("error = %v, read a file for text input", err)
	}
}

func TestRunKnownImages(t *testing.T) {
	known, err := image.NewStaticResolver(image.DefaultKnownImages()...)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "known", text: runDescriptor},
		{name: "known with registry", text: "FROM docker.io/library/openjdk:17\n"},
		{name: "unknown tag", text: "FROM golang:1.22\n", want: image.ErrUnknownImage},
		{name: "unknown image", text: "FROM example.com/custom/runtime:1\n", want: image.ErrUnknownImage},
		{name: "invalid reference", text: "FROM Not_A_Reference\n", want: image.ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), Options{
				Text:    tt.text,
				Context: buildctx.NewFS(fstest.MapFS{"main.go": {Data: []byte("package main\n")}}),
				Known:   known,
			})
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunKnownBeforeResolver(t *testing.T) {
	known, err := image.NewStaticResolver("golang:1.20")
	if err != nil {
		t.Fatal(err)
	}
	resolver := &fakeInspector{
		known: "docker.io/library/golang:1.19",
		base:  ocispec.Image{Config: ocispec.ImageConfig{Cmd: []string{"bash"}}},
	}

	_, err = Run(context.Background(), Options{
		Text:     "FROM golang:1.19\n",
		Context:  buildctx.NewFS(fstest.MapFS{}),
		Known:    known,
		Resolver: resolver,
	})
	if !errors.Is(err, image.ErrUnknownImage) {
		t.Fatalf("error = %v, want %v", err, image.ErrUnknownImage)
	}
}

func TestRunResolvedCopyRules(t *testing.T) {
	result, err := Run(context.Background(), Options{
		Text:    "FROM golang:1.19\nWORKDIR /usr/src/app\nCOPY . .\nCOPY main.go bin/\n",
		Context: buildctx.NewFS(fstest.MapFS{"main.go": {Data: []byte("package main\n")}}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []descriptor.CopyRule{
		{Source: ".", Destination: "/usr/src/app"},
		{Source: "main.go", Destination: "/usr/src/app/bin/"},
	}
	if !slices.Equal(result.CopyRules, want) {
		t.Fatalf("CopyRules = %v, want %v", result.CopyRules, want)
	}
	if result.Descriptor.CopyRules[0].Destination != "." {
		t.Fatalf("descriptor destination = %q, want verbatim", result.Descriptor.CopyRules[0].Destination)
	}
}
