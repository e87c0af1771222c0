package build

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cruciblehq/cruxfile/internal/buildctx"
	"github.com/cruciblehq/cruxfile/internal/descriptor"
	"github.com/cruciblehq/cruxfile/internal/image"
	"github.com/cruciblehq/cruxfile/internal/paths"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Filename of the image configuration written to the output directory.
const ConfigFilename = "config.json"

// Controls descriptor resolution.
type Options struct {
	Descriptor string             // Path to the descriptor file. Empty reads Text instead.
	Text       string             // Descriptor text, used when Descriptor is empty.
	Root       string             // Build context directory. Defaults to the descriptor's directory.
	Context    descriptor.Context // Build context, overriding Root when set.
	Platform   string             // Target platform (e.g., "linux/amd64"). Defaults to host.
	Output     string             // Directory for the image configuration. Empty skips writing.
	Known      image.Resolver     // Allow-list of runtime images, consulted first. Nil accepts any base image.
	Resolver   image.Resolver     // Base image provider. Nil skips image resolution.
}

// Returned after successful resolution.
type Result struct {
	Descriptor *descriptor.BuildDescriptor // Parsed and validated descriptor.
	CopyRules  []descriptor.CopyRule       // Copy rules with absolute destinations.
	Config     ocispec.Image               // Image configuration for the build engine.
	Digest     digest.Digest               // Content digest of the canonical descriptor.
	Output     string                      // Path of the written configuration, empty when not written.
}

// Resolves a descriptor into an image configuration.
//
// Parsing, validation and image resolution happen in that order, and the
// first failure is returned wrapped in [ErrBuild] alongside its original
// sentinel.
func Run(ctx context.Context, opts Options) (*Result, error) {
	text, err := readDescriptor(opts)
	if err != nil {
		return nil, err
	}

	slog.Info("resolving descriptor",
		"descriptor", opts.Descriptor,
		"platform", opts.Platform,
		"output", opts.Output,
	)

	d, err := descriptor.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	slog.Debug("descriptor parsed",
		"base", d.BaseImage,
		"workdir", d.WorkingDirectory,
		"copies", len(d.CopyRules),
		"cmd", d.DefaultCommand,
	)

	bctx, err := buildContext(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	if err := descriptor.Validate(d, bctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	cfg, err := image.Config(d, opts.Platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	if opts.Known != nil || opts.Resolver != nil {
		if err := resolveBase(ctx, opts, d, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuild, err)
		}
	}

	result := &Result{
		Descriptor: d,
		CopyRules:  d.ResolvedCopyRules(),
		Config:     cfg,
		Digest:     image.Digest(d),
	}

	if opts.Output != "" {
		path, err := writeConfig(opts.Output, cfg)
		if err != nil {
			return nil, err
		}
		result.Output = path
	}

	slog.Info("descriptor resolved", "base", d.BaseImage, "digest", result.Digest)
	return result, nil
}

// Returns the descriptor text from the options.
func readDescriptor(opts Options) (string, error) {
	if opts.Descriptor == "" {
		return opts.Text, nil
	}

	data, err := os.ReadFile(opts.Descriptor)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	return string(data), nil
}

// Returns the build context for the options.
//
// An explicit context wins. Otherwise the context is rooted at Root, or at
// the directory holding the descriptor file, or at the working directory
// when the descriptor was given as text.
func buildContext(opts Options) (descriptor.Context, error) {
	if opts.Context != nil {
		return opts.Context, nil
	}

	root := opts.Root
	if root == "" {
		root = "."
		if opts.Descriptor != "" {
			root = filepath.Dir(opts.Descriptor)
		}
	}

	return buildctx.NewDir(root)
}

// Checks the base image against the known runtime images, then confirms it
// with the resolver and, when it can inspect images, inherits unset
// settings from the base image configuration.
func resolveBase(ctx context.Context, opts Options, d *descriptor.BuildDescriptor, cfg *ocispec.Image) error {
	ref, err := image.ParseReference(d.BaseImage)
	if err != nil {
		return err
	}

	if opts.Known != nil {
		if err := opts.Known.Resolve(ctx, ref); err != nil {
			return fmt.Errorf("not a known runtime image: %w", err)
		}
	}

	if opts.Resolver == nil {
		return nil
	}

	if err := opts.Resolver.Resolve(ctx, ref); err != nil {
		return err
	}

	inspector, ok := opts.Resolver.(image.Inspector)
	if !ok {
		return nil
	}

	base, err := inspector.Inspect(ctx, ref, opts.Platform)
	if err != nil {
		return err
	}

	return image.Inherit(cfg, base)
}

// Writes the image configuration as JSON into the output directory.
func writeConfig(output string, cfg ocispec.Image) (string, error) {
	if err := os.MkdirAll(output, paths.DefaultDirMode); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuild, err)
	}

	path := filepath.Join(output, ConfigFilename)
	if err := os.WriteFile(path, append(data, '\n'), paths.DefaultFileMode); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	slog.Info("image config written", "path", path)
	return path, nil
}
