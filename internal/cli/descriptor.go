package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cruciblehq/cruxfile/internal/build"
	"github.com/cruciblehq/cruxfile/internal/descriptor"
	"github.com/cruciblehq/cruxfile/internal/image"
	"github.com/cruciblehq/cruxfile/internal/paths"
	"github.com/cruciblehq/cruxfile/internal/runtime"
	"github.com/cruciblehq/cruxfile/internal/server"
)

// Descriptor file read when none is given.
const defaultDescriptor = "Cruxfile"

// Represents the 'cruxfile parse' command.
type ParseCmd struct {
	File string `arg:"" optional:"" default:"Cruxfile" help:"Descriptor file, or - for standard input."`
}

// Parsed descriptor as printed by the parse command.
type parseOutput struct {
	*descriptor.BuildDescriptor
	ResolvedCopyRules []descriptor.CopyRule `json:"resolvedCopyRules,omitempty"`
}

// Executes the parse command.
//
// Prints the normalized descriptor as indented JSON, along with its copy
// rules resolved to absolute destinations.
func (c *ParseCmd) Run(ctx context.Context, out io.Writer) error {
	d, err := parseFile(c.File)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(parseOutput{
		BuildDescriptor:   d,
		ResolvedCopyRules: d.ResolvedCopyRules(),
	}, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}

// Represents the 'cruxfile fmt' command.
type FmtCmd struct {
	File  string `arg:"" optional:"" default:"Cruxfile" help:"Descriptor file, or - for standard input."`
	Write bool   `short:"w" help:"Rewrite the file in place instead of printing it."`
}

// Executes the fmt command.
func (c *FmtCmd) Run(ctx context.Context, out io.Writer) error {
	d, err := parseFile(c.File)
	if err != nil {
		return err
	}

	if c.Write && c.File != "-" {
		slog.Debug("rewriting descriptor", "path", c.File)
		return os.WriteFile(c.File, []byte(d.String()), paths.DefaultFileMode)
	}

	_, err = io.WriteString(out, d.String())
	return err
}

// Represents the 'cruxfile validate' command.
type ValidateCmd struct {
	File       string `arg:"" optional:"" default:"Cruxfile" help:"Descriptor file, or - for standard input."`
	Context    string `short:"c" help:"Build context directory. Defaults to the descriptor's directory." placeholder:"DIR"`
	CheckImage bool   `help:"Confirm the base image exists in containerd."`
	Platform   string `short:"p" help:"Target platform for image inspection (e.g., linux/amd64)."`
}

// Executes the validate command.
//
// Succeeds silently when the descriptor parses, every copy source exists in
// the build context, the base image is a known runtime image and, if
// requested, containerd has it.
func (c *ValidateCmd) Run(ctx context.Context, out io.Writer) error {
	result, err := resolve(ctx, c.File, c.Context, c.Platform, "", c.CheckImage)
	if err != nil {
		return err
	}

	slog.Info("descriptor is valid", "base", result.Descriptor.BaseImage, "digest", result.Digest)
	return nil
}

// Represents the 'cruxfile config' command.
type ConfigCmd struct {
	File       string `arg:"" optional:"" default:"Cruxfile" help:"Descriptor file, or - for standard input."`
	Context    string `short:"c" help:"Build context directory. Defaults to the descriptor's directory." placeholder:"DIR"`
	CheckImage bool   `help:"Confirm the base image exists in containerd and inherit its defaults."`
	Platform   string `short:"p" help:"Target platform (e.g., linux/amd64). Defaults to the host."`
	Output     string `short:"o" help:"Write config.json to this directory instead of standard output." placeholder:"DIR"`
}

// Executes the config command.
func (c *ConfigCmd) Run(ctx context.Context, out io.Writer) error {
	result, err := resolve(ctx, c.File, c.Context, c.Platform, c.Output, c.CheckImage)
	if err != nil {
		return err
	}

	if result.Output != "" {
		return nil
	}

	data, err := json.MarshalIndent(result.Config, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}

// Runs the resolution pipeline for a descriptor file.
//
// Standard input is read up front so the pipeline sees it as text; its
// build context then defaults to the working directory.
func resolve(ctx context.Context, file, root, platform, output string, checkImage bool) (*build.Result, error) {
	opts := build.Options{
		Descriptor: file,
		Root:       root,
		Platform:   platform,
		Output:     output,
	}

	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		opts.Descriptor = ""
		opts.Text = string(data)
	}

	known, err := knownImages()
	if err != nil {
		return nil, err
	}
	opts.Known = known

	if checkImage {
		resolver, closeResolver, err := containerdResolver()
		if err != nil {
			return nil, err
		}
		defer closeResolver()
		opts.Resolver = resolver
	}

	return build.Run(ctx, opts)
}

// Connects to containerd using the global flags.
func containerdResolver() (image.Resolver, func(), error) {
	address := RootCmd.Address
	if address == "" {
		address = server.DefaultContainerdAddress
	}

	namespace := RootCmd.Namespace
	if namespace == "" {
		namespace = server.DefaultContainerdNamespace
	}

	rt, err := runtime.New(address, namespace)
	if err != nil {
		return nil, nil, err
	}
	return rt, func() { rt.Close() }, nil
}

// Reads and parses a descriptor file, or standard input for "-".
func parseFile(file string) (*descriptor.BuildDescriptor, error) {
	if file == "-" {
		return descriptor.ParseReader(os.Stdin)
	}

	if file == "" {
		file = defaultDescriptor
	}

	f, err := os.Open(filepath.Clean(file))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := descriptor.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return d, nil
}
