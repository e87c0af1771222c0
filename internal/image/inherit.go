package image

import (
	"context"
	"fmt"

	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Reads the configuration of a base image.
type Inspector interface {
	Inspect(ctx context.Context, ref reference.Named, platform string) (ocispec.Image, error)
}

// Fills unset fields of cfg from the base image configuration.
//
// A descriptor without WORKDIR runs in the base image's working directory,
// and one with no CMD or an empty one runs the base image's default
// command. Fails with [ErrNoCommand] when neither the descriptor nor the
// base image defines something to run.
func Inherit(cfg *ocispec.Image, base ocispec.Image) error {
	if cfg.Config.WorkingDir == "" {
		cfg.Config.WorkingDir = base.Config.WorkingDir
	}

	if len(cfg.Config.Cmd) == 0 {
		cfg.Config.Cmd = append([]string(nil), base.Config.Cmd...)
		cfg.Config.Entrypoint = append([]string(nil), base.Config.Entrypoint...)
	} else if len(base.Config.Entrypoint) > 0 {
		cfg.Config.Entrypoint = append([]string(nil), base.Config.Entrypoint...)
	}

	if len(cfg.Config.Cmd) == 0 && len(cfg.Config.Entrypoint) == 0 {
		return fmt.Errorf("%w: neither the descriptor nor the base image defines one", ErrNoCommand)
	}
	return nil
}
