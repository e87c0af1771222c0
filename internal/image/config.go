package image

import (
	"fmt"

	"github.com/containerd/platforms"
	"github.com/cruciblehq/cruxfile/internal/descriptor"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Label recording the descriptor digest on the generated image config.
const LabelDescriptorDigest = "dev.crucible.descriptor.digest"

// Builds the OCI image configuration for a descriptor.
//
// The working directory and default command are carried over as-is. The
// platform is parsed and normalized; an empty platform selects the host.
// The base image is recorded under the standard base-name label, and the
// descriptor digest under [LabelDescriptorDigest]. Layers are left for the
// build engine to fill in.
func Config(d *descriptor.BuildDescriptor, platform string) (ocispec.Image, error) {
	p := platforms.DefaultSpec()
	if platform != "" {
		parsed, err := platforms.Parse(platform)
		if err != nil {
			return ocispec.Image{}, fmt.Errorf("%w: %w", ErrInvalidPlatform, err)
		}
		p = parsed
	}
	p = platforms.Normalize(p)

	ref, err := ParseReference(d.BaseImage)
	if err != nil {
		return ocispec.Image{}, err
	}

	img := ocispec.Image{
		Platform: p,
		Config: ocispec.ImageConfig{
			WorkingDir: d.WorkingDirectory,
			Labels: map[string]string{
				ocispec.AnnotationBaseImageName: ref.String(),
				LabelDescriptorDigest:           Digest(d).String(),
			},
		},
		RootFS: ocispec.RootFS{
			Type: "layers",
		},
	}

	if d.HasDefaultCommand() {
		img.Config.Cmd = append([]string{}, d.DefaultCommand...)
	}

	return img, nil
}

// Returns the content digest of the descriptor's canonical text.
func Digest(d *descriptor.BuildDescriptor) digest.Digest {
	return digest.FromString(d.String())
}
