package runtime

import (
	"context"
	"fmt"
	"log/slog"
	goruntime "runtime"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"
	"github.com/cruciblehq/cruxfile/internal/image"
	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Queries the containerd image store for base images.
//
// The runtime is read-only: it never pulls, creates or deletes images.
type Runtime struct {
	client *containerd.Client // Containerd client for image lookups.
}

// Creates a runtime connected to the containerd socket at the given address.
//
// The namespace scopes all containerd operations to a single tenant. The
// runtime must be closed when no longer needed.
func New(address, namespace string) (*Runtime, error) {
	client, err := containerd.New(address, containerd.WithDefaultNamespace(namespace))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	return &Runtime{client: client}, nil
}

// Closes the containerd client connection.
func (rt *Runtime) Close() error {
	return rt.client.Close()
}

// Confirms that the image store holds the referenced image.
//
// Returns an error wrapping [image.ErrUnknownImage] when containerd reports
// the image as not found.
func (rt *Runtime) Resolve(ctx context.Context, ref reference.Named) error {
	_, err := rt.client.ImageService().Get(ctx, ref.String())
	if err != nil {
		if errdefs.IsNotFound(err) {
			return fmt.Errorf("%w: %s", image.ErrUnknownImage, reference.FamiliarString(ref))
		}
		return fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	slog.Debug("base image resolved", "image", ref.String())
	return nil
}

// Reads the OCI configuration of a stored image for the given platform.
//
// Multi-platform images are narrowed to the manifest matching platform; an
// empty platform selects the host.
func (rt *Runtime) Inspect(ctx context.Context, ref reference.Named, platform string) (ocispec.Image, error) {
	if platform == "" {
		platform = defaultPlatform()
	}

	img, err := rt.resolveImage(ctx, ref.String(), platform)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return ocispec.Image{}, fmt.Errorf("%w: %s", image.ErrUnknownImage, reference.FamiliarString(ref))
		}
		return ocispec.Image{}, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	spec, err := img.Spec(ctx)
	if err != nil {
		return ocispec.Image{}, fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	return spec, nil
}

// Looks up a tagged image and selects the manifest for the given platform.
//
// Multi-platform images contain manifests for multiple architectures. This
// method selects one, so that subsequent operations target the correct
// architecture.
func (rt *Runtime) resolveImage(ctx context.Context, tag, platform string) (containerd.Image, error) {
	p, err := platforms.Parse(platform)
	if err != nil {
		return nil, err
	}

	img, err := rt.client.ImageService().Get(ctx, tag)
	if err != nil {
		return nil, err
	}

	return containerd.NewImageWithPlatform(rt.client, img, platforms.Only(p)), nil
}

// Returns the default OCI platform for the host architecture.
func defaultPlatform() string {
	return "linux/" + goruntime.GOARCH
}
