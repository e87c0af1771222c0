package image

import (
	"context"
	"fmt"

	"github.com/distribution/reference"
)

// Resolves base image references against an image provider.
//
// Resolve returns nil when the image is known, and an error wrapping
// [ErrUnknownImage] when it is not. Other errors indicate the provider
// could not be consulted.
type Resolver interface {
	Resolve(ctx context.Context, ref reference.Named) error
}

// Parses a base image identifier into a fully qualified reference.
//
// Short names are expanded with the default registry and library
// namespace, and a missing tag defaults to "latest". Digested references
// are kept as-is.
func ParseReference(s string) (reference.Named, error) {
	named, err := reference.ParseNormalizedNamed(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidReference, s, err)
	}
	return reference.TagNameOnly(named), nil
}

// Returns the shortest form of a reference, as users usually write it.
func FamiliarString(ref reference.Named) string {
	return reference.FamiliarString(ref)
}

// Resolver that accepts a fixed set of images.
//
// Entries are normalized on construction, so "golang:1.19" and
// "docker.io/library/golang:1.19" name the same image.
type StaticResolver struct {
	known map[string]struct{}
}

// Creates a [StaticResolver] for the given image identifiers.
func NewStaticResolver(images ...string) (*StaticResolver, error) {
	r := &StaticResolver{known: make(map[string]struct{}, len(images))}
	for _, s := range images {
		ref, err := ParseReference(s)
		if err != nil {
			return nil, err
		}
		r.known[ref.String()] = struct{}{}
	}
	return r, nil
}

// Reports whether the reference is one of the known images.
func (r *StaticResolver) Resolve(_ context.Context, ref reference.Named) error {
	if _, ok := r.known[ref.String()]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownImage, reference.FamiliarString(ref))
	}
	return nil
}
