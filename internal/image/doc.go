// Package image is the boundary to the base runtime image provider and to
// the build engine that consumes a resolved descriptor.
//
// Base image identifiers are normalized with [ParseReference], following
// the registry conventions used by container engines ("golang:1.19" names
// "docker.io/library/golang:1.19"). A [Resolver] confirms that a normalized
// reference names an image the provider knows about.
//
// [Config] translates a descriptor into an OCI image configuration carrying
// the working directory, default command and target platform, which is the
// record handed to the external build engine. [Digest] gives a content
// address for a descriptor so equal descriptors can be recognized. When
// the provider is also an [Inspector], [Inherit] fills settings the
// descriptor leaves unset from the base image.
package image
