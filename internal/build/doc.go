// Package build resolves a descriptor into the record handed to a build
// engine.
//
// The pipeline reads descriptor text, parses it, checks every copy source
// against the build context and, when a resolver is configured, confirms
// the base image with the image provider. The result is an OCI image
// configuration (working directory, default command, platform, base image
// label) that an external engine uses to produce and run the image. When an
// output directory is given the configuration is written there as
// config.json.
//
// When the resolver can also inspect images, settings the descriptor leaves
// unset are inherited from the base image, and a descriptor that would run
// nothing is rejected.
//
// Example usage:
//
//	result, err := build.Run(ctx, build.Options{
//	    Descriptor: "Cruxfile",
//	    Root:       ".",
//	    Platform:   "linux/amd64",
//	    Output:     "dist",
//	})
//	if err != nil {
//	    return err
//	}
package build
