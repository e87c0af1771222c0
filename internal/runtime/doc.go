// Package runtime resolves base images against containerd.
//
// A [Runtime] connects to a containerd daemon and answers two questions
// about a base image reference: whether the image store holds it, and what
// its OCI configuration is for a given platform. It implements the
// resolver and inspector interfaces of the image package, making
// containerd the base runtime image provider for descriptor resolution.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "cruxfile")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ref, err := image.ParseReference("golang:1.19")
//	if err != nil {
//	    return err
//	}
//
//	if err := rt.Resolve(ctx, ref); err != nil {
//	    return err
//	}
package runtime
