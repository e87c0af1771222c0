// Package buildctx provides read-only build contexts for descriptor
// validation.
//
// A build context is the file tree COPY sources are resolved against. [Dir]
// roots a context at a host directory and resolves every path within that
// root, so symlinks cannot point validation outside of it. [FS] adapts any
// [io/fs.FS], which is convenient for embedded trees and tests.
//
// Both satisfy descriptor.Context.
package buildctx
