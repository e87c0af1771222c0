package buildctx

import (
	"errors"
	"fmt"
	"io/fs"
)

// Build context backed by an [fs.FS].
type FS struct {
	fsys fs.FS
}

// Creates an [FS] context over fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Reports whether a path exists in the file system.
//
// The path must satisfy [fs.ValidPath].
func (c *FS) Exists(path string) (bool, error) {
	if !fs.ValidPath(path) {
		return false, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	_, err := fs.Stat(c.fsys, path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrContext, err)
	}
}
