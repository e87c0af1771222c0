package buildctx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// Build context rooted at a host directory.
type Dir struct {
	root string // Absolute path to the context root.
}

// Creates a [Dir] rooted at the given directory.
//
// The root is made absolute and must exist and be a directory.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContext, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContext, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, abs)
	}

	return &Dir{root: abs}, nil
}

// Returns the absolute path of the context root.
func (d *Dir) Root() string {
	return d.root
}

// Reports whether a slash-separated path exists under the root.
//
// The path is joined with the root as if the root were "/", resolving
// symlinks along the way, so neither ".." nor a link can reach outside the
// context.
func (d *Dir) Exists(path string) (bool, error) {
	full, err := securejoin.SecureJoin(d.root, filepath.FromSlash(path))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrContext, err)
	}

	_, err = os.Lstat(full)
	switch {
	case err == nil:
		slog.Debug("context path found", "path", path, "resolved", full)
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrContext, err)
	}
}
