package descriptor

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Read-only view of the build context used to check copy sources.
//
// Paths passed to Exists are slash-separated, cleaned, and relative to the
// context root ("." names the root itself).
type Context interface {
	Exists(path string) (bool, error)
}

// Confirms that every copy source exists in the build context.
//
// Each missing source is reported as an [ErrMissingSource]; the errors are
// joined so a single call surfaces all of them. Sources that climb out of
// the context fail with [ErrSourceOutsideContext]. An error from the
// context itself aborts validation and is returned unchanged.
func Validate(d *BuildDescriptor, ctx Context) error {
	var errs []error

	for i, rule := range d.CopyRules {
		src, ok := ContextPath(rule.Source)
		if !ok {
			errs = append(errs, fmt.Errorf("copy rule %d: %w: %q", i+1, ErrSourceOutsideContext, rule.Source))
			continue
		}

		exists, err := ctx.Exists(src)
		if err != nil {
			return fmt.Errorf("copy rule %d: %w", i+1, err)
		}
		if !exists {
			errs = append(errs, fmt.Errorf("copy rule %d: %w: %q", i+1, ErrMissingSource, rule.Source))
		}
	}

	return errors.Join(errs...)
}

// Converts a copy source into a cleaned path relative to the context root.
//
// Absolute sources are taken relative to the root. Returns false when the
// source refers to a location above the root.
func ContextPath(src string) (string, bool) {
	p := path.Clean(src)
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}

	p = strings.TrimLeft(p, "/")
	if p == "" {
		p = "."
	}
	return p, true
}
