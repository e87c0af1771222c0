package buildctx

import "errors"

var (
	ErrContext     = errors.New("build context error")
	ErrNotDir      = errors.New("build context is not a directory")
	ErrInvalidPath = errors.New("invalid context path")
)
