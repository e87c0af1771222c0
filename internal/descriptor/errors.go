package descriptor

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBaseImage     = errors.New("missing base image")
	ErrDuplicateDirective   = errors.New("duplicate directive")
	ErrInvalidCopyRule      = errors.New("invalid copy rule")
	ErrMissingSource        = errors.New("missing source")
	ErrSyntax               = errors.New("syntax error")
	ErrUnknownDirective     = errors.New("unknown directive")
	ErrMisplacedDirective   = errors.New("misplaced directive")
	ErrSourceOutsideContext = fmt.Errorf("%w: source outside build context", ErrMissingSource)
)

// Reports a failure at a specific line of the descriptor text.
//
// Err holds one of the package sentinels, possibly wrapped with detail, so
// callers can match it with [errors.Is].
type ParseError struct {
	Line int   // 1-based line on which the offending directive starts. Zero when not tied to a line.
	Err  error // Underlying cause.
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wraps a sentinel with a formatted detail message and ties it to a line.
func lineErrorf(line int, sentinel error, format string, args ...any) error {
	return &ParseError{
		Line: line,
		Err:  fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}
