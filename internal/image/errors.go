package image

import "errors"

var (
	ErrInvalidReference = errors.New("invalid image reference")
	ErrUnknownImage     = errors.New("unknown image")
	ErrInvalidPlatform  = errors.New("invalid platform")
	ErrNoCommand        = errors.New("no default command")
)
