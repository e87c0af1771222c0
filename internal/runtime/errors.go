package runtime

import "errors"

var (
	ErrRuntime = errors.New("image store error")
)
