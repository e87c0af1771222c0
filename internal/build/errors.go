package build

import "errors"

var (
	ErrBuild               = errors.New("descriptor resolution failed")
	ErrFileSystemOperation = errors.New("file system operation failed")
)
