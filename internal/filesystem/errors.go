package filesystem

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a scan root or a resolved target does not exist
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied is returned when a resolved path escapes the configured root
	ErrAccessDenied = errors.New("access denied: path outside allowed directory")

	// ErrInvalidPath is returned for an empty relative path
	ErrInvalidPath = errors.New("no path provided")

	// ErrNotAFile is returned when a resolved target is a directory
	ErrNotAFile = errors.New("not a regular file")
)

// ReadError describes a file that could not be opened, stat'ed or read
type ReadError struct {
	Path string
	Op   string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
