package version

import "errors"

var (
	// ErrVersionNotFound indicates the version doesn't exist.
	ErrVersionNotFound = errors.New("version not found")
	// ErrInvalidInput indicates invalid version input.
	ErrInvalidInput = errors.New("invalid version input")
)
