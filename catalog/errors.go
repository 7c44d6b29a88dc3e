package catalog

import "errors"

var (
	ErrNotFound       = errors.New("script not found")
	ErrDuplicate      = errors.New("script already exists")
	ErrMissingContent = errors.New("script content not provided and no file at target path")
)
