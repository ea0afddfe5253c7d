package citation

import "errors"

var (
	// ErrNotFound is returned when a replacement needle does not occur in the buffer.
	ErrNotFound = errors.New("citation text not found")
	// ErrEmptyNeedle is returned when a replacement is asked to find the empty string.
	ErrEmptyNeedle = errors.New("empty replacement needle")
)
