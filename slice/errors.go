package slice

import "errors"

var (
	// ErrNoClass indicates that no size class can hold the requested capacity.
	ErrNoClass = errors.New("slice: no size class for capacity")

	// ErrExhausted indicates that the backing buffer cannot grow any further.
	ErrExhausted = errors.New("slice: backing buffer exhausted")

	// ErrBadSizeClasses indicates invalid size class parameters.
	ErrBadSizeClasses = errors.New("slice: invalid size class parameters")

	// ErrBadRange indicates a range outside the backing buffer.
	ErrBadRange = errors.New("slice: range out of bounds")
)
