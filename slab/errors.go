package slab

import "errors"

var (
	// ErrExhausted indicates that every representable key is in use.
	ErrExhausted = errors.New("slab: out of space")

	// ErrNoValue indicates that a key does not refer to a live value.
	ErrNoValue = errors.New("slab: key does not hold a value")
)
