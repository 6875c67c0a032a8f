package slice

import (
	"fmt"

	"github.com/joshuapare/miniptr/index"
)

// Range is the half-open interval [Begin, End) of backing indices.
type Range[K index.Key[K]] struct {
	Begin K
	End   K
}

// NewRange builds a range from plain indices without range checks.
func NewRange[K index.Key[K]](begin, end int) Range[K] {
	return Range[K]{Begin: index.NewUnchecked[K](begin), End: index.NewUnchecked[K](end)}
}

// Len returns the number of elements in the range.
func (r Range[K]) Len() int { return r.End.Index() - r.Begin.Index() }

// IsEmpty reports whether the range has no elements.
func (r Range[K]) IsEmpty() bool { return r.Len() <= 0 }

func (r Range[K]) String() string {
	return fmt.Sprintf("[%d, %d)", r.Begin.Index(), r.End.Index())
}
