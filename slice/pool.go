package slice

import (
	"fmt"
	"slices"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/internal/buf"
	"github.com/joshuapare/miniptr/internal/logger"
	"github.com/joshuapare/miniptr/slot"
)

// Stats holds operation counters for a Pool.
type Stats struct {
	Allocs      uint64 // successful allocations
	Splits      uint64 // blocks split to refill a smaller class
	Grows       uint64 // allocations served by growing the backing slice
	Deallocs    uint64
	LeakedUnits uint64 // elements lost to tails smaller than any class
	Failed      uint64 // allocations that returned an error
}

// Pool hands out ranges of a backing slice of T, addressed by keys of type
// K. Free blocks store their links in their first element, so T must be
// able to hold a K (see slot.Linker).
type Pool[K index.Key[K], T any, PT slot.LinkPtr[T, K]] struct {
	backing []T
	free    *IntrusiveClasses[K, T, PT]
	fixed   bool
	stats   Stats
}

// NewPool returns an empty pool whose backing slice grows on demand.
func NewPool[K index.Key[K], T any, PT slot.LinkPtr[T, K]](classes SizeClasses) *Pool[K, T, PT] {
	return &Pool[K, T, PT]{free: NewIntrusiveClasses[K, T, PT](classes)}
}

// NewPoolOn returns a pool that allocates inside backing and never
// reallocates it. The pool uses the full capacity of backing.
func NewPoolOn[K index.Key[K], T any, PT slot.LinkPtr[T, K]](classes SizeClasses, backing []T) *Pool[K, T, PT] {
	p := NewPool[K, T, PT](classes)
	p.backing = backing[:0]
	p.fixed = true
	return p
}

// Alloc returns a range of at least capacity elements. The contents of a
// reused range are unspecified. A capacity of 0 yields an empty range.
func (p *Pool[K, T, PT]) Alloc(capacity int) (Range[K], error) {
	if capacity == 0 {
		return NewRange[K](0, 0), nil
	}

	classes := p.free.classes
	c := classes.ClassContaining(capacity)
	if capacity < 0 || c == 0 || c == NoClass {
		p.stats.Failed++
		return Range[K]{}, fmt.Errorf("%w: %d", ErrNoClass, capacity)
	}

	splits, leaked := p.free.splits, p.free.leaked
	if r, ok := p.free.AllocClass(c, p.backing); ok {
		p.stats.Allocs++
		p.stats.Splits += p.free.splits - splits
		p.stats.LeakedUnits += p.free.leaked - leaked
		return r, nil
	}

	size := classes.Capacity(c)
	begin := len(p.backing)
	end, ok := buf.AddOverflowSafe(begin, size)
	if !ok || end > index.Max[K]() {
		return p.exhausted(capacity)
	}
	if end > cap(p.backing) {
		if p.fixed {
			return p.exhausted(capacity)
		}
		p.backing = slices.Grow(p.backing, size)
	}
	p.backing = p.backing[:end]
	clear(p.backing[begin:end])

	p.stats.Allocs++
	p.stats.Grows++
	if logger.DebugEnabled() {
		logger.Debug("slice pool grow", "class", c, "begin", begin, "end", end, "cap", cap(p.backing))
	}
	return NewRange[K](begin, end), nil
}

func (p *Pool[K, T, PT]) exhausted(capacity int) (Range[K], error) {
	p.stats.Failed++
	if logger.DebugEnabled() {
		logger.Debug("slice pool exhausted", "capacity", capacity, "len", len(p.backing), "fixed", p.fixed)
	}
	return Range[K]{}, fmt.Errorf("%w: need %d more elements, len %d cap %d",
		ErrExhausted, capacity, len(p.backing), cap(p.backing))
}

// MustAlloc is Alloc that panics on error.
func (p *Pool[K, T, PT]) MustAlloc(capacity int) Range[K] {
	r, err := p.Alloc(capacity)
	if err != nil {
		panic(err)
	}
	return r
}

// Dealloc returns r to the pool. r must have come from Alloc and not been
// freed since; passing a range that was rounded down or split by the caller
// is allowed and frees the pieces that fit a class.
func (p *Pool[K, T, PT]) Dealloc(r Range[K]) error {
	if r.IsEmpty() {
		return nil
	}
	if err := buf.CheckRange(len(p.backing), r.Begin.Index(), r.End.Index()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadRange, r, err)
	}
	leaked := p.free.leaked
	p.free.Dealloc(r, p.backing)
	p.stats.Deallocs++
	if n := p.free.leaked - leaked; n > 0 {
		p.stats.LeakedUnits += n
		if logger.DebugEnabled() {
			logger.Debug("slice pool leaked tail", "range", r.String(), "units", n)
		}
	}
	return nil
}

// Slice returns the elements of r. The slice aliases the backing buffer and
// is invalidated by the next Alloc that grows the pool.
func (p *Pool[K, T, PT]) Slice(r Range[K]) []T {
	return p.backing[r.Begin.Index():r.End.Index()]
}

// Clear frees every range and truncates the backing slice.
func (p *Pool[K, T, PT]) Clear() {
	p.free.Clear()
	clear(p.backing)
	p.backing = p.backing[:0]
}

// FreeBlocks counts the free blocks of class.
func (p *Pool[K, T, PT]) FreeBlocks(class uint32) int {
	return p.free.FreeBlocks(class, p.backing)
}

// Classes returns the pool's size class table.
func (p *Pool[K, T, PT]) Classes() SizeClasses { return p.free.classes }

// Len returns the number of backing elements in use or free.
func (p *Pool[K, T, PT]) Len() int { return len(p.backing) }

// Cap returns the capacity of the backing slice.
func (p *Pool[K, T, PT]) Cap() int { return cap(p.backing) }

// Stats returns a snapshot of the operation counters.
func (p *Pool[K, T, PT]) Stats() Stats { return p.stats }
