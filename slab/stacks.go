package slab

import (
	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/slot"
)

// Stacks treats each value of a pool of slices as a stack.
//
// Methods that may change a stack's storage return the key to use from then
// on. A slab never relocates values, so that key is always the one passed
// in; callers should still use the returned key.
type Stacks[K index.Key[K], E any, S any, PS slot.Ptr[S, []E]] struct {
	pool *Pool[K, []E, S, PS]
}

// NewStacks wraps pool.
func NewStacks[K index.Key[K], E any, S any, PS slot.Ptr[S, []E]](pool *Pool[K, []E, S, PS]) *Stacks[K, E, S, PS] {
	return &Stacks[K, E, S, PS]{pool: pool}
}

// Pool returns the underlying pool.
func (s *Stacks[K, E, S, PS]) Pool() *Pool[K, []E, S, PS] { return s.pool }

// InsertEmpty allocates an empty stack.
func (s *Stacks[K, E, S, PS]) InsertEmpty() (K, error) {
	return s.pool.TryInsert(nil)
}

// InsertWithCapacity allocates an empty stack with room for n elements.
func (s *Stacks[K, E, S, PS]) InsertWithCapacity(n int) (K, error) {
	return s.pool.TryInsert(make([]E, 0, n))
}

// InsertFromSlice allocates a stack holding a copy of elems, with elems[0]
// at the bottom. The caller keeps ownership of elems.
func (s *Stacks[K, E, S, PS]) InsertFromSlice(elems []E) (K, error) {
	return s.pool.TryInsert(append(make([]E, 0, len(elems)), elems...))
}

// Remove frees the stack under key and returns its elements.
func (s *Stacks[K, E, S, PS]) Remove(key K) []E {
	return s.pool.Remove(key)
}

func (s *Stacks[K, E, S, PS]) Push(key K, e E) {
	st := s.pool.Get(key)
	*st = append(*st, e)
}

// Pop removes and returns the top element.
func (s *Stacks[K, E, S, PS]) Pop(key K) (E, bool) {
	st := s.pool.Get(key)
	var zero E
	n := len(*st)
	if n == 0 {
		return zero, false
	}
	e := (*st)[n-1]
	(*st)[n-1] = zero
	*st = (*st)[:n-1]
	return e, true
}

// IntoPushed pushes e and returns the key of the stack.
func (s *Stacks[K, E, S, PS]) IntoPushed(key K, e E) K {
	s.Push(key, e)
	return key
}

// IntoPopped pops the top element and returns the key of the stack.
func (s *Stacks[K, E, S, PS]) IntoPopped(key K) (K, E, bool) {
	e, ok := s.Pop(key)
	return key, e, ok
}

// Len returns the number of elements on the stack.
func (s *Stacks[K, E, S, PS]) Len(key K) int { return len(*s.pool.Get(key)) }

// IsEmpty reports whether the stack has no elements.
func (s *Stacks[K, E, S, PS]) IsEmpty(key K) bool { return s.Len(key) == 0 }

// StackCapacity returns how many elements fit before the stack reallocates.
func (s *Stacks[K, E, S, PS]) StackCapacity(key K) int { return cap(*s.pool.Get(key)) }

// ClearStack empties the stack but keeps its storage.
func (s *Stacks[K, E, S, PS]) ClearStack(key K) K {
	st := s.pool.Get(key)
	clear(*st)
	*st = (*st)[:0]
	return key
}

// Index returns a pointer to element i, counting from the bottom.
func (s *Stacks[K, E, S, PS]) Index(key K, i int) (*E, bool) {
	st := *s.pool.Get(key)
	if i < 0 || i >= len(st) {
		return nil, false
	}
	return &st[i], true
}
