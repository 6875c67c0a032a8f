package slab

import (
	"fmt"
	"slices"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/internal/logger"
	"github.com/joshuapare/miniptr/slot"
)

// Stats holds operation counters for a Pool.
type Stats struct {
	Inserts   uint64 // successful inserts
	Reused    uint64 // inserts served from the free list
	Appended  uint64 // inserts that grew the backing slice
	Removes   uint64 // successful removes
	Deletes   uint64
	Exhausted uint64 // inserts rejected with ErrExhausted
}

// Pool stores values of type V in slots of type S and addresses them by keys
// of type K. PS is *S and is normally inferred.
type Pool[K index.Key[K], V any, S any, PS slot.Ptr[S, V]] struct {
	slots []S
	free  FreeList[K, V, S]
	stats Stats
}

// NewKeyList returns a pool that tracks freed keys on a separate stack.
func NewKeyList[K index.Key[K], V any, S any, PS slot.Ptr[S, V]]() *Pool[K, V, S, PS] {
	return NewWithFreeList[K, V, S, PS](&KeyList[K, V, S, PS]{})
}

// NewIntrusive returns a pool that threads its free list through the freed
// slots.
func NewIntrusive[K index.Key[K], V any, S any, PS slot.KeyPtr[S, K, V]]() *Pool[K, V, S, PS] {
	return NewWithFreeList[K, V, S, PS](NewIntrusiveFree[K, V, S, PS]())
}

// NewWithFreeList returns a pool using the given free-list strategy.
func NewWithFreeList[K index.Key[K], V any, S any, PS slot.Ptr[S, V]](free FreeList[K, V, S]) *Pool[K, V, S, PS] {
	return &Pool[K, V, S, PS]{free: free}
}

// TryInsert stores v and returns its key. When every key is in use it
// returns an error wrapping ErrExhausted and the pool is unchanged.
func (p *Pool[K, V, S, PS]) TryInsert(v V) (K, error) {
	if k, ok := p.free.Alloc(p.slots); ok {
		PS(&p.slots[k.Index()]).SetValue(v)
		p.stats.Inserts++
		p.stats.Reused++
		return k, nil
	}

	k, ok := index.TryNew[K](len(p.slots))
	if !ok {
		p.stats.Exhausted++
		if logger.DebugEnabled() {
			logger.Debug("slab exhausted", "slots", len(p.slots), "max_index", index.Max[K]())
		}
		return k, fmt.Errorf("%w: current size %d", ErrExhausted, len(p.slots))
	}

	var s S
	PS(&s).SetValue(v)
	p.slots = append(p.slots, s)
	p.stats.Inserts++
	p.stats.Appended++
	return k, nil
}

// Insert is TryInsert that panics when the pool is exhausted.
func (p *Pool[K, V, S, PS]) Insert(v V) K {
	k, err := p.TryInsert(v)
	if err != nil {
		panic(err)
	}
	return k
}

// TryRemove frees key and returns its value. It reports false when key is
// past the end of the pool or its slot is known to hold no value; the free
// list is then left as it was. Only tagged slots can tell a free slot from a
// live one, so removing a free key from a raw-slot pool is undefined.
func (p *Pool[K, V, S, PS]) TryRemove(key K) (V, bool) {
	v, ok := p.free.Remove(key, p.slots)
	if ok {
		p.stats.Removes++
	}
	return v, ok
}

// Remove frees key and returns its value. It panics where TryRemove would
// report false.
func (p *Pool[K, V, S, PS]) Remove(key K) V {
	v, ok := p.TryRemove(key)
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrNoValue, key.Index()))
	}
	return v
}

// Delete frees key and discards its value. Keys TryRemove would reject are
// ignored.
func (p *Pool[K, V, S, PS]) Delete(key K) {
	if p.free.Delete(key, p.slots) {
		p.stats.Deletes++
	}
}

// Get returns a pointer to the value stored under key. The pointer may be
// used to modify the value and is valid until the next insert. Get panics if
// key is past the end of the pool or, for tagged slots, if the slot is free.
func (p *Pool[K, V, S, PS]) Get(key K) *V {
	v, ok := PS(&p.slots[key.Index()]).Value()
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrNoValue, key.Index()))
	}
	return v
}

// TryGet is Get without panics.
func (p *Pool[K, V, S, PS]) TryGet(key K) (*V, bool) {
	i := key.Index()
	if i >= len(p.slots) {
		return nil, false
	}
	return PS(&p.slots[i]).Value()
}

// At returns a copy of the value stored under key.
func (p *Pool[K, V, S, PS]) At(key K) V {
	return *p.Get(key)
}

// Slot returns the raw slot for key, including free slots.
func (p *Pool[K, V, S, PS]) Slot(key K) (*S, bool) {
	i := key.Index()
	if i >= len(p.slots) {
		return nil, false
	}
	return &p.slots[i], true
}

// NextKey returns the key the next successful insert will return, or false
// if the pool is exhausted.
func (p *Pool[K, V, S, PS]) NextKey() (K, bool) {
	if k, ok := p.free.Next(p.slots); ok {
		return k, true
	}
	return index.TryNew[K](len(p.slots))
}

// Capacity returns the number of slots the backing slice can hold without
// reallocating.
func (p *Pool[K, V, S, PS]) Capacity() int { return cap(p.slots) }

// TotalSlots returns the number of slots in use or free.
func (p *Pool[K, V, S, PS]) TotalSlots() int { return len(p.slots) }

// FreeSlots returns the number of free slots. Linear for intrusive lists.
func (p *Pool[K, V, S, PS]) FreeSlots() int { return p.free.Len(p.slots) }

// Len returns the number of live values.
func (p *Pool[K, V, S, PS]) Len() int { return len(p.slots) - p.FreeSlots() }

// FreeCapacity returns how many values can be inserted without
// reallocating the backing slice.
func (p *Pool[K, V, S, PS]) FreeCapacity() int {
	return cap(p.slots) - len(p.slots) + p.FreeSlots()
}

// Clear drops every value and key but keeps the backing capacity.
func (p *Pool[K, V, S, PS]) Clear() {
	p.free.Clear()
	clear(p.slots)
	p.slots = p.slots[:0]
}

// Reserve makes room for at least n more slots.
func (p *Pool[K, V, S, PS]) Reserve(n int) {
	p.slots = slices.Grow(p.slots, n)
}

// ShrinkToFit releases unused backing capacity.
func (p *Pool[K, V, S, PS]) ShrinkToFit() {
	if cap(p.slots) == len(p.slots) {
		return
	}
	shrunk := make([]S, len(p.slots))
	copy(shrunk, p.slots)
	p.slots = shrunk
}

// Stats returns a snapshot of the operation counters.
func (p *Pool[K, V, S, PS]) Stats() Stats { return p.stats }
