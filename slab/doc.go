// Package slab provides pools that store values in a growable slice and hand
// out small integer keys in place of pointers.
//
// # Overview
//
// A [Pool] owns a backing slice of slots. Inserting a value returns a key
// (see package index) that names its slot; removing the value frees the key
// for reuse. Keys are dense, start at 0, and are reused before the backing
// slice grows, so a pool of n live values never needs more than the peak
// number of live values in slots.
//
// # Free lists
//
// Freed keys are tracked by a [FreeList]. Two strategies are provided:
//
//   - [KeyList]: a separate stack of freed keys. Works with any slot type,
//     costs one key of memory per free slot.
//   - [IntrusiveFree]: each freed slot stores the key of the next free slot
//     and the pool keeps only the head. Costs no extra memory but needs a
//     slot that can hold a key (slot.Keyed).
//
// Both reuse keys in last-freed-first order. The key returned by the next
// insert is always available from [Pool.NextKey] without side effects.
//
//	p := slab.NewIntrusive[index.U16, string, slot.Tagged[index.U16, string]]()
//	a := p.Insert("a")   // 0
//	b := p.Insert("b")   // 1
//	p.Remove(a)
//	k, _ := p.NextKey()  // 0
//	c := p.Insert("c")   // 0 again
//
// # Exhaustion
//
// A pool keyed by K holds at most index.Max[K]()+1 values. Past that,
// [Pool.TryInsert] returns an error wrapping [ErrExhausted] and
// [Pool.Insert] panics.
//
// # Stale keys
//
// Keys carry no generation. Using a key after it has been removed is a
// caller error with unspecified results: it may return another value, a
// free-list link, or corrupt the free chain.
//
// # Thread Safety
//
// Pools are not safe for concurrent use. Callers must synchronize access.
package slab
