// Package slice allocates variable-length ranges of indices out of one
// backing slice.
//
// # Overview
//
// Callers that need many short arrays (adjacency lists, small strings,
// per-node children) can carve them out of a single []T instead of making
// one Go slice each. An allocation is a [Range] of keys; the caller reads
// and writes the elements through [Pool.Slice].
//
// # Size Classes
//
// Every range has the capacity of a size class. [SizeClasses] maps requested
// capacities to classes; [Exp2Size] provides exponential classes where
// class c holds 2^(B+(c-1)N) elements:
//
//	Exp2Fine     (N=1, B=2):  4, 8, 16, 32, ...
//	Exp2Balanced (N=2, B=3):  8, 32, 128, 512, ...
//	Exp2Coarse   (N=3, B=4): 16, 128, 1024, ...
//
// Class 0 always has capacity 0 and is never allocated.
//
// # Free Lists
//
// [IntrusiveClasses] keeps one free list per class and stores the links in
// the first element of each free block, so the bookkeeping costs one int
// per class. When a class is empty, one block of the next larger class is
// split: the caller gets its low prefix and the rest is freed back in the
// largest pieces that fit.
//
// Freed ranges are never coalesced with their neighbors. A leftover smaller
// than the smallest class cannot be tracked and is leaked; [Stats] counts
// those units.
//
// # Thread Safety
//
// Pools are not safe for concurrent use.
package slice
