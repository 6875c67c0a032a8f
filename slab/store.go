package slab

import (
	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/slot"
)

// Store is the keyed-storage surface shared by Pool and Full.
type Store[K, V any] interface {
	TryInsert(v V) (K, error)
	TryRemove(key K) (V, bool)
	TryGet(key K) (*V, bool)
	NextKey() (K, bool)
	TotalSlots() int
	FreeSlots() int
}

var (
	_ Store[index.U32, string] = (*Pool[index.U32, string, slot.Tagged[index.U32, string], *slot.Tagged[index.U32, string]])(nil)
	_ Store[index.U32, string] = Full[index.U32, string]{}
)

// Full is a Store with no capacity. Every insert fails with ErrExhausted
// and every lookup misses. It stands in for a pool where a container must
// never allocate.
type Full[K, V any] struct{}

func (Full[K, V]) TryInsert(V) (K, error) {
	var zero K
	return zero, ErrExhausted
}

func (Full[K, V]) TryRemove(K) (V, bool) {
	var zero V
	return zero, false
}

func (Full[K, V]) TryGet(K) (*V, bool) { return nil, false }

func (Full[K, V]) NextKey() (K, bool) {
	var zero K
	return zero, false
}

func (Full[K, V]) TotalSlots() int { return 0 }
func (Full[K, V]) FreeSlots() int  { return 0 }
