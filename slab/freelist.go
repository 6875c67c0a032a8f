package slab

import (
	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/slot"
)

// FreeList tracks the free slots of a backing slice and decides the order in
// which they are reused. The backing slice is passed in on every call; the
// list never retains it.
type FreeList[K, V, S any] interface {
	// Alloc pops the next free key. It returns false when the pool must
	// append a new slot instead.
	Alloc(backing []S) (K, bool)

	// Delete frees key, discarding its value. It reports false, leaving the
	// list untouched, when key is out of range or its slot holds no value.
	Delete(key K, backing []S) bool

	// Remove frees key and returns its value, with the same false cases as
	// Delete.
	Remove(key K, backing []S) (V, bool)

	// Next returns the key Alloc would return, without popping it.
	Next(backing []S) (K, bool)

	// Len counts free slots. May be linear in the number of free slots.
	Len(backing []S) int

	// Clear forgets every free slot.
	Clear()
}

// KeyList keeps freed keys on a separate stack.
type KeyList[K index.Key[K], V any, S any, PS slot.Ptr[S, V]] struct {
	keys []K
}

func (l *KeyList[K, V, S, PS]) Alloc([]S) (K, bool) {
	n := len(l.keys)
	if n == 0 {
		var zero K
		return zero, false
	}
	k := l.keys[n-1]
	l.keys = l.keys[:n-1]
	return k, true
}

func (l *KeyList[K, V, S, PS]) Delete(key K, backing []S) bool {
	i := key.Index()
	if i >= len(backing) {
		return false
	}
	if _, ok := PS(&backing[i]).Value(); !ok {
		return false
	}
	PS(&backing[i]).DeleteValue()
	l.keys = append(l.keys, key)
	return true
}

func (l *KeyList[K, V, S, PS]) Remove(key K, backing []S) (V, bool) {
	i := key.Index()
	if i >= len(backing) {
		var zero V
		return zero, false
	}
	v, ok := PS(&backing[i]).RemoveValue()
	if ok {
		l.keys = append(l.keys, key)
	}
	return v, ok
}

func (l *KeyList[K, V, S, PS]) Next([]S) (K, bool) {
	n := len(l.keys)
	if n == 0 {
		var zero K
		return zero, false
	}
	return l.keys[n-1], true
}

func (l *KeyList[K, V, S, PS]) Len([]S) int { return len(l.keys) }
func (l *KeyList[K, V, S, PS]) Clear()      { l.keys = l.keys[:0] }

// noFree marks an empty intrusive list.
const noFree = -1

// IntrusiveFree threads the free list through the freed slots themselves.
// Each free slot stores the key of the next one; the last one stores its own
// key. Use NewIntrusiveFree; the zero value is not an empty list.
type IntrusiveFree[K index.Key[K], V any, S any, PS slot.KeyPtr[S, K, V]] struct {
	head int
}

// NewIntrusiveFree returns an empty intrusive free list.
func NewIntrusiveFree[K index.Key[K], V any, S any, PS slot.KeyPtr[S, K, V]]() *IntrusiveFree[K, V, S, PS] {
	return &IntrusiveFree[K, V, S, PS]{head: noFree}
}

func (l *IntrusiveFree[K, V, S, PS]) Alloc(backing []S) (K, bool) {
	var zero K
	if l.head < 0 || l.head >= len(backing) {
		return zero, false
	}
	cur := l.head
	link, _ := PS(&backing[cur]).Key()
	if next := link.Index(); next == cur {
		l.head = noFree
	} else {
		l.head = next
	}
	return zero.FromIndex(cur), true
}

// occupied reports whether slot i exists and holds a value. A freed tagged
// slot must keep its link, or the chain would loop back on itself.
func (l *IntrusiveFree[K, V, S, PS]) occupied(i int, backing []S) bool {
	if i >= len(backing) {
		return false
	}
	_, ok := PS(&backing[i]).Value()
	return ok
}

// link returns what a newly freed slot at key should point to.
func (l *IntrusiveFree[K, V, S, PS]) link(key K) K {
	if l.head < 0 {
		return key
	}
	return key.FromIndex(l.head)
}

func (l *IntrusiveFree[K, V, S, PS]) Delete(key K, backing []S) bool {
	i := key.Index()
	if !l.occupied(i, backing) {
		return false
	}
	PS(&backing[i]).SetKey(l.link(key))
	l.head = i
	return true
}

func (l *IntrusiveFree[K, V, S, PS]) Remove(key K, backing []S) (V, bool) {
	i := key.Index()
	if !l.occupied(i, backing) {
		var zero V
		return zero, false
	}
	v, ok := PS(&backing[i]).SwapKey(l.link(key))
	if ok {
		l.head = i
	}
	return v, ok
}

func (l *IntrusiveFree[K, V, S, PS]) Next(backing []S) (K, bool) {
	var zero K
	if l.head < 0 || l.head >= len(backing) {
		return zero, false
	}
	return zero.FromIndex(l.head), true
}

func (l *IntrusiveFree[K, V, S, PS]) Len(backing []S) int {
	n := 0
	for cur := l.head; cur >= 0 && cur < len(backing); {
		n++
		link, _ := PS(&backing[cur]).Key()
		next := link.Index()
		if next == cur {
			break
		}
		cur = next
	}
	return n
}

func (l *IntrusiveFree[K, V, S, PS]) Clear() { l.head = noFree }
