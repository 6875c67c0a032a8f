// Package slot defines the storage cell used by the slab pools and the three
// cell layouts they are instantiated with.
//
// A slot holds either a live value or, once freed, the key of the next free
// slot (a link). Which of the two a slot currently holds is tracked by the
// pool, not the slot, except for [Tagged] which records it explicitly.
//
// # Variants
//
//   - [Tagged] stores a tag next to the key and value and can answer
//     HasValue and HasKey. Freed values are dropped.
//   - [Default] stores a single raw value whose type doubles as the key type.
//     Removal resets it to the zero value.
//   - [Clone] stores a single raw value and never clears it. Removal returns
//     a copy and leaves the old contents in place.
package slot

// Slot holds a value and gives access to it.
type Slot[V any] interface {
	SetValue(v V)
	// Value returns a pointer to the stored value. The pointer is only
	// valid until the slot is next modified.
	Value() (*V, bool)
}

// Remover is a Slot whose value can be taken out.
type Remover[V any] interface {
	Slot[V]
	// RemoveValue extracts the stored value and neutralizes the slot.
	RemoveValue() (V, bool)
	// DeleteValue neutralizes the slot without returning the value.
	DeleteValue()
}

// Linker stores a free-list link.
type Linker[K any] interface {
	SetKey(k K)
	Key() (K, bool)
}

// Keyed slots can hold either a value or a link.
type Keyed[K, V any] interface {
	Remover[V]
	Linker[K]
	// SwapKey stores k and returns the value that was there.
	SwapKey(k K) (V, bool)
}

// Checked slots know which of the two they hold.
type Checked[K, V any] interface {
	Keyed[K, V]
	HasValue() bool
	HasKey() bool
}

// Ptr constrains a pointer to a slot type S so generic pools can store S by
// value in a slice and still call pointer methods on its elements.
type Ptr[S, V any] interface {
	*S
	Remover[V]
}

// KeyPtr is Ptr for slots that can also store links.
type KeyPtr[S, K, V any] interface {
	*S
	Keyed[K, V]
}

// LinkPtr is the pointer constraint for plain link storage.
type LinkPtr[S, K any] interface {
	*S
	Linker[K]
}

var (
	_ Checked[uint32, string] = (*Tagged[uint32, string])(nil)
	_ Keyed[uint32, uint32]   = (*Default[uint32])(nil)
	_ Keyed[uint32, uint32]   = (*Clone[uint32])(nil)
)
