package index

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Key is implemented by every key type. The type parameter is the key type
// itself, so generic code can construct keys without reflection.
type Key[K any] interface {
	comparable

	// Index returns the index this key was constructed from.
	Index() int

	// MaxIndex returns the largest index the key type can represent.
	// It must not depend on the receiver, so the zero value can be used.
	MaxIndex() int

	// FromIndex builds a key without range checking. Out-of-range input
	// yields an unspecified, but valid, key.
	FromIndex(n int) K

	// Compare orders keys by index. For negated keys this is the reverse
	// of the raw integer order.
	Compare(other K) int
}

// Max returns the largest index representable by K.
func Max[K Key[K]]() int {
	var k K
	return k.MaxIndex()
}

// TryNew returns the key for n, or false if n is negative or larger than
// Max[K]().
func TryNew[K Key[K]](n int) (K, bool) {
	var k K
	if n < 0 || n > k.MaxIndex() {
		return k, false
	}
	return k.FromIndex(n), true
}

// New returns the key for n and panics when n is not representable.
func New[K Key[K]](n int) K {
	k, ok := TryNew[K](n)
	if !ok {
		panic(fmt.Sprintf("%d is not representable as a %T", n, k))
	}
	return k
}

// NewUnchecked returns the key for n without a range check.
func NewUnchecked[K Key[K]](n int) K {
	var k K
	return k.FromIndex(n)
}

// IsZero reports whether k is the key for index 0.
func IsZero[K Key[K]](k K) bool {
	var z K
	return k == z.FromIndex(0)
}

// maxIndexOf computes the largest non-negative value of T, capped at
// math.MaxInt.
func maxIndexOf[T constraints.Integer]() int {
	var zero T
	width := uint(unsafe.Sizeof(zero)) * 8

	var maxVal uint64
	switch {
	case ^zero < 0:
		maxVal = 1<<(width-1) - 1
	case width >= 64:
		maxVal = math.MaxUint64
	default:
		maxVal = 1<<width - 1
	}
	if maxVal > math.MaxInt {
		return math.MaxInt
	}
	return int(maxVal)
}

// negIndex decodes a negated representation: -1 is 0, -2 is 1, ...
func negIndex[T constraints.Signed](v T) int {
	return -(int(v) + 1)
}

func negFrom[T constraints.Signed](n int) T {
	return T(-n - 1)
}
