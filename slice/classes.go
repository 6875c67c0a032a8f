package slice

import (
	"fmt"
	"math"
	"math/bits"
)

// NoClass is returned by ClassContaining when no class is large enough.
const NoClass = math.MaxUint32

// SizeClasses maps capacities to size classes. Capacity must be
// non-decreasing in the class and Capacity(0) must be 0.
type SizeClasses interface {
	// ClassContaining returns the smallest class whose capacity is at least
	// capacity, or NoClass.
	ClassContaining(capacity int) uint32

	// ClassContained returns the largest class whose capacity is at most
	// capacity.
	ClassContained(capacity int) uint32

	// Capacity returns the number of elements in a block of class. The
	// result for a class that does not exist is unspecified.
	Capacity(class uint32) int

	// SplitSource returns the class whose blocks are split to refill
	// class, or false if class cannot be refilled by splitting.
	SplitSource(class uint32) (uint32, bool)
}

// RoundUp returns the capacity of the class containing capacity.
func RoundUp(sc SizeClasses, capacity int) (int, bool) {
	c := sc.ClassContaining(capacity)
	if c == NoClass {
		return 0, false
	}
	return sc.Capacity(c), true
}

// RoundDown returns the capacity of the class contained in capacity.
func RoundDown(sc SizeClasses, capacity int) int {
	return sc.Capacity(sc.ClassContained(capacity))
}

// ClassExact returns the class whose capacity is exactly capacity.
func ClassExact(sc SizeClasses, capacity int) (uint32, bool) {
	c := sc.ClassContaining(capacity)
	if c == NoClass || sc.Capacity(c) != capacity {
		return 0, false
	}
	return c, true
}

// maxShift is the largest shift for which 1<<maxShift fits in an int.
const maxShift = bits.UintSize - 2

// Exp2Size is a family of exponential size classes:
// Capacity(c) = 2^(B + (c-1)*N) for c > 0.
type Exp2Size struct {
	N uint // log2 of the ratio between neighboring classes, at least 1
	B uint // log2 of the capacity of class 1
}

// Predefined size class families.
var (
	// Exp2Fine doubles per class starting at 4 elements.
	Exp2Fine = Exp2Size{N: 1, B: 2}

	// Exp2Balanced quadruples per class starting at 8 elements.
	Exp2Balanced = Exp2Size{N: 2, B: 3}

	// Exp2Coarse grows 8x per class starting at 16 elements.
	Exp2Coarse = Exp2Size{N: 3, B: 4}
)

// NewExp2Size validates n and b.
func NewExp2Size(n, b uint) (Exp2Size, error) {
	if n == 0 || b > maxShift {
		return Exp2Size{}, fmt.Errorf("%w: N=%d B=%d", ErrBadSizeClasses, n, b)
	}
	return Exp2Size{N: n, B: b}, nil
}

func (e Exp2Size) String() string {
	return fmt.Sprintf("exp2(N=%d, B=%d)", e.N, e.B)
}

// MaxClass returns the largest class whose capacity fits in an int.
func (e Exp2Size) MaxClass() uint32 {
	if e.N == 0 || e.B > maxShift {
		return 0
	}
	return uint32(1 + (maxShift-e.B)/e.N)
}

func (e Exp2Size) Capacity(class uint32) int {
	switch {
	case class == 0:
		return 0
	case class > e.MaxClass():
		return math.MaxInt
	}
	return 1 << (e.B + uint(class-1)*e.N)
}

func (e Exp2Size) ClassContained(capacity int) uint32 {
	if e.N == 0 || e.B > maxShift || capacity < 1<<e.B {
		return 0
	}
	log2 := uint(bits.Len(uint(capacity))) - 1
	return uint32(1 + (log2-e.B)/e.N)
}

func (e Exp2Size) ClassContaining(capacity int) uint32 {
	if capacity <= 0 {
		return 0
	}
	c := e.ClassContained(capacity)
	if e.Capacity(c) < capacity {
		c++
		if c > e.MaxClass() {
			return NoClass
		}
	}
	return c
}

func (e Exp2Size) SplitSource(class uint32) (uint32, bool) {
	if class == 0 || class >= e.MaxClass() {
		return 0, false
	}
	return class + 1, true
}
