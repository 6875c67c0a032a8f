// Package buf holds overflow-checked arithmetic and range checks shared by
// the pools.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the product would overflow or either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckRange validates that [begin, end) lies within a buffer of length n.
func CheckRange(n, begin, end int) error {
	switch {
	case begin < 0:
		return fmt.Errorf("negative begin: %d", begin)
	case end < begin:
		return fmt.Errorf("inverted range: [%d, %d)", begin, end)
	case end > n:
		return fmt.Errorf("bounds: end=%d > len=%d", end, n)
	}
	return nil
}
