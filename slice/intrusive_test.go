package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/slot"
)

type word = slot.Default[index.U32]

func rng(begin, end int) Range[index.U32] { return NewRange[index.U32](begin, end) }

// TestIntrusiveClasses_Scenario runs a fixed sequence over classes of
// 4, 8, 16, ... elements and checks every returned range.
func TestIntrusiveClasses_Scenario(t *testing.T) {
	backing := make([]word, 1024)
	ic := NewIntrusiveClasses[index.U32, word](Exp2Fine)

	expectNone := func(capacity int) {
		t.Helper()
		r, ok := ic.Alloc(capacity, backing)
		require.False(t, ok, "alloc(%d) returned %s", capacity, r)
	}
	expect := func(capacity, begin, end int) {
		t.Helper()
		r, ok := ic.Alloc(capacity, backing)
		require.True(t, ok, "alloc(%d)", capacity)
		require.Equal(t, rng(begin, end), r, "alloc(%d)", capacity)
	}

	expectNone(0)
	expectNone(4)

	ic.Dealloc(rng(0, 4), backing)
	expectNone(8)
	expect(2, 0, 4)
	expectNone(4)

	ic.Dealloc(rng(0, 7), backing)
	ic.Dealloc(rng(8, 12), backing)
	ic.Dealloc(rng(12, 24), backing)

	expect(2, 20, 24)
	expect(2, 8, 12)
	expect(3, 0, 4)
	expect(8, 12, 20)
	expectNone(3)

	ic.Dealloc(rng(12, 20), backing)
	expect(3, 12, 16)
	expect(2, 16, 20)

	ic.Dealloc(rng(0, 4), backing)
	ic.Clear()
	expectNone(4)

	assert.Equal(t, uint64(3), ic.leaked, "[4,7) is too small for any class")
	assert.Equal(t, uint64(1), ic.splits)
}

func TestIntrusiveClasses_FreeBlocks(t *testing.T) {
	backing := make([]word, 64)
	ic := NewIntrusiveClasses[index.U32, word](Exp2Fine)

	ic.Dealloc(rng(0, 4), backing)
	ic.Dealloc(rng(4, 8), backing)
	ic.Dealloc(rng(8, 12), backing)
	ic.Dealloc(rng(16, 32), backing)

	assert.Equal(t, 3, ic.FreeBlocks(1, backing))
	assert.Equal(t, 0, ic.FreeBlocks(2, backing))
	assert.Equal(t, 1, ic.FreeBlocks(3, backing))
	assert.Equal(t, 0, ic.FreeBlocks(9, backing))

	// LIFO within a class.
	expect := []Range[index.U32]{rng(8, 12), rng(4, 8), rng(0, 4)}
	for _, want := range expect {
		r, ok := ic.AllocClass(1, backing)
		require.True(t, ok)
		assert.Equal(t, want, r)
	}
	assert.Equal(t, 0, ic.FreeBlocks(1, backing))
}

// TestIntrusiveClasses_SplitCascade splits a large block down to the
// smallest class and checks the pieces left behind.
func TestIntrusiveClasses_SplitCascade(t *testing.T) {
	backing := make([]word, 64)
	ic := NewIntrusiveClasses[index.U32, word](Exp2Fine)

	ic.Dealloc(rng(0, 32), backing)
	r, ok := ic.AllocClass(1, backing)
	require.True(t, ok)
	assert.Equal(t, rng(0, 4), r)

	// 32 = 4 (taken) + 4 + 8 + 16
	assert.Equal(t, 1, ic.FreeBlocks(1, backing))
	assert.Equal(t, 1, ic.FreeBlocks(2, backing))
	assert.Equal(t, 1, ic.FreeBlocks(3, backing))
	assert.Equal(t, 0, ic.FreeBlocks(4, backing))
	assert.Equal(t, uint64(3), ic.splits)
}
