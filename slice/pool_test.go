package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/slot"
)

func TestPool_AllocGrowsBacking(t *testing.T) {
	p := NewPool[index.U32, word](Exp2Fine)

	a, err := p.Alloc(3)
	require.NoError(t, err)
	assert.Equal(t, rng(0, 4), a)

	b, err := p.Alloc(5)
	require.NoError(t, err)
	assert.Equal(t, rng(4, 12), b)
	assert.Equal(t, 12, p.Len())

	st := p.Stats()
	assert.Equal(t, uint64(2), st.Allocs)
	assert.Equal(t, uint64(2), st.Grows)
}

// TestPool_FreeThenRealloc checks that a freed range is handed back for a
// request of the same class.
func TestPool_FreeThenRealloc(t *testing.T) {
	p := NewPool[index.U32, word](Exp2Fine)
	a := p.MustAlloc(8)
	p.MustAlloc(8)
	require.NoError(t, p.Dealloc(a))

	again, err := p.Alloc(6)
	require.NoError(t, err)
	assert.Equal(t, a, again)
	assert.Equal(t, 16, p.Len(), "no growth for a reused range")
}

func TestPool_SplitsLargerBlock(t *testing.T) {
	p := NewPool[index.U32, word](Exp2Fine)
	big := p.MustAlloc(16)
	require.NoError(t, p.Dealloc(big))

	small := p.MustAlloc(4)
	assert.Equal(t, rng(0, 4), small)
	assert.Equal(t, rng(4, 8), p.MustAlloc(4))
	assert.Equal(t, rng(8, 16), p.MustAlloc(8))
	assert.Equal(t, 16, p.Len())
	assert.Equal(t, uint64(2), p.Stats().Splits)
}

func TestPool_SliceAccess(t *testing.T) {
	p := NewPool[index.U32, slot.Default[index.U32]](Exp2Fine)
	r := p.MustAlloc(4)
	s := p.Slice(r)
	require.Len(t, s, 4)
	for i := range s {
		s[i].Raw = index.U32(i * 10)
	}
	assert.Equal(t, index.U32(30), p.Slice(r)[3].Raw)
}

func TestPool_ZeroAndInvalidCapacity(t *testing.T) {
	p := NewPool[index.U32, word](Exp2Fine)
	r, err := p.Alloc(0)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, p.Len())
	require.NoError(t, p.Dealloc(r))

	_, err = p.Alloc(-1)
	require.ErrorIs(t, err, ErrNoClass)
	assert.Equal(t, uint64(1), p.Stats().Failed)
}

func TestPool_KeyLimit(t *testing.T) {
	p := NewPool[index.U8, slot.Default[index.U8]](Exp2Fine)
	r, err := p.Alloc(128)
	require.NoError(t, err)
	assert.Equal(t, 128, r.End.Index())

	_, err = p.Alloc(128)
	require.ErrorIs(t, err, ErrExhausted, "end 256 is not a U8")

	r2, err := p.Alloc(64)
	require.NoError(t, err)
	assert.Equal(t, NewRange[index.U8](128, 192), r2)
}

func TestPool_FixedBacking(t *testing.T) {
	backing := make([]word, 0, 16)
	p := NewPoolOn[index.U32, word](Exp2Fine, backing)

	p.MustAlloc(8)
	p.MustAlloc(8)
	_, err := p.Alloc(4)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 16, p.Cap())

	s := p.Slice(rng(0, 1))
	s[0].Raw = 99
	assert.Equal(t, index.U32(99), backing[:1][0].Raw, "fixed pool writes into the caller's buffer")
}

func TestPool_DeallocErrors(t *testing.T) {
	p := NewPool[index.U32, word](Exp2Fine)
	p.MustAlloc(4)
	err := p.Dealloc(rng(0, 8))
	require.ErrorIs(t, err, ErrBadRange)
}

func TestPool_LeakAccounting(t *testing.T) {
	p := NewPool[index.U32, word](Exp2Fine)
	r := p.MustAlloc(8)
	// Freeing 7 of 8 elements leaves a 3 element tail nobody can track.
	require.NoError(t, p.Dealloc(rng(r.Begin.Index(), r.End.Index()-1)))
	assert.Equal(t, uint64(3), p.Stats().LeakedUnits)
	assert.Equal(t, 1, p.FreeBlocks(1))
}

func TestPool_Clear(t *testing.T) {
	p := NewPool[index.U32, word](Exp2Fine)
	a := p.MustAlloc(4)
	p.MustAlloc(4)
	require.NoError(t, p.Dealloc(a))
	p.Clear()
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.FreeBlocks(1))
	assert.Equal(t, rng(0, 4), p.MustAlloc(4))
}

// TestPool_ChurnStaysInBounds allocates and frees randomly sized ranges and
// checks no two live ranges overlap.
func TestPool_ChurnStaysInBounds(t *testing.T) {
	p := NewPool[index.U32, word](Exp2Balanced)
	owner := map[int]int{}
	var live []Range[index.U32]

	seed := uint32(12345)
	next := func() int {
		seed = seed*1664525 + 1013904223
		return int(seed >> 8)
	}

	for step := range 3000 {
		if len(live) > 0 && next()%3 == 0 {
			i := next() % len(live)
			r := live[i]
			for j := r.Begin.Index(); j < r.End.Index(); j++ {
				delete(owner, j)
			}
			require.NoError(t, p.Dealloc(r))
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}
		r, err := p.Alloc(1 + next()%200)
		require.NoError(t, err)
		for j := r.Begin.Index(); j < r.End.Index(); j++ {
			prev, taken := owner[j]
			require.False(t, taken, "step %d: element %d already owned by step %d", step, j, prev)
			owner[j] = step
		}
		live = append(live, r)
	}
	assert.Zero(t, p.Stats().LeakedUnits, "exp2 splits never leave tails")
}
