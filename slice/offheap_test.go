package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/miniptr/index"
)

func TestOffHeap_AllocFreeRealloc(t *testing.T) {
	p, err := NewOffHeap[index.U32](Exp2Fine, 1024)
	require.NoError(t, err)
	defer func() { require.NoError(t, p.Close()) }()

	assert.Equal(t, 1024, p.Cap())
	r := p.MustAlloc(100)
	assert.Equal(t, 128, r.Len())
	for i, w := range p.Slice(r) {
		require.Zero(t, w.Raw, "element %d", i)
	}
	p.Slice(r)[5].Raw = 7

	require.NoError(t, p.Dealloc(r))
	again := p.MustAlloc(128)
	assert.Equal(t, r, again)
}

func TestOffHeap_Exhaustion(t *testing.T) {
	p, err := NewOffHeap[index.U16](Exp2Fine, 64)
	require.NoError(t, err)
	defer p.Close()

	p.MustAlloc(32)
	p.MustAlloc(32)
	_, err = p.Alloc(4)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestOffHeap_Empty(t *testing.T) {
	p, err := NewOffHeap[index.U32](Exp2Fine, 0)
	require.NoError(t, err)
	_, err = p.Alloc(4)
	require.ErrorIs(t, err, ErrExhausted)
	require.NoError(t, p.Close())
}
