package slice

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/internal/buf"
	"github.com/joshuapare/miniptr/internal/mmfile"
	"github.com/joshuapare/miniptr/slot"
)

// Words is the element type of an off-heap pool: one key-sized word.
type Words[K index.Key[K]] = slot.Default[K]

// OffHeap is a fixed-size Pool of key-sized words whose backing buffer is an
// anonymous memory mapping outside the Go heap. The garbage collector never
// scans it, so K must not contain pointers; the integer key types in package
// index all qualify.
type OffHeap[K index.Key[K]] struct {
	*Pool[K, Words[K], *Words[K]]
	release func() error
}

// NewOffHeap maps room for elems words and returns a pool over it.
func NewOffHeap[K index.Key[K]](classes SizeClasses, elems int) (*OffHeap[K], error) {
	var w Words[K]
	size, ok := buf.MulOverflowSafe(elems, int(unsafe.Sizeof(w)))
	if !ok {
		return nil, fmt.Errorf("%w: %d words do not fit in memory", ErrExhausted, elems)
	}

	mem, release, err := mmfile.Anon(size)
	if err != nil {
		return nil, err
	}

	var backing []Words[K]
	if elems > 0 {
		backing = unsafe.Slice((*Words[K])(unsafe.Pointer(unsafe.SliceData(mem))), elems)
	}
	return &OffHeap[K]{
		Pool:    NewPoolOn[K, Words[K]](classes, backing),
		release: release,
	}, nil
}

// Close unmaps the backing buffer. The pool and every slice obtained from it
// must not be used afterwards.
func (o *OffHeap[K]) Close() error {
	o.Pool.backing = nil
	o.Pool.free.Clear()
	return o.release()
}
