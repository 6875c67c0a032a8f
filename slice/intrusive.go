package slice

import (
	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/slot"
)

// noFree marks an empty class list.
const noFree = -1

// IntrusiveClasses keeps one intrusive free list per size class. The link of
// a free block is stored in its first element; the last block of a list
// links to itself.
type IntrusiveClasses[K index.Key[K], T any, PT slot.LinkPtr[T, K]] struct {
	heads   []int // heads[c-1] is the first free block of class c
	classes SizeClasses
	splits  uint64
	leaked  uint64
}

// NewIntrusiveClasses returns empty free lists over classes.
func NewIntrusiveClasses[K index.Key[K], T any, PT slot.LinkPtr[T, K]](classes SizeClasses) *IntrusiveClasses[K, T, PT] {
	return &IntrusiveClasses[K, T, PT]{classes: classes}
}

// Classes returns the size class table.
func (ic *IntrusiveClasses[K, T, PT]) Classes() SizeClasses { return ic.classes }

// Alloc takes a free block able to hold capacity elements.
func (ic *IntrusiveClasses[K, T, PT]) Alloc(capacity int, backing []T) (Range[K], bool) {
	c := ic.classes.ClassContaining(capacity)
	if c == 0 || c == NoClass {
		return Range[K]{}, false
	}
	return ic.AllocClass(c, backing)
}

// AllocClass takes a free block of exactly the given class, splitting a
// larger block if the class list is empty.
func (ic *IntrusiveClasses[K, T, PT]) AllocClass(class uint32, backing []T) (Range[K], bool) {
	if class == 0 || int(class) > len(ic.heads) {
		return Range[K]{}, false
	}
	size := ic.classes.Capacity(class)

	var begin int
	if head := ic.heads[class-1]; head >= 0 && head < len(backing) {
		link, _ := PT(&backing[head]).Key()
		if next := link.Index(); next == head {
			ic.heads[class-1] = noFree
		} else {
			ic.heads[class-1] = next
		}
		begin = head
	} else {
		upper, ok := ic.classes.SplitSource(class)
		if !ok {
			return Range[K]{}, false
		}
		block, ok := ic.AllocClass(upper, backing)
		if !ok {
			return Range[K]{}, false
		}
		begin = block.Begin.Index()
		ic.splits++
		ic.Dealloc(NewRange[K](begin+size, block.End.Index()), backing)
	}

	ic.trim()
	return NewRange[K](begin, begin+size), true
}

// Dealloc returns r to the free lists. The range is cut into the largest
// class blocks that fit, front to back; a tail smaller than every class is
// leaked.
func (ic *IntrusiveClasses[K, T, PT]) Dealloc(r Range[K], backing []T) {
	begin, end := r.Begin.Index(), r.End.Index()
	for begin < end {
		c := ic.classes.ClassContained(end - begin)
		if c == 0 {
			ic.leaked += uint64(end - begin)
			return
		}
		for len(ic.heads) < int(c) {
			ic.heads = append(ic.heads, noFree)
		}

		link := begin
		if h := ic.heads[c-1]; h >= 0 {
			link = h
		}
		PT(&backing[begin]).SetKey(index.NewUnchecked[K](link))
		ic.heads[c-1] = begin
		begin += ic.classes.Capacity(c)
	}
}

// FreeBlocks counts the free blocks of class by walking its list.
func (ic *IntrusiveClasses[K, T, PT]) FreeBlocks(class uint32, backing []T) int {
	if class == 0 || int(class) > len(ic.heads) {
		return 0
	}
	n := 0
	for cur := ic.heads[class-1]; cur >= 0 && cur < len(backing); {
		n++
		link, _ := PT(&backing[cur]).Key()
		next := link.Index()
		if next == cur {
			break
		}
		cur = next
	}
	return n
}

// Clear forgets every free block.
func (ic *IntrusiveClasses[K, T, PT]) Clear() {
	ic.heads = ic.heads[:0]
}

// trim drops empty lists at the top so lookups for large classes fail fast.
func (ic *IntrusiveClasses[K, T, PT]) trim() {
	n := len(ic.heads)
	for n > 0 && ic.heads[n-1] == noFree {
		n--
	}
	ic.heads = ic.heads[:n]
}
