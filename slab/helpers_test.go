package slab

import (
	"github.com/joshuapare/miniptr/index"
	"github.com/joshuapare/miniptr/slot"
)

type (
	taggedU8  = slot.Tagged[index.U8, int]
	defaultU8 = slot.Default[index.U8]
	cloneU8   = slot.Clone[index.U8]
)

// variant names a pool construction so tests can run against all of them.
type variant[V any] struct {
	name  string
	store func() Store[index.U8, V]
}

func intVariants() []variant[int] {
	return []variant[int]{
		{"keylist/tagged", func() Store[index.U8, int] { return NewKeyList[index.U8, int, taggedU8]() }},
		{"intrusive/tagged", func() Store[index.U8, int] { return NewIntrusive[index.U8, int, taggedU8]() }},
	}
}

func keyVariants() []variant[index.U8] {
	return []variant[index.U8]{
		{"keylist/default", func() Store[index.U8, index.U8] { return NewKeyList[index.U8, index.U8, defaultU8]() }},
		{"keylist/clone", func() Store[index.U8, index.U8] { return NewKeyList[index.U8, index.U8, cloneU8]() }},
		{"intrusive/default", func() Store[index.U8, index.U8] { return NewIntrusive[index.U8, index.U8, defaultU8]() }},
		{"intrusive/clone", func() Store[index.U8, index.U8] { return NewIntrusive[index.U8, index.U8, cloneU8]() }},
	}
}
