package index

import "cmp"

// Negated key types. Index n is stored as -(n+1), which leaves the
// non-negative half of the integer range free for the caller.
type (
	Neg8   int8
	Neg16  int16
	Neg32  int32
	Neg64  int64
	NegInt int
)

func (k Neg8) Index() int             { return negIndex(k) }
func (Neg8) MaxIndex() int            { return maxIndexOf[int8]() }
func (Neg8) FromIndex(n int) Neg8     { return negFrom[Neg8](n) }
func (k Neg8) Compare(o Neg8) int     { return cmp.Compare(o, k) }
func (k Neg16) Index() int            { return negIndex(k) }
func (Neg16) MaxIndex() int           { return maxIndexOf[int16]() }
func (Neg16) FromIndex(n int) Neg16   { return negFrom[Neg16](n) }
func (k Neg16) Compare(o Neg16) int   { return cmp.Compare(o, k) }
func (k Neg32) Index() int            { return negIndex(k) }
func (Neg32) MaxIndex() int           { return maxIndexOf[int32]() }
func (Neg32) FromIndex(n int) Neg32   { return negFrom[Neg32](n) }
func (k Neg32) Compare(o Neg32) int   { return cmp.Compare(o, k) }
func (k Neg64) Index() int            { return negIndex(k) }
func (Neg64) MaxIndex() int           { return maxIndexOf[int64]() }
func (Neg64) FromIndex(n int) Neg64   { return negFrom[Neg64](n) }
func (k Neg64) Compare(o Neg64) int   { return cmp.Compare(o, k) }
func (k NegInt) Index() int           { return negIndex(k) }
func (NegInt) MaxIndex() int          { return maxIndexOf[int]() }
func (NegInt) FromIndex(n int) NegInt { return negFrom[NegInt](n) }
func (k NegInt) Compare(o NegInt) int { return cmp.Compare(o, k) }
