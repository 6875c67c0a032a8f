package index

import "cmp"

// Plain key types. The stored integer is the index.
type (
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	Uint uint
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	Int  int
)

func (k U8) Index() int           { return int(k) }
func (U8) MaxIndex() int          { return maxIndexOf[uint8]() }
func (U8) FromIndex(n int) U8     { return U8(n) }
func (k U8) Compare(o U8) int     { return cmp.Compare(k, o) }
func (k U16) Index() int          { return int(k) }
func (U16) MaxIndex() int         { return maxIndexOf[uint16]() }
func (U16) FromIndex(n int) U16   { return U16(n) }
func (k U16) Compare(o U16) int   { return cmp.Compare(k, o) }
func (k U32) Index() int          { return int(k) }
func (U32) MaxIndex() int         { return maxIndexOf[uint32]() }
func (U32) FromIndex(n int) U32   { return U32(n) }
func (k U32) Compare(o U32) int   { return cmp.Compare(k, o) }
func (k U64) Index() int          { return int(k) }
func (U64) MaxIndex() int         { return maxIndexOf[uint64]() }
func (U64) FromIndex(n int) U64   { return U64(n) }
func (k U64) Compare(o U64) int   { return cmp.Compare(k, o) }
func (k Uint) Index() int         { return int(k) }
func (Uint) MaxIndex() int        { return maxIndexOf[uint]() }
func (Uint) FromIndex(n int) Uint { return Uint(n) }
func (k Uint) Compare(o Uint) int { return cmp.Compare(k, o) }
func (k I8) Index() int           { return int(k) }
func (I8) MaxIndex() int          { return maxIndexOf[int8]() }
func (I8) FromIndex(n int) I8     { return I8(n) }
func (k I8) Compare(o I8) int     { return cmp.Compare(k, o) }
func (k I16) Index() int          { return int(k) }
func (I16) MaxIndex() int         { return maxIndexOf[int16]() }
func (I16) FromIndex(n int) I16   { return I16(n) }
func (k I16) Compare(o I16) int   { return cmp.Compare(k, o) }
func (k I32) Index() int          { return int(k) }
func (I32) MaxIndex() int         { return maxIndexOf[int32]() }
func (I32) FromIndex(n int) I32   { return I32(n) }
func (k I32) Compare(o I32) int   { return cmp.Compare(k, o) }
func (k I64) Index() int          { return int(k) }
func (I64) MaxIndex() int         { return maxIndexOf[int64]() }
func (I64) FromIndex(n int) I64   { return I64(n) }
func (k I64) Compare(o I64) int   { return cmp.Compare(k, o) }
func (k Int) Index() int          { return int(k) }
func (Int) MaxIndex() int         { return maxIndexOf[int]() }
func (Int) FromIndex(n int) Int   { return Int(n) }
func (k Int) Compare(o Int) int   { return cmp.Compare(k, o) }
