// Package index defines the small integer key types handed out by the pools
// in this module.
//
// A key is a compact stand-in for a pointer: a fixed-width integer that names
// one slot of a backing slice. Every key type K implements [Key] over itself
// and maps the non-negative integers 0..K.MaxIndex() onto distinct values.
//
// # Plain and negated keys
//
// The plain types ([U8] through [Int]) store the index directly. The negated
// types ([Neg8] through [NegInt]) store -(n+1), so index 0 is -1. Their
// Compare method reverses the raw integer order so that keys still sort by
// index.
// Negated keys let a caller keep non-negative values of the same integer type
// for another purpose while still addressing a slab.
//
// Indices above math.MaxInt are never produced, since no Go slice can be
// longer than that.
package index
