// Package value defines the closed set of values a pickle tape decodes to.
//
// Scalars (None, Bool, Int, Long, Float, Bytes, Str) and Tuple are plain Go
// values. Mutable containers (List, Dict, Set, FrozenSet, ByteArray) are
// pointers: a memo backreference pushes the same pointer again, so a later
// append through one stack slot is visible through every other.
//
// Dict keys and set members must be hashable. HashKey produces a canonical
// string per equality class, which gives Python's numeric key merging:
//
//	d := value.NewDict()
//	_ = d.Set(value.Int(1), value.Str("a"))
//	_ = d.Set(value.Float(1.0), value.Str("b"))
//	// d == {1: 'b'}
//
// Equal and Repr follow Python's == and repr() for the supported kinds.
package value
