package value

import (
	"bytes"
	"math/big"
)

// Equal reports whether a and b are equal under Python comparison rules:
// numbers compare by value across bool/int/float, bytes and bytearray compare
// by content, tuples and lists never equal each other, and set and frozenset
// compare by membership. Self-referencing containers are compared
// coinductively: a pair already under comparison is assumed equal.
func Equal(a, b Value) bool {
	return equal(a, b, make(map[[2]Value]bool))
}

func equal(a, b Value, seen map[[2]Value]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ai, af, ab, ak := numeric(a)
	bi, bf, bb, bk := numeric(b)
	if ak != 0 || bk != 0 {
		if ak == 0 || bk == 0 {
			return false
		}
		return numericEqual(ai, af, ab, ak, bi, bf, bb, bk)
	}

	if a.Kind().IsMutable() && b.Kind().IsMutable() {
		pair := [2]Value{a, b}
		if seen[pair] {
			return true
		}
		seen[pair] = true
	}

	switch x := a.(type) {
	case NoneType:
		_, ok := b.(NoneType)
		return ok
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case Bytes:
		return bytesEqual(x, b)
	case *ByteArray:
		return bytesEqual(x.Data, b)
	case Tuple:
		y, ok := b.(Tuple)
		return ok && seqEqual(x, y, seen)
	case *List:
		y, ok := b.(*List)
		return ok && seqEqual(x.Items, y.Items, seen)
	case *Dict:
		y, ok := b.(*Dict)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			other, found := y.Get(k)
			if !found || !equal(x.vals[i], other, seen) {
				return false
			}
		}
		return true
	case *Set:
		return setEqual(&x.members, b)
	case *FrozenSet:
		return setEqual(&x.members, b)
	}
	return false
}

func numericEqual(ai int64, af float64, ab *big.Int, ak byte, bi int64, bf float64, bb *big.Int, bk byte) bool {
	switch {
	case ak == 'i' && bk == 'i':
		return ai == bi
	case ak == 'f' && bk == 'f':
		return af == bf
	case ak == 'l' && bk == 'l':
		return ab.Cmp(bb) == 0
	case ak == 'l' && bk == 'f':
		n, ok := integralBig(bf)
		return ok && ab.Cmp(n) == 0
	case ak == 'f' && bk == 'l':
		n, ok := integralBig(af)
		return ok && bb.Cmp(n) == 0
	}
	return false
}

func bytesEqual(a []byte, b Value) bool {
	switch y := b.(type) {
	case Bytes:
		return bytes.Equal(a, y)
	case *ByteArray:
		return bytes.Equal(a, y.Data)
	}
	return false
}

func seqEqual(a, b []Value, seen map[[2]Value]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i], seen) {
			return false
		}
	}
	return true
}

func setEqual(a *members, b Value) bool {
	var other *members
	switch y := b.(type) {
	case *Set:
		other = &y.members
	case *FrozenSet:
		other = &y.members
	default:
		return false
	}
	if len(a.items) != len(other.items) {
		return false
	}
	for _, item := range a.items {
		if !other.contains(item) {
			return false
		}
	}
	return true
}
