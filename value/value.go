package value

import (
	"math"
	"math/big"
)

// Value is one node of a decoded tree. The set of implementations is closed:
// NoneType, Bool, Int, *Long, Float, Bytes, *ByteArray, Str, Tuple, *List,
// *Dict, *Set and *FrozenSet.
type Value interface {
	Kind() Kind
	isValue()
}

// NoneType is the type of None.
type NoneType struct{}

// None is the only NoneType value.
var None = NoneType{}

type Bool bool

type Int int64

// Long holds integers that do not fit in 64 bits.
type Long struct {
	v *big.Int
}

type Float float64

// Bytes is an immutable byte string.
type Bytes []byte

// ByteArray is a mutable byte buffer shared by pointer.
type ByteArray struct {
	Data []byte
}

type Str string

// Tuple is an immutable sequence. Elements may still be shared containers.
type Tuple []Value

func (NoneType) Kind() Kind   { return KindNone }
func (Bool) Kind() Kind       { return KindBool }
func (Int) Kind() Kind        { return KindInt }
func (*Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind      { return KindFloat }
func (Bytes) Kind() Kind      { return KindBytes }
func (*ByteArray) Kind() Kind { return KindByteArray }
func (Str) Kind() Kind        { return KindStr }
func (Tuple) Kind() Kind      { return KindTuple }

func (NoneType) isValue()   {}
func (Bool) isValue()       {}
func (Int) isValue()        {}
func (*Long) isValue()      {}
func (Float) isValue()      {}
func (Bytes) isValue()      {}
func (*ByteArray) isValue() {}
func (Str) isValue()        {}
func (Tuple) isValue()      {}

// Integer returns Int when b fits in 64 bits and *Long otherwise.
func Integer(b *big.Int) Value {
	if b.IsInt64() {
		return Int(b.Int64())
	}
	return &Long{v: new(big.Int).Set(b)}
}

// Big returns a copy of the integer.
func (l *Long) Big() *big.Int {
	return new(big.Int).Set(l.v)
}

// NewByteArray wraps data without copying it.
func NewByteArray(data []byte) *ByteArray {
	return &ByteArray{Data: data}
}

// AsInt returns the integer value of Bool and Int.
func AsInt(v Value) (int64, bool) {
	switch x := v.(type) {
	case Int:
		return int64(x), true
	case Bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// numeric normalizes the numeric kinds for comparison. Integral floats in
// int64 range compare as integers.
func numeric(v Value) (i int64, f float64, b *big.Int, kind byte) {
	switch x := v.(type) {
	case Bool, Int:
		n, _ := AsInt(x)
		return n, 0, nil, 'i'
	case *Long:
		return 0, 0, x.v, 'l'
	case Float:
		ff := float64(x)
		if ff == math.Trunc(ff) && ff >= math.MinInt64 && ff < math.MaxInt64 {
			return int64(ff), 0, nil, 'i'
		}
		return 0, ff, nil, 'f'
	}
	return 0, 0, nil, 0
}
