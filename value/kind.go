package value

type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindLong
	KindFloat
	KindBytes
	KindByteArray
	KindStr
	KindTuple
	KindList
	KindDict
	KindSet
	KindFrozenSet
)

var kindNames = [...]string{
	KindNone:      "NoneType",
	KindBool:      "bool",
	KindInt:       "int",
	KindLong:      "int",
	KindFloat:     "float",
	KindBytes:     "bytes",
	KindByteArray: "bytearray",
	KindStr:       "str",
	KindTuple:     "tuple",
	KindList:      "list",
	KindDict:      "dict",
	KindSet:       "set",
	KindFrozenSet: "frozenset",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether values of this kind hold no other values.
func (k Kind) IsScalar() bool {
	return k <= KindStr
}

// IsMutable reports whether values of this kind are shared by pointer and
// may be grown in place while a tape is being decoded.
func (k Kind) IsMutable() bool {
	switch k {
	case KindByteArray, KindList, KindDict, KindSet, KindFrozenSet:
		return true
	default:
		return false
	}
}
