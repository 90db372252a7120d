package wire

import "fmt"

// ArgKind describes the operand bytes that follow an opcode.
type ArgKind uint8

const (
	ArgNone     ArgKind = iota
	ArgUint1            // 1-byte unsigned
	ArgUint2            // 2-byte unsigned little-endian
	ArgInt4             // 4-byte signed little-endian
	ArgUint4            // 4-byte unsigned little-endian
	ArgUint8            // 8-byte unsigned little-endian
	ArgLong1            // 1-byte length + two's complement bytes
	ArgLong4            // 4-byte signed length + two's complement bytes
	ArgFloat8           // 8-byte big-endian double
	ArgBytes1           // 1-byte length + bytes
	ArgBytes4           // 4-byte length + bytes
	ArgBytes8           // 8-byte length + bytes
	ArgUnicode1         // 1-byte length + UTF-8
	ArgUnicode4         // 4-byte length + UTF-8
	ArgUnicode8         // 8-byte length + UTF-8
	ArgLine             // newline-terminated text
	ArgLine2            // two newline-terminated lines
)

var argNames = [...]string{
	ArgNone:     "none",
	ArgUint1:    "uint1",
	ArgUint2:    "uint2",
	ArgInt4:     "int4",
	ArgUint4:    "uint4",
	ArgUint8:    "uint8",
	ArgLong1:    "long1",
	ArgLong4:    "long4",
	ArgFloat8:   "float8",
	ArgBytes1:   "bytes1",
	ArgBytes4:   "bytes4",
	ArgBytes8:   "bytes8",
	ArgUnicode1: "unicodestring1",
	ArgUnicode4: "unicodestring4",
	ArgUnicode8: "unicodestring8",
	ArgLine:     "line",
	ArgLine2:    "line2",
}

func (k ArgKind) String() string {
	if int(k) < len(argNames) {
		return argNames[k]
	}
	return "unknown"
}

// Info describes one opcode.
type Info struct {
	Name      string
	Arg       ArgKind
	Proto     int  // protocol that introduced the opcode
	Supported bool // false for opcodes the decoder rejects
	Code      byte
}

func (i Info) String() string {
	return fmt.Sprintf("%s(0x%02x)", i.Name, i.Code)
}

var table [256]*Info

func def(code byte, name string, arg ArgKind, proto int, supported bool) {
	table[code] = &Info{Code: code, Name: name, Arg: arg, Proto: proto, Supported: supported}
}

func init() {
	def(OpMark, "MARK", ArgNone, 0, true)
	def(OpStop, "STOP", ArgNone, 0, true)
	def(OpPop, "POP", ArgNone, 0, true)
	def(OpPopMark, "POP_MARK", ArgNone, 1, true)
	def(OpBinInt, "BININT", ArgInt4, 1, true)
	def(OpBinInt1, "BININT1", ArgUint1, 1, true)
	def(OpBinInt2, "BININT2", ArgUint2, 1, true)
	def(OpNone, "NONE", ArgNone, 0, true)
	def(OpBinFloat, "BINFLOAT", ArgFloat8, 1, true)
	def(OpBinUnicode, "BINUNICODE", ArgUnicode4, 1, true)
	def(OpBinBytes, "BINBYTES", ArgBytes4, 3, true)
	def(OpShortBinBytes, "SHORT_BINBYTES", ArgBytes1, 3, true)
	def(OpAppend, "APPEND", ArgNone, 0, true)
	def(OpAppends, "APPENDS", ArgNone, 1, true)
	def(OpSetItem, "SETITEM", ArgNone, 0, true)
	def(OpSetItems, "SETITEMS", ArgNone, 1, true)
	def(OpTuple, "TUPLE", ArgNone, 0, true)
	def(OpEmptyList, "EMPTY_LIST", ArgNone, 1, true)
	def(OpEmptyDict, "EMPTY_DICT", ArgNone, 1, true)
	def(OpEmptyTuple, "EMPTY_TUPLE", ArgNone, 1, true)
	def(OpBinPut, "BINPUT", ArgUint1, 1, true)
	def(OpLongBinPut, "LONG_BINPUT", ArgUint4, 1, true)
	def(OpBinGet, "BINGET", ArgUint1, 1, true)
	def(OpLongBinGet, "LONG_BINGET", ArgUint4, 1, true)

	def(OpProto, "PROTO", ArgUint1, 2, true)
	def(OpTuple1, "TUPLE1", ArgNone, 2, true)
	def(OpTuple2, "TUPLE2", ArgNone, 2, true)
	def(OpTuple3, "TUPLE3", ArgNone, 2, true)
	def(OpNewTrue, "NEWTRUE", ArgNone, 2, true)
	def(OpNewFalse, "NEWFALSE", ArgNone, 2, true)
	def(OpLong1, "LONG1", ArgLong1, 2, true)
	def(OpLong4, "LONG4", ArgLong4, 2, true)

	def(OpShortBinUnicode, "SHORT_BINUNICODE", ArgUnicode1, 4, true)
	def(OpBinUnicode8, "BINUNICODE8", ArgUnicode8, 4, true)
	def(OpBinBytes8, "BINBYTES8", ArgBytes8, 4, true)
	def(OpEmptySet, "EMPTY_SET", ArgNone, 4, true)
	def(OpAddItems, "ADDITEMS", ArgNone, 4, true)
	def(OpFrozenSet, "FROZENSET", ArgNone, 4, true)
	def(OpMemoize, "MEMOIZE", ArgNone, 4, true)
	def(OpFrame, "FRAME", ArgUint8, 4, true)

	def(OpByteArray8, "BYTEARRAY8", ArgBytes8, 5, true)
	def(OpNextBuffer, "NEXT_BUFFER", ArgNone, 5, true)
	def(OpReadonlyBuffer, "READONLY_BUFFER", ArgNone, 5, true)

	def(OpDup, "DUP", ArgNone, 0, false)
	def(OpFloat, "FLOAT", ArgLine, 0, false)
	def(OpInt, "INT", ArgLine, 0, false)
	def(OpLong, "LONG", ArgLine, 0, false)
	def(OpReduce, "REDUCE", ArgNone, 0, false)
	def(OpString, "STRING", ArgLine, 0, false)
	def(OpBinString, "BINSTRING", ArgBytes4, 1, false)
	def(OpShortBinString, "SHORT_BINSTRING", ArgBytes1, 1, false)
	def(OpUnicode, "UNICODE", ArgLine, 0, false)
	def(OpPersID, "PERSID", ArgLine, 0, false)
	def(OpBinPersID, "BINPERSID", ArgNone, 1, false)
	def(OpGlobal, "GLOBAL", ArgLine2, 0, false)
	def(OpBuild, "BUILD", ArgNone, 0, false)
	def(OpDict, "DICT", ArgNone, 0, false)
	def(OpList, "LIST", ArgNone, 0, false)
	def(OpObj, "OBJ", ArgNone, 1, false)
	def(OpInst, "INST", ArgLine2, 0, false)
	def(OpPut, "PUT", ArgLine, 0, false)
	def(OpGet, "GET", ArgLine, 0, false)
	def(OpNewObj, "NEWOBJ", ArgNone, 2, false)
	def(OpExt1, "EXT1", ArgUint1, 2, false)
	def(OpExt2, "EXT2", ArgUint2, 2, false)
	def(OpExt4, "EXT4", ArgInt4, 2, false)
	def(OpNewObjEx, "NEWOBJ_EX", ArgNone, 4, false)
	def(OpStackGlobal, "STACK_GLOBAL", ArgNone, 4, false)
}

// Lookup returns the description of an opcode byte.
func Lookup(code byte) (Info, bool) {
	if info := table[code]; info != nil {
		return *info, true
	}
	return Info{}, false
}

// Name returns the opcode's name, or a hex form for unknown bytes.
func Name(code byte) string {
	if info := table[code]; info != nil {
		return info.Name
	}
	return fmt.Sprintf("0x%02x", code)
}

// Opcodes returns every known opcode in byte order.
func Opcodes() []Info {
	var out []Info
	for _, info := range table {
		if info != nil {
			out = append(out, *info)
		}
	}
	return out
}
