package wire

// Protocol versions accepted by the decoder.
const (
	LowestProtocol  = 0
	HighestProtocol = 5
)

// Opcodes of the pickle binary format, protocols 2 through 5.
const (
	OpMark     byte = '(' // push stack-depth marker
	OpStop     byte = '.' // end of tape, one value remains
	OpPop      byte = '0' // discard top value
	OpPopMark  byte = '1' // discard everything above the last mark
	OpBinInt   byte = 'J' // 4-byte signed little-endian int
	OpBinInt1  byte = 'K' // 1-byte unsigned int
	OpBinInt2  byte = 'M' // 2-byte unsigned little-endian int
	OpNone     byte = 'N' // push None
	OpBinFloat byte = 'G' // 8-byte big-endian double

	OpBinUnicode    byte = 'X' // UTF-8 text, 4-byte length
	OpBinBytes      byte = 'B' // bytes, 4-byte length
	OpShortBinBytes byte = 'C' // bytes, 1-byte length

	OpAppend     byte = 'a' // list.append(pop())
	OpAppends    byte = 'e' // list.extend(items above mark)
	OpSetItem    byte = 's' // dict[key] = value
	OpSetItems   byte = 'u' // dict.update(pairs above mark)
	OpTuple      byte = 't' // tuple(items above mark)
	OpEmptyList  byte = ']'
	OpEmptyDict  byte = '}'
	OpEmptyTuple byte = ')'

	OpBinPut     byte = 'q' // memo[u8] = top
	OpLongBinPut byte = 'r' // memo[u32] = top
	OpBinGet     byte = 'h' // push memo[u8]
	OpLongBinGet byte = 'j' // push memo[u32]

	// Protocol 2
	OpProto    byte = 0x80 // protocol version byte follows
	OpTuple1   byte = 0x85
	OpTuple2   byte = 0x86
	OpTuple3   byte = 0x87
	OpNewTrue  byte = 0x88
	OpNewFalse byte = 0x89
	OpLong1    byte = 0x8a // two's complement int, 1-byte length
	OpLong4    byte = 0x8b // two's complement int, 4-byte length

	// Protocol 4
	OpShortBinUnicode byte = 0x8c // UTF-8 text, 1-byte length
	OpBinUnicode8     byte = 0x8d // UTF-8 text, 8-byte length
	OpBinBytes8       byte = 0x8e // bytes, 8-byte length
	OpEmptySet        byte = 0x8f
	OpAddItems        byte = 0x90 // set.update(items above mark)
	OpFrozenSet       byte = 0x91 // frozenset(items above mark)
	OpMemoize         byte = 0x94 // memo[next] = top
	OpFrame           byte = 0x95 // 8-byte frame length, advisory

	// Protocol 5
	OpByteArray8     byte = 0x96 // bytearray, 8-byte length
	OpNextBuffer     byte = 0x97 // push next out-of-band buffer
	OpReadonlyBuffer byte = 0x98 // make top buffer read-only
)

// Opcodes the decoder recognizes but refuses: they need class lookup,
// persistent ids, or belong to the text protocols 0 and 1.
const (
	OpDup            byte = '2'
	OpFloat          byte = 'F'
	OpInt            byte = 'I'
	OpLong           byte = 'L'
	OpReduce         byte = 'R'
	OpString         byte = 'S'
	OpBinString      byte = 'T'
	OpShortBinString byte = 'U'
	OpUnicode        byte = 'V'
	OpPersID         byte = 'P'
	OpBinPersID      byte = 'Q'
	OpGlobal         byte = 'c'
	OpBuild          byte = 'b'
	OpDict           byte = 'd'
	OpList           byte = 'l'
	OpObj            byte = 'o'
	OpInst           byte = 'i'
	OpPut            byte = 'p'
	OpGet            byte = 'g'
	OpNewObj         byte = 0x81
	OpExt1           byte = 0x82
	OpExt2           byte = 0x83
	OpExt4           byte = 0x84
	OpNewObjEx       byte = 0x92
	OpStackGlobal    byte = 0x93
)
