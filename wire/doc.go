// Package wire describes the pickle binary format: opcode bytes, their
// operand encodings and the protocol that introduced each one.
//
// The table covers every opcode of protocols 0 through 5, including the
// ones the decoder refuses, so tools can name any byte they meet:
//
//	info, ok := wire.Lookup(0x8c)
//	// info.Name == "SHORT_BINUNICODE", info.Arg == wire.ArgUnicode1
//
// Disassemble lists a tape's instructions without executing them.
package wire
