package wire

import (
	"math/big"
	"unicode/utf8"

	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/internal/binary"
)

// Instruction is one decoded opcode with its operand.
//
// Arg holds nil for ArgNone, int64 for the fixed-width integer kinds,
// *big.Int for LONG1/LONG4, float64 for BINFLOAT, []byte for byte runs,
// string for text and single lines, and [2]string for two-line operands.
type Instruction struct {
	Arg    any
	Info   Info
	Offset int
}

// Disassemble walks a tape without executing it and returns every
// instruction up to and including STOP. Bytes after STOP are ignored.
func Disassemble(tape []byte) ([]Instruction, error) {
	r := binary.NewReader(tape)
	var out []Instruction
	for {
		offset := r.Position()
		code, err := r.ReadByte()
		if err != nil {
			return out, err
		}
		info, ok := Lookup(code)
		if !ok {
			e := errors.UnknownOpcode(code)
			e.Offset = offset
			return out, e
		}
		arg, err := ReadArg(r, info.Arg)
		if err != nil {
			if pe, ok := err.(*errors.Error); ok {
				if pe.Op == "" {
					pe.Op = info.Name
				}
				if pe.Offset < 0 {
					pe.Offset = offset
				}
			}
			return out, err
		}
		out = append(out, Instruction{Offset: offset, Info: info, Arg: arg})
		if code == OpStop {
			return out, nil
		}
	}
}

// ReadArg reads one operand of the given kind from r.
func ReadArg(r *binary.Reader, kind ArgKind) (any, error) {
	switch kind {
	case ArgNone:
		return nil, nil
	case ArgUint1:
		return r.ReadFixedInt(1, false)
	case ArgUint2:
		return r.ReadFixedInt(2, false)
	case ArgInt4:
		return r.ReadFixedInt(4, true)
	case ArgUint4:
		return r.ReadFixedInt(4, false)
	case ArgUint8:
		u, err := r.ReadUint(8)
		if err != nil {
			return nil, err
		}
		return int64(u), nil
	case ArgLong1:
		data, err := r.ReadLengthPrefixed(1)
		if err != nil {
			return nil, err
		}
		return DecodeLong(data), nil
	case ArgLong4:
		n, err := r.ReadFixedInt(4, true)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.InvalidData(errors.PhaseDecode, "LONG4 has negative byte count")
		}
		data, err := r.ReadBytes(uint64(n))
		if err != nil {
			return nil, err
		}
		return DecodeLong(data), nil
	case ArgFloat8:
		return r.ReadFloat64BE()
	case ArgBytes1:
		return r.ReadLengthPrefixed(1)
	case ArgBytes4:
		return r.ReadLengthPrefixed(4)
	case ArgBytes8:
		return r.ReadLengthPrefixed(8)
	case ArgUnicode1, ArgUnicode4, ArgUnicode8:
		data, err := r.ReadLengthPrefixed(kind.lengthWidth())
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(data) {
			return nil, errors.InvalidTextEncoding(data)
		}
		return string(data), nil
	case ArgLine:
		line, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		return string(line), nil
	case ArgLine2:
		first, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		second, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		return [2]string{string(first), string(second)}, nil
	}
	return nil, errors.InvalidData(errors.PhaseDecode, "unknown operand kind "+kind.String())
}

// DecodeLong interprets data as a little-endian two's complement integer of
// exactly len(data) bytes. An empty run is zero.
func DecodeLong(data []byte) *big.Int {
	n := new(big.Int)
	if len(data) == 0 {
		return n
	}
	be := make([]byte, len(data))
	for i, b := range data {
		be[len(data)-1-i] = b
	}
	n.SetBytes(be)
	if data[len(data)-1]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(8*len(data))))
	}
	return n
}

func (k ArgKind) lengthWidth() int {
	switch k {
	case ArgBytes1, ArgUnicode1, ArgLong1:
		return 1
	case ArgBytes4, ArgUnicode4, ArgLong4:
		return 4
	case ArgBytes8, ArgUnicode8:
		return 8
	}
	return 0
}
