package binary

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/wippyai/pickle/errors"
)

// Reader is a bounds-checked cursor over an in-memory tape.
// Every read checks the remaining length before touching the buffer.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Reset rewinds the reader onto a new tape.
func (r *Reader) Reset(data []byte) {
	r.data = data
	r.pos = 0
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// PeekByte returns the byte at the current position without advancing.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.Truncated(r.pos, 1, 0)
	}
	return r.data[r.pos], nil
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.Truncated(r.pos, 1, 0)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes returns the next n bytes as a subslice of the tape.
// Callers that keep the result past the tape's lifetime must copy it.
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	rem := r.Remaining()
	if n > uint64(rem) {
		return nil, errors.Truncated(r.pos, clampInt(n), rem)
	}
	buf := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return buf, nil
}

// Skip advances past n bytes without interpreting them.
func (r *Reader) Skip(n uint64) error {
	_, err := r.ReadBytes(n)
	return err
}

// ReadUint reads a width-byte little-endian unsigned integer (width 1..8).
func (r *Reader) ReadUint(width int) (uint64, error) {
	if width < 1 || width > 8 {
		return 0, errors.InvalidData(errors.PhaseDecode, "integer width out of range")
	}
	buf, err := r.ReadBytes(uint64(width))
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf)), nil
	case 8:
		return binary.LittleEndian.Uint64(buf), nil
	}
	var v uint64
	for i, b := range buf {
		v |= uint64(b) << (8 * i)
	}
	return v, nil
}

// ReadFixedInt reads a width-byte little-endian integer. When signed is set
// the value is sign-extended from bit 8*width-1 of the encoded value.
func (r *Reader) ReadFixedInt(width int, signed bool) (int64, error) {
	u, err := r.ReadUint(width)
	if err != nil {
		return 0, err
	}
	if !signed {
		return int64(u), nil
	}
	return SignExtend(u, width), nil
}

// ReadFloat64BE reads an 8-byte big-endian IEEE-754 double.
func (r *Reader) ReadFloat64BE() (float64, error) {
	if rem := r.Remaining(); rem < 8 {
		return 0, errors.MalformedFloat(r.pos, rem)
	}
	buf, _ := r.ReadBytes(8)
	return math.Float64frombits(binary.BigEndian.Uint64(buf)), nil
}

// ReadLengthPrefixed reads an unsigned little-endian length of lenWidth bytes,
// then that many raw bytes.
func (r *Reader) ReadLengthPrefixed(lenWidth int) ([]byte, error) {
	n, err := r.ReadUint(lenWidth)
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(n)
}

// ReadLine reads up to the next '\n' and returns the bytes before it.
func (r *Reader) ReadLine() ([]byte, error) {
	i := bytes.IndexByte(r.data[r.pos:], '\n')
	if i < 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindTruncatedInput).
			Offset(r.pos).
			Detail("line operand is not newline terminated").
			Build()
	}
	line := r.data[r.pos : r.pos+i]
	r.pos += i + 1
	return line, nil
}

// SignExtend interprets the low 8*width bits of u as two's complement.
func SignExtend(u uint64, width int) int64 {
	shift := uint(64 - 8*width)
	return int64(u<<shift) >> shift
}

func clampInt(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
