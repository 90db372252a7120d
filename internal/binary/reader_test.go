package binary

import (
	"errors"
	"math"
	"testing"

	pickleerrors "github.com/wippyai/pickle/errors"
)

func TestReader_ReadByte(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	b, err := r.PeekByte()
	if err != nil || b != 0x01 {
		t.Fatalf("PeekByte = %#x, %v", b, err)
	}
	if r.Position() != 0 {
		t.Errorf("PeekByte advanced to %d", r.Position())
	}

	for _, want := range []byte{0x01, 0x02} {
		got, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		if got != want {
			t.Errorf("ReadByte = %#x, want %#x", got, want)
		}
	}

	if _, err := r.ReadByte(); !errors.Is(err, pickleerrors.ErrTruncatedInput) {
		t.Errorf("ReadByte past end = %v, want truncated", err)
	}
	if _, err := r.PeekByte(); !errors.Is(err, pickleerrors.ErrTruncatedInput) {
		t.Errorf("PeekByte past end = %v, want truncated", err)
	}
}

func TestReader_ReadFixedInt(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		width  int
		signed bool
		want   int64
	}{
		{"u8", []byte{0xff}, 1, false, 255},
		{"u16", []byte{0x34, 0x12}, 2, false, 0x1234},
		{"u16 high", []byte{0xff, 0xff}, 2, false, 65535},
		{"s32 minus one", []byte{0xff, 0xff, 0xff, 0xff}, 4, true, -1},
		{"s32 min", []byte{0x00, 0x00, 0x00, 0x80}, 4, true, math.MinInt32},
		{"s32 max", []byte{0xff, 0xff, 0xff, 0x7f}, 4, true, math.MaxInt32},
		{"s32 positive", []byte{0x10, 0x27, 0x00, 0x00}, 4, true, 10000},
		{"u32 unsigned", []byte{0xff, 0xff, 0xff, 0xff}, 4, false, 4294967295},
		{"s8 negative", []byte{0x80}, 1, true, -128},
		{"s24", []byte{0xff, 0xff, 0xff}, 3, true, -1},
		{"s64", []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 8, true, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			got, err := r.ReadFixedInt(tt.width, tt.signed)
			if err != nil {
				t.Fatalf("ReadFixedInt: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadFixedInt = %d, want %d", got, tt.want)
			}
			if r.Remaining() != 0 {
				t.Errorf("Remaining = %d, want 0", r.Remaining())
			}
		})
	}
}

func TestReader_ReadFixedInt_Truncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	_, err := r.ReadFixedInt(4, true)
	if !errors.Is(err, pickleerrors.ErrTruncatedInput) {
		t.Fatalf("err = %v, want truncated", err)
	}
	if r.Position() != 0 {
		t.Errorf("failed read advanced to %d", r.Position())
	}
}

func TestReader_ReadFloat64BE(t *testing.T) {
	r := NewReader([]byte{0x3f, 0xf8, 0, 0, 0, 0, 0, 0})
	f, err := r.ReadFloat64BE()
	if err != nil {
		t.Fatalf("ReadFloat64BE: %v", err)
	}
	if f != 1.5 {
		t.Errorf("ReadFloat64BE = %v, want 1.5", f)
	}

	short := NewReader([]byte{0x3f, 0xf8, 0})
	if _, err := short.ReadFloat64BE(); !errors.Is(err, pickleerrors.ErrMalformedFloat) {
		t.Errorf("short float err = %v, want malformed float", err)
	}
}

func TestReader_ReadLengthPrefixed(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		lenWidth int
		want     string
	}{
		{"short", []byte{3, 'a', 'b', 'c'}, 1, "abc"},
		{"u32", []byte{2, 0, 0, 0, 'h', 'i'}, 4, "hi"},
		{"u64", []byte{1, 0, 0, 0, 0, 0, 0, 0, 'x'}, 8, "x"},
		{"empty", []byte{0}, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader(tt.data).ReadLengthPrefixed(tt.lenWidth)
			if err != nil {
				t.Fatalf("ReadLengthPrefixed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReader_ReadLengthPrefixed_Overlong(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		lenWidth int
	}{
		{"length past end", []byte{5, 'a'}, 1},
		{"huge u64 length", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 'a'}, 8},
		{"missing length", []byte{}, 1},
		{"partial length", []byte{1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.data).ReadLengthPrefixed(tt.lenWidth)
			if !errors.Is(err, pickleerrors.ErrTruncatedInput) {
				t.Errorf("err = %v, want truncated", err)
			}
		})
	}
}

func TestReader_Skip(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Position() != 3 {
		t.Errorf("Position = %d, want 3", r.Position())
	}
	if err := r.Skip(2); !errors.Is(err, pickleerrors.ErrTruncatedInput) {
		t.Errorf("Skip past end = %v, want truncated", err)
	}
}

func TestReader_ReadLine(t *testing.T) {
	r := NewReader([]byte("copy_reg\n_reconstructor\nrest"))
	first, err := r.ReadLine()
	if err != nil || string(first) != "copy_reg" {
		t.Fatalf("first line = %q, %v", first, err)
	}
	second, err := r.ReadLine()
	if err != nil || string(second) != "_reconstructor" {
		t.Fatalf("second line = %q, %v", second, err)
	}
	if _, err := r.ReadLine(); !errors.Is(err, pickleerrors.ErrTruncatedInput) {
		t.Errorf("unterminated line err = %v, want truncated", err)
	}
}

func TestReader_Reset(t *testing.T) {
	r := NewReader([]byte{1})
	_, _ = r.ReadByte()
	r.Reset([]byte{7, 8})
	if r.Position() != 0 || r.Remaining() != 2 {
		t.Fatalf("after Reset pos=%d rem=%d", r.Position(), r.Remaining())
	}
	b, _ := r.ReadByte()
	if b != 7 {
		t.Errorf("ReadByte after Reset = %d, want 7", b)
	}
}

func TestSignExtend(t *testing.T) {
	if got := SignExtend(0x80000000, 4); got != math.MinInt32 {
		t.Errorf("SignExtend(0x80000000, 4) = %d", got)
	}
	if got := SignExtend(0x7fffffff, 4); got != math.MaxInt32 {
		t.Errorf("SignExtend(0x7fffffff, 4) = %d", got)
	}
	if got := SignExtend(0xffff, 2); got != -1 {
		t.Errorf("SignExtend(0xffff, 2) = %d", got)
	}
}
