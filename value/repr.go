package value

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Repr formats v the way Python's repr() would. A container that contains
// itself prints as [...] or {...} at the point of recursion.
func Repr(v Value) string {
	var b strings.Builder
	writeRepr(&b, v, make(map[Value]bool))
	return b.String()
}

func writeRepr(b *strings.Builder, v Value, active map[Value]bool) {
	switch x := v.(type) {
	case nil:
		b.WriteString("<nil>")
	case NoneType:
		b.WriteString("None")
	case Bool:
		if x {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case Int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case *Long:
		b.WriteString(x.v.String())
	case Float:
		b.WriteString(FormatFloat(float64(x)))
	case Str:
		b.WriteString(QuoteStr(string(x)))
	case Bytes:
		b.WriteString(QuoteBytes(x))
	case *ByteArray:
		b.WriteString("bytearray(")
		b.WriteString(QuoteBytes(x.Data))
		b.WriteByte(')')
	case Tuple:
		b.WriteByte('(')
		writeItems(b, x, active)
		if len(x) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case *List:
		if enter(b, x, active, "[...]") {
			b.WriteByte('[')
			writeItems(b, x.Items, active)
			b.WriteByte(']')
			delete(active, x)
		}
	case *Dict:
		if enter(b, x, active, "{...}") {
			b.WriteByte('{')
			for i, k := range x.keys {
				if i > 0 {
					b.WriteString(", ")
				}
				writeRepr(b, k, active)
				b.WriteString(": ")
				writeRepr(b, x.vals[i], active)
			}
			b.WriteByte('}')
			delete(active, x)
		}
	case *Set:
		if len(x.items) == 0 {
			b.WriteString("set()")
			return
		}
		if enter(b, x, active, "{...}") {
			b.WriteByte('{')
			writeItems(b, x.items, active)
			b.WriteByte('}')
			delete(active, x)
		}
	case *FrozenSet:
		if len(x.items) == 0 {
			b.WriteString("frozenset()")
			return
		}
		if enter(b, x, active, "frozenset({...})") {
			b.WriteString("frozenset({")
			writeItems(b, x.items, active)
			b.WriteString("})")
			delete(active, x)
		}
	}
}

func enter(b *strings.Builder, v Value, active map[Value]bool, placeholder string) bool {
	if active[v] {
		b.WriteString(placeholder)
		return false
	}
	active[v] = true
	return true
}

func writeItems(b *strings.Builder, items []Value, active map[Value]bool) {
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeRepr(b, item, active)
	}
}

// FormatFloat formats f like Python's float repr: shortest round-trip
// digits, always with a decimal point or exponent, exponent form outside
// [1e-4, 1e16).
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// QuoteStr quotes s like Python's str repr.
func QuoteStr(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			b.WriteString(`\x`)
			b.WriteString(hex2(byte(r)))
		case !unicode.IsPrint(r):
			if r <= 0xff {
				b.WriteString(`\x`)
				b.WriteString(hex2(byte(r)))
			} else if r <= 0xffff {
				b.WriteString(`\u`)
				b.WriteString(padHex(uint64(r), 4))
			} else {
				b.WriteString(`\U`)
				b.WriteString(padHex(uint64(r), 8))
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// QuoteBytes quotes data like Python's bytes repr.
func QuoteBytes(data []byte) string {
	quote := byte('\'')
	if bytes.IndexByte(data, '\'') >= 0 && bytes.IndexByte(data, '"') < 0 {
		quote = '"'
	}
	var b strings.Builder
	b.WriteString("b")
	b.WriteByte(quote)
	for _, c := range data {
		switch {
		case c == quote || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			b.WriteString(`\x`)
			b.WriteString(hex2(c))
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

func hex2(c byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[c>>4], digits[c&0x0f]})
}

func padHex(n uint64, width int) string {
	s := strconv.FormatUint(n, 16)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
