// Package testbed runs the decoder end to end over tapes produced by
// CPython's pickle module.
package testbed

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/wippyai/pickle"
	pickleerrors "github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/render"
	"github.com/wippyai/pickle/unpickler"
	"github.com/wippyai/pickle/value"
	"github.com/wippyai/pickle/wire"
)

type fixture struct {
	name  string
	proto int
	data  string
	repr  string
}

// Tapes are pickle.dumps(obj, protocol) output; repr is repr(obj).
var corpus = []fixture{
	{"none protocol 2", 2, "\x80\x02N.", "None"},
	{"integer widths", 2, "\x80\x02]q\x00(K\x00K\xffM\x00\x01M\xff\xffJ\x00\x00\x01\x00J\xff\xff\xff\xffJ\x00\x00\x00\x80J\xff\xff\xff\x7f\x8a\x05\x00\x00\x00\x80\x00\x8a\x09\x00\x00\x00\x00\x00\x00\x00\x80\x00\x8a\x09\xff\xff\xff\xff\xff\xff\xff\x7f\xff\x8a\x0d\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x10e.", "[0, 255, 256, 65535, 65536, -1, -2147483648, 2147483647, 2147483648, 9223372036854775808, -9223372036854775809, 1267650600228229401496703205376]"},
	{"floats", 4, "\x80\x04\x952\x00\x00\x00\x00\x00\x00\x00]\x94(G\x00\x00\x00\x00\x00\x00\x00\x00G\x80\x00\x00\x00\x00\x00\x00\x00G?\xf8\x00\x00\x00\x00\x00\x00G~7\xe4<\x88\x00u\x9cG\x7f\xf0\x00\x00\x00\x00\x00\x00e.", "[0.0, -0.0, 1.5, 1e+300, inf]"},
	{"text", 4, "\x80\x04\x95E\x00\x00\x00\x00\x00\x00\x00]\x94(\x8c\x00\x94\x8c\x01a\x94\x8c\x02\xc3\xa9\x94\x8c\x06\xe6\x97\xa5\xe6\x9c\xac\x94\x8c(xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx\x94e.", "['', 'a', 'é', '日本', 'xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx']"},
	{"bytes", 4, "\x80\x04\x958\x00\x00\x00\x00\x00\x00\x00]\x94(C\x00\x94C\x02\x00\xff\x94C(yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy\x94e.", "[b'', b'\\x00\\xff', b'yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy']"},
	{"bytes protocol 3", 3, "\x80\x03C\x03abcq\x00.", "b'abc'"},
	{"tuples", 2, "\x80\x02()K\x01\x85q\x00K\x01K\x02\x86q\x01K\x01K\x02K\x03\x87q\x02(K\x01K\x02K\x03K\x04tq\x03tq\x04.", "((), (1,), (1, 2), (1, 2, 3), (1, 2, 3, 4))"},
	{"nested dict", 5, "\x80\x05\x95'\x00\x00\x00\x00\x00\x00\x00}\x94(\x8c\x01a\x94K\x01\x8c\x01b\x94]\x94(\x88\x89Ne\x8c\x01c\x94}\x94\x8c\x01d\x94K\x01K\x02\x86\x94su.", "{'a': 1, 'b': [True, False, None], 'c': {'d': (1, 2)}}"},
	{"set", 4, "\x80\x04\x95\x0b\x00\x00\x00\x00\x00\x00\x00\x8f\x94(K\x01K\x02K\x03\x90.", "{1, 2, 3}"},
	{"frozenset", 4, "\x80\x04\x95\x08\x00\x00\x00\x00\x00\x00\x00(\x8c\x01a\x94\x91\x94.", "frozenset({'a'})"},
	{"shared list", 4, "\x80\x04\x95\x17\x00\x00\x00\x00\x00\x00\x00}\x94(\x8c\x01x\x94]\x94(K\x01K\x02e\x8c\x01y\x94h\x02u.", "{'x': [1, 2], 'y': [1, 2]}"},
	{"bytearray", 5, "\x80\x05\x95\x0d\x00\x00\x00\x00\x00\x00\x00\x96\x02\x00\x00\x00\x00\x00\x00\x00ab\x94.", "bytearray(b'ab')"},
	{"int keys", 2, "\x80\x02}q\x00(K\x00X\x01\x00\x00\x000q\x01K\x01X\x01\x00\x00\x001q\x02K\x02X\x01\x00\x00\x002q\x03u.", "{0: '0', 1: '1', 2: '2'}"},
	{"mixed keys", 4, "\x80\x04\x95!\x00\x00\x00\x00\x00\x00\x00}\x94(K\x01\x8c\x01a\x94G@\x04\x00\x00\x00\x00\x00\x00\x8c\x01b\x94K\x01\x8c\x01k\x94\x86\x94Nu.", "{1: 'a', 2.5: 'b', (1, 'k'): None}"},
	{"recursive list", 4, "\x80\x04\x95\x06\x00\x00\x00\x00\x00\x00\x00]\x94h\x00a.", "[[...]]"},
	{"recursive dict", 2, "\x80\x02}q\x00X\x04\x00\x00\x00selfq\x01h\x00s.", "{'self': {...}}"},
}

func TestCorpus_Decode(t *testing.T) {
	for _, fx := range corpus {
		t.Run(fx.name, func(t *testing.T) {
			u := unpickler.NewWithDefaults()
			v, err := u.Loads([]byte(fx.data))
			if err != nil {
				t.Fatalf("Loads: %v", err)
			}
			if got := value.Repr(v); got != fx.repr {
				t.Errorf("Repr = %s\nwant   %s", got, fx.repr)
			}
			if u.Protocol() != fx.proto {
				t.Errorf("Protocol = %d, want %d", u.Protocol(), fx.proto)
			}
		})
	}
}

func TestCorpus_Disassemble(t *testing.T) {
	for _, fx := range corpus {
		t.Run(fx.name, func(t *testing.T) {
			instrs, err := wire.Disassemble([]byte(fx.data))
			if err != nil {
				t.Fatalf("Disassemble: %v", err)
			}
			last := instrs[len(instrs)-1]
			if last.Info.Code != wire.OpStop || last.Offset != len(fx.data)-1 {
				t.Errorf("last instruction %s at %d, tape length %d", last.Info.Name, last.Offset, len(fx.data))
			}
			for _, in := range instrs {
				if !in.Info.Supported {
					t.Errorf("CPython emitted refused opcode %s", in.Info.Name)
				}
				if in.Info.Proto > fx.proto {
					t.Errorf("%s needs protocol %d in a protocol %d tape", in.Info.Name, in.Info.Proto, fx.proto)
				}
			}
		})
	}
}

func TestCorpus_Render(t *testing.T) {
	for _, fx := range corpus {
		t.Run(fx.name, func(t *testing.T) {
			v, err := pickle.Loads([]byte(fx.data))
			if err != nil {
				t.Fatal(err)
			}
			if render.Text(v, render.PlainStyle()) == "" {
				t.Error("empty text rendering")
			}
			if _, err := render.YAML(v); err != nil {
				t.Errorf("YAML: %v", err)
			}
			_, err = render.CBOR(v)
			cyclic := fx.name == "recursive list" || fx.name == "recursive dict"
			switch {
			case cyclic && !errors.Is(err, pickleerrors.New(pickleerrors.PhaseRender, pickleerrors.KindUnsupported).Build()):
				t.Errorf("CBOR of cyclic value: err = %v", err)
			case !cyclic && err != nil:
				t.Errorf("CBOR: %v", err)
			}
		})
	}
}

func TestCorpus_SharedListIsAliased(t *testing.T) {
	v, err := pickle.Loads([]byte(corpus[10].data))
	if err != nil {
		t.Fatal(err)
	}
	d := v.(*value.Dict)
	x, _ := d.Get(value.Str("x"))
	y, _ := d.Get(value.Str("y"))
	if x != y {
		t.Fatal("x and y decoded as separate lists")
	}
}

func TestCorpus_RecursiveListContainsItself(t *testing.T) {
	v, err := pickle.Loads([]byte(corpus[14].data))
	if err != nil {
		t.Fatal(err)
	}
	l := v.(*value.List)
	if l.Len() != 1 || l.Items[0] != value.Value(l) {
		t.Error("list does not contain itself")
	}
}

func TestOutOfBandBuffers(t *testing.T) {
	// pickle.dumps([PickleBuffer(b"abc"), PickleBuffer(bytearray(b"rw"))],
	//     protocol=5, buffer_callback=bufs.append)
	data := []byte("\x80\x05\x95\x08\x00\x00\x00\x00\x00\x00\x00]\x94(\x97\x98\x97e.")
	v, err := pickle.Loads(data, []byte("abc"), []byte("rw"))
	if err != nil {
		t.Fatalf("Loads: %v", err)
	}
	if got := value.Repr(v); got != "[b'abc', bytearray(b'rw')]" {
		t.Errorf("Repr = %s", got)
	}

	_, err = pickle.Loads(data, []byte("abc"))
	if !errors.Is(err, pickleerrors.ErrMissingBuffer) {
		t.Errorf("one buffer short: err = %v", err)
	}
}

// batchedList builds the tape CPython writes for list(range(n)) at
// protocol 2: APPENDS batches of at most 1000 items.
func batchedList(n int) []byte {
	tape := []byte{0x80, 0x02, ']', 'q', 0x00}
	for start := 0; start < n; start += 1000 {
		tape = append(tape, '(')
		for i := start; i < n && i < start+1000; i++ {
			if i < 256 {
				tape = append(tape, 'K', byte(i))
			} else {
				tape = append(tape, 'M')
				tape = binary.LittleEndian.AppendUint16(tape, uint16(i))
			}
		}
		tape = append(tape, 'e')
	}
	return append(tape, '.')
}

func TestBatchedAppends(t *testing.T) {
	tape := batchedList(1005)
	if len(tape) != 2769 {
		t.Fatalf("tape length %d, CPython writes 2769", len(tape))
	}
	v, err := pickle.Loads(tape)
	if err != nil {
		t.Fatal(err)
	}
	l := v.(*value.List)
	if l.Len() != 1005 || l.Items[1004] != value.Int(1004) {
		t.Errorf("Len = %d, last = %v", l.Len(), l.Items[l.Len()-1])
	}
}

func TestTruncatedCorpus(t *testing.T) {
	for _, fx := range corpus {
		data := []byte(fx.data)
		for cut := 0; cut < len(data)-1; cut++ {
			_, err := pickle.Loads(data[:cut])
			if err == nil {
				t.Fatalf("%s: prefix of %d bytes decoded", fx.name, cut)
			}
		}
	}
}
