package unpickler

import (
	"bytes"
	"unicode/utf8"

	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/internal/binary"
	"github.com/wippyai/pickle/value"
	"github.com/wippyai/pickle/wire"
)

var opcodes = buildRegistry()

func buildRegistry() *registry {
	r := newRegistry()

	// Framing
	r.register(wire.OpProto, opProto, "PROTO")
	r.register(wire.OpFrame, opFrame, "FRAME")
	r.register(wire.OpStop, opStop, "STOP")

	// Scalars
	r.register(wire.OpNone, pushConst(value.None), "NONE")
	r.register(wire.OpNewTrue, pushConst(value.Bool(true)), "NEWTRUE")
	r.register(wire.OpNewFalse, pushConst(value.Bool(false)), "NEWFALSE")
	r.register(wire.OpBinInt, opFixedInt(4, true), "BININT")
	r.register(wire.OpBinInt1, opFixedInt(1, false), "BININT1")
	r.register(wire.OpBinInt2, opFixedInt(2, false), "BININT2")
	r.register(wire.OpLong1, opLong1, "LONG1")
	r.register(wire.OpLong4, opLong4, "LONG4")
	r.register(wire.OpBinFloat, opBinFloat, "BINFLOAT")
	r.register(wire.OpShortBinBytes, opBytes(1), "SHORT_BINBYTES")
	r.register(wire.OpBinBytes, opBytes(4), "BINBYTES")
	r.register(wire.OpBinBytes8, opBytes(8), "BINBYTES8")
	r.register(wire.OpShortBinUnicode, opUnicode(1), "SHORT_BINUNICODE")
	r.register(wire.OpBinUnicode, opUnicode(4), "BINUNICODE")
	r.register(wire.OpBinUnicode8, opUnicode(8), "BINUNICODE8")
	r.register(wire.OpByteArray8, opByteArray8, "BYTEARRAY8")
	r.register(wire.OpNextBuffer, opNextBuffer, "NEXT_BUFFER")
	r.register(wire.OpReadonlyBuffer, opReadonlyBuffer, "READONLY_BUFFER")

	// Containers
	r.register(wire.OpMark, opMark, "MARK")
	r.register(wire.OpEmptyList, pushNew(func() value.Value { return value.NewList() }), "EMPTY_LIST")
	r.register(wire.OpEmptyDict, pushNew(func() value.Value { return value.NewDict() }), "EMPTY_DICT")
	r.register(wire.OpEmptySet, pushNew(func() value.Value { return value.NewSet() }), "EMPTY_SET")
	r.register(wire.OpEmptyTuple, pushNew(func() value.Value { return value.Tuple{} }), "EMPTY_TUPLE")
	r.register(wire.OpAppend, opAppend, "APPEND")
	r.register(wire.OpAppends, opAppends, "APPENDS")
	r.register(wire.OpSetItem, opSetItem, "SETITEM")
	r.register(wire.OpSetItems, opSetItems, "SETITEMS")
	r.register(wire.OpAddItems, opAddItems, "ADDITEMS")
	r.register(wire.OpFrozenSet, opFrozenSet, "FROZENSET")
	r.register(wire.OpTuple, opTuple, "TUPLE")
	r.register(wire.OpTuple1, opTupleN(1), "TUPLE1")
	r.register(wire.OpTuple2, opTupleN(2), "TUPLE2")
	r.register(wire.OpTuple3, opTupleN(3), "TUPLE3")

	// Memo
	r.register(wire.OpMemoize, opMemoize, "MEMOIZE")
	r.register(wire.OpBinPut, opPut(1), "BINPUT")
	r.register(wire.OpLongBinPut, opPut(4), "LONG_BINPUT")
	r.register(wire.OpBinGet, opGet(1), "BINGET")
	r.register(wire.OpLongBinGet, opGet(4), "LONG_BINGET")

	// Stack
	r.register(wire.OpPop, opPop, "POP")
	r.register(wire.OpPopMark, opPopMark, "POP_MARK")

	// Known but refused
	var refused []byte
	for _, info := range wire.Opcodes() {
		if !info.Supported {
			refused = append(refused, info.Code)
		}
	}
	r.registerBulk(refused, opUnsupported, wire.Name)

	return r
}

func opUnsupported(op byte) handler {
	name := wire.Name(op)
	return func(*Unpickler) error {
		return errors.UnsupportedOpcode(name)
	}
}

func opProto(u *Unpickler) error {
	v, err := u.r.ReadByte()
	if err != nil {
		return err
	}
	if int(v) > wire.HighestProtocol {
		return errors.UnsupportedProtocol(int(v), wire.HighestProtocol)
	}
	u.proto = int(v)
	return nil
}

func opFrame(u *Unpickler) error {
	_, err := u.r.ReadUint(8)
	return err
}

func opStop(u *Unpickler) error {
	if n := len(u.stack.marks); n > 0 {
		return errors.New(errors.PhaseDecode, errors.KindCorruptStack).
			Detail("%d open mark(s) at STOP", n).
			Build()
	}
	if n := u.stack.depth(); n != 1 {
		return errors.New(errors.PhaseDecode, errors.KindCorruptStack).
			Detail("stack holds %d values at STOP, want 1", n).
			Build()
	}
	u.result = u.stack.values[0]
	u.done = true
	return nil
}

func pushConst(v value.Value) handler {
	return func(u *Unpickler) error {
		return u.stack.push(v)
	}
}

func pushNew(mk func() value.Value) handler {
	return func(u *Unpickler) error {
		return u.stack.push(mk())
	}
}

func opFixedInt(width int, signed bool) handler {
	return func(u *Unpickler) error {
		n, err := u.r.ReadFixedInt(width, signed)
		if err != nil {
			return err
		}
		return u.stack.push(value.Int(n))
	}
}

func opLong1(u *Unpickler) error {
	data, err := u.r.ReadLengthPrefixed(1)
	if err != nil {
		return err
	}
	return u.stack.push(decodeLong(data))
}

func opLong4(u *Unpickler) error {
	n, err := u.r.ReadFixedInt(4, true)
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.InvalidData(errors.PhaseDecode, "LONG4 has negative byte count")
	}
	data, err := u.r.ReadBytes(uint64(n))
	if err != nil {
		return err
	}
	return u.stack.push(decodeLong(data))
}

// decodeLong keeps payloads of up to 8 bytes on the int64 path.
func decodeLong(data []byte) value.Value {
	if len(data) == 0 {
		return value.Int(0)
	}
	if len(data) <= 8 {
		var u uint64
		for i, b := range data {
			u |= uint64(b) << (8 * i)
		}
		return value.Int(binary.SignExtend(u, len(data)))
	}
	return value.Integer(wire.DecodeLong(data))
}

func opBinFloat(u *Unpickler) error {
	f, err := u.r.ReadFloat64BE()
	if err != nil {
		return err
	}
	return u.stack.push(value.Float(f))
}

func opBytes(lenWidth int) handler {
	return func(u *Unpickler) error {
		data, err := u.r.ReadLengthPrefixed(lenWidth)
		if err != nil {
			return err
		}
		return u.stack.push(value.Bytes(bytes.Clone(data)))
	}
}

func opUnicode(lenWidth int) handler {
	return func(u *Unpickler) error {
		data, err := u.r.ReadLengthPrefixed(lenWidth)
		if err != nil {
			return err
		}
		if !utf8.Valid(data) {
			return errors.InvalidTextEncoding(data)
		}
		return u.stack.push(value.Str(data))
	}
}

func opByteArray8(u *Unpickler) error {
	data, err := u.r.ReadLengthPrefixed(8)
	if err != nil {
		return err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return u.stack.push(value.NewByteArray(buf))
}

func opNextBuffer(u *Unpickler) error {
	if u.nextBuffer >= len(u.opts.Buffers) {
		return errors.MissingBuffer(u.nextBuffer)
	}
	buf := u.opts.Buffers[u.nextBuffer]
	u.nextBuffer++
	return u.stack.push(value.NewByteArray(buf))
}

func opReadonlyBuffer(u *Unpickler) error {
	top, err := u.stack.peek()
	if err != nil {
		return err
	}
	switch b := top.(type) {
	case *value.ByteArray:
		u.stack.replaceTop(value.Bytes(b.Data))
	case value.Bytes:
	default:
		return errors.TypeMismatch("buffer", top.Kind().String())
	}
	return nil
}

func opMark(u *Unpickler) error {
	return u.stack.pushMark()
}

func opAppend(u *Unpickler) error {
	v, err := u.stack.pop()
	if err != nil {
		return err
	}
	list, err := u.topList()
	if err != nil {
		return err
	}
	list.Append(v)
	return nil
}

func opAppends(u *Unpickler) error {
	items, err := u.stack.popMark()
	if err != nil {
		return err
	}
	list, err := u.topList()
	if err != nil {
		return err
	}
	list.Append(items...)
	return nil
}

func opSetItem(u *Unpickler) error {
	pair, err := u.stack.popN(2)
	if err != nil {
		return err
	}
	dict, err := u.topDict()
	if err != nil {
		return err
	}
	return dict.Set(pair[0], pair[1])
}

func opSetItems(u *Unpickler) error {
	items, err := u.stack.popMark()
	if err != nil {
		return err
	}
	if len(items)%2 != 0 {
		return errors.New(errors.PhaseDecode, errors.KindCorruptStack).
			Detail("odd number of items (%d) for key/value pairs", len(items)).
			Build()
	}
	dict, err := u.topDict()
	if err != nil {
		return err
	}
	for i := 0; i < len(items); i += 2 {
		if err := dict.Set(items[i], items[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func opAddItems(u *Unpickler) error {
	items, err := u.stack.popMark()
	if err != nil {
		return err
	}
	top, err := u.stack.peek()
	if err != nil {
		return err
	}
	var add func(value.Value) error
	switch s := top.(type) {
	case *value.Set:
		add = s.Add
	case *value.FrozenSet:
		add = s.Add
	default:
		return errors.TypeMismatch("set", top.Kind().String())
	}
	for _, it := range items {
		if err := add(it); err != nil {
			return err
		}
	}
	return nil
}

func opFrozenSet(u *Unpickler) error {
	items, err := u.stack.popMark()
	if err != nil {
		return err
	}
	fs := value.NewFrozenSet()
	for _, it := range items {
		if err := fs.Add(it); err != nil {
			return err
		}
	}
	return u.stack.push(fs)
}

func opTuple(u *Unpickler) error {
	items, err := u.stack.popMark()
	if err != nil {
		return err
	}
	return u.stack.push(value.Tuple(items))
}

func opTupleN(n int) handler {
	return func(u *Unpickler) error {
		items, err := u.stack.popN(n)
		if err != nil {
			return err
		}
		return u.stack.push(value.Tuple(items))
	}
}

func opMemoize(u *Unpickler) error {
	top, err := u.stack.peek()
	if err != nil {
		return err
	}
	return u.memo.Memoize(top)
}

func opPut(width int) handler {
	return func(u *Unpickler) error {
		idx, err := u.r.ReadUint(width)
		if err != nil {
			return err
		}
		top, err := u.stack.peek()
		if err != nil {
			return err
		}
		return u.memo.Put(uint32(idx), top)
	}
}

func opGet(width int) handler {
	return func(u *Unpickler) error {
		idx, err := u.r.ReadUint(width)
		if err != nil {
			return err
		}
		v, err := u.memo.Get(uint32(idx))
		if err != nil {
			return err
		}
		return u.stack.push(v)
	}
}

func opPop(u *Unpickler) error {
	return u.stack.discard()
}

func opPopMark(u *Unpickler) error {
	_, err := u.stack.popMark()
	return err
}
