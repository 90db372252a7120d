package render

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/value"
)

// CBORTagSet is the registered CBOR tag for a mathematical finite set.
const CBORTagSet = 258

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("render: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// CBOR encodes v in canonical CBOR. Tuples and lists become arrays, sets
// and frozensets arrays under tag 258, and Long a bignum. Dicts become maps
// whose keys may be any hashable value. Shared containers are written out
// at each occurrence; a cyclic value cannot be encoded.
func CBOR(v value.Value) ([]byte, error) {
	c := &cborBuilder{active: make(map[value.Value]bool)}
	out, err := c.encode(v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type cborBuilder struct {
	active map[value.Value]bool
}

func (c *cborBuilder) encode(v value.Value) (cbor.RawMessage, error) {
	if v != nil && v.Kind().IsMutable() {
		if c.active[v] {
			return nil, errors.Unsupported(errors.PhaseRender, "cyclic "+v.Kind().String()+" in CBOR output")
		}
		c.active[v] = true
		defer delete(c.active, v)
	}

	switch x := v.(type) {
	case nil, value.NoneType:
		return c.marshal(nil)
	case value.Bool:
		return c.marshal(bool(x))
	case value.Int:
		return c.marshal(int64(x))
	case *value.Long:
		return c.marshal(x.Big())
	case value.Float:
		return c.marshal(float64(x))
	case value.Str:
		return c.marshal(string(x))
	case value.Bytes:
		return c.marshal([]byte(x))
	case *value.ByteArray:
		return c.marshal(x.Data)
	case value.Tuple:
		return c.array(x)
	case *value.List:
		return c.array(x.Items)
	case *value.Set:
		return c.set(x.Items())
	case *value.FrozenSet:
		return c.set(x.Items())
	case *value.Dict:
		return c.dict(x)
	}
	return nil, errors.Unsupported(errors.PhaseRender, fmt.Sprintf("%T in CBOR output", v))
}

func (c *cborBuilder) marshal(x any) (cbor.RawMessage, error) {
	out, err := cborEncMode.Marshal(x)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "cbor encode")
	}
	return out, nil
}

func (c *cborBuilder) elements(items []value.Value) ([]cbor.RawMessage, error) {
	out := make([]cbor.RawMessage, len(items))
	for i, it := range items {
		enc, err := c.encode(it)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func (c *cborBuilder) array(items []value.Value) (cbor.RawMessage, error) {
	elems, err := c.elements(items)
	if err != nil {
		return nil, err
	}
	return c.marshal(elems)
}

func (c *cborBuilder) set(items []value.Value) (cbor.RawMessage, error) {
	elems, err := c.elements(items)
	if err != nil {
		return nil, err
	}
	return c.marshal(cbor.Tag{Number: CBORTagSet, Content: elems})
}

// dict writes the map head itself: Go maps cannot hold tuple or frozenset
// keys. Pairs are sorted by encoded key, shorter keys first, as canonical
// CBOR requires.
func (c *cborBuilder) dict(d *value.Dict) (cbor.RawMessage, error) {
	type pair struct{ k, v cbor.RawMessage }
	pairs := make([]pair, 0, d.Len())
	var err error
	d.Each(func(k, v value.Value) bool {
		var p pair
		if p.k, err = c.encode(k); err != nil {
			return false
		}
		if p.v, err = c.encode(v); err != nil {
			return false
		}
		pairs = append(pairs, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(pairs, func(i, j int) bool {
		a, b := pairs[i].k, pairs[j].k
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return bytes.Compare(a, b) < 0
	})

	var buf bytes.Buffer
	buf.Write(cborHead(5, uint64(len(pairs))))
	for _, p := range pairs {
		buf.Write(p.k)
		buf.Write(p.v)
	}
	return buf.Bytes(), nil
}

// cborHead encodes a major type and argument in the shortest form.
func cborHead(major byte, n uint64) []byte {
	m := major << 5
	switch {
	case n < 24:
		return []byte{m | byte(n)}
	case n <= 0xff:
		return []byte{m | 24, byte(n)}
	case n <= 0xffff:
		return []byte{m | 25, byte(n >> 8), byte(n)}
	case n <= 0xffffffff:
		return []byte{m | 26, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	}
	return []byte{m | 27, byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
}
