package value

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/wippyai/pickle/errors"
)

// MaxHashKeyLen bounds the canonical key built for one dict key or set
// member. Tuples reached through memo backreferences can share structure,
// so a short tape can describe a key whose flat form is exponentially long.
const MaxHashKeyLen = 1 << 22

// Str and Bytes payloads longer than this are keyed by their SHA-256
// digest so long text keys stay within MaxHashKeyLen.
const digestThreshold = 64

// nanSeq numbers NaN keys. NaN never equals anything, so each one gets a
// key no other value can produce.
var nanSeq atomic.Uint64

// HashKey returns a canonical string for a hashable value. Two values have
// the same key exactly when they are equal under Python semantics, so
// 1, 1.0 and True collide while 'a' and b'a' do not. Every call with a NaN
// inside v yields a fresh key.
func HashKey(v Value) (string, error) {
	budget := MaxHashKeyLen
	w := keyWriter{budget: &budget}
	if err := w.write(v); err != nil {
		return "", err
	}
	return w.b.String(), nil
}

type keyWriter struct {
	budget   *int
	visiting map[*FrozenSet]bool
	b        strings.Builder
}

func (w *keyWriter) put(parts ...string) error {
	for _, s := range parts {
		*w.budget -= len(s)
		if *w.budget < 0 {
			return errors.LimitExceeded("hash key length", MaxHashKeyLen)
		}
		w.b.WriteString(s)
	}
	return nil
}

func (w *keyWriter) payload(tag, data string) error {
	if len(data) > digestThreshold {
		sum := sha256.Sum256([]byte(data))
		return w.put(tag, "#", hex.EncodeToString(sum[:]))
	}
	return w.put(tag, strconv.Itoa(len(data)), ":", data)
}

func (w *keyWriter) write(v Value) error {
	switch x := v.(type) {
	case NoneType:
		return w.put("N")
	case Bool, Int, *Long, Float:
		return w.put(numericKey(x))
	case Bytes:
		return w.payload("b", string(x))
	case Str:
		return w.payload("s", string(x))
	case Tuple:
		if err := w.put("t", strconv.Itoa(len(x)), "("); err != nil {
			return err
		}
		for _, item := range x {
			if err := w.write(item); err != nil {
				return err
			}
		}
		return w.put(")")
	case *FrozenSet:
		if w.visiting[x] {
			return errors.Unhashable("recursive frozenset")
		}
		if w.visiting == nil {
			w.visiting = make(map[*FrozenSet]bool)
		}
		w.visiting[x] = true
		defer delete(w.visiting, x)

		keys := make([]string, 0, len(x.items))
		for _, item := range x.items {
			sub := keyWriter{budget: w.budget, visiting: w.visiting}
			if err := sub.write(item); err != nil {
				return err
			}
			keys = append(keys, sub.b.String())
		}
		sort.Strings(keys)
		if err := w.put("F", strconv.Itoa(len(keys)), "{"); err != nil {
			return err
		}
		for _, k := range keys {
			if err := w.put(strconv.Itoa(len(k)), ":", k); err != nil {
				return err
			}
		}
		return w.put("}")
	}
	return errors.Unhashable(kindName(v))
}

func numericKey(v Value) string {
	i, f, l, kind := numeric(v)
	switch kind {
	case 'i':
		return "i" + strconv.FormatInt(i, 10)
	case 'l':
		return "i" + l.String()
	case 'f':
		if math.IsNaN(f) {
			return "n" + strconv.FormatUint(nanSeq.Add(1), 10)
		}
		if n, ok := integralBig(f); ok {
			return "i" + n.String()
		}
		return "f" + strconv.FormatUint(math.Float64bits(f), 16)
	}
	return ""
}

// integralBig converts a finite integral float outside int64 range.
func integralBig(f float64) (*big.Int, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return nil, false
	}
	n, _ := big.NewFloat(f).Int(nil)
	return n, true
}

func kindName(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
