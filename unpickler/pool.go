package unpickler

import (
	"sync"

	"github.com/wippyai/pickle/value"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxStack = 1 << 12
	poolMaxMemo  = 1 << 12
)

var unpicklerPool = sync.Pool{
	New: func() any {
		return NewWithDefaults()
	},
}

func getUnpickler() *Unpickler {
	return unpicklerPool.Get().(*Unpickler)
}

func putUnpickler(u *Unpickler) {
	if u == nil || cap(u.stack.values) > poolMaxStack || u.memo.Len() > poolMaxMemo {
		return // reject oversized
	}
	u.release()
	unpicklerPool.Put(u)
}

// Loads decodes tape with default options on a pooled Unpickler.
// Buffers are consumed in order by NEXT_BUFFER.
func Loads(tape []byte, buffers ...[]byte) (value.Value, error) {
	u := getUnpickler()
	defer putUnpickler(u)
	u.opts.Buffers = buffers
	return u.Loads(tape)
}
