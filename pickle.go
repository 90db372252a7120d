package pickle

import (
	"github.com/wippyai/pickle/unpickler"
	"github.com/wippyai/pickle/value"
)

// Value is a decoded pickle value.
type Value = value.Value

// Loads decodes a single value from data. Buffers are the out-of-band
// buffers consumed in order by protocol 5's NEXT_BUFFER opcode.
//
// Loads is safe for concurrent use. For custom limits or a per-call logger
// use unpickler.New.
func Loads(data []byte, buffers ...[]byte) (Value, error) {
	return unpickler.Loads(data, buffers...)
}
