package unpickler

import "go.uber.org/zap"

// Default decoder limits.
const (
	DefaultMaxStackDepth  = 1 << 20
	DefaultMaxMemoEntries = 1 << 24
)

// Options configures an Unpickler.
type Options struct {
	// Logger overrides the package logger for this Unpickler.
	Logger *zap.Logger

	// Buffers are the out-of-band buffers consumed in order by NEXT_BUFFER.
	// They are shared with decoded ByteArray values, not copied.
	Buffers [][]byte

	// MaxStackDepth bounds the value stack and the mark stack. Zero disables the bound.
	MaxStackDepth int

	// MaxMemoEntries bounds the number of distinct memo indices. Zero disables the bound.
	MaxMemoEntries int
}

// DefaultOptions returns default decoder configuration.
func DefaultOptions() Options {
	return Options{
		MaxStackDepth:  DefaultMaxStackDepth,
		MaxMemoEntries: DefaultMaxMemoEntries,
	}
}
