package unpickler

import (
	"go.uber.org/zap"

	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/internal/binary"
	"github.com/wippyai/pickle/value"
)

// Unpickler decodes pickle tapes into value trees.
//
// An Unpickler holds the value stack, mark stack and memo of one decode at
// a time. It is not safe for concurrent use; Loads resets all state, so the
// same Unpickler may decode many tapes in sequence.
type Unpickler struct {
	r          *binary.Reader
	memo       *Memo
	result     value.Value
	stack      stack
	opts       Options
	proto      int
	nextBuffer int
	done       bool
}

// New creates an Unpickler with the given options.
func New(opts Options) *Unpickler {
	return &Unpickler{
		r:     binary.NewReader(nil),
		memo:  NewMemo(opts.MaxMemoEntries),
		stack: stack{maxDepth: opts.MaxStackDepth},
		opts:  opts,
		proto: -1,
	}
}

// NewWithDefaults creates an Unpickler with default options.
func NewWithDefaults() *Unpickler {
	return New(DefaultOptions())
}

// Options returns the configuration.
func (u *Unpickler) Options() Options {
	return u.opts
}

// Protocol returns the version declared by the last tape's PROTO opcode,
// or -1 when the tape did not declare one.
func (u *Unpickler) Protocol() int {
	return u.proto
}

// Memo returns the memo table of the last decode.
func (u *Unpickler) Memo() *Memo {
	return u.memo
}

// Loads decodes one value from tape. Bytes after STOP are ignored.
//
// Every error is an *errors.Error carrying the name and tape offset of the
// opcode that failed. No partial result is returned.
func (u *Unpickler) Loads(tape []byte) (value.Value, error) {
	u.reset(tape)

	v, err := u.run()
	log := u.logger()
	if err != nil {
		log.Debug("pickle decode failed",
			zap.Int("offset", u.r.Position()),
			zap.Int("protocol", u.proto),
			zap.Error(err))
		return nil, err
	}
	log.Debug("pickle decoded",
		zap.Int("bytes", u.r.Position()),
		zap.Int("protocol", u.proto),
		zap.Int("memo", u.memo.Len()),
		zap.Stringer("kind", v.Kind()))
	return v, nil
}

func (u *Unpickler) run() (value.Value, error) {
	for !u.done {
		offset := u.r.Position()
		code, err := u.r.ReadByte()
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindTruncatedInput).
				Offset(offset).
				Detail("tape ended before STOP").
				Build()
		}
		h := opcodes.get(code)
		if h == nil {
			e := errors.UnknownOpcode(code)
			e.Offset = offset
			return nil, e
		}
		if err := h(u); err != nil {
			return nil, u.annotate(err, code, offset)
		}
	}
	return u.result, nil
}

// annotate stamps the failing opcode onto errors raised below the dispatch loop.
func (u *Unpickler) annotate(err error, code byte, offset int) error {
	pe, ok := err.(*errors.Error)
	if !ok {
		return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, opcodes.name(code))
	}
	if pe.Op == "" {
		pe.Op = opcodes.name(code)
	}
	if pe.Offset < 0 {
		pe.Offset = offset
	}
	return pe
}

func (u *Unpickler) logger() *zap.Logger {
	if u.opts.Logger != nil {
		return u.opts.Logger
	}
	return Logger()
}

func (u *Unpickler) reset(tape []byte) {
	u.r.Reset(tape)
	u.stack.reset()
	u.memo.Reset()
	u.result = nil
	u.proto = -1
	u.nextBuffer = 0
	u.done = false
}

// release drops references to the last tape and its values.
func (u *Unpickler) release() {
	u.reset(nil)
	u.opts.Buffers = nil
}

func (u *Unpickler) topList() (*value.List, error) {
	top, err := u.stack.peek()
	if err != nil {
		return nil, err
	}
	list, ok := top.(*value.List)
	if !ok {
		return nil, errors.TypeMismatch("list", top.Kind().String())
	}
	return list, nil
}

func (u *Unpickler) topDict() (*value.Dict, error) {
	top, err := u.stack.peek()
	if err != nil {
		return nil, err
	}
	dict, ok := top.(*value.Dict)
	if !ok {
		return nil, errors.TypeMismatch("dict", top.Kind().String())
	}
	return dict, nil
}
