package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // tape to value tree
	PhaseConfig Phase = "config" // option and config file validation
	PhaseRender Phase = "render" // value tree to text/YAML/CBOR
	PhaseLoad   Phase = "load"   // reading input tapes
)

// Kind categorizes the error
type Kind string

const (
	KindTruncatedInput       Kind = "truncated_input"
	KindUnsupportedProtocol  Kind = "unsupported_protocol"
	KindUnknownOpcode        Kind = "unknown_opcode"
	KindUnsupportedOpcode    Kind = "unsupported_opcode"
	KindInvalidMemoReference Kind = "invalid_memo_reference"
	KindCorruptStack         Kind = "corrupt_stack"
	KindMalformedFloat       Kind = "malformed_float_encoding"
	KindInvalidTextEncoding  Kind = "invalid_text_encoding"
	KindTypeMismatch         Kind = "type_mismatch"
	KindUnhashable           Kind = "unhashable"
	KindMissingBuffer        Kind = "missing_buffer"
	KindLimitExceeded        Kind = "limit_exceeded"
	KindInvalidData          Kind = "invalid_data"
	KindInvalidInput         Kind = "invalid_input"
	KindUnsupported          Kind = "unsupported"
)

// Sentinels for errors.Is. Matching compares Phase and Kind only.
var (
	ErrTruncatedInput       = &Error{Phase: PhaseDecode, Kind: KindTruncatedInput}
	ErrUnsupportedProtocol  = &Error{Phase: PhaseDecode, Kind: KindUnsupportedProtocol}
	ErrUnknownOpcode        = &Error{Phase: PhaseDecode, Kind: KindUnknownOpcode}
	ErrUnsupportedOpcode    = &Error{Phase: PhaseDecode, Kind: KindUnsupportedOpcode}
	ErrInvalidMemoReference = &Error{Phase: PhaseDecode, Kind: KindInvalidMemoReference}
	ErrCorruptStack         = &Error{Phase: PhaseDecode, Kind: KindCorruptStack}
	ErrMalformedFloat       = &Error{Phase: PhaseDecode, Kind: KindMalformedFloat}
	ErrInvalidTextEncoding  = &Error{Phase: PhaseDecode, Kind: KindInvalidTextEncoding}
	ErrTypeMismatch         = &Error{Phase: PhaseDecode, Kind: KindTypeMismatch}
	ErrUnhashable           = &Error{Phase: PhaseDecode, Kind: KindUnhashable}
	ErrMissingBuffer        = &Error{Phase: PhaseDecode, Kind: KindMissingBuffer}
	ErrLimitExceeded        = &Error{Phase: PhaseDecode, Kind: KindLimitExceeded}
	ErrInvalidData          = &Error{Phase: PhaseDecode, Kind: KindInvalidData}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string // opcode name, when raised while executing one
	Detail string
	Offset int // tape offset of the opcode, -1 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}
	if e.Op != "" {
		b.WriteString(" (")
		b.WriteString(e.Op)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Op sets the opcode name
func (b *Builder) Op(name string) *Builder {
	b.err.Op = name
	return b
}

// Offset sets the tape offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Truncated reports that fewer bytes remain than an operand needs.
func Truncated(offset, need, remaining int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncatedInput,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", need, remaining),
	}
}

// UnsupportedProtocol reports a PROTO byte above the highest supported version.
func UnsupportedProtocol(version, highest int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnsupportedProtocol,
		Offset: -1,
		Detail: fmt.Sprintf("protocol %d (highest supported %d)", version, highest),
		Value:  version,
	}
}

// UnknownOpcode reports a byte that is not in the opcode table.
func UnknownOpcode(op byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownOpcode,
		Offset: -1,
		Detail: fmt.Sprintf("opcode 0x%02x", op),
		Value:  op,
	}
}

// UnsupportedOpcode reports a known opcode the decoder refuses to execute.
func UnsupportedOpcode(name string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnsupportedOpcode,
		Offset: -1,
		Detail: fmt.Sprintf("%s requires class or persistent-id resolution", name),
	}
}

// InvalidMemoReference reports a get against an unset memo index.
func InvalidMemoReference(index uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidMemoReference,
		Offset: -1,
		Detail: fmt.Sprintf("memo index %d is not set", index),
		Value:  index,
	}
}

// CorruptStack reports a stack or mark stack that cannot satisfy an operation.
func CorruptStack(detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindCorruptStack,
		Offset: -1,
		Detail: detail,
	}
}

// MalformedFloat reports a float operand that cannot be decoded.
func MalformedFloat(offset, remaining int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedFloat,
		Offset: offset,
		Detail: fmt.Sprintf("need 8 bytes for big-endian double, %d remaining", remaining),
	}
}

// InvalidTextEncoding creates an invalid UTF-8 error
func InvalidTextEncoding(data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidTextEncoding,
		Offset: -1,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// TypeMismatch reports a container operation applied to the wrong kind.
func TypeMismatch(want, got string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTypeMismatch,
		Offset: -1,
		Detail: fmt.Sprintf("expected %s, got %s", want, got),
	}
}

// Unhashable reports a dict key or set member that cannot be hashed.
func Unhashable(kind string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnhashable,
		Offset: -1,
		Detail: fmt.Sprintf("unhashable type: %s", kind),
	}
}

// MissingBuffer reports NEXT_BUFFER with no out-of-band buffer left.
func MissingBuffer(consumed int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMissingBuffer,
		Offset: -1,
		Detail: fmt.Sprintf("tape refers to out-of-band buffer %d but only %d were supplied", consumed, consumed),
	}
}

// LimitExceeded reports a configured decoder limit being crossed.
func LimitExceeded(what string, limit int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindLimitExceeded,
		Offset: -1,
		Detail: fmt.Sprintf("%s exceeds limit %d", what, limit),
		Value:  limit,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Offset: -1,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Offset: -1,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: -1,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates an input loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}
