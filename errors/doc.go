// Package errors provides structured error types for the pickle decoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the opcode name and tape offset when the interpreter
// raised it, plus an optional detail message and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindCorruptStack).
//		Op("APPENDS").
//		Offset(12).
//		Detail("no mark on the stack").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Truncated(pos, 4, 1)
//	err := errors.InvalidMemoReference(7)
//
// Callers test for a category with the sentinels:
//
//	if errors.Is(err, pickleerrors.ErrTruncatedInput) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
