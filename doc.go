// Package pickle decodes Python pickle data (protocols 2 through 5) into Go
// values without executing any Python-side code.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	pickle/              Root package with the Loads entry point
//	├── unpickler/       Opcode interpreter, memo table, decoder options
//	├── value/           Closed value model, hashing, equality, repr
//	├── wire/            Opcode table and tape disassembler
//	├── render/          Text, YAML, CBOR and disassembly output
//	├── errors/          Structured error types for debugging
//	├── internal/binary/ Bounds-checked tape reader
//	└── cmd/unpickle/    Command line decoder and interactive browser
//
// # Quick Start
//
//	v, err := pickle.Loads(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(value.Repr(v))
//
// Only data opcodes are executed. Tapes that reference classes (GLOBAL,
// REDUCE, NEWOBJ and friends) or persistent ids fail with
// errors.ErrUnsupportedOpcode instead of being approximated.
package pickle
