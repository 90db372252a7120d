package unpickler

// handler executes one opcode against the Unpickler's state, reading any
// operand bytes from the tape itself.
type handler func(u *Unpickler) error

// registry maps opcode bytes to handlers.
//
// Lookup is a single array index. Names are kept alongside so errors can
// name the opcode that failed.
type registry struct {
	handlers [256]handler
	names    [256]string
}

func newRegistry() *registry {
	return &registry{}
}

// register adds a handler for a single opcode, replacing any previous one.
func (r *registry) register(opcode byte, h handler, name string) {
	r.handlers[opcode] = h
	r.names[opcode] = name
}

// registerBulk registers handlers built by mk for several opcodes.
func (r *registry) registerBulk(opcodes []byte, mk func(op byte) handler, names func(op byte) string) {
	for _, op := range opcodes {
		r.register(op, mk(op), names(op))
	}
}

func (r *registry) get(opcode byte) handler {
	return r.handlers[opcode]
}

func (r *registry) has(opcode byte) bool {
	return r.handlers[opcode] != nil
}

func (r *registry) name(opcode byte) string {
	return r.names[opcode]
}

// missing returns the opcodes in the list that have no handler.
func (r *registry) missing(opcodes []byte) []byte {
	var out []byte
	for _, op := range opcodes {
		if r.handlers[op] == nil {
			out = append(out, op)
		}
	}
	return out
}
