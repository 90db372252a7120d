// Package unpickler executes pickle tapes (protocols 2 through 5) and
// returns the single value they describe.
//
// Decoding is a loop over a 256-entry handler table. Each handler reads its
// operand from the tape and works on three pieces of state: the value
// stack, the mark stack and the memo. The last mark fences the stack, so a
// plain pop can never reach values pushed before it.
//
//	v, err := unpickler.Loads(tape)
//	if errors.Is(err, pickleerrors.ErrUnsupportedOpcode) {
//		// the tape needs class resolution
//	}
//
// Opcodes that construct class instances or resolve persistent ids are
// recognized and rejected with ErrUnsupportedOpcode.
package unpickler
