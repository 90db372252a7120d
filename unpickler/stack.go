package unpickler

import (
	"fmt"

	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/value"
)

// stack is the value stack together with its mark stack.
//
// The most recent mark is a fence: pop, peek and popN never reach values
// pushed before it. Only popMark removes the fence.
type stack struct {
	values   []value.Value
	marks    []int
	maxDepth int
}

func (s *stack) fence() int {
	if len(s.marks) == 0 {
		return 0
	}
	return s.marks[len(s.marks)-1]
}

func (s *stack) depth() int {
	return len(s.values)
}

func (s *stack) push(v value.Value) error {
	if s.maxDepth > 0 && len(s.values) >= s.maxDepth {
		return errors.LimitExceeded("value stack depth", s.maxDepth)
	}
	s.values = append(s.values, v)
	return nil
}

func (s *stack) pop() (value.Value, error) {
	if len(s.values) <= s.fence() {
		return nil, s.underflow(1)
	}
	n := len(s.values) - 1
	v := s.values[n]
	s.values[n] = nil
	s.values = s.values[:n]
	return v, nil
}

func (s *stack) peek() (value.Value, error) {
	if len(s.values) <= s.fence() {
		return nil, s.underflow(1)
	}
	return s.values[len(s.values)-1], nil
}

// replaceTop swaps the top value. The caller has already peeked it.
func (s *stack) replaceTop(v value.Value) {
	s.values[len(s.values)-1] = v
}

// popN removes the top n values and returns them bottom-most first.
func (s *stack) popN(n int) ([]value.Value, error) {
	if len(s.values)-s.fence() < n {
		return nil, s.underflow(n)
	}
	start := len(s.values) - n
	out := make([]value.Value, n)
	copy(out, s.values[start:])
	clear(s.values[start:])
	s.values = s.values[:start]
	return out, nil
}

func (s *stack) pushMark() error {
	if s.maxDepth > 0 && len(s.marks) >= s.maxDepth {
		return errors.LimitExceeded("mark stack depth", s.maxDepth)
	}
	s.marks = append(s.marks, len(s.values))
	return nil
}

// popMark removes the last mark and returns every value above it in
// original order.
func (s *stack) popMark() ([]value.Value, error) {
	if len(s.marks) == 0 {
		return nil, errors.CorruptStack("no mark on the mark stack")
	}
	m := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	out := make([]value.Value, len(s.values)-m)
	copy(out, s.values[m:])
	clear(s.values[m:])
	s.values = s.values[:m]
	return out, nil
}

// discard implements POP: drop the top value, or the last mark when no
// value sits above it.
func (s *stack) discard() error {
	if len(s.values) > s.fence() {
		_, err := s.pop()
		return err
	}
	if len(s.marks) > 0 {
		s.marks = s.marks[:len(s.marks)-1]
		return nil
	}
	return s.underflow(1)
}

func (s *stack) underflow(need int) error {
	if len(s.marks) > 0 {
		return errors.CorruptStack(fmt.Sprintf("need %d values above the mark, have %d", need, len(s.values)-s.fence()))
	}
	return errors.CorruptStack(fmt.Sprintf("need %d values, stack holds %d", need, len(s.values)))
}

func (s *stack) reset() {
	clear(s.values)
	s.values = s.values[:0]
	s.marks = s.marks[:0]
}
