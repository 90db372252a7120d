package unpickler

import (
	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/value"
)

// Memo is the backreference table. Entries hold the same Value that was on
// the stack, so mutable containers stay aliased.
type Memo struct {
	entries map[uint32]value.Value
	next    uint32
	max     int
}

// NewMemo creates an empty memo bounded to limit distinct indices (zero for no bound).
func NewMemo(limit int) *Memo {
	return &Memo{entries: make(map[uint32]value.Value), max: limit}
}

// Put stores v at index, overwriting any previous entry.
func (m *Memo) Put(index uint32, v value.Value) error {
	if _, ok := m.entries[index]; !ok && m.max > 0 && len(m.entries) >= m.max {
		return errors.LimitExceeded("memo entries", m.max)
	}
	m.entries[index] = v
	return nil
}

// Get returns the value stored at index.
func (m *Memo) Get(index uint32) (value.Value, error) {
	v, ok := m.entries[index]
	if !ok {
		return nil, errors.InvalidMemoReference(index)
	}
	return v, nil
}

// Memoize stores v at the next sequential index. The counter starts at 0
// and ignores indices written through Put.
func (m *Memo) Memoize(v value.Value) error {
	if err := m.Put(m.next, v); err != nil {
		return err
	}
	m.next++
	return nil
}

// Len returns the number of stored entries.
func (m *Memo) Len() int {
	return len(m.entries)
}

// Reset drops every entry and rewinds the sequential counter.
func (m *Memo) Reset() {
	clear(m.entries)
	m.next = 0
}
