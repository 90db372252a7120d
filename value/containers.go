package value

// List is a mutable sequence shared by pointer, so that every memo
// backreference observes appends made through any other.
type List struct {
	Items []Value
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

func (*List) Kind() Kind { return KindList }
func (*List) isValue()   {}

// Append adds items to the end of the list.
func (l *List) Append(items ...Value) {
	l.Items = append(l.Items, items...)
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.Items)
}

// Dict is an insertion-ordered mapping. Keys follow Python hashing rules:
// keys that compare equal (1, 1.0, True) share one slot.
type Dict struct {
	keys  []Value
	vals  []Value
	index map[string]int
}

// NewDict creates an empty dict.
func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

func (*Dict) Kind() Kind { return KindDict }
func (*Dict) isValue()   {}

// Set inserts or replaces the value for key. Replacing keeps the original
// key object and its position.
func (d *Dict) Set(key, val Value) error {
	h, err := HashKey(key)
	if err != nil {
		return err
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[h]; ok {
		d.vals[i] = val
		return nil
	}
	d.index[h] = len(d.keys)
	d.keys = append(d.keys, key)
	d.vals = append(d.vals, val)
	return nil
}

// Get returns the value stored under key.
func (d *Dict) Get(key Value) (Value, bool) {
	h, err := HashKey(key)
	if err != nil {
		return nil, false
	}
	i, ok := d.index[h]
	if !ok {
		return nil, false
	}
	return d.vals[i], true
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value {
	return d.keys
}

// Values returns the values in insertion order.
func (d *Dict) Values() []Value {
	return d.vals
}

// Each calls fn for every entry in insertion order until fn returns false.
func (d *Dict) Each(fn func(key, val Value) bool) {
	for i, k := range d.keys {
		if !fn(k, d.vals[i]) {
			return
		}
	}
}

// members is the shared storage of Set and FrozenSet.
type members struct {
	items []Value
	index map[string]struct{}
}

func (m *members) add(v Value) error {
	h, err := HashKey(v)
	if err != nil {
		return err
	}
	if m.index == nil {
		m.index = make(map[string]struct{})
	}
	if _, ok := m.index[h]; ok {
		return nil
	}
	m.index[h] = struct{}{}
	m.items = append(m.items, v)
	return nil
}

func (m *members) contains(v Value) bool {
	h, err := HashKey(v)
	if err != nil {
		return false
	}
	_, ok := m.index[h]
	return ok
}

// Set is a mutable set. Members are kept in insertion order.
type Set struct {
	members
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{}
}

func (*Set) Kind() Kind { return KindSet }
func (*Set) isValue()   {}

// Add inserts v unless an equal member is present.
func (s *Set) Add(v Value) error { return s.add(v) }

// Contains reports whether an equal member is present.
func (s *Set) Contains(v Value) bool { return s.contains(v) }

// Len returns the number of members.
func (s *Set) Len() int { return len(s.items) }

// Items returns the members in insertion order.
func (s *Set) Items() []Value { return s.items }

// FrozenSet is a hashable set. It only grows while the tape that produced
// it is being decoded.
type FrozenSet struct {
	members
}

// NewFrozenSet creates an empty frozenset.
func NewFrozenSet() *FrozenSet {
	return &FrozenSet{}
}

func (*FrozenSet) Kind() Kind { return KindFrozenSet }
func (*FrozenSet) isValue()   {}

// Add inserts v unless an equal member is present.
func (s *FrozenSet) Add(v Value) error { return s.add(v) }

// Contains reports whether an equal member is present.
func (s *FrozenSet) Contains(v Value) bool { return s.contains(v) }

// Len returns the number of members.
func (s *FrozenSet) Len() int { return len(s.items) }

// Items returns the members in insertion order.
func (s *FrozenSet) Items() []Value { return s.items }
