package render

import "github.com/wippyai/pickle/value"

// sharedContainers returns the mutable containers reachable more than once
// from root, numbered from 1 in first-visit order.
func sharedContainers(root value.Value) map[value.Value]int {
	counts := make(map[value.Value]int)
	var order []value.Value
	var walk func(v value.Value)
	walk = func(v value.Value) {
		if v == nil {
			return
		}
		if v.Kind().IsMutable() {
			counts[v]++
			if counts[v] > 1 {
				return
			}
			order = append(order, v)
		}
		for _, child := range children(v) {
			walk(child)
		}
	}
	walk(root)

	shared := make(map[value.Value]int)
	for _, v := range order {
		if counts[v] > 1 {
			shared[v] = len(shared) + 1
		}
	}
	return shared
}

// children lists a container's direct elements; dict keys precede their values.
func children(v value.Value) []value.Value {
	switch c := v.(type) {
	case value.Tuple:
		return c
	case *value.List:
		return c.Items
	case *value.Dict:
		out := make([]value.Value, 0, 2*c.Len())
		c.Each(func(k, val value.Value) bool {
			out = append(out, k, val)
			return true
		})
		return out
	case *value.Set:
		return c.Items()
	case *value.FrozenSet:
		return c.Items()
	}
	return nil
}
