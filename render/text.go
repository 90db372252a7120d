package render

import (
	"fmt"
	"strings"

	"github.com/wippyai/pickle/value"
)

const indentUnit = "  "

// Text pretty-prints v with one element per line in Python-like syntax.
//
// A container reachable from more than one place is labelled <#n> where it
// is first printed and appears as <ref #n> everywhere else, which also
// terminates self-references.
func Text(v value.Value, st Style) string {
	p := &textPrinter{
		st:      st,
		shared:  sharedContainers(v),
		printed: make(map[value.Value]bool),
	}
	p.write(v, 0)
	return p.b.String()
}

type textPrinter struct {
	shared  map[value.Value]int
	printed map[value.Value]bool
	b       strings.Builder
	st      Style
}

func (p *textPrinter) write(v value.Value, depth int) {
	if v == nil {
		p.b.WriteString(p.st.Keyword.Render("<nil>"))
		return
	}
	if n, ok := p.lookup(v); ok {
		if p.printed[v] {
			p.b.WriteString(p.st.Ref.Render(fmt.Sprintf("<ref #%d>", n)))
			return
		}
		p.printed[v] = true
		p.b.WriteString(p.st.Ref.Render(fmt.Sprintf("<#%d>", n)))
		p.b.WriteByte(' ')
	}

	switch c := v.(type) {
	case value.Tuple:
		p.seq("(", ")", "()", c, depth)
	case *value.List:
		p.seq("[", "]", "[]", c.Items, depth)
	case *value.Set:
		p.seq("{", "}", "set()", c.Items(), depth)
	case *value.FrozenSet:
		p.seq("frozenset({", "})", "frozenset()", c.Items(), depth)
	case *value.Dict:
		p.dict(c, depth)
	default:
		p.b.WriteString(p.st.scalar(v))
	}
}

// lookup only consults the table for pointer containers; slice-backed
// values cannot be map keys.
func (p *textPrinter) lookup(v value.Value) (int, bool) {
	if !v.Kind().IsMutable() {
		return 0, false
	}
	n, ok := p.shared[v]
	return n, ok
}

func (p *textPrinter) seq(open, close, empty string, items []value.Value, depth int) {
	if len(items) == 0 {
		p.b.WriteString(p.st.Punct.Render(empty))
		return
	}
	p.b.WriteString(p.st.Punct.Render(open))
	for _, it := range items {
		p.newline(depth + 1)
		p.write(it, depth+1)
		p.b.WriteString(p.st.Punct.Render(","))
	}
	p.newline(depth)
	p.b.WriteString(p.st.Punct.Render(close))
}

func (p *textPrinter) dict(d *value.Dict, depth int) {
	if d.Len() == 0 {
		p.b.WriteString(p.st.Punct.Render("{}"))
		return
	}
	p.b.WriteString(p.st.Punct.Render("{"))
	d.Each(func(k, v value.Value) bool {
		p.newline(depth + 1)
		p.key(k)
		p.b.WriteString(p.st.Punct.Render(": "))
		p.write(v, depth+1)
		p.b.WriteString(p.st.Punct.Render(","))
		return true
	})
	p.newline(depth)
	p.b.WriteString(p.st.Punct.Render("}"))
}

// key prints a dict key on one line. A frozenset key can also appear
// elsewhere in the tree, so it takes part in reference labelling.
func (p *textPrinter) key(k value.Value) {
	if n, ok := p.lookup(k); ok {
		if p.printed[k] {
			p.b.WriteString(p.st.Ref.Render(fmt.Sprintf("<ref #%d>", n)))
			return
		}
		p.printed[k] = true
		p.b.WriteString(p.st.Ref.Render(fmt.Sprintf("<#%d>", n)))
		p.b.WriteByte(' ')
	}

	switch c := k.(type) {
	case value.Tuple:
		p.b.WriteString(p.st.Punct.Render("("))
		p.keyItems(c)
		if len(c) == 1 {
			p.b.WriteString(p.st.Punct.Render(","))
		}
		p.b.WriteString(p.st.Punct.Render(")"))
	case *value.FrozenSet:
		if c.Len() == 0 {
			p.b.WriteString(p.st.Punct.Render("frozenset()"))
			return
		}
		p.b.WriteString(p.st.Punct.Render("frozenset({"))
		p.keyItems(c.Items())
		p.b.WriteString(p.st.Punct.Render("})"))
	default:
		p.b.WriteString(p.st.scalar(k))
	}
}

func (p *textPrinter) keyItems(items []value.Value) {
	for i, it := range items {
		if i > 0 {
			p.b.WriteString(p.st.Punct.Render(", "))
		}
		p.key(it)
	}
}

func (p *textPrinter) newline(depth int) {
	p.b.WriteByte('\n')
	p.b.WriteString(strings.Repeat(indentUnit, depth))
}
