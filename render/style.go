package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/pickle/value"
)

// Style holds the lipgloss styles applied to each token class.
type Style struct {
	Keyword lipgloss.Style // None, True, False
	Number  lipgloss.Style
	Str     lipgloss.Style
	Bytes   lipgloss.Style
	Punct   lipgloss.Style
	Ref     lipgloss.Style // shared-container labels
	Offset  lipgloss.Style
	Opcode  lipgloss.Style
	Arg     lipgloss.Style
}

// NewStyle builds the default palette on r. A nil renderer uses lipgloss's
// default renderer, which detects the terminal's color profile.
func NewStyle(r *lipgloss.Renderer) Style {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Style{
		Keyword: r.NewStyle().Foreground(lipgloss.Color("#C678DD")),
		Number:  r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Str:     r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		Bytes:   r.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
		Punct:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
		Ref:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Offset:  r.NewStyle().Foreground(lipgloss.Color("#666666")),
		Opcode:  r.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		Arg:     r.NewStyle().Foreground(lipgloss.Color("#90EE90")),
	}
}

// PlainStyle renders every token unstyled.
func PlainStyle() Style {
	s := lipgloss.NewStyle()
	return Style{Keyword: s, Number: s, Str: s, Bytes: s, Punct: s, Ref: s, Offset: s, Opcode: s, Arg: s}
}

// scalar renders a non-container value with the style for its class.
func (st Style) scalar(v value.Value) string {
	switch v.Kind() {
	case value.KindNone, value.KindBool:
		return st.Keyword.Render(value.Repr(v))
	case value.KindInt, value.KindLong, value.KindFloat:
		return st.Number.Render(value.Repr(v))
	case value.KindStr:
		return st.Str.Render(value.Repr(v))
	case value.KindBytes, value.KindByteArray:
		return st.Bytes.Render(value.Repr(v))
	}
	return value.Repr(v)
}
