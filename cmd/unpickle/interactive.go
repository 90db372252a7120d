package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/pickle/render"
	"github.com/wippyai/pickle/unpickler"
	"github.com/wippyai/pickle/wire"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type pane int

const (
	paneValue pane = iota
	paneDisasm
)

var paneNames = [...]string{paneValue: "value", paneDisasm: "disassembly"}

type keyMap struct {
	Quit key.Binding
	Next key.Binding
	Top  key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Next: key.NewBinding(key.WithKeys("tab", "shift+tab")),
	Top:  key.NewBinding(key.WithKeys("g", "home")),
}

type interactiveModel struct {
	opts     unpickler.Options
	filename string
	data     []byte
	panes    [2]string
	viewport viewport.Model
	active   pane
	ready    bool
	loaded   bool
}

type decodedMsg struct {
	panes [2]string
}

func newInteractiveModel(filename string, data []byte, opts unpickler.Options) *interactiveModel {
	return &interactiveModel{filename: filename, data: data, opts: opts}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.decode
}

// decode renders both panes off the UI loop.
func (m *interactiveModel) decode() tea.Msg {
	st := render.NewStyle(nil)
	var msg decodedMsg

	v, err := unpickler.New(m.opts).Loads(m.data)
	if err != nil {
		msg.panes[paneValue] = errorStyle.Render(fmt.Sprintf("Error: %v", err))
	} else {
		msg.panes[paneValue] = render.Text(v, st)
	}

	instrs, err := wire.Disassemble(m.data)
	dis := render.Disassembly(instrs, st)
	if err != nil {
		dis += errorStyle.Render(fmt.Sprintf("Error: %v", err))
	}
	msg.panes[paneDisasm] = dis
	return msg
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.active = (m.active + 1) % pane(len(m.panes))
			m.viewport.SetContent(m.panes[m.active])
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, keys.Top):
			m.viewport.GotoTop()
			return m, nil
		}

	case decodedMsg:
		m.panes = msg.panes
		m.loaded = true
		m.viewport.SetContent(m.panes[m.active])

	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.viewport.SetContent(m.panes[m.active])
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.header() + "\n" + m.viewport.View() + "\n" + m.footer()
}

func (m *interactiveModel) header() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("unpickle " + m.filename))
	b.WriteString(" ")
	for i, name := range paneNames {
		if pane(i) == m.active {
			b.WriteString(selectedStyle.Render(name))
		} else {
			b.WriteString(tabStyle.Render(name))
		}
	}
	return b.String()
}

func (m *interactiveModel) footer() string {
	status := "decoding..."
	if m.loaded {
		status = fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)
	}
	return helpStyle.Render(status + " • tab switch pane • ↑/↓ scroll • g top • q quit")
}

func runInteractive(filename string, data []byte, opts unpickler.Options) error {
	p := tea.NewProgram(newInteractiveModel(filename, data, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
