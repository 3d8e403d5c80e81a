// Package tui is a terminal host for the on-screen keyboard: it draws the
// session's rows, lets the user pick keys with the arrow keys and shows the
// document being typed.
package tui

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"codeberg.org/miketth/softboard/pkg/softboard"
	"fmt"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"strconv"
	"strings"
)

type Document interface {
	Text() string
}

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Activate key.Binding
	Shift    key.Binding
	Delete   key.Binding
	Space    key.Binding
	Rotate   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press key")),
		Shift:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "shift")),
		Delete:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Space:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "space")),
		Rotate:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "rotate")),
	}
}

type Model struct {
	session *softboard.Session
	doc     Document
	keys    keyMap

	snap     softboard.Snapshot
	focusRow int
	focusCol int
	err      error
}

func New(session *softboard.Session, doc Document) (Model, error) {
	m := Model{
		session: session,
		doc:     doc,
		keys:    newKeyMap(),
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// terminal cells are about twice as tall as wide
		o := keyboard.Landscape
		if msg.Height*2 > msg.Width {
			o = keyboard.Portrait
		}
		m.err = m.session.SetOrientation(o)
		return m.refreshed(), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(0, -1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(0, 1)
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		_, m.err = m.session.PressAt(m.focusRow, m.focusCol)
	case key.Matches(msg, m.keys.Shift):
		_, m.err = m.session.PressNamed("shift")
	case key.Matches(msg, m.keys.Delete):
		_, m.err = m.session.PressNamed("backspace")
	case key.Matches(msg, m.keys.Space):
		_, m.err = m.session.PressNamed("space")
	case key.Matches(msg, m.keys.Rotate):
		next := keyboard.Portrait
		if m.snap.State.Orientation == keyboard.Portrait {
			next = keyboard.Landscape
		}
		m.err = m.session.SetOrientation(next)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		_, m.err = m.session.PressNamed(string(msg.Runes[0]))
	default:
		return m, nil
	}

	return m.refreshed(), nil
}

func (m *Model) moveFocus(dRow, dCol int) {
	rows := m.snap.Rows
	if len(rows) == 0 {
		return
	}
	m.focusRow = clamp(m.focusRow+dRow, 0, len(rows)-1)
	m.focusCol = clamp(m.focusCol+dCol, 0, len(rows[m.focusRow])-1)
}

func (m *Model) refresh() error {
	snap, err := m.session.Snapshot()
	if err != nil {
		return err
	}
	m.snap = snap
	m.moveFocus(0, 0)
	return nil
}

func (m Model) refreshed() Model {
	if err := m.refresh(); err != nil {
		m.err = err
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(documentStyle.Render(m.doc.Text() + "▏"))
	b.WriteString("\n\n")

	for i, row := range m.snap.Rows {
		cells := make([]string, 0, len(row))
		for j, k := range row {
			style := keyStyle
			if i == m.focusRow && j == m.focusCol {
				style = focusedKeyStyle
			}
			cells = append(cells, style.Render(keyFace(k)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status()))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) status() string {
	parts := []string{
		string(m.snap.State.Layout),
		string(m.snap.State.Orientation),
		"row height " + strconv.FormatFloat(m.snap.RowHeight, 'f', -1, 64),
	}
	if src := m.session.InputSource(); src != "" {
		parts = append(parts, src)
	}
	if app := m.session.App(); app != "" {
		parts = append(parts, fmt.Sprintf("app %s", app))
	}
	return strings.Join(parts, " · ")
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
