package tui

import (
	"codeberg.org/miketth/softboard/pkg/inputsource"
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"codeberg.org/miketth/softboard/pkg/softboard"
	"codeberg.org/miketth/softboard/pkg/statestore/memory"
	"codeberg.org/miketth/softboard/pkg/textsurface"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"testing"
)

func newTestModel(t *testing.T) (Model, *textsurface.Document) {
	t.Helper()

	layout, err := keyboard.NewLayout()
	require.NoError(t, err)

	doc := textsurface.NewDocument("")
	session := softboard.NewSession(layout, doc, inputsource.NewStatic("English (US)", "German"), memory.NewStateStore(), zap.NewNop().Sugar())

	m, err := New(session, doc)
	require.NoError(t, err)
	return m, doc
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingThroughKeyboard(t *testing.T) {
	m, doc := newTestModel(t)

	m = send(t, m,
		runes("h"),
		runes("i"),
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")},
		tea.KeyMsg{Type: tea.KeyTab},
		runes("Y"),
		tea.KeyMsg{Type: tea.KeyTab},
		runes("o"),
		tea.KeyMsg{Type: tea.KeyBackspace},
	)

	assert.Equal(t, "hi Y", doc.Text())
	assert.NoError(t, m.err)
	assert.Equal(t, keyboard.Lowercase, m.snap.State.Layout)
}

func TestArrowFocusAndEnter(t *testing.T) {
	m, doc := newTestModel(t)

	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.Equal(t, "s", doc.Text())

	// focus is clamped to the shorter bottom row
	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
	)
	assert.Equal(t, 3, m.focusRow)
	assert.Equal(t, 2, m.focusCol)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "s\n", doc.Text())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.status(), "German")
}

func TestShiftRedrawsLabels(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), "q")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Q", m.snap.Rows[0][0].Label)
	assert.Contains(t, m.View(), "uppercase")
}

func TestUnknownRuneShowsError(t *testing.T) {
	m, doc := newTestModel(t)

	m = send(t, m, runes("Q"))
	assert.ErrorIs(t, m.err, softboard.ErrUnknownKey)
	assert.Empty(t, doc.Text())
	assert.Contains(t, m.View(), "unknown key")
}

func TestOrientation(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, keyboard.Landscape, m.snap.State.Orientation)

	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 40})
	assert.Equal(t, keyboard.Portrait, m.snap.State.Orientation)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, keyboard.Landscape, m.snap.State.Orientation)
	assert.Contains(t, m.status(), "row height 52.5")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestKeyFace(t *testing.T) {
	assert.Equal(t, "⇧", keyFace(keyboard.ShiftKey()))
	assert.Equal(t, "Return", keyFace(keyboard.ReturnKey()))
	assert.Equal(t, "a", keyFace(keyboard.Letter("a")))
	assert.NotEmpty(t, keyFace(keyboard.SpaceKey()))
}
