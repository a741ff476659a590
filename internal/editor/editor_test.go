package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyNamed(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestTypingAndValue(t *testing.T) {
	e := New()
	e.Focus()

	e.Update(keyRunes("hello"))
	assert.Equal(t, "hello", e.Value())
	assert.True(t, e.Dirty())

	e.Update(keyNamed(tea.KeyEnter))
	e.Update(keyRunes("world"))
	assert.Equal(t, "hello\nworld", e.Value())
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	e := New()

	e.Update(keyRunes("ignored"))
	assert.Empty(t, e.Value())
	assert.False(t, e.Dirty())
}

func TestSetValueResetsState(t *testing.T) {
	e := New()
	e.Focus()
	e.Update(keyRunes("old"))

	e.SetValue("line one\nline two")
	assert.Equal(t, "line one\nline two", e.Value())
	assert.False(t, e.Dirty())
	assert.Equal(t, 0, e.Cursor())
}

func TestBackspaceJoinsLines(t *testing.T) {
	e := New()
	e.Focus()
	e.SetValue("ab\ncd")
	e.SetCursor(3) // start of "cd"

	e.Update(keyNamed(tea.KeyBackspace))
	assert.Equal(t, "abcd", e.Value())
	assert.Equal(t, 2, e.Cursor())
}

func TestCursorOffsetRoundTrip(t *testing.T) {
	e := New()
	e.SetValue("abc\ndef\nghi")

	for _, pos := range []int{0, 2, 3, 4, 7, 11} {
		e.SetCursor(pos)
		assert.Equal(t, pos, e.Cursor(), "offset %d", pos)
	}

	// Past-the-end clamps to the end.
	e.SetCursor(99)
	assert.Equal(t, 11, e.Cursor())
}

func TestInsertStringAtCursor(t *testing.T) {
	e := New()
	e.Focus()
	e.SetValue("before after")
	e.SetCursor(7) // on the 'a' of "after"

	e.InsertString("MID\n")
	assert.Equal(t, "before MID\nafter", e.Value())
	assert.True(t, e.Dirty())

	// Cursor sits right after the inserted break.
	assert.Equal(t, 11, e.Cursor())
}

func TestInsertStringAppendsAtEnd(t *testing.T) {
	e := New()
	e.SetValue("notes")
	e.CursorToEnd()

	e.InsertString("\ntail")
	assert.Equal(t, "notes\ntail", e.Value())
}

func TestClearDirty(t *testing.T) {
	e := New()
	e.Focus()
	e.Update(keyRunes("x"))
	require.True(t, e.Dirty())

	e.ClearDirty()
	assert.False(t, e.Dirty())

	e.Update(keyNamed(tea.KeyBackspace))
	assert.True(t, e.Dirty())
}

func TestDeleteWordBackward(t *testing.T) {
	e := New()
	e.Focus()
	e.SetValue("one two three")
	e.CursorToEnd()

	e.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, "one two ", e.Value())
}

func TestViewShowsPlaceholderWhenEmpty(t *testing.T) {
	e := New()
	e.SetPlaceholder("Write your notes...")

	assert.Contains(t, e.View(), "Write your notes...")

	e.Focus()
	e.Update(keyRunes("x"))
	assert.NotContains(t, e.View(), "Write your notes...")
}

func TestViewClipsToHeight(t *testing.T) {
	e := New()
	e.SetWidth(10)
	e.SetHeight(2)
	e.SetValue("a\nb\nc\nd")

	view := e.View()
	assert.Contains(t, view, "a")
	assert.Contains(t, view, "b")
	assert.NotContains(t, view, "c")
}
