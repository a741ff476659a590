package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"synapse/internal/editor"
	"synapse/internal/notes"
	"synapse/internal/store"
)

// editorSession is the open note editor. The shell holds at most one; a
// nil session means the panel shows the browse views.
type editorSession struct {
	folderID string
	paperID  string
	title    string
	ed       editor.Editor

	// saveSeq stamps debounce timers so that a stale tick, fired after
	// a newer edit restarted the countdown, is ignored.
	saveSeq int
}

func (m Model) openEditor(p store.Paper) (tea.Model, tea.Cmd) {
	s := &editorSession{
		folderID: m.folderID,
		paperID:  p.ID,
		title:    notes.TruncateTitle(p.Title),
		ed:       editor.New(),
	}
	s.ed.SetPlaceholder("Start typing your notes...")
	s.ed.SetValue(p.Notes)
	s.ed.CursorToEnd()
	s.ed.Focus()
	s.resize(m.width, m.height)
	m.session = s
	return m, nil
}

func (s *editorSession) resize(width, height int) {
	w := width - 2
	if w < 10 {
		w = 10
	}
	h := height - 4
	if h < 3 {
		h = 3
	}
	s.ed.SetWidth(w)
	s.ed.SetHeight(h)
}

// scheduleAutosave restarts the idle countdown after an edit.
func (s *editorSession) scheduleAutosave() tea.Cmd {
	s.saveSeq++
	seq := s.saveSeq
	return tea.Tick(autosaveDelay, func(time.Time) tea.Msg {
		return autosaveMsg{seq: seq}
	})
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session

	switch {
	case key.Matches(msg, m.keys.Close):
		return m.closeEditor()
	case key.Matches(msg, m.keys.Paste):
		return m.pasteIntoEditor()
	}

	s.ed.Update(msg)
	if s.ed.Dirty() {
		s.ed.ClearDirty()
		return m, s.scheduleAutosave()
	}
	return m, nil
}

// pasteIntoEditor reads the clipboard. An image payload is embedded as an
// inline data URI tag, anything else is inserted as plain text.
func (m Model) pasteIntoEditor() (tea.Model, tea.Cmd) {
	s := m.session
	text, err := m.readClipboard()
	if err != nil {
		m.log.Warn().Err(err).Msg("read clipboard")
		return m, m.showToast("Clipboard unavailable")
	}
	if text == "" {
		return m, nil
	}
	if img, ok := notes.FirstImage(text); ok {
		s.ed.InsertString(img.Markup() + "\n")
	} else {
		s.ed.InsertString(text)
	}
	s.ed.ClearDirty()
	return m, s.scheduleAutosave()
}

func (m Model) onAutosave(msg autosaveMsg) (tea.Model, tea.Cmd) {
	s := m.session
	if s == nil || msg.seq != s.saveSeq {
		return m, nil
	}
	if err := m.store.UpdatePaperNotes(s.folderID, s.paperID, s.ed.Value()); err != nil {
		m.log.Error().Err(err).Str("paper", s.paperID).Msg("autosave notes")
		return m, m.showToast("Could not save notes")
	}
	return m, m.showToast("Saved")
}

// closeEditor flushes the note unconditionally and drops the session. A
// pending debounce timer dies with the session's sequence number.
func (m Model) closeEditor() (tea.Model, tea.Cmd) {
	s := m.session
	s.saveSeq++ // invalidate any in-flight tick
	if err := m.store.UpdatePaperNotes(s.folderID, s.paperID, s.ed.Value()); err != nil {
		m.log.Error().Err(err).Str("paper", s.paperID).Msg("flush notes on close")
	}
	m.session = nil
	m.refresh()
	return m, nil
}

func (s *editorSession) view(m Model) string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	header := m.styles.Title.Width(w).Render("Notes: " + s.title)
	footer := m.styles.Status.Render("esc close • ctrl+v paste")
	parts := []string{header, s.ed.View()}
	if m.toastText != "" {
		parts = append(parts, m.styles.Toast.Render(m.toastText))
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
