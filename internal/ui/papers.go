package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"synapse/internal/notes"
	"synapse/internal/tabs"
)

func (m Model) updateFolderView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.navigateHome()
		return m, nil
	}

	if !m.folderOK {
		return m, nil
	}
	papers := m.folder.Papers

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(papers)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(papers) {
			return m.openEditor(papers[m.cursor])
		}
	case key.Matches(msg, m.keys.Capture):
		return m.capturePaper()
	case key.Matches(msg, m.keys.Edit):
		if m.cursor < len(papers) {
			m.modal = newEditPaperModal(m.folderID, papers[m.cursor])
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(papers) {
			p := papers[m.cursor]
			d := newConfirmModal(modalDeletePaper, fmt.Sprintf("Delete %q?", notes.TruncateTitle(p.Title)))
			d.folderID = m.folderID
			d.paperID = p.ID
			m.modal = d
		}
	}
	return m, nil
}

// capturePaper files the active browser tab into the current folder.
func (m Model) capturePaper() (tea.Model, tea.Cmd) {
	tab, err := m.querier.ActiveTab()
	if err != nil {
		m.log.Warn().Err(err).Msg("query active tab")
		return m, m.showToast("No tab to capture")
	}
	if tabs.IsInternalURL(tab.URL) {
		return m, m.showToast("Cannot capture browser pages")
	}

	// The full title is stored; truncation is display-only.
	title := tab.Title
	if trimmed(title) == "" {
		title = tabs.DefaultTitle
	}
	if _, err := m.store.AddPaper(m.folderID, title, tab.URL); err != nil {
		m.log.Error().Err(err).Str("folder", m.folderID).Msg("add paper")
		return m, m.showToast("Could not save paper")
	}
	m.refresh()
	m.cursor = len(m.folder.Papers) - 1
	return m, m.showToast("Paper added!")
}

func (m Model) viewFolder() string {
	if !m.folderOK {
		return m.styles.Dim.Render("\n  This folder no longer exists. Press esc to go back.\n")
	}
	papers := m.folder.Papers
	if len(papers) == 0 {
		return m.styles.Dim.Render("\n  No papers yet. Press a to capture the active tab.\n")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, p := range papers {
		line := notes.TruncateTitle(p.Title)
		url := m.styles.Dim.Render(notes.TruncateURL(p.URL))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("  > " + line))
		} else {
			b.WriteString("    " + line)
		}
		b.WriteString("\n      " + url + "\n")
	}
	return b.String()
}
