package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func trimmed(s string) string { return strings.TrimSpace(s) }

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	folders := m.doc.Folders

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(folders)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(folders) {
			f := folders[m.cursor]
			m.navigateFolder(f.ID, f.Name)
		}
	case key.Matches(msg, m.keys.New):
		m.modal = newModal(modalCreateFolder, "New folder", "name", "")
	case key.Matches(msg, m.keys.Rename):
		if m.cursor < len(folders) {
			f := folders[m.cursor]
			d := newModal(modalRenameFolder, "Rename folder", "name", f.Name)
			d.folderID = f.ID
			d.prevName = f.Name
			m.modal = d
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(folders) {
			f := folders[m.cursor]
			d := newConfirmModal(modalDeleteFolder, fmt.Sprintf("Delete folder %q and all its papers?", f.Name))
			d.folderID = f.ID
			m.modal = d
		}
	}
	return m, nil
}

func (m Model) viewHome() string {
	folders := m.doc.Folders
	if len(folders) == 0 {
		return m.styles.Dim.Render("\n  No folders yet. Press n to create one.\n")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, f := range folders {
		label := fmt.Sprintf("%s (%d)", f.Name, len(f.Papers))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("  > " + label))
		} else {
			b.WriteString("    " + label)
		}
		b.WriteString("\n")
	}
	return b.String()
}
