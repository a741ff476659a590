package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"synapse/internal/store"
)

// modalKind says what an open modal does on submit.
type modalKind int

const (
	modalCreateFolder modalKind = iota
	modalRenameFolder
	modalDeleteFolder
	modalEditPaper
	modalDeletePaper
)

// modal is a popup dialog over the current view. Create and rename carry
// one text input, edit-paper carries two, the delete kinds are plain
// confirmations.
type modal struct {
	kind  modalKind
	title string

	input  textinput.Model
	second textinput.Model // URL field for modalEditPaper
	focus  int             // which input has focus in two-field modals

	// targets of the operation
	folderID string
	paperID  string
	prevName string
}

func newModal(kind modalKind, title, placeholder, value string) *modal {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	in.CharLimit = 256
	return &modal{kind: kind, title: title, input: in}
}

func newEditPaperModal(folderID string, p store.Paper) *modal {
	d := newModal(modalEditPaper, "Edit paper", "title", p.Title)
	d.folderID = folderID
	d.paperID = p.ID

	url := textinput.New()
	url.Placeholder = "url"
	url.SetValue(p.URL)
	url.CursorEnd()
	url.CharLimit = 2048
	d.second = url
	return d
}

func newConfirmModal(kind modalKind, title string) *modal {
	return &modal{kind: kind, title: title}
}

func (d *modal) hasInput() bool {
	return d.kind == modalCreateFolder || d.kind == modalRenameFolder || d.kind == modalEditPaper
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.modal

	if key.Matches(msg, m.keys.Close) {
		m.modal = nil
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if d.kind == modalEditPaper {
			d.focus = 1 - d.focus
			if d.focus == 0 {
				d.input.Focus()
				d.second.Blur()
			} else {
				d.input.Blur()
				d.second.Focus()
			}
			return m, nil
		}
	case "enter":
		return m.submitModal()
	case "y":
		if !d.hasInput() {
			return m.submitModal()
		}
	case "n":
		if !d.hasInput() {
			m.modal = nil
			return m, nil
		}
	}

	if !d.hasInput() {
		return m, nil
	}

	var cmd tea.Cmd
	if d.kind == modalEditPaper && d.focus == 1 {
		d.second, cmd = d.second.Update(msg)
	} else {
		d.input, cmd = d.input.Update(msg)
	}
	return m, cmd
}

func (m Model) submitModal() (tea.Model, tea.Cmd) {
	d := m.modal

	switch d.kind {
	case modalCreateFolder:
		name := d.input.Value()
		if isBlank(name) {
			// blank names are not submitted, the dialog stays open
			return m, nil
		}
		if _, err := m.store.CreateFolder(name); err != nil {
			m.log.Error().Err(err).Msg("create folder")
			return m, m.showToast("Could not create folder")
		}
		m.modal = nil
		m.refresh()
		return m, nil

	case modalRenameFolder:
		name := d.input.Value()
		if isBlank(name) {
			return m, nil
		}
		if trimmed(name) == d.prevName {
			m.modal = nil
			return m, nil
		}
		if err := m.store.RenameFolder(d.folderID, name); err != nil {
			m.log.Error().Err(err).Str("folder", d.folderID).Msg("rename folder")
			return m, m.showToast("Could not rename folder")
		}
		m.modal = nil
		m.refresh()
		return m, nil

	case modalDeleteFolder:
		if err := m.store.DeleteFolder(d.folderID); err != nil {
			m.log.Error().Err(err).Str("folder", d.folderID).Msg("delete folder")
			return m, m.showToast("Could not delete folder")
		}
		m.modal = nil
		m.refresh()
		return m, nil

	case modalEditPaper:
		title := trimmed(d.input.Value())
		url := trimmed(d.second.Value())
		if title == "" || url == "" {
			// the dialog stays open so the other field's input survives
			return m, m.showToast("Title and URL are required")
		}
		if err := m.store.UpdatePaper(d.folderID, d.paperID, title, url); err != nil {
			m.log.Error().Err(err).Str("paper", d.paperID).Msg("update paper")
			return m, m.showToast("Could not update paper")
		}
		m.modal = nil
		m.refresh()
		return m, nil

	case modalDeletePaper:
		if err := m.store.DeletePaper(d.folderID, d.paperID); err != nil {
			m.log.Error().Err(err).Str("paper", d.paperID).Msg("delete paper")
			return m, m.showToast("Could not delete paper")
		}
		m.modal = nil
		m.refresh()
		return m, nil
	}

	return m, errCmd(errors.New("unknown modal kind"))
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return err }
}

func (d *modal) view(m Model) string {
	var body string
	switch {
	case d.kind == modalEditPaper:
		body = lipgloss.JoinVertical(lipgloss.Left,
			d.title,
			"",
			d.input.View(),
			d.second.View(),
			"",
			m.styles.Dim.Render("enter save • tab switch field • esc cancel"),
		)
	case d.hasInput():
		body = lipgloss.JoinVertical(lipgloss.Left,
			d.title,
			"",
			d.input.View(),
			"",
			m.styles.Dim.Render("enter confirm • esc cancel"),
		)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			d.title,
			"",
			m.styles.Dim.Render("y/enter confirm • n/esc cancel"),
		)
	}
	box := m.styles.Border.Render(body)
	if m.width > 0 && m.height > 4 {
		return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
