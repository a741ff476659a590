// Package ui is the terminal side panel: the application shell routing
// between the folder grid and the paper list, plus the slide-over note
// editor, modal dialogs and toast notifications.
package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/rs/zerolog"

	"synapse/internal/config"
	"synapse/internal/store"
	"synapse/internal/tabs"
)

const (
	autosaveDelay = 3 * time.Second
	toastDuration = 2 * time.Second
)

// route says which view fills the panel.
type route int

const (
	routeHome   route = iota // folder grid
	routeFolder              // paper list for one folder
)

type (
	toastExpireMsg struct{ seq int }
	autosaveMsg    struct{ seq int }
)

// Model is the application shell. All view state is explicit: the route,
// the open modal and the open editor session are values owned here, not
// package-level fields.
type Model struct {
	store   *store.Store
	querier tabs.Querier
	log     zerolog.Logger

	// readClipboard is swapped out in tests.
	readClipboard func() (string, error)

	width  int
	height int

	route      route
	folderID   string
	folderName string
	cursor     int

	// snapshots reloaded from the store on every transition
	doc      store.Document
	folder   store.Folder
	folderOK bool

	modal   *modal
	session *editorSession

	toastText string
	toastSeq  int

	keys     KeyMap
	help     help.Model
	showHelp bool
	styles   Styles
}

// New builds the shell over an initialized store.
func New(s *store.Store, q tabs.Querier, log zerolog.Logger, colors config.ColorConfig) Model {
	h := help.New()
	m := Model{
		store:         s,
		querier:       q,
		log:           log,
		readClipboard: clipboard.ReadAll,
		keys:          DefaultKeyMap(),
		help:          h,
		styles:        NewStyles(colors),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case toastExpireMsg:
		if msg.seq == m.toastSeq {
			m.toastText = ""
		}
		return m, nil

	case autosaveMsg:
		return m.onAutosave(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.session != nil {
				// flush the open note before the program dies
				next, _ := m.closeEditor()
				return next, tea.Quit
			}
			return m, tea.Quit
		}
		if m.session != nil {
			return m.updateEditor(msg)
		}
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	switch m.route {
	case routeHome:
		return m.updateHome(msg)
	case routeFolder:
		return m.updateFolderView(msg)
	}
	return m, nil
}

// ---------- navigation ----------

// navigateHome returns the shell to the folder grid.
func (m *Model) navigateHome() {
	m.route = routeHome
	m.folderID = ""
	m.folderName = ""
	m.cursor = 0
	m.refresh()
}

// navigateFolder scopes the shell to one folder's paper list.
func (m *Model) navigateFolder(id, name string) {
	m.route = routeFolder
	m.folderID = id
	m.folderName = name
	m.cursor = 0
	m.refresh()
}

// refresh reloads the current view's data from the store. The panel is
// rebuilt from current state on every transition.
func (m *Model) refresh() {
	switch m.route {
	case routeHome:
		doc, err := m.store.Load()
		if err != nil {
			m.log.Error().Err(err).Msg("load document")
			return
		}
		m.doc = doc
		if m.cursor >= len(doc.Folders) {
			m.cursor = 0
		}
	case routeFolder:
		f, ok, err := m.store.GetFolder(m.folderID)
		if err != nil {
			m.log.Error().Err(err).Str("folder", m.folderID).Msg("load folder")
			return
		}
		m.folder = f
		m.folderOK = ok
		if ok {
			m.folderName = f.Name
		}
		if m.cursor >= len(f.Papers) {
			m.cursor = 0
		}
	}
}

// ---------- toast ----------

// showToast displays a transient notification for the fixed duration.
func (m *Model) showToast(text string) tea.Cmd {
	m.toastText = text
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpireMsg{seq: seq}
	})
}

// ---------- layout & rendering ----------

func (m *Model) layout() {
	m.help.Width = m.width
	if m.session != nil {
		m.session.resize(m.width, m.height)
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	if m.session != nil {
		return m.session.view(m)
	}

	var content string
	switch m.route {
	case routeHome:
		content = m.viewHome()
	case routeFolder:
		content = m.viewFolder()
	}

	if m.modal != nil {
		content = m.modal.view(m)
	}

	parts := []string{
		m.titleView(),
		content,
		m.toastView(),
		m.helpView(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// titleView renders the breadcrumb bar.
func (m Model) titleView() string {
	crumb := "Home"
	if m.route == routeFolder {
		crumb = "Home / " + m.folderName
	}
	w := m.width
	if w <= 0 {
		w = 80
	}
	max := w - 2
	if max < 1 {
		max = 1
	}
	bar := truncate.StringWithTail("Synapse / "+crumb, uint(max), "…")
	return m.styles.Title.Width(w).Render(bar)
}

func (m Model) toastView() string {
	if m.toastText == "" {
		return ""
	}
	return m.styles.Toast.Render(m.toastText)
}

func (m Model) helpView() string {
	if m.route == routeFolder {
		return m.help.View(paperKeyMap{KeyMap: m.keys})
	}
	return m.help.View(m.keys)
}

type paperKeyMap struct{ KeyMap }

func (k paperKeyMap) ShortHelp() []key.Binding { return k.KeyMap.paperHelp() }
