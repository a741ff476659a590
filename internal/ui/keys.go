package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	// global
	Quit key.Binding
	Help key.Binding

	// browse
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	New    key.Binding
	Rename key.Binding
	Delete key.Binding

	// paper list
	Capture key.Binding
	Edit    key.Binding

	// editor panel
	Close key.Binding
	Paste key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "left", "h"),
			key.WithHelp("esc", "back"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new domain"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),

		Capture: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add paper"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),

		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.New, k.Delete, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Open, k.Back},
		{k.New, k.Rename, k.Delete},
		{k.Capture, k.Edit},
		{k.Quit},
	}
}

func (k KeyMap) paperHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Capture, k.Edit, k.Delete, k.Back}
}
