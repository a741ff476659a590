package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"synapse/internal/config"
)

// Styles holds the lipgloss styles the panel is rendered with, built once
// from the color config at startup.
type Styles struct {
	Title    lipgloss.Style
	Status   lipgloss.Style
	Border   lipgloss.Style
	Selected lipgloss.Style
	Accent   lipgloss.Style
	Toast    lipgloss.Style
	Dim      lipgloss.Style
}

func ansi(n int) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("%d", n))
}

// NewStyles builds the style set from configured ANSI color indexes.
func NewStyles(c config.ColorConfig) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Background(ansi(c.TitleBg)).
			Foreground(ansi(c.TitleFg)).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(ansi(c.StatusBg)).
			Foreground(ansi(c.StatusFg)),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ansi(c.Border)),
		Selected: lipgloss.NewStyle().
			Foreground(ansi(c.SelectedFg)).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(ansi(c.AccentFg)),
		Toast: lipgloss.NewStyle().
			Background(ansi(c.ToastBg)).
			Foreground(ansi(c.ToastFg)).
			Padding(0, 1),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}
