package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Checkbox lipgloss.Style
	Checked  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Grayscale with a single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	danger := lipgloss.AdaptiveColor{Light: "#A04040", Dark: "#C06060"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Checkbox: lipgloss.NewStyle().
			Foreground(primary),

		Checked: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Label: lipgloss.NewStyle().
			Foreground(subtle).
			Width(10),

		Value: lipgloss.NewStyle().
			Foreground(primary),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(danger),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),
	}
}
