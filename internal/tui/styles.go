package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	destructive = lipgloss.Color("#e53935")
	muted       = lipgloss.Color("#6b7280")
)

// Styles holds the lipgloss styles for every screen.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Frame    lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Label:    lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Item:     lipgloss.NewStyle(),
		Success:  lipgloss.NewStyle().Foreground(accent),
		Error:    lipgloss.NewStyle().Foreground(destructive),
		Help:     lipgloss.NewStyle().Foreground(muted),
		Frame:    lipgloss.NewStyle().Padding(1, 2),
	}
}

// PlainStyles returns styles without color for NO_COLOR terminals.
func PlainStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Label:    lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Bold(true),
		Item:     lipgloss.NewStyle(),
		Success:  lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Help:     lipgloss.NewStyle(),
		Frame:    lipgloss.NewStyle().Padding(1, 2),
	}
}
