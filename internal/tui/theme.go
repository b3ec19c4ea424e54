package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of the browser.
type Theme struct {
	TitleStyle     lipgloss.Style
	BorderStyle    lipgloss.Style
	NoteStyle      lipgloss.Style
	FolderStyle    lipgloss.Style
	SelectedStyle  lipgloss.Style
	TagStyle       lipgloss.Style
	EmptyStyle     lipgloss.Style
	StatusBarStyle lipgloss.Style
	ErrorStyle     lipgloss.Style
	PromptStyle    lipgloss.Style
	HelpStyle      lipgloss.Style
}

// DefaultTheme returns the default styles.
func DefaultTheme() *Theme {
	accent := lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#A29BFE"}
	muted := lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}

	return &Theme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		NoteStyle:   lipgloss.NewStyle(),
		FolderStyle: lipgloss.NewStyle().Foreground(accent),
		SelectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent),
		TagStyle:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		EmptyStyle: lipgloss.NewStyle().Foreground(muted),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#343433", Dark: "#C1C6B2"}).
			Background(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#353533"}).
			Padding(0, 1),
		ErrorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true),
		PromptStyle: lipgloss.NewStyle().Foreground(accent).Padding(0, 1),
		HelpStyle:   lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
	}
}
