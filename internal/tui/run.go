package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/quire/internal/navigator"
)

// Run shows the browser on the terminal until the navigator exits.
func Run(ctx context.Context, nav *navigator.Navigator, cfg Config) error {
	m := NewModel(ctx, nav, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
