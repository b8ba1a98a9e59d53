package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/pocket/internal/app"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, ctrl *app.Controller, opts ...Option) error {
	if ctrl == nil {
		return errors.New("controller is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newModel(ctx, ctrl, cfg)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
