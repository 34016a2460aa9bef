// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the mixer
package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/noisegen-go/internal/app"
)

// Run shows the mixer until the user quits or ctx is cancelled. The
// session stays open; the caller closes it.
func Run(ctx context.Context, s *app.Session) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
