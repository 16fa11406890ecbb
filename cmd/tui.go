package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tmx/internal/shared"
	"github.com/desertthunder/tmx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive generate-review-publish workflow.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}
	if r.engine == nil {
		return fmt.Errorf("%w: mix engine not initialized", shared.ErrServiceUnavailable)
	}

	selection, err := r.selection()
	if err != nil {
		return err
	}
	if selection.Empty() {
		return fmt.Errorf("%w: select at least one seed with 'tmx seeds add'", shared.ErrInvalidInput)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tmx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, selection, cmd.String("name"))
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
