package app

import (
	"errors"

	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/shell"
	"github.com/atomicstack/shell-popup/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// Open is a menu path such as "user:status" opened once the program starts.
	Open     string
	UserName string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model := ui.NewModel(cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, shell.Options{UserName: cfg.UserName}, cfg.Open)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	events.App.Exit(err)
	return err
}
