package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program for the journey.
// The program uses the alternate screen buffer for a clean TUI experience.
func NewProgram(j *journey.Journey, opts Options, progOpts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	allOpts = append(allOpts, progOpts...)
	return tea.NewProgram(NewModel(j, opts), allOpts...)
}

// Run creates and runs the TUI, blocking until the user quits.
func Run(j *journey.Journey, opts Options) error {
	if _, err := NewProgram(j, opts).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
