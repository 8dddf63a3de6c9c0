package tui

import (
	"errors"
	"fmt"
	"os"

	"ccs/config/models"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Run when stdin or stderr is not a terminal
var ErrNotTerminal = errors.New("the profile picker requires a terminal")

// Run shows the picker and returns the chosen profile, or nil when the user
// quits. The picker draws on stderr so stdout only carries the commands
// printed afterwards.
func Run(profiles []models.Profile, token string) (*models.Profile, error) {
	if !isTerminal() {
		return nil, ErrNotTerminal
	}

	p := tea.NewProgram(NewModel(profiles, token), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("profile picker failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	if chosen, ok := m.Chosen(); ok {
		return &chosen, nil
	}
	return nil, nil
}

// isTerminal checks that both stdin and stderr are terminals
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
