// Package tui provides the interactive profile picker
package tui

import (
	"ccs/config/models"
	"ccs/internal/shell"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the picker state
type Model struct {
	profiles []models.Profile
	token    string // Current ANTHROPIC_AUTH_TOKEN, used to mark the active profile
	cursor   int
	chosen   int // Index of the selected profile, -1 until Enter is pressed
	quitting bool

	keys KeyMap
	help help.Model

	width int
}

// NewModel creates a picker over profiles. The cursor starts on the active
// profile when there is one.
func NewModel(profiles []models.Profile, token string) Model {
	m := Model{
		profiles: profiles,
		token:    token,
		chosen:   -1,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    80,
	}
	for i, p := range profiles {
		if shell.IsActive(p, token) {
			m.cursor = i
			break
		}
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.profiles) > 0 {
				m.chosen = m.cursor
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.profiles)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Top):
			m.cursor = 0

		case key.Matches(msg, m.keys.Bottom):
			if len(m.profiles) > 0 {
				m.cursor = len(m.profiles) - 1
			}
		}
	}

	return m, nil
}

// Chosen returns the profile selected with Enter, if any
func (m Model) Chosen() (models.Profile, bool) {
	if m.chosen < 0 || m.chosen >= len(m.profiles) {
		return models.Profile{}, false
	}
	return m.profiles[m.chosen], true
}
