package tui

import (
	"fmt"
	"strings"

	"ccs/config/models"
	"ccs/internal/shell"
	"ccs/internal/utils"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	activeSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Background(lipgloss.Color("57")).
				Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// View renders the picker
func (m Model) View() string {
	if m.quitting || m.chosen >= 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Select a Claude profile"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.getEffectiveWidth())))
	b.WriteString("\n\n")

	if len(m.profiles) == 0 {
		b.WriteString(dimStyle.Render("No profiles configured, run 'ccs --init' first"))
		b.WriteString("\n")
	}
	for i, p := range m.profiles {
		b.WriteString(m.renderProfileLine(i, p))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// getEffectiveWidth returns the separator width, capped for readability
func (m Model) getEffectiveWidth() int {
	const maxWidth = 70
	if m.width <= 2 {
		return maxWidth
	}
	if m.width-2 < maxWidth {
		return m.width - 2
	}
	return maxWidth
}

// renderProfileLine renders a single profile line in the list
func (m Model) renderProfileLine(index int, p models.Profile) string {
	isSelected := index == m.cursor
	isActive := shell.IsActive(p, m.token)

	cursor := "  "
	if isSelected {
		cursor = "> "
	}
	activeMarker := "  "
	if isActive {
		activeMarker = "* "
	}

	baseURL := utils.Truncate(p.BaseURL, 30)

	content := fmt.Sprintf("%s%s%-10s %-20s %-30s %s",
		cursor, activeMarker, p.Alias, p.Name, baseURL, utils.MaskAPIKey(p.APIKey))

	switch {
	case isSelected && isActive:
		return activeSelectedStyle.Render(content)
	case isSelected:
		return selectedStyle.Render(content)
	case isActive:
		return activeStyle.Render(content)
	default:
		return normalStyle.Render(content)
	}
}
