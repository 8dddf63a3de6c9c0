// Package shell renders the profile listing and the shell commands that
// export a profile's credentials.
package shell

import (
	"fmt"
	"io"
	"strings"

	"ccs/config/models"
	"ccs/internal/utils"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the colors used for console output
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Command lipgloss.Style
	Active  lipgloss.Style
	Normal  lipgloss.Style
}

// NewStyles builds the output styles for a renderer
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Info:    r.NewStyle().Foreground(lipgloss.Color("86")),
		Success: r.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Command: r.NewStyle().Foreground(lipgloss.Color("86")),
		Active:  r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Normal:  r.NewStyle(),
	}
}

// Emitter writes styled output. Colors are dropped automatically when the
// writer is not a terminal.
type Emitter struct {
	out    io.Writer
	styles Styles
}

// NewEmitter creates an Emitter writing to w
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{
		out:    w,
		styles: NewStyles(lipgloss.NewRenderer(w)),
	}
}

// Info prints msg in cyan
func (e *Emitter) Info(msg string) { e.println(e.styles.Info, msg) }

// Success prints msg in green
func (e *Emitter) Success(msg string) { e.println(e.styles.Success, msg) }

// Warning prints msg in yellow, used for hints and notes
func (e *Emitter) Warning(msg string) { e.println(e.styles.Warning, msg) }

// Error prints msg in bold red
func (e *Emitter) Error(msg string) { e.println(e.styles.Error, msg) }

func (e *Emitter) println(style lipgloss.Style, msg string) {
	fmt.Fprintln(e.out, style.Render(msg))
}

const (
	// marker, alias, name, base URL, masked key
	rowFormat      = "%s %-10s %-20s %-30s %s"
	separatorWidth = 70
)

// ListProfiles prints every profile in stored order as a fixed-width table
// with masked keys. The profile whose key matches token is highlighted and
// marked with '*'.
func (e *Emitter) ListProfiles(profiles []models.Profile, token string) error {
	var b strings.Builder
	line := func(style lipgloss.Style, text string) {
		b.WriteString(style.Render(text))
		b.WriteString("\n")
	}

	if len(profiles) == 0 {
		line(e.styles.Warning, "No profiles configured")
		line(e.styles.Warning, "Hint: add entries to the \"services\" list or run 'ccs --init'")
		return e.flush(b.String())
	}

	line(e.styles.Info, "Available Claude profiles:")
	line(e.styles.Info, fmt.Sprintf(rowFormat, " ", "Alias", "Name", "Base URL", "API Key"))
	line(e.styles.Info, "  "+strings.Repeat("-", separatorWidth))

	anyActive := false
	for _, p := range profiles {
		marker, style := " ", e.styles.Normal
		if IsActive(p, token) {
			marker, style = "*", e.styles.Active
			anyActive = true
		}
		line(style, fmt.Sprintf(rowFormat, marker, p.Alias, p.Name, p.BaseURL, utils.MaskAPIKey(p.APIKey)))
	}

	if anyActive {
		b.WriteString("\n")
		line(e.styles.Success, "* marks the profile whose key matches "+models.EnvAuthToken)
	}

	return e.flush(b.String())
}

// EmitActivation prints the commands that export p's credentials in the
// shells of plat, followed by the values in clear text. The key is shown
// unmasked because the user has explicitly selected this profile.
func (e *Emitter) EmitActivation(p models.Profile, plat Platform) error {
	var b strings.Builder
	line := func(style lipgloss.Style, text string) {
		b.WriteString(style.Render(text))
		b.WriteString("\n")
	}

	key, baseURL := p.APIKey, p.BaseURL

	switch plat.Family {
	case Windows:
		line(e.styles.Success, "To set the variables in the current command prompt session, run:")
		line(e.styles.Success, "cmd:")
		line(e.styles.Command, fmt.Sprintf("set %s=%s && set %s=%s && set %s=%s",
			models.EnvAuthToken, key, models.EnvAPIKey, key, models.EnvBaseURL, baseURL))
		line(e.styles.Success, "PowerShell:")
		line(e.styles.Command, fmt.Sprintf(`$env:%s="%s"; $env:%s="%s"; $env:%s="%s"`,
			models.EnvAuthToken, key, models.EnvAPIKey, key, models.EnvBaseURL, baseURL))
		line(e.styles.Warning, "Note: these settings only apply to the current window")
		line(e.styles.Warning, "To set them permanently, run:")
		line(e.styles.Command, fmt.Sprintf(`setx %s "%s" && setx %s "%s" && setx %s "%s"`,
			models.EnvAuthToken, key, models.EnvAPIKey, key, models.EnvBaseURL, baseURL))

	case Unix:
		line(e.styles.Success, "To set the variables in the current shell session, run:")
		line(e.styles.Command, fmt.Sprintf("export %s=%s && export %s=%s && export %s=%s",
			models.EnvAuthToken, singleQuote(key), models.EnvAPIKey, singleQuote(key), models.EnvBaseURL, singleQuote(baseURL)))

	default:
		line(e.styles.Warning, fmt.Sprintf("Warning: unsupported operating system %s", plat.Name))
		line(e.styles.Success, "Set the following environment variables manually:")
		line(e.styles.Command, fmt.Sprintf("%s = %s", models.EnvAuthToken, key))
		line(e.styles.Command, fmt.Sprintf("%s = %s", models.EnvAPIKey, key))
		line(e.styles.Command, fmt.Sprintf("%s = %s", models.EnvBaseURL, baseURL))
	}

	line(e.styles.Success, "Environment variable values:")
	line(e.styles.Success, fmt.Sprintf("%s = %s", models.EnvAuthToken, key))
	line(e.styles.Success, fmt.Sprintf("%s = %s", models.EnvAPIKey, key))
	line(e.styles.Success, fmt.Sprintf("%s = %s", models.EnvBaseURL, baseURL))

	return e.flush(b.String())
}

func (e *Emitter) flush(s string) error {
	if _, err := io.WriteString(e.out, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// singleQuote wraps s in single quotes for POSIX shells. Embedded single
// quotes become '\''.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
