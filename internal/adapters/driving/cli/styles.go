package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Colour palette for terminal output.
var (
	colourPrimary   = lipgloss.Color("#7C3AED") // Purple
	colourSecondary = lipgloss.Color("#06B6D4") // Cyan
	colourMuted     = lipgloss.Color("#6C7086") // Medium gray
	colourSuccess   = lipgloss.Color("#A6E3A1") // Green
	colourWarning   = lipgloss.Color("#F9E2AF") // Yellow
	colourError     = lipgloss.Color("#F38BA8") // Red
)

// styles holds the lipgloss styles used by command output.
// Colours are dropped automatically when output is not a terminal.
type styles struct {
	title      lipgloss.Style
	identifier lipgloss.Style
	muted      lipgloss.Style
	success    lipgloss.Style
	warning    lipgloss.Style
	err        lipgloss.Style
}

func newStyles() *styles {
	return &styles{
		title:      lipgloss.NewStyle().Foreground(colourPrimary).Bold(true),
		identifier: lipgloss.NewStyle().Foreground(colourSecondary),
		muted:      lipgloss.NewStyle().Foreground(colourMuted),
		success:    lipgloss.NewStyle().Foreground(colourSuccess),
		warning:    lipgloss.NewStyle().Foreground(colourWarning),
		err:        lipgloss.NewStyle().Foreground(colourError).Bold(true),
	}
}
