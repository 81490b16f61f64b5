// Package style defines the terminal styling for adhere's output.
// Styles degrade to plain text when stdout is not a TTY or when color
// is disabled in configuration.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Semantic styles used across command output
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"})

	RuleIDStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fd7ff"})

	PatternStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#875f00", Dark: "#ffd75f"})

	UniversalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005f00", Dark: "#87d787"})

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6c6c6c", Dark: "#8a8a8a"})

	ErrorStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#af0000", Dark: "#ff5f5f"})

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#af5f00", Dark: "#ffaf5f"})
)

// ColorEnabled reports whether styled output should be produced:
// requires an interactive terminal with color support and the caller
// not having disabled color.
func ColorEnabled(configColor bool) bool {
	if !configColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
