// Package tui provides terminal output for aigit.
//
// Colors use lipgloss AdaptiveColor so they read on light and dark
// terminals. Every status is shown with icon, color and text, so output
// stays legible with NO_COLOR set.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/domain"
)

//nolint:gochecknoglobals // package-level palette
var (
	// ColorPrimary is blue, used for active states and headings.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting.
	StyleBold = lipgloss.NewStyle().Bold(true)
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Header  lipgloss.Style
}

// NewOutputStyles creates the output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	}
}

// CheckNoColor switches lipgloss to plain ASCII when colors are unwanted.
// Call it at the start of commands that print styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns false when NO_COLOR is set (to any value,
// see https://no-color.org/) or TERM=dumb.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// TaskStatusIcon returns the icon for a task status.
func TaskStatusIcon(status constants.TaskStatus) string {
	switch status {
	case constants.TaskStatusIdle:
		return "○"
	case constants.TaskStatusRunning:
		return "●"
	case constants.TaskStatusCompleted:
		return "✓"
	case constants.TaskStatusFailed:
		return "✗"
	case constants.TaskStatusCancelled:
		return "⊘"
	}
	return "?"
}

// FileStateLabel returns the short label for a file state.
func FileStateLabel(state domain.FileState) string {
	switch state {
	case domain.FileStaged:
		return "staged"
	case domain.FileUnstaged:
		return "modified"
	case domain.FileUntracked:
		return "untracked"
	}
	return string(state)
}
