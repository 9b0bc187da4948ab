package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	aigiterrors "github.com/mrz1836/aigit/internal/errors"
)

// ErrMenuCanceled is returned when the user aborts a prompt (Esc, Ctrl+C).
var ErrMenuCanceled = aigiterrors.ErrMenuCanceled

// isInteractive is swappable in tests.
//
//nolint:gochecknoglobals // test seam
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // G115: fd fits in int
}

// Theme returns the huh theme matching the output palette.
func Theme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorWarning)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(ColorPrimary)
	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	return t
}

// Confirm asks a yes/no question. Without a terminal on stdin it returns
// ErrConfirmationRequired so scripts never block on a hidden prompt; callers
// pass --yes instead.
func Confirm(title, description string, defaultYes bool) (bool, error) {
	if !isInteractive() {
		return false, aigiterrors.ErrConfirmationRequired
	}

	confirmed := defaultYes
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(Theme())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrMenuCanceled
		}
		return false, fmt.Errorf("confirm prompt failed: %w", err)
	}
	return confirmed, nil
}

// Option is one entry of a Select prompt.
type Option struct {
	Label       string
	Description string
}

// Select asks the user to pick one of options and returns its index. The
// first option is preselected. Without a terminal on stdin it returns
// ErrConfirmationRequired, like Confirm.
func Select(title string, options []Option) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%w: nothing to select", aigiterrors.ErrInvalidArgument)
	}
	if !isInteractive() {
		return 0, aigiterrors.ErrConfirmationRequired
	}

	choice := 0
	opts := make([]huh.Option[int], 0, len(options))
	for i, o := range options {
		label := o.Label
		if o.Description != "" {
			label += "  " + NewOutputStyles().Dim.Render(o.Description)
		}
		opts = append(opts, huh.NewOption(label, i))
	}

	field := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&choice)

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(Theme())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, ErrMenuCanceled
		}
		return 0, fmt.Errorf("select prompt failed: %w", err)
	}
	return choice, nil
}
