package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/mrz1836/aigit/internal/errors"
)

// TTYOutput writes styled output using lipgloss.
type TTYOutput struct {
	w       io.Writer
	styles  *OutputStyles
	animate bool
}

// NewTTYOutput creates a TTYOutput. Spinners only animate when w is a terminal.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()

	animate := false
	if f, ok := w.(*os.File); ok {
		animate = term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
	}

	return &TTYOutput{
		w:       w,
		styles:  NewOutputStyles(),
		animate: animate,
	}
}

// Success prints a green ✓ line.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error prints a red ✗ line using the friendly message for known errors,
// followed by a suggested action when one exists.
func (o *TTYOutput) Error(err error) {
	msg, action := errors.Actionable(err)
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+msg))
	if action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+action))
	}
}

// Warning prints a yellow ⚠ line.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints a plain line.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, msg)
}

// Table prints aligned columns with a bold header row.
func (o *TTYOutput) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	parts := make([]string, 0, len(headers))
	for i, h := range headers {
		parts = append(parts, o.styles.Header.Render(padRight(h, widths[i])))
	}
	_, _ = fmt.Fprintln(o.w, strings.TrimRight(strings.Join(parts, "  "), " "))

	for _, row := range rows {
		parts = parts[:0]
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			parts = append(parts, padRight(cell, widths[i]))
		}
		_, _ = fmt.Fprintln(o.w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// JSON prints v as indented JSON.
func (o *TTYOutput) JSON(v any) error {
	encoder := json.NewEncoder(o.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Spinner starts an animated spinner on terminals.
func (o *TTYOutput) Spinner(ctx context.Context, msg string) Spinner {
	if !o.animate {
		return &NoopSpinner{}
	}
	return NewSpinnerAdapter(ctx, o.w, msg)
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
