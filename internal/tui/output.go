package tui

import (
	"context"
	"io"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output is how commands talk to the user. TTY output is styled; JSON output
// emits one object per message so scripts can parse it.
type Output interface {
	Success(msg string)
	Error(err error)
	Warning(msg string)
	Info(msg string)

	// Table prints aligned rows. JSON output encodes them as objects keyed
	// by header.
	Table(headers []string, rows [][]string)

	// JSON encodes v as indented JSON.
	JSON(v any) error

	// Spinner shows progress until Stop is called. Non-TTY output returns
	// a no-op spinner.
	Spinner(ctx context.Context, msg string) Spinner
}

// Spinner is animated progress for long-running work.
type Spinner interface {
	Update(msg string)
	Stop()
}

// NewOutput returns JSON output for format "json" and styled output otherwise.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
