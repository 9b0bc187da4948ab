package tui

import (
	"context"
	"encoding/json"
	"io"

	"github.com/mrz1836/aigit/internal/errors"
)

// JSONOutput writes newline-delimited JSON objects.
type JSONOutput struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewJSONOutput creates a JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{
		w:       w,
		encoder: json.NewEncoder(w),
	}
}

type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Success writes {"type":"success",...}.
func (o *JSONOutput) Success(msg string) {
	_ = o.encoder.Encode(jsonMessage{Type: "success", Message: msg}) //nolint:errchkjson // no error return in interface
}

// Error writes {"type":"error",...}. Details carries the raw error text when
// it differs from the friendly message.
func (o *JSONOutput) Error(err error) {
	msg, action := errors.Actionable(err)
	out := jsonError{Type: "error", Message: msg, Suggestion: action}
	if raw := err.Error(); raw != msg {
		out.Details = raw
	}
	_ = o.encoder.Encode(out) //nolint:errchkjson // no error return in interface
}

// Warning writes {"type":"warning",...}.
func (o *JSONOutput) Warning(msg string) {
	_ = o.encoder.Encode(jsonMessage{Type: "warning", Message: msg}) //nolint:errchkjson // no error return in interface
}

// Info writes {"type":"info",...}.
func (o *JSONOutput) Info(msg string) {
	_ = o.encoder.Encode(jsonMessage{Type: "info", Message: msg}) //nolint:errchkjson // no error return in interface
}

// Table writes the rows as an array of objects keyed by header.
func (o *JSONOutput) Table(headers []string, rows [][]string) {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				obj[h] = row[i]
			}
		}
		out = append(out, obj)
	}
	_ = o.encoder.Encode(out) //nolint:errchkjson // no error return in interface
}

// JSON writes v as indented JSON.
func (o *JSONOutput) JSON(v any) error {
	encoder := json.NewEncoder(o.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Spinner returns a no-op spinner; JSON output never animates.
func (o *JSONOutput) Spinner(_ context.Context, _ string) Spinner {
	return &NoopSpinner{}
}
