// Package ctxutil provides context utility functions.
package ctxutil

import (
	"context"
	"errors"
)

// Canceled returns the context error if ctx is done (Canceled or
// DeadlineExceeded), nil otherwise. Used at step boundaries.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}

// Cancellation classifies why a context ended.
type Cancellation int

const (
	// NotDone means the context is still active.
	NotDone Cancellation = iota
	// ByCaller means an ancestor's cancel func was invoked.
	ByCaller
	// ByDeadline means a deadline on ctx or an ancestor expired.
	ByDeadline
)

// Why reports how ctx ended.
func Why(ctx context.Context) Cancellation {
	switch err := ctx.Err(); {
	case err == nil:
		return NotDone
	case errors.Is(err, context.DeadlineExceeded):
		return ByDeadline
	default:
		return ByCaller
	}
}
