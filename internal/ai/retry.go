package ai

import (
	"context"
	"errors"
	"syscall"
	"time"

	"github.com/mrz1836/aigit/internal/constants"
)

// timeSleep is swappable in tests.
//
//nolint:gochecknoglobals // test seam
var timeSleep = time.After

// isTransient reports whether err is worth another attempt. Only refused or
// reset connections qualify; HTTP errors, bad payloads and context errors
// are final.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}

// backoff returns the wait before attempt n+1 (n starts at 1).
func backoff(n int) time.Duration {
	return constants.RetryBackoffBase * time.Duration(n)
}
