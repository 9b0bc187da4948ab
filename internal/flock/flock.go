// Package flock provides exclusive, non-blocking file locks for unix and windows,
// plus a polling helper that waits for a lock with a timeout.
package flock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrz1836/aigit/internal/errors"
)

const (
	retryInterval = 50 * time.Millisecond
	lockFilePerm  = 0o600
	lockDirPerm   = 0o750
)

// Lock is a held exclusive lock on a file.
type Lock struct {
	file *os.File
}

// Acquire opens (creating if needed) the lock file at path and polls for an
// exclusive lock until it succeeds, ctx is done, or timeout elapses.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), lockDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFilePerm) //#nosec G304 -- path is built by the caller from config dirs
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		if err := Exclusive(f.Fd()); err == nil {
			return &Lock{file: f}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, errors.Wrapf(errors.ErrLockTimeout, "lock %s not acquired after %v", path, timeout)
		}

		timer := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			_ = f.Close()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// Release unlocks and closes the lock file. Safe on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := Unlock(l.file.Fd()); err != nil {
		_ = l.file.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return l.file.Close()
}
