package git

import "github.com/mrz1836/aigit/internal/errors"

// Sentinels re-exported from internal/errors for convenience.
var (
	// ErrRepository wraps every inspector failure.
	ErrRepository = errors.ErrRepository

	// ErrNotGitRepo is joined with ErrRepository when the path is not a working tree.
	ErrNotGitRepo = errors.ErrNotGitRepo

	// ErrGitNotFound is joined with ErrRepository when the binary is missing.
	ErrGitNotFound = errors.ErrGitNotFound

	// ErrGitOperation marks a git command that exited non-zero.
	ErrGitOperation = errors.ErrGitOperation
)
