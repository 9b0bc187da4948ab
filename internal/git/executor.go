package git

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/aigit/internal/domain"
)

// Executor records commits. It does not consult the safety gate; callers
// decide whether a commit may proceed.
type Executor struct {
	runner *Runner
	logger zerolog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExecutorLogger sets the logger for commit diagnostics.
func WithExecutorLogger(logger zerolog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor using runner for all git calls.
func NewExecutor(runner *Runner, opts ...ExecutorOption) *Executor {
	e := &Executor{
		runner: runner,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Commit runs "git commit -m message" in path.
//
// A blank message is rejected without invoking git. A non-zero exit is
// rejected with git's own stderr (stdout when stderr is empty, as for
// "nothing to commit"). Cancellation before git finishes aborts.
func (e *Executor) Commit(ctx context.Context, path, message string) domain.CommitOutcome {
	if strings.TrimSpace(message) == "" {
		return domain.Rejected(domain.RejectEmptyMessage)
	}
	if ctx.Err() != nil {
		return domain.Aborted()
	}

	res, err := e.runner.exec(ctx, path, "commit", "-m", message, "--cleanup=whitespace")
	if err != nil {
		return e.failedOutcome(ctx, path, res, err)
	}

	summary := firstLine(res.Stdout)
	hash, err := e.runner.RunCommand(context.WithoutCancel(ctx), path, "rev-parse", "--short", "HEAD")
	if err != nil {
		e.logger.Warn().Err(err).Str("path", path).Msg("commit recorded but HEAD hash unavailable")
	}

	e.logger.Info().
		Str("path", path).
		Str("hash", hash).
		Msg("commit created")
	return domain.Committed(hash, summary)
}

func (e *Executor) failedOutcome(ctx context.Context, path string, res commandResult, err error) domain.CommitOutcome {
	if ctx.Err() != nil || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		e.logger.Info().Str("path", path).Msg("commit aborted")
		return domain.Aborted()
	}

	reason := strings.TrimSpace(res.Stderr)
	if reason == "" {
		reason = strings.TrimSpace(res.Stdout)
	}
	if reason == "" {
		reason = err.Error()
	}

	e.logger.Warn().
		Str("path", path).
		Int("exit_code", res.ExitCode).
		Str("reason", reason).
		Msg("commit rejected by git")
	return domain.Rejected(reason)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
