package git

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/aigit/internal/ctxutil"
	"github.com/mrz1836/aigit/internal/domain"
)

// Inspector answers read-only questions about a working tree. Every call takes
// the repository path and re-validates it; nothing is cached between calls.
type Inspector struct {
	runner *Runner
	logger zerolog.Logger
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithInspectorLogger sets the logger for debug output.
func WithInspectorLogger(logger zerolog.Logger) InspectorOption {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// NewInspector creates an Inspector using runner for all git calls.
func NewInspector(runner *Runner, opts ...InspectorOption) *Inspector {
	i := &Inspector{
		runner: runner,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IsRepository reports whether path lies inside a git working tree.
// Any failure, including a missing git binary, yields false.
func (i *Inspector) IsRepository(ctx context.Context, path string) bool {
	return i.validate(ctx, path) == nil
}

// ListStatus returns one entry per (path, state) pair in git's porcelain order.
// A clean tree yields an empty, non-nil slice.
func (i *Inspector) ListStatus(ctx context.Context, path string) ([]domain.FileStatusEntry, error) {
	if err := i.validate(ctx, path); err != nil {
		return nil, err
	}

	res, err := i.runner.exec(ctx, path, "status", "--porcelain=v1", "-z", "-uall")
	if err != nil {
		return nil, repositoryError("list status", path, err)
	}

	entries := parsePorcelainZ(res.Stdout)
	i.logger.Debug().
		Str("path", path).
		Int("entries", len(entries)).
		Msg("listed repository status")
	return entries, nil
}

// StagedDiff returns the staged changes exactly as git prints them. Nothing
// staged gives an empty payload and no error.
func (i *Inspector) StagedDiff(ctx context.Context, path string) (domain.DiffPayload, error) {
	if err := i.validate(ctx, path); err != nil {
		return domain.DiffPayload{}, err
	}

	res, err := i.runner.exec(ctx, path, "diff", "--cached", "--no-color", "--no-ext-diff")
	if err != nil {
		return domain.DiffPayload{}, repositoryError("read staged diff", path, err)
	}

	diff := domain.NewDiffPayload(res.Stdout)
	i.logger.Debug().
		Str("path", path).
		Int("byte_size", diff.ByteSize).
		Msg("read staged diff")
	return diff, nil
}

// CurrentBranch returns the checked-out branch name, which may be unborn.
// A detached HEAD is reported as "HEAD".
func (i *Inspector) CurrentBranch(ctx context.Context, path string) (string, error) {
	if err := i.validate(ctx, path); err != nil {
		return "", err
	}

	branch, err := i.runner.RunCommand(ctx, path, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		if stderrors.Is(err, ErrGitOperation) {
			return "HEAD", nil
		}
		return "", repositoryError("read current branch", path, err)
	}
	return branch, nil
}

// historyFieldSep separates the fields of one log record.
const historyFieldSep = "\x1f"

// RecentCommits returns up to limit commits reachable from HEAD, newest
// first. A repository without commits yields an empty slice.
func (i *Inspector) RecentCommits(ctx context.Context, path string, limit int) ([]domain.CommitSummary, error) {
	if err := i.validate(ctx, path); err != nil {
		return nil, err
	}
	if _, err := i.runner.RunCommand(ctx, path, "rev-parse", "--verify", "-q", "HEAD"); err != nil {
		if stderrors.Is(err, ErrGitOperation) {
			return []domain.CommitSummary{}, nil
		}
		return nil, repositoryError("read history", path, err)
	}

	out, err := i.runner.RunCommand(ctx, path, "log",
		fmt.Sprintf("--max-count=%d", max(limit, 1)),
		"--date=short",
		"--format=%h"+historyFieldSep+"%an"+historyFieldSep+"%ad"+historyFieldSep+"%s",
	)
	if err != nil {
		return nil, repositoryError("read history", path, err)
	}

	commits := parseHistory(out)
	i.logger.Debug().
		Str("path", path).
		Int("commits", len(commits)).
		Msg("read commit history")
	return commits, nil
}

func parseHistory(out string) []domain.CommitSummary {
	commits := []domain.CommitSummary{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.SplitN(line, historyFieldSep, 4)
		if len(fields) != 4 {
			continue
		}
		commits = append(commits, domain.CommitSummary{
			Hash:    fields[0],
			Author:  fields[1],
			Date:    fields[2],
			Subject: fields[3],
		})
	}
	return commits
}

// validate confirms path is an existing directory inside a working tree.
func (i *Inspector) validate(ctx context.Context, path string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w: %w", path, ErrRepository, ErrNotGitRepo)
	}

	out, err := i.runner.RunCommand(ctx, path, "rev-parse", "--is-inside-work-tree")
	switch {
	case err == nil && out == "true":
		return nil
	case err == nil, stderrors.Is(err, ErrGitOperation):
		return fmt.Errorf("%s: %w: %w", path, ErrRepository, ErrNotGitRepo)
	default:
		return repositoryError("validate repository", path, err)
	}
}

// repositoryError tags err with ErrRepository unless it is a context error,
// which callers classify themselves.
func repositoryError(op, path string, err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s in %s: %w: %w", op, path, ErrRepository, err)
}

// parsePorcelainZ parses "git status --porcelain=v1 -z" output.
//
// Records are NUL separated as "XY path". Renames and copies carry the
// original path in the following record, which is skipped.
func parsePorcelainZ(out string) []domain.FileStatusEntry {
	entries := make([]domain.FileStatusEntry, 0)
	records := strings.Split(out, "\x00")

	for n := 0; n < len(records); n++ {
		rec := records[n]
		if len(rec) < 4 {
			continue
		}
		x, y, file := rec[0], rec[1], rec[3:]

		if x == 'R' || x == 'C' || y == 'R' || y == 'C' {
			n++
		}

		if x == '?' && y == '?' {
			entries = append(entries, domain.FileStatusEntry{Path: file, State: domain.FileUntracked})
			continue
		}
		if x == '!' {
			continue
		}
		if x != ' ' {
			entries = append(entries, domain.FileStatusEntry{Path: file, State: domain.FileStaged})
		}
		if y != ' ' {
			entries = append(entries, domain.FileStatusEntry{Path: file, State: domain.FileUnstaged})
		}
	}

	return entries
}
