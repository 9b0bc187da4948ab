// Package git runs the git CLI for the commit-assistance pipeline: reading the
// working tree state and the staged diff, and recording commits.
package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/errors"
)

// waitDelay bounds how long Wait blocks on output pipes after the process
// group has been killed.
const waitDelay = 2 * time.Second

// commandResult is the raw outcome of one git invocation.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner spawns git processes with a configurable executable.
type Runner struct {
	executable string
}

// NewRunner returns a Runner for the given git binary. An empty name means "git".
func NewRunner(executable string) *Runner {
	if strings.TrimSpace(executable) == "" {
		executable = constants.DefaultGitExecutable
	}
	return &Runner{executable: executable}
}

// Executable returns the configured git binary.
func (r *Runner) Executable() string {
	return r.executable
}

// exec runs git with args in workDir and returns stdout untouched.
//
// A non-zero exit is reported in the result together with a wrapped
// ErrGitOperation. A missing binary returns ErrGitNotFound. When ctx ends
// first, ctx.Err() is returned and the process group has been killed.
func (r *Runner) exec(ctx context.Context, workDir string, args ...string) (commandResult, error) {
	if err := ctx.Err(); err != nil {
		return commandResult{}, err
	}

	cmd := exec.CommandContext(ctx, r.executable, args...) //#nosec G204 -- args are constructed internally, executable comes from config
	cmd.Dir = workDir
	cmd.WaitDelay = waitDelay
	configureProcess(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := commandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	if ctx.Err() != nil {
		return res, ctx.Err()
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			return res, fmt.Errorf("git %s failed: %s: %w", args[0], msg, errors.ErrGitOperation)
		}
		return res, fmt.Errorf("git %s failed: %w", args[0], errors.ErrGitOperation)
	}

	if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
		return res, fmt.Errorf("%s: %w", r.executable, errors.ErrGitNotFound)
	}

	return res, fmt.Errorf("git %s: %w", args[0], err)
}

// RunCommand executes a git command in workDir and returns its trimmed output.
// Use it for single-value queries; diffs go through exec to keep every byte.
func (r *Runner) RunCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	res, err := r.exec(ctx, workDir, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Version returns the output of "git --version".
func (r *Runner) Version(ctx context.Context) (string, error) {
	return r.RunCommand(ctx, "", "--version")
}
