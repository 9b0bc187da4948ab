// Package testutil provides shared test helpers for building throwaway git
// repositories and unreachable endpoints.
package testutil

import (
	"context"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test identity configured on every repository created by NewRepo.
const (
	TestUserEmail = "test@aigit.local"
	TestUserName  = "aigit Test"
)

// NewRepo initializes an empty repository on branch main with a configured
// identity and commit signing disabled.
func NewRepo(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	Git(t, dir, "init", "-q")
	Git(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	Git(t, dir, "config", "user.email", TestUserEmail)
	Git(t, dir, "config", "user.name", TestUserName)
	Git(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

// Git runs git in dir and fails the test on error. The combined output is returned.
func Git(t testing.TB, dir string, args ...string) string {
	t.Helper()

	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

// WriteFile writes content to name inside repo, creating parent directories.
func WriteFile(t testing.TB, repo, name, content string) {
	t.Helper()

	path := filepath.Join(repo, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// StageFile writes content to name inside repo and stages it.
func StageFile(t testing.TB, repo, name, content string) {
	t.Helper()

	WriteFile(t, repo, name, content)
	Git(t, repo, "add", name)
}

// CommitAll stages everything in repo and commits it with message.
func CommitAll(t testing.TB, repo, message string) {
	t.Helper()

	Git(t, repo, "add", "-A")
	Git(t, repo, "commit", "-q", "-m", message)
}

// ClosedPortURL returns an http base URL nothing is listening on.
func ClosedPortURL(t testing.TB) string {
	t.Helper()

	var lc net.ListenConfig
	l, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr
}
