package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/mrz1836/aigit/internal/testutil"
	"github.com/mrz1836/aigit/internal/tui"
)

// isolateCLI points HOME, AIGIT_HOME and the working directory at temp dirs
// and clears the environment variables that would leak into config loading.
func isolateCLI(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envHome, filepath.Join(home, ".aigit"))
	for _, key := range []string{
		"AI_MOCK_MODE", "GIT_EXECUTABLE",
		"AIGIT_OUTPUT", "AIGIT_AI_MOCK_MODE", "AIGIT_AI_HOST", "AIGIT_AI_MODEL",
		"AIGIT_AI_TIMEOUT", "AIGIT_SAFETY_THRESHOLD_BYTES", "AIGIT_GIT_EXECUTABLE",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	t.Cleanup(CloseLogFile)
}

// runCLI executes the root command with args and returns everything written
// to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newRepo(t *testing.T) string {
	t.Helper()
	return testutil.NewRepo(t)
}

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	return testutil.Git(t, dir, args...)
}

func stageFile(t *testing.T, repo, name, content string) {
	t.Helper()
	testutil.StageFile(t, repo, name, content)
}

func closedPortURL(t *testing.T) string {
	t.Helper()
	return testutil.ClosedPortURL(t)
}

// stubConfirm replaces the large-commit prompt and counts its calls.
func stubConfirm(t *testing.T, answer bool, err error) *int {
	t.Helper()

	calls := 0
	orig := confirmLargeCommit
	confirmLargeCommit = func(string, string, bool) (bool, error) {
		calls++
		return answer, err
	}
	t.Cleanup(func() { confirmLargeCommit = orig })
	return &calls
}

// stubSelect replaces the suggestion picker and records the offered labels.
func stubSelect(t *testing.T, choice int, err error) *[]string {
	t.Helper()

	var labels []string
	orig := chooseSuggestion
	chooseSuggestion = func(_ string, options []tui.Option) (int, error) {
		for _, o := range options {
			labels = append(labels, o.Label)
		}
		return choice, err
	}
	t.Cleanup(func() { chooseSuggestion = orig })
	return &labels
}
