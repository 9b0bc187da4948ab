package git

import (
	"testing"

	"github.com/mrz1836/aigit/internal/testutil"
)

func setupTestRepo(t *testing.T) string {
	t.Helper()
	return testutil.NewRepo(t)
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	return testutil.Git(t, dir, args...)
}

func createFile(t *testing.T, repoPath, name, content string) {
	t.Helper()
	testutil.WriteFile(t, repoPath, name, content)
}

func commitInitial(t *testing.T, repoPath string) {
	t.Helper()
	testutil.CommitAll(t, repoPath, "initial commit")
}
