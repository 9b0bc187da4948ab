package git

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/testutil"
)

func newTestInspector() *Inspector {
	return NewInspector(NewRunner(""))
}

func TestInspector_IsRepository(t *testing.T) {
	ctx := context.Background()
	inspector := newTestInspector()

	t.Run("true for repository root", func(t *testing.T) {
		repo := setupTestRepo(t)
		assert.True(t, inspector.IsRepository(ctx, repo))
	})

	t.Run("true for subdirectory", func(t *testing.T) {
		repo := setupTestRepo(t)
		createFile(t, repo, "pkg/a.go", "package pkg\n")
		assert.True(t, inspector.IsRepository(ctx, filepath.Join(repo, "pkg")))
	})

	t.Run("false for plain directory", func(t *testing.T) {
		assert.False(t, inspector.IsRepository(ctx, t.TempDir()))
	})

	t.Run("false for missing directory", func(t *testing.T) {
		assert.False(t, inspector.IsRepository(ctx, filepath.Join(t.TempDir(), "nope")))
	})

	t.Run("false when git is missing", func(t *testing.T) {
		repo := setupTestRepo(t)
		broken := NewInspector(NewRunner("git-binary-that-does-not-exist"))
		assert.False(t, broken.IsRepository(ctx, repo))
	})
}

func TestInspector_ListStatus(t *testing.T) {
	ctx := context.Background()
	inspector := newTestInspector()

	t.Run("empty repository gives empty list", func(t *testing.T) {
		repo := setupTestRepo(t)

		entries, err := inspector.ListStatus(ctx, repo)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("classifies staged, unstaged and untracked", func(t *testing.T) {
		repo := setupTestRepo(t)
		createFile(t, repo, "README.md", "# readme\n")
		createFile(t, repo, "main.go", "package main\n")
		commitInitial(t, repo)

		createFile(t, repo, "README.md", "# readme\nmore\n")
		runGit(t, repo, "add", "README.md")
		createFile(t, repo, "README.md", "# readme\nmore\nand more\n")
		createFile(t, repo, "main.go", "package main\n\nfunc main() {}\n")
		createFile(t, repo, "notes/todo.txt", "x\n")

		entries, err := inspector.ListStatus(ctx, repo)
		require.NoError(t, err)

		assert.Equal(t, []domain.FileStatusEntry{
			{Path: "README.md", State: domain.FileStaged},
			{Path: "README.md", State: domain.FileUnstaged},
			{Path: "main.go", State: domain.FileUnstaged},
			{Path: "notes/todo.txt", State: domain.FileUntracked},
		}, entries)
	})

	t.Run("rename reports new path once", func(t *testing.T) {
		repo := setupTestRepo(t)
		createFile(t, repo, "old.txt", strings.Repeat("same content\n", 20))
		commitInitial(t, repo)

		runGit(t, repo, "mv", "old.txt", "new.txt")

		entries, err := inspector.ListStatus(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, []domain.FileStatusEntry{
			{Path: "new.txt", State: domain.FileStaged},
		}, entries)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := inspector.ListStatus(ctx, t.TempDir())
		require.ErrorIs(t, err, ErrRepository)
		require.ErrorIs(t, err, ErrNotGitRepo)
	})

	t.Run("git missing", func(t *testing.T) {
		repo := setupTestRepo(t)
		broken := NewInspector(NewRunner("/nonexistent/bin/git"))

		_, err := broken.ListStatus(ctx, repo)
		require.ErrorIs(t, err, ErrRepository)
		require.ErrorIs(t, err, ErrGitNotFound)
	})

	t.Run("canceled context", func(t *testing.T) {
		repo := setupTestRepo(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := inspector.ListStatus(cctx, repo)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestInspector_StagedDiff(t *testing.T) {
	ctx := context.Background()
	inspector := newTestInspector()

	t.Run("nothing staged gives empty payload", func(t *testing.T) {
		repo := setupTestRepo(t)
		createFile(t, repo, "a.txt", "a\n")
		commitInitial(t, repo)
		createFile(t, repo, "a.txt", "changed but not staged\n")

		diff, err := inspector.StagedDiff(ctx, repo)
		require.NoError(t, err)
		assert.True(t, diff.IsEmpty())
		assert.Empty(t, diff.Text)
	})

	t.Run("staged change is returned byte exact", func(t *testing.T) {
		repo := setupTestRepo(t)
		createFile(t, repo, "README.md", "hello\n")
		commitInitial(t, repo)

		createFile(t, repo, "README.md", "hello\nwörld\n")
		runGit(t, repo, "add", "README.md")

		diff, err := inspector.StagedDiff(ctx, repo)
		require.NoError(t, err)

		expected := runGit(t, repo, "diff", "--cached", "--no-color", "--no-ext-diff")
		assert.Equal(t, expected, diff.Text)
		assert.Equal(t, len(expected), diff.ByteSize)
		assert.True(t, strings.HasSuffix(diff.Text, "\n"), "trailing newline kept")
		assert.Contains(t, diff.Text, "+wörld")
	})

	t.Run("initial commit diff works without HEAD", func(t *testing.T) {
		repo := setupTestRepo(t)
		createFile(t, repo, "first.txt", "one\n")
		runGit(t, repo, "add", "first.txt")

		diff, err := inspector.StagedDiff(ctx, repo)
		require.NoError(t, err)
		assert.Contains(t, diff.Text, "+one")
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := inspector.StagedDiff(ctx, t.TempDir())
		require.ErrorIs(t, err, ErrRepository)
		require.ErrorIs(t, err, ErrNotGitRepo)
	})
}

func TestInspector_CurrentBranch(t *testing.T) {
	ctx := context.Background()
	inspector := newTestInspector()

	t.Run("unborn branch", func(t *testing.T) {
		repo := setupTestRepo(t)
		runGit(t, repo, "checkout", "-q", "-b", "feature/x")

		branch, err := inspector.CurrentBranch(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, "feature/x", branch)
	})

	t.Run("detached head", func(t *testing.T) {
		repo := setupTestRepo(t)
		createFile(t, repo, "a.txt", "a\n")
		commitInitial(t, repo)
		runGit(t, repo, "checkout", "-q", "--detach")

		branch, err := inspector.CurrentBranch(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, "HEAD", branch)
	})
}

func TestParsePorcelainZ(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []domain.FileStatusEntry
	}{
		{
			name: "empty",
			in:   "",
			want: []domain.FileStatusEntry{},
		},
		{
			name: "added and modified",
			in:   "A  new.go\x00 M old.go\x00",
			want: []domain.FileStatusEntry{
				{Path: "new.go", State: domain.FileStaged},
				{Path: "old.go", State: domain.FileUnstaged},
			},
		},
		{
			name: "staged then modified again",
			in:   "MM both.go\x00",
			want: []domain.FileStatusEntry{
				{Path: "both.go", State: domain.FileStaged},
				{Path: "both.go", State: domain.FileUnstaged},
			},
		},
		{
			name: "rename skips origin record",
			in:   "R  to.go\x00from.go\x00?? extra.txt\x00",
			want: []domain.FileStatusEntry{
				{Path: "to.go", State: domain.FileStaged},
				{Path: "extra.txt", State: domain.FileUntracked},
			},
		},
		{
			name: "path with spaces is not quoted",
			in:   "?? my file.txt\x00",
			want: []domain.FileStatusEntry{
				{Path: "my file.txt", State: domain.FileUntracked},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parsePorcelainZ(tc.in))
		})
	}
}

func TestInspector_RecentCommits(t *testing.T) {
	ctx := context.Background()
	inspector := newTestInspector()

	t.Run("no commits yet", func(t *testing.T) {
		repo := setupTestRepo(t)

		commits, err := inspector.RecentCommits(ctx, repo, 10)
		require.NoError(t, err)
		assert.NotNil(t, commits)
		assert.Empty(t, commits)
	})

	t.Run("newest first within limit", func(t *testing.T) {
		repo := setupTestRepo(t)
		for _, name := range []string{"a", "b", "c"} {
			createFile(t, repo, name+".txt", name+"\n")
			runGit(t, repo, "add", name+".txt")
			runGit(t, repo, "commit", "-q", "-m", "feat: add "+name+" | with separators: ok")
		}

		commits, err := inspector.RecentCommits(ctx, repo, 2)
		require.NoError(t, err)
		require.Len(t, commits, 2)
		assert.Equal(t, "feat: add c | with separators: ok", commits[0].Subject)
		assert.Equal(t, "feat: add b | with separators: ok", commits[1].Subject)
		assert.Equal(t, testutil.TestUserName, commits[0].Author)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, commits[0].Date)
		assert.Equal(t, strings.TrimSpace(runGit(t, repo, "rev-parse", "--short", "HEAD")), commits[0].Hash)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := inspector.RecentCommits(ctx, t.TempDir(), 10)
		require.ErrorIs(t, err, ErrRepository)
		require.ErrorIs(t, err, ErrNotGitRepo)
	})
}
