package task_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/aigit/internal/ai"
	"github.com/mrz1836/aigit/internal/config"
	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/git"
	"github.com/mrz1836/aigit/internal/task"
	"github.com/mrz1836/aigit/internal/testutil"
)

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	return testutil.Git(t, dir, args...)
}

func newRepo(t *testing.T) string {
	t.Helper()
	return testutil.NewRepo(t)
}

func newPipeline(cfg *config.Config) *task.Orchestrator {
	runner := git.NewRunner(cfg.Git.Executable)
	factory := func(aiCfg config.AIConfig) (task.MessageSynthesizer, error) {
		c := *cfg
		c.AI = aiCfg
		synth, err := ai.NewSynthesizerFromConfig(&c)
		if err != nil {
			return nil, err
		}
		return synth, nil
	}
	return task.NewOrchestrator(git.NewInspector(runner), factory, git.NewExecutor(runner))
}

func waitFor(t *testing.T, h *task.Handle) task.Result {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := h.Wait(ctx)
	require.NoError(t, err)
	return res
}

func TestPipeline_GenerateThenCommit(t *testing.T) {
	repo := newRepo(t)
	var lines []string
	for i := range 10 {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	require.NoError(t, os.WriteFile(filepath.Join(repo, "notes.txt"), []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	gitCmd(t, repo, "add", "notes.txt")

	cfg := config.DefaultConfig()
	cfg.AI.MockMode = true
	cfg.AI.Host = "http://127.0.0.1:1" // never contacted in mock mode
	orch := newPipeline(cfg)
	settings := task.SettingsFromConfig(cfg)

	h, err := orch.StartGenerate(context.Background(), repo, settings)
	require.NoError(t, err)
	gen := waitFor(t, h)

	require.Equal(t, constants.TaskStatusCompleted, h.Status(), "err: %v", gen.Err)
	require.NotNil(t, gen.Diff)
	assert.Positive(t, gen.Diff.ByteSize)
	assert.Equal(t, "chore: update notes.txt (+10/-0)", gen.Synthesis.Message)

	h, err = orch.StartCommit(context.Background(), task.CommitRequest{
		Path:    repo,
		Message: gen.Synthesis.Message,
		Diff:    gen.Diff,
	}, settings)
	require.NoError(t, err)
	res := waitFor(t, h)

	assert.Equal(t, domain.SafetySafe, res.Verdict.Level)
	require.Equal(t, domain.CommitCommitted, res.Commit.Kind, "reason: %s", res.Commit.Reason)
	assert.NotEmpty(t, res.Commit.Hash)

	subject := strings.TrimSpace(gitCmd(t, repo, "log", "-1", "--format=%s"))
	assert.Equal(t, "chore: update notes.txt (+10/-0)", subject)
}

func TestPipeline_EmptyStagedDiff(t *testing.T) {
	repo := newRepo(t)

	cfg := config.DefaultConfig()
	cfg.AI.MockMode = true
	orch := newPipeline(cfg)

	h, err := orch.StartGenerate(context.Background(), repo, task.SettingsFromConfig(cfg))
	require.NoError(t, err)
	res := waitFor(t, h)

	assert.Equal(t, 0, res.Diff.ByteSize)
	assert.Equal(t, domain.SynthesisOk("", 0), *res.Synthesis)
}

func TestPipeline_NotARepository(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AI.MockMode = true
	orch := newPipeline(cfg)

	h, err := orch.StartGenerate(context.Background(), t.TempDir(), task.SettingsFromConfig(cfg))
	require.NoError(t, err)
	res := waitFor(t, h)

	assert.Equal(t, constants.TaskStatusFailed, h.Status())
	require.ErrorIs(t, res.Err, git.ErrRepository)
}
