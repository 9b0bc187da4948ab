package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/errors"
)

// isolateEnv points HOME at an empty directory, moves into another empty
// directory and clears every variable that feeds configuration.
func isolateEnv(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	for _, key := range []string{
		"AIGIT_SAFETY_THRESHOLD_BYTES",
		"AIGIT_AI_HOST",
		"AIGIT_AI_MODEL",
		"AIGIT_AI_TIMEOUT",
		"AIGIT_AI_MAX_ATTEMPTS",
		"AIGIT_AI_MOCK_MODE",
		"AIGIT_AI_TEMPERATURE",
		"AIGIT_GIT_EXECUTABLE",
		constants.EnvMockMode,
		constants.EnvGitExecutable,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_GlobalAndProjectFiles(t *testing.T) {
	isolateEnv(t)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	writeFile(t, filepath.Join(home, ".aigit", "config.yaml"), `
ai:
  model: llama3
  timeout: 60s
safety:
  threshold_bytes: 500000
`)
	writeFile(t, filepath.Join(".aigit", "config.yaml"), `
ai:
  model: qwen2.5-coder
`)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "qwen2.5-coder", cfg.AI.Model, "project file wins")
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout, "global value kept")
	assert.Equal(t, 500_000, cfg.Safety.ThresholdBytes)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolateEnv(t)

	t.Setenv("AIGIT_AI_MODEL", "mistral")
	t.Setenv("AIGIT_AI_TIMEOUT", "45s")
	t.Setenv("AIGIT_SAFETY_THRESHOLD_BYTES", "250000")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mistral", cfg.AI.Model)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 250_000, cfg.Safety.ThresholdBytes)
}

func TestLoad_LegacyEnvAliases(t *testing.T) {
	isolateEnv(t)

	t.Setenv(constants.EnvMockMode, "1")
	t.Setenv(constants.EnvGitExecutable, "/usr/local/bin/git")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.AI.MockMode)
	assert.Equal(t, "/usr/local/bin/git", cfg.Git.Executable)
}

func TestLoad_InvalidFileValue(t *testing.T) {
	isolateEnv(t)

	writeFile(t, filepath.Join(".aigit", "config.yaml"), `
ai:
  timeout: 2s
`)

	_, err := Load(context.Background())
	require.ErrorIs(t, err, errors.ErrConfigInvalidAI)
}

func TestLoadWithOverrides(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadWithOverrides(context.Background(), &Config{
		Safety: SafetyConfig{ThresholdBytes: 300_000},
		AI:     AIConfig{Model: "phi3", Timeout: 90 * time.Second, MockMode: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 300_000, cfg.Safety.ThresholdBytes)
	assert.Equal(t, "phi3", cfg.AI.Model)
	assert.Equal(t, 90*time.Second, cfg.AI.Timeout)
	assert.True(t, cfg.AI.MockMode)
	assert.Equal(t, constants.DefaultAIHost, cfg.AI.Host, "untouched fields keep defaults")
}

func TestLoadWithOverrides_RejectsInvalidOverride(t *testing.T) {
	isolateEnv(t)

	_, err := LoadWithOverrides(context.Background(), &Config{
		Safety: SafetyConfig{ThresholdBytes: 10},
	})
	require.ErrorIs(t, err, errors.ErrConfigInvalidSafety)
}

func TestLoadFromPaths_ProjectConfigOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	project := filepath.Join(dir, "project.yaml")

	writeFile(t, global, `
ai:
  model: llama3
  max_attempts: 3
git:
  executable: /opt/git/bin/git
`)
	writeFile(t, project, `
ai:
  model: codellama
`)

	cfg, err := LoadFromPaths(context.Background(), project, global)
	require.NoError(t, err)

	assert.Equal(t, "codellama", cfg.AI.Model)
	assert.Equal(t, 3, cfg.AI.MaxAttempts)
	assert.Equal(t, "/opt/git/bin/git", cfg.Git.Executable)
}

func TestLoadFromPaths_MissingFilesUseDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromPaths(context.Background(),
		filepath.Join(dir, "missing-project.yaml"),
		filepath.Join(dir, "missing-global.yaml"))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultAIModel, cfg.AI.Model)
}
