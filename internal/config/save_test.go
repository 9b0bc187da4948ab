package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/aigit/internal/errors"
)

func TestSave_RoundTripsThroughLoadFromPaths(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".aigit", "config.yaml")
	cfg := DefaultConfig()
	cfg.AI.Model = "llama3.2"
	cfg.AI.Timeout = 75 * time.Second
	cfg.Safety.ThresholdBytes = 750_000

	require.NoError(t, Save(context.Background(), path, cfg))

	data, err := os.ReadFile(path) //#nosec G304 -- test temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 1m15s")
	assert.Contains(t, string(data), "threshold_bytes: 750000")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFromPaths(context.Background(), "", path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.AI.Timeout = time.Second

	require.ErrorIs(t, Save(context.Background(), path, cfg), errors.ErrConfigInvalidAI)
	assert.NoFileExists(t, path)
}

func TestSetValue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	ctx := context.Background()

	cfg, err := SetValue(ctx, path, "ai.timeout", "90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.AI.Timeout)

	cfg, err = SetValue(ctx, path, "safety.threshold_bytes", "400000")
	require.NoError(t, err)
	assert.Equal(t, 400_000, cfg.Safety.ThresholdBytes)
	assert.Equal(t, 90*time.Second, cfg.AI.Timeout, "earlier value preserved")

	cfg, err = SetValue(ctx, path, "ai.mock_mode", "true")
	require.NoError(t, err)
	assert.True(t, cfg.AI.MockMode)

	loaded, err := LoadFromPaths(ctx, "", path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSetValue_Errors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	ctx := context.Background()

	_, err := SetValue(ctx, path, "ai.api_key", "x")
	require.ErrorIs(t, err, errors.ErrUnknownConfigKey)

	_, err = SetValue(ctx, path, "safety.threshold_bytes", "5")
	require.ErrorIs(t, err, errors.ErrConfigInvalidSafety)
	assert.NoFileExists(t, path, "invalid values are never written")
}
