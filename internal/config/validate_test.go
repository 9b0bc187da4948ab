package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/aigit/internal/errors"
)

func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestValidate_DefaultConfig(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Ranges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"threshold at minimum", func(c *Config) { c.Safety.ThresholdBytes = 100_000 }, nil},
		{"threshold at maximum", func(c *Config) { c.Safety.ThresholdBytes = 100_000_000 }, nil},
		{"threshold below minimum", func(c *Config) { c.Safety.ThresholdBytes = 99_999 }, errors.ErrConfigInvalidSafety},
		{"threshold above maximum", func(c *Config) { c.Safety.ThresholdBytes = 100_000_001 }, errors.ErrConfigInvalidSafety},
		{"timeout at minimum", func(c *Config) { c.AI.Timeout = 5 * time.Second }, nil},
		{"timeout at maximum", func(c *Config) { c.AI.Timeout = 300 * time.Second }, nil},
		{"timeout too short", func(c *Config) { c.AI.Timeout = 4 * time.Second }, errors.ErrConfigInvalidAI},
		{"timeout too long", func(c *Config) { c.AI.Timeout = 301 * time.Second }, errors.ErrConfigInvalidAI},
		{"blank model", func(c *Config) { c.AI.Model = "  " }, errors.ErrConfigInvalidAI},
		{"host without scheme", func(c *Config) { c.AI.Host = "localhost:11434" }, errors.ErrConfigInvalidAI},
		{"host with ftp scheme", func(c *Config) { c.AI.Host = "ftp://localhost" }, errors.ErrConfigInvalidAI},
		{"https host", func(c *Config) { c.AI.Host = "https://ollama.internal:8443" }, nil},
		{"zero attempts", func(c *Config) { c.AI.MaxAttempts = 0 }, errors.ErrConfigInvalidAI},
		{"too many attempts", func(c *Config) { c.AI.MaxAttempts = 6 }, errors.ErrConfigInvalidAI},
		{"negative temperature", func(c *Config) { c.AI.Temperature = -0.1 }, errors.ErrConfigInvalidAI},
		{"empty git executable", func(c *Config) { c.Git.Executable = "" }, errors.ErrConfigInvalidGit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := Validate(cfg)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
