package ai

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/aigit/internal/config"
	"github.com/mrz1836/aigit/internal/errors"
)

func TestNewBackend(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewBackend(nil)
		require.ErrorIs(t, err, errors.ErrConfigNil)
	})

	t.Run("mock mode makes no network calls", func(t *testing.T) {
		srv, hits := ollamaServer(t, respondWith("from server"))
		cfg := config.DefaultConfig()
		cfg.AI.Host = srv.URL
		cfg.AI.MockMode = true

		synth, err := NewSynthesizerFromConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, "mock", synth.Backend().Name())

		res := synth.Generate(context.Background(), request(testDiff))
		assert.Equal(t, "chore: update README.md (+2/-1)", res.Message)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("ollama by default", func(t *testing.T) {
		cfg := config.DefaultConfig()
		backend, err := NewBackend(&cfg.AI, WithHTTPClient(&http.Client{}))
		require.NoError(t, err)
		assert.Equal(t, "ollama", backend.Name())
	})

	t.Run("synthesizer takes attempts from config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.AI.MaxAttempts = 4
		synth, err := NewSynthesizerFromConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, 4, synth.maxAttempts)
	})

	t.Run("synthesizer nil config", func(t *testing.T) {
		_, err := NewSynthesizerFromConfig(nil)
		require.ErrorIs(t, err, errors.ErrConfigNil)
	})
}
