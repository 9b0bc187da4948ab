package ai

import (
	"net/http"

	"github.com/mrz1836/aigit/internal/config"
	"github.com/mrz1836/aigit/internal/errors"
)

// BackendOption configures NewBackend.
type BackendOption func(*backendOptions)

type backendOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client used by the Ollama backend.
func WithHTTPClient(c *http.Client) BackendOption {
	return func(o *backendOptions) {
		o.httpClient = c
	}
}

// NewBackend selects the backend for cfg. Mock mode never constructs an HTTP
// client, so nothing can reach the network.
func NewBackend(cfg *config.AIConfig, opts ...BackendOption) (Backend, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}
	if cfg.MockMode {
		return NewMockBackend(), nil
	}

	o := &backendOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return NewOllamaBackend(cfg.Host, o.httpClient, WithTemperature(cfg.Temperature)), nil
}

// NewSynthesizerFromConfig builds a Synthesizer with the backend and attempt
// budget from cfg.
func NewSynthesizerFromConfig(cfg *config.Config, opts ...Option) (*Synthesizer, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}
	backend, err := NewBackend(&cfg.AI)
	if err != nil {
		return nil, err
	}
	all := append([]Option{WithMaxAttempts(cfg.AI.MaxAttempts)}, opts...)
	return NewSynthesizer(backend, all...), nil
}
