// Package ai turns a staged diff into a commit message, or a list of
// candidates, and answers explain, review and history prompts.
//
// A Backend talks to one model service (Ollama over HTTP, or the offline mock).
// The Synthesizer wraps a Backend with the overall deadline, the bounded retry
// on transient connection failures, cancellation and response cleanup.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// internal/config, internal/domain and internal/git. It MUST NOT import
// internal/task or internal/cli.
package ai

import (
	"context"

	"github.com/mrz1836/aigit/internal/domain"
)

// Backend generates the raw model answer for a request; req.Kind selects the
// prompt. Implementations must honor ctx and return promptly once it is done.
type Backend interface {
	// Name identifies the backend in logs and output ("ollama", "mock").
	Name() string

	// Generate returns the model's raw text for req. Cleanup and empty-response
	// detection are the Synthesizer's job.
	Generate(ctx context.Context, req domain.SynthesisRequest) (string, error)
}

// Compile-time interface checks.
var (
	_ Backend = (*OllamaBackend)(nil)
	_ Backend = (*MockBackend)(nil)
)
