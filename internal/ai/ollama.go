package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/domain"
)

// maxErrorBodyBytes limits how much of a failed response body ends up in errors.
const maxErrorBodyBytes = 512

// OllamaBackend calls the Ollama HTTP API.
type OllamaBackend struct {
	baseURL     string
	httpClient  *http.Client
	temperature float64
}

// OllamaOption configures an OllamaBackend.
type OllamaOption func(*OllamaBackend)

// WithTemperature sets the sampling temperature sent with every request.
func WithTemperature(t float64) OllamaOption {
	return func(b *OllamaBackend) {
		b.temperature = t
	}
}

// NewOllamaBackend builds a backend for the API rooted at baseURL
// (e.g. http://localhost:11434). A nil httpClient gets a client without its
// own timeout; request deadlines come from the context.
func NewOllamaBackend(baseURL string, httpClient *http.Client, opts ...OllamaOption) *OllamaBackend {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	b := &OllamaBackend{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  httpClient,
		temperature: constants.DefaultTemperature,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements Backend.
func (b *OllamaBackend) Name() string { return "ollama" }

type generateRequest struct {
	Model   string          `json:"model"`
	System  string          `json:"system"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate implements Backend with a single non-streaming POST /api/generate.
func (b *OllamaBackend) Generate(ctx context.Context, req domain.SynthesisRequest) (string, error) {
	system, prompt := promptFor(req)
	payload, err := json.Marshal(generateRequest{
		Model:   req.Model,
		System:  system,
		Prompt:  prompt,
		Stream:  false,
		Options: generateOptions{Temperature: b.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ollama generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("ollama generate: %w: %w", ErrBackendUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", fmt.Errorf("ollama generate: %w: HTTP %d: %s",
			ErrBackendStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("ollama generate: %w: %w", ErrAIInvalidFormat, err)
	}
	if body.Error != "" {
		return "", fmt.Errorf("ollama generate: %w: %s", ErrBackendStatus, body.Error)
	}

	return body.Response, nil
}

// CheckResult is the result of a health/model check.
type CheckResult struct {
	Reachable    bool     // Server answered /api/tags with 200.
	ModelPresent bool     // Requested model appears in the tags list.
	ModelNames   []string // All installed model names.
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Check verifies the server is reachable and whether model is installed.
// Models are matched with and without the implicit ":latest" tag.
func (b *OllamaBackend) Check(ctx context.Context, model string) (*CheckResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama tags request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w: %w", ErrBackendUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags: %w: HTTP %d", ErrBackendUnreachable, resp.StatusCode)
	}

	var body tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ollama tags: %w: %w", ErrAIInvalidFormat, err)
	}

	names := make([]string, 0, len(body.Models))
	for _, m := range body.Models {
		names = append(names, m.Name)
	}

	return &CheckResult{
		Reachable:    true,
		ModelPresent: slices.Contains(names, model) || slices.Contains(names, model+":latest"),
		ModelNames:   names,
	}, nil
}
