package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/git"
)

// mockFallbackMessage is returned when the diff has no recognizable file headers.
const mockFallbackMessage = "chore: update (mocked)"

// mockSubjects are the candidate templates; %s is the change target.
//
//nolint:gochecknoglobals // fixed templates
var mockSubjects = []string{
	"update %s",
	"revise %s",
	"adjust %s",
	"rework %s",
	"tidy %s",
}

// MockBackend produces deterministic answers from diff statistics without any
// network access. The same request always yields the same answer.
type MockBackend struct{}

// NewMockBackend returns the offline backend.
func NewMockBackend() *MockBackend { return &MockBackend{} }

// Name implements Backend.
func (m *MockBackend) Name() string { return "mock" }

// Generate implements Backend.
func (m *MockBackend) Generate(ctx context.Context, req domain.SynthesisRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch req.PromptKind() {
	case domain.PromptSuggest:
		return mockSuggestions(req)
	case domain.PromptExplain:
		return mockExplanation(req.DiffText), nil
	case domain.PromptReview:
		return mockReview(req), nil
	case domain.PromptHistory:
		return mockHistory(req.DiffText), nil
	case domain.PromptCommit:
	}
	return mockCommitMessage(req.DiffText), nil
}

func mockCommitMessage(diff string) string {
	stats := git.DiffStats(diff)
	switch stats.FileCount() {
	case 0:
		return mockFallbackMessage
	case 1:
		f := stats.Files[0]
		return fmt.Sprintf("chore: update %s (+%d/-%d)", f.Path, f.Additions, f.Deletions)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "chore: update %d files (+%d/-%d)\n\n", stats.FileCount(), stats.Additions, stats.Deletions)
	for _, f := range stats.Files {
		fmt.Fprintf(&sb, "- %s (+%d/-%d)\n", f.Path, f.Additions, f.Deletions)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// mockSuggestions answers with a JSON list of req.Count distinct candidates,
// the way a model is asked to.
func mockSuggestions(req domain.SynthesisRequest) (string, error) {
	stats := git.DiffStats(req.DiffText)
	target, scope := "changes", ""
	switch stats.FileCount() {
	case 0:
	case 1:
		target, scope = stats.Files[0].Path, stats.Files[0].Path
	default:
		target = fmt.Sprintf("%d files", stats.FileCount())
	}

	n := min(max(req.Count, 1), len(mockSubjects))
	list := make([]domain.Suggestion, 0, n)
	for i := range n {
		list = append(list, domain.Suggestion{
			Type:    "chore",
			Scope:   scope,
			Subject: fmt.Sprintf(mockSubjects[i], target),
			Body:    fmt.Sprintf("+%d/-%d lines (mocked)", stats.Additions, stats.Deletions),
		})
	}

	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("mock suggestions: %w", err)
	}
	return string(data), nil
}

func mockExplanation(diff string) string {
	stats := git.DiffStats(diff)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summary: %d file(s) changed, +%d/-%d lines (mocked).", stats.FileCount(), stats.Additions, stats.Deletions)
	for _, f := range stats.Files {
		fmt.Fprintf(&sb, "\n- %s: %d added, %d removed", f.Path, f.Additions, f.Deletions)
	}
	return sb.String()
}

func mockReview(req domain.SynthesisRequest) string {
	lines := strings.Count(strings.TrimRight(req.DiffText, "\n"), "\n") + 1
	subject := "the code"
	if req.Context != "" {
		subject = firstContextLine(req.Context)
	}
	return fmt.Sprintf("Reviewed %s: %d line(s), no issues found (mocked).", subject, lines)
}

func mockHistory(history string) string {
	var commits int
	for _, line := range strings.Split(history, "\n") {
		if strings.HasPrefix(line, "- ") {
			commits++
		}
	}
	return fmt.Sprintf("Summary of %d recent commit(s) (mocked).", commits)
}

func firstContextLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
