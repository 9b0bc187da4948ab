package ai

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mrz1836/aigit/internal/domain"
)

// maxPromptBytes caps the diff text placed in the model prompt. The safety
// gate and the mock always see the full diff.
const maxPromptBytes = 32 * 1024

// SystemPrompt instructs the model to produce a conventional commit message.
const SystemPrompt = `You generate conventional git commit messages from a unified diff.
Output only the commit message, no other text or explanation.
Format:
- First line: type(optional scope): summary, 72 characters or less, imperative mood (e.g. "feat(cli): add commit command").
- Blank line.
- Then a short description if needed, wrapped at 72 characters.
Use one of: feat, fix, docs, style, refactor, perf, test, build, ci, chore.
Do not use markdown, code blocks, or quotes.`

// suggestSystemPrompt asks for a JSON list of commit message candidates.
const suggestSystemPrompt = `You suggest git commit messages from a unified diff.
Suggest %d distinct commit messages for the diff.
Respond only with a JSON list of %d objects and nothing else:
[{"type": "feat", "scope": "cli", "subject": "add commit command", "body": "optional details"}]
- type is one of: feat, fix, docs, style, refactor, perf, test, build, ci, chore.
- scope is the feature or file name, or empty.
- subject is an imperative summary, 60 characters or less.
- body is a short explanation, or empty.`

// explainSystemPrompt asks for a reviewer-oriented explanation of a diff.
const explainSystemPrompt = `You explain code changes. Explain what this unified diff does in clear, human-readable terms:
1. Summary of the change
2. What was removed and why
3. What was added and why
4. Impact of the change
5. Any potential concerns
Keep it concise and suitable for a code review.`

// reviewSystemPrompt asks for a code review of one file.
const reviewSystemPrompt = `You are an expert code reviewer. Review the following code and provide:
1. Potential issues (bugs, logic errors, edge cases)
2. Code quality suggestions (readability, maintainability)
3. Specific improvements with short code examples
Be constructive and concise.`

// historySystemPrompt asks for a summary of recent commits.
const historySystemPrompt = `You summarize a project's recent commit history. Give a high-level summary of progress:
1. Major features added
2. Important bugs fixed
3. The general development trend
Keep it short.`

// promptFor returns the system and user prompt for req.
func promptFor(req domain.SynthesisRequest) (system, prompt string) {
	body := buildPrompt(req.DiffText)
	if req.Context != "" {
		body = req.Context + "\n\n" + body
	}

	switch req.PromptKind() {
	case domain.PromptSuggest:
		n := max(req.Count, 1)
		return fmt.Sprintf(suggestSystemPrompt, n, n), body
	case domain.PromptExplain:
		return explainSystemPrompt, body
	case domain.PromptReview:
		return reviewSystemPrompt, body
	case domain.PromptHistory:
		return historySystemPrompt, body
	case domain.PromptCommit:
		return SystemPrompt, body
	}
	return SystemPrompt, body
}

// buildPrompt places the text in the user prompt, truncating oversized input
// on a rune boundary.
func buildPrompt(diff string) string {
	if len(diff) <= maxPromptBytes {
		return diff
	}
	return truncateUTF8(diff, maxPromptBytes) + "\n\n[diff truncated]"
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// CleanMessage trims a model answer and removes a surrounding markdown code
// fence ("```" or "```lang") if the model added one anyway.
func CleanMessage(raw string) string {
	msg := strings.TrimSpace(raw)
	if !strings.HasPrefix(msg, "```") {
		return msg
	}

	msg = strings.TrimPrefix(msg, "```")
	if nl := strings.IndexByte(msg, '\n'); nl >= 0 && !strings.ContainsAny(msg[:nl], " \t") {
		// drop the language tag line
		msg = msg[nl+1:]
	}
	msg = strings.TrimSuffix(strings.TrimSpace(msg), "```")
	return strings.TrimSpace(msg)
}
