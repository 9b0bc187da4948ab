package domain

import (
	"strings"
	"time"
)

// PromptKind selects what the model is asked to do with the request text.
type PromptKind string

const (
	// PromptCommit asks for one commit message. It is the default.
	PromptCommit PromptKind = "commit"

	// PromptSuggest asks for several distinct commit message candidates.
	PromptSuggest PromptKind = "suggest"

	// PromptExplain asks for a plain-language explanation of a diff.
	PromptExplain PromptKind = "explain"

	// PromptReview asks for a code review of one file.
	PromptReview PromptKind = "review"

	// PromptHistory asks for a summary of recent commits.
	PromptHistory PromptKind = "history"
)

// String returns the string representation of the PromptKind.
func (k PromptKind) String() string {
	return string(k)
}

// IsAnalysis reports whether k produces free text rather than a commit message.
func (k PromptKind) IsAnalysis() bool {
	switch k {
	case PromptExplain, PromptReview, PromptHistory:
		return true
	case PromptCommit, PromptSuggest:
		return false
	}
	return false
}

// SynthesisRequest carries one generation request.
//
// Example JSON representation:
//
//	{
//	    "diff_text": "diff --git a/README.md b/README.md\n...",
//	    "model": "exaone3.5:2.4b",
//	    "timeout": 30000000000,
//	    "kind": "suggest",
//	    "count": 3
//	}
type SynthesisRequest struct {
	// DiffText is the text the model works on: the staged diff exactly as git
	// printed it, the file content for PromptReview, or the formatted commit
	// list for PromptHistory.
	DiffText string `json:"diff_text"`

	// Model is the backend model name.
	Model string `json:"model"`

	// Timeout bounds the whole request, retries included.
	Timeout time.Duration `json:"timeout"`

	// Kind selects the prompt. Empty means PromptCommit.
	Kind PromptKind `json:"kind,omitempty"`

	// Count is the number of candidates requested with PromptSuggest.
	Count int `json:"count,omitempty"`

	// Context is extra information placed in the prompt (file name, focus).
	Context string `json:"context,omitempty"`
}

// PromptKind returns the effective prompt kind of r.
func (r SynthesisRequest) PromptKind() PromptKind {
	if r.Kind == "" {
		return PromptCommit
	}
	return r.Kind
}

// Suggestion is one commit message candidate.
type Suggestion struct {
	Type    string `json:"type,omitempty"`
	Scope   string `json:"scope,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body,omitempty"`
}

// Header returns the conventional first line, "type(scope): subject".
// A missing type defaults to "chore".
func (s Suggestion) Header() string {
	typ := strings.TrimSpace(s.Type)
	if typ == "" {
		typ = "chore"
	}
	subject := strings.TrimSpace(s.Subject)
	if scope := strings.TrimSpace(s.Scope); scope != "" {
		return typ + "(" + scope + "): " + subject
	}
	return typ + ": " + subject
}

// Message returns the full commit message: the header, then the body
// separated by a blank line when present.
func (s Suggestion) Message() string {
	body := strings.TrimSpace(s.Body)
	if body == "" {
		return s.Header()
	}
	return s.Header() + "\n\n" + body
}

// SynthesisKind tags the variant held by a SynthesisResult.
type SynthesisKind string

const (
	// SynthesisOK carries a generated message (possibly empty for an empty diff).
	SynthesisOK SynthesisKind = "ok"

	// SynthesisTimedOut means the overall deadline expired.
	SynthesisTimedOut SynthesisKind = "timed_out"

	// SynthesisFailed means the backend could not produce a usable message.
	SynthesisFailed SynthesisKind = "failed"

	// SynthesisCancelled means the caller withdrew the request.
	SynthesisCancelled SynthesisKind = "cancelled"
)

// SynthesisResult is the outcome of one generation request. Only the field
// belonging to Kind is meaningful: Message for ok, Reason for failed.
//
// Suggestions is set only for PromptSuggest requests; Message then holds the
// first candidate's message.
type SynthesisResult struct {
	Kind        SynthesisKind `json:"kind"`
	Message     string        `json:"message,omitempty"`
	Suggestions []Suggestion  `json:"suggestions,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	Attempts    int           `json:"attempts"`
}

// SynthesisOk builds an ok result.
func SynthesisOk(message string, attempts int) SynthesisResult {
	return SynthesisResult{Kind: SynthesisOK, Message: message, Attempts: attempts}
}

// SynthesisSuggested builds an ok result from candidates. suggestions must
// not be empty.
func SynthesisSuggested(suggestions []Suggestion, attempts int) SynthesisResult {
	return SynthesisResult{
		Kind:        SynthesisOK,
		Message:     suggestions[0].Message(),
		Suggestions: suggestions,
		Attempts:    attempts,
	}
}

// SynthesisFailure builds a failed result.
func SynthesisFailure(reason string, attempts int) SynthesisResult {
	return SynthesisResult{Kind: SynthesisFailed, Reason: reason, Attempts: attempts}
}

// SynthesisTimeout builds a timed-out result.
func SynthesisTimeout(attempts int) SynthesisResult {
	return SynthesisResult{Kind: SynthesisTimedOut, Attempts: attempts}
}

// SynthesisCancel builds a cancelled result.
func SynthesisCancel(attempts int) SynthesisResult {
	return SynthesisResult{Kind: SynthesisCancelled, Attempts: attempts}
}

// OK reports whether the result carries a message.
func (r SynthesisResult) OK() bool {
	return r.Kind == SynthesisOK
}
