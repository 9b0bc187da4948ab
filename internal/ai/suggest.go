package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrz1836/aigit/internal/domain"
)

// ParseSuggestions decodes a model answer holding a JSON list of commit
// message candidates. A single object is accepted as a list of one, and text
// around the JSON is ignored. Candidates without a subject are dropped and at
// most limit are kept when limit is positive.
func ParseSuggestions(raw string, limit int) ([]domain.Suggestion, error) {
	text := CleanMessage(raw)

	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON in suggestions", ErrAIInvalidFormat)
	}
	text = text[start:]

	var list []domain.Suggestion
	if text[0] == '{' {
		var one domain.Suggestion
		if err := json.NewDecoder(strings.NewReader(text)).Decode(&one); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAIInvalidFormat, err)
		}
		list = []domain.Suggestion{one}
	} else if err := json.NewDecoder(strings.NewReader(text)).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAIInvalidFormat, err)
	}

	out := make([]domain.Suggestion, 0, len(list))
	for _, s := range list {
		if strings.TrimSpace(s.Subject) == "" {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no usable suggestions", ErrAIInvalidFormat)
	}
	return out, nil
}
