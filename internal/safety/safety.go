// Package safety decides whether a staged diff is small enough to commit
// without asking the user first.
package safety

import "github.com/mrz1836/aigit/internal/domain"

// Evaluate compares a diff size against the threshold. A size equal to the
// threshold is safe; only strictly larger diffs warn. It never refuses a commit,
// it only flags one.
func Evaluate(byteSize, thresholdBytes int) domain.SafetyVerdict {
	level := domain.SafetySafe
	if byteSize > thresholdBytes {
		level = domain.SafetyWarn
	}
	return domain.SafetyVerdict{
		Level:     level,
		ByteSize:  byteSize,
		Threshold: thresholdBytes,
	}
}

// EvaluateDiff is Evaluate applied to a payload's byte size.
func EvaluateDiff(diff domain.DiffPayload, thresholdBytes int) domain.SafetyVerdict {
	return Evaluate(diff.ByteSize, thresholdBytes)
}
