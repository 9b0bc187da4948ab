package ai

import "github.com/mrz1836/aigit/internal/errors"

// Sentinels re-exported from internal/errors for convenience.
var (
	// ErrBackendUnreachable wraps transport failures talking to the backend.
	ErrBackendUnreachable = errors.ErrBackendUnreachable

	// ErrBackendStatus wraps non-2xx answers.
	ErrBackendStatus = errors.ErrBackendStatus

	// ErrAIInvalidFormat wraps undecodable responses.
	ErrAIInvalidFormat = errors.ErrAIInvalidFormat
)

// ReasonEmptyResponse is the failure reason for a blank model answer.
const ReasonEmptyResponse = "empty response"
