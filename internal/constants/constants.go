// Package constants provides centralized constant values used throughout aigit.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names used by aigit for configuration and logs.
const (
	// AigitHome is the hidden directory name where aigit stores its data.
	// It is created in the user's home directory and, optionally, in a project root.
	AigitHome = ".aigit"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Safety gate defaults and limits, in bytes of staged diff.
const (
	// DefaultThresholdBytes is the diff size above which a commit needs confirmation.
	DefaultThresholdBytes = 2_000_000

	// MinThresholdBytes is the smallest accepted threshold.
	MinThresholdBytes = 100_000

	// MaxThresholdBytes is the largest accepted threshold.
	MaxThresholdBytes = 100_000_000
)

// Message synthesis defaults and limits.
const (
	// DefaultAITimeout is the overall deadline for one synthesis request,
	// retries included.
	DefaultAITimeout = 30 * time.Second

	// MinAITimeout is the shortest accepted synthesis timeout.
	MinAITimeout = 5 * time.Second

	// MaxAITimeout is the longest accepted synthesis timeout.
	MaxAITimeout = 300 * time.Second

	// DefaultAIModel is the Ollama model used when none is configured.
	DefaultAIModel = "exaone3.5:2.4b"

	// DefaultAIHost is the base URL of a locally running Ollama server.
	DefaultAIHost = "http://localhost:11434"

	// DefaultMaxAttempts is the total number of backend calls allowed per request
	// (one initial call plus one retry on transient connectivity failure).
	DefaultMaxAttempts = 2

	// MaxAttemptsLimit caps the configurable attempt count.
	MaxAttemptsLimit = 5

	// DefaultTemperature is the sampling temperature sent to the backend.
	DefaultTemperature = 0.2

	// MaxTemperature is the highest accepted sampling temperature.
	MaxTemperature = 2.0

	// RetryBackoffBase is the delay before the first retry. Each later retry
	// waits one more RetryBackoffBase.
	RetryBackoffBase = 500 * time.Millisecond
)

// Analysis and suggestion limits.
const (
	// MaxSuggestions caps how many commit message candidates one request asks for.
	MaxSuggestions = 5

	// DefaultHistoryLimit is how many recent commits the history summary reads.
	DefaultHistoryLimit = 50

	// MaxHistoryLimit caps the history summary window.
	MaxHistoryLimit = 500

	// MaxReviewFileBytes is the largest file accepted for review.
	MaxReviewFileBytes = 1 << 20
)

// Git defaults.
const (
	// DefaultGitExecutable is the git binary looked up on PATH.
	DefaultGitExecutable = "git"
)

// Environment variable names honored in addition to the AIGIT_ prefixed keys.
const (
	// EnvMockMode forces the deterministic mock backend when set to "1" or "true".
	EnvMockMode = "AI_MOCK_MODE"

	// EnvGitExecutable overrides the git binary.
	EnvGitExecutable = "GIT_EXECUTABLE"
)
