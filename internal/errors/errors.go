// Package errors provides centralized error handling for aigit.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrRepository is the umbrella category for every repository inspection
	// failure. More specific sentinels below are always joined with it.
	ErrRepository = errors.New("repository error")

	// ErrNotGitRepo indicates the path is not inside a git working tree.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrGitNotFound indicates the git executable could not be located.
	ErrGitNotFound = errors.New("git executable not found")

	// ErrGitOperation indicates that a git command exited unsuccessfully.
	ErrGitOperation = errors.New("git operation failed")

	// ErrOrchestratorBusy indicates a task was started while another one
	// is still running.
	ErrOrchestratorBusy = errors.New("another task already running")

	// ErrNoPendingCommit indicates a confirm or decline call without a
	// commit held back by the safety gate.
	ErrNoPendingCommit = errors.New("no pending commit")

	// ErrBackendUnreachable indicates the language-model service did not accept
	// a connection.
	ErrBackendUnreachable = errors.New("ai backend unreachable")

	// ErrBackendStatus indicates the language-model service answered with a
	// non-success HTTP status.
	ErrBackendStatus = errors.New("ai backend returned error status")

	// ErrAIEmptyResponse indicates that the AI returned an empty response.
	ErrAIEmptyResponse = errors.New("AI returned empty response")

	// ErrAIInvalidFormat indicates that the AI response was not in the expected format.
	ErrAIInvalidFormat = errors.New("AI response not in expected format")

	// ErrModelNotInstalled indicates the configured model is not available on the backend.
	ErrModelNotInstalled = errors.New("model not installed")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSafety indicates an invalid safety configuration value.
	ErrConfigInvalidSafety = errors.New("invalid safety configuration")

	// ErrConfigInvalidAI indicates an invalid AI configuration value.
	ErrConfigInvalidAI = errors.New("invalid AI configuration")

	// ErrConfigInvalidGit indicates an invalid Git configuration value.
	ErrConfigInvalidGit = errors.New("invalid Git configuration")

	// ErrUnknownConfigKey indicates that config set was given a key it does not manage.
	ErrUnknownConfigKey = errors.New("unknown configuration key")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrConflictingFlags indicates that mutually exclusive flags were specified.
	ErrConflictingFlags = errors.New("conflicting flags specified")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")

	// ErrMenuCanceled indicates that the user canceled a prompt.
	ErrMenuCanceled = errors.New("menu canceled by user")

	// ErrConfirmationRequired indicates that a large commit needs confirmation
	// but no terminal is available and --yes was not given.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrCommitRejected indicates git refused the commit.
	ErrCommitRejected = errors.New("commit rejected")

	// ErrCommitAborted indicates the commit was cancelled or declined.
	ErrCommitAborted = errors.New("commit aborted")

	// ErrSynthesisFailed indicates message generation did not produce a message.
	ErrSynthesisFailed = errors.New("message synthesis failed")

	// ErrSynthesisTimeout indicates message generation exceeded its deadline.
	ErrSynthesisTimeout = errors.New("message synthesis timed out")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrDoctorChecksFailed indicates at least one environment check failed.
	ErrDoctorChecksFailed = errors.New("environment checks failed")

	// ErrInvalidArgument indicates a flag or argument value is out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedPrompt indicates an analysis task was asked for a prompt
	// kind it cannot run.
	ErrUnsupportedPrompt = errors.New("unsupported prompt kind")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
