package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters for wrapped errors: the first errors.Is() match wins, so the
// specific repository sentinels precede ErrRepository.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Repository
	// ===================
	{
		err: ErrGitNotFound,
		info: ErrorInfo{
			Message: "The git executable could not be found.",
			Action:  "Install git or set git.executable (GIT_EXECUTABLE) to its path.",
		},
	},
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "This directory is not inside a git repository.",
			Action:  "Run aigit from a git working tree or pass the repository path.",
		},
	},
	{
		err: ErrRepository,
		info: ErrorInfo{
			Message: "The repository could not be inspected.",
			Action:  "Run 'git status' to see what git reports.",
		},
	},
	{
		err: ErrGitOperation,
		info: ErrorInfo{
			Message: "Git operation failed.",
			Action:  "Check the git output above for details.",
		},
	},
	{
		err: ErrCommitRejected,
		info: ErrorInfo{
			Message: "Git refused the commit.",
			Action:  "Stage changes with 'git add' and review any hook output.",
		},
	},
	{
		err: ErrCommitAborted,
		info: ErrorInfo{
			Message: "The commit was not made.",
		},
	},

	// ===================
	// Tasks
	// ===================
	{
		err: ErrOrchestratorBusy,
		info: ErrorInfo{
			Message: "Another task is already running.",
			Action:  "Wait for it to finish or cancel it first.",
		},
	},
	{
		err: ErrNoPendingCommit,
		info: ErrorInfo{
			Message: "There is no commit waiting for confirmation.",
		},
	},
	{
		err: ErrConfirmationRequired,
		info: ErrorInfo{
			Message: "The staged diff exceeds the safety threshold and needs confirmation.",
			Action:  "Run interactively or pass --yes to commit anyway.",
		},
	},

	// ===================
	// AI backend
	// ===================
	{
		err: ErrBackendUnreachable,
		info: ErrorInfo{
			Message: "Could not reach the Ollama server.",
			Action:  "Start it with 'ollama serve' or check ai.host. Use --mock to work offline.",
		},
	},
	{
		err: ErrModelNotInstalled,
		info: ErrorInfo{
			Message: "The configured model is not installed on the Ollama server.",
			Action:  "Run 'ollama pull <model>' or change ai.model.",
		},
	},
	{
		err: ErrSynthesisTimeout,
		info: ErrorInfo{
			Message: "Commit message generation timed out.",
			Action:  "Increase ai.timeout or use a smaller model.",
		},
	},
	{
		err: ErrSynthesisFailed,
		info: ErrorInfo{
			Message: "Commit message generation failed.",
			Action:  "Run 'aigit doctor' to check the AI backend.",
		},
	},
	{
		err: ErrAIEmptyResponse,
		info: ErrorInfo{
			Message: "The model returned an empty message.",
			Action:  "Retry, or write the message yourself with -m.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure ~/.aigit/config.yaml is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalidSafety,
		info: ErrorInfo{
			Message: "Invalid safety configuration.",
			Action:  "Keep safety.threshold_bytes between 100000 and 100000000.",
		},
	},
	{
		err: ErrConfigInvalidAI,
		info: ErrorInfo{
			Message: "Invalid AI configuration.",
			Action:  "Check the ai section with 'aigit config show'.",
		},
	},
	{
		err: ErrConfigInvalidGit,
		info: ErrorInfo{
			Message: "Invalid Git configuration.",
			Action:  "Check git.executable with 'aigit config show'.",
		},
	},
	{
		err: ErrUnknownConfigKey,
		info: ErrorInfo{
			Message: "Unknown configuration key.",
			Action:  "Run 'aigit config show' to list the supported keys.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Could not acquire lock. Another process may be writing the configuration.",
			Action:  "Wait and try again.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An argument is out of range.",
			Action:  "Run the command with --help to see accepted values.",
		},
	},
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation canceled.",
		},
	},
	{
		err: ErrMenuCanceled,
		info: ErrorInfo{
			Message: "Operation canceled.",
		},
	},
}

//nolint:gochecknoglobals // Built once from errorInfoEntries
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is().
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
