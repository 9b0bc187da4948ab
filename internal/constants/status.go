package constants

// TaskStatus represents the state of a background task in the orchestrator.
// Status values use snake_case for JSON serialization compatibility.
type TaskStatus string

// Task status constants define the valid states a task can be in:
//
//	Idle → Running
//	Running → Completed, Failed, Cancelled
const (
	// TaskStatusIdle indicates no work has started yet.
	TaskStatusIdle TaskStatus = "idle"

	// TaskStatusRunning indicates the task's worker is executing its steps.
	TaskStatusRunning TaskStatus = "running"

	// TaskStatusCompleted indicates the task produced a result.
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusFailed indicates the task ended with an error or a failed synthesis.
	TaskStatusFailed TaskStatus = "failed"

	// TaskStatusCancelled indicates the task observed a cancellation request.
	TaskStatusCancelled TaskStatus = "cancelled"
)

// String returns the string representation of the TaskStatus.
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	case TaskStatusIdle, TaskStatusRunning:
		return false
	}
	return false
}

// TaskKind identifies which pipeline a task runs.
type TaskKind string

const (
	// TaskKindGenerate extracts the staged diff and synthesizes a message.
	TaskKindGenerate TaskKind = "generate"

	// TaskKindCommit checks the safety gate and commits when allowed.
	TaskKindCommit TaskKind = "commit"

	// TaskKindConfirm commits a change that was held back by the safety gate.
	TaskKindConfirm TaskKind = "confirm"

	// TaskKindAnalyze asks the model to explain, review or summarize text.
	TaskKindAnalyze TaskKind = "analyze"
)
