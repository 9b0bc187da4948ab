// Package task runs aigit's long-latency pipelines off the caller's control flow.
//
// An Orchestrator owns at most one running task. Each task is represented by a
// Handle that carries a cancellation func, a done channel and a write-once
// result slot.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/config, internal/safety, internal/clock, internal/ctxutil, std lib
//   - MUST NOT import: internal/ai, internal/git, internal/cli
package task

import (
	"fmt"
	"slices"

	"github.com/mrz1836/aigit/internal/constants"
)

// ValidTransitions defines all allowed state transitions in the task lifecycle.
// Format: from_status -> []to_statuses
//
//	Idle → Running
//	Running → Completed, Failed, Cancelled
//
// Terminal states have no outgoing edges; the orchestrator itself reports Idle
// again once the finished task has been released.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.TaskStatus][]constants.TaskStatus{
	constants.TaskStatusIdle: {constants.TaskStatusRunning},
	constants.TaskStatusRunning: {
		constants.TaskStatusCompleted,
		constants.TaskStatusFailed,
		constants.TaskStatusCancelled,
	},
}

// IsValidTransition checks if a transition from one status to another is allowed.
// Returns false for transitions from terminal states or to the same state.
func IsValidTransition(from, to constants.TaskStatus) bool {
	if from == to {
		return false
	}
	return slices.Contains(ValidTransitions[from], to)
}

// errInvalidTransition reports a state machine violation. It indicates a bug
// in the orchestrator, never a user error.
func errInvalidTransition(from, to constants.TaskStatus) error {
	return fmt.Errorf("invalid task transition %s -> %s", from, to)
}
