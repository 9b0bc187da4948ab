package task

import (
	"time"

	"github.com/mrz1836/aigit/internal/constants"
)

// Step names reported in progress events.
const (
	StepDiff       = "diff"
	StepSynthesize = "synthesize"
	StepSafety     = "safety"
	StepCommit     = "commit"
	StepAnalyze    = "analyze"
)

// Event is one progress notification. Terminal events carry the result.
type Event struct {
	TaskID string
	Kind   constants.TaskKind
	Status constants.TaskStatus
	Step   string
	At     time.Time
	Result *Result
}

// Notifier receives progress events on the task goroutine. It must not block.
// A task's terminal event arrives before its handle's Done channel closes and
// before any event of the next task.
type Notifier func(Event)

// notifyStep reports the start of a step.
func (o *Orchestrator) notifyStep(h *Handle, step string) {
	if o.notifier == nil {
		return
	}
	o.notifier(Event{
		TaskID: h.ID,
		Kind:   h.Kind,
		Status: constants.TaskStatusRunning,
		Step:   step,
		At:     o.clock.Now(),
	})
}

// notifyDone reports the terminal result exactly once per task.
func (o *Orchestrator) notifyDone(h *Handle, status constants.TaskStatus, res Result, at time.Time) {
	if o.notifier == nil {
		return
	}
	o.notifier(Event{
		TaskID: h.ID,
		Kind:   h.Kind,
		Status: status,
		At:     at,
		Result: &res,
	})
}
