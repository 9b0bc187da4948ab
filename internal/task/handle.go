package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/domain"
)

// Result is the terminal value of a task. Which fields are set depends on
// the task kind:
//
//   - generate: Diff and Synthesis
//   - commit:   Diff and Verdict, plus Commit or Pending
//   - confirm:  Verdict and Commit
//
// Err is set when a step failed before producing a typed result (for example
// a RepositoryError from diff extraction).
type Result struct {
	Kind      constants.TaskKind
	Diff      *domain.DiffPayload
	Synthesis *domain.SynthesisResult
	Verdict   *domain.SafetyVerdict
	Commit    *domain.CommitOutcome
	Pending   *PendingCommit
	Err       error
}

// PendingCommit is a commit held back by a WARN verdict. It must be resolved
// exactly once, with Orchestrator.ConfirmCommit or Orchestrator.DeclineCommit.
type PendingCommit struct {
	Path    string
	Message string
	Diff    domain.DiffPayload
	Verdict domain.SafetyVerdict

	resolved atomic.Bool
}

// resolve marks p as used. It reports false if p was already resolved.
func (p *PendingCommit) resolve() bool {
	return p.resolved.CompareAndSwap(false, true)
}

// Handle represents one in-flight task.
type Handle struct {
	ID        string
	Kind      constants.TaskKind
	StartedAt time.Time

	mu         sync.Mutex
	status     constants.TaskStatus
	finishedAt time.Time
	result     Result

	once   sync.Once
	done   chan struct{}
	cancel context.CancelFunc
}

func newHandle(id string, kind constants.TaskKind, startedAt time.Time, cancel context.CancelFunc) *Handle {
	return &Handle{
		ID:        id,
		Kind:      kind,
		StartedAt: startedAt,
		status:    constants.TaskStatusIdle,
		done:      make(chan struct{}),
		cancel:    cancel,
	}
}

// Done is closed once the result is available.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Status returns the current state.
func (h *Handle) Status() constants.TaskStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// FinishedAt returns when the task reached a terminal state (zero if running).
func (h *Handle) FinishedAt() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.finishedAt
}

// Result returns the terminal result. ok is false while the task is running.
func (h *Handle) Result() (Result, bool) {
	select {
	case <-h.done:
	default:
		return Result{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result, true
}

// Wait blocks until the task finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		res, _ := h.Result()
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// transition moves the handle to status to.
func (h *Handle) transition(to constants.TaskStatus) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !IsValidTransition(h.status, to) {
		return errInvalidTransition(h.status, to)
	}
	h.status = to
	return nil
}

// finish stores res, moves to the terminal status and closes Done. Only the
// first call has any effect.
func (h *Handle) finish(status constants.TaskStatus, res Result, at time.Time) bool {
	finished := false
	h.once.Do(func() {
		h.mu.Lock()
		if IsValidTransition(h.status, status) {
			h.status = status
		} else {
			h.status = constants.TaskStatusFailed
		}
		h.result = res
		h.finishedAt = at
		h.mu.Unlock()

		h.cancel()
		close(h.done)
		finished = true
	})
	return finished
}

// requestCancel signals the token while the task is running.
// It reports whether the signal was sent.
func (h *Handle) requestCancel() bool {
	h.mu.Lock()
	running := h.status == constants.TaskStatusRunning
	h.mu.Unlock()

	if running {
		h.cancel()
	}
	return running
}
