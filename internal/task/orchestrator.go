package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/mrz1836/aigit/internal/clock"
	"github.com/mrz1836/aigit/internal/config"
	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/ctxutil"
	"github.com/mrz1836/aigit/internal/domain"
	aigiterrors "github.com/mrz1836/aigit/internal/errors"
	"github.com/mrz1836/aigit/internal/safety"
)

// DiffSource extracts the staged diff of a repository.
type DiffSource interface {
	StagedDiff(ctx context.Context, path string) (domain.DiffPayload, error)
}

// MessageSynthesizer turns a request into exactly one synthesis result.
type MessageSynthesizer interface {
	Generate(ctx context.Context, req domain.SynthesisRequest) domain.SynthesisResult
}

// Committer records a commit.
type Committer interface {
	Commit(ctx context.Context, path, message string) domain.CommitOutcome
}

// SynthesizerFactory builds the synthesizer for one generate call.
type SynthesizerFactory func(cfg config.AIConfig) (MessageSynthesizer, error)

// CommitRequest describes a commit to check and run.
type CommitRequest struct {
	Path    string
	Message string

	// Diff is the already-known staged diff (usually from a generate task).
	// When nil the diff is extracted again.
	Diff *domain.DiffPayload
}

// AnalysisRequest asks the model to explain, review or summarize text.
type AnalysisRequest struct {
	// Path is the repository whose staged diff is explained when Input is
	// empty and Kind is PromptExplain.
	Path string

	// Kind must be PromptExplain, PromptReview or PromptHistory.
	Kind domain.PromptKind

	// Input is the text to analyze.
	Input string

	// Context is placed in the prompt ahead of Input.
	Context string
}

// Orchestrator runs generate, commit and analysis tasks one at a time. A
// start request while a task is running fails with ErrOrchestratorBusy; the
// running task is never cancelled implicitly.
type Orchestrator struct {
	diffs     DiffSource
	committer Committer
	newSynth  SynthesizerFactory

	sem      *semaphore.Weighted
	clock    clock.Clock
	logger   zerolog.Logger
	notifier Notifier
	newID    func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithNotifier sets the progress callback.
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) {
		o.notifier = n
	}
}

// WithClock sets the clock used for task timestamps.
func WithClock(c clock.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = c
	}
}

// NewOrchestrator wires the pipeline collaborators.
func NewOrchestrator(diffs DiffSource, synth SynthesizerFactory, committer Committer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		diffs:     diffs,
		committer: committer,
		newSynth:  synth,
		sem:       semaphore.NewWeighted(1),
		clock:     clock.RealClock{},
		logger:    zerolog.Nop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Busy reports whether a task is currently running.
func (o *Orchestrator) Busy() bool {
	if o.sem.TryAcquire(1) {
		o.sem.Release(1)
		return false
	}
	return true
}

// State returns Running while a task holds the orchestrator and Idle otherwise.
func (o *Orchestrator) State() constants.TaskStatus {
	if o.Busy() {
		return constants.TaskStatusRunning
	}
	return constants.TaskStatusIdle
}

// StartGenerate extracts the staged diff and synthesizes a commit message.
func (o *Orchestrator) StartGenerate(ctx context.Context, path string, settings Settings) (*Handle, error) {
	return o.start(ctx, constants.TaskKindGenerate, func(ctx context.Context, h *Handle) (constants.TaskStatus, Result) {
		return o.runGenerate(ctx, h, path, settings)
	})
}

// StartAnalysis runs one explain, review or history prompt. Other prompt
// kinds fail with ErrUnsupportedPrompt before a task starts.
func (o *Orchestrator) StartAnalysis(ctx context.Context, req AnalysisRequest, settings Settings) (*Handle, error) {
	if !req.Kind.IsAnalysis() {
		return nil, fmt.Errorf("%w: %q", aigiterrors.ErrUnsupportedPrompt, req.Kind)
	}
	return o.start(ctx, constants.TaskKindAnalyze, func(ctx context.Context, h *Handle) (constants.TaskStatus, Result) {
		return o.runAnalysis(ctx, h, req, settings)
	})
}

// StartCommit evaluates the safety gate and commits when the verdict is SAFE.
// A WARN verdict completes the task with Result.Pending set; the commit only
// happens after ConfirmCommit.
func (o *Orchestrator) StartCommit(ctx context.Context, req CommitRequest, settings Settings) (*Handle, error) {
	return o.start(ctx, constants.TaskKindCommit, func(ctx context.Context, h *Handle) (constants.TaskStatus, Result) {
		return o.runCommit(ctx, h, req, settings)
	})
}

// ConfirmCommit runs a commit that was held back by the safety gate.
func (o *Orchestrator) ConfirmCommit(ctx context.Context, pending *PendingCommit) (*Handle, error) {
	if pending == nil {
		return nil, aigiterrors.ErrNoPendingCommit
	}
	// Acquire before resolving so a busy rejection leaves pending usable.
	if !o.sem.TryAcquire(1) {
		return nil, aigiterrors.ErrOrchestratorBusy
	}
	if !pending.resolve() {
		o.sem.Release(1)
		return nil, aigiterrors.ErrNoPendingCommit
	}

	return o.launch(ctx, constants.TaskKindConfirm, func(ctx context.Context, h *Handle) (constants.TaskStatus, Result) {
		verdict := pending.Verdict
		res := Result{Kind: constants.TaskKindConfirm, Verdict: &verdict}
		o.notifyStep(h, StepCommit)
		outcome := o.committer.Commit(ctx, pending.Path, pending.Message)
		res.Commit = &outcome
		return commitStatus(outcome), res
	}), nil
}

// DeclineCommit discards a pending commit. The executor is never invoked.
func (o *Orchestrator) DeclineCommit(pending *PendingCommit) domain.CommitOutcome {
	if pending != nil && pending.resolve() {
		o.logger.Info().
			Int("diff_bytes", pending.Verdict.ByteSize).
			Int("threshold_bytes", pending.Verdict.Threshold).
			Msg("large commit declined")
	}
	return domain.Aborted()
}

// Cancel signals h's cancellation token. It is a no-op unless h is running.
func (o *Orchestrator) Cancel(h *Handle) {
	if h == nil {
		return
	}
	if h.requestCancel() {
		o.logger.Debug().Str("task_id", h.ID).Str("kind", string(h.Kind)).Msg("task cancellation requested")
	}
}

type taskFunc func(ctx context.Context, h *Handle) (constants.TaskStatus, Result)

func (o *Orchestrator) start(ctx context.Context, kind constants.TaskKind, fn taskFunc) (*Handle, error) {
	if !o.sem.TryAcquire(1) {
		return nil, aigiterrors.ErrOrchestratorBusy
	}
	return o.launch(ctx, kind, fn), nil
}

// launch runs fn on its own goroutine. The caller must hold the semaphore.
// The terminal event is delivered before the semaphore is released, and the
// semaphore is released before Done is closed, so a follow-up task can start
// as soon as the result is observable but never reports ahead of it.
func (o *Orchestrator) launch(ctx context.Context, kind constants.TaskKind, fn taskFunc) *Handle {
	taskCtx, cancel := context.WithCancel(ctx)
	h := newHandle(o.newID(), kind, o.clock.Now(), cancel)
	log := o.logger.With().Str("task_id", h.ID).Str("kind", string(kind)).Logger()
	if err := h.transition(constants.TaskStatusRunning); err != nil {
		log.Error().Err(err).Msg("task state machine violation")
	}
	log.Debug().Msg("task started")

	go func() {
		status, res := fn(taskCtx, h)
		if !IsValidTransition(constants.TaskStatusRunning, status) {
			log.Error().Str("status", status.String()).Msg("task state machine violation")
			status = constants.TaskStatusFailed
		}
		finished := o.clock.Now()

		log.Info().
			Str("status", status.String()).
			Dur("duration", finished.Sub(h.StartedAt)).
			Msg("task finished")
		o.notifyDone(h, status, res, finished)

		o.sem.Release(1)
		h.finish(status, res, finished)
	}()

	return h
}

func (o *Orchestrator) runGenerate(ctx context.Context, h *Handle, path string, settings Settings) (constants.TaskStatus, Result) {
	res := Result{Kind: constants.TaskKindGenerate}

	o.notifyStep(h, StepDiff)
	diff, err := o.diffs.StagedDiff(ctx, path)
	if err != nil {
		res.Err = err
		return failureStatus(ctx), res
	}
	res.Diff = &diff

	if ctxutil.Canceled(ctx) != nil {
		synth := domain.SynthesisCancel(0)
		res.Synthesis = &synth
		return constants.TaskStatusCancelled, res
	}

	synthesizer, err := o.newSynth(settings.AI)
	if err != nil {
		res.Err = err
		return constants.TaskStatusFailed, res
	}

	req := domain.SynthesisRequest{
		DiffText: diff.Text,
		Model:    settings.AI.Model,
		Timeout:  settings.AI.Timeout,
	}
	if settings.Suggestions > 1 {
		req.Kind = domain.PromptSuggest
		req.Count = min(settings.Suggestions, constants.MaxSuggestions)
	}

	o.notifyStep(h, StepSynthesize)
	synth := synthesizer.Generate(ctx, req)
	res.Synthesis = &synth
	return synthesisStatus(synth), res
}

func (o *Orchestrator) runAnalysis(ctx context.Context, h *Handle, req AnalysisRequest, settings Settings) (constants.TaskStatus, Result) {
	res := Result{Kind: constants.TaskKindAnalyze}

	input := req.Input
	if input == "" && req.Kind == domain.PromptExplain {
		o.notifyStep(h, StepDiff)
		diff, err := o.diffs.StagedDiff(ctx, req.Path)
		if err != nil {
			res.Err = err
			return failureStatus(ctx), res
		}
		res.Diff = &diff
		input = diff.Text
	}

	if ctxutil.Canceled(ctx) != nil {
		synth := domain.SynthesisCancel(0)
		res.Synthesis = &synth
		return constants.TaskStatusCancelled, res
	}

	synthesizer, err := o.newSynth(settings.AI)
	if err != nil {
		res.Err = err
		return constants.TaskStatusFailed, res
	}

	o.notifyStep(h, StepAnalyze)
	synth := synthesizer.Generate(ctx, domain.SynthesisRequest{
		DiffText: input,
		Model:    settings.AI.Model,
		Timeout:  settings.AI.Timeout,
		Kind:     req.Kind,
		Context:  req.Context,
	})
	res.Synthesis = &synth
	return synthesisStatus(synth), res
}

// synthesisStatus maps a synthesis result onto a terminal task status.
func synthesisStatus(synth domain.SynthesisResult) constants.TaskStatus {
	switch synth.Kind {
	case domain.SynthesisOK:
		return constants.TaskStatusCompleted
	case domain.SynthesisCancelled:
		return constants.TaskStatusCancelled
	case domain.SynthesisTimedOut, domain.SynthesisFailed:
		return constants.TaskStatusFailed
	}
	return constants.TaskStatusFailed
}

func (o *Orchestrator) runCommit(ctx context.Context, h *Handle, req CommitRequest, settings Settings) (constants.TaskStatus, Result) {
	res := Result{Kind: constants.TaskKindCommit}

	if strings.TrimSpace(req.Message) == "" {
		// The executor rejects blank messages without touching git.
		outcome := o.committer.Commit(ctx, req.Path, req.Message)
		res.Commit = &outcome
		return commitStatus(outcome), res
	}

	var diff domain.DiffPayload
	if req.Diff != nil {
		diff = *req.Diff
	} else {
		o.notifyStep(h, StepDiff)
		fresh, err := o.diffs.StagedDiff(ctx, req.Path)
		if err != nil {
			res.Err = err
			return failureStatus(ctx), res
		}
		diff = fresh
	}
	res.Diff = &diff

	o.notifyStep(h, StepSafety)
	verdict := safety.EvaluateDiff(diff, settings.ThresholdBytes)
	res.Verdict = &verdict

	if ctxutil.Canceled(ctx) != nil {
		outcome := domain.Aborted()
		res.Commit = &outcome
		return constants.TaskStatusCancelled, res
	}

	if verdict.NeedsConfirmation() {
		o.logger.Warn().
			Int("diff_bytes", verdict.ByteSize).
			Int("threshold_bytes", verdict.Threshold).
			Msg("staged diff exceeds safety threshold, confirmation required")
		res.Pending = &PendingCommit{
			Path:    req.Path,
			Message: req.Message,
			Diff:    diff,
			Verdict: verdict,
		}
		return constants.TaskStatusCompleted, res
	}

	o.notifyStep(h, StepCommit)
	outcome := o.committer.Commit(ctx, req.Path, req.Message)
	res.Commit = &outcome
	return commitStatus(outcome), res
}

// commitStatus maps a commit outcome onto a terminal task status.
func commitStatus(outcome domain.CommitOutcome) constants.TaskStatus {
	switch outcome.Kind {
	case domain.CommitCommitted:
		return constants.TaskStatusCompleted
	case domain.CommitAborted:
		return constants.TaskStatusCancelled
	case domain.CommitRejected:
		return constants.TaskStatusFailed
	}
	return constants.TaskStatusFailed
}

// failureStatus classifies a step error by whether the task was canceled.
func failureStatus(ctx context.Context) constants.TaskStatus {
	if ctxutil.Why(ctx) == ctxutil.ByCaller {
		return constants.TaskStatusCancelled
	}
	return constants.TaskStatusFailed
}
