package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/aigit/internal/ai"
	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/errors"
	"github.com/mrz1836/aigit/internal/signal"
	"github.com/mrz1836/aigit/internal/task"
)

// startFunc starts one orchestrator task under ctx.
type startFunc func(ctx context.Context) (*task.Handle, error)

// runTask starts a task with a spinner and waits for its result. SIGINT or
// SIGTERM cancels the task, which then finishes as cancelled instead of
// leaving the process mid-commit.
func (a *app) runTask(ctx context.Context, label string, start startFunc) (task.Result, error) {
	sig := signal.NewHandler(ctx, signal.WithOnInterrupt(func() {
		a.logger.Warn().Msg("interrupt received, cancelling")
	}))
	defer sig.Stop()

	stop := a.startSpinner(ctx, label)
	defer stop()

	h, err := start(sig.Context())
	if err != nil {
		return task.Result{}, err
	}
	res, err := h.Wait(ctx)
	if err != nil {
		a.orch.Cancel(h)
		return task.Result{}, err
	}
	return res, nil
}

// generate runs a generate task and converts any non-OK synthesis into an error.
func (a *app) generate(ctx context.Context, path string) (task.Result, error) {
	res, err := a.runTask(ctx, "Generating commit message", func(ctx context.Context) (*task.Handle, error) {
		return a.orch.StartGenerate(ctx, path, a.settings)
	})
	if err != nil {
		return res, err
	}
	return res, synthesisError(res)
}

// analyze runs an analysis task and converts any non-OK synthesis into an error.
func (a *app) analyze(ctx context.Context, req task.AnalysisRequest) (task.Result, error) {
	res, err := a.runTask(ctx, "Waiting for the model", func(ctx context.Context) (*task.Handle, error) {
		return a.orch.StartAnalysis(ctx, req, a.settings)
	})
	if err != nil {
		return res, err
	}
	return res, synthesisError(res)
}

// addSuggestionsFlag registers --suggestions on a command that generates messages.
func addSuggestionsFlag(cmd *cobra.Command, n *int) {
	cmd.Flags().IntVar(n, "suggestions", 1,
		fmt.Sprintf("number of candidate messages to ask for (1-%d)", constants.MaxSuggestions))
}

// applySuggestions validates the --suggestions value and stores it in the task settings.
func (a *app) applySuggestions(n int) error {
	if n < 1 || n > constants.MaxSuggestions {
		return fmt.Errorf("%w: --suggestions must be between 1 and %d, got %d",
			errors.ErrInvalidArgument, constants.MaxSuggestions, n)
	}
	a.settings.Suggestions = n
	return nil
}

// synthesisError maps a generate result onto the error sentinels.
func synthesisError(res task.Result) error {
	if res.Err != nil {
		return res.Err
	}
	s := res.Synthesis
	if s == nil {
		return fmt.Errorf("%w: no result", errors.ErrSynthesisFailed)
	}
	switch s.Kind {
	case domain.SynthesisOK:
		return nil
	case domain.SynthesisTimedOut:
		return fmt.Errorf("%w after %d attempt(s)", errors.ErrSynthesisTimeout, s.Attempts)
	case domain.SynthesisCancelled:
		return errors.ErrOperationCanceled
	case domain.SynthesisFailed:
		if s.Reason == ai.ReasonEmptyResponse {
			return errors.ErrAIEmptyResponse
		}
		return fmt.Errorf("%w: %s", errors.ErrSynthesisFailed, s.Reason)
	}
	return fmt.Errorf("%w: unknown result %q", errors.ErrSynthesisFailed, s.Kind)
}

// commitError maps a non-committed outcome onto the error sentinels.
func commitError(outcome domain.CommitOutcome) error {
	switch outcome.Kind {
	case domain.CommitCommitted:
		return nil
	case domain.CommitRejected:
		return fmt.Errorf("%w: %s", errors.ErrCommitRejected, outcome.Reason)
	case domain.CommitAborted:
		return errors.ErrCommitAborted
	}
	return fmt.Errorf("%w: unknown outcome %q", errors.ErrCommitRejected, outcome.Kind)
}
