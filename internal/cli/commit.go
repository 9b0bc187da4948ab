package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/errors"
	"github.com/mrz1836/aigit/internal/task"
	"github.com/mrz1836/aigit/internal/tui"
)

// confirmLargeCommit asks before committing a diff above the threshold.
// Swappable in tests.
//
//nolint:gochecknoglobals // test seam
var confirmLargeCommit = tui.Confirm

// chooseSuggestion asks which generated candidate to commit. Swappable in tests.
//
//nolint:gochecknoglobals // test seam
var chooseSuggestion = tui.Select

// commitOptions holds flags specific to the commit command.
type commitOptions struct {
	message     string
	hasMessage  bool
	yes         bool
	suggestions int
}

// AddCommitCommand adds the commit command to the root command.
func AddCommitCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newCommitCmd(flags))
}

func newCommitCmd(flags *GlobalFlags) *cobra.Command {
	opts := &commitOptions{}

	cmd := &cobra.Command{
		Use:   "commit [path]",
		Short: "Commit the staged changes",
		Long: `Commit the staged changes. Without -m the message is generated from the
staged diff first.

With --suggestions N the model proposes N candidates and you pick one. With
--yes or --output json the first candidate is used.

A staged diff larger than safety.threshold_bytes needs confirmation. You are
asked interactively; pass --yes to skip the prompt in scripts.

Examples:
  aigit commit
  aigit commit -m "fix: handle empty input"
  aigit commit --mock --yes
  aigit commit --suggestions 3
  aigit commit --threshold 500000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasMessage = cmd.Flags().Changed("message")
			return runCommit(cmd, flags, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "use this commit message instead of generating one")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "commit large diffs without asking")
	addSuggestionsFlag(cmd, &opts.suggestions)

	return cmd
}

// commitResponse is the JSON form of the commit command.
type commitResponse struct {
	Outcome domain.CommitOutcome  `json:"outcome"`
	Message string                `json:"message"`
	Verdict *domain.SafetyVerdict `json:"verdict,omitempty"`
}

func runCommit(cmd *cobra.Command, flags *GlobalFlags, args []string, opts *commitOptions) error {
	a, path, err := prepare(cmd, flags, args)
	if err != nil {
		return err
	}
	if err = a.applySuggestions(opts.suggestions); err != nil {
		return a.fail(err)
	}
	ctx := cmd.Context()

	req := task.CommitRequest{Path: path, Message: opts.message}
	if !opts.hasMessage {
		gen, genErr := a.generate(ctx, path)
		if genErr != nil {
			return a.fail(genErr)
		}
		if gen.Diff != nil && gen.Diff.IsEmpty() {
			return a.fail(fmt.Errorf("%w: nothing staged", errors.ErrCommitRejected))
		}
		req.Message, err = a.pickMessage(gen.Synthesis, opts.yes)
		if err != nil {
			return a.fail(err)
		}
		req.Diff = gen.Diff
		if a.format != OutputJSON {
			a.out.Info("Message: " + firstLine(req.Message))
		}
	}

	res, err := a.runTask(ctx, "Committing", func(ctx context.Context) (*task.Handle, error) {
		return a.orch.StartCommit(ctx, req, a.settings)
	})
	if err != nil {
		return a.fail(err)
	}
	if res.Err != nil {
		return a.fail(res.Err)
	}

	var outcome domain.CommitOutcome
	switch {
	case res.Pending != nil:
		outcome, err = a.resolvePending(ctx, res.Pending, opts.yes)
		if err != nil {
			return a.fail(err)
		}
	case res.Commit != nil:
		outcome = *res.Commit
	default:
		return a.fail(fmt.Errorf("%w: no outcome", errors.ErrCommitRejected))
	}

	return a.reportCommit(outcome, req.Message, res.Verdict)
}

// pickMessage returns the message to commit. Several candidates are offered
// for selection unless --yes or JSON output asks for no prompts, in which case
// the first one wins.
func (a *app) pickMessage(synth *domain.SynthesisResult, yes bool) (string, error) {
	if len(synth.Suggestions) < 2 || yes || a.format == OutputJSON {
		return synth.Message, nil
	}

	options := make([]tui.Option, 0, len(synth.Suggestions))
	for _, s := range synth.Suggestions {
		options = append(options, tui.Option{Label: s.Header(), Description: firstLine(s.Body)})
	}
	i, err := chooseSuggestion("Pick a commit message", options)
	if err != nil {
		if stderrors.Is(err, errors.ErrMenuCanceled) {
			return "", fmt.Errorf("%w: %w", errors.ErrCommitAborted, err)
		}
		return "", err
	}
	if i < 0 || i >= len(synth.Suggestions) {
		return "", fmt.Errorf("%w: selection %d out of range", errors.ErrInvalidArgument, i)
	}
	return synth.Suggestions[i].Message(), nil
}

// resolvePending confirms or declines a commit held back by the safety gate.
// Every path resolves pending exactly once.
func (a *app) resolvePending(ctx context.Context, pending *task.PendingCommit, yes bool) (domain.CommitOutcome, error) {
	summary := tui.VerdictSummary(pending.Verdict)

	if !yes {
		if a.format == OutputJSON {
			a.orch.DeclineCommit(pending)
			return domain.CommitOutcome{}, fmt.Errorf("%w: %s", errors.ErrConfirmationRequired, summary)
		}

		a.out.Warning(summary)
		ok, err := confirmLargeCommit("Commit this large diff?", summary, false)
		if err != nil {
			a.orch.DeclineCommit(pending)
			return domain.CommitOutcome{}, err
		}
		if !ok {
			return a.orch.DeclineCommit(pending), nil
		}
	}

	res, err := a.runTask(ctx, "Committing", func(ctx context.Context) (*task.Handle, error) {
		return a.orch.ConfirmCommit(ctx, pending)
	})
	if err != nil {
		return domain.CommitOutcome{}, err
	}
	if res.Commit == nil {
		return domain.CommitOutcome{}, fmt.Errorf("%w: no outcome", errors.ErrCommitRejected)
	}
	return *res.Commit, nil
}

// reportCommit prints the outcome. Anything but a commit is returned as an error.
func (a *app) reportCommit(outcome domain.CommitOutcome, message string, verdict *domain.SafetyVerdict) error {
	cerr := commitError(outcome)

	if a.format == OutputJSON {
		if err := a.out.JSON(commitResponse{Outcome: outcome, Message: message, Verdict: verdict}); err != nil {
			return err
		}
		if cerr != nil {
			return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, cerr)
		}
		return nil
	}

	if cerr != nil {
		return cerr
	}
	if outcome.Summary != "" {
		a.out.Success(outcome.Summary)
	} else {
		a.out.Success("Committed " + outcome.Hash)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
