package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/errors"
	"github.com/mrz1836/aigit/internal/task"
)

// analysisResponse is the JSON form of the explain, review and history commands.
type analysisResponse struct {
	Kind     domain.PromptKind      `json:"kind"`
	Text     string                 `json:"text"`
	File     string                 `json:"file,omitempty"`
	Commits  []domain.CommitSummary `json:"commits,omitempty"`
	Attempts int                    `json:"attempts"`
	Backend  string                 `json:"backend"`
	Model    string                 `json:"model,omitempty"`
}

// AddExplainCommand adds the explain command to the root command.
func AddExplainCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(&cobra.Command{
		Use:   "explain [path]",
		Short: "Explain the staged changes in plain language",
		Long: `Ask the model what the staged diff does and print its explanation.
Nothing is committed.

Examples:
  aigit explain
  aigit explain --mock --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, path, err := prepare(cmd, flags, args)
			if err != nil {
				return err
			}
			res, err := a.analyze(cmd.Context(), task.AnalysisRequest{Path: path, Kind: domain.PromptExplain})
			if err != nil {
				return a.fail(err)
			}
			return a.reportAnalysis(analysisResponse{Kind: domain.PromptExplain}, res, "Nothing staged")
		},
	})
}

// AddReviewCommand adds the review command to the root command.
func AddReviewCommand(root *cobra.Command, flags *GlobalFlags) {
	var focus string

	cmd := &cobra.Command{
		Use:   "review <file>",
		Short: "Review one file for bugs and risky code",
		Long: fmt.Sprintf(`Send one file to the model for a code review and print its findings.
Files larger than %d bytes are refused.

Examples:
  aigit review internal/git/runner.go
  aigit review main.go --focus "error handling"`, constants.MaxReviewFileBytes),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := prepare(cmd, flags, nil)
			if err != nil {
				return err
			}
			content, err := readReviewFile(args[0])
			if err != nil {
				return a.fail(err)
			}

			reviewContext := "File: " + args[0]
			if focus != "" {
				reviewContext += "\nFocus: " + focus
			}
			res, err := a.analyze(cmd.Context(), task.AnalysisRequest{
				Kind:    domain.PromptReview,
				Input:   content,
				Context: reviewContext,
			})
			if err != nil {
				return a.fail(err)
			}
			return a.reportAnalysis(analysisResponse{Kind: domain.PromptReview, File: args[0]}, res, "Nothing to review")
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "what the review should concentrate on")
	root.AddCommand(cmd)
}

// readReviewFile reads at most MaxReviewFileBytes and refuses anything larger.
func readReviewFile(name string) (string, error) {
	f, err := os.Open(name) //nolint:gosec // user-selected file
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrInvalidArgument, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, constants.MaxReviewFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", name, err)
	}
	if len(data) > constants.MaxReviewFileBytes {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", errors.ErrInvalidArgument, name, constants.MaxReviewFileBytes)
	}
	return string(data), nil
}

// AddHistoryCommand adds the history command to the root command.
func AddHistoryCommand(root *cobra.Command, flags *GlobalFlags) {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Summarize the recent commit history",
		Long: `Read the most recent commits and ask the model for a short summary of
what has been happening in the repository.

Examples:
  aigit history
  aigit history --limit 20 --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, path, err := prepare(cmd, flags, args)
			if err != nil {
				return err
			}
			if limit < 1 || limit > constants.MaxHistoryLimit {
				return a.fail(fmt.Errorf("%w: --limit must be between 1 and %d, got %d",
					errors.ErrInvalidArgument, constants.MaxHistoryLimit, limit))
			}

			ctx := cmd.Context()
			commits, err := a.inspector.RecentCommits(ctx, path, limit)
			if err != nil {
				return a.fail(err)
			}
			resp := analysisResponse{Kind: domain.PromptHistory, Commits: commits}
			if len(commits) == 0 {
				return a.reportAnalysis(resp, task.Result{}, "No commits yet")
			}

			res, err := a.analyze(ctx, task.AnalysisRequest{
				Kind:    domain.PromptHistory,
				Input:   formatHistory(commits),
				Context: fmt.Sprintf("The %d most recent commits, newest first:", len(commits)),
			})
			if err != nil {
				return a.fail(err)
			}
			return a.reportAnalysis(resp, res, "No commits yet")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultHistoryLimit, "number of commits to read")
	root.AddCommand(cmd)
}

func formatHistory(commits []domain.CommitSummary) string {
	var sb strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&sb, "- %s (by %s, %s)\n", c.Subject, c.Author, c.Date)
	}
	return sb.String()
}

// reportAnalysis prints the model's answer, or empty when there was nothing to analyze.
func (a *app) reportAnalysis(resp analysisResponse, res task.Result, empty string) error {
	if res.Synthesis != nil {
		resp.Text = res.Synthesis.Message
		resp.Attempts = res.Synthesis.Attempts
	}

	if a.format == OutputJSON {
		resp.Backend = a.backendName()
		if !a.cfg.AI.MockMode {
			resp.Model = a.cfg.AI.Model
		}
		return a.out.JSON(resp)
	}

	if resp.Text == "" {
		a.out.Info(empty)
		return nil
	}
	_, _ = fmt.Fprintln(a.w, resp.Text)
	return nil
}
