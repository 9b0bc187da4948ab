package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/git"
	"github.com/mrz1836/aigit/internal/safety"
	"github.com/mrz1836/aigit/internal/tui"
)

// AddDiffCommand adds the diff command to the root command.
func AddDiffCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newDiffCmd(flags))
}

func newDiffCmd(flags *GlobalFlags) *cobra.Command {
	var statOnly bool

	cmd := &cobra.Command{
		Use:   "diff [path]",
		Short: "Show the staged diff and its safety verdict",
		Long: `Show the staged diff exactly as git prints it, followed by a per-file
summary and the large-diff verdict that a commit would get.

Examples:
  aigit diff
  aigit diff --stat
  aigit diff --threshold 100000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, flags, args, statOnly)
		},
	}

	cmd.Flags().BoolVar(&statOnly, "stat", false, "show only the summary")

	return cmd
}

// diffFileResponse is one file in the JSON form of the diff command.
type diffFileResponse struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// diffResponse is the JSON form of the diff command.
type diffResponse struct {
	Path      string               `json:"path"`
	ByteSize  int                  `json:"byte_size"`
	Additions int                  `json:"additions"`
	Deletions int                  `json:"deletions"`
	Files     []diffFileResponse   `json:"files"`
	Verdict   domain.SafetyVerdict `json:"verdict"`
	Diff      string               `json:"diff,omitempty"`
}

func runDiff(cmd *cobra.Command, flags *GlobalFlags, args []string, statOnly bool) error {
	a, path, err := prepare(cmd, flags, args)
	if err != nil {
		return err
	}

	diff, err := a.inspector.StagedDiff(cmd.Context(), path)
	if err != nil {
		return a.fail(err)
	}
	stats := git.DiffStats(diff.Text)
	verdict := safety.EvaluateDiff(diff, a.settings.ThresholdBytes)

	if a.format == OutputJSON {
		resp := diffResponse{
			Path:      path,
			ByteSize:  diff.ByteSize,
			Additions: stats.Additions,
			Deletions: stats.Deletions,
			Files:     make([]diffFileResponse, 0, stats.FileCount()),
			Verdict:   verdict,
		}
		for _, f := range stats.Files {
			resp.Files = append(resp.Files, diffFileResponse(f))
		}
		if !statOnly {
			resp.Diff = diff.Text
		}
		return a.out.JSON(resp)
	}

	if diff.IsEmpty() {
		a.out.Info("Nothing staged")
		return nil
	}

	if !statOnly {
		_, _ = fmt.Fprint(a.w, diff.Text)
	}
	rows := make([][]string, 0, stats.FileCount())
	for _, f := range stats.Files {
		rows = append(rows, []string{f.Path, fmt.Sprintf("+%d", f.Additions), fmt.Sprintf("-%d", f.Deletions)})
	}
	a.out.Table([]string{"FILE", "ADDED", "DELETED"}, rows)
	a.out.Info(stats.FormatCompact())

	if verdict.NeedsConfirmation() {
		a.out.Warning(tui.VerdictSummary(verdict))
	} else {
		a.out.Info(tui.VerdictSummary(verdict))
	}
	return nil
}
