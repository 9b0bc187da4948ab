package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/tui"
)

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newStatusCmd(flags))
}

func newStatusCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status [path]",
		Short: "Show the current branch and changed files",
		Long: `Show the current branch and every staged, unstaged and untracked path.

A path that is both staged and modified again appears twice.

Examples:
  aigit status
  aigit status ../other-repo
  aigit status --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, flags, args)
		},
	}
}

// statusResponse is the JSON form of the status command.
type statusResponse struct {
	Path   string                   `json:"path"`
	Branch string                   `json:"branch"`
	Files  []domain.FileStatusEntry `json:"files"`
}

func runStatus(cmd *cobra.Command, flags *GlobalFlags, args []string) error {
	a, path, err := prepare(cmd, flags, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	entries, err := a.inspector.ListStatus(ctx, path)
	if err != nil {
		return a.fail(err)
	}
	branch, err := a.inspector.CurrentBranch(ctx, path)
	if err != nil {
		return a.fail(err)
	}

	if a.format == OutputJSON {
		return a.out.JSON(statusResponse{Path: path, Branch: branch, Files: entries})
	}

	a.out.Info("On branch " + branch)
	if len(entries) == 0 {
		a.out.Success("Working tree clean")
		return nil
	}
	a.out.Table([]string{"STATE", "PATH"}, tui.StatusRows(entries))
	return nil
}
