package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/git"
)

// AddGenerateCommand adds the generate command to the root command.
func AddGenerateCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newGenerateCmd(flags))
}

func newGenerateCmd(flags *GlobalFlags) *cobra.Command {
	var suggestions int

	cmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Generate a commit message for the staged changes",
		Long: `Generate a conventional commit message from the staged diff and print it.
Nothing is committed.

The message is printed on its own so it can be piped, for example into
'git commit -F -'. With --suggestions N the model proposes N candidates,
printed as a numbered list. Press Ctrl+C to cancel a slow model.

Examples:
  aigit generate
  aigit generate --mock
  aigit generate --model llama3.2 --timeout 60s
  aigit generate --suggestions 3
  aigit generate --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags, args, suggestions)
		},
	}

	addSuggestionsFlag(cmd, &suggestions)
	return cmd
}

// generateResponse is the JSON form of the generate command.
type generateResponse struct {
	Message     string              `json:"message"`
	Suggestions []domain.Suggestion `json:"suggestions,omitempty"`
	Attempts    int                 `json:"attempts"`
	Backend     string              `json:"backend"`
	Model       string              `json:"model,omitempty"`
	DiffBytes   int                 `json:"diff_bytes"`
	Files       int                 `json:"files"`
}

func runGenerate(cmd *cobra.Command, flags *GlobalFlags, args []string, suggestions int) error {
	a, path, err := prepare(cmd, flags, args)
	if err != nil {
		return err
	}
	if err = a.applySuggestions(suggestions); err != nil {
		return a.fail(err)
	}

	res, err := a.generate(cmd.Context(), path)
	if err != nil {
		return a.fail(err)
	}
	message := res.Synthesis.Message

	if a.format == OutputJSON {
		resp := generateResponse{
			Message:     message,
			Suggestions: res.Synthesis.Suggestions,
			Attempts:    res.Synthesis.Attempts,
			Backend:     a.backendName(),
		}
		if !a.cfg.AI.MockMode {
			resp.Model = a.cfg.AI.Model
		}
		if res.Diff != nil {
			resp.DiffBytes = res.Diff.ByteSize
			resp.Files = git.DiffStats(res.Diff.Text).FileCount()
		}
		return a.out.JSON(resp)
	}

	if message == "" {
		a.out.Info("Nothing staged")
		return nil
	}
	if len(res.Synthesis.Suggestions) > 1 {
		printSuggestions(a, res.Synthesis.Suggestions)
		return nil
	}
	_, _ = fmt.Fprintln(a.w, message)
	return nil
}

// printSuggestions writes the candidates as a numbered list with indented bodies.
func printSuggestions(a *app, suggestions []domain.Suggestion) {
	for i, s := range suggestions {
		if i > 0 {
			_, _ = fmt.Fprintln(a.w)
		}
		_, _ = fmt.Fprintf(a.w, "%d. %s\n", i+1, s.Header())
		if s.Body == "" {
			continue
		}
		for _, line := range strings.Split(s.Body, "\n") {
			_, _ = fmt.Fprintln(a.w, strings.TrimRight("   "+line, " "))
		}
	}
}

// backendName names the backend the configuration selects.
func (a *app) backendName() string {
	if a.cfg.AI.MockMode {
		return "mock"
	}
	return "ollama"
}
