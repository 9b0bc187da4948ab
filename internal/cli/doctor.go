package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/aigit/internal/ai"
	"github.com/mrz1836/aigit/internal/errors"
	"github.com/mrz1836/aigit/internal/logging"
)

// doctorHTTPTimeout bounds the backend health check.
const doctorHTTPTimeout = 5 * time.Second

// Check states reported by doctor.
const (
	checkOK      = "ok"
	checkWarn    = "warn"
	checkFail    = "fail"
	checkSkipped = "skipped"
)

// AddDoctorCommand adds the doctor command to the root command.
func AddDoctorCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newDoctorCmd(flags))
}

func newDoctorCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check git and the AI backend",
		Long: `Check that git runs, that the current directory is a repository, and that
the Ollama server is reachable with the configured model installed.

The backend check is skipped in mock mode.

Examples:
  aigit doctor
  aigit doctor --host http://gpu-box:11434`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}
}

// checkResult is one row of the doctor report.
type checkResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

func runDoctor(cmd *cobra.Command, flags *GlobalFlags) error {
	a, path, err := prepare(cmd, flags, nil)
	if err != nil {
		return err
	}

	results := a.runChecks(cmd.Context(), path)

	failed := 0
	for _, r := range results {
		if r.Status == checkFail {
			failed++
		}
	}

	if a.format == OutputJSON {
		if err := a.out.JSON(results); err != nil {
			return err
		}
	} else {
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{r.Name, r.Status, r.Detail})
		}
		a.out.Table([]string{"CHECK", "STATUS", "DETAIL"}, rows)
	}

	if failed > 0 {
		err := fmt.Errorf("%w: %d failed", errors.ErrDoctorChecksFailed, failed)
		if a.format == OutputJSON {
			return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, err)
		}
		return err
	}
	if a.format != OutputJSON {
		a.out.Success("All checks passed")
	}
	return nil
}

// runChecks runs every check concurrently. Each check records its own
// result, so the group never returns an error.
func (a *app) runChecks(ctx context.Context, path string) []checkResult {
	results := make([]checkResult, 3)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results[0] = a.checkGit(gctx)
		return nil
	})
	g.Go(func() error {
		results[1] = a.checkRepository(gctx, path)
		return nil
	})
	g.Go(func() error {
		results[2] = a.checkBackend(gctx)
		return nil
	})
	_ = g.Wait()

	return results
}

func (a *app) checkGit(ctx context.Context) checkResult {
	r := checkResult{Name: "git"}
	version, err := a.runner.Version(ctx)
	if err != nil {
		r.Status, r.Detail = checkFail, errors.UserMessage(err)
		if r.Detail == "" {
			r.Detail = err.Error()
		}
		return r
	}
	r.Status, r.Detail = checkOK, strings.TrimPrefix(version, "git version ")
	return r
}

func (a *app) checkRepository(ctx context.Context, path string) checkResult {
	r := checkResult{Name: "repository"}
	if !a.inspector.IsRepository(ctx, path) {
		// Not fatal: commands accept a path argument.
		r.Status, r.Detail = checkWarn, "current directory is not a git repository"
		return r
	}
	branch, err := a.inspector.CurrentBranch(ctx, path)
	if err != nil {
		r.Status, r.Detail = checkWarn, err.Error()
		return r
	}
	r.Status, r.Detail = checkOK, "on branch "+branch
	return r
}

func (a *app) checkBackend(ctx context.Context) checkResult {
	r := checkResult{Name: "ai backend"}
	if a.cfg.AI.MockMode {
		r.Status, r.Detail = checkSkipped, "mock mode"
		return r
	}

	host := logging.FilterSensitiveValue(a.cfg.AI.Host)
	backend := ai.NewOllamaBackend(a.cfg.AI.Host, &http.Client{Timeout: doctorHTTPTimeout})
	check, err := backend.Check(ctx, a.cfg.AI.Model)
	if err != nil {
		a.logger.Debug().Err(err).Str("host", host).Msg("backend check failed")
		r.Status, r.Detail = checkFail, "cannot reach "+host
		return r
	}
	if !check.ModelPresent {
		r.Status = checkFail
		r.Detail = fmt.Sprintf("%s reachable but model %q is not installed (ollama pull %s)", host, a.cfg.AI.Model, a.cfg.AI.Model)
		return r
	}
	r.Status, r.Detail = checkOK, fmt.Sprintf("%s serving %s", host, a.cfg.AI.Model)
	return r
}
