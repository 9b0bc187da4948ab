package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/aigit/internal/ai"
	"github.com/mrz1836/aigit/internal/config"
	"github.com/mrz1836/aigit/internal/errors"
	"github.com/mrz1836/aigit/internal/git"
	"github.com/mrz1836/aigit/internal/task"
	"github.com/mrz1836/aigit/internal/tui"
)

// app bundles the configuration and pipeline components one command runs with.
type app struct {
	cfg       *config.Config
	settings  task.Settings
	out       tui.Output
	w         io.Writer
	format    string
	logger    zerolog.Logger
	runner    *git.Runner
	inspector *git.Inspector
	executor  *git.Executor
	orch      *task.Orchestrator

	mu      sync.Mutex
	spinner tui.Spinner
}

// newApp loads configuration with the flag overrides applied and wires the
// inspector, executor and orchestrator.
func newApp(ctx context.Context, w io.Writer, flags *GlobalFlags) (*app, error) {
	logger := GetLogger()

	cfg, err := config.LoadWithOverrides(logger.WithContext(ctx), flags.Overrides())
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		settings: task.SettingsFromConfig(cfg),
		out:      tui.NewOutput(w, flags.Output),
		w:        w,
		format:   flags.Output,
		logger:   logger,
		runner:   git.NewRunner(cfg.Git.Executable),
	}
	a.inspector = git.NewInspector(a.runner, git.WithInspectorLogger(logger))
	a.executor = git.NewExecutor(a.runner, git.WithExecutorLogger(logger))
	a.orch = task.NewOrchestrator(a.inspector, a.synthesizerFactory(), a.executor,
		task.WithLogger(logger),
		task.WithNotifier(a.onEvent),
	)
	return a, nil
}

// synthesizerFactory builds a synthesizer per generate task from the task's
// own AI settings.
func (a *app) synthesizerFactory() task.SynthesizerFactory {
	return func(aiCfg config.AIConfig) (task.MessageSynthesizer, error) {
		cfg := *a.cfg
		cfg.AI = aiCfg
		synth, err := ai.NewSynthesizerFromConfig(&cfg, ai.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		return synth, nil
	}
}

// onEvent logs task progress and relabels the active spinner.
func (a *app) onEvent(e task.Event) {
	a.logger.Debug().
		Str("task_id", e.TaskID).
		Str("kind", string(e.Kind)).
		Str("status", e.Status.String()).
		Str("step", e.Step).
		Msg("task progress")

	if e.Step == "" {
		return
	}
	a.mu.Lock()
	s := a.spinner
	a.mu.Unlock()
	if s != nil {
		s.Update(stepLabel(e.Step))
	}
}

// startSpinner shows msg until the returned stop func is called.
func (a *app) startSpinner(ctx context.Context, msg string) func() {
	s := a.out.Spinner(ctx, msg)
	a.mu.Lock()
	a.spinner = s
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		a.spinner = nil
		a.mu.Unlock()
		s.Stop()
	}
}

func stepLabel(step string) string {
	switch step {
	case task.StepDiff:
		return "Reading staged changes"
	case task.StepSynthesize:
		return "Generating commit message"
	case task.StepAnalyze:
		return "Waiting for the model"
	case task.StepSafety:
		return "Checking diff size"
	case task.StepCommit:
		return "Committing"
	default:
		return step
	}
}

// fail reports err in the active format. In JSON mode the error is written
// to the output and wrapped with ErrJSONErrorOutput so Execute does not
// print it a second time.
func (a *app) fail(err error) error {
	if err == nil {
		return nil
	}
	if a.format == OutputJSON {
		a.out.Error(err)
		return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, err)
	}
	return err
}

// failEarly reports an error raised before an app exists.
func failEarly(w io.Writer, flags *GlobalFlags, err error) error {
	if flags.Output == OutputJSON {
		tui.NewJSONOutput(w).Error(err)
		return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, err)
	}
	return err
}

// repoPath resolves the optional [path] argument to an absolute directory.
func repoPath(args []string) (string, error) {
	p := "."
	if len(args) > 0 && args[0] != "" {
		p = args[0]
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", p, err)
	}
	return abs, nil
}

// prepare resolves the path argument and builds the app for a command.
func prepare(cmd *cobra.Command, flags *GlobalFlags, args []string) (*app, string, error) {
	w := cmd.OutOrStdout()
	path, err := repoPath(args)
	if err != nil {
		return nil, "", failEarly(w, flags, err)
	}
	a, err := newApp(cmd.Context(), w, flags)
	if err != nil {
		return nil, "", failEarly(w, flags, err)
	}
	return a, path, nil
}
