package cli

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/aigit/internal/config"
	"github.com/mrz1836/aigit/internal/logging"
	"github.com/mrz1836/aigit/internal/tui"
)

// AddConfigCommand adds the config command and its subcommands.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change aigit configuration",
		Long: `Show or change aigit configuration.

Configuration is layered, highest precedence first:
  - command-line flags (--mock, --model, --host, --timeout, --threshold)
  - AIGIT_* environment variables (plus AI_MOCK_MODE and GIT_EXECUTABLE)
  - project config (.aigit/config.yaml)
  - global config (~/.aigit/config.yaml)
  - built-in defaults`,
	}

	cmd.AddCommand(newConfigShowCmd(flags))
	cmd.AddCommand(newConfigSetCmd(flags))
	root.AddCommand(cmd)
}

func newConfigShowCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the effective configuration after every layer is applied.
Credentials embedded in ai.host are masked.

Examples:
  aigit config show
  aigit config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, flags)
		},
	}
}

func newConfigSetCmd(flags *GlobalFlags) *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value",
		Long: `Set one configuration value and save it. The value is validated before
the file is written.

Keys: safety.threshold_bytes, ai.host, ai.model, ai.timeout, ai.max_attempts,
ai.mock_mode, ai.temperature, git.executable

Examples:
  aigit config set ai.model llama3.2
  aigit config set ai.timeout 60s
  aigit config set --project safety.threshold_bytes 500000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, flags, args[0], args[1], project)
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "write .aigit/config.yaml instead of the global file")

	return cmd
}

// configEntry is one key of the effective configuration.
type configEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// configEntries flattens cfg in SettableKeys order.
func configEntries(cfg *config.Config) []configEntry {
	values := map[string]string{
		"safety.threshold_bytes": strconv.Itoa(cfg.Safety.ThresholdBytes),
		"ai.host":                logging.FilterSensitiveValue(cfg.AI.Host),
		"ai.model":               cfg.AI.Model,
		"ai.timeout":             cfg.AI.Timeout.String(),
		"ai.max_attempts":        strconv.Itoa(cfg.AI.MaxAttempts),
		"ai.mock_mode":           strconv.FormatBool(cfg.AI.MockMode),
		"ai.temperature":         strconv.FormatFloat(cfg.AI.Temperature, 'g', -1, 64),
		"git.executable":         cfg.Git.Executable,
	}

	entries := make([]configEntry, 0, len(config.SettableKeys))
	for _, key := range config.SettableKeys {
		entries = append(entries, configEntry{Key: key, Value: values[key]})
	}
	return entries
}

func runConfigShow(cmd *cobra.Command, flags *GlobalFlags) error {
	w := cmd.OutOrStdout()
	cfg, err := config.LoadWithOverrides(GetLogger().WithContext(cmd.Context()), flags.Overrides())
	if err != nil {
		return failEarly(w, flags, err)
	}

	entries := configEntries(cfg)
	out := tui.NewOutput(w, flags.Output)
	if flags.Output == OutputJSON {
		return out.JSON(entries)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Key, e.Value})
	}
	out.Table([]string{"KEY", "VALUE"}, rows)
	return nil
}

func runConfigSet(cmd *cobra.Command, flags *GlobalFlags, key, value string, project bool) error {
	w := cmd.OutOrStdout()

	path, err := configTargetPath(project)
	if err != nil {
		return failEarly(w, flags, err)
	}

	cfg, err := config.SetValue(cmd.Context(), path, key, value)
	if err != nil {
		return failEarly(w, flags, err)
	}

	logger := GetLogger()
	logger.Info().
		Str("key", key).
		Str("value", logging.SafeValue(key, value)).
		Str("path", path).
		Msg("configuration updated")

	out := tui.NewOutput(w, flags.Output)
	for _, e := range configEntries(cfg) {
		if e.Key == key {
			out.Success("Set " + e.Key + " = " + e.Value + " in " + path)
		}
	}
	return nil
}

// configTargetPath returns the file config set writes to.
func configTargetPath(project bool) (string, error) {
	if project {
		return filepath.Abs(config.ProjectConfigPath())
	}
	return config.GlobalConfigPath()
}
