// Package cli provides the command-line interface for aigit.
package cli

import (
	stderrors "errors"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/aigit/internal/config"
	"github.com/mrz1836/aigit/internal/errors"
	"github.com/mrz1836/aigit/internal/tui"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input.
	ExitInvalidInput = 2
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = tui.FormatText
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = tui.FormatJSON
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool

	// Mock selects the offline message backend.
	Mock bool
	// Model overrides ai.model.
	Model string
	// Host overrides ai.host.
	Host string
	// Timeout overrides ai.timeout.
	Timeout time.Duration
	// Threshold overrides safety.threshold_bytes.
	Threshold int
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	pf.BoolVar(&flags.Mock, "mock", false, "use the offline mock backend instead of Ollama")
	pf.StringVar(&flags.Model, "model", "", "Ollama model (overrides ai.model)")
	pf.StringVar(&flags.Host, "host", "", "Ollama base URL (overrides ai.host)")
	pf.DurationVar(&flags.Timeout, "timeout", 0, "message generation deadline (overrides ai.timeout)")
	pf.IntVar(&flags.Threshold, "threshold", 0, "large-diff threshold in bytes (overrides safety.threshold_bytes)")
}

// BindGlobalFlags binds global flags to Viper for environment variable
// support. The AIGIT_ prefix is used (e.g., AIGIT_OUTPUT, AIGIT_VERBOSE).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Use Root().PersistentFlags() to find flags defined on the root command,
	// even when called from a subcommand's PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("AIGIT")
	v.AutomaticEnv()

	return nil
}

// Overrides returns the configuration overrides carried by the flags.
// Zero values leave the loaded configuration untouched.
func (f *GlobalFlags) Overrides() *config.Config {
	o := &config.Config{}
	o.Safety.ThresholdBytes = f.Threshold
	o.AI.Host = f.Host
	o.AI.Model = f.Model
	o.AI.Timeout = f.Timeout
	o.AI.MockMode = f.Mock
	return o
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// ExitCodeForError returns the appropriate exit code for the given error.
// Returns ExitSuccess (0) for nil errors, ExitInvalidInput (2) for user input
// errors (invalid flags, bad arguments, unknown config keys), and ExitError (1)
// for all other errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.IsExitCode2Error(err) {
		return ExitInvalidInput
	}

	for _, sentinel := range []error{
		errors.ErrInvalidOutputFormat,
		errors.ErrConflictingFlags,
		errors.ErrUnknownConfigKey,
		errors.ErrEmptyValue,
		errors.ErrInvalidArgument,
	} {
		if stderrors.Is(err, sentinel) {
			return ExitInvalidInput
		}
	}

	// Cobra's own flag and argument validation errors
	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
		"accepts at most",
		"accepts 2 arg",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
