package task

import "github.com/mrz1836/aigit/internal/config"

// Settings is the configuration a single orchestrator call runs with. It is
// passed explicitly on every call so concurrent callers and tests never share
// mutable configuration.
type Settings struct {
	// ThresholdBytes is the safety gate threshold for commits.
	ThresholdBytes int

	// AI selects and tunes the synthesis backend for generate tasks.
	AI config.AIConfig

	// Suggestions is how many commit message candidates a generate task asks
	// for. Values below 2 ask for a single message.
	Suggestions int
}

// SettingsFromConfig projects a loaded configuration onto Settings.
// A nil cfg yields the built-in defaults.
func SettingsFromConfig(cfg *config.Config) Settings {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Settings{
		ThresholdBytes: cfg.Safety.ThresholdBytes,
		AI:             cfg.AI,
	}
}
