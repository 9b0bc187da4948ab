package config

import "github.com/mrz1836/aigit/internal/constants"

// DefaultConfig returns a new Config with the built-in defaults. These are the
// base layer that config files, environment variables and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Safety: SafetyConfig{
			ThresholdBytes: constants.DefaultThresholdBytes,
		},
		AI: AIConfig{
			Host:        constants.DefaultAIHost,
			Model:       constants.DefaultAIModel,
			Timeout:     constants.DefaultAITimeout,
			MaxAttempts: constants.DefaultMaxAttempts,
			MockMode:    false,
			Temperature: constants.DefaultTemperature,
		},
		Git: GitConfig{
			Executable: constants.DefaultGitExecutable,
		},
	}
}
