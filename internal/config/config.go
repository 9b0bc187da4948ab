// Package config provides configuration management for aigit with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (AIGIT_* prefix, plus AI_MOCK_MODE and GIT_EXECUTABLE)
//  3. Project config (.aigit/config.yaml)
//  4. Global config (~/.aigit/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants, internal/errors and
// internal/flock, but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for aigit.
type Config struct {
	// Safety controls the diff-size gate in front of every commit.
	Safety SafetyConfig `yaml:"safety" mapstructure:"safety"`

	// AI contains settings for the commit-message backend.
	AI AIConfig `yaml:"ai" mapstructure:"ai"`

	// Git contains settings for invoking git.
	Git GitConfig `yaml:"git" mapstructure:"git"`
}

// SafetyConfig holds the large-diff threshold.
type SafetyConfig struct {
	// ThresholdBytes is the staged diff size above which a commit needs
	// explicit confirmation.
	// Default: 2000000. Range: 100000 to 100000000.
	ThresholdBytes int `yaml:"threshold_bytes" mapstructure:"threshold_bytes"`
}

// AIConfig contains settings for commit message synthesis.
type AIConfig struct {
	// Host is the base URL of the Ollama server.
	// Default: "http://localhost:11434"
	Host string `yaml:"host" mapstructure:"host"`

	// Model is the Ollama model name.
	// Default: "exaone3.5:2.4b"
	Model string `yaml:"model" mapstructure:"model"`

	// Timeout bounds one whole synthesis request, retries included.
	// Default: 30s. Range: 5s to 300s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxAttempts is the total number of backend calls per request.
	// Only connection refused/reset failures are retried.
	// Default: 2
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`

	// MockMode selects the deterministic offline backend.
	// Default: false
	MockMode bool `yaml:"mock_mode" mapstructure:"mock_mode"`

	// Temperature is the sampling temperature sent to Ollama.
	// Default: 0.2
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// GitConfig contains settings for git invocation.
type GitConfig struct {
	// Executable is the git binary name or path.
	// Default: "git"
	Executable string `yaml:"executable" mapstructure:"executable"`
}
