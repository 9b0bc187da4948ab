package config

import (
	"net/url"
	"strings"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/errors"
)

// Validate checks the configuration for invalid values and returns the first
// failure found.
//
// Validation rules:
//   - safety.threshold_bytes between 100000 and 100000000
//   - ai.timeout between 5s and 300s
//   - ai.model not empty
//   - ai.host an absolute http or https URL
//   - ai.max_attempts between 1 and 5
//   - ai.temperature between 0 and 2
//   - git.executable not empty
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSafetyConfig(&cfg.Safety); err != nil {
		return err
	}

	if err := validateAIConfig(&cfg.AI); err != nil {
		return err
	}

	return validateGitConfig(&cfg.Git)
}

func validateSafetyConfig(cfg *SafetyConfig) error {
	if cfg.ThresholdBytes < constants.MinThresholdBytes || cfg.ThresholdBytes > constants.MaxThresholdBytes {
		return errors.Wrapf(errors.ErrConfigInvalidSafety,
			"safety.threshold_bytes must be between %d and %d, got %d",
			constants.MinThresholdBytes, constants.MaxThresholdBytes, cfg.ThresholdBytes)
	}
	return nil
}

func validateAIConfig(cfg *AIConfig) error {
	if cfg.Timeout < constants.MinAITimeout || cfg.Timeout > constants.MaxAITimeout {
		return errors.Wrapf(errors.ErrConfigInvalidAI,
			"ai.timeout must be between %s and %s, got %s",
			constants.MinAITimeout, constants.MaxAITimeout, cfg.Timeout)
	}

	if strings.TrimSpace(cfg.Model) == "" {
		return errors.Wrap(errors.ErrConfigInvalidAI, "ai.model must not be empty")
	}

	u, err := url.Parse(cfg.Host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Wrapf(errors.ErrConfigInvalidAI,
			"ai.host must be an http(s) URL, got %q", cfg.Host)
	}

	if cfg.MaxAttempts < 1 || cfg.MaxAttempts > constants.MaxAttemptsLimit {
		return errors.Wrapf(errors.ErrConfigInvalidAI,
			"ai.max_attempts must be between 1 and %d, got %d",
			constants.MaxAttemptsLimit, cfg.MaxAttempts)
	}

	if cfg.Temperature < 0 || cfg.Temperature > constants.MaxTemperature {
		return errors.Wrapf(errors.ErrConfigInvalidAI,
			"ai.temperature must be between 0 and %.1f, got %.2f",
			constants.MaxTemperature, cfg.Temperature)
	}

	return nil
}

func validateGitConfig(cfg *GitConfig) error {
	if strings.TrimSpace(cfg.Executable) == "" {
		return errors.Wrap(errors.ErrConfigInvalidGit, "git.executable must not be empty")
	}
	return nil
}
