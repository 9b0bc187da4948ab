package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/errors"
)

// envAliases binds keys to legacy environment variable names that are read
// after the AIGIT_ prefixed form.
//
//nolint:gochecknoglobals // Read-only lookup table
var envAliases = map[string]string{
	"ai.mock_mode":   constants.EnvMockMode,
	"git.executable": constants.EnvGitExecutable,
}

// newViperInstance creates a Viper instance with defaults, the AIGIT_ env
// prefix, the "." to "_" key replacer and the legacy aliases.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("AIGIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		prefixed := "AIGIT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, prefixed, alias)
	}
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// viperDecoderOption lets "30s" style strings decode into time.Duration.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are not an error.
//
// For CLI flag overrides, use LoadWithOverrides instead.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Int("safety.threshold_bytes", cfg.Safety.ThresholdBytes).
		Str("ai.model", cfg.AI.Model).
		Dur("ai.timeout", cfg.AI.Timeout).
		Bool("ai.mock_mode", cfg.AI.MockMode).
		Msg("configuration loaded")

	return cfg, nil
}

// loadGlobalConfig reads ~/.aigit/config.yaml when it exists.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig merges .aigit/config.yaml over the global file when it exists.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied. MockMode can only be turned
// on this way; a false override leaves the loaded value alone.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths for testing.
// Either path can be empty to skip that level; the project file has the
// higher priority.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the YAML tag names exactly.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("safety.threshold_bytes", d.Safety.ThresholdBytes)

	v.SetDefault("ai.host", d.AI.Host)
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.timeout", d.AI.Timeout.String())
	v.SetDefault("ai.max_attempts", d.AI.MaxAttempts)
	v.SetDefault("ai.mock_mode", d.AI.MockMode)
	v.SetDefault("ai.temperature", d.AI.Temperature)

	v.SetDefault("git.executable", d.Git.Executable)
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Safety.ThresholdBytes != 0 {
		cfg.Safety.ThresholdBytes = overrides.Safety.ThresholdBytes
	}

	if overrides.AI.Host != "" {
		cfg.AI.Host = overrides.AI.Host
	}
	if overrides.AI.Model != "" {
		cfg.AI.Model = overrides.AI.Model
	}
	if overrides.AI.Timeout != 0 {
		cfg.AI.Timeout = overrides.AI.Timeout
	}
	if overrides.AI.MaxAttempts != 0 {
		cfg.AI.MaxAttempts = overrides.AI.MaxAttempts
	}
	if overrides.AI.MockMode {
		cfg.AI.MockMode = true
	}

	if overrides.Git.Executable != "" {
		cfg.Git.Executable = overrides.Git.Executable
	}
}
