package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/errors"
	"github.com/mrz1836/aigit/internal/flock"
)

const (
	configFilePerm = 0o600
	configDirPerm  = 0o750

	// saveLockTimeout bounds how long Save waits for a concurrent writer.
	saveLockTimeout = 5 * time.Second
)

// SettableKeys lists the keys accepted by SetValue, in display order.
//
//nolint:gochecknoglobals // Read-only lookup table
var SettableKeys = []string{
	"safety.threshold_bytes",
	"ai.host",
	"ai.model",
	"ai.timeout",
	"ai.max_attempts",
	"ai.mock_mode",
	"ai.temperature",
	"git.executable",
}

// Save validates cfg and writes it as YAML to path. The write happens under an
// exclusive lock next to the file and goes through a temp file and rename, so
// readers never see a partial document.
func Save(ctx context.Context, path string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return errors.Wrap(err, "refusing to save invalid configuration")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirPerm); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	lock, err := flock.Acquire(ctx, filepath.Join(dir, constants.ConfigLockName), saveLockTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return errors.Wrap(err, "failed to create temp config file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write temp config file")
	}
	if err := tmp.Chmod(configFilePerm); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to set config file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp config file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "failed to replace config file")
	}
	return nil
}

// SetValue reads the config file at path (defaults when it does not exist),
// sets one key from its string form, validates the result and saves it.
// Environment variables are deliberately not consulted so they never leak
// into the saved file.
func SetValue(ctx context.Context, path, key, value string) (*Config, error) {
	if !slices.Contains(SettableKeys, key) {
		return nil, errors.Wrapf(errors.ErrUnknownConfigKey, "%q", key)
	}

	v := viper.New()
	setDefaults(v)
	if fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config: %s", path)
		}
	}

	v.Set(key, value)

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, fmt.Errorf("set %s=%s: %w", key, value, err)
	}

	if err := Save(ctx, path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
