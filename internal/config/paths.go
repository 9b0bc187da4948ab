package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/errors"
)

// GlobalConfigDir returns the path to the global aigit directory,
// typically ~/.aigit.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AigitHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the project configuration file path relative to
// the current directory: .aigit/config.yaml.
func ProjectConfigPath() string {
	return filepath.Join(constants.AigitHome, constants.GlobalConfigName)
}

// LogDir returns ~/.aigit/logs.
func LogDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
