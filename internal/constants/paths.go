package constants

// Log file names.
const (
	// CLILogFileName is the name of the CLI log file.
	// This file is located in ~/.aigit/logs/aigit.log
	CLILogFileName = "aigit.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the configuration file inside the
	// global (~/.aigit) and project (.aigit) directories.
	GlobalConfigName = "config.yaml"

	// ConfigLockName is the lock file taken while the configuration is written.
	ConfigLockName = "config.lock"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated files are kept.
	LogMaxAgeDays = 28

	// LogCompress gzips rotated files.
	LogCompress = true
)
