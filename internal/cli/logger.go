package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/logging"
)

// envHome overrides ~/.aigit as the home of the log directory.
const envHome = "AIGIT_HOME"

// logFileWriter holds the log file writer for cleanup purposes.
var (
	logFileWriter   io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup
	logFileWriterMu sync.Mutex     //nolint:gochecknoglobals // Protects logFileWriter
)

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// zerologGlobalMu protects concurrent writes to the zerolog global logger.
var zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// configureZerologGlobals sets the field names used in every log line.
func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
	})
}

// InitLogger creates and configures a zerolog.Logger based on verbosity flags.
//
// Log levels are set as follows:
//   - verbose=true: Debug level (most detailed)
//   - quiet=true: Warn level (errors and warnings only)
//   - default: Info level (normal operation)
//
// Console output goes to stderr, as a console writer on a color TTY and as
// JSON otherwise. The logger also writes to ~/.aigit/logs/aigit.log with
// rotation. If the log file cannot be created, logging continues on the
// console only.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	configureZerologGlobals()

	var writer io.Writer = selectOutput()
	if fileWriter, err := createLogFileWriter(); err == nil {
		logFileWriterMu.Lock()
		if logFileWriter != nil {
			_ = logFileWriter.Close()
		}
		logFileWriter = fileWriter
		logFileWriterMu.Unlock()
		writer = zerolog.MultiLevelWriter(writer, fileWriter)
	}

	logger := buildLogger(selectLevel(verbose, quiet), writer)
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates and configures a zerolog.Logger with a custom writer.
// This is primarily intended for testing purposes.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	configureZerologGlobals()

	logger := buildLogger(selectLevel(verbose, quiet), w)
	setGlobalLogger(logger)
	return logger
}

func buildLogger(level zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(level).Hook(logging.NewSensitiveDataHook()).With().Timestamp().Logger()
}

// setGlobalLogger points the zerolog/log package logger at the CLI logger.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

// CloseLogFile closes the log file writer if it was opened.
// This should be called during application shutdown.
func CloseLogFile() {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks a console writer for a color TTY and plain JSON otherwise.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" { //nolint:gosec // G115: fd fits in int
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the filtering writer.
func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates a rotating file writer for the CLI log,
// filtered so credentials in URLs or tokens never reach disk.
func createLogFileWriter() (io.WriteCloser, error) {
	logPath, err := LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}

// getAigitHome returns $AIGIT_HOME, or ~/.aigit when it is unset.
func getAigitHome() (string, error) {
	if home := os.Getenv(envHome); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, constants.AigitHome), nil
}

// LogFilePath returns the path to the CLI log file.
func LogFilePath() (string, error) {
	home, err := getAigitHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.LogsDir, constants.CLILogFileName), nil
}
