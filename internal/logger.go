package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var logLevel = LogLevelInfo

// logFile is the rotating file writer of the current logger, if any
var logFile *lumberjack.Logger

// LogConfig controls where and how log lines are written
type LogConfig struct {
	Level      string // "debug", "info", "warn", "error"
	Format     string // "text" or "json"
	File       string // optional rotating log file
	Quiet      bool   // drop the stderr writer (the TUI owns the terminal)
	WithCaller bool
}

// InitLogger configures the global zerolog logger
func InitLogger(cfg LogConfig) error {
	var writers []io.Writer

	if !cfg.Quiet {
		if cfg.Format == "json" {
			writers = append(writers, os.Stderr)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
		}
	}

	previous := logFile
	logFile = nil
	if cfg.File != "" {
		logFile = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writers = append(writers, zerolog.ConsoleWriter{NoColor: true, Out: logFile})
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).With().Timestamp()
	if cfg.WithCaller {
		logger = logger.Caller()
	}
	log.Logger = logger.Logger()

	// the old file is released only once nothing logs to it
	if previous != nil {
		if err := previous.Close(); err != nil {
			return fmt.Errorf("failed to close previous log file: %w", err)
		}
	}

	switch cfg.Level {
	case "debug", "trace":
		SetLogLevel(LogLevelDebug)
	case "info", "":
		SetLogLevel(LogLevelInfo)
	case "warn":
		SetLogLevel(LogLevelWarn)
	case "error":
		SetLogLevel(LogLevelError)
	default:
		return fmt.Errorf("unknown log level: %s", cfg.Level)
	}
	return nil
}

// CloseLogger closes the log file opened by InitLogger, if any
func CloseLogger() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel = level
	switch level {
	case LogLevelError:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case LogLevelWarn:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case LogLevelInfo:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
