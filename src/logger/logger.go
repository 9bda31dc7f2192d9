// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and redirection.
//
// This interface supports both human-readable CLI output and structured
// JSON logging, allowing commands to switch between them with a flag.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// LevelLogger is a Logger that tags messages with a severity.
//
// Commands report diagnostics through Warnf and Errorf when the logger
// supports them instead of printing headed blocks.
type LevelLogger interface {
	Logger
	// Warnf logs a non-fatal finding.
	Warnf(format string, v ...any)
	// Errorf logs a fatal finding.
	Errorf(format string, v ...any)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled, writing to stderr.
// This is suitable for user-facing diagnostics.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements LevelLogger on top of [zerolog], emitting one JSON
// object per message with level, component and time fields.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
//
// [zerolog]: https://github.com/rs/zerolog
type JSONLogger struct {
	mu sync.Mutex
	zl zerolog.Logger
}

// NewJSONLogger creates a JSON logger tagging every message with component.
// A nil writer defaults to stderr.
func NewJSONLogger(w io.Writer, component string) *JSONLogger {
	if w == nil {
		w = os.Stderr
	}
	return &JSONLogger{
		zl: zerolog.New(w).With().Timestamp().Str("component", component).Logger(),
	}
}

// Printf logs an info level message.
func (j *JSONLogger) Printf(format string, v ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.zl.Info().Msgf(format, v...)
}

// Println logs an info level message built with fmt.Sprintln semantics.
func (j *JSONLogger) Println(v ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.zl.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Warnf logs a warn level message.
func (j *JSONLogger) Warnf(format string, v ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.zl.Warn().Msgf(format, v...)
}

// Errorf logs an error level message.
func (j *JSONLogger) Errorf(format string, v ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.zl.Error().Msgf(format, v...)
}

// SetOutput sets the output destination for the JSON logger.
// A nil writer discards output.
func (j *JSONLogger) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.zl = j.zl.Output(w)
}

// SetLevel sets the minimum level emitted by the logger.
//
// Parameters:
//   - level: One of debug, info, warn, error or disabled
//
// Returns:
//   - error: Error if level is not recognized
func (j *JSONLogger) SetLevel(level string) error {
	var lvl zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	case "disabled":
		lvl = zerolog.Disabled
	default:
		allowedLevels := []string{"debug", "info", "warn", "error", "disabled"}
		return fmt.Errorf("logger: invalid log level '%s', expected one of %v", level, allowedLevels)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.zl = j.zl.Level(lvl)
	return nil
}
