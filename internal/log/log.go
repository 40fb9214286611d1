// Package log provides structured logging for go-seer.
// It wraps slog with sensible defaults for production use.
package log

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *slog.Logger
	once   sync.Once
)

// Options controls logger output.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string

	// File, when set, writes logs to a rotating file in addition to stdout.
	File string

	// MaxSizeMB is the rotation threshold for File (default 10).
	MaxSizeMB int

	// MaxBackups is how many rotated files to keep (default 3).
	MaxBackups int
}

// Init initializes the global logger with the specified level.
// Valid levels: "debug", "info", "warn", "error"
func Init(level string) {
	InitWithOptions(Options{Level: level})
}

// InitWithOptions initializes the global logger with full output control.
func InitWithOptions(opts Options) {
	once.Do(func() {
		var lvl slog.Level
		switch opts.Level {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}

		hopts := &slog.HandlerOptions{
			Level: lvl,
		}

		var out io.Writer = os.Stdout
		if opts.File != "" {
			maxSize := opts.MaxSizeMB
			if maxSize <= 0 {
				maxSize = 10
			}
			maxBackups := opts.MaxBackups
			if maxBackups <= 0 {
				maxBackups = 3
			}
			out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    maxSize,
				MaxBackups: maxBackups,
			})
		}

		// Use JSON in production, text in development
		if os.Getenv("GO_ENV") == "production" {
			logger = slog.New(slog.NewJSONHandler(out, hopts))
		} else {
			logger = slog.New(slog.NewTextHandler(out, hopts))
		}

		slog.SetDefault(logger)
	})
}

// L returns the global logger instance.
func L() *slog.Logger {
	if logger == nil {
		Init("info")
	}
	return logger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}
