package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging installs the default slog logger. The TUI owns the
// terminal, so logs go to cfg.LogFile or nowhere. The returned function
// closes the log file.
func SetupLogging(cfg Config) (*slog.Logger, func() error, error) {
	var out io.Writer = io.Discard
	closeFn := func() error { return nil }

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	logger := newLogger(out, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

func newLogger(out io.Writer, level, format string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		logHandler = slog.NewJSONHandler(out, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(logHandler)
}
