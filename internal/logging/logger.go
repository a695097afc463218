package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dweagle/extras/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	Console     io.Writer // Default: os.Stderr
	File        *FileOptions
	RunID       string
	Development bool
}

// New constructs a slog logger using the provided options. The returned
// closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var consoleHandler slog.Handler
	switch format {
	case "json":
		consoleHandler = newJSONHandler(console, levelVar, addSource)
	case "console":
		consoleHandler = newPrettyHandler(console, levelVar, addSource)
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	var closer io.Closer = nopCloser{}
	handlers := []slog.Handler{consoleHandler}
	if opts.File != nil {
		writer, err := newFileWriter(*opts.File)
		if err != nil {
			return nil, nil, err
		}
		closer = writer
		handlers = append(handlers, newJSONHandler(writer, levelVar, addSource))
	}

	handler := newFanoutHandler(handlers...)
	if opts.RunID != "" {
		handler = newRunIDHandler(handler, opts.RunID)
	}
	return slog.New(handler), closer, nil
}

// NewFromConfig creates a logger using application config. Logs go to stderr
// so stdout stays free for command output.
func NewFromConfig(cfg *config.Config, runID string) (*slog.Logger, io.Closer, error) {
	return New(OptionsFromConfig(cfg, runID))
}

// OptionsFromConfig maps the [logging] section onto Options. Callers may
// adjust the result (console writer, level override) before calling New.
func OptionsFromConfig(cfg *config.Config, runID string) Options {
	if cfg == nil {
		return Options{Level: "info", Format: "console", RunID: runID}
	}
	opts := Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		RunID:  runID,
	}
	if cfg.Logging.File {
		opts.File = &FileOptions{
			Path:       cfg.LogFilePath(),
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		}
	}
	return opts
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
