// Package logging installs the process-wide slog handler.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// multiHandler dispatches log records to multiple handlers based on level.
type multiHandler struct {
	console slog.Handler // Warn level and above
	file    slog.Handler // Debug level and above; nil when file logging is off
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.file != nil && h.file.Enabled(ctx, level) {
		return true
	}
	return h.console.Enabled(ctx, level)
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.file != nil && h.file.Enabled(ctx, r.Level) {
		if err := h.file.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	if h.console.Enabled(ctx, r.Level) {
		if err := h.console.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := &multiHandler{console: h.console.WithAttrs(attrs)}
	if h.file != nil {
		out.file = h.file.WithAttrs(attrs)
	}
	return out
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	out := &multiHandler{console: h.console.WithGroup(name)}
	if h.file != nil {
		out.file = h.file.WithGroup(name)
	}
	return out
}

// Options configures Init.
type Options struct {
	// File is the JSON log path. Empty means DefaultFile; "-" disables
	// file logging.
	File string
	// Console receives warnings and errors as text. Nil means stderr.
	Console io.Writer
	// Verbose lowers the console level to Info.
	Verbose bool
}

// DefaultFile returns the log path under the XDG state directory.
func DefaultFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "dotscope", "dotscope.log")
}

// Init installs the default logger. Console output is text, file output
// is JSON with size-based rotation. The returned function closes the file.
func Init(opts Options) (func(), error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelInfo
	}
	h := &multiHandler{
		console: slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}

	path := opts.File
	if path == "" {
		path = DefaultFile()
	}
	cleanup := func() {}
	if path != "" && path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // 10MB
			MaxBackups: 3,
			LocalTime:  true,
		}
		h.file = slog.NewJSONHandler(lj, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
		cleanup = func() {
			if err := lj.Close(); err != nil {
				slog.Error("Failed to close log file", "error", err)
			}
		}
	}

	slog.SetDefault(slog.New(h))
	return cleanup, nil
}
