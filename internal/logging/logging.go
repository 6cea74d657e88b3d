// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Setup installs the default slog logger.
//
// With a filename, logs are appended to that file and Bubble Tea's own
// logger is pointed at it too. Without one, interactive sessions discard
// logs (the terminal belongs to the explorer) and batch commands write text
// logs to stderr.
func Setup(filename, level string, interactive bool) (cleanup func(), err error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if filename == "" {
		var w io.Writer = os.Stderr
		if interactive {
			w = io.Discard
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, opts)))

	tf, err := tea.LogToFile(filename, "tea")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("logging: %w", err)
	}

	cleanup = func() {
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}
