package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// setupLogger writes logs to a file under dir. The TUI owns the terminal,
// so nothing may log to stderr while tracking. The returned closer flushes
// and closes the file.
func setupLogger(dir, file, level string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, file), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(parseLevel(level))
	return logger, func() { f.Close() }, nil
}

// stderrLogger is used by non-interactive commands.
func stderrLogger(level string) *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
