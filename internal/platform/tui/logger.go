package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogPath is where the terminal host writes its log. The alternate
// screen owns stdout and stderr while a match runs.
const DefaultLogPath = "~/.pong/pong.log"

// NewFileLogger returns a logger writing to a rotating file at path.
// Closing the returned io.Closer closes the file.
func NewFileLogger(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	path, err = expandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	logger := log.NewWithOptions(lj, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
		Level:           lvl,
	})
	return logger, lj, nil
}

// NewStderrLogger returns a logger for server processes.
func NewStderrLogger(prefix, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// ParseLevel parses a log level name. Empty means info.
func ParseLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
