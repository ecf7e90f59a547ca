package slog

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/cdpdoc"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation defaults.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
)

// NewLogger returns a text logger writing to stdout and, if cfg.File is set,
// to a size-rotated log file. The returned closer releases the file.
func NewLogger(cfg cdpdoc.LogConfig, stdout io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	w := stdout
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		maxSize, maxBackups := cfg.MaxSizeMB, cfg.MaxBackups
		if maxSize <= 0 {
			maxSize = DefaultMaxSizeMB
		}
		if maxBackups <= 0 {
			maxBackups = DefaultMaxBackups
		}
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		}
		w = io.MultiWriter(stdout, file)
		closer = file
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

// ParseLevel parses debug, info, warn or error. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, cdpdoc.Errorf(cdpdoc.EINVALID, "unknown log level %q", s)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
