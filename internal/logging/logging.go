// Package logging builds the slog logger the store reports failures to.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"todo/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New opens the configured log file and returns a logger writing JSON lines
// to it, mirrored as text to stderr when cfg.Stderr is set. The returned
// closer releases the file.
func New(cfg config.Log) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closer = f
	}
	if cfg.Stderr {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
	}
	return NewWithHandlers(handlers...), closer, nil
}

// NewWithHandlers fans records out to every handler. With none, records are
// dropped.
func NewWithHandlers(handlers ...slog.Handler) *slog.Logger {
	if len(handlers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
