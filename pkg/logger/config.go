package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls the base handler.
type Config struct {
	Output io.Writer `env:"-"`
	Level  string    `env:"LOG_LEVEL" envDefault:"info"`
	Format string    `env:"LOG_FORMAT" envDefault:"json"`
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
	return l, nil
}

func (c Config) handler() slog.Handler {
	out := c.Output
	if out == nil {
		out = os.Stdout
	}

	level, err := ParseLevel(c.Level)
	if err != nil && c.Level != "" {
		fmt.Fprintln(os.Stderr, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Format, "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}

// New creates a logger from cfg with optional context extractors.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(cfg.handler(), extractors...))
}

// NewNope creates a logger that discards everything. Tests and optional
// dependencies use it as a default.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
