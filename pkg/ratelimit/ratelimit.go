package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidConfig is returned for a non-positive limit or window.
var ErrInvalidConfig = errors.New("ratelimit: limit and window must be positive")

// Config describes one fixed window.
type Config struct {
	Prefix string        `env:"RATE_LIMIT_PREFIX" envDefault:"pf:rl"`
	Limit  int           `env:"RATE_LIMIT" envDefault:"5"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"10m"`
}

// Validate checks the limit and window.
func (c Config) Validate() error {
	if c.Limit <= 0 || c.Window <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Result is the outcome of one Allow call.
type Result struct {
	Limit      int
	Remaining  int
	ResetAfter time.Duration
	Allowed    bool
}

// Limiter admits or rejects one hit for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func result(cfg Config, count int, resetAfter time.Duration) Result {
	return Result{
		Limit:      cfg.Limit,
		Remaining:  max(cfg.Limit-count, 0),
		ResetAfter: max(resetAfter, 0),
		Allowed:    count <= cfg.Limit,
	}
}
