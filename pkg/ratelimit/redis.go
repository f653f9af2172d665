package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindow increments KEYS[1] and starts its expiry on the first hit.
// Returns {count, pttl}.
var fixedWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Redis is a Limiter shared by every instance pointing at the same server.
type Redis struct {
	client redis.Scripter
	cfg    Config
}

// NewRedis creates a Redis limiter.
func NewRedis(client redis.Scripter, cfg Config) (*Redis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Redis{client: client, cfg: cfg}, nil
}

// Allow implements Limiter.
func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	res, err := fixedWindow.Run(ctx, r.client, []string{r.key(key)}, r.cfg.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: redis: %w", err)
	}
	if len(res) != 2 {
		return Result{}, fmt.Errorf("ratelimit: redis: unexpected reply %v", res)
	}
	return result(r.cfg, int(res[0]), time.Duration(res[1])*time.Millisecond), nil
}

func (r *Redis) key(key string) string {
	if r.cfg.Prefix == "" {
		return key
	}
	return r.cfg.Prefix + ":" + key
}

var _ Limiter = (*Redis)(nil)
