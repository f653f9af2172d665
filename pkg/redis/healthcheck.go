package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness probe for client. A nil client always
// fails, so a misconfigured start shows up on the readiness endpoint.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if pong, err := client.Ping(ctx).Result(); err != nil || pong != "PONG" {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
