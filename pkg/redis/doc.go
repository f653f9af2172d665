// Package redis opens the optional Redis connection used for shared
// rate-limit counters.
//
// It wraps [github.com/redis/go-redis/v9] with pool defaults, a startup
// ping with linear backoff, and a health check closure:
//
//	client, err := redis.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	app := web.New(web.WithHealthChecks(web.HealthCheck{Name: "redis", Check: redis.Healthcheck(client)}))
//
// Both redis:// and rediss:// (TLS) URLs are accepted.
package redis
