package redis

import "errors"

// Errors returned by Open and Healthcheck. Driver errors are joined to
// them, so errors.Is works for both.
var (
	ErrEmptyConnectionURL = errors.New("redis: REDIS_URL is empty")
	ErrFailedToParseURL   = errors.New("redis: invalid connection URL")
	ErrConnectionFailed   = errors.New("redis: server unreachable")
	ErrHealthcheckFailed  = errors.New("redis: ping failed")
)
