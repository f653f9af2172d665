package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()
		_, err := parse(Config{})
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
		assert.False(t, Config{}.Enabled())
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()
		for _, u := range []string{"http://localhost:6379", "localhost:6379", "postgres://x"} {
			_, err := parse(Config{URL: u})
			require.ErrorIs(t, err, ErrFailedToParseURL, u)
		}
	})

	t.Run("applies overrides", func(t *testing.T) {
		t.Parallel()
		opts, err := parse(Config{
			URL:          "rediss://user:pw@cache.internal:6380/2",
			PoolSize:     7,
			MinIdleConns: 1,
			MaxIdleTime:  time.Minute,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
		})
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.NotNil(t, opts.TLSConfig)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, 1, opts.MinIdleConns)
		assert.Equal(t, time.Minute, opts.ConnMaxIdleTime)
		assert.Equal(t, 500*time.Millisecond, opts.WriteTimeout)
	})
}

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Open(ctx, Config{
		URL:           "redis://127.0.0.1:1/0",
		RetryAttempts: 2,
		RetryInterval: 10 * time.Millisecond,
		DialTimeout:   100 * time.Millisecond,
	})
	require.ErrorIs(t, err, ErrConnectionFailed)
	assert.Nil(t, client)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrHealthcheckFailed)
}
