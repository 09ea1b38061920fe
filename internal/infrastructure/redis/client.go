package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ClientConfig configures the Redis connection used for the bank cache and
// idempotency keys.
type ClientConfig struct {
	URL string
	// ConnectTimeout bounds the startup ping retries. Zero pings once.
	ConnectTimeout time.Duration
	Logger         zerolog.Logger
}

// NewClient creates a new Redis client.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	return NewClientWithConfig(ctx, ClientConfig{URL: redisURL, Logger: zerolog.Nop()})
}

// NewClientWithConfig creates a client and pings it, retrying with
// exponential backoff until ConnectTimeout elapses.
func NewClientWithConfig(ctx context.Context, cfg ClientConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ping := func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		cfg.Logger.Warn().Err(err).Dur("retry_in", wait).Msg("redis not ready")
	}

	var b backoff.BackOff = &backoff.StopBackOff{}
	if cfg.ConnectTimeout > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 200 * time.Millisecond
		eb.MaxInterval = 5 * time.Second
		eb.MaxElapsedTime = cfg.ConnectTimeout
		b = eb
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
