package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PoolConfig configures the connection pool and how long startup keeps
// retrying an unreachable server.
type PoolConfig struct {
	DatabaseURL     string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	// ConnectTimeout bounds the whole startup retry loop. Zero tries once.
	ConnectTimeout time.Duration
	Logger         zerolog.Logger
}

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int) (*pgxpool.Pool, error) {
	return NewPoolWithConfig(ctx, PoolConfig{
		DatabaseURL: databaseURL,
		MaxConns:    maxConns,
		MinConns:    minConns,
		Logger:      zerolog.Nop(),
	})
}

// NewPoolWithConfig creates a pool and pings it, retrying with exponential
// backoff until ConnectTimeout elapses.
func NewPoolWithConfig(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if cfg.MaxConns > 0 {
		config.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		config.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxConnLifetime
	}

	var pool *pgxpool.Pool
	connect := func() error {
		p, err := pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create connection pool: %w", err))
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		pool = p
		return nil
	}

	notify := func(err error, wait time.Duration) {
		cfg.Logger.Warn().Err(err).Dur("retry_in", wait).Msg("postgres not ready")
	}

	if err := backoff.RetryNotify(connect, startupBackOff(ctx, cfg.ConnectTimeout), notify); err != nil {
		return nil, err
	}
	return pool, nil
}

func startupBackOff(ctx context.Context, timeout time.Duration) backoff.BackOff {
	if timeout <= 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = timeout
	return backoff.WithContext(b, ctx)
}
