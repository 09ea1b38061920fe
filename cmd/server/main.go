package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/bankrec/internal/adapter/export"
	httpAdapter "github.com/iho/bankrec/internal/adapter/http"
	"github.com/iho/bankrec/internal/adapter/http/handler"
	"github.com/iho/bankrec/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/bankrec/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/bankrec/internal/adapter/repository/redis"
	"github.com/iho/bankrec/internal/infrastructure/auth"
	"github.com/iho/bankrec/internal/infrastructure/config"
	"github.com/iho/bankrec/internal/infrastructure/logger"
	"github.com/iho/bankrec/internal/infrastructure/metrics"
	"github.com/iho/bankrec/internal/infrastructure/postgres"
	"github.com/iho/bankrec/internal/infrastructure/redis"
	"github.com/iho/bankrec/internal/usecase"
)

const serviceName = "bankrec-server"

// Idle rate-limit visitors are dropped after limiterMaxIdle.
const (
	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

// errAuthSecretMissing is returned when authentication is enabled without a
// signing secret.
var errAuthSecretMissing = errors.New("AUTH_ENABLED requires JWT_SECRET")

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: serviceName})
	log.Logger = appLogger

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, appLogger zerolog.Logger) error {
	ctx := context.Background()

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}
	if verifier == nil {
		appLogger.Warn().Str("user", httpAdapter.DefaultDevUser.ID).Msg("authentication disabled, all requests run as the dev user")
	}

	if cfg.MigrateOnStart {
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, appLogger).Up(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseConnectTimeout,
		Logger:         appLogger,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClientWithConfig(ctx, redis.ClientConfig{
		URL:            cfg.RedisURL,
		ConnectTimeout: cfg.RedisConnectTimeout,
		Logger:         appLogger,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	statementRepo := postgresRepo.NewStatementRepository(pool)
	bankRepo := postgresRepo.NewBankRepository(pool)
	settingsRepo := postgresRepo.NewSettingsRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	appMetrics := metrics.New()

	// Initialize use cases
	bankUC := usecase.NewBankUseCase(bankRepo, idGen, cache, cfg.BankCacheTTL)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, cfg.ReportHeading)
	reconciliationUC := usecase.NewReconciliationUseCase(
		txManager,
		statementRepo,
		bankUC,
		settingsUC,
		idGen,
		cfg.Policy.Policy(),
		usecase.WithMetrics(appMetrics),
		usecase.WithLogger(appLogger),
		usecase.WithExporters(export.NewPDFRenderer(), export.NewWorkbookWriter()),
	)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	rateLimiter.OnLimit(appMetrics.RateLimited)

	healthHandler := handler.NewHealthHandler().
		AddCheck("postgres", pool.Ping).
		AddCheck("redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		StatementHandler: handler.NewStatementHandler(reconciliationUC),
		BankHandler:      handler.NewBankHandler(bankUC),
		SettingsHandler:  handler.NewSettingsHandler(settingsUC),
		HealthHandler:    healthHandler,
		Verifier:         verifier,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	stopCleanup := startLimiterCleanup(rateLimiter, limiterCleanupInterval, appLogger)
	defer stopCleanup()

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info().Msg("server stopped")
	return nil
}

// newVerifier returns the bearer token verifier, or nil when authentication
// is disabled.
func newVerifier(cfg *config.Config) (middleware.TokenVerifier, error) {
	if !cfg.AuthEnabled {
		return nil, nil
	}
	if cfg.JWTSecret == "" {
		return nil, errAuthSecretMissing
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), nil
}

// startLimiterCleanup drops idle rate-limit visitors every interval until the
// returned stop function is called.
func startLimiterCleanup(rl *middleware.RateLimiter, interval time.Duration, l zerolog.Logger) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if n := rl.CleanupLimiters(limiterMaxIdle); n > 0 {
					l.Debug().Int("removed", n).Msg("rate limiter cleanup")
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}
