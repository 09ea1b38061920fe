package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/bankrec/internal/adapter/http/handler"
	"github.com/iho/bankrec/internal/adapter/http/middleware"
	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	StatementHandler *handler.StatementHandler
	BankHandler      *handler.BankHandler
	SettingsHandler  *handler.SettingsHandler
	HealthHandler    *handler.HealthHandler

	// Verifier authenticates API requests. When nil every request runs as
	// DevUser.
	Verifier middleware.TokenVerifier
	DevUser  *domain.User

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// DefaultDevUser is the caller used when authentication is disabled.
var DefaultDevUser = &domain.User{ID: "dev", Email: "dev@localhost", Name: "Developer", Role: domain.RoleAdmin}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Verifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.Verifier))
		} else {
			devUser := cfg.DevUser
			if devUser == nil {
				devUser = DefaultDevUser
			}
			r.Use(middleware.StaticUser(devUser))
		}
		r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)

		// Idempotency keys are scoped per user, so this runs after auth.
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		// Statements
		r.Route("/statements", func(r chi.Router) {
			r.Get("/", cfg.StatementHandler.List)
			r.Post("/", cfg.StatementHandler.Create)
			r.Post("/preview", cfg.StatementHandler.Preview)
			r.Get("/template", cfg.StatementHandler.Template)
			r.Get("/continuity", cfg.StatementHandler.Continuity)
			r.Get("/copy-forward", cfg.StatementHandler.CopyForward)
			r.Get("/export.xlsx", cfg.StatementHandler.ExportTable)
			r.Post("/pdf", cfg.StatementHandler.CreateAndExport)
			r.Get("/{id}", cfg.StatementHandler.Get)
			r.Put("/{id}", cfg.StatementHandler.Update)
			r.Delete("/{id}", cfg.StatementHandler.Delete)
			r.Get("/{id}/pdf", cfg.StatementHandler.ExportDocument)
			r.Put("/{id}/pdf", cfg.StatementHandler.UpdateAndExport)
		})

		// Banks
		r.Route("/banks", func(r chi.Router) {
			r.Get("/", cfg.BankHandler.List)
			r.Get("/{id}", cfg.BankHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Post("/", cfg.BankHandler.Create)
				r.Post("/import", cfg.BankHandler.Import)
				r.Put("/{id}", cfg.BankHandler.Update)
				r.Delete("/{id}", cfg.BankHandler.Delete)
			})
		})

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", cfg.SettingsHandler.Get)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Put("/", cfg.SettingsHandler.Update)
		})

		// Admin views across all users
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleAdmin))
			r.Get("/statements", cfg.StatementHandler.ListAll)
			r.Get("/statements/export.xlsx", cfg.StatementHandler.ExportAllTable)
		})
	})

	return r
}
