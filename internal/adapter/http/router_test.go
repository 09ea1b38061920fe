package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bankrec/internal/adapter/http/handler"
	apimiddleware "github.com/iho/bankrec/internal/adapter/http/middleware"
	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/infrastructure/auth"
	"github.com/iho/bankrec/internal/usecase"
	"github.com/iho/bankrec/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotentCreateIsReplayed(t *testing.T) {
	store := mocks.NewFakeIdempotencyStore()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"bank_code":"BK1","reconciliation_date":"2024-03-15","balance_as_per_bank":"10","balance_as_per_book":"10"}`
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := send()
	assert.Equal(t, http.StatusCreated, second.Code, "replayed instead of rejected as a duplicate")
	assert.Equal(t, "true", second.Header().Get(apimiddleware.IdempotencyReplayHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestNewRouter_Authentication(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.Verifier = jwtManager
	}))

	memberToken, err := jwtManager.Generate(&domain.User{ID: "u1", Email: "u1@example.com", Role: domain.RoleMember})
	require.NoError(t, err)
	adminToken, err := jwtManager.Generate(&domain.User{ID: "a1", Email: "a1@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		want   int
	}{
		{"anonymous", http.MethodGet, "/api/v1/statements/", "", "", http.StatusUnauthorized},
		{"member lists own statements", http.MethodGet, "/api/v1/statements/", "", memberToken, http.StatusOK},
		{"member lists banks", http.MethodGet, "/api/v1/banks/", "", memberToken, http.StatusOK},
		{"member cannot add banks", http.MethodPost, "/api/v1/banks/", `{"code":"BK9","name":"Ninth"}`, memberToken, http.StatusForbidden},
		{"member cannot change settings", http.MethodPut, "/api/v1/settings/", `{"report_heading":"x"}`, memberToken, http.StatusForbidden},
		{"member cannot see all statements", http.MethodGet, "/api/v1/admin/statements", "", memberToken, http.StatusForbidden},
		{"admin adds banks", http.MethodPost, "/api/v1/banks/", `{"code":"BK9","name":"Ninth"}`, adminToken, http.StatusCreated},
		{"admin sees all statements", http.MethodGet, "/api/v1/admin/statements", "", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/statements/",
		"GET /api/v1/statements/",
		"POST /api/v1/statements/preview",
		"GET /api/v1/statements/continuity",
		"GET /api/v1/statements/{id}",
		"PUT /api/v1/statements/{id}",
		"DELETE /api/v1/statements/{id}",
		"GET /api/v1/statements/{id}/pdf",
		"POST /api/v1/statements/pdf",
		"GET /api/v1/statements/export.xlsx",
		"POST /api/v1/banks/import",
		"PUT /api/v1/settings/",
		"GET /api/v1/admin/statements",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	bankRepo := mocks.NewFakeBankRepository(&domain.Bank{ID: "b1", Code: "BK1", Name: "First Bank"})
	banks := usecase.NewBankUseCase(bankRepo, mocks.NewSequenceIDGenerator(), nil, 0)
	settings := usecase.NewSettingsUseCase(mocks.NewFakeSettingsRepository(), "ACME Holdings")
	statements := usecase.NewReconciliationUseCase(
		mocks.NewFakeTransactionManager(),
		mocks.NewFakeStatementRepository(),
		banks,
		settings,
		mocks.NewSequenceIDGenerator(),
		usecase.DefaultPolicy(),
		usecase.WithExporters(&mocks.FakeRenderer{}, &mocks.FakeTableWriter{}),
	)

	cfg := RouterConfig{
		StatementHandler: handler.NewStatementHandler(statements),
		BankHandler:      handler.NewBankHandler(banks),
		SettingsHandler:  handler.NewSettingsHandler(settings),
		HealthHandler:    handler.NewHealthHandler(),
		Logger:           zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
