package config_test

import (
	"testing"
	"time"

	"github.com/iho/bankrec/internal/infrastructure/config"
	"github.com/iho/bankrec/internal/usecase"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.JWTSecret != "" {
		t.Fatalf("expected JWT secret default to be empty, got %q", cfg.JWTSecret)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.BankCacheTTL != 10*time.Minute {
		t.Fatalf("expected default bank cache TTL of 10m, got %s", cfg.BankCacheTTL)
	}

	if cfg.ReportHeading != usecase.DefaultReportHeading {
		t.Fatalf("expected default report heading, got %q", cfg.ReportHeading)
	}

	if cfg.Policy.Policy() != usecase.DefaultPolicy() {
		t.Fatalf("expected default lifecycle policy, got %+v", cfg.Policy)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("REPORT_HEADING", "ACME Holdings")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}

	if cfg.RateLimitPerSecond != 2.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitPerSecond)
	}

	if cfg.ReportHeading != "ACME Holdings" {
		t.Fatalf("expected report heading override, got %q", cfg.ReportHeading)
	}
}

func TestLoadPolicySwitches(t *testing.T) {
	t.Setenv("POLICY_SAVE_BEFORE_EXPORT", "false")
	t.Setenv("POLICY_BROADCAST_WHILE_EDITING", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	got := cfg.Policy.Policy()
	want := usecase.Policy{
		RequireNarration:         true,
		ExportRequiresReconciled: true,
		SaveBeforeExport:         false,
		BroadcastWhileEditing:    false,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"duration", "HTTP_READ_TIMEOUT"},
		{"policy switch", "POLICY_REQUIRE_NARRATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, "not-a-value")

			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error for invalid %s", tt.key)
			}
		})
	}
}
