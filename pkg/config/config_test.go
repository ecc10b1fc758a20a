package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Upstream.BaseURL != "https://api.flowo.test/api/v1" {
		t.Fatalf("unexpected upstream base url: %q", cfg.Upstream.BaseURL)
	}

	if got := cfg.Cart.SessionTTL; got != 72*time.Hour {
		t.Fatalf("expected cart session TTL 72h, got %v", got)
	}

	if cfg.Redis.Enabled() {
		t.Fatal("redis should be disabled when no URL is configured")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected Load() to fail without FLOWO_APP_ENV")
	}
}

func TestLoad_RejectsBadUpstreamURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("FLOWO_API_BASE_URL", "localhost:8081")

	if _, err := Load(); err == nil {
		t.Fatal("expected Load() to reject a schemeless upstream url")
	}
}

func TestLoad_UpstreamDefault(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv("FLOWO_API_BASE_URL"); err != nil {
		t.Fatalf("failed to unset FLOWO_API_BASE_URL: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Upstream.BaseURL != "http://localhost:8081/api/v1" {
		t.Fatalf("unexpected default upstream url %q", cfg.Upstream.BaseURL)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvAppPort, "8080")
	t.Setenv("FLOWO_API_BASE_URL", "https://api.flowo.test/api/v1")
	t.Setenv("FLOWO_REDIS_URL", "")
}
