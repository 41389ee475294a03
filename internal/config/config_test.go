package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SESSION_BACKEND", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.SessionBackend != "memory" {
		t.Fatalf("expected default memory session backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionIdleTimeout != 2*time.Hour {
		t.Fatalf("expected default idle timeout, got %s", cfg.SessionIdleTimeout)
	}
	if cfg.SessionGraceWindow != time.Hour {
		t.Fatalf("expected default grace window, got %s", cfg.SessionGraceWindow)
	}
	if cfg.MaxRecentMeals != 10 || cfg.MaxActiveTopics != 5 {
		t.Fatalf("expected default context bounds, got %d/%d", cfg.MaxRecentMeals, cfg.MaxActiveTopics)
	}
	if cfg.DefaultRegion != "north" {
		t.Fatalf("expected default region north, got %s", cfg.DefaultRegion)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("SESSION_IDLE_TIMEOUT", "45m")
	t.Setenv("SESSION_MAX_RECENT_MEALS", "3")
	t.Setenv("NUTRITION_DB_BASE_URL", "https://nutridb.example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.SessionBackend != "redis" {
		t.Fatalf("expected normalized redis backend, got %s", cfg.SessionBackend)
	}
	if cfg.RedisAddr != "localhost:6380" {
		t.Fatalf("expected redis addr override, got %s", cfg.RedisAddr)
	}
	if cfg.SessionIdleTimeout != 45*time.Minute {
		t.Fatalf("expected idle timeout override, got %s", cfg.SessionIdleTimeout)
	}
	if cfg.MaxRecentMeals != 3 {
		t.Fatalf("expected recent meals override, got %d", cfg.MaxRecentMeals)
	}
	if cfg.NutritionBaseURL != "https://nutridb.example.com" {
		t.Fatalf("expected nutrition base url, got %s", cfg.NutritionBaseURL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_IDLE_TIMEOUT", "not-a-duration")
	cfg := Load()
	if cfg.SessionIdleTimeout != 2*time.Hour {
		t.Fatalf("expected fallback idle timeout, got %s", cfg.SessionIdleTimeout)
	}
}
