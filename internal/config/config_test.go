package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CHAT_TYPING_DELAY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.TypingDelay != 1200*time.Millisecond {
		t.Fatalf("expected default typing delay, got %s", cfg.TypingDelay)
	}
	if cfg.BubbleDelay != 8*time.Second {
		t.Fatalf("expected default bubble delay, got %s", cfg.BubbleDelay)
	}
	if cfg.TranscriptLimit != 250 {
		t.Fatalf("expected default transcript limit, got %d", cfg.TranscriptLimit)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.UseMemoryRepo {
		t.Fatalf("expected memory repo disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("CHAT_TYPING_DELAY", "500ms")
	t.Setenv("CHAT_BUBBLE_DELAY", "30s")
	t.Setenv("CHAT_TRANSCRIPT_LIMIT", "50")
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("USE_MEMORY_REPO", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://www.example.com")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.TypingDelay != 500*time.Millisecond {
		t.Fatalf("expected typing delay override, got %s", cfg.TypingDelay)
	}
	if cfg.BubbleDelay != 30*time.Second {
		t.Fatalf("expected bubble delay override, got %s", cfg.BubbleDelay)
	}
	if cfg.TranscriptLimit != 50 {
		t.Fatalf("expected transcript limit override, got %d", cfg.TranscriptLimit)
	}
	if cfg.RedisAddr != "localhost:6380" {
		t.Fatalf("expected redis override, got %s", cfg.RedisAddr)
	}
	if !cfg.UseMemoryRepo {
		t.Fatalf("expected memory repo enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.example.com" {
		t.Fatalf("expected CORS origins parsed, got %v", cfg.CORSAllowedOrigins)
	}
}
