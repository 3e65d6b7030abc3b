package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	if cfg.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Addr)
	}
	if cfg.DBPath == "" {
		t.Error("default db_path must not be empty")
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Errorf("default token ttl = %v, want 24h", cfg.TokenTTL())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FIRING_ADDR", ":9999")
	t.Setenv("FIRING_DB_PATH", "/tmp/alt.db")
	t.Setenv("FIRING_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/alt.db" {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	// Untouched fields keep their defaults.
	if cfg.TokenTTLHours != 24 {
		t.Errorf("token_ttl_hours = %d, want 24", cfg.TokenTTLHours)
	}
}
