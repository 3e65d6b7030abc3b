// Package config defines service configuration and its loading order.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file.
	DBPath string `koanf:"db_path"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// JWTSecret signs session tokens. Must be set in production.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTLHours is how long session tokens stay valid.
	TokenTTLHours int `koanf:"token_ttl_hours"`
}

// TokenTTL returns the token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:          ":8080",
		DBPath:        "./data/firings.db",
		LogLevel:      "info",
		JWTSecret:     "dev-secret-change-me",
		TokenTTLHours: 24,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FIRING_CONFIG is set
//  3. env (prefix FIRING_, e.g. FIRING_ADDR, FIRING_DB_PATH)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FIRING_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Map env keys like FIRING_DB_PATH -> db_path, keeping underscores
	// to match the koanf tags on the struct.
	envProvider := env.Provider("FIRING_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "firing_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("db_path must not be empty")
	}
	return &cfg, nil
}
