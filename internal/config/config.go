package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-only-secret-change-me"

// Config holds the runtime settings read from the environment
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	AdminSecret string
	TokenTTL    time.Duration
	DBTimeout   time.Duration
	LogLevel    string
	AppEnv      string
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// UsesMemoryStore reports whether no database is configured
func (c *Config) UsesMemoryStore() bool {
	return c.DatabaseURL == ""
}

// Load reads .env files (without overriding the process environment) and
// then builds a Config from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:        get("PORT", "8080"),
		DatabaseURL: getenv("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET"),
		AdminSecret: getenv("ADMIN_SECRET"),
		LogLevel:    get("LOG_LEVEL", "info"),
		AppEnv:      get("APP_ENV", "dev"),
	}

	var err error
	if cfg.TokenTTL, err = parseDuration("TOKEN_TTL", get("TOKEN_TTL", "24h")); err != nil {
		return nil, err
	}
	if cfg.DBTimeout, err = parseDuration("DB_TIMEOUT", get("DB_TIMEOUT", "5s")); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "dev" {
			return nil, errors.New("config: JWT_SECRET is required outside dev")
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, raw)
	}
	return d, nil
}
