package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultDatabaseURL    = "rentalhub.db"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTAccessTTL   = "24h"
	defaultScoringTimeout = "8s"
	defaultScoringModel   = "gpt-4o-mini"
)

// Config is the full runtime configuration, loaded from the environment.
type Config struct {
	AppEnv       string
	HTTPAddr     string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration

	// Scoring backend. An empty API key is a valid, expected condition:
	// the service then runs on the deterministic fallback scorer.
	ScoringBaseURL string
	ScoringAPIKey  string
	ScoringModel   string
	ScoringTimeout time.Duration
}

// ScoringConfigured reports whether the external scoring backend can be used.
func (c *Config) ScoringConfigured() bool {
	return strings.TrimSpace(c.ScoringAPIKey) != ""
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.ScoringBaseURL = strings.TrimSpace(os.Getenv("SCORING_BASE_URL"))
	cfg.ScoringAPIKey = strings.TrimSpace(os.Getenv("SCORING_API_KEY"))
	cfg.ScoringModel = getEnv("SCORING_MODEL", defaultScoringModel)
	cfg.ScoringTimeout, err = parseDurationEnv("SCORING_TIMEOUT", defaultScoringTimeout)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.ScoringTimeout <= 0 {
		return fmt.Errorf("SCORING_TIMEOUT must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
