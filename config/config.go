// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// BasePath is the route prefix for the auth endpoints.
	BasePath string
	// DatabaseURL is the Postgres connection string for the user store.
	// Empty selects the in-memory store (dev mode).
	DatabaseURL string
	// RedisURL is the Redis connection string for the session store.
	// Empty selects the in-memory store (dev mode).
	RedisURL string
	// RegisterEnabled gates the register endpoint.
	RegisterEnabled bool
	// SessionTTL is the fixed lifetime of issued sessions.
	SessionTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first if present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        getEnv("GATEHOUSE_ADDR", ":8080"),
		BasePath:    getEnv("GATEHOUSE_BASE_PATH", "/api/auth"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	enabled, err := getEnvBool("REGISTER_ENABLED", true)
	if err != nil {
		return nil, err
	}
	cfg.RegisterEnabled = enabled

	ttl, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %v", ttl)
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
