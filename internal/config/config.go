// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings
type Config struct {
	ListenAddr    string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	LogLevel      string
}

// Load reads settings from the environment. A missing .env file is not
// an error; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		SessionTTL:    time.Hour,
		SweepInterval: 10 * time.Minute,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	ttl, err := getDuration("SESSION_TTL", cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	interval, err := getDuration("SWEEP_INTERVAL", cfg.SweepInterval)
	if err != nil {
		return nil, err
	}
	cfg.SweepInterval = interval

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		// Accept a bare number of minutes as well
		if minutes, convErr := strconv.Atoi(value); convErr == nil {
			return time.Duration(minutes) * time.Minute, nil
		}
		return 0, fmt.Errorf("invalid %s value %q: %v", key, value, err)
	}
	return d, nil
}
