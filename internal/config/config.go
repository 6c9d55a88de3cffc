// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the web server configuration.
type Config struct {
	Port     int
	DBPath   string // empty = default SQLite path
	RedisURL string // when set, comments are stored in Redis instead of SQLite
	DevMode  bool
	BaseURL  string // e.g. http://localhost:8080
}

// FromEnv creates a Config from environment variables.
func FromEnv() (Config, error) {
	port := 8080
	if v := os.Getenv("PORTFOLIO_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 65535 {
			return Config{}, fmt.Errorf("invalid PORTFOLIO_PORT %q", v)
		}
		port = p
	}

	return Config{
		Port:     port,
		DBPath:   os.Getenv("PORTFOLIO_DB"),
		RedisURL: os.Getenv("PORTFOLIO_REDIS_URL"),
		DevMode:  os.Getenv("PORTFOLIO_DEV_MODE") == "true",
		BaseURL:  envOrDefault("PORTFOLIO_BASE_URL", fmt.Sprintf("http://localhost:%d", port)),
	}, nil
}

// LoadDotEnv reads variables from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
