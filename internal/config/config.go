// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Env           string
	LogLevel      string
	SpannerDB     string
	HTTPPort      string
	GRPCPort      string
	SearchTimeout time.Duration
}

// Defaults for local development against the emulator.
const (
	defaultSpannerDB     = "projects/test-project/instances/dev-instance/databases/catalog-db"
	defaultHTTPPort      = "8080"
	defaultGRPCPort      = "9090"
	defaultSearchTimeout = 5 * time.Second
)

// Load reads envFiles (missing files are skipped), then the environment.
// Variables already set in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	cfg := Config{
		Env:       getenv("APP_ENV", "dev"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		SpannerDB: getenv("SPANNER_DATABASE", defaultSpannerDB),
		HTTPPort:  getenv("HTTP_PORT", defaultHTTPPort),
		GRPCPort:  getenv("GRPC_PORT", defaultGRPCPort),
	}

	timeout, err := durationEnv("SEARCH_TIMEOUT", defaultSearchTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SearchTimeout = timeout

	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		return Config{}, fmt.Errorf("HTTP_PORT %q is not a port number", cfg.HTTPPort)
	}
	if _, err := strconv.Atoi(cfg.GRPCPort); err != nil {
		return Config{}, fmt.Errorf("GRPC_PORT %q is not a port number", cfg.GRPCPort)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
