package config

import (
	"errors"
	"fmt"
	"os"

	"efarchive/internal/logger"
)

// ErrMissingCredential is returned when a required EuroFaktura credential
// is not configured. It is fatal before any network call is attempted.
var ErrMissingCredential = errors.New("missing required credential")

// Config holds all configuration for the poll/render/archive pipeline.
// It is constructed once at process start and passed by parameter.
type Config struct {
	// EuroFaktura API Configuration
	Endpoint  string
	Username  string
	SecretKey string // may legitimately be empty, but is always transmitted
	Token     string

	// Polling Configuration
	InitialCursor string // lower bound used when no state file exists yet

	// Filesystem Layout
	DataDir    string // snapshots, state, summaries
	ArchiveDir string // rendered HTML, index JSON, browsing UI

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		Endpoint:      getEnv("EF_ENDPOINT", ""),
		Username:      getEnv("EF_USERNAME", ""),
		SecretKey:     os.Getenv("EF_SECRETKEY"),
		Token:         getEnv("EF_TOKEN", ""),
		InitialCursor: getEnv("EF_ISSUED_FROM", "2026-01-01 00:00:00"),
		DataDir:       getEnv("EF_DATA_DIR", "data"),
		ArchiveDir:    getEnv("EF_ARCHIVE_DIR", "archive"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("EF_ENDPOINT is required: %w", ErrMissingCredential)
	}
	if c.Username == "" {
		return fmt.Errorf("EF_USERNAME is required: %w", ErrMissingCredential)
	}
	if c.Token == "" {
		return fmt.Errorf("EF_TOKEN is required: %w", ErrMissingCredential)
	}
	// SecretKey is intentionally not checked: the remote schema requires the
	// field to be present, but an empty string is a valid value for it.
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
