// Package config provides configuration management for the catalog core.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBolt   = "bolt"
)

// Default configuration values.
const (
	DefaultStoreBackend   = BackendBolt
	DefaultStorePath      = "catalog.db"
	DefaultLogLevel       = "info"
	DefaultMetricsEnabled = true
)

// Environment variable names.
const (
	EnvStoreBackend   = "CATALOG_STORE_BACKEND"
	EnvStorePath      = "CATALOG_STORE_PATH"
	EnvLogLevel       = "CATALOG_LOG_LEVEL"
	EnvMetricsEnabled = "CATALOG_METRICS_ENABLED"
)

// Config holds the application configuration.
type Config struct {
	// Store settings.
	StoreBackend string
	StorePath    string

	// Observability settings.
	LogLevel       string
	MetricsEnabled bool
}

// Validation errors.
var (
	ErrInvalidStoreBackend = errors.New(
		"store backend must be one of: memory, file, bolt",
	)
	ErrStorePathRequired = errors.New(
		"store path must be set for file and bolt backends",
	)
	ErrInvalidLogLevel = errors.New(
		"log level must be one of: debug, info, warn, error",
	)
)

// Load reads configuration from environment variables with defaults.
// Environment variables have priority over default values.
func Load() (*Config, error) {
	cfg := &Config{
		StoreBackend:   DefaultStoreBackend,
		StorePath:      DefaultStorePath,
		LogLevel:       DefaultLogLevel,
		MetricsEnabled: DefaultMetricsEnabled,
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration values from environment variables.
func (c *Config) loadFromEnv() error {
	if val := os.Getenv(EnvStoreBackend); val != "" {
		c.StoreBackend = val
	}

	if val := os.Getenv(EnvStorePath); val != "" {
		c.StorePath = val
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = val
	}

	if val := os.Getenv(EnvMetricsEnabled); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMetricsEnabled, err)
		}
		c.MetricsEnabled = enabled
	}

	return nil
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	validBackends := map[string]bool{
		BackendMemory: true,
		BackendFile:   true,
		BackendBolt:   true,
	}
	if !validBackends[c.StoreBackend] {
		return ErrInvalidStoreBackend
	}

	if c.StoreBackend != BackendMemory && c.StorePath == "" {
		return ErrStorePathRequired
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return ErrInvalidLogLevel
	}

	return nil
}
