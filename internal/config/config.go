// Package config provides configuration management for the observation
// events service.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the complete application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	INat    INatConfig    `envPrefix:"INAT_"`
	Feed    FeedConfig    `envPrefix:"FEED_"`
	Reports ReportsConfig `envPrefix:"REPORTS_"`
	Logging LoggingConfig `envPrefix:"LOG_"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// INatConfig contains iNaturalist API client configuration.
type INatConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://api.inaturalist.org"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// FeedConfig contains feed defaults and limits.
type FeedConfig struct {
	// DefaultPlaceID scopes the featured feed when the caller names no place.
	// 6793 is iNaturalist's place ID for Mexico.
	DefaultPlaceID  int     `env:"DEFAULT_PLACE_ID" envDefault:"6793"`
	DefaultCount    int     `env:"DEFAULT_COUNT" envDefault:"10"`
	MaxCount        int     `env:"MAX_COUNT" envDefault:"100"`
	DefaultRadiusKm float64 `env:"DEFAULT_RADIUS_KM" envDefault:"30"`
}

// ReportsConfig contains report store configuration.
type ReportsConfig struct {
	DBPath string `env:"DB_PATH" envDefault:"./reports.db"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// Load parses configuration from environment variables.
// It returns an error if required fields are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{
		RequiredIfNoDef: true,
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive, got %s", c.Server.ReadTimeout)
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive, got %s", c.Server.WriteTimeout)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}

	if c.INat.BaseURL == "" {
		return fmt.Errorf("iNaturalist base URL is required")
	}

	if c.INat.Timeout <= 0 {
		return fmt.Errorf("iNaturalist timeout must be positive, got %s", c.INat.Timeout)
	}

	if c.Feed.DefaultPlaceID < 1 {
		return fmt.Errorf("default place ID must be positive, got %d", c.Feed.DefaultPlaceID)
	}

	if c.Feed.DefaultCount < 1 {
		return fmt.Errorf("default count must be at least 1, got %d", c.Feed.DefaultCount)
	}

	if c.Feed.MaxCount < c.Feed.DefaultCount {
		return fmt.Errorf("max count (%d) must be >= default count (%d)", c.Feed.MaxCount, c.Feed.DefaultCount)
	}

	if c.Feed.DefaultRadiusKm <= 0 {
		return fmt.Errorf("default radius must be positive, got %g", c.Feed.DefaultRadiusKm)
	}

	if c.Reports.DBPath == "" {
		return fmt.Errorf("reports database path is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format %q, must be one of: json, text", c.Logging.Format)
	}

	return nil
}

// Address returns the server listen address in the format "host:port".
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
