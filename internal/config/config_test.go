package config

import (
	"os"
	"testing"
	"time"
)

// clearConfigEnv unsets every configuration variable for the duration of
// the test so ambient values cannot leak into default assertions.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"INAT_BASE_URL", "INAT_TIMEOUT",
		"FEED_DEFAULT_PLACE_ID", "FEED_DEFAULT_COUNT",
		"FEED_MAX_COUNT", "FEED_DEFAULT_RADIUS_KM",
		"REPORTS_DB_PATH",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range keys {
		// t.Setenv registers the restore; Unsetenv leaves the key absent.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}

	if cfg.INat.BaseURL != "https://api.inaturalist.org" {
		t.Errorf("expected default iNaturalist base URL, got %s", cfg.INat.BaseURL)
	}

	if cfg.INat.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %s", cfg.INat.Timeout)
	}

	if cfg.Feed.DefaultPlaceID != 6793 {
		t.Errorf("expected default place ID 6793, got %d", cfg.Feed.DefaultPlaceID)
	}

	if cfg.Feed.DefaultRadiusKm != 30 {
		t.Errorf("expected default radius 30, got %g", cfg.Feed.DefaultRadiusKm)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "60s")
	t.Setenv("INAT_BASE_URL", "https://inat.example.com")
	t.Setenv("INAT_TIMEOUT", "45s")
	t.Setenv("FEED_DEFAULT_COUNT", "25")
	t.Setenv("FEED_MAX_COUNT", "500")
	t.Setenv("REPORTS_DB_PATH", "/tmp/reports.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 60*time.Second {
		t.Errorf("expected read timeout 60s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.INat.BaseURL != "https://inat.example.com" {
		t.Errorf("expected custom base URL, got %s", cfg.INat.BaseURL)
	}
	if cfg.INat.Timeout != 45*time.Second {
		t.Errorf("expected timeout 45s, got %s", cfg.INat.Timeout)
	}
	if cfg.Feed.DefaultCount != 25 {
		t.Errorf("expected default count 25, got %d", cfg.Feed.DefaultCount)
	}
	if cfg.Feed.MaxCount != 500 {
		t.Errorf("expected max count 500, got %d", cfg.Feed.MaxCount)
	}
	if cfg.Reports.DBPath != "/tmp/reports.db" {
		t.Errorf("expected custom DB path, got %s", cfg.Reports.DBPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format text, got %s", cfg.Logging.Format)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"zero port", "SERVER_PORT", "0"},
		{"negative timeout", "INAT_TIMEOUT", "-5s"},
		{"zero default count", "FEED_DEFAULT_COUNT", "0"},
		{"max below default", "FEED_MAX_COUNT", "1"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "yaml"},
		{"zero radius", "FEED_DEFAULT_RADIUS_KM", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected Load() to fail with %s=%s", tt.key, tt.value)
			}
		})
	}
}
