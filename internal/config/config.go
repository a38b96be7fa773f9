// Package config loads client configuration and sets up logging.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration values. The backend URL and credential path
// are injected into the components that need them; nothing reads the
// environment past Load.
type Config struct {
	// Backend connection
	BackendURL string
	Timeout    time.Duration

	// Credential store
	CredentialsPath string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables, falling back to
// defaults that match the development backend.
func Load() Config {
	return Config{
		BackendURL: getEnv("SHOPCOPILOT_BACKEND_URL", "http://127.0.0.1:8000"),
		Timeout:    parseDuration(getEnv("SHOPCOPILOT_TIMEOUT", "60s")),

		CredentialsPath: getEnv("SHOPCOPILOT_CREDENTIALS", defaultCredentialsPath()),

		LogFile:  getEnv("SHOPCOPILOT_LOG_FILE", filepath.Join(os.TempDir(), "shopcopilot.log")),
		LogLevel: parseLogLevel(getEnv("SHOPCOPILOT_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func defaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "shopcopilot-credentials.yaml")
	}
	return filepath.Join(home, ".config", "shopcopilot", "credentials.yaml")
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
