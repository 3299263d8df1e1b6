// Package config loads application configuration from environment variables.
// All variables use the NOTES_ prefix.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port      int
	Host      string
	Env       string // "development" or "production"
	StaticDir string
}

// ContentConfig holds dataset settings.
type ContentConfig struct {
	Dir           string // empty means the embedded dataset
	StartCategory string
	StartTopic    string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings.
type CacheConfig struct {
	URL string
}

// AnalyticsConfig holds event sink settings.
type AnalyticsConfig struct {
	Enabled bool
	Stream  string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with NOTES_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      envInt("NOTES_SERVER_PORT", 5000),
			Host:      envStr("NOTES_SERVER_HOST", "0.0.0.0"),
			Env:       envStr("NOTES_ENV", EnvDevelopment),
			StaticDir: envStr("NOTES_STATIC_DIR", "client/build"),
		},
		Content: ContentConfig{
			Dir:           envStr("NOTES_CONTENT_DIR", ""),
			StartCategory: envStr("NOTES_START_CATEGORY", ""),
			StartTopic:    envStr("NOTES_START_TOPIC", ""),
		},
		Database: DatabaseConfig{
			URL:      envStr("NOTES_DATABASE_URL", ""),
			MaxConns: envInt("NOTES_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("NOTES_DATABASE_MIN_CONNS", 1),
		},
		Cache: CacheConfig{
			URL: envStr("NOTES_CACHE_URL", ""),
		},
		Analytics: AnalyticsConfig{
			Enabled: envBool("NOTES_ANALYTICS_ENABLED", true),
			Stream:  envStr("NOTES_ANALYTICS_STREAM", "notes:events"),
		},
		Log: LogConfig{
			Level:  envStr("NOTES_LOG_LEVEL", "info"),
			Format: envStr("NOTES_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("NOTES_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.Env != EnvDevelopment && c.Server.Env != EnvProduction {
		return fmt.Errorf("NOTES_ENV must be 'development' or 'production', got %q", c.Server.Env)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("NOTES_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	if c.Database.URL != "" && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("NOTES_DATABASE_MIN_CONNS (%d) exceeds NOTES_DATABASE_MAX_CONNS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	return nil
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("NOTES_LOG_LEVEL must be debug, info, warn or error, got %q", l.Level)
	}
	return lvl, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
