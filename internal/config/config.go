// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the watchlist configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Runtime environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// logLevels maps WATCHLIST_LOG_LEVEL values to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
// It is built once at startup and handed to the components that need it.
type Config struct {
	DBDriver        string        `env:"WATCHLIST_DB_DRIVER" envDefault:"sqlite"`
	DBPath          string        `env:"WATCHLIST_DB_PATH" envDefault:"./data/data.db"` // file path, or DSN for mysql
	SecretKey       string        `env:"WATCHLIST_SECRET_KEY,required"`
	ServerHost      string        `env:"WATCHLIST_SERVER_HOST" envDefault:"localhost"`
	ServerPort      int           `env:"WATCHLIST_SERVER_PORT" envDefault:"5000"`
	Env             string        `env:"WATCHLIST_ENV" envDefault:"development"`
	LogLevel        string        `env:"WATCHLIST_LOG_LEVEL" envDefault:"info"`
	RedisURL        string        `env:"WATCHLIST_REDIS_URL"` // Optional Redis URL for the session store
	SessionLifetime time.Duration `env:"WATCHLIST_SESSION_LIFETIME" envDefault:"24h"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisSessions returns true if sessions should be kept in Redis.
func (c Config) UseRedisSessions() bool {
	return c.RedisURL != ""
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	if level, ok := logLevels[c.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}

// MinSecretKeyLength is the minimum required length for the secret key.
const MinSecretKeyLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.SecretKey) {
		slog.Warn("WATCHLIST_SECRET_KEY has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// Validate checks values that struct tags cannot express.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("WATCHLIST_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverMySQL, c.DBDriver)
	}

	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("WATCHLIST_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}

	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("WATCHLIST_LOG_LEVEL must be one of debug, info, warn, error; got %q", c.LogLevel)
	}

	if len(c.SecretKey) < MinSecretKeyLength {
		return fmt.Errorf("WATCHLIST_SECRET_KEY must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSecretKeyLength, len(c.SecretKey))
	}

	for _, weak := range knownWeakSecrets {
		if c.SecretKey == weak {
			return fmt.Errorf("WATCHLIST_SECRET_KEY is a known default value and must not be used")
		}
	}

	if c.SessionLifetime <= 0 {
		return fmt.Errorf("WATCHLIST_SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
