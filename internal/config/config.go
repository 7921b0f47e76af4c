// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/atelier/internal/catalog"
	"github.com/tomtom215/atelier/internal/kvstore"
	"github.com/tomtom215/atelier/internal/personalize"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Sections:
//   - Server: HTTP listener and timeouts
//   - Logging: zerolog level and output format
//   - Storage: key-value backend for liked sets (memory, badger, redis)
//   - Catalog: product catalog source and refresh cadence
//   - Personalize: engine tunables (threshold, confidence, persistence)
//   - Sessions: per-session engine registry bounds
//   - Security: rate limiting, CORS and proxy trust
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server      ServerConfig       `koanf:"server"`
	Logging     LoggingConfig      `koanf:"logging"`
	Storage     kvstore.Config     `koanf:"storage"`
	Catalog     catalog.Config     `koanf:"catalog"`
	Personalize personalize.Config `koanf:"personalize"`
	Sessions    SessionsConfig     `koanf:"sessions"`
	Security    SecurityConfig     `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SessionsConfig bounds the per-session engine registry.
//
// Environment Variables:
//   - SESSION_MAX_ACTIVE: maximum engines held in memory (default: 10000)
//   - SESSION_IDLE_TTL: idle time before an engine is evicted (default: 30m)
//   - SESSION_CLOSE_TIMEOUT: time allowed to flush an evicted engine (default: 5s)
type SessionsConfig struct {
	MaxActive    int           `koanf:"max_active"`
	IdleTTL      time.Duration `koanf:"idle_ttl"` // 0 disables idle eviction
	CloseTimeout time.Duration `koanf:"close_timeout"`
}

// SecurityConfig holds request-level protection settings.
// There is no authentication layer; session ids are opaque client tokens.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration using the layered koanf loader.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
