// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package config provides layered application configuration via Koanf v2.
// Precedence: environment variables > YAML config file > built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Feed     FeedConfig     `koanf:"feed"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"` // Read/write timeout for the HTTP server
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // Database file path, ":memory:" for ephemeral
	MaxMemory string `koanf:"max_memory"` // DuckDB memory cap, e.g. "1GB"
	Threads   int    `koanf:"threads"`    // 0 = runtime.NumCPU()
}

// CacheConfig holds feed cache settings.
//
// The index feed response is cached wholesale and invalidated on any post
// write. Backend "memory" keeps entries in-process; "badger" persists them
// across restarts.
type CacheConfig struct {
	Backend string        `koanf:"backend"` // "memory" or "badger"
	Path    string        `koanf:"path"`    // Badger directory (badger backend only)
	TTL     time.Duration `koanf:"ttl"`     // Entry time-to-live
}

// FeedConfig holds feed pagination settings.
type FeedConfig struct {
	PageSize    int `koanf:"page_size"`     // Default posts per page
	MaxPageSize int `koanf:"max_page_size"` // Upper bound for client-requested page sizes
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	JWTSecret       string        `koanf:"jwt_secret"`        // HMAC signing secret, min 32 chars
	SessionTimeout  time.Duration `koanf:"session_timeout"`   // JWT token lifetime
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`   // Requests per window for auth endpoints
	RateLimitWindow time.Duration `koanf:"rate_limit_window"` // Rate limit window
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Feed.PageSize < 1 {
		return fmt.Errorf("feed.page_size must be positive, got %d", c.Feed.PageSize)
	}
	if c.Feed.MaxPageSize < c.Feed.PageSize {
		return fmt.Errorf("feed.max_page_size (%d) must be >= feed.page_size (%d)",
			c.Feed.MaxPageSize, c.Feed.PageSize)
	}
	switch c.Cache.Backend {
	case "memory", "badger":
	default:
		return fmt.Errorf("cache.backend must be \"memory\" or \"badger\", got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "badger" && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required for the badger cache backend")
	}
	return nil
}
