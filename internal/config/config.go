// Package config defines all configuration structures for the molgraph
// engine.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EngineConfig holds the comparison-engine tunables: input size limits and
// the default search budget applied when a request does not carry its own.
type EngineConfig struct {
	// MaxAtoms caps the vertex count of any parsed molecule.
	MaxAtoms int `mapstructure:"max_atoms"`

	// DefaultTimeout bounds one common-subgraph search when the caller does
	// not specify a deadline.  Zero disables the implicit deadline.
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`

	// MaxNodes caps expanded search nodes per common-subgraph search.
	// Zero means unlimited.
	MaxNodes int64 `mapstructure:"max_nodes"`

	// BatchWorkers is the number of concurrent solvers used by batch
	// scoring operations.
	BatchWorkers int `mapstructure:"batch_workers"`
}

// RedisConfig holds Redis connection parameters for the shared result cache.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// CacheConfig holds the two caching layers: the in-process LRU for parsed
// graphs and the optional Redis cache for computed comparison results.
type CacheConfig struct {
	// GraphLRUSize is the entry capacity of the in-process parsed-graph
	// cache.  Zero disables it.
	GraphLRUSize int `mapstructure:"graph_lru_size"`

	// EnableRedis switches the shared result cache on.  When false the
	// Redis section is ignored entirely.
	EnableRedis bool `mapstructure:"enable_redis"`

	Redis RedisConfig `mapstructure:"redis"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the engine.  Every component
// reads its settings from the relevant sub-struct.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Engine.MaxAtoms < 1 {
		return fmt.Errorf("config: engine.max_atoms must be >= 1, got %d", c.Engine.MaxAtoms)
	}
	if c.Engine.MaxNodes < 0 {
		return fmt.Errorf("config: engine.max_nodes must be >= 0, got %d", c.Engine.MaxNodes)
	}
	if c.Engine.DefaultTimeout < 0 {
		return fmt.Errorf("config: engine.default_timeout must not be negative")
	}
	if c.Engine.BatchWorkers < 1 {
		return fmt.Errorf("config: engine.batch_workers must be >= 1, got %d", c.Engine.BatchWorkers)
	}

	if c.Cache.GraphLRUSize < 0 {
		return fmt.Errorf("config: cache.graph_lru_size must be >= 0, got %d", c.Cache.GraphLRUSize)
	}
	if c.Cache.EnableRedis {
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("config: cache.redis.addr is required when redis caching is enabled")
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("config: cache.redis.db must be >= 0, got %d", c.Cache.Redis.DB)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
