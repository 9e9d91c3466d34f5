package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultShutdownTimeout = 10 * time.Second

	DefaultMaxAtoms       = 512
	DefaultSearchTimeout  = 2 * time.Second
	DefaultMaxSearchNodes = int64(5_000_000)
	DefaultBatchWorkers   = 8

	DefaultGraphLRUSize = 4096
	DefaultRedisAddr    = "localhost:6379"
	DefaultRedisTTL     = 24 * time.Hour
	DefaultKeyPrefix    = "molgraph:"

	DefaultMetricsPath = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	if cfg.Engine.MaxAtoms == 0 {
		cfg.Engine.MaxAtoms = DefaultMaxAtoms
	}
	if cfg.Engine.DefaultTimeout == 0 {
		cfg.Engine.DefaultTimeout = DefaultSearchTimeout
	}
	if cfg.Engine.MaxNodes == 0 {
		cfg.Engine.MaxNodes = DefaultMaxSearchNodes
	}
	if cfg.Engine.BatchWorkers == 0 {
		cfg.Engine.BatchWorkers = DefaultBatchWorkers
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.GraphLRUSize == 0 {
		cfg.Cache.GraphLRUSize = DefaultGraphLRUSize
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Cache.Redis.DefaultTTL == 0 {
		cfg.Cache.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = DefaultKeyPrefix
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
