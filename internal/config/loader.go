// Package config provides configuration loading, defaults, and validation
// for the molgraph engine.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all engine settings.
const envPrefix = "MOLGRAPH"

// newViper builds a pre-configured Viper instance: YAML file type, MOLGRAPH_
// env prefix, automatic env binding, and a key replacer that maps "." → "_"
// so that nested keys like "engine.max_atoms" resolve to
// "MOLGRAPH_ENGINE_MAX_ATOMS".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys declares every configuration key to viper.  Unmarshal only
// consults the environment for keys it knows about, so without this the
// MOLGRAPH_* overrides would be ignored in file-less deployments.
func registerKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.mode", "server.read_timeout", "server.write_timeout",
		"server.max_body_size", "server.shutdown_timeout",
		"engine.max_atoms", "engine.default_timeout", "engine.max_nodes", "engine.batch_workers",
		"cache.graph_lru_size", "cache.enable_redis",
		"cache.redis.addr", "cache.redis.password", "cache.redis.db", "cache.redis.pool_size",
		"cache.redis.dial_timeout", "cache.redis.read_timeout", "cache.redis.write_timeout",
		"cache.redis.default_ttl", "cache.redis.key_prefix",
		"metrics.enabled", "metrics.path",
		"log.level", "log.format", "log.output",
	} {
		v.SetDefault(key, nil)
	}
}

// Load reads the YAML file at configPath, merges any MOLGRAPH_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MOLGRAPH_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised deployments.
//
// Environment variable naming convention:
//
//	MOLGRAPH_<SECTION>_<FIELD>   e.g.  MOLGRAPH_SERVER_PORT, MOLGRAPH_ENGINE_MAX_ATOMS
func LoadFromEnv() (*Config, error) {
	v := newViper()
	// No config file; rely solely on env vars and defaults.
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
