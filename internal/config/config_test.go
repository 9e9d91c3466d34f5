package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultMaxAtoms, cfg.Engine.MaxAtoms)
	assert.Equal(t, DefaultSearchTimeout, cfg.Engine.DefaultTimeout)
	assert.Equal(t, DefaultMaxSearchNodes, cfg.Engine.MaxNodes)
	assert.Equal(t, DefaultBatchWorkers, cfg.Engine.BatchWorkers)
	assert.Equal(t, DefaultGraphLRUSize, cfg.Cache.GraphLRUSize)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := &Config{}
	cfg.Engine.MaxAtoms = 64
	cfg.Server.Port = 9999
	ApplyDefaults(cfg)
	assert.Equal(t, 64, cfg.Engine.MaxAtoms)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad_port", func(c *Config) { c.Server.Port = 0 }},
		{"bad_mode", func(c *Config) { c.Server.Mode = "fast" }},
		{"zero_max_atoms", func(c *Config) { c.Engine.MaxAtoms = 0 }},
		{"negative_nodes", func(c *Config) { c.Engine.MaxNodes = -1 }},
		{"zero_workers", func(c *Config) { c.Engine.BatchWorkers = 0 }},
		{"redis_without_addr", func(c *Config) { c.Cache.EnableRedis = true; c.Cache.Redis.Addr = "" }},
		{"bad_log_level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad_log_format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "molgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
engine:
  max_atoms: 128
  default_timeout: 500ms
cache:
  graph_lru_size: 16
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 128, cfg.Engine.MaxAtoms)
	assert.Equal(t, 500*time.Millisecond, cfg.Engine.DefaultTimeout)
	assert.Equal(t, 16, cfg.Cache.GraphLRUSize)
	// Untouched sections still get defaults.
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MOLGRAPH_SERVER_PORT", "7070")
	t.Setenv("MOLGRAPH_ENGINE_MAX_ATOMS", "99")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 99, cfg.Engine.MaxAtoms)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() { MustLoad("/nonexistent/path.yaml") })
}
