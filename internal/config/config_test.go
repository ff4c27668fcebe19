package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cardring.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, timeout)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
game {
  players      = 4
  pack         = "packs/four.txt"
  shuffle      = true
  seed         = 42
  timeout      = "30s"
  idle_backoff = "250us"
}

output {
  dir  = "runs"
  sync = true
}

log {
  level  = "debug"
  format = "json"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4, cfg.Game.Players)
	assert.Equal(t, "packs/four.txt", cfg.Game.Pack)
	assert.True(t, cfg.Game.Shuffle)
	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, int64(42), *cfg.Game.Seed)
	assert.Equal(t, "runs", cfg.Output.Dir)
	assert.True(t, cfg.Output.Sync)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	backoff, err := cfg.IdleBackoffDuration()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Microsecond, backoff)
}

func TestLoadPartialFileAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `game { players = 3 }`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Game.Players)
	assert.Nil(t, cfg.Game.Seed)
	assert.Equal(t, "1ms", cfg.Game.IdleBackoff)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `game {`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `game { unknown = 1 }`))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative players", func(c *Config) { c.Game.Players = -1 }},
		{"bad timeout", func(c *Config) { c.Game.Timeout = "soon" }},
		{"negative timeout", func(c *Config) { c.Game.Timeout = "-1s" }},
		{"zero backoff", func(c *Config) { c.Game.IdleBackoff = "0" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
