package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FAMLIST_DATABASE_URL", "")
	t.Setenv("FAMLIST_DATA_DIR", "")

	cfg := Load()
	require.NotNil(t, cfg)

	assert.False(t, cfg.RemoteConfigured())
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FAMLIST_DATABASE_URL", "postgres://famlist@localhost/famlist")
	t.Setenv("FAMLIST_DATA_DIR", "/tmp/famlist-test")

	cfg := Load()

	assert.True(t, cfg.RemoteConfigured())
	assert.Equal(t, "postgres://famlist@localhost/famlist", cfg.DatabaseURL)
	assert.Equal(t, "/tmp/famlist-test", cfg.DataDir)
}

func TestConfig_Paths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}

	assert.Equal(t, filepath.Join("/data", "family.json"), cfg.ConfigFile())
	assert.Equal(t, filepath.Join("/data", "cache.db"), cfg.CacheFile())
}
