// Package config loads famlist runtime settings from the environment.
//
// Two deployment modes exist: when FAMLIST_DATABASE_URL is set the client
// syncs against the remote store; when it is absent the client runs in
// local-only mode (no network, cache-backed). Absence of the value is a
// mode, not an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the famlist CLI.
type Config struct {
	// DatabaseURL is the DSN of the remote backing store. Empty means
	// local-only mode.
	DatabaseURL string

	// DataDir holds the device-local state: the membership file and the
	// item cache database.
	DataDir string
}

// Load reads configuration from a .env file (if present) and environment
// variables, falling back to defaults. It never fails: a missing .env and
// missing variables simply select local-only mode and the default data dir.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL: os.Getenv("FAMLIST_DATABASE_URL"),
		DataDir:     getEnv("FAMLIST_DATA_DIR", defaultDataDir()),
	}
}

// ConfigFile returns the path of the persisted GroupConfig.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "family.json")
}

// CacheFile returns the path of the local item cache database.
func (c *Config) CacheFile() string {
	return filepath.Join(c.DataDir, "cache.db")
}

// RemoteConfigured reports whether a remote backing store is selected.
func (c *Config) RemoteConfigured() bool {
	return c.DatabaseURL != ""
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".famlist"
	}
	return filepath.Join(base, "famlist")
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
