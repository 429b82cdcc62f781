// Package identity persists a device's group membership (GroupConfig)
// durably across restarts. The store holds at most one config: Save
// overwrites, Clear signs the device out.
//
// No validation happens here; contents are validated at the join/create
// boundary before they are saved.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"famlist/internal/models"
)

// Store is a file-backed GroupConfig store. The path is injected at
// construction so tests can run several simulated devices in-process.
type Store struct {
	path string
}

// NewStore returns a Store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted config. It returns (nil, nil) when the device
// has not joined or created a group yet.
func (s *Store) Load() (*models.GroupConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg models.GroupConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save overwrites the persisted config. Idempotent.
func (s *Store) Save(cfg models.GroupConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Clear removes the persisted config (sign-out). Idempotent: succeeds when
// no config exists.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing config: %w", err)
	}
	return nil
}
