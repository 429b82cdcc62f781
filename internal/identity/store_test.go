package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famlist/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "family.json"))
}

func TestStore_LoadAbsent(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)

	want := models.GroupConfig{GroupID: "Q3XH7M", MemberName: "Alex"}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(models.GroupConfig{GroupID: "AAAAAA", MemberName: "Alex"}))
	require.NoError(t, s.Save(models.GroupConfig{GroupID: "BBBBBB", MemberName: "Sam"}))

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "BBBBBB", got.GroupID)
	assert.Equal(t, "Sam", got.MemberName)
}

func TestStore_SaveCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "family.json")
	s := NewStore(path)

	require.NoError(t, s.Save(models.GroupConfig{GroupID: "Q3XH7M", MemberName: "Alex"}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_ClearIdempotent(t *testing.T) {
	s := newTestStore(t)

	// Clear with nothing persisted succeeds.
	require.NoError(t, s.Clear())

	require.NoError(t, s.Save(models.GroupConfig{GroupID: "Q3XH7M", MemberName: "Alex"}))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "family.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
