package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famlist/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func someItems() []models.ListItem {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []models.ListItem{
		{ID: "AAAAAAAAAA", Title: "milk", AddedBy: "Alex", CreatedAt: base},
		{ID: "BBBBBBBBBB", Title: "bread", Done: true, AddedBy: "Sam", CreatedAt: base.Add(time.Minute)},
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := newTestStore(t)

	items, err := s.LoadItems(context.Background(), "Q3XH7M")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	want := someItems()
	require.NoError(t, s.SaveItems(ctx, "Q3XH7M", want))

	got, err := s.LoadItems(ctx, "Q3XH7M")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveItems(ctx, "Q3XH7M", someItems()))

	next := []models.ListItem{
		{ID: "CCCCCCCCCC", Title: "eggs", AddedBy: "Alex", CreatedAt: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, s.SaveItems(ctx, "Q3XH7M", next))

	got, err := s.LoadItems(ctx, "Q3XH7M")
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestStore_SnapshotsAreScopedPerGroup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveItems(ctx, "AAAAAA", someItems()))
	require.NoError(t, s.SaveItems(ctx, "BBBBBB", nil))

	a, err := s.LoadItems(ctx, "AAAAAA")
	require.NoError(t, err)
	assert.Len(t, a, 2)

	b, err := s.LoadItems(ctx, "BBBBBB")
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestStore_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Same timestamp for every item: order must come from the stored
	// snapshot position, not from created_at.
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	items := []models.ListItem{
		{ID: "X1", Title: "first", AddedBy: "Alex", CreatedAt: ts},
		{ID: "X2", Title: "second", AddedBy: "Alex", CreatedAt: ts},
		{ID: "X3", Title: "third", AddedBy: "Alex", CreatedAt: ts},
	}
	require.NoError(t, s.SaveItems(ctx, "Q3XH7M", items))

	got, err := s.LoadItems(ctx, "Q3XH7M")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}
