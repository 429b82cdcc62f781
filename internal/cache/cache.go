// Package cache keeps a device-local snapshot of the last-known item set
// per group, backed by SQLite. It is the data source in local-only mode and
// a warm-start fallback when remote sync is configured.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"famlist/internal/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS items (
		family_id  TEXT NOT NULL,
		pos        INTEGER NOT NULL,
		id         TEXT NOT NULL,
		title      TEXT NOT NULL,
		done       INTEGER NOT NULL,
		added_by   TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (family_id, pos)
	)
`

// Store is a SQLite-backed item snapshot cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveItems replaces the cached snapshot for groupID with items, preserving
// their order. The replace runs in one transaction so readers never observe
// a half-written snapshot.
func (s *Store) SaveItems(ctx context.Context, groupID string, items []models.ListItem) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning cache tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM items WHERE family_id = ?`, groupID); err != nil {
		return fmt.Errorf("clearing cached items: %w", err)
	}

	for pos, it := range items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO items (family_id, pos, id, title, done, added_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			groupID, pos, it.ID, it.Title, it.Done, it.AddedBy, it.CreatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("caching item: %w", err)
		}
	}
	return nil
}

// LoadItems returns the cached snapshot for groupID in its stored order.
// A group with no snapshot yields an empty slice.
func (s *Store) LoadItems(ctx context.Context, groupID string) ([]models.ListItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, done, added_by, created_at FROM items
		 WHERE family_id = ? ORDER BY pos`, groupID)
	if err != nil {
		return nil, fmt.Errorf("selecting cached items: %w", err)
	}
	defer rows.Close()

	items := []models.ListItem{}
	for rows.Next() {
		var it models.ListItem
		var createdAt int64
		if err := rows.Scan(&it.ID, &it.Title, &it.Done, &it.AddedBy, &createdAt); err != nil {
			return nil, err
		}
		it.CreatedAt = time.UnixMilli(createdAt).UTC()
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
