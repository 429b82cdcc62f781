package remote

import (
	"context"
	"fmt"

	"famlist/internal/models"
)

// ListItems returns the full item set for a group ordered by creation time
// ascending; ties keep the store's arrival order. This is the fetch that
// every reconciliation runs.
func (s *Store) ListItems(ctx context.Context, groupID string) ([]models.ListItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, done, added_by, created_at FROM items
		 WHERE family_id = $1 ORDER BY created_at ASC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("selecting items: %w", err)
	}
	defer rows.Close()

	items := []models.ListItem{}
	for rows.Next() {
		var it models.ListItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Done, &it.AddedBy, &it.CreatedAt); err != nil {
			return nil, err
		}
		it.CreatedAt = it.CreatedAt.UTC()
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// InsertItem writes a new item row for the group.
func (s *Store) InsertItem(ctx context.Context, groupID string, it models.ListItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, family_id, title, done, added_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, groupID, it.Title, it.Done, it.AddedBy, it.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

// SetItemDone updates only the done flag for one item. Concurrent toggles
// resolve last-write-wins at the store.
func (s *Store) SetItemDone(ctx context.Context, id string, done bool) error {
	_, err := s.db.ExecContext(ctx, `UPDATE items SET done = $1 WHERE id = $2`, done, id)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem hard-deletes one item row. No tombstone, no undo.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}
