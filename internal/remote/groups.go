package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"famlist/internal/common"
)

// pgUniqueViolation is the PostgreSQL error code for a unique constraint
// violation, surfaced on duplicate group codes.
const pgUniqueViolation = "23505"

// InsertGroup creates the group row for a freshly minted code. A code
// collision surfaces as common.ErrorAlreadyExists.
func (s *Store) InsertGroup(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO groups (id) VALUES ($1)`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("group %s: %w", id, common.ErrorAlreadyExists)
		}
		return fmt.Errorf("inserting group: %w", err)
	}
	return nil
}

// GroupExists is the point lookup used to validate a group code on join.
// An unknown code surfaces as common.ErrorNotFound.
func (s *Store) GroupExists(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM groups WHERE id = $1`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up group: %w", err)
	}
	return nil
}
