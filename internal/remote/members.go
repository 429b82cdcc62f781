package remote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertMember registers a member row for the group. Member names carry no
// identity beyond the display string, so the row gets a synthetic uuid key.
func (s *Store) InsertMember(ctx context.Context, groupID, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, family_id, name) VALUES ($1, $2, $3)`,
		uuid.NewString(), groupID, name)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}
