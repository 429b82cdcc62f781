// Package remote is the gateway to the shared backing store: PostgreSQL
// row CRUD for groups, members and items, plus a LISTEN/NOTIFY change feed
// scoped by group.
//
// The gateway is optional. When no database URL is configured the client
// constructs none of this and runs in local-only mode; callers hold nil
// interfaces and skip remote calls entirely.
package remote

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"famlist/internal/logging"
	"famlist/internal/remote/migrations"
)

// Store provides row CRUD against the remote PostgreSQL instance.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

// Open connects to the remote store and verifies reachability.
func Open(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening remote store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging remote store: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunMigrations applies the embedded schema migrations (tables plus the
// items change-notification trigger).
func (s *Store) RunMigrations(ctx context.Context) error {
	s.log.Info(ctx, "applying remote schema migrations")
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}
