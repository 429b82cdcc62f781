// Command migrate applies the remote schema (tables plus the change
// notification trigger) to the configured backing store.
package main

import (
	"context"
	"os"

	"famlist/internal/config"
	"famlist/internal/logging"
	"famlist/internal/remote"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	log := logging.NewTerminalLogger()

	if !cfg.RemoteConfigured() {
		log.Error(ctx, "FAMLIST_DATABASE_URL is not set; nothing to migrate")
		os.Exit(1)
	}

	store, err := remote.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error(ctx, "cannot reach remote store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.RunMigrations(ctx); err != nil {
		log.Error(ctx, "migrations failed", "error", err)
		os.Exit(1)
	}
	log.Info(ctx, "migrations applied")
}
