package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"famlist/internal/cache"
	"famlist/internal/cli"
	"famlist/internal/config"
	"famlist/internal/enroll"
	"famlist/internal/identity"
	"famlist/internal/logging"
	"famlist/internal/remote"
	"famlist/internal/sync"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logging.NewTerminalLogger()

	var (
		items   sync.ItemStore
		feed    sync.ChangeFeed
		groups  enroll.GroupStore
		members enroll.MemberStore
	)
	if cfg.RemoteConfigured() {
		store, err := remote.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			// Unreachable store degrades to local-only rather than failing startup.
			log.Warn(ctx, "remote store unreachable, running local-only", "error", err)
		} else {
			defer store.Close()
			items, groups, members = store, store, store

			listener := remote.NewListener(cfg.DatabaseURL, log)
			feed = sync.ChangeFeedFunc(func(ctx context.Context, groupID string, onChange func()) (sync.Subscription, error) {
				return listener.Subscribe(ctx, groupID, onChange)
			})
		}
	} else {
		log.Info(ctx, "no remote store configured, running local-only")
	}

	var snapshots sync.SnapshotCache
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		log.Warn(ctx, "cannot create data dir, cache disabled", "dir", cfg.DataDir, "error", err)
	} else if c, err := cache.Open(ctx, cfg.CacheFile()); err != nil {
		log.Warn(ctx, "cannot open item cache, cache disabled", "error", err)
	} else {
		defer c.Close()
		snapshots = c
	}

	configs := identity.NewStore(cfg.ConfigFile())
	syncer := sync.New(items, feed, snapshots, log)
	flow := enroll.NewFlow(groups, members, configs)

	app := cli.NewApp(flow, syncer, configs, log)
	if err := app.Run(ctx); err != nil {
		log.Error(ctx, "exiting", "error", err)
		os.Exit(1)
	}
}
