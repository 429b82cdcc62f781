package remote

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"famlist/internal/logging"
)

// itemsChannel is the single NOTIFY channel fired by the items trigger.
// The payload carries the family id; listeners filter on it and otherwise
// treat the event as a payload-less "something changed" signal.
const itemsChannel = "famlist_items_changed"

// reconnectDelay paces reconnection attempts after the feed connection drops.
const reconnectDelay = 3 * time.Second

// Listener opens dedicated LISTEN connections for change subscriptions.
// Each subscription owns its own connection: pgx connections cannot share
// WaitForNotification with pooled query traffic.
type Listener struct {
	dsn string
	log logging.Logger
}

// NewListener returns a Listener dialing the given DSN per subscription.
func NewListener(dsn string, log logging.Logger) *Listener {
	return &Listener{dsn: dsn, log: log}
}

// Subscription is a handle to one active change subscription.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel unregisters the listener and waits for its goroutine to exit.
// After Cancel returns no further onChange calls are made.
func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
}

// Subscribe registers onChange to fire whenever any item row in the given
// group changes. The LISTEN is active before Subscribe returns. onChange
// runs on the listener goroutine and carries no payload; handlers are
// expected to re-fetch.
func (l *Listener) Subscribe(ctx context.Context, groupID string, onChange func()) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	conn, err := l.dial(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{cancel: cancel, done: make(chan struct{})}
	go l.run(ctx, conn, groupID, onChange, sub.done)
	return sub, nil
}

func (l *Listener) dial(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+itemsChannel); err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}
	return conn, nil
}

func (l *Listener) run(ctx context.Context, conn *pgx.Conn, groupID string, onChange func(), done chan struct{}) {
	defer close(done)
	defer func() {
		if conn != nil {
			_ = conn.Close(context.Background())
		}
	}()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			_ = conn.Close(context.Background())
			conn = nil
			if ctx.Err() != nil {
				return
			}
			l.log.Warn(ctx, "change feed connection lost, reconnecting", "group", groupID, "error", err)
			conn = l.redial(ctx)
			if conn == nil {
				return
			}
			// Notifications may have fired while disconnected; one
			// unconditional change signal lets the next full fetch heal
			// whatever was missed.
			onChange()
			continue
		}
		if n.Payload == groupID {
			onChange()
		}
	}
}

// redial retries the feed connection until it succeeds or ctx is cancelled.
func (l *Listener) redial(ctx context.Context) *pgx.Conn {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
		conn, err := l.dial(ctx)
		if err != nil {
			if ctx.Err() == nil {
				l.log.Warn(ctx, "change feed reconnect failed", "error", err)
			}
			continue
		}
		return conn
	}
}
