// Package sync owns the authoritative in-memory view of one group's shared
// list. It applies local mutations optimistically, pushes them to the
// remote store, and reconciles change notifications by replacing the whole
// in-memory snapshot with a fresh full fetch.
//
// Reconciliation is deliberately not an incremental merge: every change
// event, including ones triggered by this device's own writes, re-runs the
// same full fetch. Any missed or out-of-order event is corrected by the
// next fetch, so the view is self-healing at the cost of an occasional
// redundant round trip.
package sync

import (
	"context"
	"strings"
	"sync"
	"time"

	"famlist/internal/codegen"
	"famlist/internal/logging"
	"famlist/internal/models"
)

// ItemStore is the remote item surface the synchronizer writes through.
// A nil ItemStore means local-only mode: mutations stay in memory and in
// the snapshot cache, and no network calls are made.
type ItemStore interface {
	ListItems(ctx context.Context, groupID string) ([]models.ListItem, error)
	InsertItem(ctx context.Context, groupID string, it models.ListItem) error
	SetItemDone(ctx context.Context, id string, done bool) error
	DeleteItem(ctx context.Context, id string) error
}

// Subscription is a cancellable change-feed registration.
type Subscription interface {
	Cancel()
}

// ChangeFeed registers a payload-less "something changed, re-fetch" callback
// scoped to one group.
type ChangeFeed interface {
	Subscribe(ctx context.Context, groupID string, onChange func()) (Subscription, error)
}

// ChangeFeedFunc adapts a function to the ChangeFeed interface.
type ChangeFeedFunc func(ctx context.Context, groupID string, onChange func()) (Subscription, error)

func (f ChangeFeedFunc) Subscribe(ctx context.Context, groupID string, onChange func()) (Subscription, error) {
	return f(ctx, groupID, onChange)
}

// SnapshotCache persists the last-known item snapshot per group. Optional;
// failures are logged and never surfaced.
type SnapshotCache interface {
	SaveItems(ctx context.Context, groupID string, items []models.ListItem) error
	LoadItems(ctx context.Context, groupID string) ([]models.ListItem, error)
}

// Syncer reconciles local state, the remote store and the change feed into
// one consistent view of a single group's list.
//
// Mutation errors at this boundary are swallowed by design: the optimistic
// local state stays visible and the next successful fetch corrects it.
type Syncer struct {
	store ItemStore
	feed  ChangeFeed
	cache SnapshotCache
	log   logging.Logger

	mu      sync.Mutex
	groupID string
	items   []models.ListItem
	sub     Subscription
	// gen counts attachments. A fetch started under generation g commits
	// its result only while the syncer is still at g, so a late-arriving
	// fetch for group A can never overwrite group B's view.
	gen uint64

	// Test seams.
	now   func() time.Time
	newID func() string
}

// New returns a detached Syncer. store, feed and cache may each be nil.
func New(store ItemStore, feed ChangeFeed, cache SnapshotCache, log logging.Logger) *Syncer {
	return &Syncer{
		store: store,
		feed:  feed,
		cache: cache,
		log:   log,
		now:   time.Now,
		newID: func() string { return codegen.Generate(codegen.ItemIDLength) },
	}
}

// Attach binds the syncer to groupID: it tears down any previous
// subscription, resets the in-memory items, performs an initial full fetch
// and only then opens the change subscription, so no notification can slip
// between snapshot and listening. Attaching to the already-attached group
// is a no-op; an empty groupID leaves the syncer detached.
func (s *Syncer) Attach(ctx context.Context, groupID string) {
	s.mu.Lock()
	if groupID == s.groupID {
		s.mu.Unlock()
		return
	}
	sub := s.sub
	s.sub = nil
	s.groupID = groupID
	s.items = nil
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
	if groupID == "" {
		return
	}

	// The initial fetch completes before the subscription registers.
	s.refresh(ctx, gen)

	if s.feed == nil || s.store == nil {
		return
	}
	sub, err := s.feed.Subscribe(ctx, groupID, func() {
		s.refresh(context.Background(), gen)
	})
	if err != nil {
		s.log.Warn(ctx, "change subscription failed, list will not live-update", "group", groupID, "error", err)
		return
	}
	s.mu.Lock()
	if s.gen != gen {
		// Re-attached while subscribing; this subscription is stale.
		s.mu.Unlock()
		sub.Cancel()
		return
	}
	s.sub = sub
	s.mu.Unlock()
}

// Detach cancels the subscription and clears the in-memory items. Called on
// sign-out and before switching groups.
func (s *Syncer) Detach() {
	s.Attach(context.Background(), "")
}

// Items returns a copy of the current in-memory view.
func (s *Syncer) Items() []models.ListItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ListItem, len(s.items))
	copy(out, s.items)
	return out
}

// GroupID returns the currently attached group, or "" when detached.
func (s *Syncer) GroupID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groupID
}

// AddItem appends a new item optimistically and then issues the remote
// insert. The item is visible in Items before any remote round trip
// completes. Empty titles and the detached state are no-ops.
func (s *Syncer) AddItem(ctx context.Context, title, addedBy string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}

	s.mu.Lock()
	if s.groupID == "" {
		s.mu.Unlock()
		return
	}
	groupID := s.groupID
	it := models.ListItem{
		ID:        s.newID(),
		Title:     title,
		AddedBy:   addedBy,
		CreatedAt: s.now().UTC(),
	}
	s.items = append(s.items, it)
	snapshot := make([]models.ListItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	s.saveSnapshot(ctx, groupID, snapshot)

	if s.store == nil {
		return
	}
	if err := s.store.InsertItem(ctx, groupID, it); err != nil {
		// The optimistic item stays visible until the next fetch.
		s.log.Warn(ctx, "remote insert failed", "item", it.ID, "error", err)
	}
}

// ToggleItem flips the done flag of the matching item optimistically and
// issues a remote update of just that field. No-op when id is not found.
func (s *Syncer) ToggleItem(ctx context.Context, id string) {
	s.mu.Lock()
	if s.groupID == "" {
		s.mu.Unlock()
		return
	}
	groupID := s.groupID
	var done, found bool
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Done = !s.items[i].Done
			done = s.items[i].Done
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	snapshot := make([]models.ListItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	s.saveSnapshot(ctx, groupID, snapshot)

	if s.store == nil {
		return
	}
	if err := s.store.SetItemDone(ctx, id, done); err != nil {
		s.log.Warn(ctx, "remote update failed", "item", id, "error", err)
	}
}

// RemoveItem removes the matching item optimistically and issues the remote
// delete. No-op when id is not found.
func (s *Syncer) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	if s.groupID == "" {
		s.mu.Unlock()
		return
	}
	groupID := s.groupID
	found := false
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.items = kept
	snapshot := make([]models.ListItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	s.saveSnapshot(ctx, groupID, snapshot)

	if s.store == nil {
		return
	}
	if err := s.store.DeleteItem(ctx, id); err != nil {
		s.log.Warn(ctx, "remote delete failed", "item", id, "error", err)
	}
}

// refresh runs the full fetch for the generation it was started under and
// replaces the in-memory items wholesale. Results for a stale generation
// are discarded.
func (s *Syncer) refresh(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	groupID := s.groupID
	s.mu.Unlock()

	var items []models.ListItem
	var err error
	switch {
	case s.store != nil:
		items, err = s.store.ListItems(ctx, groupID)
		if err != nil {
			// Keep the current view; the next notification retries.
			s.log.Warn(ctx, "fetch failed", "group", groupID, "error", err)
			return
		}
	case s.cache != nil:
		items, err = s.cache.LoadItems(ctx, groupID)
		if err != nil {
			s.log.Warn(ctx, "cache load failed", "group", groupID, "error", err)
			return
		}
	default:
		items = []models.ListItem{}
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.items = items
	s.mu.Unlock()

	if s.store != nil {
		s.saveSnapshot(ctx, groupID, items)
	}
}

func (s *Syncer) saveSnapshot(ctx context.Context, groupID string, items []models.ListItem) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveItems(ctx, groupID, items); err != nil {
		s.log.Warn(ctx, "cache save failed", "group", groupID, "error", err)
	}
}
