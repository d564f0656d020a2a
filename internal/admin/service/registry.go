package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/opsgarden/admind/internal/admin/store"
)

// Registry tracks outstanding refresh tokens in memory and evicts them at
// expiry without client action. It owns a single concurrency-safe map plus
// one background sweeper instead of a timer per token.
//
// The registry is best-effort: a process restart loses the map, so the
// persisted allowlist stays authoritative. Warm() repopulates the map from
// the store, and the sweeper also deletes expired rows the map never saw.
// All mutations are idempotent; racing a sweep against an explicit
// revocation is benign.
type Registry struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	mu      sync.Mutex
	entries map[string]registryEntry // keyed by token fingerprint

	stopCh chan struct{}
	doneCh chan struct{}
}

type registryEntry struct {
	userID    string
	expiresAt time.Time
}

// NewRegistry creates a registry sweeping at the given interval. A zero or
// negative interval defaults to one minute.
func NewRegistry(st store.Store, logger *slog.Logger, interval time.Duration) *Registry {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Registry{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		entries:  make(map[string]registryEntry),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Warm loads every unexpired allowlist row into the map. Call once on
// startup, after migrations.
func (r *Registry) Warm(ctx context.Context) error {
	recs, err := r.Store.RefreshTokens().ListActiveRefreshRecords(ctx, time.Now())
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range recs {
		r.entries[rec.TokenHash] = registryEntry{userID: rec.UserID, expiresAt: rec.ExpiresAt}
	}
	return nil
}

// Track registers a refresh-token fingerprint for eviction at expiresAt.
func (r *Registry) Track(hash, userID string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[hash] = registryEntry{userID: userID, expiresAt: expiresAt}
}

// Forget drops a fingerprint from the map. Forgetting an absent entry is a
// no-op.
func (r *Registry) Forget(hash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, hash)
}

// ForgetUser drops every fingerprint tracked for a user.
func (r *Registry) ForgetUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, e := range r.entries {
		if e.userID == userID {
			delete(r.entries, hash)
		}
	}
}

// Len reports the number of tracked fingerprints.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Start begins the background sweeper. Non-blocking; call Stop to shut it
// down.
func (r *Registry) Start() {
	go r.run()
	r.Logger.Info("refresh-token registry started", "interval", r.Interval)
}

// Stop shuts the sweeper down, blocking until any in-progress sweep ends.
func (r *Registry) Stop() {
	close(r.stopCh)
	<-r.doneCh
	r.Logger.Info("refresh-token registry stopped")
}

func (r *Registry) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(time.Now())
		case <-r.stopCh:
			return
		}
	}
}

// sweep evicts every entry due at now, deleting the persisted row first.
// Eviction failures are logged and swallowed: this is housekeeping, not a
// user-facing operation, and the allowlist row's expiry is still enforced
// lazily at refresh time.
func (r *Registry) sweep(now time.Time) {
	ctx := context.Background()

	r.mu.Lock()
	var due []string
	for hash, e := range r.entries {
		if !now.Before(e.expiresAt) {
			due = append(due, hash)
		}
	}
	r.mu.Unlock()

	for _, hash := range due {
		if err := r.Store.RefreshTokens().DeleteRefreshRecord(ctx, hash); err != nil {
			r.Logger.Error("failed to evict expired refresh token", "error", err)
			continue
		}
		r.Forget(hash)
	}

	// Rows the map never saw (e.g. issued before a restart without Warm).
	if err := r.Store.RefreshTokens().DeleteExpiredRefreshRecords(ctx, now); err != nil {
		r.Logger.Error("failed to delete expired refresh rows", "error", err)
	}

	if len(due) > 0 {
		r.Logger.Debug("evicted expired refresh tokens", "count", len(due))
	}
}
