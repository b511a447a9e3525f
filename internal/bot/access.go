package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/havkom/fishops-bot/internal/api"
)

// Capabilities is the read-only permission check injected into the screens.
// Evaluation happens in the remote permission store; the console only mirrors
// the granted set to hide or disable controls, and the backend re-checks every
// mutation anyway.
type Capabilities interface {
	CanDo(ctx context.Context, userID int64, action api.Action) bool
}

// remoteCapabilities fetches a user's grant set once per session and caches it
// in memory. Unreachable permission store reads as "nothing granted" rather
// than an error: controls stay hidden, nothing breaks.
type remoteCapabilities struct {
	backend *api.Client
	log     *slog.Logger

	mu    sync.Mutex
	cache map[int64]api.PermissionSet
}

func NewCapabilities(backend *api.Client, log *slog.Logger) Capabilities {
	return &remoteCapabilities{
		backend: backend,
		log:     log,
		cache:   map[int64]api.PermissionSet{},
	}
}

func (r *remoteCapabilities) CanDo(ctx context.Context, userID int64, action api.Action) bool {
	r.mu.Lock()
	set, ok := r.cache[userID]
	r.mu.Unlock()

	if !ok {
		fetched, err := r.backend.GetPermissions(ctx, userID)
		if err != nil {
			if !api.IsCanceled(err) {
				r.log.Warn("permission fetch failed", "user_id", userID, "err", err)
			}
			return false
		}
		set = fetched
		r.mu.Lock()
		r.cache[userID] = set
		r.mu.Unlock()
	}
	return set.Has(action)
}
