package dialog

import (
	"context"
	"sync"
)

// Repo keeps per-chat dialog state in memory only. There is deliberately no
// persistence: abandoning a flow (or restarting the bot) loses the entered
// data, and the next interaction starts from idle.
type Repo struct {
	mu    sync.RWMutex
	items map[int64]Item
}

func NewRepo() *Repo { return &Repo{items: map[int64]Item{}} }

// Get returns the chat's state, defaulting to idle with an empty payload when
// nothing is stored. The ctx parameter keeps the call shape of a backing
// store; it is not used.
func (r *Repo) Get(_ context.Context, chatID int64) (*Item, error) {
	r.mu.RLock()
	it, ok := r.items[chatID]
	r.mu.RUnlock()
	if !ok {
		return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}, nil
	}
	cp := it
	return &cp, nil
}

func (r *Repo) Set(_ context.Context, chatID int64, state State, payload Payload) error {
	if payload == nil {
		payload = Payload{}
	}
	r.mu.Lock()
	r.items[chatID] = Item{ChatID: chatID, State: state, Payload: payload}
	r.mu.Unlock()
	return nil
}

func (r *Repo) Reset(_ context.Context, chatID int64) error {
	r.mu.Lock()
	delete(r.items, chatID)
	r.mu.Unlock()
	return nil
}
