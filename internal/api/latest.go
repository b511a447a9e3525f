package api

import "sync/atomic"

// Guard is a stale-response guard for lookups that can be superseded while in
// flight (typing in the batch search, for example). Each new lookup takes a
// ticket; a response is applied only if its ticket is still the latest.
type Guard struct {
	seq atomic.Uint64
}

// Next registers a new lookup and returns its ticket, invalidating all prior
// tickets.
func (g *Guard) Next() uint64 {
	return g.seq.Add(1)
}

// Current reports whether ticket is still the latest lookup.
func (g *Guard) Current(ticket uint64) bool {
	return g.seq.Load() == ticket
}
