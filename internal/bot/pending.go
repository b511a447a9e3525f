package bot

import "sync"

// pendingSet marks chats with a mutation in flight so a repeated tap cannot
// submit twice. begin/end bracket every mutation; end always runs via defer,
// the finally-equivalent that keeps the chat from sticking in pending.
type pendingSet struct {
	mu    sync.Mutex
	chats map[int64]struct{}
}

func newPendingSet() pendingSet {
	return pendingSet{chats: map[int64]struct{}{}}
}

// begin reports whether the chat was idle and is now pending.
func (p *pendingSet) begin(chatID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.chats[chatID]; busy {
		return false
	}
	p.chats[chatID] = struct{}{}
	return true
}

func (p *pendingSet) end(chatID int64) {
	p.mu.Lock()
	delete(p.chats, chatID)
	p.mu.Unlock()
}
