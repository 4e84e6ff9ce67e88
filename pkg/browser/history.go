package browser

import "sync"

// History is an in-memory Source with browser-like push/replace and
// back/forward semantics. It backs tests and headless hosts.
type History struct {
	mu      sync.Mutex
	entries []Raw
	index   int

	subMu sync.RWMutex
	subs  []subscription
	subID uint64
}

type subscription struct {
	id uint64
	fn func()
}

// NewHistory creates a history whose single entry is the given url.
func NewHistory(url string) *History {
	return &History{
		entries: []Raw{SplitURL(url)},
	}
}

// Location returns the current entry.
func (h *History) Location() Raw {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push appends a new entry, dropping any forward entries, and notifies.
func (h *History) Push(url string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], SplitURL(url))
	h.index = len(h.entries) - 1
	h.mu.Unlock()

	h.notify()
}

// Replace rewrites the current entry in place and notifies.
func (h *History) Replace(url string) {
	h.mu.Lock()
	h.entries[h.index] = SplitURL(url)
	h.mu.Unlock()

	h.notify()
}

// Back moves to the previous entry if one exists and notifies.
// At the oldest entry it does nothing, like the browser button.
func (h *History) Back() {
	h.mu.Lock()
	moved := h.index > 0
	if moved {
		h.index--
	}
	h.mu.Unlock()

	if moved {
		h.notify()
	}
}

// Forward moves to the next entry if one exists and notifies.
func (h *History) Forward() {
	h.mu.Lock()
	moved := h.index < len(h.entries)-1
	if moved {
		h.index++
	}
	h.mu.Unlock()

	if moved {
		h.notify()
	}
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Subscribe registers fn to run after every location change.
func (h *History) Subscribe(fn func()) (cancel func()) {
	h.subMu.Lock()
	h.subID++
	id := h.subID
	h.subs = append(h.subs, subscription{id: id, fn: fn})
	h.subMu.Unlock()

	return func() {
		h.subMu.Lock()
		defer h.subMu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// notify delivers the change to subscribers in registration order.
// Subscribers are copied first so a handler may navigate again or
// cancel itself without deadlocking.
func (h *History) notify() {
	h.subMu.RLock()
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	h.subMu.RUnlock()

	for _, s := range subs {
		s.fn()
	}
}
