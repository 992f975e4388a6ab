// Package realtime provides a lightweight in-process publish/subscribe hub
// that fans newly persisted search results out to multiple listeners (e.g.
// WebSocket sessions).
//
// Delivery is best effort: a listener whose buffer is full misses events
// rather than backpressuring the submit path. There is no persistence or
// replay; the stream is ephemeral.
package realtime

import (
	"sync"
	"time"
)

// ResultEvent mirrors a stored search result as delivered over the firehose.
type ResultEvent struct {
	ID        int64     `json:"id"`
	Query     string    `json:"query"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Snippet   string    `json:"snippet"`
	RankScore float64   `json:"rank_score"`
	StoredAt  time.Time `json:"stored_at"`
}

// Hub is an in-memory fan-out dispatcher. Each registered listener gets its
// own buffered channel. The hub is safe for concurrent use.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan ResultEvent
	nextID    uint64
	bufSize   int
}

// NewHub constructs a hub with the given per-listener buffer size.
// If bufSize <= 0, a default of 32 is used.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 32
	}
	return &Hub{
		listeners: make(map[uint64]chan ResultEvent),
		bufSize:   bufSize,
	}
}

// Register adds a listener and returns its id and receive channel.
// Callers must Unregister(id) when done.
func (h *Hub) Register() (uint64, <-chan ResultEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan ResultEvent, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener and closes its channel. Unknown ids are
// ignored, so it is safe to call more than once.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers the event to every listener that has buffer space.
// Slow listeners drop the event.
func (h *Hub) Broadcast(event ResultEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- event:
		default:
		}
	}
}

// Size returns the number of active listeners.
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
