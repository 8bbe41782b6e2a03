// Package realtime fans committed data changes out to connected
// clients so read views can refresh. Delivery is best effort: the
// workflow is already durable by the time a change is published, and a
// missed change only costs UI freshness.
package realtime

import "sync"

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Change identifies one committed mutation of a collection record.
type Change struct {
	Collection string `json:"collection"`
	Action     Action `json:"action"`
	RecordID   string `json:"record_id"`
}

const subscriberBuffer = 64

type Hub struct {
	mu   sync.Mutex
	subs map[chan Change]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Change]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be
// called when the listener goes away.
func (h *Hub) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the change to every subscriber. A subscriber that
// has fallen subscriberBuffer changes behind is skipped rather than
// blocking the publisher.
func (h *Hub) Publish(change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

// SubscriberCount reports the number of connected listeners.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
