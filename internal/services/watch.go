package services

import (
	"sync"
)

type EventAction string

const (
	EventActionCreate EventAction = "create"
	EventActionUpdate EventAction = "update"
	EventActionDelete EventAction = "delete"
)

// Event describes one record change, enough for a subscriber to re-run its
// current query.
type Event struct {
	Collection string      `json:"collection"`
	Action     EventAction `json:"action"`
	RecordID   string      `json:"recordId"`
}

// Hub fans record-change events out to subscribers. Services publish on
// every mutation; the SSE endpoint subscribes one channel per client.
// Slow subscribers drop events rather than block publishers.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]subscriber
	nextID int
	closed bool
}

type subscriber struct {
	collection string
	ch         chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]subscriber)}
}

// Subscribe returns a channel of events for one collection ("" for all) and
// an unsubscribe function. Unsubscribing closes the channel; callers must
// unsubscribe on teardown.
func (h *Hub) Subscribe(collection string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = subscriber{collection: collection, ch: ch}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
}

func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, sub := range h.subs {
		if sub.collection != "" && sub.collection != e.Collection {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}
