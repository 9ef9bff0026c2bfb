// Package notify relays configuration change events to interested listeners,
// primarily the UI change socket, so other open consoles can refresh.
package notify

import (
	"container/ring"
	"context"
	"time"

	"github.com/google/uuid"
)

// Length of hub operation queue.
const opChanLen = 100

// Event kinds dispatched by the console.
const (
	KindSettingsChanged = "settings-changed"
	KindAccountsChanged = "accounts-changed"
)

// Event describes one change made through the console.
type Event struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Subject string    `json:"subject,omitempty"`
	Date    time.Time `json:"date"`
}

// Listener receives the contents of the history buffer, followed by new
// events.
type Listener interface {
	Receive(ev Event) error
}

// Hub relays change events on to its listeners.
type Hub struct {
	// history buffer, points next Event to write. Proceeding non-nil entry
	// is the oldest Event.
	history   *ring.Ring
	listeners map[Listener]struct{}
	opChan    chan func(h *Hub) // operations queued for this actor
}

// New constructs a Hub which caches historyLen events in memory for playback
// to future listeners.  Call Start to begin processing.
func New(historyLen int) *Hub {
	return &Hub{
		history:   ring.New(historyLen),
		listeners: make(map[Listener]struct{}),
		opChan:    make(chan func(h *Hub), opChanLen),
	}
}

// Start runs the hub processing loop until the provided context is canceled.
func (hub *Hub) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(hub.opChan)
			return
		case op := <-hub.opChan:
			op(hub)
		}
	}
}

// Dispatch queues a change event for broadcast.  The event is stamped with a
// fresh ID and timestamp, placed into the history buffer, then relayed to all
// registered listeners.
func (hub *Hub) Dispatch(kind, subject string) {
	ev := Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		Subject: subject,
		Date:    time.Now(),
	}
	hub.opChan <- func(h *Hub) {
		if h.history != nil {
			h.history.Value = ev
			h.history = h.history.Next()

			// Deliver to all listeners, dropping any that error.
			for l := range h.listeners {
				if err := l.Receive(ev); err != nil {
					delete(h.listeners, l)
				}
			}
		}
	}
}

// AddListener registers a listener; buffered history is played back to it
// first.
func (hub *Hub) AddListener(l Listener) {
	hub.opChan <- func(h *Hub) {
		h.history.Do(func(v interface{}) {
			if v != nil {
				_ = l.Receive(v.(Event))
			}
		})
		h.listeners[l] = struct{}{}
	}
}

// RemoveListener deletes a listener registration, it will cease to receive
// events.
func (hub *Hub) RemoveListener(l Listener) {
	hub.opChan <- func(h *Hub) {
		delete(h.listeners, l)
	}
}

// Sync blocks until the hub has processed its queue up to this point, useful
// for unit tests.
func (hub *Hub) Sync() {
	done := make(chan struct{})
	hub.opChan <- func(h *Hub) {
		close(done)
	}
	<-done
}
