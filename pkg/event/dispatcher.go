package event

import (
	"sync"
	"time"
)

// Operation identifies the kind of mutation applied to a collection.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpClear  Operation = "clear"
)

// Change describes a single committed mutation of a collection.
type Change struct {
	Collection string    `json:"collection"`
	Operation  Operation `json:"operation"`
	RecordID   string    `json:"record_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Handler receives committed changes. Handlers run synchronously on the
// publisher's goroutine; they must be cheap and must not call back into
// the publishing repository.
type Handler func(Change)

// Dispatcher is an in-process publish/subscribe hub keyed by collection
// name. Derived views (statistics, notifications) subscribe to the
// collections they are computed from and invalidate on every change.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[string][]Handler)}
}

// Subscribe registers a handler for changes to the named collection.
func (d *Dispatcher) Subscribe(collection string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs[collection] = append(d.subs[collection], h)
}

// Publish delivers a change to every subscriber of its collection.
func (d *Dispatcher) Publish(c Change) {
	if c.OccurredAt.IsZero() {
		c.OccurredAt = time.Now()
	}

	d.mu.RLock()
	handlers := d.subs[c.Collection]
	d.mu.RUnlock()

	for _, h := range handlers {
		h(c)
	}
}
