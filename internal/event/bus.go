package event

import (
	"fmt"
	"runtime/debug"
	"slices"
	"strconv"
	"sync"

	"github.com/Iron-Ham/todolist/internal/logging"
)

// Handler receives published events.
type Handler func(Event)

// anyType is the subscription key matching every event.
const anyType = "*"

type subscription struct {
	id        string
	eventType string
	handler   Handler
}

// Bus delivers events synchronously, on the publishing goroutine.
// Handlers for the event's own type run first, in subscription order, then
// the SubscribeAll handlers.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	lastID uint64
	logger *logging.Logger
}

// NewBus returns an empty bus. Handler panics are recovered and logged to
// logger; nil discards them.
func NewBus(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Bus{logger: logger.WithComponent("event")}
}

// Subscribe calls handler for every event of eventType and returns an id for
// Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastID++
	id := "sub-" + strconv.FormatUint(b.lastID, 10)
	b.subs = append(b.subs, subscription{id: id, eventType: eventType, handler: handler})
	return id
}

// SubscribeAll calls handler for every event.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(anyType, handler)
}

// Unsubscribe removes the subscription and reports whether it existed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.subs, func(s subscription) bool { return s.id == id })
	if i < 0 {
		return false
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	return true
}

// Publish delivers e. Handlers may publish or subscribe themselves.
func (b *Bus) Publish(e Event) {
	eventType := e.EventType()

	b.mu.RLock()
	var specific, wildcard []Handler
	for _, s := range b.subs {
		switch s.eventType {
		case eventType:
			specific = append(specific, s.handler)
		case anyType:
			wildcard = append(wildcard, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range append(specific, wildcard...) {
		b.deliver(h, e)
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event", e.EventType(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	h(e)
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
