package event

import (
	"sync"
	"sync/atomic"
)

// Event is a published notification.
type Event struct {
	Topic   Topic
	Payload any
}

// HandlerFunc receives events.
type HandlerFunc func(ev Event)

// PanicHandler is called with the event and recovered value when a handler
// panics.
type PanicHandler func(ev Event, recovered any)

type subscription struct {
	id      uint64
	pattern Topic
	fn      HandlerFunc
}

// Bus delivers events to matching subscribers. It is safe for concurrent
// use.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID atomic.Uint64

	onPanic PanicHandler

	published atomic.Uint64
	delivered atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets the hook for recovered handler panics.
func WithPanicHandler(fn PanicHandler) BusOption {
	return func(b *Bus) {
		b.onPanic = fn
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers fn for topics matching pattern and returns a function
// that removes the subscription.
func (b *Bus) Subscribe(pattern Topic, fn HandlerFunc) (unsubscribe func()) {
	id := b.nextID.Add(1)

	b.mu.Lock()
	b.subs = append(b.subs, subscription{id: id, pattern: pattern, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers an event to every matching subscriber and returns the
// number of handlers invoked. Handlers may subscribe or unsubscribe while
// being called.
func (b *Bus) Publish(topic Topic, payload any) int {
	b.published.Add(1)
	ev := Event{Topic: topic, Payload: payload}

	b.mu.RLock()
	matched := make([]HandlerFunc, 0, len(b.subs))
	for _, s := range b.subs {
		if topic.Matches(s.pattern) {
			matched = append(matched, s.fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range matched {
		b.deliver(fn, ev)
	}
	return len(matched)
}

func (b *Bus) deliver(fn HandlerFunc, ev Event) {
	defer func() {
		if r := recover(); r != nil && b.onPanic != nil {
			b.onPanic(ev, r)
		}
	}()
	fn(ev)
	b.delivered.Add(1)
}

// Stats reports publish and delivery counts.
type Stats struct {
	Published     uint64
	Delivered     uint64
	Subscriptions int
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		Subscriptions: n,
	}
}
