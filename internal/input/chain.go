// Package input routes keyboard events through a priority-ordered chain of
// handlers.
package input

import (
	"errors"
	"sort"
	"sync"

	"github.com/dshills/encounter/internal/input/key"
)

// Priority defines the execution order for handlers.
// Lower values execute first.
type Priority int

const (
	// PriorityHighest runs before all other handlers.
	PriorityHighest Priority = -1000
	// PriorityHigh runs early in the chain.
	PriorityHigh Priority = -100
	// PriorityNormal is the default priority.
	PriorityNormal Priority = 0
	// PriorityLow runs late in the chain.
	PriorityLow Priority = 100
)

// ErrAlreadyRegistered is returned when a named handler is installed twice.
var ErrAlreadyRegistered = errors.New("handler already registered")

// Handler receives key events. It returns true if it acted on the event.
// A handler that wants later handlers to skip the event calls
// ev.StopPropagation.
type Handler interface {
	HandleKey(ev *key.Event) bool
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev *key.Event) bool

// HandleKey calls f.
func (f HandlerFunc) HandleKey(ev *key.Event) bool {
	return f(ev)
}

// HandlerID identifies a registered handler.
type HandlerID uint64

type registration struct {
	id       HandlerID
	name     string
	priority Priority
	handler  Handler
}

// Chain dispatches key events to handlers in priority order.
type Chain struct {
	mu       sync.RWMutex
	handlers []registration
	nextID   HandlerID
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Register adds a handler at priority. A non-empty name may be installed
// only once.
func (c *Chain) Register(name string, priority Priority, h Handler) (HandlerID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name != "" {
		for _, r := range c.handlers {
			if r.name == name {
				return r.id, ErrAlreadyRegistered
			}
		}
	}

	c.nextID++
	c.handlers = append(c.handlers, registration{
		id:       c.nextID,
		name:     name,
		priority: priority,
		handler:  h,
	})
	sort.SliceStable(c.handlers, func(i, j int) bool {
		return c.handlers[i].priority < c.handlers[j].priority
	})
	return c.nextID, nil
}

// Unregister removes a handler by ID.
func (c *Chain) Unregister(id HandlerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range c.handlers {
		if r.id == id {
			c.handlers = append(c.handlers[:i], c.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}

// Dispatch offers ev to each handler in order until one stops propagation.
// It returns true if any handler acted on the event.
func (c *Chain) Dispatch(ev *key.Event) bool {
	c.mu.RLock()
	handlers := make([]Handler, len(c.handlers))
	for i, r := range c.handlers {
		handlers[i] = r.handler
	}
	c.mu.RUnlock()

	handled := false
	for _, h := range handlers {
		if h.HandleKey(ev) {
			handled = true
		}
		if ev.PropagationStopped() {
			break
		}
	}
	return handled
}
