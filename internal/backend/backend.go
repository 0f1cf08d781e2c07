// Package backend abstracts the terminal the editor runs in. It turns raw
// terminal input into key events and canvas pointer gestures and draws
// plain text status lines.
package backend

import (
	"github.com/dshills/encounter/internal/geometry"
	"github.com/dshills/encounter/internal/input/key"
)

// EventType identifies the type of backend event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventPointer
	EventResize
	// EventInterrupt wakes a blocked PollEvent.
	EventInterrupt
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// PointerAction is the phase of a pointer gesture.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerMove
	PointerUp
)

// Event represents a backend event.
type Event struct {
	Type EventType

	// Key event fields
	Key key.Event

	// Pointer event fields, in canvas units
	Action PointerAction
	Point  geometry.Point

	// Resize event fields
	Width, Height int
}

// Backend defines the interface for display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// PollEvent blocks until the next event is available.
	PollEvent() Event

	// Interrupt makes a blocked PollEvent return EventInterrupt.
	Interrupt()

	// Draw replaces the screen contents with lines, top to bottom.
	Draw(lines []string)
}
