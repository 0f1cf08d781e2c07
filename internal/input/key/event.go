package key

import (
	"strings"
	"time"
	"unicode"
)

// Target identifies the widget that had focus when the key was pressed.
type Target uint8

const (
	// TargetCanvas is the editor canvas or any non-text widget.
	TargetCanvas Target = iota
	// TargetTextInput is a text field; shortcuts must leave it alone.
	TargetTextInput
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Target is the widget the event was delivered to.
	Target Target

	// Timestamp is when the event occurred.
	Timestamp time.Time

	defaultPrevented bool
	stopped          bool
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{
		Key:       k,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Matches reports whether e is the key combination described by binding.
// Letters compare case-insensitively; modifiers must match exactly.
func (e Event) Matches(binding Event) bool {
	if e.Key != binding.Key || e.Modifiers != binding.Modifiers {
		return false
	}
	if e.Key != KeyRune {
		return true
	}
	return unicode.ToLower(e.Rune) == unicode.ToLower(binding.Rune)
}

// PreventDefault suppresses the platform's default action for the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented returns true if PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation prevents lower-priority handlers from seeing the event.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped returns true if StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// Consume prevents the default action and stops propagation.
func (e *Event) Consume() {
	e.PreventDefault()
	e.StopPropagation()
}

// String returns a canonical representation such as "Ctrl+Shift+Z".
func (e Event) String() string {
	var name string
	switch {
	case e.Key == KeyRune:
		name = strings.ToUpper(string(e.Rune))
	default:
		name = e.Key.String()
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}
