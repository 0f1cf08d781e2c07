package history

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 1000

// Global is the undo/redo entry point the interaction core calls into.
type Global interface {
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
}

// Recorder accepts committed edits.
type Recorder interface {
	Push(entry Entry)
}

// Info describes a history entry.
type Info struct {
	Description string
	Timestamp   time.Time
}

// undoEntry wraps an entry with metadata.
type undoEntry struct {
	entry     Entry
	timestamp time.Time
}

// History manages the global undo/redo stacks.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// slot admits one Undo/Redo at a time.
	slot chan struct{}

	onChange func()

	maxEntries int
}

// New creates a history bounded to maxEntries undo entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		slot:       make(chan struct{}, 1),
		maxEntries: maxEntries,
	}
}

// OnChange registers a callback run after every stack mutation.
// The callback runs without the history lock held.
func (h *History) OnChange(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = fn
}

// Push adds an entry to the undo stack and clears the redo stack.
func (h *History) Push(entry Entry) {
	h.mu.Lock()
	h.undoStack = append(h.undoStack, &undoEntry{
		entry:     entry,
		timestamp: time.Now(),
	})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
	h.mu.Unlock()

	h.changed()
}

// acquire waits for exclusive use of the undo/redo slot.
func (h *History) acquire(ctx context.Context) error {
	select {
	case h.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *History) release() {
	<-h.slot
}

// Undo reverts the most recent entry.
// The stack lock is not held while the entry runs; the entry is restored
// to the undo stack if it fails.
func (h *History) Undo(ctx context.Context) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := e.entry.Undo(ctx); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, e)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, e)
	h.mu.Unlock()

	h.changed()
	return nil
}

// Redo reapplies the most recently undone entry.
func (h *History) Redo(ctx context.Context) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := e.entry.Redo(ctx); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, e)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, e)
	h.mu.Unlock()

	h.changed()
	return nil
}

func (h *History) changed() {
	h.mu.Lock()
	fn := h.onChange
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	h.undoStack = nil
	h.redoStack = nil
	h.mu.Unlock()

	h.changed()
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (Info, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Info{}, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	return Info{Description: e.entry.Description(), Timestamp: e.timestamp}, true
}

// PeekRedo returns info about the next redo entry without removing it.
func (h *History) PeekRedo() (Info, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Info{}, false
	}
	e := h.redoStack[len(h.redoStack)-1]
	return Info{Description: e.entry.Description(), Timestamp: e.timestamp}, true
}

// SetMaxEntries changes the undo limit, dropping the oldest entries if the
// stack is already larger.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the undo limit.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
