package transaction

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/dshills/encounter/internal/engine/history"
)

// Store holds the live state of one entity family.
type Store[T any] interface {
	Load() T
	Save(state T)
}

// Cloner deep-copies a state value.
type Cloner[T any] func(T) T

// Copy deep-copies v with copier.
func Copy[T any](v T) (T, error) {
	var out T
	if err := copier.CopyWithOption(&out, &v, copier.Option{DeepCopy: true}); err != nil {
		return v, fmt.Errorf("deep copy %T: %w", v, err)
	}
	return out, nil
}

// DeepCopy is the default Cloner. It panics if copier cannot copy T, since
// a shared snapshot would let later edits rewrite history. Types copier
// rejects need WithCloner.
func DeepCopy[T any](v T) T {
	out, err := Copy(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Option configures a Transaction.
type Option[T any] func(*Transaction[T])

// WithCloner replaces the default copier-based snapshot function.
func WithCloner[T any](fn Cloner[T]) Option[T] {
	return func(t *Transaction[T]) {
		if fn != nil {
			t.clone = fn
		}
	}
}

// WithLabel sets the description used for committed history entries.
func WithLabel[T any](label string) Option[T] {
	return func(t *Transaction[T]) {
		t.label = label
	}
}

// Transaction is a local undo/redo stack over one Store.
type Transaction[T any] struct {
	store    Store[T]
	recorder history.Recorder
	clone    Cloner[T]
	label    string

	active bool

	// steps[0] is the opening snapshot.
	steps  []T
	cursor int

	// names[i] describes the edit that produced steps[i]; names[0] is empty.
	names []string
}

// New creates an inactive transaction over store. Commits are pushed to
// recorder, which may be nil.
func New[T any](store Store[T], recorder history.Recorder, opts ...Option[T]) *Transaction[T] {
	t := &Transaction[T]{
		store:    store,
		recorder: recorder,
		clone:    DeepCopy[T],
		label:    "Edit",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsActive returns true while a transaction is open.
func (t *Transaction[T]) IsActive() bool {
	return t.active
}

// Begin snapshots the store and opens the transaction.
// Calling Begin on an open transaction does nothing; the original snapshot
// is kept.
func (t *Transaction[T]) Begin() {
	if t.active {
		return
	}
	t.active = true
	t.steps = []T{t.clone(t.store.Load())}
	t.names = []string{""}
	t.cursor = 0
}

// Apply runs mutate on a copy of the current state, saves the result and
// records it as one local step. It opens the transaction if needed.
func (t *Transaction[T]) Apply(desc string, mutate func(state *T)) {
	t.Begin()
	state := t.clone(t.store.Load())
	mutate(&state)
	t.store.Save(state)
	t.push(desc, state)
}

// Record captures the store's current state as a local step. It opens the
// transaction first if needed, in which case the opening snapshot and the
// step are identical.
func (t *Transaction[T]) Record(desc string) {
	t.Begin()
	t.push(desc, t.store.Load())
}

func (t *Transaction[T]) push(desc string, state T) {
	// A new step discards anything that was undone locally.
	t.steps = append(t.steps[:t.cursor+1], t.clone(state))
	t.names = append(t.names[:t.cursor+1], desc)
	t.cursor = len(t.steps) - 1
}

// CanUndoLocal returns true if a local step can be undone.
func (t *Transaction[T]) CanUndoLocal() bool {
	return t.active && t.cursor > 0
}

// CanRedoLocal returns true if a locally undone step can be reapplied.
func (t *Transaction[T]) CanRedoLocal() bool {
	return t.active && t.cursor < len(t.steps)-1
}

// UndoLocal steps the cursor back and restores that state.
func (t *Transaction[T]) UndoLocal() {
	if !t.CanUndoLocal() {
		return
	}
	t.cursor--
	t.store.Save(t.clone(t.steps[t.cursor]))
}

// RedoLocal steps the cursor forward and restores that state.
func (t *Transaction[T]) RedoLocal() {
	if !t.CanRedoLocal() {
		return
	}
	t.cursor++
	t.store.Save(t.clone(t.steps[t.cursor]))
}

// StepCount returns the number of recorded steps, excluding the opening
// snapshot.
func (t *Transaction[T]) StepCount() int {
	if !t.active {
		return 0
	}
	return len(t.steps) - 1
}

// Cursor returns the index of the applied step; 0 is the opening snapshot.
func (t *Transaction[T]) Cursor() int {
	return t.cursor
}

// Commit closes the transaction and pushes one history entry spanning the
// opening snapshot to the currently applied step. Nothing is pushed if the
// cursor sits on the opening snapshot.
func (t *Transaction[T]) Commit() {
	if !t.active {
		return
	}
	if t.cursor > 0 && t.recorder != nil {
		t.recorder.Push(&entry[T]{
			name:   t.description(),
			store:  t.store,
			clone:  t.clone,
			before: t.steps[0],
			after:  t.steps[t.cursor],
		})
	}
	t.reset()
}

// Rollback restores the opening snapshot and closes the transaction.
// It is a no-op when no transaction is open.
func (t *Transaction[T]) Rollback() {
	if !t.active {
		return
	}
	t.store.Save(t.clone(t.steps[0]))
	t.reset()
}

func (t *Transaction[T]) reset() {
	t.active = false
	t.steps = nil
	t.names = nil
	t.cursor = 0
}

func (t *Transaction[T]) description() string {
	if t.cursor == 1 && t.names[1] != "" {
		return t.names[1]
	}
	return fmt.Sprintf("%s (%d steps)", t.label, t.cursor)
}

// entry is the committed form of a transaction.
type entry[T any] struct {
	name   string
	store  Store[T]
	clone  Cloner[T]
	before T
	after  T
}

func (e *entry[T]) Undo(context.Context) error {
	e.store.Save(e.clone(e.before))
	return nil
}

func (e *entry[T]) Redo(context.Context) error {
	e.store.Save(e.clone(e.after))
	return nil
}

func (e *entry[T]) Description() string {
	return e.name
}
