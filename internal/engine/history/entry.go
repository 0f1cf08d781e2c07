package history

import (
	"context"
	"errors"
)

// Entry is a committed, reversible edit.
type Entry interface {
	// Undo reverts the edit.
	Undo(ctx context.Context) error

	// Redo reapplies the edit.
	Redo(ctx context.Context) error

	// Description returns a human-readable description of the edit.
	Description() string
}

// FuncEntry adapts a pair of functions to the Entry interface.
type FuncEntry struct {
	Name     string
	UndoFunc func(ctx context.Context) error
	RedoFunc func(ctx context.Context) error
}

// Undo calls UndoFunc if set.
func (e *FuncEntry) Undo(ctx context.Context) error {
	if e.UndoFunc == nil {
		return nil
	}
	return e.UndoFunc(ctx)
}

// Redo calls RedoFunc if set.
func (e *FuncEntry) Redo(ctx context.Context) error {
	if e.RedoFunc == nil {
		return nil
	}
	return e.RedoFunc(ctx)
}

// Description returns the entry name.
func (e *FuncEntry) Description() string {
	return e.Name
}

// CompoundEntry groups entries into a single undo unit.
// Undo runs in reverse order, Redo in forward order.
type CompoundEntry struct {
	Name    string
	Entries []Entry
}

// Undo reverts every entry, last first.
func (c *CompoundEntry) Undo(ctx context.Context) error {
	var errs []error
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if err := c.Entries[i].Undo(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Redo reapplies every entry, first first.
func (c *CompoundEntry) Redo(ctx context.Context) error {
	var errs []error
	for _, e := range c.Entries {
		if err := e.Redo(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Description returns the group name.
func (c *CompoundEntry) Description() string {
	return c.Name
}
