// Package history provides the document-wide undo/redo stack.
//
// Entries encapsulate one committed edit and know how to revert and reapply
// it. Undo and Redo take a context because entries may persist their
// effect, which can block on I/O:
//
//	h := history.New(1000)
//	h.Push(entry)
//
//	if err := h.Undo(ctx); err != nil { ... }
//	if err := h.Redo(ctx); err != nil { ... }
//
// # Serialization
//
// Callers may issue overlapping Undo/Redo calls from different goroutines.
// The History admits one call at a time; the next waits for the previous
// to settle, or for its own context to end.
//
// # Global contract
//
// Components that only need to trigger undo/redo depend on the Global
// interface rather than on *History, so any history implementation can be
// substituted.
package history
