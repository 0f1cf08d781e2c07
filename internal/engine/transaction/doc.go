// Package transaction implements scope-private undo/redo for multi-step
// edits such as dragging a wall vertex through several positions.
//
// A Transaction snapshots its Store when it begins. Every recorded step
// appends a deep copy of the store state; a cursor selects the step that is
// currently applied. Local undo and redo move the cursor and write that
// step back into the store without touching the global history.
//
// Commit folds the whole edit, from the opening snapshot to the current
// step, into a single history entry. Rollback writes the opening snapshot
// back and discards every step.
//
// Transactions are not safe for concurrent use. They are driven from the
// editor's event loop.
package transaction
