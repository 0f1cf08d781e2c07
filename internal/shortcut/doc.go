// Package shortcut binds the global undo and redo keystrokes.
//
// The Dispatcher is installed once, at the highest priority of the input
// chain, so it sees undo/redo keystrokes before anything else and can
// suppress the platform's default handling. Events aimed at text inputs
// are left alone.
//
// Routing for undo (redo is symmetric):
//
//  1. wall transaction open with a local step to undo: undo locally
//  2. region transaction open with a local step to undo: undo locally
//  3. otherwise: global undo, run asynchronously
//
// Exactly one branch runs per event, and the event is consumed before the
// branch starts. Overlapping global calls are not serialized here; the
// global history is expected to do that.
package shortcut
