// Package event provides a small synchronous publish/subscribe bus for
// editor state notifications.
//
// Topics use dot notation ("scope.changed", "selection.changed").
// Subscription patterns may use wildcards:
//
//   - "*" matches exactly one segment: "scope.*" matches "scope.changed"
//   - "**" matches zero or more trailing segments: "history.**"
//
// Delivery is synchronous, in subscription order, on the publisher's
// goroutine. A panicking handler is recovered and reported through the
// bus's panic hook so the remaining handlers still run.
package event
