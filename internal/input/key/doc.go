// Package key provides keyboard event types and key specification parsing
// for editor shortcuts.
//
//   - Key: a special key, or KeyRune for characters
//   - Modifier: Shift, Ctrl, Alt and Meta bit flags
//   - Event: one key press, with the input target it was delivered to
//
// # Key Specifications
//
// Shortcut bindings are written as:
//
//   - Simple keys: "z", "Escape", "Delete"
//   - With modifiers: "Ctrl+Z", "Meta+Shift+Z", "Mod+Y"
//   - Vim-style: "<C-z>", "<D-S-z>"
//
// "Mod" stands for the platform's primary shortcut modifier: Meta (Cmd)
// on macOS, Ctrl elsewhere.
package key
