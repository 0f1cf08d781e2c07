// Package scope tracks the active editing scope and forcibly resets
// cross-cutting editor state whenever it changes.
package scope

import "strings"

// Scope is the active editing tool.
type Scope uint8

const (
	// None means no tool is active.
	None Scope = iota
	Walls
	Regions
	Lights
	Sounds
	Objects
	Monsters
	Characters
)

var scopeNames = [...]string{
	None:       "none",
	Walls:      "walls",
	Regions:    "regions",
	Lights:     "lights",
	Sounds:     "sounds",
	Objects:    "objects",
	Monsters:   "monsters",
	Characters: "characters",
}

// String returns the scope name.
func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Parse parses a scope name. The empty string is None.
func Parse(s string) (Scope, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, true
	}
	for i, name := range scopeNames {
		if name == s {
			return Scope(i), true
		}
	}
	return None, false
}
