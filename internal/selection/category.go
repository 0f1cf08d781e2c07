package selection

import "strings"

// Category names what SelectAllByCategory selects.
type Category uint8

const (
	// CategoryNone is the zero value and selects nothing.
	CategoryNone Category = iota
	// CategoryAll selects every entity in every category.
	CategoryAll
	// CategoryWalls selects every wall.
	CategoryWalls
	// CategoryRegions selects every region.
	CategoryRegions
	// CategoryLights selects every light source.
	CategoryLights
	// CategorySounds selects every sound source.
	CategorySounds
	// CategoryObjects selects assets of kind Object.
	CategoryObjects
	// CategoryMonsters selects assets of kind Creature.
	CategoryMonsters
	// CategoryCharacters selects assets of kind Character.
	CategoryCharacters
)

var categoryNames = map[Category]string{
	CategoryAll:        "all",
	CategoryWalls:      "walls",
	CategoryRegions:    "regions",
	CategoryLights:     "lights",
	CategorySounds:     "sounds",
	CategoryObjects:    "objects",
	CategoryMonsters:   "monsters",
	CategoryCharacters: "characters",
}

// String returns the category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == s {
			return c, true
		}
	}
	return CategoryNone, false
}
