// Package encounter defines the placed entities of an encounter map and the
// document that holds them.
package encounter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dshills/encounter/internal/geometry"
)

// Wall is a polyline barrier.
type Wall struct {
	Points []geometry.Point `yaml:"points"`
	Door   bool             `yaml:"door,omitempty"`
}

// Position returns the centroid of the wall's points.
func (w Wall) Position() geometry.Point {
	return geometry.Centroid(w.Points)
}

// Region is a named polygonal area.
type Region struct {
	Name     string           `yaml:"name"`
	Vertices []geometry.Point `yaml:"vertices"`
}

// Position returns the centroid of the region's vertices.
func (r Region) Position() geometry.Point {
	return geometry.Centroid(r.Vertices)
}

// CloneWalls copies walls and their point slices.
func CloneWalls(walls []Wall) []Wall {
	if walls == nil {
		return nil
	}
	out := make([]Wall, len(walls))
	for i, w := range walls {
		out[i] = Wall{Points: slices.Clone(w.Points), Door: w.Door}
	}
	return out
}

// CloneRegions copies regions and their vertex slices.
func CloneRegions(regions []Region) []Region {
	if regions == nil {
		return nil
	}
	out := make([]Region, len(regions))
	for i, r := range regions {
		out[i] = Region{Name: r.Name, Vertices: slices.Clone(r.Vertices)}
	}
	return out
}

// LightSource is a placed light. Index is stable across reordering and is
// what selection refers to.
type LightSource struct {
	Index  int     `yaml:"index"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// Position returns the light's location.
func (l LightSource) Position() geometry.Point {
	return geometry.Pt(l.X, l.Y)
}

// SoundSource is a placed ambient sound. Index is stable across reordering.
type SoundSource struct {
	Index  int     `yaml:"index"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Track  string  `yaml:"track,omitempty"`
}

// Position returns the sound's location.
func (s SoundSource) Position() geometry.Point {
	return geometry.Pt(s.X, s.Y)
}

// AssetKind classifies a placed asset.
type AssetKind uint8

const (
	// KindObject is scenery or an item.
	KindObject AssetKind = iota
	// KindCreature is a monster or NPC.
	KindCreature
	// KindCharacter is a player character.
	KindCharacter
	// KindEffect is a spell template or other transient marker.
	KindEffect
)

// String returns the kind name.
func (k AssetKind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindCreature:
		return "creature"
	case KindCharacter:
		return "character"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// ParseAssetKind parses a kind name (case-insensitive).
func ParseAssetKind(s string) (AssetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "object", "":
		return KindObject, nil
	case "creature", "monster":
		return KindCreature, nil
	case "character":
		return KindCharacter, nil
	case "effect":
		return KindEffect, nil
	default:
		return KindObject, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalYAML encodes the kind as its name.
func (k AssetKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a kind name.
func (k *AssetKind) UnmarshalYAML(node *yaml.Node) error {
	kind, err := ParseAssetKind(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = kind
	return nil
}

// Asset is a placed token from the asset catalog.
type Asset struct {
	ID   string    `yaml:"id"`
	Name string    `yaml:"name"`
	Kind AssetKind `yaml:"kind"`
	X    float64   `yaml:"x"`
	Y    float64   `yaml:"y"`
}

// NewAsset creates an asset with a fresh id.
func NewAsset(name string, kind AssetKind, x, y float64) Asset {
	return Asset{
		ID:   uuid.NewString(),
		Name: name,
		Kind: kind,
		X:    x,
		Y:    y,
	}
}

// Position returns the asset's location.
func (a Asset) Position() geometry.Point {
	return geometry.Pt(a.X, a.Y)
}
