// Package layers tracks which canvas layers are visible and keeps the grid
// mode consistent with them.
package layers

import (
	"fmt"
	"strings"
)

// Layer is a toggleable canvas layer.
type Layer uint8

const (
	Walls Layer = iota
	Regions
	Lights
	Sounds
	Objects
	Monsters
	Characters
	Fog

	layerCount
)

var layerNames = [layerCount]string{
	Walls:      "walls",
	Regions:    "regions",
	Lights:     "lights",
	Sounds:     "sounds",
	Objects:    "objects",
	Monsters:   "monsters",
	Characters: "characters",
	Fog:        "fog",
}

// String returns the layer name.
func (l Layer) String() string {
	if l < layerCount {
		return layerNames[l]
	}
	return "unknown"
}

// All returns every layer in display order.
func All() []Layer {
	out := make([]Layer, layerCount)
	for i := range out {
		out[i] = Layer(i)
	}
	return out
}

// GridType is the canvas grid mode.
type GridType uint8

const (
	GridNone GridType = iota
	GridSquare
	GridHexRows
	GridHexColumns
)

// String returns the grid type name.
func (g GridType) String() string {
	switch g {
	case GridNone:
		return "none"
	case GridSquare:
		return "square"
	case GridHexRows:
		return "hex-rows"
	case GridHexColumns:
		return "hex-columns"
	default:
		return "unknown"
	}
}

// ParseGridType parses a grid type name.
func ParseGridType(s string) (GridType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return GridNone, nil
	case "square":
		return GridSquare, nil
	case "hex-rows", "hexrows":
		return GridHexRows, nil
	case "hex-columns", "hexcolumns":
		return GridHexColumns, nil
	default:
		return GridNone, fmt.Errorf("unknown grid type %q", s)
	}
}

// GridChanged is called with the new grid mode.
type GridChanged func(GridType)

// Visibility holds the per-layer visibility flags and the grid mode.
type Visibility struct {
	visible     [layerCount]bool
	grid        GridType
	defaultGrid GridType
	onGrid      GridChanged
}

// New creates a visibility state with every layer shown. grid is the
// current grid mode and defaultGrid the mode ShowAll restores.
func New(grid, defaultGrid GridType, onGrid GridChanged) *Visibility {
	v := &Visibility{
		grid:        grid,
		defaultGrid: defaultGrid,
		onGrid:      onGrid,
	}
	for i := range v.visible {
		v.visible[i] = true
	}
	return v
}

// IsVisible reports whether layer is shown.
func (v *Visibility) IsVisible(layer Layer) bool {
	return layer < layerCount && v.visible[layer]
}

// SetVisible shows or hides one layer.
func (v *Visibility) SetVisible(layer Layer, visible bool) {
	if layer < layerCount {
		v.visible[layer] = visible
	}
}

// Toggle flips one layer and returns its new state.
func (v *Visibility) Toggle(layer Layer) bool {
	if layer >= layerCount {
		return false
	}
	v.visible[layer] = !v.visible[layer]
	return v.visible[layer]
}

// Grid returns the current grid mode.
func (v *Visibility) Grid() GridType {
	return v.grid
}

// SetGrid changes the grid mode and notifies the callback.
func (v *Visibility) SetGrid(g GridType) {
	v.grid = g
	v.notify()
}

// SetDefaultGrid changes the mode ShowAll restores.
func (v *Visibility) SetDefaultGrid(g GridType) {
	v.defaultGrid = g
}

// HideAll hides every layer and turns the grid off.
func (v *Visibility) HideAll() {
	for i := range v.visible {
		v.visible[i] = false
	}
	v.grid = GridNone
	v.notify()
}

// ShowAll shows every layer. If the grid is off, the default grid mode is
// restored; a grid the user picked is kept.
func (v *Visibility) ShowAll() {
	for i := range v.visible {
		v.visible[i] = true
	}
	if v.grid == GridNone {
		v.grid = v.defaultGrid
		v.notify()
	}
}

// Snapshot returns the visibility of every layer.
func (v *Visibility) Snapshot() map[Layer]bool {
	out := make(map[Layer]bool, layerCount)
	for i, vis := range v.visible {
		out[Layer(i)] = vis
	}
	return out
}

func (v *Visibility) notify() {
	if v.onGrid != nil {
		v.onGrid(v.grid)
	}
}
