// Package selection owns the per-category selection sets of the encounter
// editor and the bulk operations over them.
package selection

import (
	"slices"

	"github.com/dshills/encounter/internal/encounter"
	"github.com/dshills/encounter/internal/event"
	"github.com/dshills/encounter/internal/logging"
)

// Sets is a snapshot of every category's selection. Walls and regions are
// slice positions; lights and sounds are their stable Index values; assets
// are ids.
type Sets struct {
	Walls   []int
	Regions []int
	Lights  []int
	Sounds  []int
	Assets  []string
}

// IsEmpty returns true if nothing is selected in any category.
func (s Sets) IsEmpty() bool {
	return s.Count() == 0
}

// Count returns the total number of selected entities.
func (s Sets) Count() int {
	return len(s.Walls) + len(s.Regions) + len(s.Lights) + len(s.Sounds) + len(s.Assets)
}

// Clone returns a copy that shares no memory with s.
func (s Sets) Clone() Sets {
	return Sets{
		Walls:   slices.Clone(s.Walls),
		Regions: slices.Clone(s.Regions),
		Lights:  slices.Clone(s.Lights),
		Sounds:  slices.Clone(s.Sounds),
		Assets:  slices.Clone(s.Assets),
	}
}

// Source provides the read-only entity collections.
type Source interface {
	Walls() []encounter.Wall
	Regions() []encounter.Region
	Lights() []encounter.LightSource
	Sounds() []encounter.SoundSource
	Assets() []encounter.Asset
}

// AssetSelector replaces the asset catalog's selection with ids.
type AssetSelector func(ids []string)

// Coordinator owns the selection sets. It is driven from the editor's
// event loop and is not safe for concurrent use.
type Coordinator struct {
	src      Source
	onAssets AssetSelector
	bus      *event.Bus
	log      *logging.Logger

	sets Sets
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithBus publishes TopicSelectionChanged after every change.
func WithBus(bus *event.Bus) Option {
	return func(c *Coordinator) {
		c.bus = bus
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l.WithComponent("selection")
		}
	}
}

// NewCoordinator creates a coordinator with empty selections.
// onAssets may be nil.
func NewCoordinator(src Source, onAssets AssetSelector, opts ...Option) *Coordinator {
	c := &Coordinator{
		src:      src,
		onAssets: onAssets,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sets returns a snapshot of the current selection.
func (c *Coordinator) Sets() Sets {
	return c.sets.Clone()
}

// SetWalls replaces the wall selection.
func (c *Coordinator) SetWalls(indices []int) {
	c.sets.Walls = slices.Clone(indices)
	c.changed()
}

// SetRegions replaces the region selection.
func (c *Coordinator) SetRegions(indices []int) {
	c.sets.Regions = slices.Clone(indices)
	c.changed()
}

// SetLights replaces the light selection.
func (c *Coordinator) SetLights(indices []int) {
	c.sets.Lights = slices.Clone(indices)
	c.changed()
}

// SetSounds replaces the sound selection.
func (c *Coordinator) SetSounds(indices []int) {
	c.sets.Sounds = slices.Clone(indices)
	c.changed()
}

// SetAssets replaces the asset selection and forwards it to the catalog.
func (c *Coordinator) SetAssets(ids []string) {
	c.setAssets(ids)
	c.changed()
}

func (c *Coordinator) setAssets(ids []string) {
	c.sets.Assets = slices.Clone(ids)
	if c.onAssets != nil {
		c.onAssets(slices.Clone(ids))
	}
}

// ClearSelection empties every category, including the catalog's asset
// selection.
func (c *Coordinator) ClearSelection() {
	c.clear()
	c.changed()
}

func (c *Coordinator) clear() {
	c.setAssets([]string{})
	c.sets.Walls = nil
	c.sets.Regions = nil
	c.sets.Lights = nil
	c.sets.Sounds = nil
}

// SelectAllByCategory clears every selection, then selects everything in
// category. CategoryNone and unrecognized values leave the selection empty.
func (c *Coordinator) SelectAllByCategory(category Category) {
	c.clear()

	switch category {
	case CategoryAll:
		c.setAssets(assetIDs(c.src.Assets(), nil))
		c.sets.Walls = positions(len(c.src.Walls()))
		c.sets.Regions = positions(len(c.src.Regions()))
		c.sets.Lights = lightIndices(c.src.Lights())
		c.sets.Sounds = soundIndices(c.src.Sounds())
	case CategoryWalls:
		c.sets.Walls = positions(len(c.src.Walls()))
	case CategoryRegions:
		c.sets.Regions = positions(len(c.src.Regions()))
	case CategoryLights:
		c.sets.Lights = lightIndices(c.src.Lights())
	case CategorySounds:
		c.sets.Sounds = soundIndices(c.src.Sounds())
	case CategoryObjects, CategoryMonsters, CategoryCharacters:
		kind := assetKindFor(category)
		c.setAssets(assetIDs(c.src.Assets(), &kind))
	case CategoryNone:
	default:
		c.log.Debug("select all: unhandled category %d", category)
	}

	c.log.Debug("select all %s: %d selected", category, c.sets.Count())
	c.changed()
}

func (c *Coordinator) changed() {
	if c.bus != nil {
		c.bus.Publish(event.TopicSelectionChanged, c.sets.Clone())
	}
}

// assetKindFor maps an asset sub-category to its classification kind.
func assetKindFor(category Category) encounter.AssetKind {
	switch category {
	case CategoryMonsters:
		return encounter.KindCreature
	case CategoryCharacters:
		return encounter.KindCharacter
	default:
		return encounter.KindObject
	}
}

func positions(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func lightIndices(lights []encounter.LightSource) []int {
	out := make([]int, len(lights))
	for i, l := range lights {
		out[i] = l.Index
	}
	return out
}

func soundIndices(sounds []encounter.SoundSource) []int {
	out := make([]int, len(sounds))
	for i, s := range sounds {
		out[i] = s.Index
	}
	return out
}

// assetIDs returns the ids of assets, restricted to kind when non-nil.
func assetIDs(assets []encounter.Asset, kind *encounter.AssetKind) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		if kind == nil || a.Kind == *kind {
			out = append(out, a.ID)
		}
	}
	return out
}
