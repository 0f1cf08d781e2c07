package encounter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Data is the plain content of an encounter.
type Data struct {
	Name    string        `yaml:"name"`
	Walls   []Wall        `yaml:"walls"`
	Regions []Region      `yaml:"regions"`
	Lights  []LightSource `yaml:"lights"`
	Sounds  []SoundSource `yaml:"sounds"`
	Assets  []Asset       `yaml:"assets"`
}

// Document is the live, shared encounter. Accessors return copies of the
// top-level slices; callers must not mutate nested slices.
type Document struct {
	mu   sync.RWMutex
	data Data
}

// NewDocument creates a document holding data.
func NewDocument(data Data) *Document {
	return &Document{data: data}
}

// Name returns the encounter name.
func (d *Document) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data.Name
}

// Walls returns the placed walls.
func (d *Document) Walls() []Wall {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.data.Walls)
}

// SetWalls replaces the placed walls.
func (d *Document) SetWalls(walls []Wall) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.Walls = walls
}

// Regions returns the placed regions.
func (d *Document) Regions() []Region {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.data.Regions)
}

// SetRegions replaces the placed regions.
func (d *Document) SetRegions(regions []Region) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.Regions = regions
}

// Lights returns the placed light sources.
func (d *Document) Lights() []LightSource {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.data.Lights)
}

// Sounds returns the placed sound sources.
func (d *Document) Sounds() []SoundSource {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.data.Sounds)
}

// Assets returns the placed assets.
func (d *Document) Assets() []Asset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.data.Assets)
}

// WallStore exposes the document's walls as a transaction store.
type WallStore struct{ Doc *Document }

// Load returns the current walls.
func (s WallStore) Load() []Wall { return s.Doc.Walls() }

// Save replaces the walls.
func (s WallStore) Save(walls []Wall) { s.Doc.SetWalls(walls) }

// RegionStore exposes the document's regions as a transaction store.
type RegionStore struct{ Doc *Document }

// Load returns the current regions.
func (s RegionStore) Load() []Region { return s.Doc.Regions() }

// Save replaces the regions.
func (s RegionStore) Save(regions []Region) { s.Doc.SetRegions(regions) }

// Decode reads an encounter from YAML. Assets without an id are given one.
func Decode(r io.Reader) (Data, error) {
	var data Data
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return Data{}, fmt.Errorf("decoding encounter: %w", err)
	}
	if err := data.normalize(); err != nil {
		return Data{}, err
	}
	return data, nil
}

// Load reads an encounter YAML file.
func Load(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("opening encounter %s: %w", path, err)
	}
	defer f.Close()

	data, err := Decode(f)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// normalize fills missing asset ids and checks uniqueness of ids and
// source indices.
func (d *Data) normalize() error {
	ids := make(map[string]bool, len(d.Assets))
	for i := range d.Assets {
		if d.Assets[i].ID == "" {
			d.Assets[i].ID = uuid.NewString()
		}
		if ids[d.Assets[i].ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, d.Assets[i].ID)
		}
		ids[d.Assets[i].ID] = true
	}

	seen := make(map[int]bool, len(d.Lights))
	for _, l := range d.Lights {
		if seen[l.Index] {
			return fmt.Errorf("%w: light %d", ErrDuplicateIndex, l.Index)
		}
		seen[l.Index] = true
	}

	clear(seen)
	for _, s := range d.Sounds {
		if seen[s.Index] {
			return fmt.Errorf("%w: sound %d", ErrDuplicateIndex, s.Index)
		}
		seen[s.Index] = true
	}
	return nil
}
