package marquee

import "github.com/dshills/encounter/internal/geometry"

// ClickThreshold is the largest extent, in canvas units, that a gesture may
// reach on both axes and still be treated as a click.
const ClickThreshold = 5.0

// Positioned is any entity with a single canvas anchor point.
type Positioned interface {
	Position() geometry.Point
}

// Marquee tracks one drag-select gesture.
type Marquee struct {
	// active indicates a gesture is in progress.
	active bool

	// start is where the gesture began.
	start geometry.Point

	// end is the latest pointer position.
	end geometry.Point
}

// New creates an idle marquee.
func New() *Marquee {
	return &Marquee{}
}

// Start begins a gesture at p. Start and end both sit at p, so the initial
// rectangle has zero size. Starting while already dragging restarts.
func (m *Marquee) Start(p geometry.Point) {
	m.active = true
	m.start = p
	m.end = p
}

// Update moves the end point. Ignored while idle.
func (m *Marquee) Update(p geometry.Point) {
	if m.active {
		m.end = p
	}
}

// End finishes the gesture and discards both points.
func (m *Marquee) End() {
	m.reset()
}

// Cancel abandons the gesture. It currently behaves exactly like End.
func (m *Marquee) Cancel() {
	m.reset()
}

func (m *Marquee) reset() {
	m.active = false
	m.start = geometry.Point{}
	m.end = geometry.Point{}
}

// IsActive returns true while a gesture is in progress.
func (m *Marquee) IsActive() bool {
	return m.active
}

// Rect returns the normalized selection rectangle.
// ok is false when no gesture is in progress.
func (m *Marquee) Rect() (r geometry.Rect, ok bool) {
	if !m.active {
		return geometry.Rect{}, false
	}
	return geometry.Normalize(m.start, m.end), true
}

// IsSimpleClick returns true if no drag happened, or the drag stayed below
// ClickThreshold on both axes.
func (m *Marquee) IsSimpleClick() bool {
	r, ok := m.Rect()
	if !ok {
		return true
	}
	return r.Width < ClickThreshold && r.Height < ClickThreshold
}

// State is a read-only view of the gesture for renderers.
type State struct {
	// Active indicates a gesture is in progress.
	Active bool

	// Start is where the gesture began.
	Start geometry.Point

	// End is the latest pointer position.
	End geometry.Point
}

// State returns the current gesture state.
func (m *Marquee) State() State {
	return State{
		Active: m.active,
		Start:  m.start,
		End:    m.end,
	}
}

// ItemsIn returns the items whose position lies inside the marquee,
// preserving order. It returns nil when no gesture is in progress.
func ItemsIn[T Positioned](m *Marquee, items []T) []T {
	r, ok := m.Rect()
	if !ok {
		return nil
	}
	var out []T
	for _, item := range items {
		if r.Contains(item.Position()) {
			out = append(out, item)
		}
	}
	return out
}

// IndicesIn returns the slice positions of the items inside the marquee.
// It returns nil when no gesture is in progress.
func IndicesIn[T Positioned](m *Marquee, items []T) []int {
	r, ok := m.Rect()
	if !ok {
		return nil
	}
	var out []int
	for i, item := range items {
		if r.Contains(item.Position()) {
			out = append(out, i)
		}
	}
	return out
}
