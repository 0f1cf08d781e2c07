// Package geometry provides the planar point and rectangle math used by
// marquee selection.
package geometry

import "math"

// Point is a screen or world coordinate.
type Point struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Equal returns true if both coordinates match exactly.
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Rect is an axis-aligned bounding box with non-negative dimensions.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Normalize returns the rectangle spanned by two arbitrary corner points.
// The result does not depend on drag direction or argument order.
func Normalize(p1, p2 Point) Rect {
	return Rect{
		X:      math.Min(p1.X, p2.X),
		Y:      math.Min(p1.Y, p2.Y),
		Width:  math.Abs(p2.X - p1.X),
		Height: math.Abs(p2.Y - p1.Y),
	}
}

// Contains reports whether p lies inside r. Edges are inclusive.
func Contains(p Point, r Rect) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return Contains(p, r)
}

// Corners returns the four corners, clockwise from the minimum corner.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// Centroid returns the arithmetic mean of the points.
// An empty slice yields the origin.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}
