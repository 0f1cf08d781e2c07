package app

import (
	"math"

	"github.com/dshills/encounter/internal/encounter"
	"github.com/dshills/encounter/internal/engine/history"
	"github.com/dshills/encounter/internal/geometry"
	"github.com/dshills/encounter/internal/input/marquee"
	"github.com/dshills/encounter/internal/scope"
)

// vertexHitRadius is how close to a vertex a press must land to grab it.
const vertexHitRadius = marquee.ClickThreshold

// commitGroup forwards transaction commits to the history. Between begin
// and flush, commits are held and pushed as a single undo unit.
type commitGroup struct {
	hist     *history.History
	grouping bool
	held     []history.Entry
}

// Push implements history.Recorder.
func (g *commitGroup) Push(entry history.Entry) {
	if g.grouping {
		g.held = append(g.held, entry)
		return
	}
	g.hist.Push(entry)
}

func (g *commitGroup) begin() {
	g.grouping = true
}

func (g *commitGroup) flush(name string) {
	held := g.held
	g.grouping = false
	g.held = nil

	switch len(held) {
	case 0:
	case 1:
		g.hist.Push(held[0])
	default:
		g.hist.Push(&history.CompoundEntry{Name: name, Entries: held})
	}
}

// BeginVertexDrag grabs one vertex of a wall or region, depending on the
// active scope. It reports false when the scope has no vertices or the
// indices are out of range.
func (e *Editor) BeginVertexDrag(item, vertex int) bool {
	var ok bool
	e.Update(func() { ok = e.beginVertexDrag(item, vertex) })
	return ok
}

// DragVertex moves the grabbed vertex preview to p. The document is not
// changed until DropVertex.
func (e *Editor) DragVertex(p geometry.Point) {
	e.Update(func() { e.dragVertex(p) })
}

// DropVertex places the grabbed vertex at p as one local step of the
// scope's transaction, opening it if needed.
func (e *Editor) DropVertex(p geometry.Point) bool {
	var ok bool
	e.Update(func() { ok = e.dropVertex(p) })
	return ok
}

// SetWallDrawing turns click-to-draw on or off in the wall scope. Turning
// it off discards an unconfirmed wall.
func (e *Editor) SetWallDrawing(on bool) {
	e.Update(func() { e.setWallDrawing(on) })
}

// AddWallPoint adds p to the wall being drawn.
func (e *Editor) AddWallPoint(p geometry.Point) {
	e.Update(func() {
		if e.guard.Current() == scope.Walls {
			e.wallTool.AddPreviewPoint(p)
		}
	})
}

// ConfirmEdit finishes the current edit: a drawn wall of two or more
// points is added, and every open transaction is committed as a single
// global history entry.
func (e *Editor) ConfirmEdit() bool {
	var ok bool
	e.Update(func() { ok = e.confirmEdit() })
	return ok
}

// CancelEdit abandons the current edit and restores the geometry as it was
// before the transaction opened.
func (e *Editor) CancelEdit() bool {
	var ok bool
	e.Update(func() { ok = e.cancelEdit() })
	return ok
}

func (e *Editor) beginVertexDrag(item, vertex int) bool {
	switch e.guard.Current() {
	case scope.Walls:
		walls := e.doc.Walls()
		if item < 0 || item >= len(walls) || vertex < 0 || vertex >= len(walls[item].Points) {
			return false
		}
		e.wallTool.BeginVertexEdit(item, vertex)
		e.wallTool.DragTo(walls[item].Points[vertex])
		return true
	case scope.Regions:
		regions := e.doc.Regions()
		if item < 0 || item >= len(regions) || vertex < 0 || vertex >= len(regions[item].Vertices) {
			return false
		}
		e.regionTool.BeginVertexEdit(item, vertex)
		e.regionTool.DragTo(regions[item].Vertices[vertex])
		return true
	default:
		return false
	}
}

func (e *Editor) draggingVertex() bool {
	_, walls := e.wallTool.Dragging()
	_, regions := e.regionTool.Dragging()
	return walls || regions
}

func (e *Editor) dragVertex(p geometry.Point) {
	if _, ok := e.wallTool.Dragging(); ok {
		e.wallTool.DragTo(p)
	}
	if _, ok := e.regionTool.Dragging(); ok {
		e.regionTool.DragTo(p)
	}
}

// dropVertex records the drag as a step. A drop where the vertex already
// sits records nothing.
func (e *Editor) dropVertex(p geometry.Point) bool {
	if _, ok := e.wallTool.EndDrag(); ok {
		wall, vertex := e.wallTool.SelectedVertex()
		walls := e.doc.Walls()
		if wall < 0 || wall >= len(walls) || vertex < 0 || vertex >= len(walls[wall].Points) ||
			walls[wall].Points[vertex].Equal(p) {
			return true
		}
		e.wallTx.Apply("move wall vertex", func(ws *[]encounter.Wall) {
			(*ws)[wall].Points[vertex] = p
		})
		return true
	}

	if _, ok := e.regionTool.EndDrag(); ok {
		region, vertex := e.regionTool.EditIndex(), e.regionTool.SelectedVertex()
		regions := e.doc.Regions()
		if region < 0 || region >= len(regions) || vertex < 0 || vertex >= len(regions[region].Vertices) ||
			regions[region].Vertices[vertex].Equal(p) {
			return true
		}
		e.regionTx.Apply("move region vertex", func(rs *[]encounter.Region) {
			(*rs)[region].Vertices[vertex] = p
		})
		return true
	}
	return false
}

// abandonDrag ends a drag without recording it.
func (e *Editor) abandonDrag() bool {
	_, walls := e.wallTool.EndDrag()
	_, regions := e.regionTool.EndDrag()
	return walls || regions
}

func (e *Editor) setWallDrawing(on bool) {
	if on && e.guard.Current() != scope.Walls {
		return
	}
	e.wallTool.SetDrawing(on)
	if !on {
		e.wallTool.DiscardPreview()
	}
}

func (e *Editor) hasPendingEdit() bool {
	return e.wallTx.IsActive() || e.regionTx.IsActive() ||
		e.wallTool.IsVertexEditing() || e.regionTool.IsVertexEditing() ||
		len(e.wallTool.Preview()) > 0
}

func (e *Editor) confirmEdit() bool {
	pending := e.hasPendingEdit()

	if points := e.wallTool.Preview(); len(points) >= 2 {
		e.wallTx.Apply("add wall", func(ws *[]encounter.Wall) {
			*ws = append(*ws, encounter.Wall{Points: points})
		})
	}
	e.endVertexEdits()

	e.commits.begin()
	e.wallTx.Commit()
	e.regionTx.Commit()
	e.commits.flush("edit walls and regions")
	return pending
}

func (e *Editor) cancelEdit() bool {
	pending := e.hasPendingEdit()
	e.endVertexEdits()
	e.wallTx.Rollback()
	e.regionTx.Rollback()
	return pending
}

func (e *Editor) endVertexEdits() {
	e.wallTool.DiscardPreview()
	e.wallTool.CancelVertexEdit()
	e.regionTool.CancelVertexEdit()
	e.regionTool.ClearEditIndex()
}

// vertexAt finds a vertex of a selected wall or region near p.
func (e *Editor) vertexAt(p geometry.Point) (item, vertex int, ok bool) {
	sel := e.selection.Sets()
	switch e.guard.Current() {
	case scope.Walls:
		walls := e.doc.Walls()
		for _, i := range sel.Walls {
			if i < len(walls) {
				if j, hit := nearest(walls[i].Points, p); hit {
					return i, j, true
				}
			}
		}
	case scope.Regions:
		regions := e.doc.Regions()
		for _, i := range sel.Regions {
			if i < len(regions) {
				if j, hit := nearest(regions[i].Vertices, p); hit {
					return i, j, true
				}
			}
		}
	}
	return -1, -1, false
}

func nearest(points []geometry.Point, p geometry.Point) (int, bool) {
	for i, v := range points {
		if math.Abs(v.X-p.X) < vertexHitRadius && math.Abs(v.Y-p.Y) < vertexHitRadius {
			return i, true
		}
	}
	return -1, false
}
