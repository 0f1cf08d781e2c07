// Package tool holds the transient per-tool editing state of the wall and
// region tools: vertex-edit mode, the vertex being dragged, preview
// geometry and the region being edited.
package tool

import (
	"slices"

	"github.com/dshills/encounter/internal/geometry"
)

// vertexDrag tracks a pointer drag of one vertex.
type vertexDrag struct {
	dragging bool
	at       geometry.Point
}

// DragTo moves the dragged vertex to p.
func (d *vertexDrag) DragTo(p geometry.Point) {
	d.dragging = true
	d.at = p
}

// Dragging returns the drag position and whether a drag is in progress.
func (d *vertexDrag) Dragging() (geometry.Point, bool) {
	return d.at, d.dragging
}

// EndDrag finishes the drag and returns where it stopped.
func (d *vertexDrag) EndDrag() (geometry.Point, bool) {
	p, ok := d.at, d.dragging
	d.dragging = false
	d.at = geometry.Point{}
	return p, ok
}

// WallTool is the state of the wall drawing tool.
type WallTool struct {
	vertexDrag

	vertexEdit bool
	// wall and vertex locate the edited vertex, -1 when none.
	wall, vertex int

	drawing bool
	preview []geometry.Point
}

// NewWallTool creates an idle wall tool.
func NewWallTool() *WallTool {
	return &WallTool{wall: -1, vertex: -1}
}

// BeginVertexEdit enters vertex-edit mode on one vertex of a wall.
func (w *WallTool) BeginVertexEdit(wall, vertex int) {
	w.vertexEdit = true
	w.wall = wall
	w.vertex = vertex
}

// IsVertexEditing returns true while a wall vertex is being edited.
func (w *WallTool) IsVertexEditing() bool {
	return w.vertexEdit
}

// SelectedVertex returns the edited wall and vertex, or -1, -1.
func (w *WallTool) SelectedVertex() (wall, vertex int) {
	return w.wall, w.vertex
}

// CancelVertexEdit leaves vertex-edit mode and drops any drag.
func (w *WallTool) CancelVertexEdit() {
	w.vertexEdit = false
	w.wall = -1
	w.vertex = -1
	w.EndDrag()
}

// SetDrawing turns click-to-draw mode on or off.
func (w *WallTool) SetDrawing(on bool) {
	w.drawing = on
}

// IsDrawing reports whether clicks add points to a new wall.
func (w *WallTool) IsDrawing() bool {
	return w.drawing
}

// AddPreviewPoint appends a point to the wall being drawn.
func (w *WallTool) AddPreviewPoint(p geometry.Point) {
	w.preview = append(w.preview, p)
}

// Preview returns the wall geometry being drawn.
func (w *WallTool) Preview() []geometry.Point {
	return slices.Clone(w.preview)
}

// DiscardPreview drops the wall being drawn.
func (w *WallTool) DiscardPreview() {
	w.preview = nil
}

// RegionTool is the state of the region tool.
type RegionTool struct {
	vertexDrag

	vertexEdit bool
	editIndex  int
	vertex     int
}

// NewRegionTool creates an idle region tool.
func NewRegionTool() *RegionTool {
	return &RegionTool{editIndex: -1, vertex: -1}
}

// BeginVertexEdit enters vertex-edit mode on one vertex of the region at
// index.
func (r *RegionTool) BeginVertexEdit(index, vertex int) {
	r.vertexEdit = true
	r.editIndex = index
	r.vertex = vertex
}

// IsVertexEditing returns true while a region's vertices are being edited.
func (r *RegionTool) IsVertexEditing() bool {
	return r.vertexEdit
}

// SelectedVertex returns the edited vertex of the region at EditIndex, or -1.
func (r *RegionTool) SelectedVertex() int {
	return r.vertex
}

// CancelVertexEdit leaves vertex-edit mode. The edit index is kept; use
// ClearEditIndex to drop it.
func (r *RegionTool) CancelVertexEdit() {
	r.vertexEdit = false
	r.vertex = -1
	r.EndDrag()
}

// EditIndex returns the region being edited, or -1.
func (r *RegionTool) EditIndex() int {
	return r.editIndex
}

// ClearEditIndex forgets the region being edited.
func (r *RegionTool) ClearEditIndex() {
	r.editIndex = -1
}
