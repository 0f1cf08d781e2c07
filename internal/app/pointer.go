package app

import (
	"github.com/dshills/encounter/internal/encounter"
	"github.com/dshills/encounter/internal/geometry"
	"github.com/dshills/encounter/internal/input/marquee"
	"github.com/dshills/encounter/internal/scope"
)

// PointerDown starts a gesture at p. In the wall scope with drawing on it
// adds a point to the new wall. On a vertex of a selected wall or region
// it grabs that vertex. Anywhere else it starts a marquee.
func (e *Editor) PointerDown(p geometry.Point) {
	e.Update(func() {
		if e.guard.Current() == scope.Walls && e.wallTool.IsDrawing() {
			e.wallTool.AddPreviewPoint(p)
			return
		}
		if item, vertex, ok := e.vertexAt(p); ok && e.beginVertexDrag(item, vertex) {
			return
		}
		e.marquee.Start(p)
	})
}

// PointerMove drags the grabbed vertex or extends the marquee to p. It does
// nothing when no gesture is in progress.
func (e *Editor) PointerMove(p geometry.Point) {
	e.Update(func() {
		if e.draggingVertex() {
			e.dragVertex(p)
			return
		}
		e.marquee.Update(p)
	})
}

// PointerUp finishes the gesture at p. A vertex drag becomes a local edit
// step. A marquee selects what it covers in the active scope, and a simple
// click clears the selection instead.
func (e *Editor) PointerUp(p geometry.Point) {
	e.Update(func() {
		if e.dropVertex(p) {
			return
		}
		e.marquee.Update(p)
		e.finishMarquee()
		e.marquee.End()
	})
}

// PointerCancel abandons the gesture. A vertex drag is dropped without an
// edit; a marquee selects exactly like PointerUp at the last known
// position.
func (e *Editor) PointerCancel() {
	e.Update(func() {
		if e.abandonDrag() {
			return
		}
		e.finishMarquee()
		e.marquee.Cancel()
	})
}

func (e *Editor) finishMarquee() {
	if !e.marquee.IsActive() {
		return
	}
	if e.marquee.IsSimpleClick() {
		e.selection.ClearSelection()
		return
	}

	switch s := e.guard.Current(); s {
	case scope.Walls:
		e.selection.SetWalls(marquee.IndicesIn(e.marquee, e.doc.Walls()))
	case scope.Regions:
		e.selection.SetRegions(marquee.IndicesIn(e.marquee, e.doc.Regions()))
	case scope.Lights:
		var indices []int
		for _, l := range marquee.ItemsIn(e.marquee, e.doc.Lights()) {
			indices = append(indices, l.Index)
		}
		e.selection.SetLights(indices)
	case scope.Sounds:
		var indices []int
		for _, snd := range marquee.ItemsIn(e.marquee, e.doc.Sounds()) {
			indices = append(indices, snd.Index)
		}
		e.selection.SetSounds(indices)
	case scope.Objects, scope.Monsters, scope.Characters:
		kind := assetKindFor(s)
		ids := []string{}
		for _, a := range marquee.ItemsIn(e.marquee, e.doc.Assets()) {
			if a.Kind == kind {
				ids = append(ids, a.ID)
			}
		}
		e.selection.SetAssets(ids)
	case scope.None:
	default:
		e.log.Debug("marquee: no selection target for scope %s", s)
	}
}

func assetKindFor(s scope.Scope) encounter.AssetKind {
	switch s {
	case scope.Monsters:
		return encounter.KindCreature
	case scope.Characters:
		return encounter.KindCharacter
	default:
		return encounter.KindObject
	}
}
