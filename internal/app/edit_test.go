package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/encounter/internal/encounter"
	"github.com/dshills/encounter/internal/engine/history"
	"github.com/dshills/encounter/internal/event"
	"github.com/dshills/encounter/internal/geometry"
	"github.com/dshills/encounter/internal/input/key"
	"github.com/dshills/encounter/internal/scope"
	"github.com/dshills/encounter/internal/selection"
	"github.com/dshills/encounter/internal/shortcut"
)

var (
	enter  = key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	escape = key.NewSpecialEvent(key.KeyEscape, key.ModNone)
)

func TestVertexDragIsLocalUntilConfirmed(t *testing.T) {
	doc := testDocument()
	e := New(doc, WithInitialScope(scope.Walls))
	e.SelectAllByCategory(selection.CategoryWalls)

	drag(e, geometry.Pt(1, 1), geometry.Pt(20, 5))
	assert.Equal(t, geometry.Pt(20, 5), doc.Walls()[0].Points[0])

	drag(e, geometry.Pt(20, 5), geometry.Pt(30, 5))
	s := e.Snapshot()
	require.True(t, s.WallTxActive)
	assert.Equal(t, 2, s.TxStep)
	assert.Equal(t, 2, s.TxSteps)
	assert.Equal(t, 0, e.History().UndoCount(), "drags stay local")

	assert.True(t, e.HandleKey(ctrl('z')))
	assert.Equal(t, shortcut.BranchWallUndo, e.LastShortcut())
	assert.Equal(t, geometry.Pt(20, 5), doc.Walls()[0].Points[0])

	assert.True(t, e.HandleKey(enter))
	assert.False(t, e.Snapshot().WallTxActive)
	assert.False(t, e.Snapshot().WallVertexEditing)
	require.Equal(t, 1, e.History().UndoCount())
	info, _ := e.History().PeekUndo()
	assert.Equal(t, "move wall vertex", info.Description)

	assert.True(t, e.HandleKey(ctrl('z')))
	require.NoError(t, e.Wait())
	assert.Equal(t, shortcut.BranchGlobalUndo, e.LastShortcut())
	assert.Equal(t, geometry.Pt(0, 0), doc.Walls()[0].Points[0])
}

func TestVertexDragNeedsSelection(t *testing.T) {
	doc := testDocument()
	e := New(doc, WithInitialScope(scope.Walls))

	drag(e, geometry.Pt(1, 1), geometry.Pt(20, 5))

	assert.Equal(t, geometry.Pt(0, 0), doc.Walls()[0].Points[0])
	assert.False(t, e.Snapshot().WallTxActive)
}

func TestEscapeRollsBackEdit(t *testing.T) {
	doc := testDocument()
	before := doc.Walls()
	e := New(doc, WithInitialScope(scope.Walls))
	e.SelectAllByCategory(selection.CategoryWalls)

	drag(e, geometry.Pt(1, 1), geometry.Pt(20, 5))
	require.True(t, e.Snapshot().WallTxActive)

	assert.True(t, e.HandleKey(escape))

	assert.Equal(t, before, doc.Walls())
	assert.False(t, e.Snapshot().WallTxActive)
	assert.Equal(t, 0, e.History().UndoCount())
	assert.Len(t, e.Selection().Walls, 2, "cancelling an edit keeps the selection")

	assert.True(t, e.HandleKey(escape))
	assert.True(t, e.Selection().IsEmpty())
}

func TestPointerCancelDropsVertexDrag(t *testing.T) {
	doc := testDocument()
	e := New(doc, WithInitialScope(scope.Walls))
	e.SelectAllByCategory(selection.CategoryWalls)

	e.PointerDown(geometry.Pt(0, 0))
	e.PointerMove(geometry.Pt(40, 40))
	e.PointerCancel()

	assert.Equal(t, geometry.Pt(0, 0), doc.Walls()[0].Points[0])
	assert.False(t, e.Snapshot().WallTxActive)
	assert.Len(t, e.Selection().Walls, 2)
}

func TestRegionDragUndoesLocally(t *testing.T) {
	doc := testDocument()
	e := New(doc, WithInitialScope(scope.Regions))

	// A committed entry so a global undo would be visible.
	e.Update(func() {
		tx := e.RegionTransaction()
		tx.Apply("rename", func(rs *[]encounter.Region) { (*rs)[0].Name = "Chapel" })
		tx.Commit()
	})
	e.SelectAllByCategory(selection.CategoryRegions)

	require.True(t, e.BeginVertexDrag(0, 0))
	e.DragVertex(geometry.Pt(44, 38))
	require.True(t, e.DropVertex(geometry.Pt(45, 35)))
	require.True(t, e.Snapshot().RegionTxActive)
	require.False(t, e.Snapshot().WallTxActive)

	assert.True(t, e.HandleKey(ctrl('z')))
	require.NoError(t, e.Wait())
	assert.Equal(t, shortcut.BranchRegionUndo, e.LastShortcut())
	assert.Equal(t, geometry.Pt(40, 40), doc.Regions()[0].Vertices[0])
	assert.Equal(t, "Chapel", doc.Regions()[0].Name)
	assert.Equal(t, 1, e.History().UndoCount())

	assert.True(t, e.HandleKey(ctrl('y')))
	assert.Equal(t, shortcut.BranchRegionRedo, e.LastShortcut())
	assert.Equal(t, geometry.Pt(45, 35), doc.Regions()[0].Vertices[0])
}

func TestBeginVertexDragRejects(t *testing.T) {
	e := New(testDocument(), WithInitialScope(scope.Lights))
	assert.False(t, e.BeginVertexDrag(0, 0), "lights have no vertices")

	e.SetScope(scope.Walls)
	assert.False(t, e.BeginVertexDrag(5, 0))
	assert.False(t, e.BeginVertexDrag(0, 9))
	assert.False(t, e.DropVertex(geometry.Pt(1, 1)), "nothing grabbed")
}

func TestDrawWall(t *testing.T) {
	doc := testDocument()
	e := New(doc, WithInitialScope(scope.Walls))

	require.True(t, e.HandleKey(key.NewRuneEvent('d', key.ModNone)))
	require.True(t, e.Snapshot().WallDrawing)

	e.PointerDown(geometry.Pt(10, 50))
	e.PointerUp(geometry.Pt(10, 50))
	e.PointerDown(geometry.Pt(10, 90))
	e.PointerUp(geometry.Pt(10, 90))
	assert.Len(t, e.Snapshot().WallPreview, 2)
	assert.Len(t, doc.Walls(), 2, "preview is not geometry yet")

	assert.True(t, e.HandleKey(enter))

	walls := doc.Walls()
	require.Len(t, walls, 3)
	assert.Equal(t, []geometry.Point{geometry.Pt(10, 50), geometry.Pt(10, 90)}, walls[2].Points)
	assert.Empty(t, e.Snapshot().WallPreview)
	info, _ := e.History().PeekUndo()
	assert.Equal(t, "add wall", info.Description)

	e.SetScope(scope.Lights)
	assert.False(t, e.Snapshot().WallDrawing, "drawing ends with the wall tool")
	assert.False(t, e.HandleKey(key.NewRuneEvent('d', key.ModNone)))
}

func TestSinglePointWallIsDropped(t *testing.T) {
	doc := testDocument()
	e := New(doc, WithInitialScope(scope.Walls))
	e.SetWallDrawing(true)
	e.AddWallPoint(geometry.Pt(3, 3))

	assert.True(t, e.ConfirmEdit())
	assert.Len(t, doc.Walls(), 2)
	assert.Equal(t, 0, e.History().UndoCount())
	assert.False(t, e.HandleKey(enter), "nothing left to confirm")
}

func TestConfirmGroupsWallAndRegionEdits(t *testing.T) {
	doc := testDocument()
	before := doc.Walls()
	e := New(doc)

	e.Update(func() {
		e.WallTransaction().Apply("nudge wall", moveFirstWall)
		e.RegionTransaction().Apply("rename", func(rs *[]encounter.Region) { (*rs)[0].Name = "Chapel" })
	})
	require.True(t, e.ConfirmEdit())

	require.Equal(t, 1, e.History().UndoCount())
	info, _ := e.History().PeekUndo()
	assert.Equal(t, "edit walls and regions", info.Description)

	require.NoError(t, e.History().Undo(context.Background()))
	assert.Equal(t, before, doc.Walls())
	assert.Equal(t, "Altar", doc.Regions()[0].Name)
}

func TestWaitReportsFailureAfterEmptyUndo(t *testing.T) {
	e := New(testDocument())

	e.HandleKey(ctrl('z'))
	require.NoError(t, e.Wait())

	boom := errors.New("entry failed")
	e.History().Push(&history.FuncEntry{
		Name:     "broken",
		UndoFunc: func(context.Context) error { return boom },
	})
	e.HandleKey(ctrl('z'))
	assert.ErrorIs(t, e.Wait(), boom)
	assert.NoError(t, e.Wait())
}

func TestHistoryChangeDuringBatchIsPublishedAfter(t *testing.T) {
	e := New(testDocument())

	var states []HistoryState
	e.Bus().Subscribe(event.TopicHistoryChanged, func(ev event.Event) {
		// Delivered outside the lock.
		_ = e.Snapshot()
		states = append(states, ev.Payload.(HistoryState))
	})

	e.Update(func() {
		e.History().Push(&history.FuncEntry{Name: "first"})
		e.History().Push(&history.FuncEntry{Name: "second"})
		assert.Empty(t, states, "nothing is published while the batch runs")
	})
	require.Len(t, states, 1)
	assert.Equal(t, "second", states[0].Undo)

	e.History().Push(&history.FuncEntry{Name: "third"})
	require.Len(t, states, 2, "outside a batch the change is published at once")
	assert.Equal(t, "third", states[1].Undo)
}
