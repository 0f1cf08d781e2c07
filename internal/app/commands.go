package app

import (
	"github.com/dshills/encounter/internal/input/key"
	"github.com/dshills/encounter/internal/layers"
	"github.com/dshills/encounter/internal/scope"
	"github.com/dshills/encounter/internal/selection"
)

// Canvas commands available from the keyboard.
var (
	keySelectAll      = key.MustParse("a")
	keySelectAllKinds = key.MustParse("Shift+A")
	keyClear          = key.MustParse("Escape")
	keyHideLayers     = key.MustParse("h")
	keyShowLayers     = key.MustParse("s")
	keyCycleGrid      = key.MustParse("g")
	keyDraw           = key.MustParse("d")
	keyConfirm        = key.MustParse("Enter")
)

// scopeKeys maps the digit row to tools.
var scopeKeys = map[rune]scope.Scope{
	'0': scope.None,
	'1': scope.Walls,
	'2': scope.Regions,
	'3': scope.Lights,
	'4': scope.Sounds,
	'5': scope.Objects,
	'6': scope.Monsters,
	'7': scope.Characters,
}

var gridCycle = map[layers.GridType]layers.GridType{
	layers.GridNone:       layers.GridSquare,
	layers.GridSquare:     layers.GridHexRows,
	layers.GridHexRows:    layers.GridHexColumns,
	layers.GridHexColumns: layers.GridNone,
}

// handleCommand runs inside the batch started by HandleKey.
func (e *Editor) handleCommand(ev *key.Event) bool {
	if ev.Target == key.TargetTextInput {
		return false
	}

	if ev.IsRune() && ev.Modifiers == key.ModNone {
		if s, ok := scopeKeys[ev.Rune]; ok {
			e.setScope(s)
			ev.Consume()
			return true
		}
	}

	switch {
	case ev.Matches(keySelectAll):
		e.selection.SelectAllByCategory(categoryFor(e.guard.Current()))
	case ev.Matches(keySelectAllKinds):
		e.selection.SelectAllByCategory(selection.CategoryAll)
	case ev.Matches(keyClear):
		switch {
		case e.marquee.IsActive():
			e.marquee.Cancel()
		case e.hasPendingEdit():
			e.cancelEdit()
		default:
			e.selection.ClearSelection()
		}
	case ev.Matches(keyConfirm):
		if !e.confirmEdit() {
			return false
		}
	case ev.Matches(keyDraw):
		if e.guard.Current() != scope.Walls {
			return false
		}
		e.setWallDrawing(!e.wallTool.IsDrawing())
	case ev.Matches(keyHideLayers):
		e.layers.HideAll()
	case ev.Matches(keyShowLayers):
		e.layers.ShowAll()
		e.layersChanged()
	case ev.Matches(keyCycleGrid):
		e.layers.SetGrid(gridCycle[e.layers.Grid()])
	default:
		return false
	}

	ev.Consume()
	return true
}

// categoryFor maps a tool to the category its select-all covers.
func categoryFor(s scope.Scope) selection.Category {
	switch s {
	case scope.Walls:
		return selection.CategoryWalls
	case scope.Regions:
		return selection.CategoryRegions
	case scope.Lights:
		return selection.CategoryLights
	case scope.Sounds:
		return selection.CategorySounds
	case scope.Objects:
		return selection.CategoryObjects
	case scope.Monsters:
		return selection.CategoryMonsters
	case scope.Characters:
		return selection.CategoryCharacters
	default:
		return selection.CategoryNone
	}
}
