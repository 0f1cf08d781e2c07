package app

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dshills/encounter/internal/backend"
	"github.com/dshills/encounter/internal/event"
	"github.com/dshills/encounter/internal/input"
	"github.com/dshills/encounter/internal/input/key"
	"github.com/dshills/encounter/internal/layers"
)

var keyQuit = key.MustParse("Ctrl+Q")

const helpLine = "0-7 tool  a select all  A everything  d draw wall  enter confirm  esc cancel/clear  h/s hide/show layers  g grid  ctrl+z/y undo/redo  ctrl+q quit"

// Run drives the editor from b until ctx is done or the user quits.
func (e *Editor) Run(ctx context.Context, b backend.Backend) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	var quit atomic.Bool
	id, err := e.chain.Register("quit", input.PriorityLow, input.HandlerFunc(func(ev *key.Event) bool {
		if !ev.Matches(keyQuit) {
			return false
		}
		quit.Store(true)
		ev.Consume()
		return true
	}))
	if err != nil {
		return &InitError{Component: "quit handler", Err: err}
	}
	defer e.chain.Unregister(id)

	// Global undo finishes on another goroutine; wake the loop to redraw.
	unsub := e.bus.Subscribe(event.TopicHistoryChanged, func(event.Event) {
		b.Interrupt()
	})
	defer unsub()

	done := make(chan struct{})
	defer close(done)
	events := make(chan backend.Event)
	go func() {
		for {
			ev := b.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
			if ev.Type == backend.EventClosed {
				return
			}
		}
	}()

	e.log.Info("editing %q", e.doc.Name())
	b.Draw(statusLines(e.doc.Name(), e.Snapshot()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ev.Type == backend.EventClosed {
				return nil
			}
			e.handleBackendEvent(ev)
			if quit.Load() {
				return nil
			}
			b.Draw(statusLines(e.doc.Name(), e.Snapshot()))
		}
	}
}

func (e *Editor) handleBackendEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		e.HandleKey(ev.Key)
	case backend.EventPointer:
		switch ev.Action {
		case backend.PointerDown:
			e.PointerDown(ev.Point)
		case backend.PointerMove:
			e.PointerMove(ev.Point)
		case backend.PointerUp:
			e.PointerUp(ev.Point)
		}
	}
}

// statusLines renders the snapshot as text.
func statusLines(name string, s Snapshot) []string {
	var visible []string
	for _, l := range layers.All() {
		if s.Layers[l] {
			visible = append(visible, l.String())
		}
	}
	if len(visible) == 0 {
		visible = []string{"(none)"}
	}

	tx := "none"
	switch {
	case s.WallTxActive:
		tx = fmt.Sprintf("walls step %d/%d", s.TxStep, s.TxSteps)
	case s.RegionTxActive:
		tx = fmt.Sprintf("regions step %d/%d", s.TxStep, s.TxSteps)
	}

	lines := []string{
		fmt.Sprintf("encounter: %s  tool: %s  grid: %s", name, s.Scope, s.Grid),
		fmt.Sprintf("selected: walls=%d regions=%d lights=%d sounds=%d assets=%d",
			len(s.Selection.Walls), len(s.Selection.Regions), len(s.Selection.Lights),
			len(s.Selection.Sounds), len(s.Selection.Assets)),
		"layers: " + strings.Join(visible, " "),
		fmt.Sprintf("transaction: %s  undo: %s  redo: %s", tx, orDash(s.History.Undo), orDash(s.History.Redo)),
	}
	if s.WallDrawing {
		lines = append(lines, fmt.Sprintf("drawing wall: %d points", len(s.WallPreview)))
	}
	if s.Marquee.Active {
		lines = append(lines, fmt.Sprintf("marquee: (%g,%g) -> (%g,%g)",
			s.Marquee.Start.X, s.Marquee.Start.Y, s.Marquee.End.X, s.Marquee.End.Y))
	}
	return append(lines, "", helpLine)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
