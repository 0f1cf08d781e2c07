package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/encounter/internal/backend"
	"github.com/dshills/encounter/internal/geometry"
	"github.com/dshills/encounter/internal/input/key"
	"github.com/dshills/encounter/internal/scope"
	"github.com/dshills/encounter/internal/selection"
)

type fakeBackend struct {
	mu        sync.Mutex
	events    chan backend.Event
	frames    [][]string
	shutdown  bool
	initErr   error
	interrupt int
}

func newFakeBackend(events ...backend.Event) *fakeBackend {
	ch := make(chan backend.Event, len(events)+8)
	for _, ev := range events {
		ch <- ev
	}
	return &fakeBackend{events: ch}
}

func (f *fakeBackend) Init() error { return f.initErr }

func (f *fakeBackend) Shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.shutdown {
		f.shutdown = true
		close(f.events)
	}
}

func (f *fakeBackend) Size() (int, int) { return 80, 24 }

func (f *fakeBackend) PollEvent() backend.Event {
	ev, ok := <-f.events
	if !ok {
		return backend.Event{Type: backend.EventClosed}
	}
	return ev
}

func (f *fakeBackend) Interrupt() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interrupt++
}

func (f *fakeBackend) Draw(lines []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, lines)
}

func (f *fakeBackend) lastFrame() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return ""
	}
	return strings.Join(f.frames[len(f.frames)-1], "\n")
}

func keyEvent(ev key.Event) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: ev}
}

func pointer(action backend.PointerAction, x, y float64) backend.Event {
	return backend.Event{Type: backend.EventPointer, Action: action, Point: geometry.Pt(x, y)}
}

func TestRunUntilQuit(t *testing.T) {
	e := New(testDocument())
	b := newFakeBackend(
		keyEvent(key.NewRuneEvent('1', key.ModNone)),
		pointer(backend.PointerDown, 40, -10),
		pointer(backend.PointerMove, 60, 10),
		pointer(backend.PointerUp, 60, 10),
		keyEvent(key.NewRuneEvent('q', key.ModCtrl)),
		keyEvent(key.NewRuneEvent('2', key.ModNone)),
	)

	require.NoError(t, e.Run(context.Background(), b))

	assert.Equal(t, scope.Walls, e.Scope(), "events after quit are not processed")
	assert.Equal(t, []int{0}, e.Selection().Walls)
	assert.Contains(t, b.lastFrame(), "tool: walls")
	assert.Contains(t, b.lastFrame(), "selected: walls=1")
	assert.Equal(t, 2, e.Chain().Len(), "quit handler is removed")
}

func TestRunStopsOnContext(t *testing.T) {
	e := New(testDocument())
	b := newFakeBackend()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- e.Run(ctx, b) }()

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunInitError(t *testing.T) {
	e := New(testDocument())
	b := newFakeBackend()
	b.initErr = assert.AnError

	err := e.Run(context.Background(), b)
	var ie *InitError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "backend", ie.Component)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStatusLines(t *testing.T) {
	e := New(testDocument(), WithInitialScope(scope.Lights))
	e.PointerDown(geometry.Pt(1, 2))
	e.HideAllLayers()

	lines := statusLines("Crypt", e.Snapshot())
	text := strings.Join(lines, "\n")

	assert.Contains(t, text, "encounter: Crypt  tool: lights  grid: none")
	assert.Contains(t, text, "layers: (none)")
	assert.Contains(t, text, "transaction: none  undo: -  redo: -")
	assert.Contains(t, text, "marquee: (1,2) -> (1,2)")
}

func TestStatusLinesShowEditProgress(t *testing.T) {
	e := New(testDocument(), WithInitialScope(scope.Walls))
	e.SelectAllByCategory(selection.CategoryWalls)
	drag(e, geometry.Pt(1, 1), geometry.Pt(20, 5))
	e.SetWallDrawing(true)
	e.AddWallPoint(geometry.Pt(0, 50))

	text := strings.Join(statusLines("Crypt", e.Snapshot()), "\n")

	assert.Contains(t, text, "transaction: walls step 1/1")
	assert.Contains(t, text, "drawing wall: 1 points")
}
