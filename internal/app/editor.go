package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/encounter/internal/config"
	"github.com/dshills/encounter/internal/encounter"
	"github.com/dshills/encounter/internal/engine/history"
	"github.com/dshills/encounter/internal/engine/transaction"
	"github.com/dshills/encounter/internal/event"
	"github.com/dshills/encounter/internal/geometry"
	"github.com/dshills/encounter/internal/input"
	"github.com/dshills/encounter/internal/input/key"
	"github.com/dshills/encounter/internal/input/marquee"
	"github.com/dshills/encounter/internal/layers"
	"github.com/dshills/encounter/internal/logging"
	"github.com/dshills/encounter/internal/scope"
	"github.com/dshills/encounter/internal/selection"
	"github.com/dshills/encounter/internal/shortcut"
	"github.com/dshills/encounter/internal/tool"
)

// WallTx is the local transaction used while editing walls.
type WallTx = transaction.Transaction[[]encounter.Wall]

// RegionTx is the local transaction used while editing regions.
type RegionTx = transaction.Transaction[[]encounter.Region]

// Editor owns the interaction state of one open encounter.
//
// Every mutating method runs as a single batch under one lock. Events
// raised during a batch are coalesced per topic and published after the
// lock is released, so subscribers may call back into the Editor.
type Editor struct {
	mu sync.Mutex

	doc      *encounter.Document
	hist     *history.History
	commits  *commitGroup
	wallTx   *WallTx
	regionTx *RegionTx

	selection  *selection.Coordinator
	wallTool   *tool.WallTool
	regionTool *tool.RegionTool
	guard      *scope.Guard
	shortcuts  *shortcut.Dispatcher
	chain      *input.Chain
	layers     *layers.Visibility
	marquee    *marquee.Marquee

	// inner carries component events; bus carries them to observers.
	inner *event.Bus
	bus   *event.Bus

	pendMu   sync.Mutex
	updating int
	pending  []event.Event
	// historyDirty defers history notifications raised during a batch.
	historyDirty bool

	log      *logging.Logger
	ctx      context.Context
	cfg      *config.Config
	onAssets selection.AssetSelector
	initial  scope.Scope

	running atomic.Bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithConfig sets the initial configuration.
func WithConfig(cfg *config.Config) Option {
	return func(e *Editor) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithLogger sets the editor's logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithContext sets the context global undo/redo runs under.
func WithContext(ctx context.Context) Option {
	return func(e *Editor) {
		if ctx != nil {
			e.ctx = ctx
		}
	}
}

// WithAssetSelector forwards asset selection changes to the asset catalog.
func WithAssetSelector(fn selection.AssetSelector) Option {
	return func(e *Editor) {
		e.onAssets = fn
	}
}

// WithInitialScope starts the editor with a tool already active. No reset
// runs for the initial scope.
func WithInitialScope(s scope.Scope) Option {
	return func(e *Editor) {
		e.initial = s
	}
}

// New creates an editor over doc.
func New(doc *encounter.Document, opts ...Option) *Editor {
	e := &Editor{
		doc: doc,
		log: logging.Nop(),
		ctx: context.Background(),
		cfg: config.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.bootstrap()
	return e
}

// bootstrap builds the components in dependency order.
func (e *Editor) bootstrap() {
	log := e.log.WithComponent("editor")
	onPanic := func(ev event.Event, r any) {
		log.Error("subscriber panic on %s: %v", ev.Topic, r)
	}
	e.bus = event.NewBus(event.WithPanicHandler(onPanic))
	e.inner = event.NewBus(event.WithPanicHandler(onPanic))
	e.inner.Subscribe(event.WildcardMulti, func(ev event.Event) {
		e.emit(ev)
	})

	// 1. History and local transactions
	e.hist = history.New(e.cfg.Editor.HistoryMaxEntries)
	e.hist.OnChange(e.historyChanged)
	e.commits = &commitGroup{hist: e.hist}
	e.wallTx = transaction.New[[]encounter.Wall](
		encounter.WallStore{Doc: e.doc}, e.commits,
		transaction.WithLabel[[]encounter.Wall]("edit walls"),
		transaction.WithCloner(encounter.CloneWalls),
	)
	e.regionTx = transaction.New[[]encounter.Region](
		encounter.RegionStore{Doc: e.doc}, e.commits,
		transaction.WithLabel[[]encounter.Region]("edit regions"),
		transaction.WithCloner(encounter.CloneRegions),
	)

	// 2. Selection and tools
	e.selection = selection.NewCoordinator(e.doc, e.onAssets,
		selection.WithBus(e.inner),
		selection.WithLogger(e.log),
	)
	e.wallTool = tool.NewWallTool()
	e.regionTool = tool.NewRegionTool()
	e.marquee = marquee.New()

	// 3. Scope guard. Observe always runs inside update, which is the batch.
	e.guard = scope.NewGuard(scope.Deps{
		Selection: e.selection,
		Wall:      e.wallTool,
		Region:    e.regionTool,
		WallTx:    e.wallTx,
		RegionTx:  e.regionTx,
	},
		scope.WithBus(e.inner),
		scope.WithLogger(e.log),
		scope.WithInitial(e.initial),
	)

	// 4. Layers
	e.layers = layers.New(e.cfg.Grid(), e.cfg.DefaultGrid(), func(layers.GridType) {
		e.layersChanged()
	})

	// 5. Keyboard
	e.shortcuts = shortcut.New(e.wallTx, e.regionTx, e.hist,
		shortcut.WithContext(e.ctx),
		shortcut.WithLogger(e.log),
		shortcut.WithErrorHandler(e.globalFailed),
	)
	if err := e.shortcuts.SetBindings(e.cfg.Keymap); err != nil {
		log.Warn("keymap: %v; using defaults", err)
	}
	e.chain = input.NewChain()
	// Names are unique on a fresh chain.
	_, _ = e.chain.Register("shortcuts", input.PriorityHighest, e.shortcuts)
	_, _ = e.chain.Register("commands", input.PriorityNormal, input.HandlerFunc(e.handleCommand))
}

// Bus returns the bus observers subscribe to.
func (e *Editor) Bus() *event.Bus {
	return e.bus
}

// Document returns the open encounter.
func (e *Editor) Document() *encounter.Document {
	return e.doc
}

// History returns the global undo history.
func (e *Editor) History() *history.History {
	return e.hist
}

// Chain returns the key handler chain. Handlers run inside the editor's
// batch and must not call the Editor's exported methods.
func (e *Editor) Chain() *input.Chain {
	return e.chain
}

// Update runs fn as one batch. Use it to drive transactions and tools
// obtained from WallTransaction, RegionTransaction, WallTool and RegionTool.
func (e *Editor) Update(fn func()) {
	var (
		batch        []event.Event
		historyMoved bool
	)
	func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		e.pendMu.Lock()
		e.updating++
		e.pendMu.Unlock()
		defer func() { batch, historyMoved = e.endBatch() }()

		fn()
	}()

	for _, ev := range batch {
		e.bus.Publish(ev.Topic, ev.Payload)
	}
	if historyMoved {
		e.bus.Publish(event.TopicHistoryChanged, e.historyState())
	}
}

// emit publishes ev now, or queues it while a batch is in progress.
func (e *Editor) emit(ev event.Event) {
	e.pendMu.Lock()
	if e.updating > 0 {
		e.pending = append(e.pending, ev)
		e.pendMu.Unlock()
		return
	}
	e.pendMu.Unlock()
	e.bus.Publish(ev.Topic, ev.Payload)
}

// endBatch closes a batch and returns its events, keeping the last payload
// per topic in order of first appearance, and whether history changed
// while the batch ran.
func (e *Editor) endBatch() ([]event.Event, bool) {
	e.pendMu.Lock()
	defer e.pendMu.Unlock()

	e.updating--
	if e.updating > 0 {
		return nil, false
	}
	historyMoved := e.historyDirty
	e.historyDirty = false
	if len(e.pending) == 0 {
		return nil, historyMoved
	}

	var out []event.Event
	seen := make(map[event.Topic]int, len(e.pending))
	for _, ev := range e.pending {
		if i, ok := seen[ev.Topic]; ok {
			out[i] = ev
			continue
		}
		seen[ev.Topic] = len(out)
		out = append(out, ev)
	}
	e.pending = nil
	return out, historyMoved
}

// WallTransaction returns the wall editing transaction. Call it only
// inside Update.
func (e *Editor) WallTransaction() *WallTx {
	return e.wallTx
}

// RegionTransaction returns the region editing transaction. Call it only
// inside Update.
func (e *Editor) RegionTransaction() *RegionTx {
	return e.regionTx
}

// WallTool returns the wall tool state. Call it only inside Update.
func (e *Editor) WallTool() *tool.WallTool {
	return e.wallTool
}

// RegionTool returns the region tool state. Call it only inside Update.
func (e *Editor) RegionTool() *tool.RegionTool {
	return e.regionTool
}

// SetScope activates a tool. Changing the scope clears every selection,
// ends vertex editing and discards any open local transaction.
func (e *Editor) SetScope(s scope.Scope) {
	e.Update(func() { e.setScope(s) })
}

func (e *Editor) setScope(s scope.Scope) {
	if e.guard.Observe(s) {
		// The marquee and drawing mode belonged to the previous tool.
		e.marquee.Cancel()
		e.wallTool.SetDrawing(false)
		e.log.Debug("scope %s, reset %d", s, e.guard.Resets())
	}
}

// Scope returns the active scope.
func (e *Editor) Scope() scope.Scope {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.guard.Current()
}

// SelectAllByCategory replaces the selection with everything in category.
func (e *Editor) SelectAllByCategory(c selection.Category) {
	e.Update(func() { e.selection.SelectAllByCategory(c) })
}

// ClearSelection empties every selection.
func (e *Editor) ClearSelection() {
	e.Update(e.selection.ClearSelection)
}

// Selection returns a copy of the current selection.
func (e *Editor) Selection() selection.Sets {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.Sets().Clone()
}

// HideAllLayers hides every layer and turns the grid off.
func (e *Editor) HideAllLayers() {
	e.Update(e.layers.HideAll)
}

// ShowAllLayers shows every layer and restores the grid if it was off.
func (e *Editor) ShowAllLayers() {
	e.Update(func() {
		e.layers.ShowAll()
		e.layersChanged()
	})
}

// ToggleLayer flips one layer's visibility.
func (e *Editor) ToggleLayer(l layers.Layer) {
	e.Update(func() {
		e.layers.Toggle(l)
		e.layersChanged()
	})
}

// SetGrid changes the grid mode.
func (e *Editor) SetGrid(g layers.GridType) {
	e.Update(func() { e.layers.SetGrid(g) })
}

// HandleKey routes a key press through the handler chain and reports
// whether any handler consumed it.
func (e *Editor) HandleKey(ev key.Event) bool {
	var handled bool
	e.Update(func() { handled = e.chain.Dispatch(&ev) })
	return handled
}

// Wait blocks until every global undo/redo issued so far has finished and
// returns the failures since the previous Wait. An empty history is not
// a failure.
func (e *Editor) Wait() error {
	return e.shortcuts.Wait()
}

// LastShortcut returns the route taken by the last undo/redo keystroke.
func (e *Editor) LastShortcut() shortcut.Branch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shortcuts.LastBranch()
}

// ApplyConfig updates the running editor. Invalid keymaps leave the
// previous bindings in effect and are returned.
func (e *Editor) ApplyConfig(cfg *config.Config) error {
	var err error
	e.Update(func() {
		e.cfg = cfg
		e.log.SetLevel(cfg.LogLevel())
		e.hist.SetMaxEntries(cfg.Editor.HistoryMaxEntries)
		e.layers.SetDefaultGrid(cfg.DefaultGrid())
		err = e.shortcuts.SetBindings(cfg.Keymap)
		e.inner.Publish(event.TopicConfigReloaded, cfg)
	})
	return err
}

// HistoryState is the payload of event.TopicHistoryChanged.
type HistoryState struct {
	CanUndo bool
	CanRedo bool
	Undo    string
	Redo    string
}

func (e *Editor) historyState() HistoryState {
	st := HistoryState{CanUndo: e.hist.CanUndo(), CanRedo: e.hist.CanRedo()}
	if info, ok := e.hist.PeekUndo(); ok {
		st.Undo = info.Description
	}
	if info, ok := e.hist.PeekRedo(); ok {
		st.Redo = info.Description
	}
	return st
}

// historyChanged may run on a global undo goroutine outside any batch.
// The payload is read at delivery, so only the latest state matters: a
// change seen while any batch runs, including one from another goroutine,
// is published once after that batch with the state current by then.
func (e *Editor) historyChanged() {
	e.pendMu.Lock()
	if e.updating > 0 {
		e.historyDirty = true
		e.pendMu.Unlock()
		return
	}
	e.pendMu.Unlock()
	e.bus.Publish(event.TopicHistoryChanged, e.historyState())
}

// LayerState is the payload of event.TopicLayersChanged.
type LayerState struct {
	Visible map[layers.Layer]bool
	Grid    layers.GridType
}

func (e *Editor) layersChanged() {
	e.inner.Publish(event.TopicLayersChanged, LayerState{
		Visible: e.layers.Snapshot(),
		Grid:    e.layers.Grid(),
	})
}

func (e *Editor) globalFailed(err error) {
	if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
		e.log.Debug("global history: %v", err)
		return
	}
	e.log.Warn("global history: %v", err)
}

// Snapshot is a read-only view of the editor for renderers and tests.
type Snapshot struct {
	Scope     scope.Scope
	Selection selection.Sets
	Layers    map[layers.Layer]bool
	Grid      layers.GridType
	Marquee   marquee.State

	WallTxActive        bool
	RegionTxActive      bool
	WallVertexEditing   bool
	RegionVertexEditing bool
	WallDrawing         bool
	WallPreview         []geometry.Point

	// TxStep is the applied local step of the open transaction, wall
	// first, and TxSteps how many steps it has recorded.
	TxStep, TxSteps int

	History HistoryState
}

// Snapshot captures the current state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	var step, steps int
	switch {
	case e.wallTx.IsActive():
		step, steps = e.wallTx.Cursor(), e.wallTx.StepCount()
	case e.regionTx.IsActive():
		step, steps = e.regionTx.Cursor(), e.regionTx.StepCount()
	}

	return Snapshot{
		Scope:               e.guard.Current(),
		Selection:           e.selection.Sets().Clone(),
		Layers:              e.layers.Snapshot(),
		Grid:                e.layers.Grid(),
		Marquee:             e.marquee.State(),
		WallTxActive:        e.wallTx.IsActive(),
		RegionTxActive:      e.regionTx.IsActive(),
		WallVertexEditing:   e.wallTool.IsVertexEditing(),
		RegionVertexEditing: e.regionTool.IsVertexEditing(),
		WallDrawing:         e.wallTool.IsDrawing(),
		WallPreview:         e.wallTool.Preview(),
		TxStep:              step,
		TxSteps:             steps,
		History:             e.historyState(),
	}
}
