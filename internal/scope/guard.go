package scope

import (
	"github.com/dshills/encounter/internal/event"
	"github.com/dshills/encounter/internal/logging"
)

// Selection is the part of the selection coordinator the guard clears.
type Selection interface {
	SetAssets(ids []string)
	SetWalls(indices []int)
	SetRegions(indices []int)
	SetLights(indices []int)
	SetSounds(indices []int)
}

// WallEditor is the wall tool state the guard resets.
type WallEditor interface {
	CancelVertexEdit()
	DiscardPreview()
}

// RegionEditor is the region tool state the guard resets.
type RegionEditor interface {
	CancelVertexEdit()
	ClearEditIndex()
}

// Rollbacker is an open-able local transaction.
type Rollbacker interface {
	IsActive() bool
	Rollback()
}

// Batcher runs fn as one state update. Observers must not see the state
// between fn's individual steps.
type Batcher func(fn func())

// Deps are the collaborators reset on a scope change.
type Deps struct {
	Selection Selection
	Wall      WallEditor
	Region    RegionEditor
	WallTx    Rollbacker
	RegionTx  Rollbacker
}

// Change is the payload of event.TopicScopeChanged.
type Change struct {
	From Scope
	To   Scope
}

// Guard observes the active scope and resets editor state on every
// transition. It is the only component allowed to discard an open
// transaction.
type Guard struct {
	deps  Deps
	batch Batcher
	bus   *event.Bus
	log   *logging.Logger

	prev   Scope
	resets int
}

// Option configures a Guard.
type Option func(*Guard)

// WithBatcher runs each reset inside batch.
func WithBatcher(batch Batcher) Option {
	return func(g *Guard) {
		if batch != nil {
			g.batch = batch
		}
	}
}

// WithBus publishes TopicScopeChanged after each reset.
func WithBus(bus *event.Bus) Option {
	return func(g *Guard) {
		g.bus = bus
	}
}

// WithLogger sets the guard's logger.
func WithLogger(l *logging.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.log = l.WithComponent("scope")
		}
	}
}

// WithInitial sets the scope the guard starts from. Defaults to None.
func WithInitial(s Scope) Option {
	return func(g *Guard) {
		g.prev = s
	}
}

// NewGuard creates a guard over deps.
func NewGuard(deps Deps, opts ...Option) *Guard {
	g := &Guard{
		deps:  deps,
		batch: func(fn func()) { fn() },
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Current returns the last observed scope.
func (g *Guard) Current() Scope {
	return g.prev
}

// Resets returns how many times the reset sequence has run.
func (g *Guard) Resets() int {
	return g.resets
}

// Observe records next as the active scope. If it differs from the previous
// value the reset sequence runs and Observe returns true.
func (g *Guard) Observe(next Scope) bool {
	if next == g.prev {
		return false
	}
	from := g.prev
	g.prev = next

	g.batch(g.reset)
	g.resets++

	g.log.Debug("scope %s -> %s: editor state reset", from, next)
	if g.bus != nil {
		g.bus.Publish(event.TopicScopeChanged, Change{From: from, To: next})
	}
	return true
}

// reset clears selections, cancels vertex edits and rolls back open
// transactions, in that order.
func (g *Guard) reset() {
	d := g.deps
	if d.Selection != nil {
		d.Selection.SetAssets([]string{})
		d.Selection.SetWalls(nil)
		d.Selection.SetRegions(nil)
		d.Selection.SetLights(nil)
		d.Selection.SetSounds(nil)
	}
	if d.Wall != nil {
		d.Wall.CancelVertexEdit()
		d.Wall.DiscardPreview()
	}
	if d.WallTx != nil && d.WallTx.IsActive() {
		g.log.Debug("rolling back open wall transaction")
		d.WallTx.Rollback()
	}
	if d.RegionTx != nil && d.RegionTx.IsActive() {
		g.log.Debug("rolling back open region transaction")
		d.RegionTx.Rollback()
	}
	if d.Region != nil {
		d.Region.CancelVertexEdit()
		d.Region.ClearEditIndex()
	}
}
