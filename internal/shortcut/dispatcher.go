package shortcut

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/encounter/internal/engine/history"
	"github.com/dshills/encounter/internal/input/key"
	"github.com/dshills/encounter/internal/logging"
)

// Local is a scope-private transaction.
type Local interface {
	IsActive() bool
	CanUndoLocal() bool
	CanRedoLocal() bool
	UndoLocal()
	RedoLocal()
}

// Bindings lists the key specifications for each gesture.
type Bindings struct {
	Undo []string `toml:"undo" yaml:"undo"`
	Redo []string `toml:"redo" yaml:"redo"`
}

// DefaultBindings accepts both Ctrl and Cmd so the same keymap works on
// every platform.
func DefaultBindings() Bindings {
	return Bindings{
		Undo: []string{"Ctrl+Z", "Meta+Z"},
		Redo: []string{"Ctrl+Y", "Meta+Y", "Ctrl+Shift+Z", "Meta+Shift+Z"},
	}
}

// Branch identifies which route handled a keystroke.
type Branch uint8

const (
	BranchNone Branch = iota
	BranchWallUndo
	BranchRegionUndo
	BranchGlobalUndo
	BranchWallRedo
	BranchRegionRedo
	BranchGlobalRedo
)

var branchNames = [...]string{
	BranchNone:       "none",
	BranchWallUndo:   "wall undo",
	BranchRegionUndo: "region undo",
	BranchGlobalUndo: "global undo",
	BranchWallRedo:   "wall redo",
	BranchRegionRedo: "region redo",
	BranchGlobalRedo: "global redo",
}

// String returns the branch name.
func (b Branch) String() string {
	if int(b) < len(branchNames) {
		return branchNames[b]
	}
	return "unknown"
}

// Dispatcher routes undo/redo keystrokes.
type Dispatcher struct {
	wall   Local
	region Local
	global history.Global

	ctx     context.Context
	onError func(error)
	log     *logging.Logger

	mu       sync.RWMutex
	undoKeys []key.Event
	redoKeys []key.Event

	pending sync.WaitGroup
	errMu   sync.Mutex
	errs    []error
	last    Branch
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithContext sets the context passed to global undo/redo.
func WithContext(ctx context.Context) Option {
	return func(d *Dispatcher) {
		if ctx != nil {
			d.ctx = ctx
		}
	}
}

// WithErrorHandler routes global undo/redo failures to fn. fn runs on the
// goroutine that ran the global call.
func WithErrorHandler(fn func(error)) Option {
	return func(d *Dispatcher) {
		d.onError = fn
	}
}

// WithLogger sets the dispatcher's logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l.WithComponent("shortcut")
		}
	}
}

// New creates a dispatcher with DefaultBindings. Either local transaction
// may be nil.
func New(wall, region Local, global history.Global, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		wall:   wall,
		region: region,
		global: global,
		ctx:    context.Background(),
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	// Defaults are known-valid.
	_ = d.SetBindings(DefaultBindings())
	return d
}

// SetBindings replaces the key bindings. On error the previous bindings
// stay in effect.
func (d *Dispatcher) SetBindings(b Bindings) error {
	undo, err := key.ParseAll(b.Undo)
	if err != nil {
		return fmt.Errorf("undo bindings: %w", err)
	}
	redo, err := key.ParseAll(b.Redo)
	if err != nil {
		return fmt.Errorf("redo bindings: %w", err)
	}

	d.mu.Lock()
	d.undoKeys = undo
	d.redoKeys = redo
	d.mu.Unlock()
	return nil
}

// HandleKey implements input.Handler.
func (d *Dispatcher) HandleKey(ev *key.Event) bool {
	if ev.Target == key.TargetTextInput {
		return false
	}

	switch {
	case d.matches(ev, false):
		ev.Consume()
		d.last = d.undo()
	case d.matches(ev, true):
		ev.Consume()
		d.last = d.redo()
	default:
		return false
	}

	d.log.Debug("%s -> %s", ev, d.last)
	return true
}

func (d *Dispatcher) matches(ev *key.Event, redo bool) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	keys := d.undoKeys
	if redo {
		keys = d.redoKeys
	}
	for _, b := range keys {
		if ev.Matches(b) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) undo() Branch {
	switch {
	case canUndo(d.wall):
		d.wall.UndoLocal()
		return BranchWallUndo
	case canUndo(d.region):
		d.region.UndoLocal()
		return BranchRegionUndo
	default:
		d.async(d.global.Undo)
		return BranchGlobalUndo
	}
}

func (d *Dispatcher) redo() Branch {
	switch {
	case canRedo(d.wall):
		d.wall.RedoLocal()
		return BranchWallRedo
	case canRedo(d.region):
		d.region.RedoLocal()
		return BranchRegionRedo
	default:
		d.async(d.global.Redo)
		return BranchGlobalRedo
	}
}

func canUndo(l Local) bool {
	return l != nil && l.IsActive() && l.CanUndoLocal()
}

func canRedo(l Local) bool {
	return l != nil && l.IsActive() && l.CanRedoLocal()
}

// async runs a global history call without blocking the caller. Every
// failure reaches onError. Empty-history results are routine and are not
// kept for Wait.
func (d *Dispatcher) async(call func(context.Context) error) {
	if d.global == nil {
		return
	}
	ctx := d.ctx
	d.pending.Go(func() {
		err := call(ctx)
		if err == nil {
			return
		}
		if d.onError != nil {
			d.onError(err)
		}
		if isEmptyHistory(err) {
			d.log.Debug("global call: %v", err)
			return
		}
		d.errMu.Lock()
		d.errs = append(d.errs, err)
		d.errMu.Unlock()
	})
}

func isEmptyHistory(err error) bool {
	return errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo)
}

// Wait blocks until every global call issued so far has settled. It returns
// the failures recorded since the previous Wait, joined, and clears them.
func (d *Dispatcher) Wait() error {
	d.pending.Wait()

	d.errMu.Lock()
	defer d.errMu.Unlock()
	err := errors.Join(d.errs...)
	d.errs = nil
	return err
}

// LastBranch returns the branch taken by the most recent handled keystroke.
func (d *Dispatcher) LastBranch() Branch {
	return d.last
}
