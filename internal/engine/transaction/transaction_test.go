package transaction

import (
	"context"
	"testing"

	"github.com/jinzhu/copier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/encounter/internal/engine/history"
)

type vertex struct {
	X, Y float64
	Tags []string
}

type memStore struct {
	state []vertex
	saves int
}

func (s *memStore) Load() []vertex      { return s.state }
func (s *memStore) Save(state []vertex) { s.state = state; s.saves++ }

func newFixture() (*memStore, *history.History, *Transaction[[]vertex]) {
	store := &memStore{state: []vertex{{X: 0, Y: 0, Tags: []string{"door"}}}}
	h := history.New(10)
	return store, h, New[[]vertex](store, h, WithLabel[[]vertex]("Move vertex"))
}

func moveTo(x float64) func(*[]vertex) {
	return func(s *[]vertex) { (*s)[0].X = x }
}

func TestBeginIsIdempotent(t *testing.T) {
	store, _, tx := newFixture()

	tx.Begin()
	require.True(t, tx.IsActive())

	store.state[0].X = 99
	tx.Begin()
	tx.Rollback()

	assert.Equal(t, 0.0, store.state[0].X, "second Begin must not replace the snapshot")
}

func TestUndoRollbackRestoresSnapshot(t *testing.T) {
	store, h, tx := newFixture()
	original := DeepCopy(store.state)

	tx.Begin()
	tx.Apply("step 1", moveTo(1))
	tx.Apply("step 2", moveTo(2))
	tx.Apply("step 3", moveTo(3))
	require.Equal(t, 3, tx.StepCount())

	tx.UndoLocal()
	tx.UndoLocal()
	assert.Equal(t, 1.0, store.state[0].X)

	tx.Rollback()
	assert.False(t, tx.IsActive())
	assert.Equal(t, original, store.state)
	assert.Equal(t, 0, h.UndoCount(), "rollback must not touch global history")
}

func TestLocalUndoRedo(t *testing.T) {
	store, _, tx := newFixture()

	assert.False(t, tx.CanUndoLocal())
	assert.False(t, tx.CanRedoLocal())
	tx.UndoLocal()
	tx.RedoLocal()
	assert.False(t, tx.IsActive(), "no-op undo/redo must not open a transaction")

	tx.Apply("a", moveTo(5))
	tx.Apply("b", moveTo(6))

	require.True(t, tx.CanUndoLocal())
	tx.UndoLocal()
	assert.Equal(t, 5.0, store.state[0].X)
	require.True(t, tx.CanRedoLocal())
	tx.RedoLocal()
	assert.Equal(t, 6.0, store.state[0].X)
	assert.False(t, tx.CanRedoLocal())

	tx.UndoLocal()
	tx.UndoLocal()
	assert.False(t, tx.CanUndoLocal())
	tx.UndoLocal()
	assert.Equal(t, 0.0, store.state[0].X)
}

func TestApplyAfterUndoDropsRedoBranch(t *testing.T) {
	store, _, tx := newFixture()

	tx.Apply("a", moveTo(1))
	tx.Apply("b", moveTo(2))
	tx.UndoLocal()
	tx.Apply("c", moveTo(7))

	assert.False(t, tx.CanRedoLocal())
	assert.Equal(t, 2, tx.StepCount())
	assert.Equal(t, 7.0, store.state[0].X)
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	store, _, tx := newFixture()

	tx.Begin()
	store.state[0].Tags[0] = "window"
	tx.Rollback()

	assert.Equal(t, "door", store.state[0].Tags[0])
}

func TestCommitPushesSingleEntry(t *testing.T) {
	store, h, tx := newFixture()

	tx.Apply("a", moveTo(1))
	tx.Apply("b", moveTo(2))
	tx.Apply("c", moveTo(3))
	tx.UndoLocal()
	tx.Commit()

	assert.False(t, tx.IsActive())
	require.Equal(t, 1, h.UndoCount())
	info, _ := h.PeekUndo()
	assert.Equal(t, "Move vertex (2 steps)", info.Description)

	require.NoError(t, h.Undo(context.Background()))
	assert.Equal(t, 0.0, store.state[0].X)
	require.NoError(t, h.Redo(context.Background()))
	assert.Equal(t, 2.0, store.state[0].X)
}

func TestCommitSingleStepUsesStepName(t *testing.T) {
	_, h, tx := newFixture()

	tx.Apply("Drag wall end", moveTo(4))
	tx.Commit()

	info, ok := h.PeekUndo()
	require.True(t, ok)
	assert.Equal(t, "Drag wall end", info.Description)
}

func TestCommitWithoutChangesPushesNothing(t *testing.T) {
	_, h, tx := newFixture()

	tx.Begin()
	tx.Commit()
	assert.Equal(t, 0, h.UndoCount())

	tx.Apply("a", moveTo(1))
	tx.UndoLocal()
	tx.Commit()
	assert.Equal(t, 0, h.UndoCount())
}

func TestRollbackWhenInactive(t *testing.T) {
	store, _, tx := newFixture()

	tx.Rollback()
	tx.Commit()

	assert.False(t, tx.IsActive())
	assert.Equal(t, 0, store.saves)
}

func TestRecordOpensTransaction(t *testing.T) {
	store, _, tx := newFixture()

	store.state[0].X = 8
	tx.Record("external edit")

	require.True(t, tx.IsActive())
	assert.True(t, tx.CanUndoLocal())
	tx.UndoLocal()
	assert.Equal(t, 8.0, store.state[0].X, "opening snapshot is taken after the external edit")
}

func TestCustomCloner(t *testing.T) {
	store := &memStore{state: []vertex{{X: 1}}}
	calls := 0
	tx := New[[]vertex](store, nil, WithCloner[[]vertex](func(v []vertex) []vertex {
		calls++
		return append([]vertex(nil), v...)
	}))

	tx.Apply("a", moveTo(2))
	tx.Commit()

	assert.Positive(t, calls)
	assert.False(t, tx.IsActive())
}

type taggedVertex struct {
	X float64 `copier:"x"`
}

func TestCopyIsDeep(t *testing.T) {
	src := []vertex{{X: 1, Tags: []string{"door"}}}
	out, err := Copy(src)
	require.NoError(t, err)

	out[0].Tags[0] = "window"
	assert.Equal(t, "door", src[0].Tags[0])
}

func TestCopyReportsCopierFailure(t *testing.T) {
	_, err := Copy(taggedVertex{X: 1})
	require.ErrorIs(t, err, copier.ErrFieldNameTagStartNotUpperCase)

	assert.Panics(t, func() { DeepCopy(taggedVertex{X: 1}) },
		"a failed snapshot must not fall back to sharing the live value")
}

func TestCustomClonerAvoidsCopier(t *testing.T) {
	store := &taggedStore{state: []taggedVertex{{X: 1}}}
	h := history.New(10)
	tx := New[[]taggedVertex](store, h, WithCloner[[]taggedVertex](func(v []taggedVertex) []taggedVertex {
		return append([]taggedVertex(nil), v...)
	}))

	tx.Apply("move", func(s *[]taggedVertex) { (*s)[0].X = 5 })
	tx.Commit()
	require.NoError(t, h.Undo(context.Background()))
	assert.Equal(t, 1.0, store.state[0].X)
}

type taggedStore struct{ state []taggedVertex }

func (s *taggedStore) Load() []taggedVertex      { return s.state }
func (s *taggedStore) Save(state []taggedVertex) { s.state = state }
