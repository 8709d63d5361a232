package fdcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdcore/pkg/fdcore"
)

func TestStoredIntPushPop(t *testing.T) {
	env := fdcore.NewEnvironment()
	cell := env.MakeInt(7)

	env.PushWorld()
	cell.Set(9)
	require.Equal(t, 9, cell.Get())

	env.PushWorld()
	cell.Set(11)
	require.Equal(t, 11, cell.Get())

	require.NoError(t, env.PopWorld())
	require.Equal(t, 9, cell.Get())

	require.NoError(t, env.PopWorld())
	require.Equal(t, 7, cell.Get())
}

func TestStoredIntSameWorldCoalesces(t *testing.T) {
	env := fdcore.NewEnvironment()
	cell := env.MakeInt(1)

	env.PushWorld()
	cell.Set(2)
	cell.Set(3)
	cell.Set(4)

	require.NoError(t, env.PopWorld())
	require.Equal(t, 1, cell.Get(), "every write inside one world should undo to the pre-world value")
}

func TestPopBelowRootIsError(t *testing.T) {
	env := fdcore.NewEnvironment()
	require.Error(t, env.PopWorld())
}

func TestSaveUndoRunsOnPop(t *testing.T) {
	env := fdcore.NewEnvironment()
	var ran bool

	env.PushWorld()
	env.Save(func() { ran = true })
	require.False(t, ran)

	require.NoError(t, env.PopWorld())
	require.True(t, ran)
}

func TestSaveUndoRunsInReverseOrder(t *testing.T) {
	env := fdcore.NewEnvironment()
	var order []int

	env.PushWorld()
	env.Save(func() { order = append(order, 1) })
	env.Save(func() { order = append(order, 2) })
	env.Save(func() { order = append(order, 3) })

	require.NoError(t, env.PopWorld())
	require.Equal(t, []int{3, 2, 1}, order)
}

func TestCommitWorldMergesIntoParent(t *testing.T) {
	env := fdcore.NewEnvironment()
	cell := env.MakeInt(0)

	env.PushWorld()
	cell.Set(5)
	require.NoError(t, env.CommitWorld(false))
	require.Equal(t, 0, env.CurrentWorld())
	require.Equal(t, 5, cell.Get(), "committed value should survive in the parent world")

	require.Error(t, env.PopWorld(), "nothing left above root after commit")
}

func TestCommitWorldRejectsMonitorTouched(t *testing.T) {
	env := fdcore.NewEnvironment()
	env.PushWorld()
	require.Error(t, env.CommitWorld(true))
}

func TestStoredBitSetTrail(t *testing.T) {
	env := fdcore.NewEnvironment()
	bs := env.MakeBitSet(10)
	full := append([]uint64(nil), bs.Words()...)

	env.PushWorld()
	bs.Set([]uint64{0})
	require.NotEqual(t, full, bs.Words())

	require.NoError(t, env.PopWorld())
	require.Equal(t, full, bs.Words())
}
