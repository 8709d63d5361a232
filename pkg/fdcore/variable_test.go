package fdcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdcore/pkg/fdcore"
)

func TestBoundedVarRemoveValue(t *testing.T) {
	m := fdcore.NewModel("")
	v, err := m.NewBoundedVar("x", 0, 5)
	require.NoError(t, err)

	// A bounded domain keeps no holes, so removal only has an effect at a
	// bound; 5 is the upper bound.
	changed, err := v.RemoveValue(5, nil, nil)
	require.NoError(t, err)
	require.True(t, changed)
	require.False(t, v.Contains(5))

	changed, err = v.RemoveValue(5, nil, nil)
	require.NoError(t, err)
	require.False(t, changed, "removing an already-absent value is a no-op")
}

func TestBoundedVarUpdateLBBeyondUBContradicts(t *testing.T) {
	m := fdcore.NewModel("")
	v, err := m.NewBoundedVar("x", 0, 5)
	require.NoError(t, err)

	_, err = v.UpdateLB(9, nil, nil)
	require.Error(t, err)
	require.True(t, fdcore.IsContradiction(err))
}

func TestBoundedVarInstantiate(t *testing.T) {
	m := fdcore.NewModel("")
	v, err := m.NewBoundedVar("x", 0, 5)
	require.NoError(t, err)

	changed, err := v.Instantiate(2, nil, nil)
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, v.IsInstantiated())
	require.Equal(t, 2, v.GetLB())
	require.Equal(t, 2, v.GetUB())

	_, err = v.Instantiate(3, nil, nil)
	require.Error(t, err)
	require.True(t, fdcore.IsContradiction(err))
}

func TestEnumeratedVarHoles(t *testing.T) {
	m := fdcore.NewModel("")
	v, err := m.NewEnumeratedVar("x", []int{1, 3, 5, 7})
	require.NoError(t, err)

	require.True(t, v.HasEnumeratedDomain())
	require.False(t, v.Contains(2))
	require.True(t, v.Contains(5))
	require.Equal(t, 4, v.GetSize())

	_, err = v.RemoveValue(5, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 3, v.GetSize())
}

func TestConstVarRejectsMutation(t *testing.T) {
	m := fdcore.NewModel("")
	v := m.NewConstVar("c", 4)

	require.True(t, v.IsInstantiated())
	_, err := v.Instantiate(5, nil, nil)
	require.Error(t, err)
	require.True(t, fdcore.IsContradiction(err))
}

func TestShiftView(t *testing.T) {
	m := fdcore.NewModel("")
	under, err := m.NewBoundedVar("x", 0, 10)
	require.NoError(t, err)
	view := m.NewShiftView("x+3", under, 3)

	require.Equal(t, 3, view.GetLB())
	require.Equal(t, 13, view.GetUB())
}
