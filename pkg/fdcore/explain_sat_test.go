package fdcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdcore/pkg/fdcore"
)

func TestEnableExplanationsDoesNotChangeSearchOutcome(t *testing.T) {
	m := fdcore.NewModel("explained")
	a, err := m.NewBoundedVar("a", 0, 1)
	require.NoError(t, err)
	b, err := m.NewBoundedVar("b", 0, 1)
	require.NoError(t, err)
	postAllDifferent(t, m, []*fdcore.IntVar{a, b})

	m.EnableExplanations(fdcore.NewGiniBackend())

	result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
	require.NoError(t, err)
	require.NotEmpty(t, result.Solutions, "installing the explanation layer must not change feasibility")
}

func TestEnableExplanationsOnInfeasibleModel(t *testing.T) {
	m := fdcore.NewModel("explained-infeasible")
	a, err := m.NewBoundedVar("a", 0, 0)
	require.NoError(t, err)
	b, err := m.NewBoundedVar("b", 0, 0)
	require.NoError(t, err)
	postAllDifferent(t, m, []*fdcore.IntVar{a, b})

	m.EnableExplanations(fdcore.NewGiniBackend())

	result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
	require.NoError(t, err)
	require.Empty(t, result.Solutions)
	require.Equal(t, fdcore.Complete, result.Completeness)
}

func TestLiteralInterningIsStable(t *testing.T) {
	m := fdcore.NewModel("")
	x, err := m.NewBoundedVar("x", 0, 5)
	require.NoError(t, err)

	l1 := m.LiteralEq(x, 3)
	l2 := m.LiteralEq(x, 3)
	l3 := m.LiteralNe(x, 3)

	require.Equal(t, l1, l2, "interning the same predicate twice returns the same literal id")
	require.NotEqual(t, l1, l3)
}
