package fdcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdcore/pkg/fdcore"
)

// disequal is a naive pairwise disequality propagator built directly
// against the package's own exported mutators, mirroring how an
// out-of-package propagator (examples/internal/notequal) is built, to
// exercise search without importing anything outside pkg/fdcore.
type disequal struct {
	id   int
	x, y *fdcore.IntVar
}

func (p *disequal) ID() int                       { return p.id }
func (p *disequal) Arity() int                    { return 2 }
func (p *disequal) Variables() []*fdcore.IntVar    { return []*fdcore.IntVar{p.x, p.y} }
func (p *disequal) Priority() fdcore.Priority      { return fdcore.PriorityBinary }
func (p *disequal) IsEntailed() fdcore.EntailmentStatus {
	if p.x.IsInstantiated() && p.y.IsInstantiated() {
		if p.x.GetLB() != p.y.GetLB() {
			return fdcore.True
		}
		return fdcore.False
	}
	return fdcore.Undefined
}

func (p *disequal) Propagate(full bool, touched []int) error {
	if p.x.IsInstantiated() {
		if _, err := p.y.RemoveValue(p.x.GetLB(), p, nil); err != nil {
			return err
		}
	}
	if p.y.IsInstantiated() {
		if _, err := p.x.RemoveValue(p.y.GetLB(), p, nil); err != nil {
			return err
		}
	}
	return nil
}

func postAllDifferent(t *testing.T, m *fdcore.Model, vars []*fdcore.IntVar) {
	t.Helper()
	id := 0
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			id++
			p := &disequal{id: id, x: vars[i], y: vars[j]}
			name := "disequal-" + vars[i].Name() + "-" + vars[j].Name()
			_, err := m.PostPermanent(name, []fdcore.Propagator{p}, nil)
			require.NoError(t, err)
		}
	}
}

func TestSearchFindsAllDifferentAssignment(t *testing.T) {
	m := fdcore.NewModel("three-different")
	a, err := m.NewBoundedVar("a", 0, 2)
	require.NoError(t, err)
	b, err := m.NewBoundedVar("b", 0, 2)
	require.NoError(t, err)
	c, err := m.NewBoundedVar("c", 0, 2)
	require.NoError(t, err)
	postAllDifferent(t, m, []*fdcore.IntVar{a, b, c})

	result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
	require.NoError(t, err)
	require.NotEmpty(t, result.Solutions)

	sol := result.Solutions[0]
	seen := map[int]bool{}
	for _, v := range []*fdcore.IntVar{a, b, c} {
		val := sol.ValueOf(v)
		require.False(t, seen[val], "values must be pairwise distinct")
		seen[val] = true
	}
	require.Equal(t, fdcore.Complete, result.Completeness)
}

func TestSearchDetectsInfeasibility(t *testing.T) {
	m := fdcore.NewModel("two-into-one")
	a, err := m.NewBoundedVar("a", 0, 0)
	require.NoError(t, err)
	b, err := m.NewBoundedVar("b", 0, 0)
	require.NoError(t, err)
	postAllDifferent(t, m, []*fdcore.IntVar{a, b})

	result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
	require.NoError(t, err)
	require.Empty(t, result.Solutions)
	require.Equal(t, fdcore.Complete, result.Completeness)
}

func TestSearchRespectsMaxNodes(t *testing.T) {
	m := fdcore.NewModel("big")
	vars := make([]*fdcore.IntVar, 6)
	for i := range vars {
		v, err := m.NewBoundedVar("v"+string(rune('a'+i)), 0, 5)
		require.NoError(t, err)
		vars[i] = v
	}
	postAllDifferent(t, m, vars)

	cfg := fdcore.DefaultSearchConfig()
	cfg.MaxNodes = 1
	result, err := m.Search(fdcore.SearchOptions{Config: cfg})
	require.NoError(t, err)
	require.LessOrEqual(t, result.Stats.NodesExplored, int64(1)+int64(len(vars)))
}

func TestSearchMaxSolutionsStopsEarly(t *testing.T) {
	m := fdcore.NewModel("many-solutions")
	a, err := m.NewBoundedVar("a", 0, 4)
	require.NoError(t, err)
	b, err := m.NewBoundedVar("b", 0, 4)
	require.NoError(t, err)
	postAllDifferent(t, m, []*fdcore.IntVar{a, b})

	cfg := fdcore.DefaultSearchConfig()
	cfg.MaxSolutions = 1
	result, err := m.Search(fdcore.SearchOptions{Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Solutions, 1)
	require.Equal(t, fdcore.Incomplete, result.Completeness)
}
