package problems_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdcore/internal/problems"
	"github.com/gitrdm/fdcore/pkg/fdcore"
)

func TestSendMoreMoneySolves(t *testing.T) {
	m, vars, err := problems.BuildSendMoreMoney()
	require.NoError(t, err)

	result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
	require.NoError(t, err)
	require.NotEmpty(t, result.Solutions)

	sol := result.Solutions[0]
	send := 1000*sol.ValueOf(vars["S"]) + 100*sol.ValueOf(vars["E"]) + 10*sol.ValueOf(vars["N"]) + sol.ValueOf(vars["D"])
	more := 1000*sol.ValueOf(vars["M"]) + 100*sol.ValueOf(vars["O"]) + 10*sol.ValueOf(vars["R"]) + sol.ValueOf(vars["E"])
	money := 10000*sol.ValueOf(vars["M"]) + 1000*sol.ValueOf(vars["O"]) + 100*sol.ValueOf(vars["N"]) + 10*sol.ValueOf(vars["E"]) + sol.ValueOf(vars["Y"])
	require.Equal(t, money, send+more)

	seen := map[int]bool{}
	for _, l := range problems.Letters {
		v := sol.ValueOf(vars[l])
		require.False(t, seen[v], "letters must map to distinct digits")
		seen[v] = true
	}
	require.NotZero(t, sol.ValueOf(vars["S"]))
	require.NotZero(t, sol.ValueOf(vars["M"]))
}

func TestNQueensSolves(t *testing.T) {
	for _, n := range []int{1, 4, 6} {
		m, cols, err := problems.BuildNQueens(n)
		require.NoError(t, err)

		result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
		require.NoError(t, err)
		require.NotEmptyf(t, result.Solutions, "n=%d should have a solution", n)

		sol := result.Solutions[0]
		seen := map[int]bool{}
		for i, v := range cols {
			c := sol.ValueOf(v)
			require.False(t, seen[c])
			seen[c] = true
			for j := 0; j < i; j++ {
				otherC := sol.ValueOf(cols[j])
				require.NotEqual(t, i-j, c-otherC, "no shared diagonal")
				require.NotEqual(t, j-i, c-otherC, "no shared diagonal")
			}
		}
	}
}

func TestNQueensTwoAndThreeAreInfeasible(t *testing.T) {
	for _, n := range []int{2, 3} {
		m, _, err := problems.BuildNQueens(n)
		require.NoError(t, err)

		result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
		require.NoError(t, err)
		require.Emptyf(t, result.Solutions, "n=%d has no solution", n)
	}
}

func TestSudokuMiniSolvesWithGivens(t *testing.T) {
	givens := map[[2]int]int{
		{0, 0}: 1,
		{1, 2}: 3,
	}
	m, cells, err := problems.BuildSudokuMini(givens)
	require.NoError(t, err)

	result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
	require.NoError(t, err)
	require.NotEmpty(t, result.Solutions)

	sol := result.Solutions[0]
	require.Equal(t, 1, sol.ValueOf(cells[0][0]))
	require.Equal(t, 3, sol.ValueOf(cells[1][2]))

	for r := 0; r < 4; r++ {
		seen := map[int]bool{}
		for c := 0; c < 4; c++ {
			v := sol.ValueOf(cells[r][c])
			require.False(t, seen[v])
			seen[v] = true
		}
	}
}
