package problems

import (
	"strconv"

	"github.com/gitrdm/fdcore/examples/internal/notequal"
	"github.com/gitrdm/fdcore/pkg/fdcore"
)

// BuildNQueens builds the classic n-queens model: one variable per row
// holding its column, rows implicitly all-different by construction,
// columns all-different, and both diagonals all-different via offset
// disequality (row_i - row_j != col_i - col_j, i.e. col_i != col_j +
// (i-j) and col_i != col_j - (i-j)).
func BuildNQueens(n int) (*fdcore.Model, []*fdcore.IntVar, error) {
	m := fdcore.NewModel("n-queens-" + strconv.Itoa(n))
	cols := make([]*fdcore.IntVar, n)
	for i := 0; i < n; i++ {
		v, err := m.NewBoundedVar("row"+strconv.Itoa(i), 0, n-1)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = v
	}

	if err := notequal.AllDifferent(m, cols); err != nil {
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if _, err := notequal.New(m, cols[i], cols[j], j-i); err != nil {
				return nil, nil, err
			}
			if _, err := notequal.New(m, cols[i], cols[j], i-j); err != nil {
				return nil, nil, err
			}
		}
	}
	return m, cols, nil
}
