package problems

import (
	"strconv"

	"github.com/gitrdm/fdcore/examples/internal/notequal"
	"github.com/gitrdm/fdcore/pkg/fdcore"
)

// BuildSudokuMini builds a 4x4 sudoku (2x2 boxes, digits 1-4): one
// variable per cell, all-different over every row, column, and box.
// givens maps "row,col" (0-indexed) to a fixed digit; nil or empty
// leaves every cell free.
func BuildSudokuMini(givens map[[2]int]int) (*fdcore.Model, [4][4]*fdcore.IntVar, error) {
	const size = 4
	var cells [4][4]*fdcore.IntVar
	m := fdcore.NewModel("sudoku-mini")

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			name := "r" + strconv.Itoa(r) + "c" + strconv.Itoa(c)
			v, err := m.NewBoundedVar(name, 1, size)
			if err != nil {
				return nil, cells, err
			}
			cells[r][c] = v
		}
	}

	for pos, val := range givens {
		if _, err := cells[pos[0]][pos[1]].Instantiate(val, nil, nil); err != nil {
			return nil, cells, err
		}
	}

	for r := 0; r < size; r++ {
		row := make([]*fdcore.IntVar, size)
		for c := 0; c < size; c++ {
			row[c] = cells[r][c]
		}
		if err := notequal.AllDifferent(m, row); err != nil {
			return nil, cells, err
		}
	}
	for c := 0; c < size; c++ {
		col := make([]*fdcore.IntVar, size)
		for r := 0; r < size; r++ {
			col[r] = cells[r][c]
		}
		if err := notequal.AllDifferent(m, col); err != nil {
			return nil, cells, err
		}
	}
	for br := 0; br < size; br += 2 {
		for bc := 0; bc < size; bc += 2 {
			box := []*fdcore.IntVar{cells[br][bc], cells[br][bc+1], cells[br+1][bc], cells[br+1][bc+1]}
			if err := notequal.AllDifferent(m, box); err != nil {
				return nil, cells, err
			}
		}
	}

	return m, cells, nil
}
