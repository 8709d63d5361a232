// Package problems builds the small demonstration models shared by
// examples/ and cmd/fdcore: SEND+MORE=MONEY, n-queens, and a 4x4 sudoku,
// grounded on spec.md section 8's seed scenarios S1-S3.
package problems

import (
	"github.com/gitrdm/fdcore/examples/internal/linear"
	"github.com/gitrdm/fdcore/examples/internal/notequal"
	"github.com/gitrdm/fdcore/pkg/fdcore"
)

// Letters names the eight SEND+MORE=MONEY digit variables in a fixed,
// caller-friendly order.
var Letters = []string{"S", "E", "N", "D", "M", "O", "R", "Y"}

// BuildSendMoreMoney builds the classic cryptarithmetic puzzle:
// SEND + MORE = MONEY, all eight letters distinct digits, S and M
// nonzero (leading digits). Returns the model and the letter variables
// keyed by letter (the keys are the entries of Letters).
func BuildSendMoreMoney() (*fdcore.Model, map[string]*fdcore.IntVar, error) {
	m := fdcore.NewModel("send-more-money")
	vars := make(map[string]*fdcore.IntVar, len(Letters))
	for _, l := range Letters {
		lo := 0
		if l == "S" || l == "M" {
			lo = 1
		}
		v, err := m.NewBoundedVar(l, lo, 9)
		if err != nil {
			return nil, nil, err
		}
		vars[l] = v
	}

	ordered := make([]*fdcore.IntVar, len(Letters))
	for i, l := range Letters {
		ordered[i] = vars[l]
	}
	if err := notequal.AllDifferent(m, ordered); err != nil {
		return nil, nil, err
	}

	s, e, n, d := vars["S"], vars["E"], vars["N"], vars["D"]
	mo, o, r, y := vars["M"], vars["O"], vars["R"], vars["Y"]

	// S*1000 + E*100 + N*10 + D + M*1000 + O*100 + R*10 + E
	//   - M*10000 - O*1000 - N*100 - E*10 - Y == 0
	termVars := []*fdcore.IntVar{s, e, n, d, mo, o, r, e, mo, o, n, e, y}
	coeffs := []int{1000, 100, 10, 1, 1000, 100, 10, 1, -10000, -1000, -100, -10, -1}
	if _, err := linear.Equal(m, termVars, coeffs, 0); err != nil {
		return nil, nil, err
	}

	return m, vars, nil
}
