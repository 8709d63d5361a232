package main

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/fdcore/internal/problems"
	"github.com/gitrdm/fdcore/pkg/fdcore"
)

func buildProblem(name string) (*fdcore.Model, []*fdcore.IntVar, error) {
	switch name {
	case "send-more-money":
		m, vars, err := problems.BuildSendMoreMoney()
		if err != nil {
			return nil, nil, err
		}
		ordered := make([]*fdcore.IntVar, len(problems.Letters))
		for i, l := range problems.Letters {
			ordered[i] = vars[l]
		}
		return m, ordered, nil
	case "n-queens":
		m, cols, err := problems.BuildNQueens(8)
		return m, cols, err
	case "sudoku-mini":
		m, cells, err := problems.BuildSudokuMini(nil)
		if err != nil {
			return nil, nil, err
		}
		flat := make([]*fdcore.IntVar, 0, 16)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				flat = append(flat, cells[r][c])
			}
		}
		return m, flat, nil
	default:
		return nil, nil, fmt.Errorf("unknown problem %q (want send-more-money, n-queens, sudoku-mini)", name)
	}
}

func newSolveCmd() *cobra.Command {
	var problem string
	var maxNodes int64
	var timeLimit time.Duration
	var explain bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "solve one of the bundled demonstration problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, vars, err := buildProblem(problem)
			if err != nil {
				return err
			}

			if explain {
				m.EnableExplanations(fdcore.NewGiniBackend())
			}

			cfg := fdcore.DefaultSearchConfig()
			cfg.MaxNodes = maxNodes
			cfg.TimeLimit = timeLimit

			log.WithField("problem", problem).Debug("starting search")
			result, err := m.Search(fdcore.SearchOptions{Config: cfg})
			if err != nil {
				return err
			}

			if len(result.Solutions) == 0 {
				fmt.Println("no solution found")
				return nil
			}
			sol := result.Solutions[0]
			for _, v := range vars {
				fmt.Printf("%s=%d ", v.Name(), sol.ValueOf(v))
			}
			fmt.Println()
			fmt.Printf("completeness=%d nodes=%d backtracks=%d restarts=%d time=%s\n",
				result.Completeness, result.Stats.NodesExplored, result.Stats.Backtracks,
				result.Stats.Restarts, result.Stats.SearchTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&problem, "problem", "send-more-money", "problem to solve: send-more-money, n-queens, sudoku-mini")
	cmd.Flags().Int64Var(&maxNodes, "max-nodes", 0, "abort after this many search nodes (0 = unbounded)")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "abort after this much wall time (0 = unbounded)")
	cmd.Flags().BoolVar(&explain, "explain", false, "enable the gini-backed explanation layer")
	return cmd
}
