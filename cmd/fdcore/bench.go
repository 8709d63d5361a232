package main

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/gitrdm/fdcore/internal/workerpool"
	"github.com/gitrdm/fdcore/pkg/fdcore"
)

func newBenchCmd() *cobra.Command {
	var problem string
	var runs int
	var workers int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "run the same problem repeatedly across a worker pool and report aggregate stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := workerpool.NewDynamicWorkerPool(workers, 1)
			defer pool.Shutdown()

			var totalNodes, totalBacktracks, solved int64
			var mu sync.Mutex
			var firstErr error

			ctx := context.Background()
			var wg sync.WaitGroup
			for i := 0; i < runs; i++ {
				i := i
				wg.Add(1)
				job := func() {
					defer wg.Done()
					taskID := "bench-" + strconv.Itoa(i)
					pool.DeadlockDetector().RunJob(taskID, problem, func() {
						m, _, err := buildProblem(problem)
						if err != nil {
							mu.Lock()
							if firstErr == nil {
								firstErr = err
							}
							mu.Unlock()
							return
						}
						result, err := m.Search(fdcore.SearchOptions{Config: fdcore.DefaultSearchConfig()})
						if err != nil {
							mu.Lock()
							if firstErr == nil {
								firstErr = err
							}
							mu.Unlock()
							return
						}
						atomic.AddInt64(&totalNodes, result.Stats.NodesExplored)
						atomic.AddInt64(&totalBacktracks, result.Stats.Backtracks)
						if len(result.Solutions) > 0 {
							atomic.AddInt64(&solved, 1)
						}
					})
				}
				if err := pool.Submit(ctx, job); err != nil {
					return err
				}
			}
			wg.Wait()
			pool.Shutdown()

			if firstErr != nil {
				return firstErr
			}
			fmt.Printf("runs=%d solved=%d total_nodes=%d total_backtracks=%d\n", runs, solved, totalNodes, totalBacktracks)
			fmt.Println(pool.Stats().String())
			return nil
		},
	}

	cmd.Flags().StringVar(&problem, "problem", "send-more-money", "problem to solve: send-more-money, n-queens, sudoku-mini")
	cmd.Flags().IntVar(&runs, "runs", 8, "number of independent search runs")
	cmd.Flags().IntVar(&workers, "workers", 0, "max worker goroutines (0 = NumCPU)")
	return cmd
}
