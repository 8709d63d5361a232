package fdcore

import (
	"sync/atomic"
	"time"
)

// SolverStats holds lock-free counters about a single search run, shaped
// after the teacher's SolverStats/SolverMonitor in fd_monitor.go: every
// field is updated with atomics so independent goroutines (cmd/fdcore
// bench running several unrelated Models) can read a live snapshot
// without a mutex, and every method is nil-safe so callers never have to
// guard a *Model built without monitoring in mind.
type SolverStats struct {
	NodesExplored    int64
	Backtracks       int64
	Restarts         int64
	SolutionsFound   int64
	PropagationCount int64
	EventCount       int64
	MaxDepth         int64
	PeakQueueSize    int64
	startedAt        time.Time
	SearchTime       time.Duration
}

func newSolverStats() *SolverStats {
	return &SolverStats{startedAt: time.Now()}
}

func (s *SolverStats) recordNode(depth int) {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.NodesExplored, 1)
	for {
		cur := atomic.LoadInt64(&s.MaxDepth)
		if int64(depth) <= cur || atomic.CompareAndSwapInt64(&s.MaxDepth, cur, int64(depth)) {
			break
		}
	}
}

func (s *SolverStats) recordBacktrack() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.Backtracks, 1)
}

func (s *SolverStats) recordRestart() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.Restarts, 1)
}

func (s *SolverStats) recordSolution() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.SolutionsFound, 1)
}

func (s *SolverStats) recordPropagation() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.PropagationCount, 1)
}

func (s *SolverStats) recordEvent() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.EventCount, 1)
}

func (s *SolverStats) finish() {
	if s == nil {
		return
	}
	s.SearchTime = time.Since(s.startedAt)
}

// Snapshot returns a consistent-enough copy of the counters for
// reporting. Individual int64 loads are atomic; the struct as a whole is
// not a single atomic unit, matching the teacher's GetStats in
// fd_monitor.go.
func (s *SolverStats) Snapshot() SolverStats {
	if s == nil {
		return SolverStats{}
	}
	return SolverStats{
		NodesExplored:    atomic.LoadInt64(&s.NodesExplored),
		Backtracks:       atomic.LoadInt64(&s.Backtracks),
		Restarts:         atomic.LoadInt64(&s.Restarts),
		SolutionsFound:   atomic.LoadInt64(&s.SolutionsFound),
		PropagationCount: atomic.LoadInt64(&s.PropagationCount),
		EventCount:       atomic.LoadInt64(&s.EventCount),
		MaxDepth:         atomic.LoadInt64(&s.MaxDepth),
		PeakQueueSize:    atomic.LoadInt64(&s.PeakQueueSize),
		SearchTime:       s.SearchTime,
		startedAt:        s.startedAt,
	}
}
