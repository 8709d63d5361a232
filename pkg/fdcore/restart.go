package fdcore

import "time"

// RestartPolicy decides, after each completed node, whether the search
// should unwind to the root and begin again with updated heuristics
// (spec.md section 4.5's "restart monitor"), mirroring the pluggable-
// heuristic shape the teacher uses for labeling (fd.go's
// VariableOrderingHeuristic) rather than hardcoding one restart scheme.
type RestartPolicy interface {
	// ShouldRestart is polled once per completed node.
	ShouldRestart(stats SolverStats) bool
	// Reset is called immediately after a restart fires, so policies that
	// count since-last-restart can rebase their counters.
	Reset()
}

// NodeCountRestart fires every time Nodes nodes have been explored since
// the last restart, with the threshold growing by Factor each time
// (geometric, not Luby — the teacher's pack has no Luby-sequence
// implementation to ground one on, and a geometric schedule is the
// simpler idiomatic default).
type NodeCountRestart struct {
	Nodes  int64
	Factor float64

	base    int64
	sinceAt int64
}

// NewNodeCountRestart returns a restart policy that fires every
// startNodes nodes, growing by factor each restart (factor=1 for a fixed
// period).
func NewNodeCountRestart(startNodes int64, factor float64) *NodeCountRestart {
	return &NodeCountRestart{Nodes: startNodes, Factor: factor, base: startNodes}
}

func (r *NodeCountRestart) ShouldRestart(stats SolverStats) bool {
	if stats.NodesExplored-r.sinceAt >= r.Nodes {
		r.sinceAt = stats.NodesExplored
		return true
	}
	return false
}

func (r *NodeCountRestart) Reset() {
	r.Nodes = int64(float64(r.Nodes) * r.Factor)
	if r.Nodes < r.base {
		r.Nodes = r.base
	}
}

// TimeRestart fires once Budget has elapsed since the search began, and
// then never again — a single deadline-style restart used to recover
// from an unlucky early branch without abandoning the whole search.
type TimeRestart struct {
	Budget time.Duration
	fired  bool
}

func (r *TimeRestart) ShouldRestart(stats SolverStats) bool {
	if r.fired {
		return false
	}
	return time.Since(stats.startedAt) >= r.Budget
}

func (r *TimeRestart) Reset() { r.fired = true }
