package fdcore

import "time"

// Completeness reports how a search run ended.
type Completeness uint8

const (
	// Complete means the search exhausted the tree (or objective-proved
	// optimality): the result is exact.
	Complete Completeness = iota
	// Incomplete means a stop condition or cancellation interrupted the
	// search but at least one solution had already been recorded —
	// feasibility is known, optimality/completeness is not.
	Incomplete
	// SearchUnknown means a stop condition or cancellation interrupted the
	// search before any solution was found — neither feasibility nor
	// infeasibility is established.
	SearchUnknown
)

// Solution is a snapshot of every variable's value at a leaf where the
// engine reached quiescence and every variable was instantiated.
type Solution struct {
	Values map[int]int // IntVar.ID() -> value
}

// ValueOf returns the recorded value for v in this solution.
func (s Solution) ValueOf(v *IntVar) int { return s.Values[v.ID()] }

// SearchResult is returned by Model.Search.
type SearchResult struct {
	Solutions     []Solution
	Completeness  Completeness
	Stats         SolverStats
	BestObjective *int
}

type searchState uint8

const (
	stInit searchState = iota
	stOpenNode
	stDecide
	stPropagate
	stUp
	stDone
)

// SearchOptions configures one Model.Search invocation beyond
// SearchConfig: the objective (optional), a sink for solutions as they
// are found, and an external cancellation flag.
type SearchOptions struct {
	Config    *SearchConfig
	Objective *IntVar
	Direction ObjectiveDirection
	OnSolution func(Solution) // called synchronously as each solution is found
	Cancel    <-chan struct{} // closed externally to request cancellation
}

// Search runs the depth-first, chronologically-backtracking state machine
// of spec.md section 4.5 to completion, a stop condition, or
// cancellation. It is not reentrant: call it once per Model (a Model's
// Environment world is left wherever the search state machine ends, by
// design, so a caller can inspect the last node's domains).
func (m *Model) Search(opts SearchOptions) (*SearchResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultSearchConfig()
	}
	varSel, valSel := selectorsFor(cfg)

	var obj *objectiveManager
	if opts.Objective != nil {
		obj = newObjectiveManager(m, opts.Objective, opts.Direction)
	}

	decisionVars := append([]*IntVar(nil), m.vars...)

	result := &SearchResult{}
	stack := make([]*Decision, 0, 64)
	state := stInit
	stopped := false

	checkStop := func() bool {
		if stopped {
			return true
		}
		select {
		case <-opts.Cancel:
			stopped = true
			return true
		default:
		}
		snap := m.stats.Snapshot()
		if cfg.MaxNodes > 0 && snap.NodesExplored >= cfg.MaxNodes {
			stopped = true
			return true
		}
		if cfg.MaxSolutions > 0 && snap.SolutionsFound >= cfg.MaxSolutions {
			stopped = true
			return true
		}
		if cfg.TimeLimit > 0 && time.Since(snap.startedAt) >= cfg.TimeLimit {
			stopped = true
			return true
		}
		return false
	}

	for state != stDone {
		switch state {
		case stInit:
			if err := m.engine.RunToFixedPoint(); err != nil {
				if IsContradiction(err) {
					result.Completeness = Complete
					state = stDone
					continue
				}
				return nil, err
			}
			m.env.PushWorld()
			state = stOpenNode

		case stOpenNode:
			m.stats.recordNode(m.env.CurrentWorld())
			if checkStop() {
				state = stDone
				continue
			}
			v, ok := varSel.SelectVariable(m, decisionVars)
			if !ok {
				sol := m.snapshotSolution()
				result.Solutions = append(result.Solutions, sol)
				m.stats.recordSolution()
				if opts.OnSolution != nil {
					opts.OnSolution(sol)
				}
				if obj != nil {
					if err := obj.onSolution(); err != nil && !IsContradiction(err) {
						return nil, err
					}
					if best, found := obj.Best(); found {
						result.BestObjective = &best
					}
				}
				state = stUp
				continue
			}
			val, kind := valSel.SelectValue(v)
			stack = append(stack, &Decision{Var: v, Value: val, Kind: kind})
			state = stDecide

		case stDecide:
			d := stack[len(stack)-1]
			m.env.PushWorld()
			_, err := d.apply()
			if err != nil {
				if IsContradiction(err) {
					m.logContradiction(err)
					state = stUp
					continue
				}
				return nil, err
			}
			state = stPropagate

		case stPropagate:
			if err := m.engine.RunToFixedPoint(); err != nil {
				if IsContradiction(err) {
					m.logContradiction(err)
					state = stUp
					continue
				}
				return nil, err
			}
			if cfg.Restart != nil && cfg.Restart.ShouldRestart(m.stats.Snapshot()) {
				for m.env.CurrentWorld() > 0 {
					if err := m.env.PopWorld(); err != nil {
						return nil, err
					}
				}
				stack = stack[:0]
				m.engine.resetSchedule()
				cfg.Restart.Reset()
				m.stats.recordRestart()
				m.env.PushWorld()
				state = stOpenNode
				continue
			}
			state = stOpenNode

		case stUp:
			// Undo the current top-of-stack decision's last branch attempt,
			// then climb frames whose every branch is now exhausted until
			// one has a branch left to try, or the stack empties (root).
			// Each stack frame owns exactly one currently-pushed world on
			// top of world 1 (pushed by stInit), so one PopWorld per frame
			// visited here keeps the invariant CurrentWorld() ==
			// len(stack)+1 at the top of each iteration.
			for {
				m.stats.recordBacktrack()
				if err := m.env.PopWorld(); err != nil {
					return nil, err
				}
				m.engine.resetSchedule()

				if len(stack) == 0 {
					result.Completeness = Complete
					state = stDone
					break
				}
				d := stack[len(stack)-1]
				d.Branch++
				if d.exhausted() {
					stack = stack[:len(stack)-1]
					continue
				}
				m.env.PushWorld()
				_, err := d.apply()
				if err != nil {
					if IsContradiction(err) {
						m.logContradiction(err)
						continue
					}
					return nil, err
				}
				state = stPropagate
				break
			}
		}
	}

	if stopped {
		if len(result.Solutions) > 0 {
			result.Completeness = Incomplete
		} else {
			result.Completeness = SearchUnknown
		}
	}
	m.stats.finish()
	result.Stats = m.stats.Snapshot()
	return result, nil
}

func (m *Model) snapshotSolution() Solution {
	vals := make(map[int]int, len(m.vars))
	for _, v := range m.vars {
		vals[v.id] = v.GetLB()
	}
	return Solution{Values: vals}
}
