package fdcore

import (
	"math/rand"
	"sort"
)

// DecisionKind names which branch shape a decision applies: equality
// (x=v left, x!=v right) or a bound split (x<=v left, x>=v+1 right).
type DecisionKind uint8

const (
	DecisionEq DecisionKind = iota
	DecisionLeq
)

// Decision is one entry on the search loop's decision stack (spec.md
// section 4.5): the variable, the applied value, its branch shape, and
// the branch index refutation increments.
type Decision struct {
	Var    *IntVar
	Value  int
	Kind   DecisionKind
	Branch int // 0 = left/applied, 1 = right/refuted; >1 = exhausted
}

// apply performs this decision's current branch as a domain mutation.
func (d *Decision) apply() (bool, error) {
	switch {
	case d.Kind == DecisionEq && d.Branch == 0:
		return d.Var.Instantiate(d.Value, nil, nil)
	case d.Kind == DecisionEq && d.Branch == 1:
		return d.Var.RemoveValue(d.Value, nil, nil)
	case d.Kind == DecisionLeq && d.Branch == 0:
		return d.Var.UpdateUB(d.Value, nil, nil)
	default: // DecisionLeq, Branch == 1
		return d.Var.UpdateLB(d.Value+1, nil, nil)
	}
}

// exhausted reports whether every branch of this decision has been tried.
func (d *Decision) exhausted() bool { return d.Branch > 1 }

// VariableSelector picks the next undecided variable to branch on, or
// reports false when every decision variable is instantiated.
type VariableSelector interface {
	SelectVariable(m *Model, candidates []*IntVar) (*IntVar, bool)
}

// ValueSelector picks the value (and decision shape) to try first for a
// chosen variable.
type ValueSelector interface {
	SelectValue(v *IntVar) (value int, kind DecisionKind)
}

// FirstFailSelector implements the dom/deg heuristic: smallest
// domain-size/degree ratio first, adapted from the teacher's
// FirstFailLabeling in labeling.go to the reversible IntVar API (degree
// here is "number of attached propagators", a cheap proxy for
// constraint tightness since the core does not track a full constraint
// graph beyond the attachment tables already needed for the engine).
type FirstFailSelector struct{}

func (FirstFailSelector) SelectVariable(m *Model, candidates []*IntVar) (*IntVar, bool) {
	var best *IntVar
	bestScore := -1.0
	for _, v := range candidates {
		if v.IsInstantiated() {
			continue
		}
		degree := len(v.watchers)
		score := float64(v.GetSize()) / float64(1+degree)
		if best == nil || score < bestScore {
			best, bestScore = v, score
		}
	}
	return best, best != nil
}

// DomainSizeSelector implements pure smallest-domain-first ordering,
// adapted from the teacher's DomainSizeLabeling in labeling.go.
type DomainSizeSelector struct{}

func (DomainSizeSelector) SelectVariable(m *Model, candidates []*IntVar) (*IntVar, bool) {
	var best *IntVar
	bestSize := -1
	for _, v := range candidates {
		if v.IsInstantiated() {
			continue
		}
		if best == nil || v.GetSize() < bestSize {
			best, bestSize = v, v.GetSize()
		}
	}
	return best, best != nil
}

// LexSelector picks the lowest-id undecided variable: used for the
// tautological "label all variables ascending" strategy spec.md section
// 8 property 8 checks completeness against.
type LexSelector struct{}

func (LexSelector) SelectVariable(m *Model, candidates []*IntVar) (*IntVar, bool) {
	sorted := append([]*IntVar(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].id < sorted[j].id })
	for _, v := range sorted {
		if !v.IsInstantiated() {
			return v, true
		}
	}
	return nil, false
}

// AscendingValueSelector always branches x=lb (then refutes x!=lb).
type AscendingValueSelector struct{}

func (AscendingValueSelector) SelectValue(v *IntVar) (int, DecisionKind) {
	return v.GetLB(), DecisionEq
}

// DescendingValueSelector always branches x=ub (then refutes x!=ub).
type DescendingValueSelector struct{}

func (DescendingValueSelector) SelectValue(v *IntVar) (int, DecisionKind) {
	return v.GetUB(), DecisionEq
}

// RandomValueSelector picks a uniformly random present value, seeded
// deterministically by NewRandomValueSelector's seed argument so a given
// seed reproduces the same decision sequence (spec.md section 5).
// selectorsFor does not build it, so SearchConfig.RandomSeed has no
// effect on it.
type RandomValueSelector struct {
	rng *rand.Rand
}

// NewRandomValueSelector seeds a reproducible random value selector.
func NewRandomValueSelector(seed int64) *RandomValueSelector {
	return &RandomValueSelector{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomValueSelector) SelectValue(v *IntVar) (int, DecisionKind) {
	n := v.GetSize()
	skip := s.rng.Intn(n)
	val := v.GetLB()
	for i := 0; i < skip; i++ {
		val = v.NextValue(val)
	}
	return val, DecisionEq
}

func selectorsFor(cfg *SearchConfig) (VariableSelector, ValueSelector) {
	var vs VariableSelector
	switch cfg.VariableHeuristic {
	case HeuristicDomSize:
		vs = DomainSizeSelector{}
	case HeuristicLex:
		vs = LexSelector{}
	default:
		vs = FirstFailSelector{}
	}
	var vals ValueSelector
	switch cfg.ValueHeuristic {
	case ValueDescending:
		vals = DescendingValueSelector{}
	default:
		vals = AscendingValueSelector{}
	}
	return vs, vals
}
