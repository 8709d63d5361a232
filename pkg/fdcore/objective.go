package fdcore

// ObjectiveDirection selects minimization or maximization.
type ObjectiveDirection uint8

const (
	Minimize ObjectiveDirection = iota
	Maximize
)

// objectiveManager installs the dynamic cut spec.md section 4.5
// describes: each time a solution is found, post a temporary bound
// constraint (obj < best for minimize, obj > best for maximize) so the
// next branch above the solution cannot repeat an equal-or-worse value.
// The cut is a plain bound propagator on the objective variable, posted
// with PostPermanent so it stays in force for the rest of the search,
// across backtracks and restarts. It filters only when the objective
// variable's domain changes after the cut is posted; a branch in which
// the objective was already fixed above the solution's node is not
// pruned by it.
type objectiveManager struct {
	model     *Model
	objective *IntVar
	direction ObjectiveDirection
	best      *int
	cutSeq    int
}

func newObjectiveManager(m *Model, objective *IntVar, dir ObjectiveDirection) *objectiveManager {
	return &objectiveManager{model: m, objective: objective, direction: dir}
}

// onSolution records the new best value and posts the tightened cut.
func (o *objectiveManager) onSolution() error {
	val := o.objective.GetLB() // objective must be instantiated at a solution
	o.best = &val
	o.cutSeq++
	cut := newBoundCutPropagator(o.model, o.objective, o.direction, val)
	name := "objective-cut-" + itoa(int64(o.cutSeq))
	_, err := o.model.PostPermanent(name, []Propagator{cut}, nil)
	return err
}

// Best returns the best objective value found so far, or (0, false) if
// no solution has been recorded yet.
func (o *objectiveManager) Best() (int, bool) {
	if o.best == nil {
		return 0, false
	}
	return *o.best, true
}

// boundCutPropagator enforces obj < best (minimize) or obj > best
// (maximize). It is unary: a single variable, cheapest priority.
type boundCutPropagator struct {
	basePropagator
	dir   ObjectiveDirection
	bound int
}

func newBoundCutPropagator(m *Model, objective *IntVar, dir ObjectiveDirection, best int) *boundCutPropagator {
	p := &boundCutPropagator{dir: dir, bound: best}
	p.basePropagator = newBasePropagator(m, []*IntVar{objective}, PriorityUnary)
	return p
}

func (p *boundCutPropagator) Propagate(full bool, touched []int) error {
	obj := p.vars[0]
	var changed bool
	var err error
	if p.dir == Minimize {
		changed, err = obj.UpdateUB(p.bound-1, p, nil)
	} else {
		changed, err = obj.UpdateLB(p.bound+1, p, nil)
	}
	_ = changed
	return err
}

func (p *boundCutPropagator) IsEntailed() EntailmentStatus {
	obj := p.vars[0]
	if p.dir == Minimize && obj.GetUB() < p.bound {
		return True
	}
	if p.dir == Maximize && obj.GetLB() > p.bound {
		return True
	}
	return Undefined
}
