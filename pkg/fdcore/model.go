package fdcore

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// anonymousModelCounter is the one process-wide piece of mutable state
// spec.md section 5 allows: a pure counter used to name models created
// without an explicit name, with no other effect on any model instance.
var anonymousModelCounter int64

func nextAnonymousName() string {
	n := atomic.AddInt64(&anonymousModelCounter, 1)
	return "model-" + itoa(n)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Model owns one search problem: its variables, its posted constraints,
// the reversible environment, and the propagation engine. Models never
// share state with one another (spec.md section 5); running several
// concurrently is safe as long as no *IntVar or Propagator crosses a
// Model boundary. Validate, run before each search, inspects only the
// model's own variable list; propagators are not checked.
type Model struct {
	name string

	env    *Environment
	engine *Engine
	lits   *literalTable
	sat    SATBackend
	litToSAT map[Literal]int
	satToLit map[int]Literal

	vars         []*IntVar
	constraints  []*Constraint
	postedNames  *stringSet
	objective    *objectiveManager

	log   *logrus.Entry
	stats *SolverStats
}

// NewModel creates an empty model at world 0. If name is empty, an
// anonymous name is assigned from the process-wide counter.
func NewModel(name string) *Model {
	if name == "" {
		name = nextAnonymousName()
	}
	m := &Model{
		name:        name,
		env:         NewEnvironment(),
		lits:        newLiteralTable(),
		postedNames: newStringSet(),
		stats:       newSolverStats(),
	}
	m.engine = newEngine(m)
	return m
}

// Name returns the model's name.
func (m *Model) Name() string { return m.name }

// Env exposes the reversible environment for advanced use (e.g. building
// a custom propagator's own reversible state).
func (m *Model) Env() *Environment { return m.env }

// Stats returns the model's lock-free search statistics.
func (m *Model) Stats() SolverStats { return m.stats.Snapshot() }

// EnableExplanations installs sat as the SAT sub-solver backend used for
// lazy clause generation. Without a backend, Reason values are still
// recorded on events but never consumed.
func (m *Model) EnableExplanations(sat SATBackend) { m.sat = sat }

// NewBoundedVar creates an interval-domain variable over [lo, hi].
func (m *Model) NewBoundedVar(name string, lo, hi int) (*IntVar, error) {
	lo, hi = clampValue(lo), clampValue(hi)
	if lo > hi {
		return nil, programmingErrorf("NewBoundedVar", "%s: empty initial domain [%d,%d]", name, lo, hi)
	}
	v := &IntVar{id: nextVarID(), name: name, kind: KindBounded, model: m}
	v.repr = newBoundedRepr(m.env, lo, hi)
	v.delta = newDeltaStream(m.env)
	m.vars = append(m.vars, v)
	return v, nil
}

// NewEnumeratedVar creates a hole-keeping variable over the explicit,
// possibly sparse set of values. Values need not be contiguous or sorted.
func (m *Model) NewEnumeratedVar(name string, values []int) (*IntVar, error) {
	if len(values) == 0 {
		return nil, programmingErrorf("NewEnumeratedVar", "%s: empty initial domain", name)
	}
	lo, hi := values[0], values[0]
	for _, val := range values {
		if val < lo {
			lo = val
		}
		if val > hi {
			hi = val
		}
	}
	lo, hi = clampValue(lo), clampValue(hi)
	v := &IntVar{id: nextVarID(), name: name, kind: KindEnumerated, model: m}
	repr := newEnumRepr(m.env, lo, hi-lo+1)
	v.repr = repr
	v.delta = newDeltaStream(m.env)

	full := make(map[int]bool, len(values))
	for _, val := range values {
		full[clampValue(val)] = true
	}
	for val := lo; val <= hi; val++ {
		if !full[val] {
			if _, emptied := repr.removeImpl(val); emptied {
				return nil, programmingErrorf("NewEnumeratedVar", "%s: removing excluded value %d emptied domain", name, val)
			}
		}
	}
	m.vars = append(m.vars, v)
	return v, nil
}

// NewConstVar creates a fixed-value variable with no trail interaction.
func (m *Model) NewConstVar(name string, value int) *IntVar {
	value = clampValue(value)
	v := &IntVar{id: nextVarID(), name: name, kind: KindConstant, model: m}
	v.repr = newConstRepr(value)
	v.delta = newDeltaStream(m.env)
	m.vars = append(m.vars, v)
	return v
}

// NewShiftView creates a view x = under + delta with no reversible
// storage of its own (spec.md section 3, kind tag "view").
func (m *Model) NewShiftView(name string, under *IntVar, delta int) *ShiftView {
	v := &IntVar{id: nextVarID(), name: name, kind: KindView, model: m}
	v.repr = newShiftView(under, delta)
	v.delta = under.delta
	return &ShiftView{IntVar: v, delta: delta}
}

// Variables returns every variable created on this model, in creation
// order.
func (m *Model) Variables() []*IntVar { return m.vars }

// Validate checks cross-cutting invariants before a search starts:
// variables all belong to this model, no two share an id, and none has
// lb > ub. Constraint names are not checked here (post already rejects a
// duplicate name). Returns an aggregated error (hashicorp/go-multierror) so
// a caller sees every problem at once rather than just the first.
func (m *Model) Validate() error {
	errs := newValidationErrors()
	seen := make(map[int]bool, len(m.vars))
	for _, v := range m.vars {
		if v.model != m {
			errs = multierrorAppend(errs, programmingErrorf("Validate", "variable %q belongs to a different model", v.name))
			continue
		}
		if seen[v.id] {
			errs = multierrorAppend(errs, programmingErrorf("Validate", "duplicate variable id %d", v.id))
		}
		seen[v.id] = true
		if v.GetLB() > v.GetUB() {
			errs = multierrorAppend(errs, programmingErrorf("Validate", "variable %q has lb>ub", v.name))
		}
	}
	return errs.ErrorOrNil()
}
