package fdcore

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// explain_sat.go wires the explanation layer (spec.md section 6) to
// github.com/go-air/gini as the SAT sub-solver. gini is treated strictly
// as a black box behind SATBackend per spec.md section 1: nothing outside
// this file imports github.com/go-air/gini, and nothing in this file
// leaks a gini type across the interface boundary.
type SATBackend interface {
	// NewVar allocates one boolean SAT variable backing a Literal.
	NewVar() int
	// AddClause asserts the disjunction of lits (each a signed literal id,
	// positive for the boolean variable, negative for its complement).
	AddClause(lits []int)
	// Assume pushes a set of unit assumptions for the next Solve call.
	Assume(lits []int)
	// Solve runs the SAT search under the current assumptions. ok=false
	// means UNSAT under assumptions; conflict then names the assumptions
	// (as signed ids) that participated in the conflict.
	Solve() (ok bool, conflict []int)
}

// giniBackend adapts a *gini.Gini instance to SATBackend.
type giniBackend struct {
	g       *gini.Gini
	nextVar int
}

// NewGiniBackend constructs a fresh SATBackend over a new gini instance.
func NewGiniBackend() SATBackend {
	return &giniBackend{g: gini.New()}
}

func (b *giniBackend) NewVar() int {
	b.nextVar++
	return b.nextVar
}

func (b *giniBackend) AddClause(lits []int) {
	for _, l := range lits {
		b.g.Add(z.Dimacs2Lit(l))
	}
	b.g.Add(z.LitNull)
}

func (b *giniBackend) Assume(lits []int) {
	zs := make([]z.Lit, len(lits))
	for i, l := range lits {
		zs[i] = z.Dimacs2Lit(l)
	}
	b.g.Assume(zs...)
}

const satisfiable = 1

func (b *giniBackend) Solve() (bool, []int) {
	if b.g.Solve() == satisfiable {
		return true, nil
	}
	why := b.g.Why(nil)
	conflict := make([]int, len(why))
	for i, l := range why {
		conflict[i] = l.Dimacs()
	}
	return false, conflict
}

// explainContradiction hands a contradiction's reason to the SAT backend
// for first-UIP-style resolution, and returns the learned clause as a set
// of literals whose negation would have avoided the conflict. Without an
// installed SATBackend (m.sat == nil) this is a no-op returning nil: the
// core still records Reason values on every event, but nothing consumes
// them for clause learning.
func (m *Model) explainContradiction(c *Contradiction) []Literal {
	if m.sat == nil || c.Reason == nil {
		return nil
	}
	assumeIDs := make([]int, len(c.Reason))
	for i, lit := range c.Reason {
		assumeIDs[i] = m.satVarFor(lit)
	}
	m.sat.Assume(assumeIDs)
	ok, conflict := m.sat.Solve()
	if ok {
		return nil // the reason alone does not already contradict the clause base
	}
	learned := make([]Literal, 0, len(conflict))
	for _, id := range conflict {
		learned = append(learned, m.literalForSATVar(id))
	}
	return learned
}

// satVarFor and literalForSATVar maintain the bijection between this
// model's interned Literal ids and the SAT backend's own variable
// numbering, lazily allocating SAT variables on first use.
func (m *Model) satVarFor(lit Literal) int {
	if m.litToSAT == nil {
		m.litToSAT = make(map[Literal]int)
		m.satToLit = make(map[int]Literal)
	}
	if id, ok := m.litToSAT[lit]; ok {
		return id
	}
	id := m.sat.NewVar()
	m.litToSAT[lit] = id
	m.satToLit[id] = lit
	return id
}

func (m *Model) literalForSATVar(id int) Literal {
	if id < 0 {
		id = -id
	}
	return m.satToLit[id]
}

// logContradiction runs the explanation layer against err if it is a
// *Contradiction and a SATBackend is installed, logging the learned
// clause at debug level. It never changes search control flow: with no
// SATBackend installed (the common case) this is a no-op lookup, and a
// learned clause here is reported for diagnostics only since search.go
// implements chronological backtracking, not conflict-driven backjumping.
func (m *Model) logContradiction(err error) {
	if m.sat == nil {
		return
	}
	var c *Contradiction
	if !errors.As(err, &c) {
		return
	}
	learned := m.explainContradiction(c)
	if len(learned) == 0 {
		return
	}
	facts := make([]string, len(learned))
	for i, lit := range learned {
		facts[i] = m.lits.fact(lit).String()
	}
	m.logger().WithField("learned", facts).Debug("explanation layer learned a clause")
}
