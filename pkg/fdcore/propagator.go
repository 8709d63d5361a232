package fdcore

// Priority totally orders propagators for scheduling (spec.md section
// 4.4): higher priority always runs before lower, even if scheduled
// later; ties within a bucket break FIFO.
type Priority uint8

const (
	PriorityUnary Priority = iota
	PriorityBinary
	PriorityTernary
	PriorityLinear
	PriorityQuadratic
	PriorityCubic
	PriorityVerySlow
	numPriorities
)

func (p Priority) String() string {
	switch p {
	case PriorityUnary:
		return "UNARY"
	case PriorityBinary:
		return "BINARY"
	case PriorityTernary:
		return "TERNARY"
	case PriorityLinear:
		return "LINEAR"
	case PriorityQuadratic:
		return "QUADRATIC"
	case PriorityCubic:
		return "CUBIC"
	default:
		return "VERY_SLOW"
	}
}

// EntailmentStatus is the tri-valued result of Propagator.IsEntailed,
// used by reification wrappers.
type EntailmentStatus uint8

const (
	Undefined EntailmentStatus = iota
	True
	False
)

// Propagator is the abstract filtering rule contract: spec.md section
// 4.3. A propagator declares which variables it watches and which event
// kinds on each should wake it (via the attachment tables in attach.go);
// the engine calls Propagate when woken.
type Propagator interface {
	// ID is a stable identifier, unique within the owning model, used by
	// the engine's scheduling bookkeeping and by attachment tables.
	ID() int

	// Arity returns the number of variables this propagator watches.
	Arity() int

	// Variables returns the watched variables, index-aligned with the
	// condition masks supplied to Model.PostPermanent/PostTemporary.
	Variables() []*IntVar

	// Priority returns this propagator's scheduling priority.
	Priority() Priority

	// Propagate runs one filtering step. full=true means "filter from
	// scratch, ignore accumulated incremental state"; full=false means
	// "at least one event fired since the last call, touchedPositions
	// names which watched-variable positions changed." Implementations
	// may call any domain mutator on their watched variables; a
	// *Contradiction returned here is caught by the engine, never by the
	// caller of Propagate itself.
	Propagate(full bool, touchedPositions []int) error

	// IsEntailed reports whether this propagator can ever filter again.
	IsEntailed() EntailmentStatus
}

// PassivatablePropagator is implemented by propagators that can prove
// themselves entailed mid-search and call SetPassive to stop being
// scheduled. Optional: the engine never calls IsEntailed itself, so a
// propagator that does not implement this interface is scheduled every
// time one of its watched events fires.
type PassivatablePropagator interface {
	Propagator
	SetPassive()
	IsPassive() bool
}

// basePropagator gives concrete propagators the reversible "active" flag
// and identity bookkeeping spec.md section 3 calls for (ID, Arity,
// Variables, Priority, SetPassive, IsPassive), so a propagator in this
// package that embeds it only needs to implement Propagate and
// IsEntailed.
type basePropagator struct {
	id     int
	model  *Model
	vars   []*IntVar
	prio   Priority
	active *StoredBool
}

func newBasePropagator(m *Model, vars []*IntVar, prio Priority) basePropagator {
	return basePropagator{
		id:     nextPropagatorID(),
		model:  m,
		vars:   vars,
		prio:   prio,
		active: m.env.MakeBool(true),
	}
}

func (b *basePropagator) ID() int             { return b.id }
func (b *basePropagator) Arity() int          { return len(b.vars) }
func (b *basePropagator) Variables() []*IntVar { return b.vars }
func (b *basePropagator) Priority() Priority  { return b.prio }

// SetPassive adds this propagator to the reversible passive set. The
// flag is a StoredBool, so backtracking above the passivation point
// automatically reactivates it (spec.md section 4.3).
func (b *basePropagator) SetPassive() {
	b.active.Set(false)
	if b.model != nil {
		b.model.engine.passivate(b.id)
	}
}

// IsPassive reports the reversible active flag's complement.
func (b *basePropagator) IsPassive() bool { return !b.active.Get() }
