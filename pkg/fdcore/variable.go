package fdcore

import (
	"fmt"
	"sync/atomic"
)

// reserved overflow-safety range: all arithmetic on user-supplied values
// is clamped here so propagator offset arithmetic cannot overflow 32-bit
// intermediate computations (spec.md section 4.2).
const (
	ReservedMin = (-1 << 31) / 100
	ReservedMax = (1 << 31) / 100
)

func clampValue(v int) int {
	if v < ReservedMin {
		return ReservedMin
	}
	if v > ReservedMax {
		return ReservedMax
	}
	return v
}

// VarKind tags which domain representation an IntVar uses.
type VarKind uint8

const (
	KindBounded VarKind = iota
	KindEnumerated
	KindConstant
	KindView
)

func (k VarKind) String() string {
	switch k {
	case KindBounded:
		return "bounded"
	case KindEnumerated:
		return "enumerated"
	case KindConstant:
		return "constant"
	default:
		return "view"
	}
}

var varIDCounter int64

func nextVarID() int {
	return int(atomic.AddInt64(&varIDCounter, 1))
}

// domainRepr is the representation-specific half of an IntVar: bound and
// membership queries plus the raw mutation primitives. It never touches
// the delta stream, event emission, or the engine — IntVar's mutator
// wrappers (remove_value/update_lb/update_ub/instantiate) own that cross-
// cutting behavior uniformly across all three representations, so a hole-
// keeping bit-set and a pure interval behave identically from a
// propagator's point of view.
type domainRepr interface {
	lb() int
	ub() int
	size() int
	contains(v int) bool
	nextValue(v int) (int, bool)
	previousValue(v int) (int, bool)
	hasEnumeratedDomain() bool

	// removeImpl removes v if present. Returns (changed, emptied).
	removeImpl(v int) (bool, bool)
	// updateLBImpl raises the lower bound to v if v > lb. Returns (changed, emptied).
	updateLBImpl(v int) (bool, bool)
	// updateUBImpl lowers the upper bound to v if v < ub. Returns (changed, emptied).
	updateUBImpl(v int) (bool, bool)
	// instantiateImpl narrows the domain to {v}. Returns (changed, emptied).
	instantiateImpl(v int) (bool, bool)
}

// IntVar is a finite-domain integer variable: identity, name, kind tag,
// and one of the domainRepr implementations, plus the cross-cutting
// machinery (delta stream, propagator attachment, event emission, and
// explanation reasons) spec.md section 4.2 requires uniformly across
// representations.
type IntVar struct {
	id   int
	name string
	kind VarKind
	repr domainRepr

	model *Model

	delta *deltaStream

	watchers []watch
	watchSet *intSet // dedup of propagator ids already attached, go-set backed
}

type watch struct {
	prop Propagator
	pos  int
	mask EventMask
}

// ID returns the variable's stable identity.
func (v *IntVar) ID() int { return v.id }

// Name returns the variable's declared name.
func (v *IntVar) Name() string { return v.name }

// Kind reports which domain representation backs this variable.
func (v *IntVar) Kind() VarKind { return v.kind }

// Contains reports whether value is currently in the domain.
func (v *IntVar) Contains(value int) bool { return v.repr.contains(value) }

// GetLB returns the current lower bound.
func (v *IntVar) GetLB() int { return v.repr.lb() }

// GetUB returns the current upper bound.
func (v *IntVar) GetUB() int { return v.repr.ub() }

// GetSize returns the number of values currently in the domain.
func (v *IntVar) GetSize() int { return v.repr.size() }

// IsInstantiated reports whether the domain has collapsed to one value.
func (v *IntVar) IsInstantiated() bool { return v.repr.size() == 1 }

// HasEnumeratedDomain reports whether this variable keeps holes (as
// opposed to a pure [lb,ub] interval, which cannot represent interior
// gaps). Callers must check this before relying on hole-keeping, per
// spec.md section 4.2.
func (v *IntVar) HasEnumeratedDomain() bool { return v.repr.hasEnumeratedDomain() }

// NextValue returns the least value strictly greater than v present in
// the domain, or +Inf (ReservedMax+1) if none.
func (v *IntVar) NextValue(val int) int {
	if w, ok := v.repr.nextValue(val); ok {
		return w
	}
	return ReservedMax + 1
}

// PreviousValue returns the greatest value strictly less than v present
// in the domain, or -Inf (ReservedMin-1) if none.
func (v *IntVar) PreviousValue(val int) int {
	if w, ok := v.repr.previousValue(val); ok {
		return w
	}
	return ReservedMin - 1
}

// RemoveValue removes value from the domain. Returns (true, nil) if the
// domain changed, (false, nil) if it was already absent (idempotent
// no-op), or (false, *Contradiction) if removing it would empty the
// domain.
func (v *IntVar) RemoveValue(value int, cause Propagator, reason Reason) (bool, error) {
	value = clampValue(value)
	if v.kind == KindConstant {
		if v.repr.contains(value) {
			return false, wipeout(v, reason, "cannot remove the only value of a constant")
		}
		return false, nil
	}
	wasLB := value == v.repr.lb()
	wasUB := value == v.repr.ub()
	changed, emptied := v.repr.removeImpl(value)
	if emptied {
		return false, wipeout(v, reason, "remove(%d) emptied domain", value)
	}
	if !changed {
		return false, nil
	}
	mask := EventRemove
	if wasLB {
		mask |= EventIncLow
	}
	if wasUB {
		mask |= EventDecUpp
	}
	if v.repr.size() == 1 {
		mask |= EventInstantiate
	}
	v.delta.append(value, cause)
	v.fire(mask, cause, reason)
	return true, nil
}

// UpdateLB raises the lower bound to value. Returns (true, nil) if the
// bound tightened, (false, nil) if value <= current lb, or
// (false, *Contradiction) if value > ub.
func (v *IntVar) UpdateLB(value int, cause Propagator, reason Reason) (bool, error) {
	value = clampValue(value)
	if v.kind == KindConstant {
		if value > v.repr.lb() {
			return false, wipeout(v, reason, "updateLB(%d) above constant value", value)
		}
		return false, nil
	}
	oldLB := v.repr.lb()
	changed, emptied := v.repr.updateLBImpl(value)
	if emptied {
		return false, wipeout(v, reason, "updateLB(%d) emptied domain", value)
	}
	if !changed {
		return false, nil
	}
	mask := EventIncLow
	if v.repr.size() == 1 {
		mask |= EventInstantiate
	}
	v.delta.appendRange(oldLB, v.repr.lb()-1, cause)
	v.fire(mask, cause, reason)
	return true, nil
}

// UpdateUB lowers the upper bound to value. Mirror of UpdateLB.
func (v *IntVar) UpdateUB(value int, cause Propagator, reason Reason) (bool, error) {
	value = clampValue(value)
	if v.kind == KindConstant {
		if value < v.repr.ub() {
			return false, wipeout(v, reason, "updateUB(%d) below constant value", value)
		}
		return false, nil
	}
	oldUB := v.repr.ub()
	changed, emptied := v.repr.updateUBImpl(value)
	if emptied {
		return false, wipeout(v, reason, "updateUB(%d) emptied domain", value)
	}
	if !changed {
		return false, nil
	}
	mask := EventDecUpp
	if v.repr.size() == 1 {
		mask |= EventInstantiate
	}
	v.delta.appendRange(v.repr.ub()+1, oldUB, cause)
	v.fire(mask, cause, reason)
	return true, nil
}

// Instantiate narrows the domain to exactly {value}. Returns (true, nil)
// if the domain changed, (false, nil) if already instantiated to value,
// or (false, *Contradiction) if value is not in the domain.
func (v *IntVar) Instantiate(value int, cause Propagator, reason Reason) (bool, error) {
	value = clampValue(value)
	if v.kind == KindConstant {
		if value != v.repr.lb() {
			return false, wipeout(v, reason, "instantiate(%d) conflicts with constant value %d", value, v.repr.lb())
		}
		return false, nil
	}
	if v.IsInstantiated() && v.repr.contains(value) {
		return false, nil
	}
	changed, emptied := v.repr.instantiateImpl(value)
	if emptied {
		return false, wipeout(v, reason, "instantiate(%d) not in domain", value)
	}
	if !changed {
		return false, nil
	}
	v.delta.append(-1, cause) // instantiate may fold many removals; delta consumers should re-scan on INSTANTIATE
	v.fire(EventInstantiate, cause, reason)
	return true, nil
}

func (v *IntVar) fire(mask EventMask, cause Propagator, reason Reason) {
	ev := Event{Var: v, Mask: mask, Cause: cause, Reason: reason}
	if v.model != nil {
		v.model.engine.notify(ev, v.watchers)
		v.model.stats.recordEvent()
	}
}

func (v *IntVar) String() string {
	return fmt.Sprintf("%s[%d,%d]", v.name, v.repr.lb(), v.repr.ub())
}
