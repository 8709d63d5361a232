package fdcore

// domain_bounded.go implements the bounded-interval domain representation:
// [lb, ub] with no hole-keeping. remove_value on an interior value is a
// documented no-op (spec.md section 4.2).

type boundedRepr struct {
	l *StoredInt
	u *StoredInt
}

func newBoundedRepr(env *Environment, lo, hi int) *boundedRepr {
	return &boundedRepr{l: env.MakeInt(lo), u: env.MakeInt(hi)}
}

func (r *boundedRepr) lb() int   { return r.l.Get() }
func (r *boundedRepr) ub() int   { return r.u.Get() }
func (r *boundedRepr) size() int { return r.u.Get() - r.l.Get() + 1 }

func (r *boundedRepr) contains(v int) bool { return v >= r.l.Get() && v <= r.u.Get() }

func (r *boundedRepr) hasEnumeratedDomain() bool { return false }

func (r *boundedRepr) nextValue(v int) (int, bool) {
	if v < r.l.Get() {
		return r.l.Get(), true
	}
	if v+1 <= r.u.Get() {
		return v + 1, true
	}
	return 0, false
}

func (r *boundedRepr) previousValue(v int) (int, bool) {
	if v > r.u.Get() {
		return r.u.Get(), true
	}
	if v-1 >= r.l.Get() {
		return v - 1, true
	}
	return 0, false
}

// removeImpl only has an effect at the bounds; an interior removal cannot
// be represented and is a documented no-op returning (false, false).
func (r *boundedRepr) removeImpl(v int) (changed bool, emptied bool) {
	switch {
	case v == r.l.Get():
		if r.l.Get() == r.u.Get() {
			return false, true
		}
		r.l.Set(v + 1)
		return true, false
	case v == r.u.Get():
		if r.l.Get() == r.u.Get() {
			return false, true
		}
		r.u.Set(v - 1)
		return true, false
	default:
		return false, false
	}
}

func (r *boundedRepr) updateLBImpl(v int) (changed bool, emptied bool) {
	if v <= r.l.Get() {
		return false, false
	}
	if v > r.u.Get() {
		return false, true
	}
	r.l.Set(v)
	return true, false
}

func (r *boundedRepr) updateUBImpl(v int) (changed bool, emptied bool) {
	if v >= r.u.Get() {
		return false, false
	}
	if v < r.l.Get() {
		return false, true
	}
	r.u.Set(v)
	return true, false
}

func (r *boundedRepr) instantiateImpl(v int) (changed bool, emptied bool) {
	if v < r.l.Get() || v > r.u.Get() {
		return false, true
	}
	if r.l.Get() == v && r.u.Get() == v {
		return false, false
	}
	r.l.Set(v)
	r.u.Set(v)
	return true, false
}
