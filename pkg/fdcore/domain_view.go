package fdcore

// domain_view.go implements the fourth kind tag spec.md's data model
// names for IntVar ("bounded / enumerated / constant / view"): an affine
// shift view x = y + delta over an underlying variable y, with no
// reversible storage of its own. Mutating the view delegates to the
// underlying variable through the inverse transform; querying it
// translates the underlying variable's state. This is the minimal view
// needed to exercise the kind tag — scaling views (x = a*y+b) are left
// for the out-of-scope model-building facade to compose from shifts and
// dedicated scale propagators.
type viewRepr struct {
	under *IntVar
	delta int
}

func newShiftView(under *IntVar, delta int) *viewRepr {
	return &viewRepr{under: under, delta: delta}
}

func (r *viewRepr) lb() int   { return r.under.GetLB() + r.delta }
func (r *viewRepr) ub() int   { return r.under.GetUB() + r.delta }
func (r *viewRepr) size() int { return r.under.GetSize() }

func (r *viewRepr) contains(v int) bool { return r.under.Contains(v - r.delta) }

func (r *viewRepr) hasEnumeratedDomain() bool { return r.under.HasEnumeratedDomain() }

func (r *viewRepr) nextValue(v int) (int, bool) {
	w := r.under.NextValue(v - r.delta)
	if w > ReservedMax {
		return 0, false
	}
	return w + r.delta, true
}

func (r *viewRepr) previousValue(v int) (int, bool) {
	w := r.under.PreviousValue(v - r.delta)
	if w < ReservedMin {
		return 0, false
	}
	return w + r.delta, true
}

// The four mutators below exist to satisfy domainRepr and change
// nothing. ShiftView.RemoveValue etc. forward directly to the underlying
// variable (see ShiftView methods) so that the emitted event carries the
// underlying variable's identity for engine dispatch; only a call to the
// embedded *IntVar's own mutators reaches these no-ops.
func (r *viewRepr) removeImpl(int) (bool, bool)      { return false, false }
func (r *viewRepr) updateLBImpl(int) (bool, bool)    { return false, false }
func (r *viewRepr) updateUBImpl(int) (bool, bool)    { return false, false }
func (r *viewRepr) instantiateImpl(int) (bool, bool) { return false, false }

// ShiftView is a read-mostly affine view x = y + delta. Model.NewShiftView
// constructs one; propagators that want to watch x should instead watch
// the view's Underlying variable, since views do not participate directly
// in the attachment tables.
type ShiftView struct {
	*IntVar
	delta int
}

// Underlying returns the variable this view is shifted from.
func (s *ShiftView) Underlying() *IntVar { return s.repr.(*viewRepr).under }

// Delta returns the view's additive offset.
func (s *ShiftView) Delta() int { return s.delta }

// RemoveValue on a view delegates to the underlying variable with the
// inverse shift applied.
func (s *ShiftView) RemoveValue(value int, cause Propagator, reason Reason) (bool, error) {
	return s.Underlying().RemoveValue(value-s.delta, cause, reason)
}

// UpdateLB on a view delegates to the underlying variable.
func (s *ShiftView) UpdateLB(value int, cause Propagator, reason Reason) (bool, error) {
	return s.Underlying().UpdateLB(value-s.delta, cause, reason)
}

// UpdateUB on a view delegates to the underlying variable.
func (s *ShiftView) UpdateUB(value int, cause Propagator, reason Reason) (bool, error) {
	return s.Underlying().UpdateUB(value-s.delta, cause, reason)
}

// Instantiate on a view delegates to the underlying variable.
func (s *ShiftView) Instantiate(value int, cause Propagator, reason Reason) (bool, error) {
	return s.Underlying().Instantiate(value-s.delta, cause, reason)
}
