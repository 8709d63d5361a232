package fdcore

// ConstraintStatus names where a Constraint sits in its lifecycle
// (spec.md section 3: "posted, reified, unposted").
type ConstraintStatus uint8

const (
	StatusPosted ConstraintStatus = iota
	StatusReified
	StatusUnposted
)

// Constraint is a named group of propagators sharing one lifecycle: they
// are posted, reified, or unposted together.
type Constraint struct {
	Name        string
	propagators []Propagator
	status      ConstraintStatus
	temporary   bool
}

// Propagators returns the constraint's member propagators.
func (c *Constraint) Propagators() []Propagator { return c.propagators }

// Status reports the constraint's current lifecycle state.
func (c *Constraint) Status() ConstraintStatus { return c.status }

// PostPermanent posts propagators as one named, permanent constraint:
// it survives every backtrack until explicitly unposted. Each entry in
// watches is index-aligned with the matching propagator's Variables().
// A nil watches[i] lets the propagator watch every event kind on every
// variable it declares, the common case.
func (m *Model) PostPermanent(name string, props []Propagator, watches [][]EventMask) (*Constraint, error) {
	return m.post(name, props, watches, false)
}

// PostTemporary posts propagators as one named constraint that is
// automatically unposted the moment the current world is popped
// (spec.md section 4.1's save(op) lifecycle). Used for constraints
// scoped to one branch of the search, e.g. a dynamic objective cut.
func (m *Model) PostTemporary(name string, props []Propagator, watches [][]EventMask) (*Constraint, error) {
	return m.post(name, props, watches, true)
}

func (m *Model) post(name string, props []Propagator, watches [][]EventMask, temporary bool) (*Constraint, error) {
	if m.postedNames.Contains(name) {
		return nil, programmingErrorf("Post", "constraint %q already posted", name)
	}
	c := &Constraint{Name: name, propagators: props, status: StatusPosted, temporary: temporary}
	for i, p := range props {
		var w []EventMask
		if i < len(watches) {
			w = watches[i]
		}
		if err := m.engine.Register(p, w); err != nil {
			return nil, err
		}
	}
	m.postedNames.Insert(name)
	m.constraints = append(m.constraints, c)

	if temporary {
		m.env.Save(func() {
			m.unpostLocked(c)
		})
	}
	return c, nil
}

// Unpost removes a permanent constraint's propagators from the
// attachment tables and marks it unposted. Unposting an unknown or
// already-unposted constraint is a programming error.
func (m *Model) Unpost(c *Constraint) error {
	known := false
	for _, k := range m.constraints {
		if k == c {
			known = true
			break
		}
	}
	if !known {
		return programmingErrorf("Unpost", "constraint %q is not posted on this model", c.Name)
	}
	if c.status == StatusUnposted {
		return programmingErrorf("Unpost", "constraint %q already unposted", c.Name)
	}
	m.unpostLocked(c)
	return nil
}

func (m *Model) unpostLocked(c *Constraint) {
	for _, p := range c.propagators {
		m.engine.Unregister(p)
	}
	c.status = StatusUnposted
	m.postedNames.Remove(c.Name)
}
