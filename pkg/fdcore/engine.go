package fdcore

// engine.go implements the propagation engine of spec.md section 4.4: a
// priority-ordered, FIFO-within-bucket schedule of awoken propagators,
// run to a fixed point, with contradictions short-circuiting the loop.
// The engine is single-threaded and synchronous — no goroutines, per
// spec.md section 5 ("no suspension points within a propagation step").

type schedState struct {
	scheduled bool
	mask      EventMask
	touched   []int // distinct watched-variable positions that fired since last run
}

// Engine is the propagation scheduler owned by one Model.
type Engine struct {
	model   *Model
	buckets [numPriorities][]Propagator
	state   map[int]*schedState
}

func newEngine(m *Model) *Engine {
	return &Engine{model: m, state: make(map[int]*schedState)}
}

func (e *Engine) stateFor(p Propagator) *schedState {
	st, ok := e.state[p.ID()]
	if !ok {
		st = &schedState{}
		e.state[p.ID()] = st
	}
	return st
}

func (e *Engine) schedule(p Propagator) {
	st := e.stateFor(p)
	if st.scheduled {
		return
	}
	st.scheduled = true
	e.buckets[p.Priority()] = append(e.buckets[p.Priority()], p)
}

// notify is called by IntVar.fire for every domain mutation. watchers is
// the variable's attachment list (already scoped to that one variable).
func (e *Engine) notify(ev Event, watchers []watch) {
	for _, w := range watchers {
		if pp, ok := w.prop.(PassivatablePropagator); ok && pp.IsPassive() {
			continue
		}
		if !w.mask.Intersects(ev.Mask) {
			continue
		}
		st := e.stateFor(w.prop)
		st.mask |= ev.Mask
		if !containsInt(st.touched, w.pos) {
			st.touched = append(st.touched, w.pos)
		}
		e.schedule(w.prop)
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// popNext returns the next propagator to run (highest non-empty bucket,
// FIFO within it) and true, or (nil, false) if every bucket is empty.
func (e *Engine) popNext() (Propagator, bool) {
	for prio := Priority(0); prio < numPriorities; prio++ {
		bucket := e.buckets[prio]
		if len(bucket) == 0 {
			continue
		}
		p := bucket[0]
		e.buckets[prio] = bucket[1:]
		return p, true
	}
	return nil, false
}

// RunToFixedPoint drains the schedule, dispatching each propagator with
// either its full or incremental variant depending on how many distinct
// positions fired since its last run, until quiescence or a
// *Contradiction. A non-contradiction error (programming/resource) is
// also returned immediately; the caller decides whether that is fatal.
func (e *Engine) RunToFixedPoint() error {
	for {
		p, ok := e.popNext()
		if !ok {
			return nil
		}
		if pp, isPass := p.(PassivatablePropagator); isPass && pp.IsPassive() {
			continue
		}
		st := e.stateFor(p)
		touched := st.touched
		st.scheduled = false
		st.mask = 0
		st.touched = nil

		full := len(touched) != 1
		if err := p.Propagate(full, touched); err != nil {
			return err
		}
		e.model.stats.recordPropagation()
	}
}

// Register attaches a newly posted propagator to its watched variables
// and performs its required initial full propagation (spec.md section
// 4.4, "dynamic constraint addition"). watches is index-aligned with
// p.Variables(). A contradiction raised by that initial propagation is
// not returned: p is left scheduled, so the next RunToFixedPoint runs it
// again and reports the contradiction to the search loop.
func (e *Engine) Register(p Propagator, watches []EventMask) error {
	for i, v := range p.Variables() {
		mask := EventInstantiate | EventRemove | EventIncLow | EventDecUpp
		if i < len(watches) {
			mask = watches[i]
		}
		v.attach(p, i, mask)
	}
	positions := make([]int, p.Arity())
	for i := range positions {
		positions[i] = i
	}
	if err := p.Propagate(true, positions); err != nil {
		if IsContradiction(err) {
			e.schedule(p)
			return nil
		}
		return err
	}
	e.model.stats.recordPropagation()
	return nil
}

// Unregister detaches p from every variable it watches and drops any
// pending schedule entry for it.
func (e *Engine) Unregister(p Propagator) {
	for _, v := range p.Variables() {
		v.detach(p)
	}
	delete(e.state, p.ID())
	for prio := range e.buckets {
		filtered := e.buckets[prio][:0]
		for _, q := range e.buckets[prio] {
			if q.ID() != p.ID() {
				filtered = append(filtered, q)
			}
		}
		e.buckets[prio] = filtered
	}
}

func (e *Engine) passivate(id int) {
	delete(e.state, id)
	for prio := range e.buckets {
		filtered := e.buckets[prio][:0]
		for _, q := range e.buckets[prio] {
			if q.ID() != id {
				filtered = append(filtered, q)
			}
		}
		e.buckets[prio] = filtered
	}
}

// resetSchedule discards the entire pending schedule. Called after a
// world pop: rolled-back mutations do not generate events, so anything
// still queued was scheduled by mutations that no longer happened.
// Reversible "active" flags on propagators (StoredBool) are restored by
// Environment.PopWorld itself; the engine only owns the queue.
func (e *Engine) resetSchedule() {
	for prio := range e.buckets {
		e.buckets[prio] = nil
	}
	e.state = make(map[int]*schedState)
}
