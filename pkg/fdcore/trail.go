package fdcore

// trail.go implements the reversible memory described in spec section 4.1:
// numbered worlds, copy-on-write reversible cells, and per-type trail
// stacks rewound on pop_world. Shape mirrors the teacher's aggregate-of-
// typed-slices FDStore (fd.go/fd_domains.go), generalized to the
// stamp-based discipline spec.md requires instead of the teacher's
// immutable-domain one.

// worldID names a depth in the search tree. The root is world 0.
type worldID int32

// intEntry is one trail record for a StoredInt: the cell's identity, its
// value before this world's first write, and the world that first wrote it.
type intEntry struct {
	cell  *StoredInt
	value int
	stamp worldID
}

type boolEntry struct {
	cell  *StoredBool
	value bool
	stamp worldID
}

type refEntry struct {
	cell  *StoredRef
	value interface{}
	stamp worldID
}

type bitSetEntry struct {
	cell  *StoredBitSet
	words []uint64
	stamp worldID
}

// worldMark records, for each trail, the stack height at the moment a
// world was pushed, so pop_world knows how far to rewind.
type worldMark struct {
	ints    int
	bools   int
	refs    int
	bitsets int
	undos   int
}

// undoOp is a user callback registered with Environment.Save, invoked when
// the world it was recorded in is popped. Used to build temporary
// constraint lifecycles (auto-unposting on backtrack).
type undoOp struct {
	world worldID
	fn    func()
}

// Environment is the reversible memory manager of a single Model. It hands
// out reversible primitives and manages world push/pop/commit. Nothing in
// Environment is safe for concurrent use; per spec section 5 a Model,
// and therefore its Environment, is owned by exactly one goroutine at a
// time.
type Environment struct {
	world worldID
	marks []worldMark

	ints    []intEntry
	bools   []boolEntry
	refs    []refEntry
	bitsets []bitSetEntry
	undos   []undoOp

	stats EnvStats
}

// EnvStats holds lightweight, non-atomic counters for trail/world usage.
// Environment updates them in place; no method returns them. No atomics
// are used here (contrast SolverStats in stats.go, which is read
// concurrently by independent model workers and must stay lock-free).
type EnvStats struct {
	PushCount    int64
	PopCount     int64
	CommitCount  int64
	PeakTrailLen int
}

// NewEnvironment returns an Environment positioned at world 0.
func NewEnvironment() *Environment {
	return &Environment{marks: []worldMark{{}}}
}

// CurrentWorld returns the current world index.
func (e *Environment) CurrentWorld() int { return int(e.world) }

func (e *Environment) peakTrail() {
	n := len(e.ints) + len(e.bools) + len(e.refs) + len(e.bitsets)
	if n > e.stats.PeakTrailLen {
		e.stats.PeakTrailLen = n
	}
}

// PushWorld increments the current world index and records the trail
// heights at the moment of the push.
func (e *Environment) PushWorld() int {
	e.world++
	e.marks = append(e.marks, worldMark{
		ints:    len(e.ints),
		bools:   len(e.bools),
		refs:    len(e.refs),
		bitsets: len(e.bitsets),
		undos:   len(e.undos),
	})
	e.stats.PushCount++
	return int(e.world)
}

// PopWorld rewinds every reversible stack to the mark recorded by the
// matching PushWorld, runs undo callbacks registered in the popped world
// in reverse order, and decrements the world index. Popping below world 0
// is a programming error.
func (e *Environment) PopWorld() error {
	if e.world == 0 {
		return programmingErrorf("PopWorld", "cannot pop below the root world")
	}
	mark := e.marks[len(e.marks)-1]

	for i := len(e.undos) - 1; i >= mark.undos; i-- {
		e.undos[i].fn()
	}
	e.undos = e.undos[:mark.undos]

	for i := len(e.ints) - 1; i >= mark.ints; i-- {
		ent := e.ints[i]
		ent.cell.value = ent.value
		ent.cell.stamp = ent.stamp
	}
	e.ints = e.ints[:mark.ints]

	for i := len(e.bools) - 1; i >= mark.bools; i-- {
		ent := e.bools[i]
		ent.cell.value = ent.value
		ent.cell.stamp = ent.stamp
	}
	e.bools = e.bools[:mark.bools]

	for i := len(e.refs) - 1; i >= mark.refs; i-- {
		ent := e.refs[i]
		ent.cell.value = ent.value
		ent.cell.stamp = ent.stamp
	}
	e.refs = e.refs[:mark.refs]

	for i := len(e.bitsets) - 1; i >= mark.bitsets; i-- {
		ent := e.bitsets[i]
		ent.cell.words = ent.words
		ent.cell.stamp = ent.stamp
	}
	e.bitsets = e.bitsets[:mark.bitsets]

	e.marks = e.marks[:len(e.marks)-1]
	e.world--
	e.stats.PopCount++
	return nil
}

// CommitWorld merges the current world into its parent. Every cell
// touched in the committed world has its live stamp re-pointed at
// parent — not just its historical trail entry — so that a later
// PushWorld reusing the same world number (routine: the engine's world
// counter decrements on pop/commit and re-increments on the next push)
// cannot make StoredInt.Set mistake a stale child-world stamp for a
// same-world write and skip pushing a trail entry it needs. Entries
// whose stamp equals the parent world are discarded outright (the
// parent already holds the correct previous value via an older entry,
// or the cell was never touched before parent, per spec.md section
// 4.1); surviving entries are re-stamped onto the parent. commitWorld
// is the resolution of spec.md's open question: it is disallowed, and
// returns a ProgrammingError, whenever monitorsTouched reports that a
// delta-monitor cursor or a propagator's passive-set membership
// changed in the world being committed, because replay cannot safely
// recompute a monitor's read offset once that world boundary is
// erased. See DESIGN.md "Open Question decisions".
func (e *Environment) CommitWorld(monitorsTouched bool) error {
	if e.world == 0 {
		return programmingErrorf("CommitWorld", "cannot commit the root world")
	}
	if monitorsTouched {
		return programmingErrorf("CommitWorld", "world has active delta-monitor or passive-set writes; commit is unsafe, pop instead")
	}
	mark := e.marks[len(e.marks)-1]
	parent := e.world - 1

	ints := e.ints[:mark.ints]
	for i := mark.ints; i < len(e.ints); i++ {
		ent := e.ints[i]
		ent.cell.stamp = parent
		if ent.stamp == parent {
			continue
		}
		ent.stamp = parent
		ints = append(ints, ent)
	}
	e.ints = ints

	bools := e.bools[:mark.bools]
	for i := mark.bools; i < len(e.bools); i++ {
		ent := e.bools[i]
		ent.cell.stamp = parent
		if ent.stamp == parent {
			continue
		}
		ent.stamp = parent
		bools = append(bools, ent)
	}
	e.bools = bools

	refs := e.refs[:mark.refs]
	for i := mark.refs; i < len(e.refs); i++ {
		ent := e.refs[i]
		ent.cell.stamp = parent
		if ent.stamp == parent {
			continue
		}
		ent.stamp = parent
		refs = append(refs, ent)
	}
	e.refs = refs

	bitsets := e.bitsets[:mark.bitsets]
	for i := mark.bitsets; i < len(e.bitsets); i++ {
		ent := e.bitsets[i]
		ent.cell.stamp = parent
		if ent.stamp == parent {
			continue
		}
		ent.stamp = parent
		bitsets = append(bitsets, ent)
	}
	e.bitsets = bitsets

	for i := mark.undos; i < len(e.undos); i++ {
		e.undos[i].world = parent
	}

	e.marks = e.marks[:len(e.marks)-1]
	e.world = parent
	e.stats.CommitCount++
	return nil
}

// Save registers fn to run exactly once, when the current world is popped.
// Used to build temporary constraint lifecycles: post a propagator, Save a
// callback that unposts it, and backtracking past this point cleans it up
// automatically.
func (e *Environment) Save(fn func()) {
	e.undos = append(e.undos, undoOp{world: e.world, fn: fn})
}

// StoredInt is a reversible integer cell.
type StoredInt struct {
	env   *Environment
	value int
	stamp worldID
}

// MakeInt returns a new reversible integer cell holding initial, stamped
// at the current world.
func (e *Environment) MakeInt(initial int) *StoredInt {
	return &StoredInt{env: e, value: initial, stamp: e.world}
}

// Get returns the cell's current value.
func (c *StoredInt) Get() int { return c.value }

// Set overwrites the cell's value. If the cell was already written in the
// current world, the write happens in place; otherwise the previous pair
// is pushed to the trail first.
func (c *StoredInt) Set(v int) {
	if v == c.value {
		return
	}
	if c.stamp != c.env.world {
		c.env.ints = append(c.env.ints, intEntry{cell: c, value: c.value, stamp: c.stamp})
		c.env.peakTrail()
		c.stamp = c.env.world
	}
	c.value = v
}

// StoredBool is a reversible boolean cell.
type StoredBool struct {
	env   *Environment
	value bool
	stamp worldID
}

// MakeBool returns a new reversible boolean cell.
func (e *Environment) MakeBool(initial bool) *StoredBool {
	return &StoredBool{env: e, value: initial, stamp: e.world}
}

// Get returns the cell's current value.
func (c *StoredBool) Get() bool { return c.value }

// Set overwrites the cell's value with the same copy-on-write discipline
// as StoredInt.Set.
func (c *StoredBool) Set(v bool) {
	if v == c.value {
		return
	}
	if c.stamp != c.env.world {
		c.env.bools = append(c.env.bools, boolEntry{cell: c, value: c.value, stamp: c.stamp})
		c.env.peakTrail()
		c.stamp = c.env.world
	}
	c.value = v
}

// StoredRef is a reversible reference cell holding an arbitrary value.
type StoredRef struct {
	env   *Environment
	value interface{}
	stamp worldID
}

// MakeRef returns a new reversible reference cell.
func (e *Environment) MakeRef(initial interface{}) *StoredRef {
	return &StoredRef{env: e, value: initial, stamp: e.world}
}

// Get returns the cell's current value.
func (c *StoredRef) Get() interface{} { return c.value }

// Set overwrites the cell's value with the same copy-on-write discipline
// as StoredInt.Set. A set is skipped as a no-op only when v and the
// previous value are equal and each is nil or an int, int32, int64,
// bool, string or float64; any other dynamic type (pointers, slices,
// maps, funcs, structs) is always treated as a change.
func (c *StoredRef) Set(v interface{}) {
	if isComparable(v) && isComparable(c.value) && v == c.value {
		return
	}
	if c.stamp != c.env.world {
		c.env.refs = append(c.env.refs, refEntry{cell: c, value: c.value, stamp: c.stamp})
		c.env.peakTrail()
		c.stamp = c.env.world
	}
	c.value = v
}

func isComparable(v interface{}) bool {
	switch v.(type) {
	case int, int32, int64, bool, string, float64:
		return true
	default:
		return v == nil
	}
}

// StoredBitSet is a reversible fixed-capacity bit-set cell, backing the
// enumerated IntVar domain representation (domain_enum.go) for small and
// medium capacities where a plain word array beats a compressed bitmap.
type StoredBitSet struct {
	env   *Environment
	words []uint64
	stamp worldID
}

// MakeBitSet returns a new reversible bit-set cell with room for capacity
// bits, all initially set (full domain).
func (e *Environment) MakeBitSet(capacity int) *StoredBitSet {
	nw := (capacity + 63) / 64
	words := make([]uint64, nw)
	for i := range words {
		words[i] = ^uint64(0)
	}
	if rem := capacity % 64; rem != 0 && nw > 0 {
		words[nw-1] = (uint64(1) << uint(rem)) - 1
	}
	return &StoredBitSet{env: e, words: words, stamp: e.world}
}

// Words returns the live word slice. Callers must not retain it across a
// Set call: Set may replace the backing array.
func (c *StoredBitSet) Words() []uint64 { return c.words }

// Set installs a new word slice as the cell's value, cloning the previous
// one onto the trail first if needed. StoredBitSet takes ownership of the
// slice passed in; the caller must not modify newWords afterward.
func (c *StoredBitSet) Set(newWords []uint64) {
	if c.stamp != c.env.world {
		prev := make([]uint64, len(c.words))
		copy(prev, c.words)
		c.env.bitsets = append(c.env.bitsets, bitSetEntry{cell: c, words: prev, stamp: c.stamp})
		c.env.peakTrail()
		c.stamp = c.env.world
	}
	c.words = newWords
}
