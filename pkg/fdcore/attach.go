package fdcore

import (
	"sync/atomic"

	"github.com/hashicorp/go-set/v3"
)

var propagatorIDCounter int64

func nextPropagatorID() int {
	return int(atomic.AddInt64(&propagatorIDCounter, 1))
}

// intSet is a thin alias over hashicorp/go-set/v3's generic Set[int],
// used for the small, non-reversible bookkeeping set spec.md section 9
// calls for: dedup of watch-list entries.
type intSet = set.Set[int]

func newIntSet() *intSet { return set.New[int](0) }

// stringSet is the same alias instantiated over string, used for the
// set of posted constraint names (spec.md section 9's duplicate-post
// detection) so a name is never routed through a hash that could
// collide two distinct constraints onto the same bookkeeping entry.
type stringSet = set.Set[string]

func newStringSet() *stringSet { return set.New[string](0) }

// attach records that propagator p at watched-variable position pos
// should be woken when v's domain changes in a way matching mask. Mirrors
// spec.md section 6's attach(propagator, position, condition_mask).
func (v *IntVar) attach(p Propagator, pos int, mask EventMask) {
	if v.watchSet == nil {
		v.watchSet = newIntSet()
	}
	if v.watchSet.Contains(p.ID()) {
		return
	}
	v.watchSet.Insert(p.ID())
	v.watchers = append(v.watchers, watch{prop: p, pos: pos, mask: mask})
}

// detach removes propagator p's attachment to v, clearing its back-
// reference. Used when a temporary constraint is unposted.
func (v *IntVar) detach(p Propagator) {
	if v.watchSet == nil {
		return
	}
	v.watchSet.Remove(p.ID())
	filtered := v.watchers[:0]
	for _, w := range v.watchers {
		if w.prop.ID() != p.ID() {
			filtered = append(filtered, w)
		}
	}
	v.watchers = filtered
}

// streamPropagators calls fn once for each propagator currently attached
// to v, in attachment order.
func (v *IntVar) streamPropagators(fn func(p Propagator, pos int, mask EventMask)) {
	for _, w := range v.watchers {
		fn(w.prop, w.pos, w.mask)
	}
}
