package fdcore

import "github.com/RoaringBitmap/roaring/v2"

// domain_enum.go implements the enumerated (hole-keeping) domain
// representation. Two concrete backings share the domainRepr contract:
// smallEnumRepr, a fixed inline []uint64 word array (teacher's
// BitSetDomain layout in domain.go, made reversible via StoredBitSet
// instead of copy-on-write-per-call), for domains small enough that a
// dense word array is cheaper than a compressed bitmap; and
// roaringEnumRepr, backed by github.com/RoaringBitmap/roaring/v2, for
// wide sparse domains where roaring's container compression pays off.
// The threshold is decided once at variable creation and fixed for the
// variable's lifetime — only the domain's contents change during search.
const roaringThreshold = 4096 // capacity above which roaring replaces the inline word array

func newEnumRepr(env *Environment, offset, capacity int) domainRepr {
	if capacity > roaringThreshold {
		return newRoaringEnumRepr(env, offset, capacity)
	}
	return newSmallEnumRepr(env, offset, capacity)
}

// ---- small (inline word array) backing ----

type smallEnumRepr struct {
	offset int
	bits   *StoredBitSet
	l      *StoredInt
	u      *StoredInt
	sz     *StoredInt
}

func newSmallEnumRepr(env *Environment, offset, capacity int) *smallEnumRepr {
	return &smallEnumRepr{
		offset: offset,
		bits:   env.MakeBitSet(capacity),
		l:      env.MakeInt(offset),
		u:      env.MakeInt(offset + capacity - 1),
		sz:     env.MakeInt(capacity),
	}
}

func (r *smallEnumRepr) lb() int                    { return r.l.Get() }
func (r *smallEnumRepr) ub() int                     { return r.u.Get() }
func (r *smallEnumRepr) size() int                   { return r.sz.Get() }
func (r *smallEnumRepr) hasEnumeratedDomain() bool   { return true }

func (r *smallEnumRepr) bitIndex(v int) (word, bit int, ok bool) {
	idx := v - r.offset
	if idx < 0 || idx/64 >= len(r.bits.Words()) {
		return 0, 0, false
	}
	return idx / 64, idx % 64, true
}

func (r *smallEnumRepr) contains(v int) bool {
	if v < r.l.Get() || v > r.u.Get() {
		return false
	}
	w, b, ok := r.bitIndex(v)
	if !ok {
		return false
	}
	return r.bits.Words()[w]&(uint64(1)<<uint(b)) != 0
}

func (r *smallEnumRepr) nextValue(v int) (int, bool) {
	for cand := v + 1; cand <= r.u.Get(); cand++ {
		if r.contains(cand) {
			return cand, true
		}
	}
	return 0, false
}

func (r *smallEnumRepr) previousValue(v int) (int, bool) {
	for cand := v - 1; cand >= r.l.Get(); cand-- {
		if r.contains(cand) {
			return cand, true
		}
	}
	return 0, false
}

func (r *smallEnumRepr) clearBit(v int) bool {
	w, b, ok := r.bitIndex(v)
	if !ok {
		return false
	}
	words := r.bits.Words()
	mask := uint64(1) << uint(b)
	if words[w]&mask == 0 {
		return false
	}
	clone := make([]uint64, len(words))
	copy(clone, words)
	clone[w] &^= mask
	r.bits.Set(clone)
	return true
}

func (r *smallEnumRepr) removeImpl(v int) (bool, bool) {
	if !r.contains(v) {
		return false, false
	}
	if r.sz.Get() == 1 {
		return false, true
	}
	r.clearBit(v)
	r.sz.Set(r.sz.Get() - 1)
	r.resyncBounds(v)
	return true, false
}

// resyncBounds recomputes lb/ub after a removal that might have hit a
// bound. removedHint is the value just removed, used as the scan start.
func (r *smallEnumRepr) resyncBounds(removedHint int) {
	if removedHint == r.l.Get() {
		for cand := r.l.Get() + 1; cand <= r.u.Get(); cand++ {
			if r.contains(cand) {
				r.l.Set(cand)
				break
			}
		}
	}
	if removedHint == r.u.Get() {
		for cand := r.u.Get() - 1; cand >= r.l.Get(); cand-- {
			if r.contains(cand) {
				r.u.Set(cand)
				break
			}
		}
	}
}

func (r *smallEnumRepr) updateLBImpl(v int) (bool, bool) {
	if v <= r.l.Get() {
		return false, false
	}
	if v > r.u.Get() {
		return false, true
	}
	changed := false
	for cand := r.l.Get(); cand < v; cand++ {
		if r.contains(cand) {
			r.clearBit(cand)
			r.sz.Set(r.sz.Get() - 1)
			changed = true
		}
	}
	if r.sz.Get() == 0 {
		return changed, true
	}
	nv, ok := func() (int, bool) {
		if r.contains(v) {
			return v, true
		}
		return r.nextValue(v - 1)
	}()
	if !ok {
		return changed, true
	}
	r.l.Set(nv)
	return true, false
}

func (r *smallEnumRepr) updateUBImpl(v int) (bool, bool) {
	if v >= r.u.Get() {
		return false, false
	}
	if v < r.l.Get() {
		return false, true
	}
	changed := false
	for cand := r.u.Get(); cand > v; cand-- {
		if r.contains(cand) {
			r.clearBit(cand)
			r.sz.Set(r.sz.Get() - 1)
			changed = true
		}
	}
	if r.sz.Get() == 0 {
		return changed, true
	}
	nv, ok := func() (int, bool) {
		if r.contains(v) {
			return v, true
		}
		return r.previousValue(v + 1)
	}()
	if !ok {
		return changed, true
	}
	r.u.Set(nv)
	return true, false
}

func (r *smallEnumRepr) instantiateImpl(v int) (bool, bool) {
	if !r.contains(v) {
		return false, true
	}
	if r.sz.Get() == 1 {
		return false, false
	}
	w, b, _ := r.bitIndex(v)
	clone := make([]uint64, len(r.bits.Words()))
	clone[w] = uint64(1) << uint(b)
	r.bits.Set(clone)
	r.sz.Set(1)
	r.l.Set(v)
	r.u.Set(v)
	return true, false
}

// ---- roaring-backed wide/sparse domain ----

type roaringEnumRepr struct {
	ref *StoredRef // holds *roaring.Bitmap
	l   *StoredInt
	u   *StoredInt
	sz  *StoredInt
}

func newRoaringEnumRepr(env *Environment, offset, capacity int) *roaringEnumRepr {
	bm := roaring.New()
	bm.AddRange(uint64(offset), uint64(offset+capacity))
	return &roaringEnumRepr{
		ref: env.MakeRef(bm),
		l:   env.MakeInt(offset),
		u:   env.MakeInt(offset + capacity - 1),
		sz:  env.MakeInt(capacity),
	}
}

func (r *roaringEnumRepr) bitmap() *roaring.Bitmap { return r.ref.Get().(*roaring.Bitmap) }

func (r *roaringEnumRepr) lb() int                  { return r.l.Get() }
func (r *roaringEnumRepr) ub() int                  { return r.u.Get() }
func (r *roaringEnumRepr) size() int                { return r.sz.Get() }
func (r *roaringEnumRepr) hasEnumeratedDomain() bool { return true }

func (r *roaringEnumRepr) contains(v int) bool {
	if v < 0 {
		return false
	}
	return r.bitmap().Contains(uint32(v))
}

func (r *roaringEnumRepr) nextValue(v int) (int, bool) {
	bm := r.bitmap()
	it := bm.Iterator()
	it.AdvanceIfNeeded(uint32(v + 1))
	if it.HasNext() {
		return int(it.Next()), true
	}
	return 0, false
}

func (r *roaringEnumRepr) previousValue(v int) (int, bool) {
	if v <= 0 {
		return 0, false
	}
	bm := r.bitmap()
	it := bm.ReverseIterator()
	for it.HasNext() {
		c := it.Next()
		if int(c) < v {
			return int(c), true
		}
	}
	return 0, false
}

func (r *roaringEnumRepr) mutate(fn func(bm *roaring.Bitmap)) {
	clone := r.bitmap().Clone()
	fn(clone)
	r.ref.Set(clone)
}

func (r *roaringEnumRepr) removeImpl(v int) (bool, bool) {
	if !r.contains(v) {
		return false, false
	}
	if r.sz.Get() == 1 {
		return false, true
	}
	r.mutate(func(bm *roaring.Bitmap) { bm.Remove(uint32(v)) })
	r.sz.Set(r.sz.Get() - 1)
	if v == r.l.Get() {
		if nv, ok := r.nextValue(v); ok {
			r.l.Set(nv)
		}
	}
	if v == r.u.Get() {
		if pv, ok := r.previousValue(v + 1); ok {
			r.u.Set(pv)
		}
	}
	return true, false
}

func (r *roaringEnumRepr) updateLBImpl(v int) (bool, bool) {
	if v <= r.l.Get() {
		return false, false
	}
	if v > r.u.Get() {
		return false, true
	}
	removed := uint64(0)
	r.mutate(func(bm *roaring.Bitmap) {
		before := bm.GetCardinality()
		bm.RemoveRange(uint64(r.l.Get()), uint64(v))
		removed = before - bm.GetCardinality()
	})
	r.sz.Set(r.sz.Get() - int(removed))
	if r.sz.Get() == 0 {
		return removed > 0, true
	}
	if r.contains(v) {
		r.l.Set(v)
	} else if nv, ok := r.nextValue(v); ok {
		r.l.Set(nv)
	} else {
		return removed > 0, true
	}
	return true, false
}

func (r *roaringEnumRepr) updateUBImpl(v int) (bool, bool) {
	if v >= r.u.Get() {
		return false, false
	}
	if v < r.l.Get() {
		return false, true
	}
	removed := uint64(0)
	r.mutate(func(bm *roaring.Bitmap) {
		before := bm.GetCardinality()
		bm.RemoveRange(uint64(v+1), uint64(r.u.Get()+1))
		removed = before - bm.GetCardinality()
	})
	r.sz.Set(r.sz.Get() - int(removed))
	if r.sz.Get() == 0 {
		return removed > 0, true
	}
	if r.contains(v) {
		r.u.Set(v)
	} else if pv, ok := r.previousValue(v + 1); ok {
		r.u.Set(pv)
	} else {
		return removed > 0, true
	}
	return true, false
}

func (r *roaringEnumRepr) instantiateImpl(v int) (bool, bool) {
	if !r.contains(v) {
		return false, true
	}
	if r.sz.Get() == 1 {
		return false, false
	}
	r.mutate(func(bm *roaring.Bitmap) {
		bm.Clear()
		bm.Add(uint32(v))
	})
	r.sz.Set(1)
	r.l.Set(v)
	r.u.Set(v)
	return true, false
}
