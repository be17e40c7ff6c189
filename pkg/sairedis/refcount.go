package sairedis

import "github.com/opencompute/go-sairedis/pkg/sai"

// RefCounter tracks, for each VID, how many other objects currently
// reference it through a create or set attribute. It resolves the spec
// section 9 open question left as a TODO in the source ("reimplementation
// must actually maintain a per-target refcount incremented on create/set
// and decremented on remove") — see SPEC_FULL.md SUPPLEMENTED FEATURES 3
// and 4.
//
// Not safe for concurrent use on its own; callers hold LibraryState's API
// lock for every mutation, matching the rest of the local-index state.
type RefCounter struct {
	counts map[sai.ObjectID]int
}

func NewRefCounter() *RefCounter {
	return &RefCounter{counts: make(map[sai.ObjectID]int)}
}

// Hold increments target's refcount. A null target is ignored: an unset
// optional reference attribute (e.g. trap-group's POLICER) holds nothing.
func (r *RefCounter) Hold(target sai.ObjectID) {
	if target.IsNull() {
		return
	}
	r.counts[target]++
}

// Release decrements target's refcount. Ignored for a null target or one
// already at zero (releasing a reference that was never held is a caller
// bug, not something this counter needs to reject).
func (r *RefCounter) Release(target sai.ObjectID) {
	if target.IsNull() {
		return
	}
	if r.counts[target] > 0 {
		r.counts[target]--
		if r.counts[target] == 0 {
			delete(r.counts, target)
		}
	}
}

// InUse reports whether target has at least one outstanding reference.
// remove(kind, id) consults this before releasing id itself.
func (r *RefCounter) InUse(target sai.ObjectID) bool {
	return r.counts[target] > 0
}

// Count reports target's current refcount, for introspection.
func (r *RefCounter) Count(target sai.ObjectID) int {
	return r.counts[target]
}
