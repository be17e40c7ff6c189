package syncd

import (
	"reflect"
	"sync"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
)

// viewObject is one entry of a view: the kind (needed to dispatch the
// eventual SDK call) and the VID-space attribute list the library last
// asked for, merged create-then-set.
type viewObject struct {
	kind  sai.ObjectType
	attrs []sai.Attribute
}

// ViewManager implements the two-phase view protocol's daemon half (spec
// section 4.4): while a candidate view is open, mutations are recorded
// against it instead of reaching the vendor SDK; APPLY_VIEW diffs the
// candidate against the last-committed view and reports the minimal set
// of creates/removes/sets needed to reconcile, then promotes the
// candidate to committed.
//
// Keys are object-refs (hex VID) or entry keys, never the full
// "<kind>:<ref>" bus key — the dispatcher strips the kind prefix before
// calling in, since the kind is tracked per-entry alongside the attrs.
type ViewManager struct {
	mu        sync.Mutex
	active    bool
	current   map[string]viewObject
	candidate map[string]viewObject
}

func NewViewManager() *ViewManager {
	return &ViewManager{current: make(map[string]viewObject)}
}

// BeginInit opens a candidate view seeded from the current committed
// view, so objects untouched during the candidate session survive
// unchanged into the next Apply's diff.
func (v *ViewManager) BeginInit() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.active = true
	v.candidate = make(map[string]viewObject, len(v.current))
	for k, o := range v.current {
		v.candidate[k] = viewObject{kind: o.kind, attrs: append([]sai.Attribute(nil), o.attrs...)}
	}
}

// Count reports how many objects the committed view currently tracks.
func (v *ViewManager) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.current)
}

// Active reports whether a candidate view is open.
func (v *ViewManager) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

func (v *ViewManager) live() map[string]viewObject {
	if v.active {
		return v.candidate
	}
	return v.current
}

// Commit records a create/set/remove against whichever view is currently
// live (the candidate, if one is open, otherwise the committed view
// directly — so steady-state operation outside a candidate session keeps
// the committed view accurate for the next INIT_VIEW).
func (v *ViewManager) Commit(op bus.Op, key string, kind sai.ObjectType, attrs []sai.Attribute) {
	v.mu.Lock()
	defer v.mu.Unlock()

	m := v.live()
	switch op {
	case bus.OpCreate:
		m[key] = viewObject{kind: kind, attrs: attrs}
	case bus.OpSet:
		o, ok := m[key]
		if !ok {
			o = viewObject{kind: kind}
		}
		for _, a := range attrs {
			o.attrs = mergeAttr(o.attrs, a)
		}
		m[key] = o
	case bus.OpRemove:
		delete(m, key)
	}
}

// Lookup returns the recorded attribute list for key in whichever view is
// currently live, used to answer gets against an open candidate view
// without touching the vendor SDK.
func (v *ViewManager) Lookup(key string) ([]sai.Attribute, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	o, ok := v.live()[key]
	return o.attrs, ok
}

// ViewEntry is one key's desired state in a diff result.
type ViewEntry struct {
	Key   string
	Kind  sai.ObjectType
	Attrs []sai.Attribute
}

// ViewDiff is the minimal set of SDK operations needed to move the vendor
// ASIC from the last-committed view to the candidate view.
type ViewDiff struct {
	Created []ViewEntry
	Changed []ViewEntry
	Removed []ViewEntry
}

// Apply closes the candidate view, diffs it against the committed view,
// promotes the candidate to committed, and returns the diff for the
// caller to turn into real SDK calls.
func (v *ViewManager) Apply() ViewDiff {
	v.mu.Lock()
	defer v.mu.Unlock()

	var diff ViewDiff
	for k, o := range v.candidate {
		cur, ok := v.current[k]
		switch {
		case !ok:
			diff.Created = append(diff.Created, ViewEntry{Key: k, Kind: o.kind, Attrs: o.attrs})
		case !reflect.DeepEqual(cur.attrs, o.attrs):
			diff.Changed = append(diff.Changed, ViewEntry{Key: k, Kind: o.kind, Attrs: o.attrs})
		}
	}
	for k, o := range v.current {
		if _, ok := v.candidate[k]; !ok {
			diff.Removed = append(diff.Removed, ViewEntry{Key: k, Kind: o.kind, Attrs: o.attrs})
		}
	}

	v.current = v.candidate
	v.candidate = nil
	v.active = false
	return diff
}

func mergeAttr(attrs []sai.Attribute, a sai.Attribute) []sai.Attribute {
	for i := range attrs {
		if attrs[i].ID == a.ID {
			attrs[i] = a
			return attrs
		}
	}
	return append(attrs, a)
}
