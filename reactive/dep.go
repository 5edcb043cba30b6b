package reactive

// dep is a single observable slot: the identity half of the track/trigger
// protocol. It is embedded by Signal and by the Dep half of a Derived
// value; it is also the building block the observe package uses for its
// per-(target,key) cells.
//
// version increments on every change and is what a Link compares itself
// against to decide whether a Subscriber needs to re-run. subsHead/subsTail
// form the Dep's subscriber list, threaded through Link.prevSub/nextSub.
type dep struct {
	version  int64
	subsHead *link
	subsTail *link
	subCount int

	// activeLink is the fast-path lookup used by track(): while a given
	// Subscriber is running, activeLink points at that Subscriber's Link
	// to this Dep (if any), letting track() avoid scanning the Dep's
	// subscriber list. It is saved/restored around nested runs so that
	// re-entrant tracking resolves to the correct frame.
	activeLink *link

	// ownerDerived, when non-nil, is the Derived value this Dep is the
	// output cell of. track() uses it to detect and ignore a derived
	// value reading itself during its own recompute (a self-read must not
	// create a self-edge).
	ownerDerived Subscriber

	// owner, when non-nil, is notified when this Dep's subscriber count
	// drops to zero, so a key→Dep map can reclaim the entry (§3: "Dep
	// destroyed when its subscriber count reaches zero and a map entry
	// owns it").
	owner depOwner
}

// depOwner is implemented by whatever structure keeps a Dep alive through a
// map entry — the observe package's per-target key maps, primarily.
type depOwner interface {
	releaseDep(d *dep)
}

func newDep() *dep { return &dep{} }

// bump increments the Dep's version and the world's global version, the
// two counters the refresh-bypass checks in Derived.Get compare against.
func (d *dep) bump(w *World) {
	d.version++
	w.globalVersion++
}
