package reactive

// track is called during a Subscriber's run whenever it reads a Dep. See
// §4.1: it does nothing if there is no current Subscriber, if tracking is
// globally paused, or if the current Subscriber is the Derived value that
// owns this very Dep (a self-read). Otherwise it reuses or allocates the
// Link between dep and the current Subscriber, always leaving that Link at
// the tail of the Subscriber's dep-list so "deps appear in the order
// they're first read" holds.
func (w *World) track(d *dep) {
	sub := w.activeSub
	if sub == nil || !w.trackingOn {
		return
	}
	if d.ownerDerived != nil && d.ownerDerived == sub {
		return
	}

	l := d.activeLink
	newLink := false
	if l != nil && l.sub == sub {
		l.version = d.version
		if l != sub.depsTail() {
			unspliceDepList(sub, l)
			appendDepList(sub, l)
		}
	} else {
		l = &link{dep: d, sub: sub, version: d.version}
		l.prevActiveLink = d.activeLink
		d.activeLink = l
		appendDepList(sub, l)
		appendSubList(d, l)
		d.subCount++
		newLink = true
	}

	if w.onTrack != nil {
		w.onTrack(TrackEvent{Subscriber: sub, Dep: d, NewLink: newLink})
	}
}

// trigger is called whenever a Dep's value changes. See §4.1: bump the
// Dep's version (and the world's global version), then notify every
// subscriber in subscription order. A write outside any Batch still
// delivers synchronously, as an implicit depth-1 batch of one (§4.5): if
// this call isn't nested inside a BatchIn, it drains the queue it just
// filled before returning.
func (w *World) trigger(d *dep) {
	d.bump(w)
	n := w.notify(d)
	if w.onTrigger != nil {
		w.onTrigger(TriggerEvent{Dep: d, SubsNotified: n})
	}
	if w.batchDepth == 0 {
		w.flush()
	}
}

// notify walks d's subscriber list in subscription order, delivering
// notify() to each Link's Subscriber. When a Subscriber reports back that
// it is itself a Dep (a Derived value), notify recurses into that Derived's
// own Dep so the propagation reaches its readers too.
func (w *World) notify(d *dep) int {
	count := 0
	for l := d.subsHead; l != nil; l = l.nextSub {
		count++
		if isDerivedDep := l.sub.notify(); isDerivedDep {
			if dv, ok := l.sub.(derivedDep); ok {
				w.notify(dv.outputDep())
			}
		}
	}
	return count
}

// derivedDep is implemented by Derived[T]; it exposes the Dep cell the
// Derived uses to notify its own readers.
type derivedDep interface {
	outputDep() *dep
}

// prepareRun is the first half of §4.2's "version = -1 sweep": before a
// Subscriber re-invokes its body, every existing Link in its dep-list is
// marked unused and the owning Dep's activeLink is pointed at it, so track()
// can find and revalidate it in O(1) if the body reads that Dep again.
func prepareRun(sub Subscriber) {
	for l := sub.depsHead(); l != nil; l = l.nextDep {
		l.version = -1
		d := l.dep
		l.prevActiveLink = d.activeLink
		d.activeLink = l
	}
}

// cleanupRun is the second half of §4.2: walk the dep-list tail to head,
// dropping any Link still at version -1 (not read this run) and restoring
// each Dep's activeLink to whatever it was before prepareRun touched it.
func cleanupRun(sub Subscriber) {
	l := sub.depsTail()
	for l != nil {
		prev := l.prevDep
		if l.version < 0 {
			removeSubList(l.dep, l)
			removeDepList(sub, l)
			l.dep.subCount--
			l.dep.activeLink = l.prevActiveLink
			if l.dep.subCount == 0 && l.dep.owner != nil {
				l.dep.owner.releaseDep(l.dep)
			}
		} else {
			l.dep.activeLink = l.prevActiveLink
		}
		l = prev
	}
}

// --- doubly-linked list splice helpers -------------------------------------

func appendDepList(sub Subscriber, l *link) {
	tail := sub.depsTail()
	l.prevDep = tail
	l.nextDep = nil
	if tail == nil {
		sub.setDepsHead(l)
	} else {
		tail.nextDep = l
	}
	sub.setDepsTail(l)
}

func unspliceDepList(sub Subscriber, l *link) {
	if l.prevDep != nil {
		l.prevDep.nextDep = l.nextDep
	} else {
		sub.setDepsHead(l.nextDep)
	}
	if l.nextDep != nil {
		l.nextDep.prevDep = l.prevDep
	} else {
		sub.setDepsTail(l.prevDep)
	}
	l.prevDep = nil
	l.nextDep = nil
}

func removeDepList(sub Subscriber, l *link) {
	if l.prevDep != nil {
		l.prevDep.nextDep = l.nextDep
	} else {
		sub.setDepsHead(l.nextDep)
	}
	if l.nextDep != nil {
		l.nextDep.prevDep = l.prevDep
	}
}

func appendSubList(d *dep, l *link) {
	tail := d.subsTail
	l.prevSub = tail
	l.nextSub = nil
	if tail == nil {
		d.subsHead = l
	} else {
		tail.nextSub = l
	}
	d.subsTail = l
}

func removeSubList(d *dep, l *link) {
	if l.prevSub != nil {
		l.prevSub.nextSub = l.nextSub
	} else {
		d.subsHead = l.nextSub
	}
	if l.nextSub != nil {
		l.nextSub.prevSub = l.prevSub
	} else {
		d.subsTail = l.prevSub
	}
}
