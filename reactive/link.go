package reactive

// link is one edge between a Dep and a Subscriber. It is a node in two
// independent doubly-linked lists at once: the Subscriber's dep list
// (prevDep/nextDep) and the Dep's subscriber list (prevSub/nextSub).
//
// version mirrors the Dep's version as of this Link's last use during a
// run; it is reset to -1 at the start of a run and resynced by track() for
// every Dep actually read, so that the post-run sweep (see cleanupRun) can
// tell which Links were not touched this time and remove them.
type link struct {
	dep *dep
	sub Subscriber

	prevDep *link
	nextDep *link

	prevSub *link
	nextSub *link

	version int64

	// prevActiveLink saves whatever link was the dep's activeLink for this
	// subscriber before this run started, so it can be restored once the
	// run finishes (nested effects reading the same dep resolve correctly).
	prevActiveLink *link
}
