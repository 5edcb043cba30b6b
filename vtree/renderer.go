package vtree

import "github.com/vango-dev/reactive-core/host"

// Renderer is the top-level entry point: it remembers, per container, the
// node tree currently mounted there, so a later Render call against the
// same container diffs against it instead of always mounting fresh.
type Renderer struct {
	Host      host.Capabilities
	Namespace string
	Warnf     func(format string, args ...any)

	roots map[host.Node]*Node
}

// NewRenderer wraps a host, ready to drive root-level renders into one or
// more containers.
func NewRenderer(h host.Capabilities) *Renderer {
	return &Renderer{Host: h, roots: make(map[host.Node]*Node)}
}

// Render patches container's previous tree (if any) against vnode, or
// unmounts it if vnode is nil. A render() call wraps its own patch work in
// the flush guard (§4.12) so component effects triggered synchronously
// during this call don't each trigger their own pre/post-flush drain —
// everything queued during the whole call drains exactly once, after it.
func (r *Renderer) Render(vnode *Node, container host.Node) {
	ctx := Context{Host: r.Host, Namespace: r.Namespace, Warnf: r.Warnf}

	alreadyFlushing := flushing
	flushing = true

	prev := r.roots[container]
	Patch(prev, vnode, container, nil, ctx)
	if vnode == nil {
		delete(r.roots, container)
	} else {
		r.roots[container] = vnode
	}

	if !alreadyFlushing {
		flushing = false
		flushJobs()
	}
}

// job is one pre- or post-flush callback, identified by id for dedup:
// queuing the same id twice before it runs collapses to a single call
// (§4.12: "inserting a job already present is a no-op").
type job struct {
	id any
	fn func()
}

var (
	preFlushQueue  []job
	postFlushQueue []job
	queuedIDs      = map[any]bool{}
	flushing       bool
)

func queuePreFlush(id any, fn func())  { queueJob(&preFlushQueue, id, fn) }
func queuePostFlush(id any, fn func()) { queueJob(&postFlushQueue, id, fn) }

func queueJob(q *[]job, id any, fn func()) {
	if queuedIDs[id] {
		return
	}
	queuedIDs[id] = true
	*q = append(*q, job{id: id, fn: fn})
	if !flushing {
		flushJobs()
	}
}

// flushJobs drains pre-flush jobs to empty, then post-flush jobs to empty;
// jobs enqueued by a running job join the same phase's queue and are
// drained before the next phase starts.
func flushJobs() {
	flushing = true
	for len(preFlushQueue) > 0 {
		j := preFlushQueue[0]
		preFlushQueue = preFlushQueue[1:]
		delete(queuedIDs, j.id)
		j.fn()
	}
	for len(postFlushQueue) > 0 {
		j := postFlushQueue[0]
		postFlushQueue = postFlushQueue[1:]
		delete(queuedIDs, j.id)
		j.fn()
	}
	flushing = false
}

// hookJobID identifies one instance's queued lifecycle callback for
// dedup: the same instance entering, say, "updated" twice in one flush
// (re-rendered by two different triggers before the queue drains) still
// only runs its updated hooks once.
type hookJobID struct {
	inst  *Instance
	phase string
}
