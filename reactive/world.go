package reactive

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// World is one partition of process-wide reactive state: the active
// subscriber, the active scope, the batch depth and queues, and the global
// version counter. §5 requires that a multi-threaded host partition this
// state "per reactive world (e.g., thread-local or per-renderer-instance)";
// Go has no thread-local storage, so a World is keyed by goroutine id, the
// same technique the source project uses for its own per-goroutine render
// context.
type World struct {
	activeSub   Subscriber
	activeScope *Scope
	trackingOn  bool

	batchDepth   int
	effectQueue  []*Effect
	derivedQueue []Subscriber

	globalVersion uint64

	pausedDeferred mapset.Set[*Effect]

	logger Logger
	onTrack func(TrackEvent)
	onTrigger func(TriggerEvent)
}

func newWorld() *World {
	return &World{
		trackingOn:     true,
		pausedDeferred: mapset.NewThreadUnsafeSet[*Effect](),
		logger:         noopLogger{},
	}
}

var (
	worldsMu sync.Mutex
	worlds   = map[uint64]*World{}
)

// CurrentWorld returns the reactive world for the calling goroutine,
// creating it on first use. Every Effect, Derived, and Scope created on a
// goroutine belongs to that goroutine's World unless passed explicitly.
func CurrentWorld() *World {
	gid := goroutineID()
	worldsMu.Lock()
	defer worldsMu.Unlock()
	w, ok := worlds[gid]
	if !ok {
		w = newWorld()
		worlds[gid] = w
	}
	return w
}

// CloseWorld discards the calling goroutine's reactive world. Go gives no
// hook that runs when a goroutine exits on its own, so a long-running
// render/effect loop must call this itself (typically via defer at the top
// of the loop) to release the world's state when it's done.
func CloseWorld() {
	gid := goroutineID()
	worldsMu.Lock()
	defer worldsMu.Unlock()
	delete(worlds, gid)
}

func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, err := strconv.ParseUint(string(buf), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// SetLogger installs the structured logger used for this world's dev-mode
// warnings and scheduler error reports. A nil logger installs a no-op.
func (w *World) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	w.logger = l
}

// OnTrack installs the dev-only introspection hook invoked every time
// track() creates or refreshes a Link (§6). Pass nil to disable.
func (w *World) OnTrack(fn func(TrackEvent)) { w.onTrack = fn }

// OnTrigger installs the dev-only introspection hook invoked every time
// trigger() fires (§6). Pass nil to disable.
func (w *World) OnTrigger(fn func(TriggerEvent)) { w.onTrigger = fn }

// TrackEvent describes one track() call, passed to an OnTrack hook.
type TrackEvent struct {
	Subscriber Subscriber
	Dep        *dep
	NewLink    bool
}

// TriggerEvent describes one trigger() call, passed to an OnTrigger hook.
type TriggerEvent struct {
	Dep         *dep
	SubsNotified int
}

func (w *World) currentSub() Subscriber { return w.activeSub }

func (w *World) setCurrentSub(s Subscriber) Subscriber {
	prev := w.activeSub
	w.activeSub = s
	return prev
}

func (w *World) setTracking(on bool) bool {
	prev := w.trackingOn
	w.trackingOn = on
	return prev
}

// PauseTracking and ResumeTracking globally suspend/resume dependency
// tracking for the calling goroutine's world, used by the observe package
// around length-altering slice mutations (§4.7) so they don't create
// self-triggering cycles via a "length" key.
func (w *World) PauseTracking() bool { return w.setTracking(false) }
func (w *World) ResumeTracking(prev bool) { w.trackingOn = prev }
