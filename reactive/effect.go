package reactive

// Cleanup is returned by an Effect's body and, if non-nil, is invoked
// before the next run and when the Effect stops.
type Cleanup func()

// Scheduler lets an Effect customize how its trigger is delivered, instead
// of the default "re-run synchronously if dirty" behavior (§4.3).
type Scheduler func(e *Effect)

// Effect is a re-runnable computation: a concrete Subscriber plus the
// closure it runs and, optionally, a custom Scheduler.
//
// Component renders and Watch jobs are built on Effect; Derived is a
// separate Subscriber with its own recompute and does not use Effect.
type Effect struct {
	subBase

	world *World
	fn    func() Cleanup

	cleanup   Cleanup
	onStop    func()
	scheduler Scheduler

	pendingTrigger bool
}

// CreateEffect runs fn immediately and re-runs it whenever a Dep it read
// changes. The returned Effect exposes Stop, Pause, and Resume.
//
// Example:
//
//	count := NewSignal(0)
//	e := CreateEffect(func() Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//	defer e.Stop()
func CreateEffect(fn func() Cleanup) *Effect {
	return CreateEffectIn(CurrentWorld(), fn)
}

// CreateEffectIn is CreateEffect against an explicit World instead of the
// calling goroutine's.
func CreateEffectIn(w *World, fn func() Cleanup) *Effect {
	e := &Effect{world: w, fn: fn}
	e.flags = flagActive
	if sc := w.activeScope; sc != nil {
		sc.own(e)
	}
	e.run()
	return e
}

// WithScheduler installs a custom Scheduler, replacing the default
// run-if-dirty trigger behavior.
func (e *Effect) WithScheduler(s Scheduler) *Effect {
	e.scheduler = s
	return e
}

// AllowRecurse permits this Effect's own writes, made while it is RUNNING,
// to schedule another run of itself instead of being ignored.
func (e *Effect) AllowRecurse() *Effect {
	e.flags |= flagAllowRecurse
	return e
}

func (e *Effect) run() {
	if !e.flags.has(flagActive) {
		if e.fn != nil {
			e.fn()
		}
		return
	}

	e.flags |= flagRunning
	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}

	prepareRun(e)
	prevSub := e.world.setCurrentSub(e)
	prevTracking := e.world.setTracking(true)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		if e.fn != nil {
			e.cleanup = e.fn()
		}
	}()

	cleanupRun(e)
	e.world.activeSub = prevSub
	e.world.trackingOn = prevTracking
	e.flags &^= flagRunning | flagDirty

	if recovered != nil {
		e.world.logger.Errorf("effect panic: %v", recovered)
		panic(recovered)
	}
}

// notify implements Subscriber. A RUNNING effect without AllowRecurse
// ignores its own write-triggered notification (§4.3).
func (e *Effect) notify() bool {
	if e.flags.has(flagRunning) && !e.flags.has(flagAllowRecurse) {
		return false
	}
	if e.flags.has(flagNotified) {
		return false
	}
	e.flags |= flagNotified
	e.world.effectQueue = append(e.world.effectQueue, e)
	return false
}

// runIfDirty checks whether any Link in the dep-list has drifted from its
// Dep's current version (refreshing Derived sources along the way) and, if
// so, re-runs the Effect.
func (e *Effect) runIfDirty() error {
	dirty := e.flags.has(flagDirty)
	if !dirty {
		for l := e.head; l != nil; l = l.nextDep {
			if dv, ok := l.dep.ownerDerived.(refresher); ok {
				dv.refresh()
			}
			if l.version != l.dep.version {
				dirty = true
				break
			}
		}
	}
	if !dirty {
		return nil
	}
	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = newRunError(RunKindEffect, r)
			}
		}()
		e.run()
	}()
	return runErr
}

// refresher is implemented by Derived[T] so runIfDirty can force a stale
// source to recompute before comparing versions.
type refresher interface {
	refresh()
}

// trigger implements the per-Effect delivery decision described in §4.3:
// paused effects park a single deferred trigger; a custom scheduler takes
// over delivery entirely; otherwise the effect re-runs if actually dirty.
func (e *Effect) trigger() error {
	if e.flags.has(flagPaused) {
		e.pendingTrigger = true
		e.world.pausedDeferred.Add(e)
		return nil
	}
	if e.scheduler != nil {
		e.scheduler(e)
		return nil
	}
	return e.runIfDirty()
}

// Pause defers future triggers instead of delivering them; at most one
// deferred trigger accumulates while paused.
func (e *Effect) Pause() {
	e.flags |= flagPaused
}

// Resume clears Pause and, if a trigger was deferred while paused,
// dispatches it exactly once.
func (e *Effect) Resume() {
	e.flags &^= flagPaused
	if e.pendingTrigger {
		e.pendingTrigger = false
		e.world.pausedDeferred.Remove(e)
		_ = e.trigger()
	}
}

// Stop removes every Link, runs the last registered cleanup and onStop
// hook, and clears ACTIVE. Stop is idempotent.
func (e *Effect) Stop() {
	if !e.flags.has(flagActive) {
		return
	}
	for l := e.head; l != nil; {
		next := l.nextDep
		removeSubList(l.dep, l)
		l.dep.subCount--
		if l.dep.subCount == 0 && l.dep.owner != nil {
			l.dep.owner.releaseDep(l.dep)
		}
		l = next
	}
	e.head = nil
	e.tail = nil
	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
	if e.onStop != nil {
		e.onStop()
	}
	e.flags &^= flagActive
	e.world.pausedDeferred.Remove(e)
}

// OnStop installs a hook run once, when Stop is called.
func (e *Effect) OnStop(fn func()) { e.onStop = fn }

// Execute forces an unconditional re-run, independent of whether any
// tracked Dep actually drifted. Callers that re-run an Effect in response
// to state the Effect doesn't itself track (e.g. a component re-rendering
// because its parent passed new props) use this instead of waiting for
// runIfDirty's version comparison to notice nothing changed.
func (e *Effect) Execute() error {
	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = newRunError(RunKindEffect, r)
			}
		}()
		e.run()
	}()
	return runErr
}
