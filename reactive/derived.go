package reactive

// Derived is a cached getter: both a Subscriber (it tracks the Deps its
// compute function reads) and the owner of a single output Dep (so its own
// readers can subscribe to it, the same as any other Dep).
//
// Get() is the only way to read it; recompute is pull-based and lazy,
// matching §4.4's refresh policy.
type Derived[T any] struct {
	subBase

	world   *World
	out     dep
	compute func(old T) T
	equal   func(a, b T) bool

	value             T
	hasValue          bool
	globalVersionSeen uint64
}

// CreateDerived builds a cached, pull-based computation from compute. The
// first argument to compute is the previous value (the zero value on the
// first call), following the oldValue-aware convention used elsewhere in
// this family of reactive systems.
//
// Example:
//
//	a := NewSignal(1)
//	b := NewSignal(2)
//	sum := CreateDerived(func(int) int { return a.Get() + b.Get() })
//	sum.Get() // 3
func CreateDerived[T any](compute func(old T) T) *Derived[T] {
	return CreateDerivedIn[T](CurrentWorld(), compute)
}

// CreateDerivedIn is CreateDerived against an explicit World.
func CreateDerivedIn[T any](w *World, compute func(old T) T) *Derived[T] {
	d := &Derived[T]{world: w, compute: compute, equal: defaultEqual[T]}
	d.out.ownerDerived = d
	return d
}

// WithEquals overrides the change-comparison function used to decide
// whether a recompute actually changed the cached value.
func (d *Derived[T]) WithEquals(eq func(a, b T) bool) *Derived[T] {
	d.equal = eq
	return d
}

func (d *Derived[T]) outputDep() *dep { return &d.out }

// Get tracks the Derived's output Dep (so the caller, if it is itself a
// Subscriber, subscribes to future changes), refreshes the cached value if
// stale, and returns it.
func (d *Derived[T]) Get() T {
	d.refresh()
	d.world.track(&d.out)
	return d.value
}

// Peek returns the cached value, refreshing it if necessary, without
// tracking the output Dep as a dependency of the current Subscriber.
func (d *Derived[T]) Peek() T {
	d.refresh()
	return d.value
}

// refresh implements the four-step bypass chain in §4.4.
func (d *Derived[T]) refresh() {
	// A read of d from inside its own compute (a self-read) keeps the
	// cached value instead of recursing into another recompute.
	if d.flags.has(flagRunning) {
		return
	}
	// 1. A prior read within this same run already validated it.
	if d.flags.has(flagTracking) && !d.flags.has(flagDirty) {
		return
	}
	// 2. Nothing reactive has changed anywhere since the last refresh.
	if d.hasValue && d.globalVersionSeen == d.world.globalVersion {
		return
	}
	// 3. Evaluated once, has no deps, and isn't dirty: a pure constant.
	if d.hasValue && d.flags.has(flagEvaluated) && d.head == nil && !d.flags.has(flagDirty) {
		return
	}
	d.recompute()
}

func (d *Derived[T]) recompute() {
	d.flags |= flagRunning | flagTracking
	prepareRun(d)
	prevSub := d.world.setCurrentSub(d)
	prevTracking := d.world.setTracking(true)

	old := d.value
	var next T
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		next = d.compute(old)
	}()

	cleanupRun(d)
	d.world.activeSub = prevSub
	d.world.trackingOn = prevTracking
	d.flags &^= flagRunning | flagDirty
	d.flags |= flagEvaluated
	d.globalVersionSeen = d.world.globalVersion

	if recovered != nil {
		d.world.logger.Errorf("derived panic: %v", recovered)
		panic(recovered)
	}

	changed := !d.hasValue || !d.equal(old, next)
	d.value = next
	d.hasValue = true
	if changed {
		d.out.version++
	}
}

// notify implements Subscriber: mark DIRTY, and if this is a fresh
// notification (not a self-recursion already in flight) enqueue into the
// derived-batch list and report back that this Subscriber is itself a Dep,
// so the propagator recurses into the output Dep's own subscribers.
func (d *Derived[T]) notify() bool {
	d.flags |= flagDirty
	if !d.flags.has(flagNotified) {
		d.flags |= flagNotified
		d.world.derivedQueue = append(d.world.derivedQueue, d)
	}
	return true
}

func defaultEqual[T any](a, b T) bool {
	return anyEqual(a, b)
}
