package reactive

// Batch defers trigger delivery until fn returns, then flushes once, so a
// sequence of writes that would otherwise re-run an effect N times re-runs
// it at most once (§4.5).
//
// Example:
//
//	Batch(func() {
//	    a.Set(10)
//	    b.Set(20)
//	}) // downstream effects observe both writes in a single run
func Batch(fn func()) {
	BatchIn(CurrentWorld(), fn)
}

// BatchIn is Batch against an explicit World.
func BatchIn(w *World, fn func()) {
	w.batchDepth++
	defer func() {
		w.batchDepth--
		if w.batchDepth == 0 {
			w.flush()
		}
	}()
	fn()
}

// Untracked runs fn with dependency tracking globally suspended: reads
// performed inside fn do not create Links, even if a Subscriber is active.
func Untracked(fn func()) {
	UntrackedIn(CurrentWorld(), fn)
}

// UntrackedIn is Untracked against an explicit World.
func UntrackedIn(w *World, fn func()) {
	prev := w.setTracking(false)
	defer func() { w.trackingOn = prev }()
	fn()
}

// flush runs when batchDepth returns to zero: first the derived-batch list
// is walked to clear NOTIFIED (recomputation itself stays lazy), then the
// effect-batch list is walked, triggering each ACTIVE effect and collecting
// at most the first error, which is re-raised once the walk completes.
func (w *World) flush() {
	for _, d := range w.derivedQueue {
		d.setSubFlags(d.subFlags() &^ flagNotified)
	}
	w.derivedQueue = w.derivedQueue[:0]

	queue := w.effectQueue
	w.effectQueue = nil
	var firstErr error
	for _, e := range queue {
		e.flags &^= flagNotified
		if e.flags.has(flagActive) {
			if err := e.trigger(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	// Nested triggers during this walk append to w.effectQueue; drain them
	// in the same outer flush before returning control to end_batch.
	for len(w.effectQueue) > 0 {
		next := w.effectQueue
		w.effectQueue = nil
		for _, e := range next {
			e.flags &^= flagNotified
			if e.flags.has(flagActive) {
				if err := e.trigger(); err != nil && firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	if firstErr != nil {
		w.logger.Errorf("batch flush error: %v", firstErr)
		panic(newRunError(RunKindScheduler, firstErr))
	}
}
