package reactive

import "testing"

func freshWorld() *World {
	return newWorld()
}

func TestDerivedRunsOnceInitialAndOnceAfterWrite(t *testing.T) {
	w := freshWorld()
	a := NewSignalIn(w, 1)
	b := NewSignalIn(w, 2)

	runs := 0
	c := CreateDerivedIn(w, func(int) int {
		runs++
		return a.Get() + b.Get()
	})

	if got := c.Get(); got != 3 {
		t.Fatalf("c.Get() = %d, want 3", got)
	}
	if runs != 1 {
		t.Fatalf("runs = %d after first read, want 1", runs)
	}

	a.Set(10)
	if got := c.Get(); got != 12 {
		t.Fatalf("c.Get() = %d, want 12", got)
	}
	if runs != 2 {
		t.Fatalf("runs = %d after write, want 2", runs)
	}
}

func TestEffectIgnoresUnrelatedWrite(t *testing.T) {
	w := freshWorld()
	a := NewSignalIn(w, 1)
	b := NewSignalIn(w, 2)

	var lastSeen int
	calls := 0
	CreateEffectIn(w, func() Cleanup {
		calls++
		lastSeen = a.Get()
		return nil
	})

	if calls != 1 || lastSeen != 1 {
		t.Fatalf("initial run: calls=%d lastSeen=%d, want 1,1", calls, lastSeen)
	}

	b.Set(99)
	if calls != 1 {
		t.Fatalf("calls = %d after unrelated write, want 1", calls)
	}

	a.Set(7)
	if calls != 2 || lastSeen != 7 {
		t.Fatalf("after related write: calls=%d lastSeen=%d, want 2,7", calls, lastSeen)
	}
}

func TestBatchedUpdateRunsEffectOnceForBothWrites(t *testing.T) {
	w := freshWorld()
	a := NewSignalIn(w, 1)
	b := NewSignalIn(w, 2)

	runs := 0
	var seenA, seenB int
	CreateEffectIn(w, func() Cleanup {
		runs++
		seenA = a.Get()
		seenB = b.Get()
		return nil
	})

	BatchIn(w, func() {
		a.Set(10)
		b.Set(20)
	})

	if runs != 2 {
		t.Fatalf("runs = %d, want 2 (initial + one batched run)", runs)
	}
	if seenA != 10 || seenB != 20 {
		t.Fatalf("seenA=%d seenB=%d, want 10,20", seenA, seenB)
	}
}

func TestStableDerivationDoesNotRerunWhenDepsUnchanged(t *testing.T) {
	w := freshWorld()
	a := NewSignalIn(w, 1)

	runs := 0
	c := CreateDerivedIn(w, func(int) int {
		runs++
		return a.Get() * 2
	})

	c.Get()
	c.Get()
	c.Get()
	if runs != 1 {
		t.Fatalf("runs = %d across repeated reads with no write, want 1", runs)
	}
}

func TestDerivedSelfReadDoesNotCreateSelfEdge(t *testing.T) {
	w := freshWorld()
	a := NewSignalIn(w, 1)

	var c *Derived[int]
	c = CreateDerivedIn(w, func(old int) int {
		// Reading c's own output dep mid-compute must be a no-op (the
		// track() guard for "current Subscriber is this Dep's owner"),
		// not a self-subscription that would make every recompute dirty
		// itself forever.
		_ = c.Get()
		return a.Get()
	})

	if got := c.Get(); got != 1 {
		t.Fatalf("c.Get() = %d, want 1", got)
	}

	a.Set(5)
	if got := c.Get(); got != 5 {
		t.Fatalf("c.Get() after write = %d, want 5", got)
	}
}

func TestScopeStopRemovesChildInConstantTime(t *testing.T) {
	w := freshWorld()
	root := NewScopeIn(w)

	var children []*Scope
	root.Run(func() {
		for i := 0; i < 5; i++ {
			children = append(children, NewScopeIn(w))
		}
	})

	middle := children[2]
	middle.Stop()

	// The remaining four children should still all be reachable from root
	// (internal bookkeeping only, verified indirectly: stopping root must
	// not panic walking a corrupted children slice).
	root.Stop()
}

func TestPausedEffectDeliversAtMostOneDeferredTrigger(t *testing.T) {
	w := freshWorld()
	a := NewSignalIn(w, 1)

	runs := 0
	e := CreateEffectIn(w, func() Cleanup {
		runs++
		a.Get()
		return nil
	})

	e.Pause()
	a.Set(2)
	a.Set(3)
	a.Set(4)
	if runs != 1 {
		t.Fatalf("runs = %d while paused, want 1 (only the initial run)", runs)
	}

	e.Resume()
	if runs != 2 {
		t.Fatalf("runs = %d after resume, want 2", runs)
	}
}

func TestEffectRunningIgnoresOwnWriteUnlessAllowRecurse(t *testing.T) {
	w := freshWorld()
	a := NewSignalIn(w, 1)

	runs := 0
	CreateEffectIn(w, func() Cleanup {
		runs++
		v := a.Get()
		if v == 1 {
			a.Set(2) // write during RUNNING: ignored without AllowRecurse
		}
		return nil
	})

	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (self-write during RUNNING must not recurse)", runs)
	}
}
