package watch

import (
	"testing"

	"github.com/vango-dev/reactive-core/observe"
	"github.com/vango-dev/reactive-core/reactive"
)

func TestWatchFiresOnChangeNotOnCreate(t *testing.T) {
	s := reactive.NewSignal(1)

	calls := 0
	var gotNew, gotOld int
	h := Watch([]Getter{Source(s.Get)}, func(newVal, oldVal []any) {
		calls++
		gotNew = newVal[0].(int)
		if oldVal != nil {
			gotOld = oldVal[0].(int)
		}
	}, Options{})
	defer h.Stop()

	if calls != 0 {
		t.Fatalf("calls = %d before any write, want 0 (Immediate not set)", calls)
	}

	s.Set(2)
	if calls != 1 || gotNew != 2 || gotOld != 1 {
		t.Fatalf("calls=%d gotNew=%d gotOld=%d, want 1,2,1", calls, gotNew, gotOld)
	}
}

func TestWatchImmediateRunsOnceUpFront(t *testing.T) {
	s := reactive.NewSignal(5)

	calls := 0
	var gotOld []any
	h := Watch([]Getter{Source(s.Get)}, func(newVal, oldVal []any) {
		calls++
		gotOld = oldVal
	}, Options{Immediate: true})
	defer h.Stop()

	if calls != 1 {
		t.Fatalf("calls = %d immediately after Watch with Immediate, want 1", calls)
	}
	if gotOld != nil {
		t.Fatalf("gotOld = %v on the immediate run, want nil", gotOld)
	}
}

func TestWatchOnceStopsAfterFirstCallback(t *testing.T) {
	s := reactive.NewSignal(1)

	calls := 0
	h := Watch([]Getter{Source(s.Get)}, func(newVal, oldVal []any) {
		calls++
	}, Options{Once: true})
	defer h.Stop()

	s.Set(2)
	s.Set(3)
	s.Set(4)
	if calls != 1 {
		t.Fatalf("calls = %d after three writes with Once set, want 1", calls)
	}
	_ = h
}

func TestWatchMultiSourceFiresOnAnySourceChange(t *testing.T) {
	a := reactive.NewSignal(1)
	b := reactive.NewSignal(2)

	calls := 0
	h := Watch([]Getter{Source(a.Get), Source(b.Get)}, func(newVal, oldVal []any) {
		calls++
	}, Options{})
	defer h.Stop()

	b.Set(20)
	if calls != 1 {
		t.Fatalf("calls = %d after changing the second source, want 1", calls)
	}

	a.Set(10)
	if calls != 2 {
		t.Fatalf("calls = %d after changing the first source, want 2", calls)
	}
}

func TestWatchOnCleanupRunsBeforeNextCallback(t *testing.T) {
	s := reactive.NewSignal(1)

	var cleaned []int
	h := Watch([]Getter{Source(s.Get)}, func(newVal, oldVal []any) {
		v := newVal[0].(int)
		OnCleanup(func() { cleaned = append(cleaned, v) })
	}, Options{})
	defer h.Stop()

	s.Set(2)
	if len(cleaned) != 0 {
		t.Fatalf("cleaned = %v after first change, want empty (nothing to clean up yet)", cleaned)
	}

	s.Set(3)
	if len(cleaned) != 1 || cleaned[0] != 2 {
		t.Fatalf("cleaned = %v after second change, want [2]", cleaned)
	}

	h.Stop()
	if len(cleaned) != 2 || cleaned[1] != 3 {
		t.Fatalf("cleaned = %v after Stop, want [2 3]", cleaned)
	}
}

// TestWatchDeepTraversalBreaksCycles exercises §8's "watch a self-referencing
// structure" scenario: a struct that holds a pointer back to itself must not
// recurse forever, and the callback must still fire exactly once per actual
// change.
func TestWatchDeepTraversalBreaksCycles(t *testing.T) {
	type node struct {
		Val  int
		Self *node
	}
	n := &node{Val: 1}
	n.Self = n

	s := reactive.NewSignal(any(n))

	calls := 0
	h := Watch([]Getter{Source(s.Get)}, func(newVal, oldVal []any) {
		calls++
	}, Options{Deep: true})
	defer h.Stop()

	n2 := &node{Val: 2}
	n2.Self = n2
	s.Set(any(n2))

	if calls != 1 {
		t.Fatalf("calls = %d after changing a self-referencing value, want exactly 1", calls)
	}
}

// TestWatchDeepTraversalTracksNestedObserveObject exercises §4.8's "watch an
// observed object deeply" scenario without replacing the top-level value:
// mutating a key on a nested *observe.Object must, on its own, be enough to
// fire the callback.
func TestWatchDeepTraversalTracksNestedObserveObject(t *testing.T) {
	inner := observe.NewObject(map[string]any{"x": 1})
	outer := observe.NewObject(map[string]any{"inner": inner})

	calls := 0
	h := Watch([]Getter{Source(func() any { return outer })}, func(newVal, oldVal []any) {
		calls++
	}, Options{Deep: true})
	defer h.Stop()

	inner.Set("x", 2)
	if calls != 1 {
		t.Fatalf("calls = %d after mutating a nested observe.Object key, want 1", calls)
	}

	inner.Set("x", 2) // unchanged value: must not re-fire
	if calls != 1 {
		t.Fatalf("calls = %d after re-setting the same value, want still 1", calls)
	}
}

func TestWatchPauseSuppressesThenResumeDeliversOne(t *testing.T) {
	s := reactive.NewSignal(1)

	calls := 0
	h := Watch([]Getter{Source(s.Get)}, func(newVal, oldVal []any) {
		calls++
	}, Options{})
	defer h.Stop()

	h.Pause()
	s.Set(2)
	s.Set(3)
	if calls != 0 {
		t.Fatalf("calls = %d while paused, want 0", calls)
	}

	h.Resume()
	if calls != 1 {
		t.Fatalf("calls = %d after resume, want 1 (one deferred delivery)", calls)
	}
}
