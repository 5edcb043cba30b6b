package observe

import (
	"testing"

	"github.com/vango-dev/reactive-core/reactive"
)

func TestObjectGetSetTracksPerKeyNotWholeObject(t *testing.T) {
	o := NewObject(map[string]any{"a": 1, "b": 2})

	runs := 0
	var seen any
	reactive.CreateEffect(func() reactive.Cleanup {
		runs++
		seen = o.Get("a")
		return nil
	})

	if runs != 1 || seen != 1 {
		t.Fatalf("initial run: runs=%d seen=%v, want 1,1", runs, seen)
	}

	o.Set("b", 99) // unrelated key
	if runs != 1 {
		t.Fatalf("runs = %d after unrelated key write, want 1", runs)
	}

	o.Set("a", 10)
	if runs != 2 || seen != 10 {
		t.Fatalf("runs=%d seen=%v after tracked key write, want 2,10", runs, seen)
	}
}

func TestObjectReadonlyDropsWrites(t *testing.T) {
	o := NewObject(map[string]any{"a": 1})
	ro := o.Readonly()

	ro.Set("a", 2)
	if got := o.Get("a"); got != 1 {
		t.Fatalf("o.Get(\"a\") = %v after write through readonly view, want unchanged 1", got)
	}
	if ro.Readonly() != ro {
		t.Fatalf("Readonly() on an already-readonly Object should return itself")
	}
}

func TestObjectNewKeyTriggersIterateKey(t *testing.T) {
	o := NewObject(map[string]any{"a": 1})

	runs := 0
	reactive.CreateEffect(func() reactive.Cleanup {
		runs++
		o.Keys()
		return nil
	})
	if runs != 1 {
		t.Fatalf("runs = %d after initial Keys() read, want 1", runs)
	}

	o.Set("b", 2) // new key: must trigger IterateKey
	if runs != 2 {
		t.Fatalf("runs = %d after adding a new key, want 2", runs)
	}

	o.Set("b", 3) // existing key, changed value: must NOT trigger IterateKey
	if runs != 2 {
		t.Fatalf("runs = %d after changing an existing key's value, want still 2", runs)
	}
}

func TestSliceMutationBatchesAndTriggersLength(t *testing.T) {
	s := NewSlice([]int{1, 2, 3})

	lenRuns, idxRuns := 0, 0
	reactive.CreateEffect(func() reactive.Cleanup {
		lenRuns++
		s.Len()
		return nil
	})
	reactive.CreateEffect(func() reactive.Cleanup {
		idxRuns++
		s.Get(0)
		return nil
	})

	s.Append(4)
	if lenRuns != 2 {
		t.Fatalf("lenRuns = %d after Append, want 2", lenRuns)
	}
	// mutateLength's triggerAll invalidates every live index cell too, since
	// a length change can shift what any given index holds.
	if idxRuns != 2 {
		t.Fatalf("idxRuns = %d after Append, want 2", idxRuns)
	}
	if got := s.Get(3); got != 4 {
		t.Fatalf("s.Get(3) = %d after Append, want 4", got)
	}
}

func TestSliceRemoveAtShiftsElements(t *testing.T) {
	s := NewSlice([]int{1, 2, 3})
	s.RemoveAt(1)
	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d after RemoveAt, want 2", got)
	}
	if got := s.Get(1); got != 3 {
		t.Fatalf("Get(1) = %d after removing index 1, want 3", got)
	}
}

func TestMapClearTriggersAllKeysAtOnce(t *testing.T) {
	m := NewMap[string, int](nil)
	m.Set("x", 1)
	m.Set("y", 2)

	xRuns, yRuns := 0, 0
	reactive.CreateEffect(func() reactive.Cleanup {
		xRuns++
		m.Get("x")
		return nil
	})
	reactive.CreateEffect(func() reactive.Cleanup {
		yRuns++
		m.Get("y")
		return nil
	})

	m.Clear()
	if xRuns != 2 || yRuns != 2 {
		t.Fatalf("xRuns=%d yRuns=%d after Clear, want 2,2 (both keys invalidated)", xRuns, yRuns)
	}
}

func TestSetHasTracksMembership(t *testing.T) {
	s := NewSet[string](nil)
	s.Add("a")

	runs := 0
	var present bool
	reactive.CreateEffect(func() reactive.Cleanup {
		runs++
		present = s.Has("a")
		return nil
	})
	if runs != 1 || !present {
		t.Fatalf("runs=%d present=%v, want 1,true", runs, present)
	}

	s.Delete("a")
	if runs != 2 || present {
		t.Fatalf("runs=%d present=%v after Delete, want 2,false", runs, present)
	}
}
