// Package watch implements the declarative source->callback API described
// in §4.8: watch a Signal, a Derived, a getter function, or a slice of
// sources, and invoke a callback when the dereferenced value changes.
package watch

import (
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vango-dev/reactive-core/observe"
	"github.com/vango-dev/reactive-core/reactive"
)

// Getter is anything a Watch can read: a Signal, a Derived, or any
// zero-argument function returning a value to compare across runs.
type Getter func() any

// Source adapts a typed read function, such as a *reactive.Signal[T]'s or
// *reactive.Derived[T]'s Get method, into a Getter.
func Source[T any](get func() T) Getter {
	return func() any { return get() }
}

// Options configures a Watch, mirroring §6's recognized watch options.
type Options struct {
	Immediate bool
	Deep      bool
	DeepDepth int // 0 with Deep=true means unbounded; >0 caps traversal depth
	Once      bool
	Scheduler func(job func(), isFirst bool)
	OnTrack   func(reactive.TrackEvent)
	OnTrigger func(reactive.TriggerEvent)
}

// Handle is returned by Watch; it exposes Pause, Resume, and Stop.
type Handle struct {
	effect   *reactive.Effect
	stopFn   func()
	onCleanup func()
}

// Pause suspends delivery; Resume replays at most one deferred trigger.
func (h *Handle) Pause()  { h.effect.Pause() }
func (h *Handle) Resume() { h.effect.Resume() }

// Stop detaches the watcher permanently. Idempotent.
func (h *Handle) Stop() {
	if h.onCleanup != nil {
		h.onCleanup()
		h.onCleanup = nil
	}
	h.effect.Stop()
}

// activeCleanupSlot is used to stash the current watcher's cleanup-registration
// function during a callback run, so package-level OnCleanup can find it.
var activeCleanupSlot *func()

// OnCleanup registers fn to run before the next callback invocation, or at
// Stop, whichever comes first (§4.8). It must be called synchronously
// from within a Watch callback.
func OnCleanup(fn func()) {
	if activeCleanupSlot != nil {
		*activeCleanupSlot = fn
	}
}

// Watch builds a getter from sources, optionally traverses it deeply, and
// invokes cb whenever the dereferenced value changes, per §4.8.
func Watch(sources []Getter, cb func(newVal, oldVal []any), opts Options) *Handle {
	multi := len(sources) > 1

	world := reactive.CurrentWorld()
	build := func() []any {
		if opts.OnTrack != nil {
			world.OnTrack(opts.OnTrack)
			defer world.OnTrack(nil)
		}
		if opts.OnTrigger != nil {
			world.OnTrigger(opts.OnTrigger)
			defer world.OnTrigger(nil)
		}
		vals := make([]any, len(sources))
		for i, src := range sources {
			v := src()
			if opts.Deep {
				v = deepTraverse(v, opts.DeepDepth)
			}
			vals[i] = v
		}
		return vals
	}

	var oldVal []any
	var pendingCleanup func()
	firstRun := true

	runCallback := func() {
		newVal := build()
		changed := firstRun
		if !firstRun {
			if multi {
				for i := range newVal {
					if !valuesEqual(newVal[i], oldVal[i]) {
						changed = true
						break
					}
				}
			} else {
				changed = !valuesEqual(newVal[0], oldVal[0])
			}
		}
		if !changed && !firstRun {
			return
		}
		if pendingCleanup != nil {
			c := pendingCleanup
			pendingCleanup = nil
			c()
		}
		var reportedOld []any
		if !firstRun {
			reportedOld = oldVal
		}
		oldVal = newVal
		wasFirst := firstRun
		firstRun = false

		activeCleanupSlot = &pendingCleanup
		func() {
			defer func() {
				if r := recover(); r != nil {
					panic(reactive.NewRunError(reactive.RunKindWatchCallback, r))
				}
			}()
			cb(newVal, reportedOld)
		}()
		activeCleanupSlot = nil
		_ = wasFirst
	}

	var h *Handle
	job := func() {
		if opts.Once {
			runCallback()
			if h != nil {
				h.Stop()
			}
			return
		}
		runCallback()
	}

	var initial []any
	eff := reactive.CreateEffect(func() reactive.Cleanup {
		initial = build() // track all sources; the first result is the baseline old value
		return nil
	})
	eff.WithScheduler(func(*reactive.Effect) {
		if opts.Scheduler != nil {
			opts.Scheduler(job, firstRun)
			return
		}
		job()
	})

	h = &Handle{effect: eff, onCleanup: func() {
		if pendingCleanup != nil {
			c := pendingCleanup
			pendingCleanup = nil
			c()
		}
	}}

	if opts.Immediate {
		job()
	} else {
		oldVal = initial
		firstRun = false
	}

	return h
}

// valuesEqual compares ints, int64s, float64s, strings and bools with ==
// and every other value with reflect.DeepEqual, whether the watch is deep,
// multi-source or neither; two distinct pointers to equal contents
// therefore compare as unchanged.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case int, int64, float64, string, bool:
		return av == b
	}
	return reflect.DeepEqual(a, b)
}

// deepTraverse walks v to the given depth (0 = unbounded), visiting maps,
// slices, arrays, pointers, plain structs, and observe.Traversable
// wrappers (by calling DeepChildren, which tracks the same Cells Get/Range
// would), using a visited set to break cycles (§4.8, §9 "deep traversal
// with cycle detection").
func deepTraverse(v any, maxDepth int) any {
	visited := mapset.NewThreadUnsafeSet[uintptr]()
	return traverse(v, 0, maxDepth, visited)
}

func traverse(v any, depth, maxDepth int, visited mapset.Set[uintptr]) any {
	if v == nil {
		return nil
	}
	if maxDepth > 0 && depth >= maxDepth {
		return v
	}
	if t, ok := v.(observe.Traversable); ok {
		ptr := reflect.ValueOf(v).Pointer()
		if visited.Contains(ptr) {
			return v
		}
		visited.Add(ptr)
		children := t.DeepChildren()
		out := make([]any, len(children))
		for i, c := range children {
			out[i] = traverse(c, depth+1, maxDepth, visited)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Len() == 0 {
			return v
		}
		ptr := rv.Pointer()
		if ptr != 0 {
			if visited.Contains(ptr) {
				return v
			}
			visited.Add(ptr)
		}
		out := make(map[any]any, rv.Len())
		for _, k := range rv.MapKeys() {
			out[k.Interface()] = traverse(rv.MapIndex(k).Interface(), depth+1, maxDepth, visited)
		}
		return out
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		if n == 0 {
			return v
		}
		if rv.Kind() == reflect.Slice {
			if ptr := rv.Pointer(); ptr != 0 {
				if visited.Contains(ptr) {
					return v
				}
				visited.Add(ptr)
			}
		}
		out := make([]any, n)
		for i := 0; i < n; i++ {
			out[i] = traverse(rv.Index(i).Interface(), depth+1, maxDepth, visited)
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return v
		}
		ptr := rv.Pointer()
		if visited.Contains(ptr) {
			return v
		}
		visited.Add(ptr)
		return traverse(rv.Elem().Interface(), depth+1, maxDepth, visited)
	case reflect.Struct:
		n := rv.NumField()
		if n == 0 {
			return v
		}
		t := rv.Type()
		out := make(map[string]any, n)
		for i := 0; i < n; i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fv := rv.Field(i)
			if !fv.CanInterface() {
				continue
			}
			out[f.Name] = traverse(fv.Interface(), depth+1, maxDepth, visited)
		}
		return out
	default:
		return v
	}
}
