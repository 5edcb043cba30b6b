package observe

import "sync"

// identity implements the sentinel-property questions §4.7 requires of
// every observed wrapper: is this reactive, is it readonly, is it shallow,
// and what is its raw target. Every concrete wrapper (Object, Slice, Map,
// Set) embeds identity.
type identity struct {
	raw      any
	readonly bool
	shallow  bool
}

func (o identity) IsReactive() bool { return true }
func (o identity) IsReadonly() bool { return o.readonly }
func (o identity) IsShallow() bool  { return o.shallow }
func (o identity) Raw() any         { return o.raw }

// Traversable is implemented by every wrapper in this package so a deep
// watch (§4.8) can recurse into an observed collection's tracked values
// instead of stopping at the wrapper's own struct fields. DeepChildren
// reads exactly the way Keys/Get/Range already do, so recursing into it
// establishes Links on the wrapper's per-key Cells under whatever
// Subscriber is active.
type Traversable interface {
	DeepChildren() []any
}

// Observed is satisfied by every wrapper in this package; Raw(Observed)
// and the raw-identity invariant in §8 ("raw(raw(x)) == raw(x);
// raw(reactive(x)) == x") are implemented in terms of it.
type Observed interface {
	IsReactive() bool
	IsReadonly() bool
	IsShallow() bool
	Raw() any
}

// Raw returns x.Raw() if x is an Observed wrapper, or x itself otherwise —
// so Raw is idempotent on both raw and wrapped values, satisfying
// raw(raw(x)) == raw(x).
func Raw(x any) any {
	if o, ok := x.(Observed); ok {
		return o.Raw()
	}
	return x
}

// registry is the process-wide raw target identity -> reactive wrapper
// cache backing "object results return a cached proxy from a raw->proxy
// weak map" (§4.7). Go has no weak references usable as general map keys,
// so entries live for the process's lifetime; callers that need the
// wrapper reclaimed should drop their own reference and let the registry
// entry become the only holder, which is consistent with how the rest of
// this module treats "weak" maps (see reactive.dep's key-map cleanup for
// the one place this module implements true reclaim-on-zero-subscribers).
type registry struct {
	mu    sync.Mutex
	byRaw map[any]any
}

var globalRegistry = &registry{byRaw: make(map[any]any)}

func (r *registry) getOrCreate(raw any, create func() any) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byRaw[raw]; ok {
		return existing
	}
	v := create()
	r.byRaw[raw] = v
	return v
}
