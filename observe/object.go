package observe

import (
	"reflect"
	"sync"
)

// Object is a reactive wrapper over a keyed bag of properties, the general
// "records" half of §4.7 (arrays and collections get their own, more
// specific wrappers below). It is the closest Go analogue of a reactive
// plain object: Get/Set/Has/Delete track and trigger per key, plus the
// shared IterateKey for operations that enumerate all keys.
type Object struct {
	identity
	mu     sync.RWMutex
	data   map[string]any
	keys   *keyMap
	proxies map[string]any // nested Object/Slice/Map/Set wrappers, cached
}

// NewObject wraps raw (a plain map[string]any, typically decoded from JSON
// or assembled by the caller) for reactive access.
func NewObject(raw map[string]any) *Object {
	if raw == nil {
		raw = make(map[string]any)
	}
	o := &Object{data: raw, keys: newKeyMap()}
	o.identity = identity{raw: raw}
	return globalRegistry.getOrCreate(ptrKeyOf(raw), func() any { return o }).(*Object)
}

// Readonly returns a read-only view of o: writes are accepted (so callers
// don't need type-switch guards) but never reach the target, matching
// §7's "write to a read-only reactive object" dev-mode-warn-and-drop rule.
// Readonly composes with an existing Readonly wrapper: wrapping twice just
// returns the same readonly identity.
func (o *Object) Readonly() *Object {
	if o.readonly {
		return o
	}
	return &Object{identity: identity{raw: o.raw, readonly: true, shallow: o.shallow}, data: o.data, keys: o.keys}
}

// Get tracks key and returns its value. If the value is itself a
// map[string]any, it is returned wrapped in a cached Object proxy unless o
// is Shallow (§4.7: "Reads return deep-reactive proxies lazily").
func (o *Object) Get(key string) any {
	o.keys.track(key)
	o.mu.RLock()
	v, ok := o.data[key]
	o.mu.RUnlock()
	if !ok {
		return nil
	}
	if o.shallow {
		return v
	}
	if nested, ok := v.(map[string]any); ok {
		return o.nestedObject(key, nested)
	}
	return v
}

func (o *Object) nestedObject(key string, nested map[string]any) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.proxies == nil {
		o.proxies = make(map[string]any)
	}
	if cached, ok := o.proxies[key]; ok {
		if c, ok := cached.(*Object); ok && Raw(c) != nil {
			return c
		}
	}
	child := NewObject(nested)
	if o.readonly {
		child = child.Readonly()
	}
	o.proxies[key] = child
	return child
}

// Set assigns value at key. It classifies the write as ADD or SET for the
// purposes of which cells to trigger (§4.7): a brand-new key also
// triggers IterateKey; an existing key whose value didn't change triggers
// nothing.
func (o *Object) Set(key string, value any) {
	if o.readonly {
		return // dev-mode warning is the caller's Logger's job; §7
	}
	o.mu.Lock()
	old, existed := o.data[key]
	changed := !existed || !shallowEqual(old, value)
	if changed {
		o.data[key] = value
	}
	o.mu.Unlock()
	if !existed {
		o.keys.trigger(key)
		o.keys.trigger(IterateKey)
	} else if changed {
		o.keys.trigger(key)
	}
}

// Has tracks key's cell (the same one Get tracks, so a value change also
// invalidates it) and reports whether the key exists.
func (o *Object) Has(key string) bool {
	o.keys.track(key)
	o.mu.RLock()
	_, ok := o.data[key]
	o.mu.RUnlock()
	return ok
}

// Delete removes key, triggering both the key's own cell and IterateKey.
func (o *Object) Delete(key string) {
	if o.readonly {
		return
	}
	o.mu.Lock()
	_, existed := o.data[key]
	delete(o.data, key)
	o.mu.Unlock()
	if existed {
		o.keys.trigger(key)
		o.keys.trigger(IterateKey)
	}
}

// Keys tracks IterateKey and returns a snapshot of the current key set.
func (o *Object) Keys() []string {
	o.keys.track(IterateKey)
	o.mu.RLock()
	defer o.mu.RUnlock()
	ks := make([]string, 0, len(o.data))
	for k := range o.data {
		ks = append(ks, k)
	}
	return ks
}

// DeepChildren implements Traversable: every current value, read (and
// tracked) the same way Get would.
func (o *Object) DeepChildren() []any {
	keys := o.Keys()
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, o.Get(k))
	}
	return out
}

func shallowEqual(a, b any) bool {
	return a == b
}

// ptrKeyOf returns a comparable value uniquely identifying the backing
// storage of m, so the same map[string]any passed twice resolves to the
// same cached Object. map[string]any is itself not a valid Go map key, so
// this is the one spot that reaches for reflection rather than a plain
// comparison — the idiomatic way to recover a map's data-pointer identity.
func ptrKeyOf(m map[string]any) any {
	return reflect.ValueOf(m).Pointer()
}
