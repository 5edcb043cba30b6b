package observe

import "sync"

// Map is a reactive wrapper over a Go map[K]V, covering the map/weakmap
// half of §4.7's collection observer. has/get/set/delete/clear track and
// trigger per key; Range and Size track IterateKey. Adding or removing a
// key also triggers MapKeysKey, which no read method here tracks.
type Map[K comparable, V any] struct {
	identity
	mu   sync.RWMutex
	data map[K]V
	keys *keyMap
}

// NewMap wraps raw for reactive access. A nil raw allocates an empty map.
func NewMap[K comparable, V any](raw map[K]V) *Map[K, V] {
	if raw == nil {
		raw = make(map[K]V)
	}
	m := &Map[K, V]{data: raw, keys: newKeyMap()}
	m.identity = identity{raw: raw}
	return m
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	m.keys.track(key)
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Map[K, V]) Has(key K) bool {
	m.keys.track(key)
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}

// Size tracks IterateKey (the size changes whenever any key is added or
// removed, regardless of which key).
func (m *Map[K, V]) Size() int {
	m.keys.track(IterateKey)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *Map[K, V]) Set(key K, value V) {
	if m.readonly {
		return
	}
	m.mu.Lock()
	_, existed := m.data[key]
	m.data[key] = value
	m.mu.Unlock()
	m.keys.trigger(key)
	if !existed {
		m.keys.trigger(IterateKey)
		m.keys.trigger(MapKeysKey)
	}
}

func (m *Map[K, V]) Delete(key K) {
	if m.readonly {
		return
	}
	m.mu.Lock()
	_, existed := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()
	if existed {
		m.keys.trigger(key)
		m.keys.trigger(IterateKey)
		m.keys.trigger(MapKeysKey)
	}
}

// Clear empties the map and triggers every live cell at once (§4.7: "a
// CLEAR on a collection triggers all keys at once").
func (m *Map[K, V]) Clear() {
	if m.readonly {
		return
	}
	m.mu.Lock()
	for k := range m.data {
		delete(m.data, k)
	}
	m.mu.Unlock()
	m.keys.triggerAll()
	m.keys.trigger(IterateKey)
	m.keys.trigger(MapKeysKey)
}

// DeepChildren implements Traversable: every value, read (and tracked) the
// same way Range would.
func (m *Map[K, V]) DeepChildren() []any {
	out := make([]any, 0, m.Size())
	m.Range(func(_ K, v V) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Range tracks IterateKey, then visits every entry in the underlying map's
// (unspecified) iteration order.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	m.keys.track(IterateKey)
	m.mu.RLock()
	snapshot := make(map[K]V, len(m.data))
	for k, v := range m.data {
		snapshot[k] = v
	}
	m.mu.RUnlock()
	for k, v := range snapshot {
		if !fn(k, v) {
			return
		}
	}
}
