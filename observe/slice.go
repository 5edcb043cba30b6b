package observe

import (
	"sync"

	"github.com/vango-dev/reactive-core/reactive"
)

// Slice is a reactive wrapper over a Go slice, the array half of §4.7.
// Get/Set track and trigger individual indices; length-altering methods
// (Append, Pop, Insert, RemoveAt, matching the source protocol's push/pop/
// shift/unshift/splice family) run with tracking globally paused and
// inside a batch, exactly as §4.7 specifies, "to prevent self-triggering
// dependency cycles via length."
type Slice[T any] struct {
	identity
	mu   sync.RWMutex
	data []T
	keys *keyMap
}

// NewSlice wraps raw for reactive access.
func NewSlice[T any](raw []T) *Slice[T] {
	s := &Slice[T]{data: raw, keys: newKeyMap()}
	s.identity = identity{raw: raw}
	return s
}

// Len tracks ArrayIterateKey (length-agnostic traversals rebuild cleanly
// off this one cell rather than every index) and returns the length.
func (s *Slice[T]) Len() int {
	s.keys.track(ArrayIterateKey)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Get tracks index i and returns the element there.
func (s *Slice[T]) Get(i int) T {
	s.keys.track(i)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[i]
}

// Set writes value at index i, triggering that index's cell.
func (s *Slice[T]) Set(i int, value T) {
	if s.readonly {
		return
	}
	s.mu.Lock()
	s.data[i] = value
	s.mu.Unlock()
	s.keys.trigger(i)
}

// Range tracks ArrayIterateKey and visits each element in order.
func (s *Slice[T]) Range(fn func(int, T) bool) {
	s.keys.track(ArrayIterateKey)
	s.mu.RLock()
	snapshot := append([]T(nil), s.data...)
	s.mu.RUnlock()
	for i, v := range snapshot {
		if !fn(i, v) {
			return
		}
	}
}

// Append adds values to the end of the slice, paused and batched as §4.7
// requires of any length-altering mutation.
func (s *Slice[T]) Append(values ...T) {
	s.mutateLength(func() {
		s.data = append(s.data, values...)
	})
}

// Pop removes and returns the last element, or the zero value and false if
// the slice was empty.
func (s *Slice[T]) Pop() (T, bool) {
	var out T
	var ok bool
	s.mutateLength(func() {
		if n := len(s.data); n > 0 {
			out = s.data[n-1]
			s.data = s.data[:n-1]
			ok = true
		}
	})
	return out, ok
}

// RemoveAt deletes the element at index i, shifting later elements down.
func (s *Slice[T]) RemoveAt(i int) {
	s.mutateLength(func() {
		s.data = append(s.data[:i], s.data[i+1:]...)
	})
}

// Insert splices value into the slice at index i.
func (s *Slice[T]) Insert(i int, value T) {
	s.mutateLength(func() {
		s.data = append(s.data, value)
		copy(s.data[i+1:], s.data[i:])
		s.data[i] = value
	})
}

// DeepChildren implements Traversable: every element, read (and tracked)
// the same way Range would.
func (s *Slice[T]) DeepChildren() []any {
	out := make([]any, 0, s.Len())
	s.Range(func(_ int, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

func (s *Slice[T]) mutateLength(fn func()) {
	if s.readonly {
		return
	}
	prev := reactive.CurrentWorld().PauseTracking()
	reactive.Batch(func() {
		s.mu.Lock()
		fn()
		s.mu.Unlock()
		s.keys.trigger(ArrayIterateKey)
		s.keys.triggerAll()
	})
	reactive.CurrentWorld().ResumeTracking(prev)
}
