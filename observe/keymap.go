package observe

import "github.com/vango-dev/reactive-core/reactive"

// Magic keys representing "any iteration or unknown-key read" (§4.7).
// IterateKey covers generic iteration (object ownKeys, map/set iteration);
// ArrayIterateKey gives array-length-sensitive traversals their own cell.
// MapKeysKey is triggered by Map when a key is added or removed; no read
// method in this package tracks it.
type sentinelKey struct{ name string }

var (
	IterateKey     = sentinelKey{"iterate"}
	MapKeysKey     = sentinelKey{"map-keys"}
	ArrayIterateKey = sentinelKey{"array-iterate"}
)

// keyMap is the per-target key->Cell table backing the track/trigger
// protocol (§4.7): "The target→key→Dep map lives in a global weak keyed by
// target identity." Each wrapper in this package owns exactly one keyMap.
type keyMap struct {
	cells map[any]*reactive.Cell
}

func newKeyMap() *keyMap {
	return &keyMap{cells: make(map[any]*reactive.Cell)}
}

func (m *keyMap) cell(key any) *reactive.Cell {
	if c, ok := m.cells[key]; ok {
		return c
	}
	c := reactive.NewCell()
	m.cells[key] = c
	k := key
	c.SetOwner(func() { delete(m.cells, k) })
	return c
}

func (m *keyMap) track(key any) {
	m.cell(key).Track()
}

func (m *keyMap) trigger(key any) {
	if c, ok := m.cells[key]; ok {
		c.Trigger()
	}
}

// triggerAll fires every live cell in the map, used for a collection CLEAR
// (§4.7: "a CLEAR on a collection triggers all keys at once").
func (m *keyMap) triggerAll() {
	for _, c := range m.cells {
		c.Trigger()
	}
}
