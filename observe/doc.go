// Package observe implements the object/array/collection interception
// layer described by the engine's §4.7: every read routes through a
// track(target, key) call and every write routes through a
// trigger(target, key) call against the reactive package's Dep/track/
// trigger protocol.
//
// Go has no runtime Proxy, so this package takes the explicit-accessor
// route the engine's design notes call out as the language-neutral
// alternative: callers construct an Object, Slice, Map, or Set wrapper
// around a raw value and read/write through its Get/Set/Has/Delete/Range
// methods instead of through transparent field or index access.
package observe
