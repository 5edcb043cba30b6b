// Package host defines the capability set the patch engine calls out to
// (§6). The reactive/vtree core makes no assumptions about what a Node is
// beyond this interface — the same engine can drive a DOM-via-wasm
// backend, a native toolkit, a test stub, or any other render target.
package host

// Node is an opaque handle to a host-side node (an element, text node, or
// comment). Its concrete type is entirely up to the backend.
type Node any

// Capabilities is the required host interface the patch engine calls
// into. Capabilities implementations are free to wrap a *sync.Mutex or
// channel-based dispatcher internally; the core never calls these
// concurrently with itself (§5: single-threaded, cooperative).
type Capabilities interface {
	// PatchProp applies one prop change to el. namespace distinguishes
	// SVG/MathML-like namespaces from the default; parentComponent is
	// passed through for backends that need it to resolve component-
	// scoped directives.
	PatchProp(el Node, key string, prev, next any, namespace string, parentComponent any)

	// Insert places node into parent, immediately before anchor (or at
	// the end of parent's children if anchor is nil).
	Insert(node Node, parent Node, anchor Node)

	// Remove detaches node from its parent.
	Remove(node Node)

	CreateElement(tag string, namespace string, isCustomized bool, props map[string]any) Node
	CreateText(s string) Node
	CreateComment(s string) Node

	SetText(node Node, s string)
	SetElementText(el Node, s string)

	ParentNode(n Node) Node
	NextSibling(n Node) Node
}

// OptionalCapabilities is implemented by backends that support the
// optional operations §6 lists: query by selector, scope-id stamping for
// scoped CSS, node cloning, and emitting pre-rendered static HTML ranges.
// A backend that implements none of these can simply not satisfy this
// interface; the patch engine checks for it with a type assertion before
// using any of its methods.
type OptionalCapabilities interface {
	QuerySelector(selector string) Node
	SetScopeID(el Node, id string)
	CloneNode(n Node) Node

	// InsertStaticContent emits raw markup into parent before anchor and
	// returns the first and last host nodes it produced, so the caller
	// can track the range for later removal or move (§4.9: Static node
	// kind).
	InsertStaticContent(html string, parent Node, anchor Node, namespace string, start, end Node) (first, last Node)
}
