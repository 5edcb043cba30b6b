// Package vtree implements the virtual-tree reconciler: a typed node
// record (§3), the patch engine that mounts/updates/unmounts nodes against
// an injected host.Capabilities (§4.9), and the keyed list diff that
// minimizes moves using a longest-increasing-subsequence pass (§4.10.1).
package vtree

import "github.com/vango-dev/reactive-core/host"

// Kind discriminates the node kinds enumerated in §3's sentinel set, plus
// Element and Component which carry their own identity (a tag name or a
// component descriptor) rather than being sentinels.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindComment
	KindStatic
	KindFragment
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindStatic:
		return "static"
	case KindFragment:
		return "fragment"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Props is a node's keyed attribute map. "value" receives special
// ordering treatment during prop diffing (§4.9.2); event handlers and
// other non-attribute entries are recognized by the host's own PatchProp,
// not by this package.
type Props map[string]any

// Prop is one declared attribute, in source order. A Go map has no
// iteration order, but §4.9.2's prop differ must visit keys in the order
// they were declared (so e.g. an <input>'s min/max land before value) —
// Elem takes props as an ordered slice of these and derives both the
// lookup Props map and the Node's PropOrder from it.
type Prop struct {
	Key   string
	Value any
}

// Render is a functional component's body: props in, a Node tree out.
type Render func(props Props) *Node

// Node is the engine's immutable-by-convention description of what the
// tree should be (§3). Construct one directly or via the helpers in
// helpers.go.
type Node struct {
	Kind Kind

	Tag string // element tag name, or functional/stateful component name
	Key any    // identity for list diffing

	Props        Props
	PropOrder    []string // declared key order, for the prop differ (§4.9.2)
	DynamicProps []string // compiler-emitted "these keys may have changed" list

	Text     string  // KindText / KindComment content, or KindStatic raw HTML
	Children []*Node // array children; nil when Text is used instead

	Shape           ShapeFlag
	PatchFlag       PatchFlag
	DynamicChildren []*Node

	Render Render // KindComponent, functional: the render body
	Setup  Setup  // KindComponent, stateful: the setup function

	// El is the resolved host element reference after mount. Anchor is
	// the end-anchor host node for fragments and static blocks.
	El     host.Node
	Anchor host.Node

	// Instance is populated for KindComponent nodes once mounted.
	Instance *Instance
}

// SameType reports whether old and next address the same conceptual node
// (so a patch can update in place instead of unmount+mount) per §4.9 step
//2: same Kind, same Key, and, for elements and components, same Tag (a
// component's Render function is not compared).
func SameType(old, next *Node) bool {
	if old == nil || next == nil {
		return old == next
	}
	if old.Kind != next.Kind {
		return false
	}
	if old.Key != next.Key {
		return false
	}
	switch old.Kind {
	case KindElement:
		return old.Tag == next.Tag
	case KindComponent:
		return old.Tag == next.Tag
	default:
		return true
	}
}

// IsArrayChildren reports whether Children should be diffed as an ordered
// sequence rather than treated as absent or as a single text run.
func (n *Node) IsArrayChildren() bool {
	return n.Shape.Has(ShapeArrayChildren) || len(n.Children) > 0
}
