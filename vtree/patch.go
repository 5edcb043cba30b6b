package vtree

import "github.com/vango-dev/reactive-core/host"

// Context carries the per-call state the patch engine threads through a
// mount/update pass: the injected host, the current namespace (for
// SVG/MathML-like sub-trees), and the enclosing component instance (for
// backends that need it to resolve scoped directives).
type Context struct {
	Host            host.Capabilities
	Namespace       string
	ParentComponent *Instance
	Optimized       bool

	// Warnf receives dev-mode diagnostics (duplicate keyed-diff keys,
	// etc.); nil in production builds.
	Warnf func(format string, args ...any)
}

func (c Context) warn(format string, args ...any) {
	if c.Warnf != nil {
		c.Warnf(format, args...)
	}
}

func (c Context) optional() (host.OptionalCapabilities, bool) {
	oc, ok := c.Host.(host.OptionalCapabilities)
	return oc, ok
}

// Patch reconciles old against next, mounting next under container before
// anchor if old is nil, or mutating in place (§4.9).
func Patch(old, next *Node, container host.Node, anchor host.Node, ctx Context) {
	if old == next {
		return
	}
	if old != nil && !SameType(old, next) {
		Unmount(old, ctx)
		old = nil
	}
	if next != nil && next.PatchFlag.Has(PatchBail) {
		ctx.Optimized = false
		next.DynamicChildren = nil
	}

	if next == nil {
		return
	}

	switch next.Kind {
	case KindText:
		patchText(old, next, container, anchor, ctx)
	case KindComment:
		patchComment(old, next, container, anchor, ctx)
	case KindStatic:
		patchStatic(old, next, container, anchor, ctx)
	case KindFragment:
		patchFragment(old, next, container, anchor, ctx)
	case KindElement:
		patchElement(old, next, container, anchor, ctx)
	case KindComponent:
		patchComponent(old, next, container, anchor, ctx)
	}
}

func patchText(old, next *Node, container host.Node, anchor host.Node, ctx Context) {
	if old == nil {
		next.El = ctx.Host.CreateText(next.Text)
		ctx.Host.Insert(next.El, container, anchor)
		return
	}
	next.El = old.El
	if old.Text != next.Text {
		ctx.Host.SetText(next.El, next.Text)
	}
}

// patchComment is not diffed after mount (§4.9): recreate only on mount.
func patchComment(old, next *Node, container host.Node, anchor host.Node, ctx Context) {
	if old == nil {
		next.El = ctx.Host.CreateComment(next.Text)
		ctx.Host.Insert(next.El, container, anchor)
		return
	}
	next.El = old.El
}

// patchStatic mounts/updates a raw-HTML range. Production renderers may
// never encounter this node kind (§9: "Static node patching exists only
// for dev-time hot reload"); hosts that don't implement
// InsertStaticContent simply never receive one from a realistic render
// function.
func patchStatic(old, next *Node, container host.Node, anchor host.Node, ctx Context) {
	oc, ok := ctx.optional()
	if !ok {
		return
	}
	if old == nil {
		first, last := oc.InsertStaticContent(next.Text, container, anchor, ctx.Namespace, nil, nil)
		next.El = first
		next.Anchor = last
		return
	}
	next.El = old.El
	next.Anchor = old.Anchor
	if old.Text != next.Text {
		first, last := oc.InsertStaticContent(next.Text, container, old.El, ctx.Namespace, nil, nil)
		Remove(old.El, old.Anchor, ctx)
		next.El = first
		next.Anchor = last
	}
}

func patchFragment(old, next *Node, container host.Node, anchor host.Node, ctx Context) {
	if old == nil {
		next.El = ctx.Host.CreateComment("")
		next.Anchor = ctx.Host.CreateComment("")
		ctx.Host.Insert(next.El, container, anchor)
		ctx.Host.Insert(next.Anchor, container, anchor)
		mountChildren(next.Children, container, next.Anchor, ctx)
		return
	}
	next.El = old.El
	next.Anchor = old.Anchor
	if next.PatchFlag.Has(PatchStableFragment) && old.DynamicChildren != nil && next.DynamicChildren != nil {
		patchBlockChildren(old.DynamicChildren, next.DynamicChildren, container, ctx)
		return
	}
	DiffChildren(old, next, container, next.Anchor, ctx)
}

// patchBlockChildren is the "block children fast path": both sides
// already know exactly which descendants might have changed, so each pair
// is patched positionally without a full child diff.
func patchBlockChildren(old, next []*Node, container host.Node, ctx Context) {
	n := len(old)
	if len(next) < n {
		n = len(next)
	}
	for i := 0; i < n; i++ {
		Patch(old[i], next[i], container, nextAnchorFor(old[i]), ctx)
	}
}

func nextAnchorFor(n *Node) host.Node {
	if n == nil {
		return nil
	}
	return n.El
}

func mountChildren(children []*Node, container host.Node, anchor host.Node, ctx Context) {
	for _, c := range children {
		Patch(nil, c, container, anchor, ctx)
	}
}

// Remove detaches the host range [el..anchor] (anchor may be nil for a
// single node).
func Remove(el, anchor host.Node, ctx Context) {
	if anchor != nil {
		for el != nil && el != anchor {
			next := ctx.Host.NextSibling(el)
			ctx.Host.Remove(el)
			el = next
		}
	}
	if el != nil {
		ctx.Host.Remove(el)
	}
}

// Unmount tears down n: elements tear down the components among their
// descendants and then remove only their own host node, which takes the
// descendants' host nodes with it; fragments remove every child then both
// anchors; components delegate to their instance.
func Unmount(n *Node, ctx Context) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindFragment:
		for _, c := range n.Children {
			Unmount(c, ctx)
		}
		if n.El != nil {
			ctx.Host.Remove(n.El)
		}
		if n.Anchor != nil {
			ctx.Host.Remove(n.Anchor)
		}
	case KindElement:
		for _, c := range n.Children {
			unmountNested(c, ctx)
		}
		if n.El != nil {
			ctx.Host.Remove(n.El)
		}
	case KindComponent:
		unmountComponent(n, ctx)
	default:
		if n.El != nil {
			ctx.Host.Remove(n.El)
		}
		if n.Anchor != nil && n.Anchor != n.El {
			ctx.Host.Remove(n.Anchor)
		}
	}
}

// unmountNested tears down the descendants of an element that is itself
// being removed: their host nodes leave with it, so only component
// instances among them get their own teardown.
func unmountNested(n *Node, ctx Context) {
	if n == nil {
		return
	}
	if n.Kind == KindComponent {
		unmountComponent(n, ctx)
		return
	}
	for _, c := range n.Children {
		unmountNested(c, ctx)
	}
}
