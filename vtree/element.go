package vtree

import "github.com/vango-dev/reactive-core/host"

// reservedProps never reach host.Capabilities.PatchProp: they're consumed
// by the engine itself (identity/diffing), not by the render target.
var reservedProps = map[string]bool{
	"key": true,
	"ref": true,
}

func patchElement(old, next *Node, container host.Node, anchor host.Node, ctx Context) {
	if old == nil {
		mountElement(next, container, anchor, ctx)
		return
	}
	next.El = old.El
	updateElement(old, next, ctx)
}

func mountElement(n *Node, container host.Node, anchor host.Node, ctx Context) {
	el := ctx.Host.CreateElement(n.Tag, ctx.Namespace, false, n.Props)
	n.El = el

	if n.Shape.Has(ShapeTextChildren) {
		ctx.Host.SetElementText(el, n.Text)
	} else if n.IsArrayChildren() {
		for _, c := range n.Children {
			Patch(nil, c, el, nil, ctx)
		}
	}

	patchPropsFull(el, nil, n.Props, n.PropOrder, ctx)

	if oc, ok := ctx.optional(); ok {
		oc.SetScopeID(el, "")
	}

	ctx.Host.Insert(el, container, anchor)
}

func updateElement(old, next *Node, ctx Context) {
	el := next.El

	flag := next.PatchFlag
	switch {
	case flag.Has(PatchFullProps):
		patchPropsFull(el, old.Props, next.Props, next.PropOrder, ctx)
	case flag > 0:
		if flag.Has(PatchClass) {
			if old.Props["class"] != next.Props["class"] {
				ctx.Host.PatchProp(el, "class", old.Props["class"], next.Props["class"], ctx.Namespace, ctx.ParentComponent)
			}
		}
		if flag.Has(PatchStyle) {
			ctx.Host.PatchProp(el, "style", old.Props["style"], next.Props["style"], ctx.Namespace, ctx.ParentComponent)
		}
		if flag.Has(PatchProps) {
			for _, key := range next.DynamicProps {
				if reservedProps[key] || key == "value" {
					continue
				}
				ov, nv := old.Props[key], next.Props[key]
				if ov != nv {
					ctx.Host.PatchProp(el, key, ov, nv, ctx.Namespace, ctx.ParentComponent)
				}
			}
			if nv, ok := next.Props["value"]; ok {
				ctx.Host.PatchProp(el, "value", old.Props["value"], nv, ctx.Namespace, ctx.ParentComponent)
			}
		}
		if flag.Has(PatchText) && old.Text != next.Text {
			ctx.Host.SetElementText(el, next.Text)
		}
	}

	// Children are diffed independently of the prop patchFlag branches
	// above: a block with DynamicChildren gets the fast per-slot walk, and
	// anything else (including a PatchBail node, which cleared its own
	// DynamicChildren and Optimized flag in Patch) falls back to a full
	// diff, regardless of what the prop-side flags said.
	if next.DynamicChildren != nil {
		patchBlockChildren(old.DynamicChildren, next.DynamicChildren, el, ctx)
	} else if !ctx.Optimized || flag <= 0 {
		DiffChildren(old, next, el, nil, ctx)
		if flag <= 0 {
			patchPropsFull(el, old.Props, next.Props, next.PropOrder, ctx)
		}
	}
}

// patchPropsFull implements §4.9.2: removed keys patch to nil first, every
// changed key patches in declared order, and "value" is deferred to last
// regardless of where it appears in that order so host properties with
// range-like constraints (min/max) land before it. order is the node's
// PropOrder; when empty (caller built Props as a plain map via ElemM),
// iteration falls back to map order, which is unspecified but still
// defers "value" to last.
func patchPropsFull(el host.Node, old, next Props, order []string, ctx Context) {
	for key := range old {
		if reservedProps[key] {
			continue
		}
		if _, ok := next[key]; !ok {
			ctx.Host.PatchProp(el, key, old[key], nil, ctx.Namespace, ctx.ParentComponent)
		}
	}

	keys := order
	if len(keys) == 0 {
		keys = make([]string, 0, len(next))
		for key := range next {
			keys = append(keys, key)
		}
	}

	var hasValue bool
	var nextValue any
	for _, key := range keys {
		if reservedProps[key] {
			continue
		}
		nv, ok := next[key]
		if !ok {
			continue
		}
		if key == "value" {
			hasValue = true
			nextValue = nv
			continue
		}
		ov := old[key]
		if ov != nv {
			ctx.Host.PatchProp(el, key, ov, nv, ctx.Namespace, ctx.ParentComponent)
		}
	}
	if hasValue {
		ctx.Host.PatchProp(el, "value", old["value"], nextValue, ctx.Namespace, ctx.ParentComponent)
	}
}
