package vtree

import "fmt"

// Elem builds an element Node with the given tag, declared-order props,
// and children.
func Elem(tag string, props []Prop, children ...*Node) *Node {
	shape := ShapeElement
	if len(children) > 0 {
		shape |= ShapeArrayChildren
	}
	n := &Node{Kind: KindElement, Tag: tag, Children: children, Shape: shape}
	if len(props) > 0 {
		n.Props = make(Props, len(props))
		n.PropOrder = make([]string, 0, len(props))
		for _, p := range props {
			if p.Key == "key" {
				n.Key = p.Value
				continue
			}
			n.Props[p.Key] = p.Value
			n.PropOrder = append(n.PropOrder, p.Key)
		}
	}
	return n
}

// ElemM builds an element Node from an unordered Props map, for callers
// that don't care about prop-patch ordering (most hosts don't); the prop
// differ falls back to Go's map iteration order, which is unspecified and
// can differ between patches, when PropOrder is empty.
func ElemM(tag string, props Props, children ...*Node) *Node {
	shape := ShapeElement
	if len(children) > 0 {
		shape |= ShapeArrayChildren
	}
	return &Node{Kind: KindElement, Tag: tag, Props: props, Children: children, Shape: shape}
}

// Text builds a text Node.
func Text(content string) *Node {
	return &Node{Kind: KindText, Text: content}
}

// Textf builds a text Node from a format string, the variadic convenience
// the source project's own vdom.Textf offers.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Comment builds a comment Node. Comments are not diffed after mount
// (§4.9): once created, their content is fixed.
func Comment(content string) *Node {
	return &Node{Kind: KindComment, Text: content}
}

// Fragment groups children under a single anchor pair without a host
// wrapper element.
func Fragment(children ...*Node) *Node {
	return &Node{Kind: KindFragment, Children: children, Shape: ShapeArrayChildren}
}

// Keyed sets n's diffing key and returns n, for inline construction:
//
//	Elem("li", nil, Text(item.Label)).Keyed(item.ID)
func (n *Node) Keyed(key any) *Node {
	n.Key = key
	return n
}
