package vtree

import (
	"fmt"

	"github.com/vango-dev/reactive-core/host"
)

// fakeNode is a minimal in-memory stand-in for a host-side DOM node: just
// enough tree structure (parent/children, a tag or text payload, and a
// recorded prop set) for tests to assert what the patch engine actually
// did, without depending on any real rendering backend.
type fakeNode struct {
	id       string
	kind     string // "el", "text", "comment"
	tag      string
	text     string
	props    map[string]any
	parent   *fakeNode
	children []*fakeNode
}

// fakeHost implements host.Capabilities and host.OptionalCapabilities over
// a tree of fakeNodes, modeling real insertBefore-with-move semantics: an
// Insert of a node that's already attached elsewhere first detaches it.
type fakeHost struct {
	seq     int
	creates int
	removes int
	inserts int

	propLog []propCall
}

type propCall struct {
	key        string
	prev, next any
}

func newFakeHost() *fakeHost { return &fakeHost{} }

func (h *fakeHost) nextID(prefix string) string {
	h.seq++
	return fmt.Sprintf("%s-%d", prefix, h.seq)
}

func (h *fakeHost) CreateElement(tag, namespace string, isCustomized bool, props map[string]any) host.Node {
	h.creates++
	return &fakeNode{id: h.nextID("el"), kind: "el", tag: tag}
}

func (h *fakeHost) CreateText(s string) host.Node {
	h.creates++
	return &fakeNode{id: h.nextID("text"), kind: "text", text: s}
}

func (h *fakeHost) CreateComment(s string) host.Node {
	h.creates++
	return &fakeNode{id: h.nextID("comment"), kind: "comment", text: s}
}

func (h *fakeHost) SetText(node host.Node, s string) {
	node.(*fakeNode).text = s
}

func (h *fakeHost) SetElementText(el host.Node, s string) {
	fn := el.(*fakeNode)
	for _, c := range fn.children {
		c.parent = nil
	}
	fn.children = nil
	fn.text = s
}

func (h *fakeHost) PatchProp(el host.Node, key string, prev, next any, namespace string, parentComponent any) {
	h.propLog = append(h.propLog, propCall{key: key, prev: prev, next: next})
}

func (h *fakeHost) ParentNode(n host.Node) host.Node {
	fn := n.(*fakeNode)
	if fn.parent == nil {
		return nil
	}
	return fn.parent
}

func (h *fakeHost) NextSibling(n host.Node) host.Node {
	fn := n.(*fakeNode)
	if fn.parent == nil {
		return nil
	}
	sibs := fn.parent.children
	for i, c := range sibs {
		if c == fn {
			if i+1 < len(sibs) {
				return sibs[i+1]
			}
			return nil
		}
	}
	return nil
}

func (h *fakeHost) Insert(node, parent, anchor host.Node) {
	h.inserts++
	n := node.(*fakeNode)
	p := parent.(*fakeNode)
	if n.parent != nil {
		detach(n.parent, n)
	}
	idx := len(p.children)
	if anchor != nil {
		a := anchor.(*fakeNode)
		if i := indexOf(p.children, a); i >= 0 {
			idx = i
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = n
	n.parent = p
}

func (h *fakeHost) Remove(node host.Node) {
	h.removes++
	n := node.(*fakeNode)
	if n.parent != nil {
		detach(n.parent, n)
		n.parent = nil
	}
}

func (h *fakeHost) QuerySelector(selector string) host.Node { return nil }
func (h *fakeHost) SetScopeID(el host.Node, id string)       {}
func (h *fakeHost) CloneNode(n host.Node) host.Node          { return n }
func (h *fakeHost) InsertStaticContent(htmlStr string, parent, anchor host.Node, namespace string, start, end host.Node) (host.Node, host.Node) {
	first := &fakeNode{id: h.nextID("static"), kind: "static", text: htmlStr}
	h.Insert(first, parent, anchor)
	return first, first
}

func detach(p, n *fakeNode) {
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

func indexOf(s []*fakeNode, n *fakeNode) int {
	for i, c := range s {
		if c == n {
			return i
		}
	}
	return -1
}
