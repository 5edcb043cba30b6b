package vtree

import "testing"

func TestPatchPropsFullOrdersByDeclaredOrderWithValueLast(t *testing.T) {
	h := newFakeHost()
	r := NewRenderer(h)
	root := &fakeNode{kind: "root"}

	old := Elem("input", []Prop{{"min", "0"}, {"max", "10"}, {"value", "5"}})
	next := Elem("input", []Prop{{"min", "1"}, {"max", "11"}, {"value", "6"}})

	r.Render(old, root)
	h.propLog = nil
	r.Render(next, root)

	if len(h.propLog) != 3 {
		t.Fatalf("propLog = %v, want 3 entries", h.propLog)
	}
	wantOrder := []string{"min", "max", "value"}
	for i, key := range wantOrder {
		if h.propLog[i].key != key {
			t.Fatalf("propLog[%d].key = %q, want %q (full order was %v)", i, h.propLog[i].key, key, h.propLog)
		}
	}
}

func TestPatchPropsAlwaysPatchesValueEvenWhenUnchanged(t *testing.T) {
	h := newFakeHost()
	r := NewRenderer(h)
	root := &fakeNode{kind: "root"}

	old := Elem("input", []Prop{{"value", "5"}})
	next := Elem("input", []Prop{{"value", "5"}})

	r.Render(old, root)
	h.propLog = nil
	r.Render(next, root)

	if len(h.propLog) != 1 || h.propLog[0].key != "value" {
		t.Fatalf("propLog = %v, want exactly one unconditional \"value\" patch", h.propLog)
	}
}

func TestPatchPropsRemovedKeyPatchesToNilFirst(t *testing.T) {
	h := newFakeHost()
	r := NewRenderer(h)
	root := &fakeNode{kind: "root"}

	old := Elem("div", []Prop{{"title", "hi"}, {"class", "a"}})
	next := Elem("div", []Prop{{"class", "a"}})

	r.Render(old, root)
	h.propLog = nil
	r.Render(next, root)

	if len(h.propLog) == 0 || h.propLog[0].key != "title" || h.propLog[0].next != nil {
		t.Fatalf("propLog = %v, want the removed \"title\" key patched to nil first", h.propLog)
	}
}

func TestElemSpecialCasesKeyProp(t *testing.T) {
	n := Elem("li", []Prop{{"key", 42}, {"class", "x"}})
	if n.Key != 42 {
		t.Fatalf("n.Key = %v, want 42", n.Key)
	}
	if _, ok := n.Props["key"]; ok {
		t.Fatalf("\"key\" leaked into Props: %v", n.Props)
	}
	if len(n.PropOrder) != 1 || n.PropOrder[0] != "class" {
		t.Fatalf("PropOrder = %v, want [\"class\"]", n.PropOrder)
	}
}

func TestSameTypeComparesKindTagAndKey(t *testing.T) {
	a := Elem("div", nil).Keyed(1)
	b := Elem("div", nil).Keyed(1)
	c := Elem("div", nil).Keyed(2)
	d := Elem("span", nil).Keyed(1)
	e := Text("x")

	if !SameType(a, b) {
		t.Fatalf("SameType(a,b) = false, want true (same kind/tag/key)")
	}
	if SameType(a, c) {
		t.Fatalf("SameType(a,c) = true, want false (different key)")
	}
	if SameType(a, d) {
		t.Fatalf("SameType(a,d) = true, want false (different tag)")
	}
	if SameType(a, e) {
		t.Fatalf("SameType(a,e) = true, want false (different kind)")
	}
	if !SameType(nil, nil) {
		t.Fatalf("SameType(nil,nil) = false, want true")
	}
	if SameType(a, nil) || SameType(nil, a) {
		t.Fatalf("SameType with exactly one nil side should be false")
	}
}

func TestPatchMismatchedTypeUnmountsAndRemounts(t *testing.T) {
	h := newFakeHost()
	r := NewRenderer(h)
	root := &fakeNode{kind: "root"}

	r.Render(Elem("div", nil, Text("a")), root)
	if h.creates != 2 { // <div> + text
		t.Fatalf("creates after first mount = %d, want 2", h.creates)
	}

	r.Render(Elem("span", nil, Text("a")), root) // different tag: same-type fails
	if h.removes == 0 {
		t.Fatalf("expected the mismatched <div> to be unmounted (removes=%d)", h.removes)
	}
	if root.children[0].tag != "span" {
		t.Fatalf("root.children[0].tag = %q, want %q", root.children[0].tag, "span")
	}
}

func TestPatchBailClearsDynamicChildrenAndForcesFullDiff(t *testing.T) {
	h := newFakeHost()
	r := NewRenderer(h)
	root := &fakeNode{kind: "root"}

	old := Elem("div", nil, Text("a"), Text("b"))
	r.Render(old, root)

	next := Elem("div", nil, Text("x"))
	next.PatchFlag = PatchBail
	next.DynamicChildren = []*Node{Text("stale")}

	r.Render(next, root)

	if next.DynamicChildren != nil {
		t.Fatalf("DynamicChildren = %v, want nil after a bailed patch", next.DynamicChildren)
	}
	div := root.children[0]
	if len(div.children) != 1 || div.children[0].text != "x" {
		t.Fatalf("div children = %v, want a single text node \"x\"", div.children)
	}
}
