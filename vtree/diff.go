package vtree

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/vango-dev/reactive-core/host"
)

// DiffChildren implements §4.10: three branches on new children's shape
// crossed with old's, with the keyed/unkeyed split handled by
// diffUnkeyed/diffKeyed when both sides are arrays.
func DiffChildren(old, next *Node, container host.Node, parentAnchor host.Node, ctx Context) {
	oldIsArray := old.IsArrayChildren()
	newIsArray := next.IsArrayChildren()
	newIsText := !newIsArray && next.Shape.Has(ShapeTextChildren)

	switch {
	case newIsText:
		if oldIsArray {
			unmountChildren(old.Children, ctx)
		}
		if old.Text != next.Text {
			ctx.Host.SetElementText(container, next.Text)
		}
	case newIsArray && !oldIsArray:
		if old.Text != "" {
			ctx.Host.SetElementText(container, "")
		}
		mountChildren(next.Children, container, parentAnchor, ctx)
	case newIsArray && oldIsArray:
		if isKeyedSet(old.Children) && isKeyedSet(next.Children) {
			diffKeyed(old.Children, next.Children, container, parentAnchor, ctx)
		} else {
			diffUnkeyed(old.Children, next.Children, container, parentAnchor, ctx)
		}
	default:
		unmountChildren(old.Children, ctx)
		if old.Text != "" {
			ctx.Host.SetElementText(container, "")
		}
	}
}

func isKeyedSet(children []*Node) bool {
	if len(children) == 0 {
		return false
	}
	for _, c := range children {
		if c.Key == nil {
			return false
		}
	}
	return true
}

func unmountChildren(children []*Node, ctx Context) {
	for _, c := range children {
		Unmount(c, ctx)
	}
}

// diffUnkeyed patches the overlapping positional prefix and then mounts or
// unmounts the non-overlapping tail.
func diffUnkeyed(old, next []*Node, container host.Node, anchor host.Node, ctx Context) {
	n := len(old)
	if len(next) < n {
		n = len(next)
	}
	for i := 0; i < n; i++ {
		Patch(old[i], next[i], container, anchorFor(old, i+1, anchor), ctx)
	}
	if len(next) > len(old) {
		for i := len(old); i < len(next); i++ {
			Patch(nil, next[i], container, anchor, ctx)
		}
	} else {
		for i := len(next); i < len(old); i++ {
			Unmount(old[i], ctx)
		}
	}
}

func anchorFor(nodes []*Node, idx int, fallback host.Node) host.Node {
	if idx < len(nodes) && nodes[idx] != nil {
		if el := firstHostNode(nodes[idx]); el != nil {
			return el
		}
	}
	return fallback
}

// diffKeyed implements §4.10.1: head/tail trim of same-type runs, then the
// middle section is resolved via a key→newIndex map and a longest-
// increasing-subsequence pass that minimizes host moves.
func diffKeyed(a, b []*Node, container host.Node, parentAnchor host.Node, ctx Context) {
	i, e1, e2 := 0, len(a)-1, len(b)-1

	for i <= e1 && i <= e2 && SameType(a[i], b[i]) {
		Patch(a[i], b[i], container, anchorFor(b, i+1, parentAnchor), ctx)
		i++
	}

	for e1 >= i && e2 >= i && SameType(a[e1], b[e2]) {
		Patch(a[e1], b[e2], container, anchorFor(b, e2+1, parentAnchor), ctx)
		e1--
		e2--
	}

	switch {
	case i > e1:
		if i <= e2 {
			anchor := anchorFor(b, e2+1, parentAnchor)
			for j := i; j <= e2; j++ {
				Patch(nil, b[j], container, anchor, ctx)
			}
		}
		return
	case i > e2:
		for j := i; j <= e1; j++ {
			Unmount(a[j], ctx)
		}
		return
	}

	diffKeyedMiddle(a, b, i, e1, e2, container, parentAnchor, ctx)
}

func diffKeyedMiddle(a, b []*Node, i, e1, e2 int, container host.Node, parentAnchor host.Node, ctx Context) {
	s1, s2 := i, i
	newLen := e2 - s2 + 1

	keyToNewIndex := make(map[uint64]int, newLen)
	seen := make(map[uint64]bool, newLen)
	for j := s2; j <= e2; j++ {
		h := hashKey(b[j].Key)
		if seen[h] {
			ctx.warn("vtree: duplicate key %v in keyed child list", b[j].Key)
			continue
		}
		seen[h] = true
		keyToNewIndex[h] = j
	}

	newIndexToOldIndex := make([]int, newLen)
	moved := false
	maxNewIndexSoFar := -1

	for oldIdx := s1; oldIdx <= e1; oldIdx++ {
		old := a[oldIdx]
		newIdx, found := keyToNewIndex[hashKey(old.Key)]
		if !found {
			Unmount(old, ctx)
			continue
		}
		newIndexToOldIndex[newIdx-s2] = oldIdx + 1
		if newIdx >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIdx
		} else {
			moved = true
		}
		Patch(old, b[newIdx], container, nil, ctx)
	}

	var increasing []int
	if moved {
		increasing = longestIncreasingSubsequence(newIndexToOldIndex)
	}

	lisPtr := len(increasing) - 1
	for j := newLen - 1; j >= 0; j-- {
		newIdx := s2 + j
		anchor := anchorFor(b, newIdx+1, parentAnchor)
		if newIndexToOldIndex[j] == 0 {
			Patch(nil, b[newIdx], container, anchor, ctx)
			continue
		}
		if !moved {
			continue
		}
		if lisPtr >= 0 && j == increasing[lisPtr] {
			lisPtr--
			continue
		}
		ctx.Host.Insert(b[newIdx].El, container, anchor)
	}
}

func hashKey(key any) uint64 {
	if key == nil {
		return 0
	}
	switch v := key.(type) {
	case string:
		return xxhash.Sum64String(v)
	case int:
		return xxhash.Sum64String(fmt.Sprintf("i:%d", v))
	case int64:
		return xxhash.Sum64String(fmt.Sprintf("i64:%d", v))
	default:
		return xxhash.Sum64String(fmt.Sprintf("%v:%T", v, v))
	}
}

// longestIncreasingSubsequence returns, for arr (with 0 meaning "no
// mapping, always an insert and thus never part of the subsequence"), the
// indices (not values) forming a longest strictly-increasing-by-value
// subsequence, reconstructed via the patience-sort predecessor chain
// (§4.10.1): O(n log n).
func longestIncreasingSubsequence(arr []int) []int {
	n := len(arr)
	if n == 0 {
		return nil
	}
	tails := make([]int, 0, n)   // tails[k] = index into arr of the smallest tail value of an increasing run of length k+1
	predecessors := make([]int, n)
	for i := range predecessors {
		predecessors[i] = -1
	}

	for i := 0; i < n; i++ {
		v := arr[i]
		if v == 0 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if arr[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			predecessors[i] = tails[lo-1]
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	result := make([]int, len(tails))
	k := len(tails)
	if k == 0 {
		return nil
	}
	cur := tails[k-1]
	for k > 0 {
		k--
		result[k] = cur
		cur = predecessors[cur]
	}
	return result
}
