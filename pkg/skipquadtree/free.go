package skipquadtree

import "github.com/wqian94/dsqt/pkg/arena"

// FreeResult reports what Free released. Clean mirrors the original
// QuadtreeFreeResult shape (spec.md §6); a strictly serial tree has no
// deferred/RLU updates, so every freed node is "clean" by definition and
// Clean always equals Total.
type FreeResult struct {
	Total  int
	Clean  int
	Leaf   int
	Levels int
}

// Free releases every node owned by the tree. The tree must not be used
// afterward. Free has no partial-failure mode: each level's subtree is
// released independently of the others, so nothing here depends on a
// previous level having freed cleanly.
func (t *Tree) Free() FreeResult {
	var res FreeResult
	for _, lvl := range t.levels {
		res.Levels++
		t.freeSubtree(lvl.root, &res)
		t.freeNode(lvl.head)
		res.Total++
		res.Clean++
	}
	t.levels = nil
	return res
}

// freeSubtree frees every node reachable from ref in post-order: a
// square's children first, then the square itself. Points are reached
// only this way, never through the separate skip-list chain, so no node
// is freed twice.
func (t *Tree) freeSubtree(ref arena.Ref[qnode], res *FreeResult) {
	if ref.IsNil() {
		return
	}
	n := t.get(ref)
	if n.kind == kindSquare {
		for _, c := range n.children {
			t.freeSubtree(c, res)
		}
		t.freeNode(ref)
		res.Total++
		res.Clean++
		return
	}
	t.freeNode(ref)
	res.Total++
	res.Clean++
	res.Leaf++
}
