package skipquadtree

import (
	"github.com/wqian94/dsqt/pkg/arena"
	"github.com/wqian94/dsqt/pkg/geom"
)

// nodeKind tags a node record with the role it plays: a square internal
// node of the compressed quadtree, or a point leaf that also lives on
// its level's horizontal skip-list.
type nodeKind uint8

const (
	kindPoint nodeKind = iota
	kindSquare
)

// qnode is the single record spec.md §4.2 asks for: squares use
// square/children, points use center/next, and both use down — a
// square's down is the matching square one level below (invariant 3); a
// point's down is the same point one level below, which doubles as its
// tree-traversal down link since the two coincide for points (spec.md
// §3). Keeping one struct instead of a kind/square/point sum type
// mirrors the teacher's node[K] (lowgc_quadtree/quadtree.go), which
// folds its leaf and internal representations into one struct guarded
// by an isLeaf flag.
type qnode struct {
	kind nodeKind

	square   geom.Square
	children []arena.Ref[qnode] // len == Q; square-only

	center geom.Point // point-only
	next   arena.Ref[qnode] // point-only: next point on this level, in order

	down arena.Ref[qnode]
}

func (t *Tree) get(r arena.Ref[qnode]) *qnode {
	return t.store.Get(r)
}

func (t *Tree) freeNode(r arena.Ref[qnode]) {
	t.store.Free(r)
}

func (t *Tree) newSquare(sq geom.Square) arena.Ref[qnode] {
	ref, n := t.store.Alloc()
	n.kind = kindSquare
	n.square = sq
	n.children = make([]arena.Ref[qnode], t.numQuadrants)
	return ref
}

func (t *Tree) newPoint(p geom.Point) arena.Ref[qnode] {
	ref, n := t.store.Alloc()
	n.kind = kindPoint
	n.center = p.Clone()
	return ref
}

// newSentinel allocates a level's skip-list head. It carries no
// coordinate of its own; only its next (and, once levels are stacked,
// its down) links are meaningful.
func (t *Tree) newSentinel() arena.Ref[qnode] {
	ref, n := t.store.Alloc()
	n.kind = kindPoint
	return ref
}

func (t *Tree) allChildrenEmpty(n *qnode) bool {
	for _, c := range n.children {
		if !c.IsNil() {
			return false
		}
	}
	return true
}

// soleChild reports the number of non-nil children n has and, when that
// count is exactly one, which child it is.
func (t *Tree) soleChild(n *qnode) (arena.Ref[qnode], int) {
	var only arena.Ref[qnode]
	count := 0
	for _, c := range n.children {
		if !c.IsNil() {
			count++
			only = c
		}
	}
	return only, count
}

func squaresEqual(a, b geom.Square, precision float64) bool {
	if len(a.Center) != len(b.Center) {
		return false
	}
	if !geom.PointsEqual(a.Center, b.Center, precision) {
		return false
	}
	diff := a.Length - b.Length
	if diff < 0 {
		diff = -diff
	}
	return diff <= precision
}
