package skipquadtree

import (
	"github.com/wqian94/dsqt/pkg/arena"
	"github.com/wqian94/dsqt/pkg/geom"
)

// Add inserts p into the tree. It reports false, with no error and no
// mutation, if p falls outside the tree's bounding box or if p is
// already present (spec.md §4.4's EXISTS/FAILURE outcomes are both
// non-erroneous from the caller's point of view — see spec.md §7).
func (t *Tree) Add(p geom.Point) (bool, error) {
	if err := t.checkArity(p); err != nil {
		return false, err
	}

	top := t.topLevel()
	if t.searchLevel(top.root, p) {
		return false, nil
	}
	res := t.addLevel(top.root, top.head, top.root, p)
	if res != resSuccess {
		return false, nil
	}
	t.growIfNeeded()
	return true, nil
}

// addLevel implements spec.md §4.4: descend node's square tree and
// head's skip-list to find where p belongs at this level, then either
// plant it here (ground level) or recurse one level down, first
// promoting the middle of any 3-wide gap the descent passes through so
// the 1-2-3 invariant survives the new point.
func (t *Tree) addLevel(node, head, root arena.Ref[qnode], p geom.Point) result {
	nodeNode := t.get(node)
	if !nodeNode.square.Contains(p) {
		return resFailure
	}

	parent, _, _ := t.descend(node, p)
	prev := t.levelWalk(head, p)

	rootNode := t.get(root)
	if rootNode.down.IsNil() {
		return t.promote(parent, prev, arena.Ref[qnode]{}, p)
	}

	prevNode := t.get(prev)
	lowerLeft := prevNode.down
	var lowerRight arena.Ref[qnode]
	if !prevNode.next.IsNil() {
		lowerRight = t.get(prevNode.next).down
	}

	if t.countGap(lowerLeft, lowerRight) == 3 {
		mid := t.gapMiddle(lowerLeft, lowerRight)
		midCenter := t.get(mid).center
		promRoot := t.anchorOrRoot(parent, root, midCenter)
		if res := t.promote(promRoot, prev, mid, midCenter); res == resFailure {
			return resFailure
		}
	}

	// lowerLeft (prev's down-link) is strictly before p on the level below;
	// its successor may already lie past p, so the walk starts at lowerLeft.
	return t.addLevel(t.get(parent).down, lowerLeft, rootNode.down, p)
}

// promote inserts p at the level reached from root/head, either as a
// brand-new leaf (down is nil, the ground-level case) or as the
// up-link for an already-existing lower point being promoted to close
// a 3-wide gap (down is that point's ref). root and head are anchors
// already known to be close to p, not necessarily the level's true
// root/sentinel — re-descending/re-walking from them is how spec.md
// §4.4 avoids restarting from the top on every level.
func (t *Tree) promote(root, head, down arena.Ref[qnode], p geom.Point) result {
	parent, sibling, quadrant := t.descend(root, p)
	prev := t.levelWalk(head, p)
	prevNode := t.get(prev)
	succ := prevNode.next

	if !sibling.IsNil() {
		siblingNode := t.get(sibling)
		if siblingNode.kind == kindPoint && geom.PointsEqual(siblingNode.center, p, t.precision) {
			return resExists
		}
	}

	newRef := t.newPoint(p)
	newNode := t.get(newRef)
	newNode.next = succ
	newNode.down = down

	parentNode := t.get(parent)
	if sibling.IsNil() {
		parentNode.children[quadrant] = newRef
	} else {
		containing, ok := t.buildContainingSquare(parentNode.square, parentNode.down, sibling, p)
		if !ok {
			t.freeNode(newRef)
			return resExists
		}
		containingNode := t.get(containing)
		qp := containingNode.square.Quadrant(p, t.precision)
		qs := containingNode.square.Quadrant(t.anchorCenter(sibling), t.precision)
		containingNode.children[qp] = newRef
		containingNode.children[qs] = sibling
		parentNode.children[quadrant] = containing
	}

	prevNode.next = newRef
	return resSuccess
}

func (t *Tree) anchorCenter(ref arena.Ref[qnode]) geom.Point {
	n := t.get(ref)
	if n.kind == kindPoint {
		return n.center
	}
	return n.square.Center
}

// buildContainingSquare implements spec.md §4.4 step 6: shrink a new
// square, starting from parentSquare, one quadrant at a time until p
// and sibling (a point or a non-containing square) land in different
// quadrants of it, then give the new square its own down link by
// searching parentDown's subtree for the matching square (invariant 3).
//
// If shrinking would take the square below the tolerance at which two
// points could ever be told apart, the insert is reported as a
// duplicate instead of looping forever — spec.md §9's resolution of the
// source's unguarded promote loop.
func (t *Tree) buildContainingSquare(parentSquare geom.Square, parentDown, sibling arena.Ref[qnode], p geom.Point) (arena.Ref[qnode], bool) {
	anchor := t.anchorCenter(sibling)

	cur := parentSquare
	for {
		if cur.Length <= t.precision {
			return arena.Ref[qnode]{}, false
		}
		q := cur.Quadrant(p, t.precision)
		cur = geom.NewSquare(cur.ChildCenter(q), cur.ChildLength())
		if cur.Quadrant(p, t.precision) != cur.Quadrant(anchor, t.precision) {
			break
		}
	}

	ref := t.newSquare(cur)
	t.get(ref).down = t.findMatchingDown(parentDown, cur)
	return ref, true
}
