package skipquadtree

import (
	"github.com/wqian94/dsqt/pkg/arena"
	"github.com/wqian94/dsqt/pkg/geom"
)

// descend walks the square tree rooted at start, following the quadrant
// of p at each square, until it reaches either an empty child slot, a
// point, or a square that no longer contains p (spec.md §4.3's
// search_level rule, reused verbatim by every other operation that
// needs to locate p's slot). It returns the last square visited
// (parent) and whatever occupies p's quadrant there (slot may be nil).
func (t *Tree) descend(start arena.Ref[qnode], p geom.Point) (parent, slot arena.Ref[qnode], quadrant int) {
	cur := start
	for {
		curNode := t.get(cur)
		q := curNode.square.Quadrant(p, t.precision)
		child := curNode.children[q]
		if child.IsNil() {
			return cur, child, q
		}
		childNode := t.get(child)
		if childNode.kind == kindPoint {
			return cur, child, q
		}
		if !childNode.square.Contains(p) {
			return cur, child, q
		}
		cur = child
	}
}

// descend2 is descend but keeps the square visited immediately before
// parent too, needed wherever a single-point removal may have to
// collapse parent into grandparent (spec.md §4.5).
func (t *Tree) descend2(start arena.Ref[qnode], p geom.Point) (grandparent, parent, node arena.Ref[qnode]) {
	var prevSquare arena.Ref[qnode]
	cur := start
	for {
		curNode := t.get(cur)
		q := curNode.square.Quadrant(p, t.precision)
		child := curNode.children[q]
		if child.IsNil() {
			return prevSquare, cur, child
		}
		childNode := t.get(child)
		if childNode.kind == kindPoint {
			return prevSquare, cur, child
		}
		if !childNode.square.Contains(p) {
			return prevSquare, cur, child
		}
		prevSquare = cur
		cur = child
	}
}

// levelWalk walks a level's skip-list starting at head until head.next
// would overshoot p under point comparison, returning the last node
// visited — the point p would be inserted (or already sits) right after
// it. head need not be the level's sentinel; callers that already know
// a nearby node pass that instead, saving a walk from the start.
func (t *Tree) levelWalk(head arena.Ref[qnode], p geom.Point) arena.Ref[qnode] {
	cur := head
	for {
		curNode := t.get(cur)
		next := curNode.next
		if next.IsNil() {
			return cur
		}
		if geom.ComparePoints(t.get(next).center, p, t.precision) >= 0 {
			return cur
		}
		cur = next
	}
}

// levelWindow is levelWalk but also returns the node before prev and the
// node after next, the four-node window spec.md §4.5 needs to decide
// whether a gap rebalance is required before a deletion descends.
func (t *Tree) levelWindow(head arena.Ref[qnode], p geom.Point) (prevprev, prev, next, nextnext arena.Ref[qnode]) {
	var pprev arena.Ref[qnode]
	pcur := head
	for {
		curNode := t.get(pcur)
		nxt := curNode.next
		if nxt.IsNil() || geom.ComparePoints(t.get(nxt).center, p, t.precision) >= 0 {
			prevprev = pprev
			prev = pcur
			next = nxt
			if !nxt.IsNil() {
				nextnext = t.get(nxt).next
			}
			return
		}
		pprev = pcur
		pcur = nxt
	}
}

// countGap counts the points strictly between left (exclusive) and
// right (exclusive); right may be nil, meaning "to the end of the
// list".
func (t *Tree) countGap(left, right arena.Ref[qnode]) int {
	count := 0
	cur := t.get(left).next
	for !cur.IsNil() && !cur.Equal(right) {
		count++
		cur = t.get(cur).next
	}
	return count
}

// gapMiddle returns the second of exactly three points strictly between
// left and right — the element spec.md §4.4's 1-2-3 rule promotes when
// a gap grows to width 3.
func (t *Tree) gapMiddle(left, right arena.Ref[qnode]) arena.Ref[qnode] {
	first := t.get(left).next
	return t.get(first).next
}

// lastBefore returns the last point strictly between left (exclusive)
// and right (exclusive); right may be nil.
func (t *Tree) lastBefore(left, right arena.Ref[qnode]) arena.Ref[qnode] {
	cur := left
	next := t.get(cur).next
	for !next.IsNil() && !next.Equal(right) {
		cur = next
		next = t.get(cur).next
	}
	return cur
}

// findMatchingDown walks the square subtree rooted at parentDown (a
// level-below square, or nil) looking for the square with the exact
// (center, length) of target — the down link a newly-created containing
// square must adopt per invariant 3 and spec.md §4.4 step 6. A non-nil
// parentDown is guaranteed, by that same invariant, to contain a
// matching square somewhere along target's quadrant path.
func (t *Tree) findMatchingDown(parentDown arena.Ref[qnode], target geom.Square) arena.Ref[qnode] {
	if parentDown.IsNil() {
		return arena.Ref[qnode]{}
	}
	cur := parentDown
	for {
		curNode := t.get(cur)
		if squaresEqual(curNode.square, target, t.precision) {
			return cur
		}
		q := curNode.square.Quadrant(target.Center, t.precision)
		child := curNode.children[q]
		if child.IsNil() || t.get(child).kind != kindSquare {
			panic("skipquadtree: invariant 3 violated — no matching down square found")
		}
		cur = child
	}
}
