package skipquadtree

import (
	"github.com/wqian94/dsqt/pkg/arena"
	"github.com/wqian94/dsqt/pkg/geom"
)

// Remove deletes p from the tree, reporting false with no mutation if p
// was never a member (spec.md §4.5's NONEXISTENT outcome).
func (t *Tree) Remove(p geom.Point) (bool, error) {
	if err := t.checkArity(p); err != nil {
		return false, err
	}

	top := t.topLevel()
	if !t.searchLevel(top.root, p) {
		return false, nil
	}
	res := t.removeLevel(top.root, top.head, p)
	if res != resSuccess {
		return false, nil
	}
	t.shrinkIfNeeded()
	return true, nil
}

// removeLevel implements spec.md §4.5. At the ground level it demotes p
// directly. Above ground, the descent toward p brackets a gap on the
// level below between two of this level's anchors (prev, next); if
// removing p would leave that gap empty, one of the bracketing anchors
// is demoted first (merging it into the neighbouring gap, with a
// compensating promotion out of that neighbour if needed) so invariant
// 4 survives once the recursion actually removes p.
func (t *Tree) removeLevel(root, head arena.Ref[qnode], p geom.Point) result {
	rootNode := t.get(root)
	if !rootNode.square.Contains(p) {
		return resNonexistent
	}

	parent, _, _ := t.descend(root, p)
	prevprev, prev, next, _ := t.levelWindow(head, p)

	if rootNode.down.IsNil() {
		if next.IsNil() || !geom.PointsEqual(t.get(next).center, p, t.precision) {
			return resNonexistent
		}
		grandparent, _, _ := t.descend2(root, p)
		anchor := grandparent
		if anchor.IsNil() {
			anchor = parent
		}
		return t.demote(anchor, prev, p)
	}

	prevDown := t.get(prev).down
	var nextDown arena.Ref[qnode]
	if !next.IsNil() {
		nextDown = t.get(next).down
	}
	midGap := t.countGap(prevDown, nextDown)

	if midGap == 1 {
		switch {
		case prevprev.IsNil() && next.IsNil():
			// This level has no points of its own (invariant 6
			// guarantees this for the top level reached mid-recursion);
			// with no anchor pair bracketing the gap here, there is
			// nothing to rebalance before descending.
		case prevprev.IsNil():
			// No anchor left of prev is at hand, so next is dropped
			// instead. (In the default case mergeLeft demotes prev
			// itself; prevDown was captured above, so it stays valid.)
			t.mergeRight(root, parent, prev, next, nextDown)
		default:
			t.mergeLeft(root, parent, prevprev, prev)
		}
	}

	// prevDown is the anchor spec.md §4.5's remove_level threads down as
	// grand_head: prev's center is strictly less than p (or prev is the
	// sentinel), and down-links preserve that ordering, so prevDown is
	// always strictly before p on the level below. Using prevDown.next
	// instead would land on p's own node whenever p is itself the
	// leftmost point at the level below, handing levelWindow a head that
	// equals p and silently corrupting the rest of the descent.
	return t.removeLevel(rootNode.down, prevDown, p)
}

// mergeRight handles spec.md §4.5's first-gap case: prevprev is nil, so
// prev is the head this level was entered from (the level's sentinel, or
// the down-link of the anchor before p on the level above) and no anchor
// to its left is at hand. The way to absorb
// the soon-to-be-empty gap is to drop next, merging it with the gap to
// next's right. If that right-hand gap is more than a single element,
// its leading element is promoted first so the merged result still fits
// in {1,2,3}. Callers only reach here when next is non-nil — removeLevel
// treats prevprev-and-next both nil (this level has no points of its
// own) as nothing to rebalance, so mergeRight never has to drop a
// nonexistent anchor.
func (t *Tree) mergeRight(root, parent, prev, next, nextDown arena.Ref[qnode]) {
	nextNode := t.get(next)
	var afterNextDown arena.Ref[qnode]
	if !nextNode.next.IsNil() {
		afterNextDown = t.get(nextNode.next).down
	}
	if t.countGap(nextDown, afterNextDown) > 1 {
		leading := t.get(nextDown).next
		leadingCenter := t.get(leading).center
		promRoot := t.anchorOrRoot(parent, root, leadingCenter)
		t.promote(promRoot, next, leading, leadingCenter)
	}

	// demote always re-descends from the level's true root rather than
	// the (possibly much closer) parent anchor used for the promotion
	// above: collapse needs the real grandparent of the point being
	// demoted, and starting a shortened descend from an arbitrary
	// ancestor can make a real grandparent invisible to it.
	nextCenter := nextNode.center
	t.demote(root, prev, nextCenter)
}

// mergeLeft handles the non-first-gap case: prevprev exists, so the
// soon-to-be-empty gap is absorbed by dropping prev instead, merging it
// leftward with the gap between prevprev and prev. The same compensating
// promotion, mirrored, keeps that merge within {1,2,3}.
func (t *Tree) mergeLeft(root, parent, prevprev, prev arena.Ref[qnode]) {
	prevprevNode := t.get(prevprev)
	prevNode := t.get(prev)
	if t.countGap(prevprevNode.down, prevNode.down) > 1 {
		last := t.lastBefore(prevprevNode.down, prevNode.down)
		lastCenter := t.get(last).center
		promRoot := t.anchorOrRoot(parent, root, lastCenter)
		t.promote(promRoot, prevprev, last, lastCenter)
	}

	prevCenter := prevNode.center
	t.demote(root, prevprev, prevCenter)
}

// demote removes the point equal to p from the level reached from
// root/head, freeing its node and, if that empties its parent square
// down to a single remaining child, collapsing that square into its
// grandparent (spec.md §4.5's collapse rule). root is an anchor already
// known to be near p — typically p's grandparent, so the descent that
// finds parent/node here also finds the grandparent collapse needs.
func (t *Tree) demote(root, head arena.Ref[qnode], p geom.Point) result {
	grandparent, parent, node := t.descend2(root, p)
	if node.IsNil() {
		return resNonexistent
	}
	nodeNode := t.get(node)
	if nodeNode.kind != kindPoint || !geom.PointsEqual(nodeNode.center, p, t.precision) {
		return resNonexistent
	}

	prev := t.levelWalk(head, p)
	prevNode := t.get(prev)
	if prevNode.next.IsNil() || !prevNode.next.Equal(node) {
		return resFailure
	}

	parentNode := t.get(parent)
	quadrant := parentNode.square.Quadrant(p, t.precision)
	parentNode.children[quadrant] = arena.Ref[qnode]{}

	if !grandparent.IsNil() {
		if remaining, count := t.soleChild(parentNode); count == 1 {
			grandparentNode := t.get(grandparent)
			pq := grandparentNode.square.Quadrant(parentNode.square.Center, t.precision)
			grandparentNode.children[pq] = remaining
			t.freeNode(parent)
		}
	}

	prevNode.next = nodeNode.next
	t.freeNode(node)
	return resSuccess
}
