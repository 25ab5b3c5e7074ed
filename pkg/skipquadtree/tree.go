// Package skipquadtree implements a deterministic compressed skip
// quadtree: a stack of compressed quadtrees, one per skip-list level,
// whose point membership is governed by a deterministic 1-2-3 rule
// instead of the coin-flip heights of a randomized skip list.
//
// The public surface is search/add/remove/free (Search/Add/Remove/Free
// below), matching spec.md §6. Everything else in this package is the
// level-stacking, promotion and demotion machinery that keeps the
// structure's invariants intact across mutations.
package skipquadtree

import (
	"fmt"

	"github.com/wqian94/dsqt/pkg/arena"
	"github.com/wqian94/dsqt/pkg/geom"
)

// result is the internal sentinel outcome a mutating helper reports;
// only the public Tree methods translate it to the bool/error surface
// described in spec.md §6-§7.
type result int

const (
	resSuccess result = iota
	resExists
	resNonexistent
	resFailure
)

// level is one layer of the skip list: root is the square covering the
// whole bounding box at this layer, head is the sentinel entry into the
// layer's horizontal point list.
type level struct {
	root arena.Ref[qnode]
	head arena.Ref[qnode]
}

// Tree is a deterministic compressed skip quadtree over D-dimensional
// points drawn from a fixed axis-aligned bounding box. D and precision
// are fixed at construction time, mirroring how the teacher's
// NewQuadTree derives its shape from the constructor argument rather
// than a package constant.
type Tree struct {
	store        *arena.Store[qnode]
	dim          int
	precision    float64
	numQuadrants int
	levels       []level
}

// NewTree builds an empty tree whose outer bounding box is the square
// with the given center and side length. precision is the tolerance
// used for every coordinate comparison (spec.md §3).
func NewTree(center geom.Point, length float64, precision float64) (*Tree, error) {
	if length <= 0 {
		return nil, fmt.Errorf("skipquadtree: length must be positive, got %v", length)
	}
	if precision < 0 {
		return nil, fmt.Errorf("skipquadtree: precision must be non-negative, got %v", precision)
	}
	dim := center.Dim()
	if dim < 1 {
		return nil, fmt.Errorf("skipquadtree: dimension must be >= 1, got %d", dim)
	}

	t := &Tree{
		store:        arena.NewStore[qnode](),
		dim:          dim,
		precision:    precision,
		numQuadrants: 1 << uint(dim),
	}

	rootRef := t.newSquare(geom.NewSquare(center, length))
	headRef := t.newSentinel()
	t.levels = []level{{root: rootRef, head: headRef}}
	return t, nil
}

// Dim returns the dimension this tree was constructed for.
func (t *Tree) Dim() int {
	return t.dim
}

// Precision returns the tolerance this tree was constructed with.
func (t *Tree) Precision() float64 {
	return t.precision
}

// Levels reports the current number of stacked skip-list levels. Useful
// for tests asserting against spec.md §8's seed scenarios.
func (t *Tree) Levels() int {
	return len(t.levels)
}

func (t *Tree) topLevel() level {
	return t.levels[len(t.levels)-1]
}

func (t *Tree) groundLevel() level {
	return t.levels[0]
}

func (t *Tree) checkArity(p geom.Point) error {
	if p.Dim() != t.dim {
		return fmt.Errorf("skipquadtree: point has dimension %d, tree has dimension %d", p.Dim(), t.dim)
	}
	return nil
}

// growIfNeeded enforces invariant 6 (empty top) after a successful
// insertion: the top level's root must never gain a child without a
// fresh, empty level pushed above it.
func (t *Tree) growIfNeeded() {
	top := t.topLevel()
	if !t.allChildrenEmpty(t.get(top.root)) {
		t.pushLevel()
	}
}

func (t *Tree) pushLevel() {
	top := t.topLevel()
	topRootNode := t.get(top.root)

	newRootRef := t.newSquare(topRootNode.square)
	t.get(newRootRef).down = top.root

	newHeadRef := t.newSentinel()
	t.get(newHeadRef).down = top.head

	t.levels = append(t.levels, level{root: newRootRef, head: newHeadRef})
}

// shrinkIfNeeded enforces the mirror-image rule after a successful
// removal: once the top two levels are both vacant, the top one is
// redundant and is dropped.
func (t *Tree) shrinkIfNeeded() {
	for len(t.levels) > 1 {
		top := t.topLevel()
		below := t.levels[len(t.levels)-2]
		if t.allChildrenEmpty(t.get(top.root)) && t.allChildrenEmpty(t.get(below.root)) {
			t.popLevel()
			continue
		}
		break
	}
}

func (t *Tree) popLevel() {
	top := t.topLevel()
	t.freeNode(top.root)
	t.freeNode(top.head)
	t.levels = t.levels[:len(t.levels)-1]
}

// anchorOrRoot picks the promotion anchor per spec.md §9's
// resolution of the ambiguous source variants: prefer the nearby square
// already in hand if it still contains target, otherwise fall back to
// the level's true root (which contains everything by construction).
func (t *Tree) anchorOrRoot(near, root arena.Ref[qnode], target geom.Point) arena.Ref[qnode] {
	if !near.IsNil() && t.get(near).square.Contains(target) {
		return near
	}
	return root
}
