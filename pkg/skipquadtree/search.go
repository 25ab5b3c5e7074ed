package skipquadtree

import (
	"github.com/wqian94/dsqt/pkg/arena"
	"github.com/wqian94/dsqt/pkg/geom"
)

// Search reports whether p is a member of the tree.
func (t *Tree) Search(p geom.Point) (bool, error) {
	if err := t.checkArity(p); err != nil {
		return false, err
	}
	return t.searchLevel(t.topLevel().root, p), nil
}

// searchLevel implements spec.md §4.3: descend the current level's
// square tree toward p; if the descent lands on p exactly, we're done,
// otherwise fall through the last square's down link to the level below
// and try again there.
func (t *Tree) searchLevel(root arena.Ref[qnode], p geom.Point) bool {
	cur := root
	for {
		curNode := t.get(cur)
		if !curNode.square.Contains(p) {
			return false
		}

		parent, target, _ := t.descend(cur, p)
		if !target.IsNil() {
			targetNode := t.get(target)
			if targetNode.kind == kindPoint && geom.PointsEqual(targetNode.center, p, t.precision) {
				return true
			}
		}

		down := t.get(parent).down
		if down.IsNil() {
			return false
		}
		cur = down
	}
}
