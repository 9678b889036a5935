package treepath

import (
	"github.com/treepath/treepath/tree"
)

type positionKind int

const (
	appendPos positionKind = iota
	prependPos
	replacePos
	indexPos
)

// Position says where a grafted subtree lands relative to each graft point.
type Position struct {
	kind  positionKind
	index int
}

var (
	// PositionAppend adds the subtree as the last child of each match.
	PositionAppend = Position{kind: appendPos}
	// PositionPrepend adds the subtree as the first child of each match.
	PositionPrepend = Position{kind: prependPos}
	// PositionReplace substitutes the subtree for each match.
	PositionReplace = Position{kind: replacePos}
)

// PositionAt inserts the subtree at the given child index of each match,
// clamped to the child range.
func PositionAt(i int) Position {
	return Position{kind: indexPos, index: i}
}

// Graft attaches a copy of subtree at every node the path selects. The
// subtree is deep-copied once per graft point, so each parent owns its copy
// exclusively.
func Graft(root *tree.Node, path string, subtree *tree.Node, pos Position) (*tree.Node, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return nil, err
	}
	fns := make(map[*tree.Node]editFn, len(nodes))
	for _, n := range nodes {
		fns[n] = func(n *tree.Node) *tree.Node {
			graft := subtree.Clone()
			switch pos.kind {
			case appendPos:
				return n.AppendChild(graft)
			case prependPos:
				return n.InsertChild(0, graft)
			case replacePos:
				return graft
			case indexPos:
				return n.InsertChild(pos.index, graft)
			}
			return n
		}
	}
	return rebuild(root, fns), nil
}
