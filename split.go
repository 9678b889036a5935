package treepath

import (
	"github.com/treepath/treepath/tree"
)

// Split removes what the path selects and hands it back: with includePoint
// the matched nodes themselves are removed and extracted, otherwise the
// matched nodes stay and give up their children. Extracted subtrees are
// deep copies, in reverse match order so earlier extractions do not shift
// later indices. Splitting the root itself out of the tree yields a nil
// tree.
func Split(root *tree.Node, path string, includePoint bool) (*tree.Node, []*tree.Node, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return nil, nil, err
	}
	var extracted []*tree.Node
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if includePoint {
			extracted = append(extracted, n.Clone())
			continue
		}
		for _, c := range n.Children() {
			extracted = append(extracted, c.Clone())
		}
	}
	fns := make(map[*tree.Node]editFn, len(nodes))
	for _, n := range nodes {
		if includePoint {
			fns[n] = func(*tree.Node) *tree.Node { return nil }
		} else {
			fns[n] = func(n *tree.Node) *tree.Node {
				if n.NumChildren() == 0 {
					return n
				}
				return n.WithChildren()
			}
		}
	}
	return rebuild(root, fns), extracted, nil
}
