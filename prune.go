package treepath

import (
	"github.com/treepath/treepath/tree"
)

type pruneConfig struct {
	keepStructure bool
}

type PruneOpt func(*pruneConfig)

// PruneKeepStructure keeps each pruned node in place, emptied of payload and
// children, instead of removing it from its parent.
func PruneKeepStructure(v bool) PruneOpt {
	return func(c *pruneConfig) { c.keepStructure = v }
}

// Prune removes every node the path selects. Pruning the root without
// keep-structure yields a nil tree.
func Prune(root *tree.Node, path string, opts ...PruneOpt) (*tree.Node, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return nil, err
	}
	return pruneNodes(root, nodes, opts), nil
}

// PruneFunc removes every node of the tree satisfying the predicate, the
// root excluded.
func PruneFunc(root *tree.Node, match func(*tree.Node) bool, opts ...PruneOpt) (*tree.Node, error) {
	var nodes []*tree.Node
	for _, d := range tree.Descendants(root) {
		if match(d) {
			nodes = append(nodes, d)
		}
	}
	return pruneNodes(root, nodes, opts), nil
}

func pruneNodes(root *tree.Node, nodes []*tree.Node, opts []PruneOpt) *tree.Node {
	cfg := &pruneConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	fns := make(map[*tree.Node]editFn, len(nodes))
	for _, n := range nodes {
		if cfg.keepStructure {
			fns[n] = func(n *tree.Node) *tree.Node {
				return n.WithPayload(tree.NewPayload()).WithChildren()
			}
		} else {
			fns[n] = func(*tree.Node) *tree.Node { return nil }
		}
	}
	return rebuild(root, fns)
}
