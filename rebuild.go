package treepath

import (
	"github.com/treepath/treepath/tree"
)

// editFn rewrites one matched node. It receives the node with its children
// already rebuilt; returning nil removes the node from its parent.
type editFn func(*tree.Node) *tree.Node

// rebuild applies edits keyed by original node pointer, copying only the
// spines from root to edited nodes and sharing every untouched subtree with
// the input. Edits run bottom-up. A nil result means the root itself was
// removed.
func rebuild(root *tree.Node, edits map[*tree.Node]editFn) *tree.Node {
	if len(edits) == 0 {
		return root
	}
	res, _ := rebuildAt(root, edits)
	return res
}

func rebuildAt(n *tree.Node, edits map[*tree.Node]editFn) (*tree.Node, bool) {
	kids := n.Children()
	var newKids []*tree.Node
	diverged := false
	for i, c := range kids {
		nc, changed := rebuildAt(c, edits)
		if changed && !diverged {
			diverged = true
			newKids = make([]*tree.Node, 0, len(kids))
			newKids = append(newKids, kids[:i]...)
		}
		if diverged && nc != nil {
			newKids = append(newKids, nc)
		}
	}
	res := n
	if diverged {
		res = n.WithChildren(newKids...)
	}
	if fn, ok := edits[n]; ok {
		edited := fn(res)
		if edited == nil {
			return nil, true
		}
		res = edited
	}
	if res == n {
		return n, false
	}
	return res, true
}
