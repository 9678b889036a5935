package tree

import "strings"

// Walk visits the subtree rooted at n in pre-order, children in insertion
// order. The callback returns whether to descend into the node's children.
func Walk(n *Node, f func(n *Node, depth int) bool) {
	walk(n, 0, f)
}

func walk(n *Node, depth int, f func(n *Node, depth int) bool) {
	if !f(n, depth) {
		return
	}
	for _, c := range n.children {
		walk(c, depth+1, f)
	}
}

// Descendants returns every node strictly below n, in pre-order.
func Descendants(n *Node) []*Node {
	var res []*Node
	for _, c := range n.children {
		Walk(c, func(d *Node, _ int) bool {
			res = append(res, d)
			return true
		})
	}
	return res
}

// Size returns the number of nodes in the subtree rooted at n, including n.
func Size(n *Node) int {
	res := 0
	Walk(n, func(*Node, int) bool {
		res++
		return true
	})
	return res
}

// Parents builds the child -> parent index for one tree version. The root
// itself is absent from the map. Nodes shared across versions have one entry
// per root they are indexed under; this is why the index is derived rather
// than stored on the Node.
func Parents(root *Node) map[*Node]*Node {
	res := make(map[*Node]*Node)
	Walk(root, func(n *Node, _ int) bool {
		for _, c := range n.children {
			res[c] = n
		}
		return true
	})
	return res
}

// PathOf returns the dot-joined path from root to target, escaping literal
// dots in names. The second result is false when target is not reachable
// from root.
func PathOf(root, target *Node) (string, bool) {
	var names []string
	var find func(n *Node) bool
	find = func(n *Node) bool {
		names = append(names, EscapeName(n.name))
		if n == target {
			return true
		}
		for _, c := range n.children {
			if find(c) {
				return true
			}
		}
		names = names[:len(names)-1]
		return false
	}
	if !find(root) {
		return "", false
	}
	return strings.Join(names, "."), true
}

// EscapeName escapes literal dots in a node name so the result survives
// tokenization as a single segment.
func EscapeName(name string) string {
	return strings.ReplaceAll(name, ".", `\.`)
}
