package treepath

import (
	"strings"

	"github.com/treepath/treepath/debug"
	"github.com/treepath/treepath/pattern"
	"github.com/treepath/treepath/tree"
)

// Match returns the nodes of root selected by the dot-path, in pre-order
// document order, each at most once. A path that selects nothing returns an
// empty result and no error; a malformed path returns a *pattern.SyntaxError
// before any traversal.
//
// Anchoring: the first segment is matched against the root itself when it is
// a literal equal to the root's name, or a deep wildcard. Otherwise segments
// begin matching at the root's children. A leading deep wildcard covers the
// root, so the segment after it can select the root directly; predicates see
// it with is_root true.
func Match(root *tree.Node, path string) ([]*tree.Node, error) {
	segs, err := pattern.Parse(path)
	if err != nil {
		return nil, err
	}
	if debug.Match() {
		debug.Logf("match %q against %q\n", path, root.Name())
	}
	return matchPattern(root, segs), nil
}

// MatchPaths is Match with results rendered as dot-joined names from root to
// match, literal dots escaped. Re-resolving a returned path as a pattern
// selects the same node.
func MatchPaths(root *tree.Node, path string) ([]string, error) {
	segs, err := pattern.Parse(path)
	if err != nil {
		return nil, err
	}
	hits := newNavigator(segs).run(root)
	var res []string
	var stack []string
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		stack = append(stack, tree.EscapeName(n.Name()))
		if _, ok := hits[n]; ok {
			res = append(res, strings.Join(stack, "."))
		}
		for _, c := range n.Children() {
			walk(c)
		}
		stack = stack[:len(stack)-1]
	}
	walk(root)
	return res, nil
}

func Exists(root *tree.Node, path string) (bool, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

func Count(root *tree.Node, path string) (int, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// Pluck returns one entry per path: nil when the path selects nothing, the
// single match's payload as a map when it selects one node, and a list of
// payload maps when it selects several. A path whose final segment names a
// payload key instead of a node yields that key's value (or a list of them,
// one per node the head of the path selects).
func Pluck(root *tree.Node, paths ...string) ([]any, error) {
	res := make([]any, len(paths))
	for i, path := range paths {
		nodes, err := Match(root, path)
		if err != nil {
			return nil, err
		}
		switch len(nodes) {
		case 0:
			v, err := pluckValue(root, path)
			if err != nil {
				return nil, err
			}
			res[i] = v
		case 1:
			res[i] = nodes[0].Payload().ToMap()
		default:
			vals := make([]any, len(nodes))
			for j, n := range nodes {
				vals[j] = n.Payload().ToMap()
			}
			res[i] = vals
		}
	}
	return res, nil
}

// pluckValue resolves a path whose last segment is a payload key rather than
// a node name: the head selects nodes, the tail looks their payloads up.
func pluckValue(root *tree.Node, path string) (any, error) {
	head, tail, ok := splitLastSegment(path)
	if !ok || strings.ContainsAny(tail, "*[~%") {
		return nil, nil
	}
	key := strings.ReplaceAll(tail, `\.`, ".")
	nodes, err := Match(root, head)
	if err != nil {
		return nil, err
	}
	var vals []any
	for _, n := range nodes {
		if v, ok := n.Payload().Get(key); ok {
			vals = append(vals, v)
		}
	}
	switch len(vals) {
	case 0:
		return nil, nil
	case 1:
		return vals[0], nil
	default:
		return vals, nil
	}
}

// splitLastSegment divides a path at its final unescaped, unbracketed dot.
func splitLastSegment(path string) (head, tail string, ok bool) {
	depth := 0
	last := -1
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
		case '.':
			if depth == 0 {
				last = i
			}
		}
	}
	if last <= 0 || last == len(path)-1 {
		return "", "", false
	}
	return path[:last], path[last+1:], true
}

func matchPattern(root *tree.Node, segs pattern.Pattern) []*tree.Node {
	hits := newNavigator(segs).run(root)
	res := make([]*tree.Node, 0, len(hits))
	tree.Walk(root, func(n *tree.Node, _ int) bool {
		if _, ok := hits[n]; ok {
			res = append(res, n)
		}
		return true
	})
	return res
}
