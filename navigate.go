package treepath

import (
	"github.com/treepath/treepath/pattern"
	"github.com/treepath/treepath/tree"
)

// navigator walks one compiled pattern over one tree. Memoization on
// (node, segment index) bounds deep-wildcard backtracking: each pair is
// explored once, so matching is polynomial in tree size times pattern
// length.
type navigator struct {
	segs pattern.Pattern
	memo map[navKey]struct{}
	hits map[*tree.Node]struct{}
}

type navKey struct {
	node *tree.Node
	idx  int
}

func newNavigator(segs pattern.Pattern) *navigator {
	return &navigator{
		segs: segs,
		memo: make(map[navKey]struct{}),
		hits: make(map[*tree.Node]struct{}),
	}
}

func (nv *navigator) run(root *tree.Node) map[*tree.Node]struct{} {
	first := nv.segs[0]
	switch {
	case first.Kind == pattern.DeepWildcardKind:
		nv.navigate(root, 0)
		// a leading ** covers the root itself, so the next segment may
		// select it directly
		if len(nv.segs) > 1 {
			cand := pattern.Candidate{Node: root, Pos: 0, Siblings: 1, IsRoot: true}
			if nv.segs[1].Matches(cand) {
				nv.navigate(root, 2)
			}
		}
	case first.Kind == pattern.LiteralKind && first.Name == root.Name():
		nv.navigate(root, 1)
	default:
		nv.navigate(root, 0)
	}
	return nv.hits
}

// navigate matches segs[idx:] below node: each non-wildcard segment tests
// node's children; reaching the end of the pattern records node itself.
func (nv *navigator) navigate(node *tree.Node, idx int) {
	key := navKey{node: node, idx: idx}
	if _, ok := nv.memo[key]; ok {
		return
	}
	nv.memo[key] = struct{}{}
	if idx == len(nv.segs) {
		nv.hit(node)
		return
	}
	seg := nv.segs[idx]
	if seg.Kind == pattern.DeepWildcardKind {
		if idx == len(nv.segs)-1 {
			// trailing **: this node and every descendant
			nv.hit(node)
			for _, d := range tree.Descendants(node) {
				nv.hit(d)
			}
			return
		}
		// medial **: resume here (zero skip) or push down a level
		nv.navigate(node, idx+1)
		for _, c := range node.Children() {
			nv.navigate(c, idx)
		}
		return
	}
	kids := node.Children()
	for i, c := range kids {
		cand := pattern.Candidate{Node: c, Pos: i, Siblings: len(kids)}
		if seg.Matches(cand) {
			nv.navigate(c, idx+1)
		}
	}
}

func (nv *navigator) hit(n *tree.Node) {
	nv.hits[n] = struct{}{}
}
