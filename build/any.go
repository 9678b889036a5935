// Package build converts between the persistent tree model and external
// shapes: YAML documents, nested maps, flat path-indexed views. These are
// collaborator-level adapters; the matcher and transforms only ever see
// tree.Node values.
package build

import (
	"sort"
	"strings"

	"github.com/treepath/treepath/tree"
)

// FromAny builds a subtree named name from a nested value: a mapping value
// becomes a child node, an explicit nil becomes a leaf child, and scalars
// and lists become payload entries. Map keys are visited in sorted order so
// the result is deterministic.
func FromAny(name string, v any) *tree.Node {
	switch m := v.(type) {
	case nil:
		return tree.New(name)
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := tree.New(name)
		for _, k := range keys {
			n = addEntry(n, k, m[k])
		}
		return n
	default:
		return tree.New(name, tree.Attr("value", normalizeValue(v)))
	}
}

func addEntry(n *tree.Node, key string, v any) *tree.Node {
	switch v.(type) {
	case map[string]any:
		return n.AppendChild(FromAny(key, v))
	case nil:
		return n.AppendChild(tree.New(key))
	default:
		return n.WithAttr(key, normalizeValue(v))
	}
}

// ToAny is the inverse shape: payload entries and children share one
// mapping, children rendered recursively; a bare leaf renders as nil.
func ToAny(n *tree.Node) any {
	if n.IsLeaf() && n.Payload().Len() == 0 {
		return nil
	}
	res := make(map[string]any, n.Payload().Len()+n.NumChildren())
	for _, k := range n.Payload().Keys() {
		v, _ := n.Payload().Get(k)
		res[k] = v
	}
	for _, c := range n.Children() {
		res[c.Name()] = ToAny(c)
	}
	return res
}

// Flatten renders one tree version as a flat dot-path -> payload view.
func Flatten(root *tree.Node) map[string]map[string]any {
	res := make(map[string]map[string]any)
	var stack []string
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		stack = append(stack, tree.EscapeName(n.Name()))
		res[strings.Join(stack, ".")] = n.Payload().ToMap()
		for _, c := range n.Children() {
			walk(c)
		}
		stack = stack[:len(stack)-1]
	}
	walk(root)
	return res
}

// Adjacency renders one tree version as a flat dot-path -> child paths view.
func Adjacency(root *tree.Node) map[string][]string {
	res := make(map[string][]string)
	var stack []string
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		stack = append(stack, tree.EscapeName(n.Name()))
		p := strings.Join(stack, ".")
		res[p] = []string{}
		for _, c := range n.Children() {
			res[p] = append(res[p], p+"."+tree.EscapeName(c.Name()))
			walk(c)
		}
		stack = stack[:len(stack)-1]
	}
	walk(root)
	return res
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = normalizeValue(e)
		}
		return res
	default:
		return v
	}
}
