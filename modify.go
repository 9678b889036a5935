package treepath

import (
	"slices"

	"github.com/treepath/treepath/debug"
	"github.com/treepath/treepath/tree"
)

type actionKind int

const (
	updateAction actionKind = iota
	renameAction
	clearAction
	applyAction
)

// Action is one modification applied to every node a path selects: a payload
// update, a rename, a payload wipe, or a per-node callback resolving to one
// of the former.
type Action struct {
	kind  actionKind
	attrs map[string]any
	name  string
	fn    func(*tree.Node) Action
}

// Update merges the given entries into the payload of each selected node.
// An empty map is a no-op.
func Update(attrs map[string]any) Action {
	return Action{kind: updateAction, attrs: attrs}
}

// Rename gives each selected node a new name.
func Rename(name string) Action {
	return Action{kind: renameAction, name: name}
}

// Clear removes the whole payload of each selected node.
func Clear() Action {
	return Action{kind: clearAction}
}

// Apply resolves the action per node. The returned action must not itself be
// an Apply; a nested Apply leaves the node unchanged.
func Apply(fn func(*tree.Node) Action) Action {
	return Action{kind: applyAction, fn: fn}
}

func (a Action) edit(orig *tree.Node) editFn {
	return func(n *tree.Node) *tree.Node {
		return a.applyTo(orig, n)
	}
}

// applyTo rewrites n, the rebuilt node; orig is the matched node the
// selection saw, handed to Apply callbacks.
func (a Action) applyTo(orig, n *tree.Node) *tree.Node {
	switch a.kind {
	case updateAction:
		if len(a.attrs) == 0 {
			return n
		}
		return n.WithPayload(n.Payload().MergeInto(tree.PayloadFromMap(a.attrs)))
	case renameAction:
		return n.WithName(a.name)
	case clearAction:
		if n.Payload().Len() == 0 {
			return n
		}
		return n.WithPayload(tree.NewPayload())
	case applyAction:
		resolved := a.fn(orig)
		if resolved.kind == applyAction {
			return n
		}
		return resolved.applyTo(orig, n)
	}
	return n
}

// Modify applies each path's action to every node it selects, returning the
// new tree. Paths are processed in sorted order; when several paths select
// the same node the last processed action wins.
func Modify(root *tree.Node, edits map[string]Action) (*tree.Node, error) {
	fns := make(map[*tree.Node]editFn)
	paths := make([]string, 0, len(edits))
	for path := range edits {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	for _, path := range paths {
		act := edits[path]
		nodes, err := Match(root, path)
		if err != nil {
			return nil, err
		}
		if debug.Transform() {
			debug.Logf("modify %q selects %d nodes\n", path, len(nodes))
		}
		for _, n := range nodes {
			fns[n] = act.edit(n)
		}
	}
	return rebuild(root, fns), nil
}

// MapValues rewrites every payload value of every selected node through fn.
func MapValues(root *tree.Node, path string, fn func(key string, val any) any) (*tree.Node, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return nil, err
	}
	fns := make(map[*tree.Node]editFn, len(nodes))
	for _, n := range nodes {
		fns[n] = func(n *tree.Node) *tree.Node {
			p := n.Payload()
			for _, k := range p.Keys() {
				v, _ := p.Get(k)
				p = p.With(k, fn(k, v))
			}
			return n.WithPayload(p)
		}
	}
	return rebuild(root, fns), nil
}
