package treepath

import (
	"github.com/treepath/treepath/tree"
)

// Annotate sets one payload entry on every node the path selects.
func Annotate(root *tree.Node, path, key string, val any) (*tree.Node, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return nil, err
	}
	fns := make(map[*tree.Node]editFn, len(nodes))
	for _, n := range nodes {
		fns[n] = func(n *tree.Node) *tree.Node {
			return n.WithAttr(key, val)
		}
	}
	return rebuild(root, fns), nil
}

type validateConfig struct {
	raiseOnInvalid bool
}

type ValidateOpt func(*validateConfig)

// ValidateRaise controls whether Validate fails on the first invalid node
// (the default) or collects every invalid node.
func ValidateRaise(v bool) ValidateOpt {
	return func(c *validateConfig) { c.raiseOnInvalid = v }
}

// Validate checks every selected node. With raising enabled it returns a
// *ValidationError for the first rejected node, in match order; otherwise
// it returns the full list of rejected nodes and no error.
func Validate(root *tree.Node, path string, check func(*tree.Node) error, opts ...ValidateOpt) ([]*tree.Node, error) {
	cfg := &validateConfig{raiseOnInvalid: true}
	for _, opt := range opts {
		opt(cfg)
	}
	nodes, err := Match(root, path)
	if err != nil {
		return nil, err
	}
	var invalid []*tree.Node
	for _, n := range nodes {
		cerr := check(n)
		if cerr == nil {
			continue
		}
		if cfg.raiseOnInvalid {
			p, _ := tree.PathOf(root, n)
			return nil, &ValidationError{Node: n, Path: p, Reason: cerr}
		}
		invalid = append(invalid, n)
	}
	return invalid, nil
}

// Normalize renames every selected node through fn.
func Normalize(root *tree.Node, path string, fn func(name string) string) (*tree.Node, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return nil, err
	}
	fns := make(map[*tree.Node]editFn, len(nodes))
	for _, n := range nodes {
		fns[n] = func(n *tree.Node) *tree.Node {
			name := fn(n.Name())
			if name == n.Name() {
				return n
			}
			return n.WithName(name)
		}
	}
	return rebuild(root, fns), nil
}

// Reduce folds fn over the selected nodes in match order.
func Reduce(root *tree.Node, path string, fn func(acc any, n *tree.Node) any, init any) (any, error) {
	nodes, err := Match(root, path)
	if err != nil {
		return nil, err
	}
	acc := init
	for _, n := range nodes {
		acc = fn(acc, n)
	}
	return acc, nil
}
