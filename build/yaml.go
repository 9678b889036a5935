package build

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/treepath/treepath/tree"
)

// FromYAML builds a tree from a YAML document with exactly one top-level
// mapping key, which names the root. Mapping values become child nodes in
// document order, explicit nulls become leaf children, scalars and lists
// become payload entries:
//
//	root:
//	  src:
//	    user: {id: ~, name: ~}
//	  port: 8080
func FromYAML(data []byte) (*tree.Node, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	top, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("top level is %T, want a mapping", doc)
	}
	if len(top) != 1 {
		return nil, fmt.Errorf("top level has %d keys, want exactly one root", len(top))
	}
	name, err := keyString(top[0].Key)
	if err != nil {
		return nil, err
	}
	return fromYAMLValue(name, top[0].Value)
}

func fromYAMLValue(name string, v any) (*tree.Node, error) {
	ms, ok := v.(yaml.MapSlice)
	if !ok {
		if v == nil {
			return tree.New(name), nil
		}
		return tree.New(name, tree.Attr("value", normalizeYAML(v))), nil
	}
	n := tree.New(name)
	for _, item := range ms {
		key, err := keyString(item.Key)
		if err != nil {
			return nil, err
		}
		switch val := item.Value.(type) {
		case yaml.MapSlice:
			c, err := fromYAMLValue(key, val)
			if err != nil {
				return nil, err
			}
			n = n.AppendChild(c)
		case nil:
			n = n.AppendChild(tree.New(key))
		default:
			n = n.WithAttr(key, normalizeYAML(val))
		}
	}
	return n, nil
}

func keyString(k any) (string, error) {
	s, ok := k.(string)
	if !ok {
		return "", fmt.Errorf("mapping key is %T, want string", k)
	}
	return s, nil
}

func normalizeYAML(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := make(map[string]any, len(x))
		for _, item := range x {
			if s, ok := item.Key.(string); ok {
				res[s] = normalizeYAML(item.Value)
			}
		}
		return res
	case []any:
		vals := make([]any, len(x))
		for i, e := range x {
			vals[i] = normalizeYAML(e)
		}
		return vals
	default:
		return normalizeValue(v)
	}
}
