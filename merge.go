package treepath

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/treepath/treepath/debug"
	"github.com/treepath/treepath/tree"
)

type Strategy int

const (
	// StrategyOverlay lets b win on payload key conflicts.
	StrategyOverlay Strategy = iota
	// StrategyUnderlay lets a win on payload key conflicts.
	StrategyUnderlay
	// StrategyCombine appends lists, deep-merges nested maps and otherwise
	// overlays.
	StrategyCombine
	// StrategyCustom hands conflicting node pairs to a caller resolver.
	StrategyCustom
)

func (s Strategy) String() string {
	v, ok := map[Strategy]string{
		StrategyOverlay:  "overlay",
		StrategyUnderlay: "underlay",
		StrategyCombine:  "combine",
		StrategyCustom:   "custom",
	}[s]
	if ok {
		return v
	}
	return "<unknown strategy>"
}

// Resolver produces the merged node for a pair of same-named nodes whose
// payloads conflict under StrategyCustom.
type Resolver func(a, b *tree.Node) (*tree.Node, error)

type mergeConfig struct {
	resolver Resolver
}

type MergeOpt func(*mergeConfig)

func WithResolver(r Resolver) MergeOpt {
	return func(c *mergeConfig) { c.resolver = r }
}

// Merge combines two trees recursively. Children are paired by name, a's
// order first; b-only children are appended in b's order and shared with b.
// The merged root keeps a's name.
func Merge(a, b *tree.Node, strategy Strategy, opts ...MergeOpt) (*tree.Node, error) {
	cfg := &mergeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return mergeNodes(a, b, strategy, cfg, a.Name())
}

func mergeNodes(a, b *tree.Node, strategy Strategy, cfg *mergeConfig, path string) (*tree.Node, error) {
	if debug.Merge() {
		debug.Logf("merge %s at %s\n", strategy, path)
	}
	if strategy == StrategyCustom {
		if key, conflict := payloadConflict(a, b); conflict {
			if cfg.resolver == nil {
				return nil, &MergeConflictError{Path: path, Key: key}
			}
			return cfg.resolver(a, b)
		}
	}
	payload, err := mergePayloads(a.Payload(), b.Payload(), strategy, path)
	if err != nil {
		return nil, err
	}

	used := make([]bool, b.NumChildren())
	kids := make([]*tree.Node, 0, a.NumChildren()+b.NumChildren())
	for _, ac := range a.Children() {
		bc := findUnused(b, ac.Name(), used)
		if bc < 0 {
			kids = append(kids, ac)
			continue
		}
		used[bc] = true
		merged, err := mergeNodes(ac, b.Child(bc), strategy, cfg, path+"."+tree.EscapeName(ac.Name()))
		if err != nil {
			return nil, err
		}
		kids = append(kids, merged)
	}
	for i, bc := range b.Children() {
		if !used[i] {
			kids = append(kids, bc)
		}
	}
	return a.WithPayload(payload).WithChildren(kids...), nil
}

func findUnused(b *tree.Node, name string, used []bool) int {
	for i, bc := range b.Children() {
		if !used[i] && bc.Name() == name {
			return i
		}
	}
	return -1
}

func payloadConflict(a, b *tree.Node) (string, bool) {
	ap, bp := a.Payload(), b.Payload()
	for _, k := range ap.Keys() {
		bv, ok := bp.Get(k)
		if !ok {
			continue
		}
		av, _ := ap.Get(k)
		if !tree.ValueEqual(av, bv) {
			return k, true
		}
	}
	return "", false
}

func mergePayloads(ap, bp tree.Payload, strategy Strategy, path string) (tree.Payload, error) {
	switch strategy {
	case StrategyOverlay, StrategyCustom:
		return ap.MergeInto(bp), nil
	case StrategyUnderlay:
		res := ap
		for _, k := range bp.Keys() {
			if res.Has(k) {
				continue
			}
			v, _ := bp.Get(k)
			res = res.With(k, v)
		}
		return res, nil
	case StrategyCombine:
		res := ap
		for _, k := range bp.Keys() {
			bv, _ := bp.Get(k)
			av, ok := res.Get(k)
			if !ok {
				res = res.With(k, bv)
				continue
			}
			cv, err := combineValues(av, bv)
			if err != nil {
				return tree.Payload{}, fmt.Errorf("combine %s.%s: %w", path, k, err)
			}
			res = res.With(k, cv)
		}
		return res, nil
	}
	return tree.Payload{}, fmt.Errorf("unknown merge strategy %d", strategy)
}

// combineValues appends lists and deep-merges nested maps, b winning inside
// maps on scalar conflicts; any other pair overlays to b.
func combineValues(av, bv any) (any, error) {
	if al, ok := av.([]any); ok {
		if bl, ok := bv.([]any); ok {
			res := make([]any, 0, len(al)+len(bl))
			res = append(res, al...)
			res = append(res, bl...)
			return res, nil
		}
	}
	if am, ok := av.(map[string]any); ok {
		if bm, ok := bv.(map[string]any); ok {
			res := make(map[string]any, len(am))
			for k, v := range am {
				res[k] = v
			}
			if err := mergo.Merge(&res, bm, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
				return nil, err
			}
			return res, nil
		}
	}
	return bv, nil
}
