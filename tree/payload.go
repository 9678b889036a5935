package tree

import (
	"reflect"
	"slices"
)

// Payload is an ordered key -> value mapping attached to a Node. Values are
// one of: string, int64, float64, bool, nil, map[string]any, []any.
//
// Payload values are persistent: With and Without return a new Payload and
// never modify the receiver.
type Payload struct {
	keys []string
	vals map[string]any
}

func NewPayload() Payload {
	return Payload{}
}

// PayloadFromMap builds a Payload with keys in sorted order, so that the
// result is deterministic regardless of map iteration order.
func PayloadFromMap(m map[string]any) Payload {
	p := Payload{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p = p.With(k, m[k])
	}
	return p
}

func (p Payload) Len() int {
	return len(p.keys)
}

// Keys returns the payload keys in insertion order.
func (p Payload) Keys() []string {
	return slices.Clone(p.keys)
}

func (p Payload) Get(key string) (any, bool) {
	v, ok := p.vals[key]
	return v, ok
}

func (p Payload) Has(key string) bool {
	_, ok := p.vals[key]
	return ok
}

// With returns a Payload with key set to val. An existing key keeps its
// position; a new key is appended.
func (p Payload) With(key string, val any) Payload {
	res := p.clone()
	if _, ok := res.vals[key]; !ok {
		res.keys = append(res.keys, key)
	}
	res.vals[key] = val
	return res
}

// Without returns a Payload with key removed. Removing an absent key is a
// no-op.
func (p Payload) Without(key string) Payload {
	if _, ok := p.vals[key]; !ok {
		return p
	}
	res := Payload{
		keys: make([]string, 0, len(p.keys)-1),
		vals: make(map[string]any, len(p.keys)-1),
	}
	for _, k := range p.keys {
		if k == key {
			continue
		}
		res.keys = append(res.keys, k)
		res.vals[k] = p.vals[k]
	}
	return res
}

// MergeInto returns a Payload holding the receiver's entries updated with
// every entry of other, appending keys the receiver does not have.
func (p Payload) MergeInto(other Payload) Payload {
	res := p
	for _, k := range other.keys {
		res = res.With(k, other.vals[k])
	}
	return res
}

// ToMap returns the payload as a plain map. The result does not alias the
// payload's bookkeeping, but nested maps and lists are shared.
func (p Payload) ToMap() map[string]any {
	res := make(map[string]any, len(p.keys))
	for _, k := range p.keys {
		res[k] = p.vals[k]
	}
	return res
}

func (p Payload) Equal(o Payload) bool {
	if len(p.keys) != len(o.keys) {
		return false
	}
	for i, k := range p.keys {
		if o.keys[i] != k {
			return false
		}
		if !ValueEqual(p.vals[k], o.vals[k]) {
			return false
		}
	}
	return true
}

// ValueEqual reports equality of two payload values. Numbers compare across
// int64 and float64 when they denote the same quantity.
func ValueEqual(a, b any) bool {
	if ai, ok := a.(int64); ok {
		if bf, ok := b.(float64); ok {
			return float64(ai) == bf
		}
	}
	if af, ok := a.(float64); ok {
		if bi, ok := b.(int64); ok {
			return af == float64(bi)
		}
	}
	return reflect.DeepEqual(a, b)
}

func (p Payload) clone() Payload {
	res := Payload{
		keys: slices.Clone(p.keys),
		vals: make(map[string]any, len(p.vals)),
	}
	for k, v := range p.vals {
		res.vals[k] = v
	}
	return res
}
