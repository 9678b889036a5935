package tree

import (
	"slices"
)

// Node is one vertex of a tree: a name, an ordered key -> value payload and
// an ordered list of children. Names need not be unique across a tree.
//
// Nodes are persistent values. Every edit method returns a new Node and
// shares the subtrees it did not touch; nothing ever modifies a Node after
// construction. Because subtrees are shared between tree versions a Node
// does not store a parent pointer; use Parents or PathOf on a root to
// recover ancestry within one version.
type Node struct {
	name     string
	payload  Payload
	children []*Node
}

// Option configures a Node under construction.
type Option func(*Node)

// Attr sets one payload entry.
func Attr(key string, val any) Option {
	return func(n *Node) {
		n.payload = n.payload.With(key, val)
	}
}

// Attrs sets payload entries from a map, in sorted key order.
func Attrs(m map[string]any) Option {
	return func(n *Node) {
		n.payload = n.payload.MergeInto(PayloadFromMap(m))
	}
}

// Kids appends child nodes.
func Kids(children ...*Node) Option {
	return func(n *Node) {
		n.children = append(n.children, children...)
	}
}

func New(name string, opts ...Option) *Node {
	n := &Node{name: name}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Payload() Payload {
	return n.payload
}

// Children returns the node's children slice. Callers must treat it as
// read-only.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) NumChildren() int {
	return len(n.children)
}

func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Child returns the i-th child, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// ChildNamed returns the first child with the given name, or nil.
func (n *Node) ChildNamed(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *Node) WithName(name string) *Node {
	res := n.shallow()
	res.name = name
	return res
}

func (n *Node) WithPayload(p Payload) *Node {
	res := n.shallow()
	res.payload = p
	return res
}

func (n *Node) WithAttr(key string, val any) *Node {
	return n.WithPayload(n.payload.With(key, val))
}

func (n *Node) WithoutAttr(key string) *Node {
	return n.WithPayload(n.payload.Without(key))
}

func (n *Node) WithChildren(children ...*Node) *Node {
	res := n.shallow()
	res.children = children
	return res
}

func (n *Node) AppendChild(c *Node) *Node {
	kids := make([]*Node, 0, len(n.children)+1)
	kids = append(kids, n.children...)
	kids = append(kids, c)
	return n.WithChildren(kids...)
}

// InsertChild inserts c at index i; i is clamped to [0, len(children)].
func (n *Node) InsertChild(i int, c *Node) *Node {
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	kids := make([]*Node, 0, len(n.children)+1)
	kids = append(kids, n.children[:i]...)
	kids = append(kids, c)
	kids = append(kids, n.children[i:]...)
	return n.WithChildren(kids...)
}

func (n *Node) RemoveChild(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return n
	}
	kids := make([]*Node, 0, len(n.children)-1)
	kids = append(kids, n.children[:i]...)
	kids = append(kids, n.children[i+1:]...)
	return n.WithChildren(kids...)
}

func (n *Node) ReplaceChild(i int, c *Node) *Node {
	if i < 0 || i >= len(n.children) {
		return n
	}
	kids := slices.Clone(n.children)
	kids[i] = c
	return n.WithChildren(kids...)
}

// Clone deep-copies the subtree rooted at n. Needed where a subtree must be
// exclusively owned, e.g. attaching one template under several parents.
func (n *Node) Clone() *Node {
	res := n.shallow()
	res.children = make([]*Node, len(n.children))
	for i, c := range n.children {
		res.children[i] = c.Clone()
	}
	return res
}

// Equal reports deep value equality of two subtrees: names, payloads and
// children, in order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || !a.payload.Equal(b.payload) {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) shallow() *Node {
	res := &Node{
		name:     n.name,
		payload:  n.payload,
		children: n.children,
	}
	return res
}
