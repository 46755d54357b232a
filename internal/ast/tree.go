package ast

import (
	"slices"

	"esfront/internal/source"
	"esfront/internal/token"
)

// Tree is an immutable syntax tree. A tree produced by an Editor is a layer
// over its base: it stores only the nodes the edit created and resolves
// every other ID through the base, which is never modified.
type Tree struct {
	file *source.File

	base    *Tree
	baseLen uint32

	nodes []Node
	edges []NodeID
	strs  *source.Interner

	root     NodeID
	comments map[NodeID]Comments
}

// File returns the source buffer the tree was parsed from.
func (t *Tree) File() *source.File { return t.file }

// Root returns the Program node (or the edited replacement root).
func (t *Tree) Root() NodeID { return t.root }

// Len is the number of addressable node IDs, including base layers.
func (t *Tree) Len() int { return int(t.baseLen) + len(t.nodes) }

// Base returns the tree this layer was derived from, or nil.
func (t *Tree) Base() *Tree { return t.base }

// Valid reports whether id addresses a node of t.
func (t *Tree) Valid(id NodeID) bool { return id != NoNode && int(id) <= t.Len() }

// owner returns the layer storing id.
func (t *Tree) owner(id NodeID) *Tree {
	l := t
	for uint32(id) <= l.baseLen {
		l = l.base
	}
	return l
}

func (t *Tree) node(id NodeID) (*Tree, *Node) {
	if !t.Valid(id) {
		return nil, nil
	}
	l := t.owner(id)
	return l, &l.nodes[uint32(id)-l.baseLen-1]
}

// Node returns a copy of the stored node. Unknown IDs yield the zero Node.
func (t *Tree) Node(id NodeID) Node {
	_, n := t.node(id)
	if n == nil {
		return Node{}
	}
	return *n
}

func (t *Tree) Kind(id NodeID) Kind {
	_, n := t.node(id)
	if n == nil {
		return Invalid
	}
	return n.Kind
}

func (t *Tree) Span(id NodeID) source.Span {
	_, n := t.node(id)
	if n == nil {
		return source.Span{}
	}
	return n.Span
}

func (t *Tree) Flags(id NodeID) Flags {
	_, n := t.node(id)
	if n == nil {
		return 0
	}
	return n.Flags
}

// Has reports whether every bit of f is set on id.
func (t *Tree) Has(id NodeID, f Flags) bool { return t.Flags(id)&f == f }

// Text returns the identifier name, literal source or operator spelling
// recorded for id.
func (t *Tree) Text(id NodeID) string {
	l, n := t.node(id)
	if n == nil || n.Text == source.NoStringID {
		return ""
	}
	s, _ := l.strs.Lookup(n.Text)
	return s
}

// Children returns the slot values of id in schema order, or the elements
// when id is a List. The slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	l, n := t.node(id)
	if n == nil || n.count == 0 {
		return nil
	}
	return slices.Clip(l.edges[n.first : n.first+n.count])
}

// ChildAt returns the value of slot i, or NoNode when out of range.
func (t *Tree) ChildAt(id NodeID, i int) NodeID {
	ch := t.Children(id)
	if i < 0 || i >= len(ch) {
		return NoNode
	}
	return ch[i]
}

// Child returns the value of the named slot.
func (t *Tree) Child(id NodeID, slot string) NodeID {
	i, ok := t.Kind(id).SlotIndex(slot)
	if !ok {
		return NoNode
	}
	return t.ChildAt(id, i)
}

// Elems returns the elements of the named list slot. Absent optional lists
// yield nil.
func (t *Tree) Elems(id NodeID, slot string) []NodeID {
	return t.ListElems(t.Child(id, slot))
}

// ListElems returns the elements of a List node.
func (t *Tree) ListElems(list NodeID) []NodeID {
	if t.Kind(list) != List {
		return nil
	}
	return t.Children(list)
}

// Comments returns the comments attached to id.
func (t *Tree) Comments(id NodeID) Comments {
	for l := t; l != nil; l = l.base {
		if c, ok := l.comments[id]; ok {
			return c
		}
	}
	return Comments{}
}

// HasComments reports whether any comment is attached anywhere in t.
func (t *Tree) HasComments() bool {
	for l := t; l != nil; l = l.base {
		if len(l.comments) > 0 {
			return true
		}
	}
	return false
}

// Source returns the source text covered by id.
func (t *Tree) Source(id NodeID) string {
	if t.file == nil {
		return ""
	}
	return t.file.Slice(t.Span(id))
}

// Op returns the operator or keyword token stored on id.
func (t *Tree) Op(id NodeID) token.Kind {
	_, n := t.node(id)
	if n == nil {
		return token.Invalid
	}
	return n.Op
}

// Aux returns the kind-specific small payload of id.
func (t *Tree) Aux(id NodeID) uint16 {
	_, n := t.node(id)
	if n == nil {
		return 0
	}
	return n.Aux
}
