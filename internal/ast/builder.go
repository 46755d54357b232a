package ast

import (
	"fmt"

	"fortio.org/safecast"

	"esfront/internal/source"
	"esfront/internal/token"
)

// Builder appends nodes bottom-up while parsing. Children must exist before
// their parent. Nodes stay mutable through the Builder until Finish.
type Builder struct {
	file  *source.File
	nodes []Node
	edges []NodeID
	strs  *source.Interner
	done  bool
}

// BuilderMark is a position Reset can truncate back to.
type BuilderMark struct {
	nodes, edges int
}

func NewBuilder(file *source.File, hint int) *Builder {
	if hint <= 0 {
		hint = 1 << 8
	}
	return &Builder{
		file:  file,
		nodes: make([]Node, 0, hint),
		edges: make([]NodeID, 0, hint*2),
		strs:  source.NewInterner(),
	}
}

// New appends a node of kind with the given slot values. The number of
// children must match the kind's schema; a mismatch is a parser bug.
func (b *Builder) New(kind Kind, sp source.Span, children ...NodeID) NodeID {
	if b.done {
		panic("ast: builder used after Finish")
	}
	if n := kind.NumSlots(); n >= 0 && n != len(children) {
		panic(fmt.Sprintf("ast: %s takes %d children, got %d", kind, n, len(children)))
	}
	first := count32(len(b.edges), "edge")
	b.edges = append(b.edges, children...)
	b.nodes = append(b.nodes, Node{
		Kind:  kind,
		Span:  sp,
		first: first,
		count: count32(len(children), "child"),
	})
	return NodeID(count32(len(b.nodes), "node"))
}

// Leaf appends a childless node carrying text.
func (b *Builder) Leaf(kind Kind, sp source.Span, text string) NodeID {
	id := b.New(kind, sp)
	if text != "" {
		b.nodes[id-1].Text = b.strs.Intern(text)
	}
	return id
}

// NewList appends a List node. An empty list should get an empty span
// positioned inside its parent.
func (b *Builder) NewList(sp source.Span, elems []NodeID) NodeID {
	return b.New(List, sp, elems...)
}

func (b *Builder) get(id NodeID) *Node {
	if id == NoNode || int(id) > len(b.nodes) {
		panic(fmt.Sprintf("ast: unknown node %d", id))
	}
	return &b.nodes[id-1]
}

func (b *Builder) Kind(id NodeID) Kind {
	if id == NoNode || int(id) > len(b.nodes) {
		return Invalid
	}
	return b.nodes[id-1].Kind
}

func (b *Builder) Span(id NodeID) source.Span {
	if id == NoNode || int(id) > len(b.nodes) {
		return source.Span{}
	}
	return b.nodes[id-1].Span
}

func (b *Builder) Flags(id NodeID) Flags {
	if id == NoNode || int(id) > len(b.nodes) {
		return 0
	}
	return b.nodes[id-1].Flags
}

func (b *Builder) Op(id NodeID) token.Kind {
	if id == NoNode || int(id) > len(b.nodes) {
		return token.Invalid
	}
	return b.nodes[id-1].Op
}

func (b *Builder) Text(id NodeID) string {
	if id == NoNode || int(id) > len(b.nodes) {
		return ""
	}
	s, _ := b.strs.Lookup(b.nodes[id-1].Text)
	return s
}

// Children returns the stored children of id. The slice aliases builder
// storage and must not be retained across New calls.
func (b *Builder) Children(id NodeID) []NodeID {
	n := b.get(id)
	return b.edges[n.first : n.first+n.count]
}

// Child returns the named slot of id.
func (b *Builder) Child(id NodeID, slot string) NodeID {
	n := b.get(id)
	i, ok := n.Kind.SlotIndex(slot)
	if !ok {
		return NoNode
	}
	return b.edges[n.first+uint32(i)]
}

// SetChild overwrites one slot in place.
func (b *Builder) SetChild(id NodeID, i int, child NodeID) {
	n := b.get(id)
	if i < 0 || uint32(i) >= n.count {
		panic(fmt.Sprintf("ast: %s has no slot %d", n.Kind, i))
	}
	b.edges[n.first+uint32(i)] = child
}

func (b *Builder) SetOp(id NodeID, op token.Kind)    { b.get(id).Op = op }
func (b *Builder) SetAux(id NodeID, aux uint16)      { b.get(id).Aux = aux }
func (b *Builder) AddFlags(id NodeID, f Flags)       { b.get(id).Flags |= f }
func (b *Builder) ClearFlags(id NodeID, f Flags)     { b.get(id).Flags &^= f }
func (b *Builder) SetSpan(id NodeID, sp source.Span) { b.get(id).Span = sp }

func (b *Builder) SetText(id NodeID, text string) {
	b.get(id).Text = b.strs.Intern(text)
}

// Retag changes the kind of id to one with the same slot count. The parser
// uses it to reinterpret cover grammar, e.g. an object literal as a pattern.
func (b *Builder) Retag(id NodeID, kind Kind) {
	n := b.get(id)
	if kind.NumSlots() != n.Kind.NumSlots() {
		panic(fmt.Sprintf("ast: cannot retag %s as %s", n.Kind, kind))
	}
	n.Kind = kind
}

// Len is the number of nodes built so far.
func (b *Builder) Len() int { return len(b.nodes) }

// Mark records the current size for speculative parsing.
func (b *Builder) Mark() BuilderMark {
	return BuilderMark{nodes: len(b.nodes), edges: len(b.edges)}
}

// Reset discards every node created after m.
func (b *Builder) Reset(m BuilderMark) {
	if m.nodes < len(b.nodes) {
		b.nodes = b.nodes[:m.nodes]
	}
	if m.edges < len(b.edges) {
		b.edges = b.edges[:m.edges]
	}
}

// Finish freezes the builder into a Tree rooted at root.
func (b *Builder) Finish(root NodeID) *Tree {
	b.done = true
	return &Tree{
		file:  b.file,
		nodes: b.nodes,
		edges: b.edges,
		strs:  b.strs,
		root:  root,
	}
}

// count32 narrows an arena length; a buffer that fits in a File cannot
// produce more nodes than a uint32 holds.
func count32(n int, what string) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("ast: %s count overflow: %w", what, err))
	}
	return v
}
