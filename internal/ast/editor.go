package ast

import (
	"errors"
	"fmt"

	"esfront/internal/source"
	"esfront/internal/token"
)

// Editor produces a new Tree from a base tree without touching it. New and
// copied nodes go to an overlay layer; every untouched node is shared.
type Editor struct {
	t   *Tree
	err error
}

var ErrCommitted = errors.New("ast: editor already committed")

func NewEditor(base *Tree) *Editor {
	return &Editor{t: &Tree{
		file:     base.file,
		base:     base,
		baseLen:  uint32(base.Len()),
		strs:     source.NewInterner(),
		root:     base.root,
		comments: make(map[NodeID]Comments),
	}}
}

// Tree is a read view of the tree being edited, valid until Commit.
func (e *Editor) Tree() *Tree { return e.t }

func (e *Editor) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Editor) own(id NodeID) *Node {
	if uint32(id) <= e.t.baseLen || !e.t.Valid(id) {
		return nil
	}
	return &e.t.nodes[uint32(id)-e.t.baseLen-1]
}

func (e *Editor) add(n Node, children []NodeID) NodeID {
	n.first = count32(len(e.t.edges), "edge")
	n.count = count32(len(children), "child")
	e.t.edges = append(e.t.edges, children...)
	e.t.nodes = append(e.t.nodes, n)
	return NodeID(e.t.Len())
}

// New creates a synthetic node.
func (e *Editor) New(kind Kind, sp source.Span, children ...NodeID) NodeID {
	if n := kind.NumSlots(); n >= 0 && n != len(children) {
		e.fail(fmt.Errorf("ast: %s takes %d children, got %d", kind, n, len(children)))
		return NoNode
	}
	for i, c := range children {
		e.checkSlot(kind, i, c)
	}
	return e.add(Node{Kind: kind, Span: sp, Flags: FlagSynthetic}, children)
}

// Leaf creates a synthetic childless node with text.
func (e *Editor) Leaf(kind Kind, sp source.Span, text string) NodeID {
	id := e.New(kind, sp)
	if n := e.own(id); n != nil && text != "" {
		n.Text = e.t.strs.Intern(text)
	}
	return id
}

// NewList creates a synthetic List.
func (e *Editor) NewList(sp source.Span, elems []NodeID) NodeID {
	return e.New(List, sp, elems...)
}

// SetOp, SetAux and AddFlags apply only to nodes created by this editor.
func (e *Editor) SetOp(id NodeID, op token.Kind) {
	if n := e.own(id); n != nil {
		n.Op = op
		return
	}
	e.fail(fmt.Errorf("ast: node %d belongs to the base tree", id))
}

func (e *Editor) SetAux(id NodeID, aux uint16) {
	if n := e.own(id); n != nil {
		n.Aux = aux
		return
	}
	e.fail(fmt.Errorf("ast: node %d belongs to the base tree", id))
}

func (e *Editor) AddFlags(id NodeID, f Flags) {
	if n := e.own(id); n != nil {
		n.Flags |= f
		return
	}
	e.fail(fmt.Errorf("ast: node %d belongs to the base tree", id))
}

// Copy duplicates id into the overlay with the same children, text and
// comments. The copy keeps the original span.
func (e *Editor) Copy(id NodeID) NodeID {
	if !e.t.Valid(id) {
		e.fail(fmt.Errorf("ast: unknown node %d", id))
		return NoNode
	}
	n := e.t.Node(id)
	text := e.t.Text(id)
	n.Text = source.NoStringID
	if text != "" {
		n.Text = e.t.strs.Intern(text)
	}
	out := e.add(n, append([]NodeID(nil), e.t.Children(id)...))
	if c := e.t.Comments(id); !c.Empty() {
		e.t.comments[out] = c
	}
	return out
}

// WithChild returns a copy of parent whose slot i holds child.
func (e *Editor) WithChild(parent NodeID, i int, child NodeID) NodeID {
	kids := e.t.Children(parent)
	if i < 0 || i >= len(kids) {
		e.fail(fmt.Errorf("ast: %s has no slot %d", e.t.Kind(parent), i))
		return parent
	}
	e.checkSlot(e.t.Kind(parent), i, child)
	cp := e.Copy(parent)
	n := e.own(cp)
	e.t.edges[n.first+uint32(i)] = child
	return cp
}

// WithSlot is WithChild addressed by slot name.
func (e *Editor) WithSlot(parent NodeID, slot string, child NodeID) NodeID {
	i, ok := e.t.Kind(parent).SlotIndex(slot)
	if !ok {
		e.fail(fmt.Errorf("ast: %s has no slot %q", e.t.Kind(parent), slot))
		return parent
	}
	return e.WithChild(parent, i, child)
}

// WithElems returns a new List holding elems, spanning the old list.
func (e *Editor) WithElems(list NodeID, elems []NodeID) NodeID {
	if e.t.Kind(list) != List {
		e.fail(fmt.Errorf("ast: node %d is %s, not List", list, e.t.Kind(list)))
		return list
	}
	return e.add(Node{Kind: List, Span: e.t.Span(list), Flags: FlagSynthetic}, elems)
}

// Replace rebuilds every ancestor on path so that the node reached by the
// path's last step becomes replacement. It returns the new root, which also
// becomes the editor's root when path starts at it.
func (e *Editor) Replace(path Path, replacement NodeID) NodeID {
	cur := replacement
	for i := len(path) - 1; i >= 0; i-- {
		cur = e.WithChild(path[i].Parent, path[i].Slot, cur)
	}
	if len(path) == 0 || path[0].Parent == e.t.root {
		e.t.root = cur
	}
	return cur
}

// ReplaceNode finds target under the root and replaces it. It reports false
// when target is not reachable.
func (e *Editor) ReplaceNode(target, replacement NodeID) bool {
	if target == e.t.root {
		e.t.root = replacement
		return true
	}
	var found Path
	Inspect(e.t, e.t.root, func(id NodeID, p Path) bool {
		if found != nil {
			return false
		}
		if id == target {
			found = p.Clone()
			return false
		}
		return true
	})
	if found == nil {
		return false
	}
	e.Replace(found, replacement)
	return true
}

// SetComments attaches comments to id in the new tree.
func (e *Editor) SetComments(id NodeID, c Comments) {
	e.t.comments[id] = c
}

// Commit freezes the overlay. The editor must not be used afterwards.
func (e *Editor) Commit() (*Tree, error) {
	if e.t == nil {
		return nil, ErrCommitted
	}
	t, err := e.t, e.err
	e.t = nil
	if err != nil {
		return nil, err
	}
	return t, nil
}

// checkSlot keeps binding slots holding binding targets so rewrites cannot
// break the slot classification.
func (e *Editor) checkSlot(parent Kind, i int, child NodeID) {
	slots := parent.Schema().Slots
	if i >= len(slots) {
		return
	}
	s := slots[i]
	if child == NoNode {
		if !s.IsOptional() {
			e.fail(fmt.Errorf("ast: slot %s.%s is required", parent, s.Name))
		}
		return
	}
	k := e.t.Kind(child)
	if s.IsList() && k != List {
		e.fail(fmt.Errorf("ast: slot %s.%s expects a List, got %s", parent, s.Name, k))
		return
	}
	if s.Class == Binding && !s.IsList() && !IsBindingTarget(k) {
		e.fail(fmt.Errorf("ast: binding slot %s.%s cannot hold %s", parent, s.Name, k))
	}
}

// IsBindingTarget reports whether a node of kind k may sit in a binding slot.
func IsBindingTarget(k Kind) bool {
	switch k {
	case Identifier, ObjectPattern, ArrayPattern, AssignPattern, RestElement,
		Param, TypeParam, MissingBinding, StringLit, QualifiedName:
		return true
	}
	return false
}
