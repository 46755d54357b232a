package ast

import "slices"

// Step records how a traversal moved from Parent to a child: the slot index
// in Parent's schema, or the element index when Parent is a List.
type Step struct {
	Parent NodeID
	Slot   int
}

// Path is the chain of steps from the traversal root to the current node.
// Walkers reuse the backing array; Clone it to keep it.
type Path []Step

func (p Path) Clone() Path { return slices.Clone(p) }

// Parent returns the immediate parent, or NoNode at the root.
func (p Path) Parent() NodeID {
	if len(p) == 0 {
		return NoNode
	}
	return p[len(p)-1].Parent
}

// Depth is the number of ancestors.
func (p Path) Depth() int { return len(p) }

// Slot returns the schema slot through which the current node was reached.
// Elements of a List report the slot holding the list.
func (p Path) Slot(t *Tree) (Slot, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		k := t.Kind(p[i].Parent)
		if k == List {
			continue
		}
		slots := k.Schema().Slots
		if p[i].Slot < len(slots) {
			return slots[p[i].Slot], true
		}
		return Slot{}, false
	}
	return Slot{}, false
}

// Ancestor returns the nearest ancestor of kind k.
func (p Path) Ancestor(t *Tree, k Kind) (NodeID, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if t.Kind(p[i].Parent) == k {
			return p[i].Parent, true
		}
	}
	return NoNode, false
}

// NodeVisitor receives Enter before a node's children and Leave after them.
// Returning false from Enter skips the children and the matching Leave.
type NodeVisitor interface {
	Enter(t *Tree, id NodeID, path Path) bool
	Leave(t *Tree, id NodeID, path Path)
}

// Walk traverses the tree rooted at t.Root() in source order.
func Walk(t *Tree, v NodeVisitor) {
	WalkFrom(t, t.Root(), v)
}

// WalkFrom traverses the subtree rooted at id.
func WalkFrom(t *Tree, id NodeID, v NodeVisitor) {
	if !t.Valid(id) {
		return
	}
	path := make(Path, 0, 32)
	walk(t, id, v, &path)
}

func walk(t *Tree, id NodeID, v NodeVisitor, path *Path) {
	if !v.Enter(t, id, *path) {
		return
	}
	for i, c := range t.Children(id) {
		if c == NoNode {
			continue
		}
		*path = append(*path, Step{Parent: id, Slot: i})
		walk(t, c, v, path)
		*path = (*path)[:len(*path)-1]
	}
	v.Leave(t, id, *path)
}

type inspector func(NodeID, Path) bool

func (f inspector) Enter(_ *Tree, id NodeID, p Path) bool { return f(id, p) }
func (f inspector) Leave(*Tree, NodeID, Path)             {}

// Inspect calls fn for every node under id in pre-order. Returning false
// prunes the subtree.
func Inspect(t *Tree, id NodeID, fn func(id NodeID, path Path) bool) {
	WalkFrom(t, id, inspector(fn))
}

// ForEachSlot calls fn for every non-empty slot of id with its schema entry.
// List slots are reported once with the List node.
func ForEachSlot(t *Tree, id NodeID, fn func(slot Slot, child NodeID)) {
	slots := t.Kind(id).Schema().Slots
	for i, c := range t.Children(id) {
		if c == NoNode || i >= len(slots) {
			continue
		}
		fn(slots[i], c)
	}
}

// Bindings returns the binding-class children of id, flattening lists.
func Bindings(t *Tree, id NodeID) []NodeID {
	var out []NodeID
	ForEachSlot(t, id, func(s Slot, c NodeID) {
		if s.Class != Binding {
			return
		}
		if s.IsList() {
			out = append(out, t.ListElems(c)...)
			return
		}
		out = append(out, c)
	})
	return out
}

// BoundNames collects the identifiers introduced by a binding target,
// descending through patterns and parameters.
func BoundNames(t *Tree, id NodeID) []NodeID {
	var out []NodeID
	var visit func(NodeID)
	visit = func(n NodeID) {
		switch t.Kind(n) {
		case Identifier:
			out = append(out, n)
		case List:
			for _, e := range t.ListElems(n) {
				visit(e)
			}
		case ObjectPattern, ArrayPattern, PatternProperty, AssignPattern, RestElement, Param,
			VarDecl, VarDeclarator:
			for _, b := range Bindings(t, n) {
				visit(b)
			}
			if t.Kind(n) == VarDecl {
				for _, d := range t.Elems(n, "decls") {
					visit(d)
				}
			}
		}
	}
	visit(id)
	return out
}
