package ast

import (
	"esfront/internal/source"
	"esfront/internal/token"
)

// Typed views decode the slots of frequently used kinds. Each accessor
// reports false when id has a different kind.

type Binary struct {
	Op          token.Kind
	Left, Right NodeID
	// Logical is set for &&, || and ??.
	Logical bool
}

func (t *Tree) Binary(id NodeID) (Binary, bool) {
	k := t.Kind(id)
	if k != BinaryExpr && k != LogicalExpr {
		return Binary{}, false
	}
	ch := t.Children(id)
	return Binary{Op: t.Op(id), Left: ch[0], Right: ch[1], Logical: k == LogicalExpr}, true
}

type Assign struct {
	Op          token.Kind
	Left, Right NodeID
}

func (t *Tree) Assign(id NodeID) (Assign, bool) {
	if t.Kind(id) != AssignExpr {
		return Assign{}, false
	}
	ch := t.Children(id)
	return Assign{Op: t.Op(id), Left: ch[0], Right: ch[1]}, true
}

type Unary struct {
	Op     token.Kind
	Arg    NodeID
	Update bool
	Prefix bool
}

func (t *Tree) Unary(id NodeID) (Unary, bool) {
	switch t.Kind(id) {
	case UnaryExpr:
		return Unary{Op: t.Op(id), Arg: t.ChildAt(id, 0), Prefix: true}, true
	case UpdateExpr:
		return Unary{Op: t.Op(id), Arg: t.ChildAt(id, 0), Update: true, Prefix: t.Has(id, FlagPrefix)}, true
	}
	return Unary{}, false
}

type Call struct {
	Callee   NodeID
	TypeArgs []NodeID
	Args     []NodeID
	Optional bool
	New      bool
}

// Call decodes CallExpr and NewExpr.
func (t *Tree) Call(id NodeID) (Call, bool) {
	k := t.Kind(id)
	if k != CallExpr && k != NewExpr {
		return Call{}, false
	}
	ch := t.Children(id)
	return Call{
		Callee:   ch[0],
		TypeArgs: t.ListElems(ch[1]),
		Args:     t.ListElems(ch[2]),
		Optional: t.Has(id, FlagOptional),
		New:      k == NewExpr,
	}, true
}

type Member struct {
	Object, Property NodeID
	Computed         bool
	Optional         bool
}

func (t *Tree) Member(id NodeID) (Member, bool) {
	if t.Kind(id) != MemberExpr {
		return Member{}, false
	}
	ch := t.Children(id)
	return Member{
		Object:   ch[0],
		Property: ch[1],
		Computed: t.Has(id, FlagComputed),
		Optional: t.Has(id, FlagOptional),
	}, true
}

type Function struct {
	Kind       Kind
	Name       NodeID
	TypeParams []NodeID
	Params     []NodeID
	ReturnType NodeID
	Body       NodeID
	Async      bool
	Generator  bool
}

// Function decodes FunctionDecl, FunctionExpr, ArrowFunc and MethodDef.
func (t *Tree) Function(id NodeID) (Function, bool) {
	k := t.Kind(id)
	f := Function{
		Kind:      k,
		Async:     t.Has(id, FlagAsync),
		Generator: t.Has(id, FlagGenerator),
	}
	switch k {
	case FunctionDecl, FunctionExpr:
		f.Name = t.Child(id, "id")
	case ArrowFunc:
	case MethodDef:
		f.Name = t.Child(id, "key")
	default:
		return Function{}, false
	}
	f.TypeParams = t.Elems(id, "typeParams")
	f.Params = t.Elems(id, "params")
	f.ReturnType = t.Child(id, "returnType")
	f.Body = t.Child(id, "body")
	return f, true
}

type Class struct {
	Decorators []NodeID
	Name       NodeID
	TypeParams []NodeID
	SuperClass NodeID
	Implements []NodeID
	Members    []NodeID
	Abstract   bool
}

// Class decodes ClassDecl and ClassExpr.
func (t *Tree) Class(id NodeID) (Class, bool) {
	k := t.Kind(id)
	if k != ClassDecl && k != ClassExpr {
		return Class{}, false
	}
	return Class{
		Decorators: t.Elems(id, "decorators"),
		Name:       t.Child(id, "id"),
		TypeParams: t.Elems(id, "typeParams"),
		SuperClass: t.Child(id, "superClass"),
		Implements: t.Elems(id, "implements"),
		Members:    t.Elems(t.Child(id, "body"), "members"),
		Abstract:   t.Has(id, FlagAbstract),
	}, true
}

type VarDeclaration struct {
	Keyword      token.Kind
	Declarations []Declarator
}

type Declarator struct {
	ID, Type, Init NodeID
}

func (t *Tree) VarDeclaration(id NodeID) (VarDeclaration, bool) {
	if t.Kind(id) != VarDecl {
		return VarDeclaration{}, false
	}
	out := VarDeclaration{Keyword: t.Op(id)}
	for _, d := range t.Elems(id, "decls") {
		ch := t.Children(d)
		if len(ch) != 3 {
			continue
		}
		out.Declarations = append(out.Declarations, Declarator{ID: ch[0], Type: ch[1], Init: ch[2]})
	}
	return out, true
}

type Import struct {
	Specifiers []NodeID
	Source     NodeID
	TypeOnly   bool
}

func (t *Tree) Import(id NodeID) (Import, bool) {
	if t.Kind(id) != ImportDecl {
		return Import{}, false
	}
	return Import{
		Specifiers: t.Elems(id, "specifiers"),
		Source:     t.Child(id, "source"),
		TypeOnly:   t.Has(id, FlagTypeOnly),
	}, true
}

type JSX struct {
	Fragment    bool
	Name        NodeID
	Attributes  []NodeID
	Children    []NodeID
	SelfClosing bool
	Closing     NodeID
}

// JSX decodes JSXElement and JSXFragment.
func (t *Tree) JSX(id NodeID) (JSX, bool) {
	switch t.Kind(id) {
	case JSXElement:
		open := t.Child(id, "opening")
		return JSX{
			Name:        t.Child(open, "name"),
			Attributes:  t.Elems(open, "attrs"),
			Children:    t.Elems(id, "children"),
			SelfClosing: t.Has(open, FlagSelfClosing),
			Closing:     t.Child(id, "closing"),
		}, true
	case JSXFragment:
		return JSX{
			Fragment: true,
			Children: t.Elems(id, "children"),
			Closing:  t.Child(id, "closing"),
		}, true
	}
	return JSX{}, false
}

// Statements returns the statement list of Program, BlockStmt, ModuleBlock
// and StaticBlock nodes.
func (t *Tree) Statements(id NodeID) []NodeID {
	switch t.Kind(id) {
	case Program, BlockStmt, ModuleBlock, StaticBlock:
		return t.Elems(id, "body")
	}
	return nil
}

// DeclaredName returns the identifier text of a declaration's id slot.
func (t *Tree) DeclaredName(id NodeID) (string, source.Span, bool) {
	n := t.Child(id, "id")
	if n == NoNode || t.Kind(n) != Identifier {
		return "", source.Span{}, false
	}
	return t.Text(n), t.Span(n), true
}
