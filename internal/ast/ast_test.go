package ast

import (
	"strings"
	"testing"

	"esfront/internal/source"
	"esfront/internal/token"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

// buildSum builds the tree for "x + y;".
func buildSum(t *testing.T) (*Tree, NodeID) {
	t.Helper()
	b := NewBuilder(nil, 0)
	x := b.Leaf(Identifier, sp(0, 1), "x")
	y := b.Leaf(Identifier, sp(4, 5), "y")
	sum := b.New(BinaryExpr, sp(0, 5), x, y)
	b.SetOp(sum, token.Plus)
	stmt := b.New(ExprStmt, sp(0, 6), sum)
	body := b.NewList(sp(0, 6), []NodeID{stmt})
	root := b.New(Program, sp(0, 6), body)
	return b.Finish(root), sum
}

func TestSchemaEveryKindNamed(t *testing.T) {
	for k := Kind(1); k < kindCount; k++ {
		if kindNames[k] == "" {
			t.Fatalf("kind %d has no name", k)
		}
		got, ok := KindByName(k.String())
		if !ok || got != k {
			t.Fatalf("KindByName(%q) = %v, %v", k.String(), got, ok)
		}
		seen := map[string]bool{}
		for _, s := range k.Schema().Slots {
			if seen[s.Name] {
				t.Fatalf("%s declares slot %q twice", k, s.Name)
			}
			seen[s.Name] = true
		}
	}
}

func TestSchemaBindingSlots(t *testing.T) {
	cases := []struct {
		kind Kind
		slot string
		want SlotClass
	}{
		{VarDeclarator, "id", Binding},
		{VarDeclarator, "init", Visitor},
		{FunctionDecl, "params", Binding},
		{FunctionDecl, "body", Visitor},
		{CatchClause, "param", Binding},
		{ImportSpecifier, "local", Binding},
		{ImportSpecifier, "imported", Visitor},
		{PatternProperty, "key", Visitor},
		{PatternProperty, "value", Binding},
		{MemberExpr, "object", Visitor},
	}
	for _, tc := range cases {
		i, ok := tc.kind.SlotIndex(tc.slot)
		if !ok {
			t.Fatalf("%s has no slot %q", tc.kind, tc.slot)
		}
		if got := tc.kind.Schema().Slots[i].Class; got != tc.want {
			t.Errorf("%s.%s = %s, want %s", tc.kind, tc.slot, got, tc.want)
		}
	}
}

func TestBuilderRejectsWrongArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	b := NewBuilder(nil, 0)
	x := b.Leaf(Identifier, sp(0, 1), "x")
	b.New(BinaryExpr, sp(0, 1), x)
}

func TestBuilderMarkReset(t *testing.T) {
	b := NewBuilder(nil, 0)
	b.Leaf(Identifier, sp(0, 1), "a")
	m := b.Mark()
	b.Leaf(Identifier, sp(2, 3), "b")
	b.NewList(sp(2, 3), []NodeID{2})
	b.Reset(m)
	if b.Len() != 1 {
		t.Fatalf("Len after Reset = %d, want 1", b.Len())
	}
}

func TestTreeAccessorsAndViews(t *testing.T) {
	tr, sum := buildSum(t)
	if tr.Kind(tr.Root()) != Program {
		t.Fatalf("root kind = %s", tr.Kind(tr.Root()))
	}
	bin, ok := tr.Binary(sum)
	if !ok || bin.Op != token.Plus || bin.Logical {
		t.Fatalf("Binary = %+v, %v", bin, ok)
	}
	if tr.Text(bin.Left) != "x" || tr.Text(bin.Right) != "y" {
		t.Fatalf("operands = %q %q", tr.Text(bin.Left), tr.Text(bin.Right))
	}
	if got := len(tr.Statements(tr.Root())); got != 1 {
		t.Fatalf("Statements = %d", got)
	}
	if _, ok := tr.Call(sum); ok {
		t.Fatal("Call view accepted a BinaryExpr")
	}
}

func TestWalkOrderAndPath(t *testing.T) {
	tr, _ := buildSum(t)
	var kinds []string
	depthOfY := -1
	Inspect(tr, tr.Root(), func(id NodeID, p Path) bool {
		kinds = append(kinds, tr.Kind(id).String())
		if tr.Text(id) == "y" {
			depthOfY = p.Depth()
			if s, ok := p.Slot(tr); !ok || s.Name != "right" {
				t.Errorf("slot of y = %+v", s)
			}
		}
		return true
	})
	want := "Program List ExprStmt BinaryExpr Identifier Identifier"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("order = %q, want %q", got, want)
	}
	if depthOfY != 4 {
		t.Fatalf("depth of y = %d, want 4", depthOfY)
	}
}

type leaveCounter struct {
	skip  Kind
	enter int
	leave int
}

func (c *leaveCounter) Enter(t *Tree, id NodeID, _ Path) bool {
	c.enter++
	return t.Kind(id) != c.skip
}

func (c *leaveCounter) Leave(*Tree, NodeID, Path) { c.leave++ }

func TestWalkNodeVisitorSkipsSubtree(t *testing.T) {
	tr, _ := buildSum(t)
	var v NodeVisitor = &leaveCounter{skip: BinaryExpr}
	Walk(tr, v)
	c := v.(*leaveCounter)
	// Program List ExprStmt BinaryExpr; the skipped node gets no Leave.
	if c.enter != 4 || c.leave != 3 {
		t.Fatalf("enter=%d leave=%d, want 4 and 3", c.enter, c.leave)
	}
}

func TestCount32Overflow(t *testing.T) {
	if got := count32(7, "node"); got != 7 {
		t.Fatalf("count32(7) = %d", got)
	}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !strings.Contains(err.Error(), "node count overflow") {
			t.Fatalf("recovered %v", r)
		}
	}()
	count32(1<<33, "node")
}

func TestDumpCompact(t *testing.T) {
	tr, _ := buildSum(t)
	got := DumpCompact(tr, tr.Root())
	want := `(Program [(ExprStmt (BinaryExpr op=+ (Identifier "x") (Identifier "y")))])`
	if got != want {
		t.Fatalf("dump:\n got %s\nwant %s", got, want)
	}
}

func TestEditorSharesBase(t *testing.T) {
	tr, sum := buildSum(t)
	before := DumpCompact(tr, tr.Root())

	ed := NewEditor(tr)
	z := ed.Leaf(Identifier, sp(4, 5), "z")
	if !ed.ReplaceNode(tr.Children(sum)[1], z) {
		t.Fatal("ReplaceNode did not find y")
	}
	out, err := ed.Commit()
	if err != nil {
		t.Fatal(err)
	}

	if got := DumpCompact(tr, tr.Root()); got != before {
		t.Fatalf("base changed:\n%s", got)
	}
	got := DumpCompact(out, out.Root())
	if !strings.Contains(got, `(Identifier {synthetic} "z")`) {
		t.Fatalf("edited dump = %s", got)
	}
	if out.Root() == tr.Root() {
		t.Fatal("root was not rebuilt")
	}
	// x is shared, not copied.
	newSum := out.Child(out.ListElems(out.Child(out.Root(), "body"))[0], "expr")
	if out.Children(newSum)[0] != tr.Children(sum)[0] {
		t.Fatal("untouched child was copied")
	}
	if _, err := ed.Commit(); err == nil {
		t.Fatal("second Commit succeeded")
	}
}

func TestEditorKeepsBindingSlots(t *testing.T) {
	b := NewBuilder(nil, 0)
	id := b.Leaf(Identifier, sp(4, 5), "a")
	init := b.Leaf(NumericLit, sp(8, 9), "1")
	d := b.New(VarDeclarator, sp(4, 9), id, NoNode, init)
	list := b.NewList(sp(4, 9), []NodeID{d})
	decl := b.New(VarDecl, sp(0, 10), list)
	b.SetOp(decl, token.KwLet)
	tr := b.Finish(decl)

	ed := NewEditor(tr)
	call := ed.New(CallExpr, sp(0, 0), id, NoNode, ed.NewList(sp(0, 0), nil))
	ed.WithSlot(d, "id", call)
	if _, err := ed.Commit(); err == nil {
		t.Fatal("expected error placing a call in a binding slot")
	}
}

func TestEqualAndBoundNames(t *testing.T) {
	a, _ := buildSum(t)
	b, _ := buildSum(t)
	if !EqualTrees(a, b, EqualOptions{}) {
		t.Fatal("identical builds differ")
	}

	bl := NewBuilder(nil, 0)
	x := bl.Leaf(Identifier, sp(5, 6), "x")
	y := bl.Leaf(Identifier, sp(8, 9), "y")
	def := bl.Leaf(NumericLit, sp(12, 13), "1")
	ay := bl.New(AssignPattern, sp(8, 13), y, def)
	elems := bl.NewList(sp(4, 14), []NodeID{x, ay})
	pat := bl.New(ArrayPattern, sp(4, 14), elems)
	d := bl.New(VarDeclarator, sp(4, 14), pat, NoNode, NoNode)
	decls := bl.NewList(sp(4, 14), []NodeID{d})
	decl := bl.New(VarDecl, sp(0, 15), decls)
	tr := bl.Finish(decl)

	var names []string
	for _, n := range BoundNames(tr, decl) {
		names = append(names, tr.Text(n))
	}
	if got := strings.Join(names, ","); got != "x,y" {
		t.Fatalf("BoundNames = %s", got)
	}
}

func TestWithCommentsIsACopy(t *testing.T) {
	tr, sum := buildSum(t)
	c := Comments{Trailing: []token.Trivia{{Kind: token.TriviaLineComment, Text: "// hi"}}}
	withC := tr.WithComments(map[NodeID]Comments{sum: c})
	if tr.HasComments() {
		t.Fatal("original gained comments")
	}
	if got := withC.Comments(sum); len(got.Trailing) != 1 {
		t.Fatalf("comments = %+v", got)
	}
	if EqualTrees(tr, withC, EqualOptions{}) {
		t.Fatal("comment difference ignored")
	}
	if !EqualTrees(tr, withC, EqualOptions{IgnoreComments: true}) {
		t.Fatal("trees differ beyond comments")
	}
}
