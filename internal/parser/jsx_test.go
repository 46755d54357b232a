package parser_test

import (
	"testing"

	"esfront/internal/ast"
	"esfront/internal/diag"
)

func jsxOf(t *testing.T, src string) (ast.JSX, *ast.Tree) {
	t.Helper()
	res := parseWith(t, src, jsxCfg)
	expectClean(t, res)
	el, ok := res.Tree.JSX(exprOf(t, res))
	if !ok {
		t.Fatalf("not a JSX element:\n%s", dump(res))
	}
	return el, res.Tree
}

func TestJSXChildren(t *testing.T) {
	el, tr := jsxOf(t, "<a>x {y} z<b/>{...rest}</a>")
	want := []ast.Kind{ast.JSXText, ast.JSXExpressionContainer, ast.JSXText, ast.JSXElement, ast.JSXSpreadChild}
	if len(el.Children) != len(want) {
		t.Fatalf("got %d children, want %d", len(el.Children), len(want))
	}
	for i, k := range want {
		if got := tr.Kind(el.Children[i]); got != k {
			t.Fatalf("child %d is %s, want %s", i, got, k)
		}
	}
	if tr.Kind(el.Closing) != ast.JSXClosingElement {
		t.Fatalf("closing tag missing")
	}
}

func TestJSXFragment(t *testing.T) {
	el, tr := jsxOf(t, "<>text<b/></>")
	if !el.Fragment || len(el.Children) != 2 {
		t.Fatalf("fragment = %+v", el)
	}
	if tr.Kind(el.Closing) != ast.JSXClosingFragment {
		t.Fatalf("closing fragment missing")
	}
}

func TestJSXNames(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Kind
	}{
		{"<a/>", ast.JSXIdentifier},
		{"<my-element/>", ast.JSXIdentifier},
		{"<a.b.c/>", ast.JSXMemberExpr},
		{"<svg:rect/>", ast.JSXNamespacedName},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			el, tr := jsxOf(t, tt.src)
			if !el.SelfClosing {
				t.Fatalf("element is not self-closing")
			}
			if got := tr.Kind(el.Name); got != tt.want {
				t.Fatalf("name kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJSXAttributes(t *testing.T) {
	el, tr := jsxOf(t, `<a {...props} b="x" c d={1} e=<f/> xlink:href="#"/>`)
	want := []ast.Kind{ast.JSXSpreadAttribute, ast.JSXAttribute, ast.JSXAttribute, ast.JSXAttribute, ast.JSXAttribute, ast.JSXAttribute}
	if len(el.Attributes) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(el.Attributes), len(want))
	}
	for i, k := range want {
		if got := tr.Kind(el.Attributes[i]); got != k {
			t.Fatalf("attribute %d is %s, want %s", i, got, k)
		}
	}
	if tr.Child(el.Attributes[2], "value") != ast.NoNode {
		t.Fatalf("bare attribute has a value")
	}
	if got := tr.Kind(tr.Child(el.Attributes[3], "value")); got != ast.JSXExpressionContainer {
		t.Fatalf("d value is %s", got)
	}
	if got := tr.Kind(tr.Child(el.Attributes[4], "value")); got != ast.JSXElement {
		t.Fatalf("e value is %s", got)
	}
	if got := tr.Kind(tr.Child(el.Attributes[5], "name")); got != ast.JSXNamespacedName {
		t.Fatalf("xlink:href name is %s", got)
	}
}

func TestJSXEmptyChildExpression(t *testing.T) {
	el, tr := jsxOf(t, "<a>{}{/* note */}</a>")
	for _, c := range el.Children {
		if tr.Kind(tr.Child(c, "expr")) != ast.JSXEmptyExpr {
			t.Fatalf("child %s is not empty", tr.Source(c))
		}
	}

	res := parseWith(t, "<a b={} />", jsxCfg)
	if !hasCode(res, diag.SynJSXEmptyExpression) {
		t.Fatalf("want %s, got %v", diag.SynJSXEmptyExpression.ID(), codes(res))
	}
}

func TestJSXMismatchedClosingTag(t *testing.T) {
	res := parseWith(t, "<a><b></c></a>", jsxCfg)
	if !res.Corrupt {
		t.Fatalf("mismatched tags should corrupt the tree")
	}
	var d diag.Diagnostic
	for _, it := range res.Diagnostics.Items() {
		if it.Code == diag.SynJSXMismatchedClose {
			d = it
			break
		}
	}
	if d.Code != diag.SynJSXMismatchedClose {
		t.Fatalf("want %s, got %v", diag.SynJSXMismatchedClose.ID(), codes(res))
	}
	if len(d.Notes) != 1 {
		t.Fatalf("no note at the opening tag")
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "b" {
		t.Fatalf("fix = %+v, want a rename to b", d.Fixes)
	}

	res = parseWith(t, "<a></>", jsxCfg)
	if !hasCode(res, diag.SynJSXMismatchedClose) {
		t.Fatalf("fragment closer on an element: got %v", codes(res))
	}
}

func TestJSXTextCloseChars(t *testing.T) {
	for _, src := range []string{"<a>x > y</a>", "<a>}</a>"} {
		res := parseWith(t, src, jsxCfg)
		if !hasCode(res, diag.LexJSXTextChar) {
			t.Fatalf("%q: want %s, got %v", src, diag.LexJSXTextChar.ID(), codes(res))
		}
		if res.Diagnostics.Len() != 1 {
			t.Fatalf("%q: one character should give one diagnostic, got %v", src, codes(res))
		}
		expectKind(t, res, exprOf(t, res), ast.JSXElement)
	}
}

func TestJSXUnclosed(t *testing.T) {
	res := parseWith(t, "let el = <div>text", jsxCfg)
	if !hasCode(res, diag.SynJSXUnclosed) {
		t.Fatalf("want %s, got %v", diag.SynJSXUnclosed.ID(), codes(res))
	}
	if !res.Corrupt {
		t.Fatalf("unclosed element should corrupt the tree")
	}
}

func TestJSXAdjacentElements(t *testing.T) {
	res := parseWith(t, "x = <a/><b/>", jsxCfg)
	if !hasCode(res, diag.SynJSXAdjacent) {
		t.Fatalf("want %s, got %v", diag.SynJSXAdjacent.ID(), codes(res))
	}
	seq := mustFind(t, res, ast.SequenceExpr)
	if n := len(res.Tree.Elems(seq, "exprs")); n != 2 {
		t.Fatalf("adjacent elements kept %d of 2", n)
	}
}

func TestJSXInsideExpressions(t *testing.T) {
	for _, src := range []string{
		"const el = cond ? <a/> : <b>{x}</b>",
		"render(<App title={`t ${n}`} onClick={() => go(1)} />)",
		"items.map(i => <li key={i.id}>{i.name}</li>)",
		"<a>{a < b ? 1 : 2}</a>",
	} {
		t.Run(src, func(t *testing.T) {
			expectClean(t, parseWith(t, src, jsxCfg))
		})
	}
}
