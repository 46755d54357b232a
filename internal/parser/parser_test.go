package parser_test

import (
	"strings"
	"testing"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/dialect"
	"esfront/internal/parser"
	"esfront/internal/source"
	"esfront/internal/testkit"
	"esfront/internal/token"
)

var (
	jsCfg  = dialect.Default()
	jsxCfg = dialect.Default().With(dialect.JSX)
	tsCfg  = dialect.Default().With(dialect.TypeScript)
	tsxCfg = tsCfg.With(dialect.JSX)
	// scriptCfg is a classic script without module semantics.
	scriptCfg = dialect.Config{}
)

func parseWith(t *testing.T, src string, cfg dialect.Config) *parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(src))
	res := parser.Parse(fs.Get(fileID), cfg, parser.Options{})
	if err := testkit.Check(res.Tree, res.Diagnostics); err != nil {
		t.Fatalf("%q: %v\n%s", src, err, ast.Dump(res.Tree, res.Root, ast.DumpOptions{Spans: true, Indent: true}))
	}
	return res
}

func parseJS(t *testing.T, src string) *parser.Result {
	t.Helper()
	return parseWith(t, src, jsCfg)
}

func statements(res *parser.Result) []ast.NodeID {
	return res.Tree.Statements(res.Root)
}

// onlyStmt returns the single top-level statement.
func onlyStmt(t *testing.T, res *parser.Result) ast.NodeID {
	t.Helper()
	stmts := statements(res)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1:\n%s", len(stmts), dump(res))
	}
	return stmts[0]
}

// exprOf unwraps the expression of a single ExprStmt program.
func exprOf(t *testing.T, res *parser.Result) ast.NodeID {
	t.Helper()
	stmt := onlyStmt(t, res)
	if k := res.Tree.Kind(stmt); k != ast.ExprStmt {
		t.Fatalf("statement is %s, want ExprStmt:\n%s", k, dump(res))
	}
	return res.Tree.Child(stmt, "expr")
}

func dump(res *parser.Result) string {
	return ast.Dump(res.Tree, res.Root, ast.DumpOptions{Indent: true})
}

func codes(res *parser.Result) []diag.Code {
	items := res.Diagnostics.Items()
	out := make([]diag.Code, 0, len(items))
	for _, d := range items {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(res *parser.Result, code diag.Code) bool {
	for _, d := range res.Diagnostics.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func expectClean(t *testing.T, res *parser.Result) {
	t.Helper()
	if res.Diagnostics.Len() != 0 || res.Corrupt {
		for _, d := range res.Diagnostics.Items() {
			t.Logf("%s %v: %s", d.Code.ID(), d.Primary, d.Message)
		}
		t.Fatalf("%q: want a clean parse, got %v (corrupt=%v)\n%s", res.File.Content, codes(res), res.Corrupt, dump(res))
	}
}

func expectKind(t *testing.T, res *parser.Result, id ast.NodeID, want ast.Kind) {
	t.Helper()
	if got := res.Tree.Kind(id); got != want {
		t.Fatalf("node %d is %s, want %s:\n%s", id, got, want, dump(res))
	}
}

func TestMixedNullishIsReported(t *testing.T) {
	res := parseJS(t, "1 && 2 ?? 3")
	if !hasCode(res, diag.SynMixedNullish) {
		t.Fatalf("want %s, got %v", diag.SynMixedNullish.ID(), codes(res))
	}
	d := res.Diagnostics.Items()[0]
	if len(d.Fixes) == 0 {
		t.Fatalf("mixed nullish diagnostic has no fix")
	}
}

func TestParenthesizedNullishIsAccepted(t *testing.T) {
	expectClean(t, parseJS(t, "(1 && 2) ?? 3"))
	expectClean(t, parseJS(t, "1 && (2 ?? 3)"))
}

func TestMissingCommaBetweenProperties(t *testing.T) {
	res := parseJS(t, "var o = {one: function() {} two:2};")
	if n := res.Diagnostics.Len(); n != 1 {
		t.Fatalf("got %d diagnostics %v, want 1", n, codes(res))
	}
	if !res.Corrupt {
		t.Fatalf("recovered parse should be corrupt")
	}
	decl, ok := res.Tree.VarDeclaration(onlyStmt(t, res))
	if !ok || len(decl.Declarations) != 1 {
		t.Fatalf("want one var declarator:\n%s", dump(res))
	}
	obj := decl.Declarations[0].Init
	expectKind(t, res, obj, ast.ObjectLit)
	props := res.Tree.Elems(obj, "props")
	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2:\n%s", len(props), dump(res))
	}
	for i, want := range []string{"one", "two"} {
		if got := res.Tree.Text(res.Tree.Child(props[i], "key")); got != want {
			t.Fatalf("property %d key = %q, want %q", i, got, want)
		}
	}
}

func TestExponentBindsTighterThanMultiply(t *testing.T) {
	res := parseJS(t, "x * y ** -z")
	expectClean(t, res)
	tr := res.Tree

	mul, ok := tr.Binary(exprOf(t, res))
	if !ok || mul.Op != token.Star {
		t.Fatalf("root is not '*':\n%s", dump(res))
	}
	if tr.Text(mul.Left) != "x" {
		t.Fatalf("left of '*' = %q", tr.Source(mul.Left))
	}
	pow, ok := tr.Binary(mul.Right)
	if !ok || pow.Op != token.StarStar {
		t.Fatalf("right of '*' is not '**':\n%s", dump(res))
	}
	if tr.Text(pow.Left) != "y" {
		t.Fatalf("left of '**' = %q", tr.Source(pow.Left))
	}
	neg, ok := tr.Unary(pow.Right)
	if !ok || neg.Op != token.Minus || tr.Text(neg.Arg) != "z" {
		t.Fatalf("right of '**' is not -z:\n%s", dump(res))
	}
}

func TestExponentRightAssociative(t *testing.T) {
	res := parseJS(t, "a ** b ** c")
	expectClean(t, res)
	outer, _ := res.Tree.Binary(exprOf(t, res))
	if res.Tree.Text(outer.Left) != "a" {
		t.Fatalf("'**' should associate to the right:\n%s", dump(res))
	}
	if inner, ok := res.Tree.Binary(outer.Right); !ok || inner.Op != token.StarStar {
		t.Fatalf("right operand is not b ** c:\n%s", dump(res))
	}
}

func TestUnaryExponentBaseIsRejected(t *testing.T) {
	res := parseJS(t, "-x ** 2")
	if !hasCode(res, diag.SynExponentUnary) {
		t.Fatalf("want %s, got %v", diag.SynExponentUnary.ID(), codes(res))
	}
	expectClean(t, parseJS(t, "(-x) ** 2"))
}

func TestSelfClosingJSXWithExpressionAttribute(t *testing.T) {
	res := parseWith(t, "<img width={320}/>", jsxCfg)
	expectClean(t, res)
	tr := res.Tree

	el := exprOf(t, res)
	expectKind(t, res, el, ast.JSXElement)
	jsx, _ := tr.JSX(el)
	if !jsx.SelfClosing || jsx.Closing != ast.NoNode || len(jsx.Children) != 0 {
		t.Fatalf("want a self-closing element:\n%s", dump(res))
	}
	if tr.Source(jsx.Name) != "img" {
		t.Fatalf("element name = %q", tr.Source(jsx.Name))
	}
	if len(jsx.Attributes) != 1 {
		t.Fatalf("got %d attributes, want 1", len(jsx.Attributes))
	}
	attr := jsx.Attributes[0]
	expectKind(t, res, attr, ast.JSXAttribute)
	if tr.Source(tr.Child(attr, "name")) != "width" {
		t.Fatalf("attribute name = %q", tr.Source(tr.Child(attr, "name")))
	}
	value := tr.Child(attr, "value")
	expectKind(t, res, value, ast.JSXExpressionContainer)
	lit := tr.Child(value, "expr")
	expectKind(t, res, lit, ast.NumericLit)
	if tr.Source(lit) != "320" {
		t.Fatalf("literal = %q, want 320", tr.Source(lit))
	}
}

func TestForInVarDestructuringWithInitializer(t *testing.T) {
	res := parseJS(t, "for (var [p]=0 in q);")
	expectClean(t, res)
	tr := res.Tree

	loop := onlyStmt(t, res)
	expectKind(t, res, loop, ast.ForInStmt)
	left := tr.Child(loop, "left")
	decl, ok := tr.VarDeclaration(left)
	if !ok || decl.Keyword != token.KwVar || len(decl.Declarations) != 1 {
		t.Fatalf("left side is not a var declaration:\n%s", dump(res))
	}
	expectKind(t, res, decl.Declarations[0].ID, ast.ArrayPattern)
	expectKind(t, res, decl.Declarations[0].Init, ast.NumericLit)
	if tr.Text(tr.Child(loop, "right")) != "q" {
		t.Fatalf("right side = %q", tr.Source(tr.Child(loop, "right")))
	}
	expectKind(t, res, tr.Child(loop, "body"), ast.EmptyStmt)
}

func TestForOfInitializerIsRejected(t *testing.T) {
	res := parseJS(t, "for (let x = 0 of q);")
	if !hasCode(res, diag.SynForInitializer) {
		t.Fatalf("want %s, got %v", diag.SynForInitializer.ID(), codes(res))
	}
}

func TestDecoratedClassExpression(t *testing.T) {
	res := parseJS(t, "let a = @decorator class {};")
	expectClean(t, res)
	tr := res.Tree

	decl, ok := tr.VarDeclaration(onlyStmt(t, res))
	if !ok || len(decl.Declarations) != 1 {
		t.Fatalf("want one declarator:\n%s", dump(res))
	}
	cls := decl.Declarations[0].Init
	expectKind(t, res, cls, ast.ClassExpr)
	view, _ := tr.Class(cls)
	if len(view.Decorators) != 1 {
		t.Fatalf("got %d decorators, want 1:\n%s", len(view.Decorators), dump(res))
	}
	expectKind(t, res, view.Decorators[0], ast.Decorator)
	if tr.Text(tr.Child(view.Decorators[0], "expr")) != "decorator" {
		t.Fatalf("decorator expression = %q", tr.Source(view.Decorators[0]))
	}
}

func TestDecoratorsDisabled(t *testing.T) {
	cfg := jsCfg
	cfg.Decorators = false
	res := parseWith(t, "@dec class A {}", cfg)
	if !hasCode(res, diag.DialectDecorators) {
		t.Fatalf("want %s, got %v", diag.DialectDecorators.ID(), codes(res))
	}
	expectKind(t, res, onlyStmt(t, res), ast.ClassDecl)
}

func TestParseIsIdempotent(t *testing.T) {
	srcs := []string{
		"import a, {b as c} from 'm';\nexport default class extends a { #x = 1; static { c(); } }",
		"const f = async (x, ...rest) => { for await (const y of x) yield* rest; };",
		"label: while (true) { if (a) continue label; else break; }",
		"var o = {one: function() {} two:2};",
		"x = `a${b}c${`d${e}`}f`; /re/g.test(x) // trailing",
	}
	for _, src := range srcs {
		a := parseJS(t, src)
		b := parseJS(t, src)
		if !ast.EqualTrees(a.Tree, b.Tree, ast.EqualOptions{}) {
			t.Fatalf("%q: trees differ between parses", src)
		}
		if len(codes(a)) != len(codes(b)) {
			t.Fatalf("%q: diagnostics differ between parses", src)
		}
	}
}

func TestTotality(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\x00\xff\xfe",
		"\xe2\x82",
		"((((((",
		"))))",
		"}}}{{{",
		"`${",
		"`${a}${",
		"'unterminated",
		"/*",
		"/unterminated",
		"a ? b :",
		"let [",
		"let {a, ...b, c} = d",
		"for (;;",
		"for (let x of",
		"@",
		"x => {",
		"async function* () { await",
		"class { constructor( }",
		"class A extends { static #x }",
		"switch (x) { case 1: default: default: }",
		"try {} catch",
		"import {",
		"export { a as",
		"new.target",
		"a?.b`c`",
		"new a?.b()",
		"<div><span></div>",
		"<>",
		"<a b={} />",
		"<T,>(x: T) => x",
		"type A<T> = T extends infer U ? U : never",
		"interface I { [k: string]: number; m?(): void }",
		"enum E { A = 1, 'b', [c] }",
		"namespace N.M { export const x = 1 }",
		"declare module 'm' { export = x }",
		"function f(this: Window, a?: number): asserts a is number {}",
		"let x: { readonly [K in keyof T]-?: T[K] }",
		"abstract class A { abstract m(): void; private constructor(readonly x: number) { super() } }",
		"f<string>(1); a < b > c; x as unknown as T; y!; z satisfies U",
		strings.Repeat("(", 2000) + "x" + strings.Repeat(")", 2000),
		strings.Repeat("[", 1500),
		strings.Repeat("a + ", 3000) + "b",
		strings.Repeat("{", 1000) + strings.Repeat("}", 1000),
		strings.Repeat("<a>", 600),
		strings.Repeat("let x: Array<", 300),
	}
	for _, cfg := range []dialect.Config{jsCfg, jsxCfg, tsCfg, tsxCfg, scriptCfg} {
		for _, src := range inputs {
			res := parseWith(t, src, cfg)
			if res.Tree == nil || res.Root == ast.NoNode {
				t.Fatalf("%q (%s): no tree", src, cfg)
			}
		}
	}
}

func TestNestingTooDeep(t *testing.T) {
	res := parseJS(t, strings.Repeat("(", 2000)+"x"+strings.Repeat(")", 2000))
	if !hasCode(res, diag.SynNestingTooDeep) {
		t.Fatalf("want %s, got %v", diag.SynNestingTooDeep.ID(), codes(res))
	}
}

func TestDiagnosticsAreCapped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(strings.Repeat("let = ;\n", 200)))
	res := parser.Parse(fs.Get(fileID), jsCfg, parser.Options{MaxDiagnostics: 10})
	if n := res.Diagnostics.Len(); n > 10 {
		t.Fatalf("bag holds %d diagnostics, cap is 10", n)
	}
	if res.Diagnostics.Dropped() == 0 {
		t.Fatalf("expected dropped diagnostics")
	}
}

func TestResultCarriesCommentsAndDirectives(t *testing.T) {
	src := "// esfront-ignore parse/missing-semicolon legacy\nlet a = 1 2\n/* tail */"
	res := parseJS(t, src)
	if len(res.Comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(res.Comments))
	}
	if len(res.Directives) != 1 || res.Directives[0].TargetLine != 2 {
		t.Fatalf("directives = %+v", res.Directives)
	}
	if res.Tree.CommentCount() != 2 {
		t.Fatalf("attached %d comments, want 2", res.Tree.CommentCount())
	}
	if res.Dialect != jsCfg {
		t.Fatalf("result dialect = %s", res.Dialect)
	}
}
