package parser_test

import (
	"testing"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/token"
)

func TestBinaryPrecedence(t *testing.T) {
	tests := []struct {
		src     string
		rootOp  token.Kind
		leftOp  token.Kind // operator of the left operand, Invalid for a leaf
		rightOp token.Kind
	}{
		{"a + b * c", token.Plus, token.Invalid, token.Star},
		{"a * b + c", token.Plus, token.Star, token.Invalid},
		{"a - b - c", token.Minus, token.Minus, token.Invalid},
		{"a || b && c", token.OrOr, token.Invalid, token.AndAnd},
		{"a ?? b ?? c", token.QuestionQuestion, token.QuestionQuestion, token.Invalid},
		{"a == b < c", token.EqEq, token.Invalid, token.Lt},
		{"a in b instanceof c", token.KwInstanceof, token.KwIn, token.Invalid},
		{"a | b ^ c & d", token.Pipe, token.Invalid, token.Caret},
		{"a << b + c", token.Shl, token.Invalid, token.Plus},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseJS(t, tt.src)
			expectClean(t, res)
			tr := res.Tree
			root, ok := tr.Binary(exprOf(t, res))
			if !ok || root.Op != tt.rootOp {
				t.Fatalf("root operator is not %s:\n%s", tt.rootOp, dump(res))
			}
			if got := tr.Op(root.Left); got != tt.leftOp {
				t.Fatalf("left operand operator = %s, want %s:\n%s", got, tt.leftOp, dump(res))
			}
			if got := tr.Op(root.Right); got != tt.rightOp {
				t.Fatalf("right operand operator = %s, want %s:\n%s", got, tt.rightOp, dump(res))
			}
		})
	}
}

func TestExpressionKinds(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Kind
	}{
		{"a, b, c", ast.SequenceExpr},
		{"a ? b : c", ast.ConditionalExpr},
		{"a = b = c", ast.AssignExpr},
		{"x **= 2", ast.AssignExpr},
		{"a?.b.c()", ast.OptionalChain},
		{"new Foo", ast.NewExpr},
		{"new Foo.Bar(1)", ast.NewExpr},
		{"f(...xs)", ast.CallExpr},
		{"tag`x${y}`", ast.TaggedTemplate},
		{"`a${b}c`", ast.TemplateLit},
		{"/re/g", ast.RegexLit},
		{"x++", ast.UpdateExpr},
		{"typeof x", ast.UnaryExpr},
		{"import('m')", ast.ImportCall},
		{"import.meta", ast.MetaProperty},
		{"(a)", ast.ParenExpr},
		{"[, a, ...b]", ast.ArrayLit},
		{"({ a, b: 1, [c]: 2, d() {}, get e() { return 1 }, ...f })", ast.ParenExpr},
		{"async x => x", ast.ArrowFunc},
		{"a.#b in c", ast.BinaryExpr},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseJS(t, tt.src)
			expectKind(t, res, exprOf(t, res), tt.want)
		})
	}
}

func TestAnonymousFunctionAndClass(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Kind
	}{
		{"function* () {}", ast.FunctionExpr},
		{"async function () {}", ast.FunctionExpr},
		{"class {}", ast.ClassExpr},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseJS(t, "("+tt.src+")")
			expectClean(t, res)
			paren := exprOf(t, res)
			expectKind(t, res, paren, ast.ParenExpr)
			expectKind(t, res, res.Tree.Child(paren, "expr"), tt.want)
		})
	}
}

// In statement position the keyword starts a declaration, which needs a name.
func TestAnonymousDeclarationNeedsName(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Kind
	}{
		{"function* () {}", ast.FunctionDecl},
		{"class {}", ast.ClassDecl},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseJS(t, tt.src)
			expectKind(t, res, onlyStmt(t, res), tt.want)
			if !hasCode(res, diag.SynExpectIdentifier) {
				t.Fatalf("want %s, got %v", diag.SynExpectIdentifier.ID(), codes(res))
			}
		})
	}
}

func TestTemplateParts(t *testing.T) {
	res := parseJS(t, "`a${b}c${`d${e}`}f`")
	expectClean(t, res)
	parts := res.Tree.Elems(exprOf(t, res), "parts")
	if len(parts) != 5 {
		t.Fatalf("got %d template parts, want 5:\n%s", len(parts), dump(res))
	}
	expectKind(t, res, parts[3], ast.TemplateLit)
	if !res.Tree.Has(parts[4], ast.FlagTail) {
		t.Fatalf("last part is not the tail")
	}
}

func TestArrowDisambiguation(t *testing.T) {
	res := parseJS(t, "(a, b) => a + b")
	expectClean(t, res)
	fn, ok := res.Tree.Function(exprOf(t, res))
	if !ok || fn.Kind != ast.ArrowFunc || len(fn.Params) != 2 {
		t.Fatalf("want a two-parameter arrow:\n%s", dump(res))
	}
	if !res.Tree.Has(exprOf(t, res), ast.FlagExprBody) {
		t.Fatalf("arrow with an expression body is not flagged")
	}

	res = parseJS(t, "(a, b)")
	expectClean(t, res)
	paren := exprOf(t, res)
	expectKind(t, res, paren, ast.ParenExpr)
	expectKind(t, res, res.Tree.Child(paren, "expr"), ast.SequenceExpr)

	res = parseJS(t, "({a, b: [c]} = d) => 1")
	expectClean(t, res)
	fn, _ = res.Tree.Function(exprOf(t, res))
	if len(fn.Params) != 1 {
		t.Fatalf("want one destructured parameter:\n%s", dump(res))
	}
}

func TestAsyncArrow(t *testing.T) {
	res := parseJS(t, "async (x) => await x")
	expectClean(t, res)
	fn, _ := res.Tree.Function(exprOf(t, res))
	if !fn.Async {
		t.Fatalf("arrow is not async:\n%s", dump(res))
	}
	expectKind(t, res, fn.Body, ast.AwaitExpr)

	// a call to a function named async
	res = parseJS(t, "async(x)")
	expectClean(t, res)
	expectKind(t, res, exprOf(t, res), ast.CallExpr)
}

func TestAssignmentTargets(t *testing.T) {
	res := parseJS(t, "[a, b] = [b, a]")
	expectClean(t, res)
	asg, _ := res.Tree.Assign(exprOf(t, res))
	expectKind(t, res, asg.Left, ast.ArrayPattern)

	res = parseJS(t, "({a, b = 1} = c)")
	expectClean(t, res)
	asg, _ = res.Tree.Assign(res.Tree.Child(exprOf(t, res), "expr"))
	expectKind(t, res, asg.Left, ast.ObjectPattern)

	for _, src := range []string{"1 = 2", "a + b = c", "f() = 1", "++a++"} {
		res := parseJS(t, src)
		if !hasCode(res, diag.SynInvalidAssignTarget) {
			t.Fatalf("%q: want %s, got %v", src, diag.SynInvalidAssignTarget.ID(), codes(res))
		}
	}
}

func TestCoverInitializerOutsidePattern(t *testing.T) {
	res := parseJS(t, "({a = 1})")
	if !hasCode(res, diag.SynInvalidCoverGrammar) {
		t.Fatalf("want %s, got %v", diag.SynInvalidCoverGrammar.ID(), codes(res))
	}
}

func TestOptionalChainRestrictions(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"new a?.b()", diag.SynNewOptionalChain},
		{"a?.b`c`", diag.SynOptionalChainTemplate},
	}
	for _, tt := range tests {
		res := parseJS(t, tt.src)
		if !hasCode(res, tt.code) {
			t.Fatalf("%q: want %s, got %v", tt.src, tt.code.ID(), codes(res))
		}
	}
}

func TestYieldAndAwaitContexts(t *testing.T) {
	res := parseJS(t, "function* g() { yield 1; yield* g() }")
	expectClean(t, res)
	var delegates int
	ast.Inspect(res.Tree, res.Root, func(id ast.NodeID, _ ast.Path) bool {
		if res.Tree.Kind(id) == ast.YieldExpr && res.Tree.Has(id, ast.FlagDelegate) {
			delegates++
		}
		return true
	})
	if delegates != 1 {
		t.Fatalf("got %d delegating yields, want 1", delegates)
	}

	// scripts may use await and yield as identifiers outside functions
	expectClean(t, parseWith(t, "var await = 1, yield = 2", scriptCfg))
}

func TestTypeArgumentSpeculation(t *testing.T) {
	res := parseWith(t, "f<string>(1)", tsCfg)
	expectClean(t, res)
	call, ok := res.Tree.Call(exprOf(t, res))
	if !ok || len(call.TypeArgs) != 1 || len(call.Args) != 1 {
		t.Fatalf("want a call with one type argument:\n%s", dump(res))
	}

	// a failed speculation leaves no trace
	res = parseWith(t, "a < b > c", tsCfg)
	expectClean(t, res)
	root, ok := res.Tree.Binary(exprOf(t, res))
	if !ok || root.Op != token.Gt {
		t.Fatalf("want (a < b) > c:\n%s", dump(res))
	}
	if inner, ok := res.Tree.Binary(root.Left); !ok || inner.Op != token.Lt {
		t.Fatalf("want (a < b) > c:\n%s", dump(res))
	}
}

func TestTypedArrowSpeculation(t *testing.T) {
	res := parseWith(t, "const f = (x: number): string => String(x)", tsCfg)
	expectClean(t, res)
	decl, _ := res.Tree.VarDeclaration(onlyStmt(t, res))
	fn, ok := res.Tree.Function(decl.Declarations[0].Init)
	if !ok || fn.Kind != ast.ArrowFunc || fn.ReturnType == ast.NoNode {
		t.Fatalf("want an arrow with a return type:\n%s", dump(res))
	}

	// inside a conditional consequent the colon belongs to the conditional
	res = parseWith(t, "a ? (b) : c", tsCfg)
	expectClean(t, res)
	expectKind(t, res, exprOf(t, res), ast.ConditionalExpr)
}

func TestTypedArrowInConsequent(t *testing.T) {
	cases := []struct {
		src       string
		cons, alt ast.Kind
	}{
		{"c ? (a): b => a : d", ast.ArrowFunc, ast.Identifier},
		{"c ? async (a): b => a : d", ast.ArrowFunc, ast.Identifier},
		{"c ? (x): string => x : (y) => y", ast.ArrowFunc, ast.ArrowFunc},
		{"c ? (a) : b => a", ast.ParenExpr, ast.ArrowFunc},
	}
	for _, c := range cases {
		res := parseWith(t, c.src, tsCfg)
		expectClean(t, res)
		cond := exprOf(t, res)
		expectKind(t, res, cond, ast.ConditionalExpr)
		expectKind(t, res, res.Tree.Child(cond, "cons"), c.cons)
		expectKind(t, res, res.Tree.Child(cond, "alt"), c.alt)
	}
}
