package parser_test

import (
	"testing"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/token"
)

func TestStatementKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []ast.Kind
	}{
		{"", nil},
		{";", []ast.Kind{ast.EmptyStmt}},
		{"{ a; b }", []ast.Kind{ast.BlockStmt}},
		{"var a = 1, b", []ast.Kind{ast.VarDecl}},
		{"if (a) b; else c", []ast.Kind{ast.IfStmt}},
		{"for (;;) {}", []ast.Kind{ast.ForStmt}},
		{"for (const k in o) {}", []ast.Kind{ast.ForInStmt}},
		{"for (x of xs) {}", []ast.Kind{ast.ForOfStmt}},
		{"while (a) {}", []ast.Kind{ast.WhileStmt}},
		{"do x(); while (a)", []ast.Kind{ast.DoWhileStmt}},
		{"switch (a) { case 1: break; default: }", []ast.Kind{ast.SwitchStmt}},
		{"try { a() } catch { } finally { }", []ast.Kind{ast.TryStmt}},
		{"throw new Error('x')", []ast.Kind{ast.ThrowStmt}},
		{"outer: for (;;) { continue outer }", []ast.Kind{ast.LabeledStmt}},
		{"debugger", []ast.Kind{ast.DebuggerStmt}},
		{"function f() {}\nclass C {}", []ast.Kind{ast.FunctionDecl, ast.ClassDecl}},
		{"a\n++b", []ast.Kind{ast.ExprStmt, ast.ExprStmt}},
		{"let\nx = 1", []ast.Kind{ast.VarDecl}},
		{"async function f() { for await (const x of y) {} }", []ast.Kind{ast.FunctionDecl}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseJS(t, tt.src)
			expectClean(t, res)
			stmts := statements(res)
			if len(stmts) != len(tt.want) {
				t.Fatalf("got %d statements, want %d:\n%s", len(stmts), len(tt.want), dump(res))
			}
			for i, k := range tt.want {
				expectKind(t, res, stmts[i], k)
			}
		})
	}
}

func TestDirectivePrologue(t *testing.T) {
	res := parseWith(t, "'use strict';\nfoo();", scriptCfg)
	stmts := statements(res)
	expectKind(t, res, stmts[0], ast.Directive)
	expectKind(t, res, stmts[1], ast.ExprStmt)

	// a string after the first ordinary statement is an expression
	res = parseWith(t, "foo();\n'use strict';", scriptCfg)
	expectKind(t, res, statements(res)[1], ast.ExprStmt)
}

func TestReturnRequiresFunction(t *testing.T) {
	res := parseJS(t, "return 1")
	if !hasCode(res, diag.SynReturnOutsideFunction) {
		t.Fatalf("want %s, got %v", diag.SynReturnOutsideFunction.ID(), codes(res))
	}

	cfg := scriptCfg
	cfg.AllowReturnOutsideFunction = true
	expectClean(t, parseWith(t, "return 1", cfg))
}

func TestReturnLineTerminator(t *testing.T) {
	res := parseJS(t, "function f() { return\nx }")
	expectClean(t, res)
	fn, _ := res.Tree.Function(onlyStmt(t, res))
	body := res.Tree.Statements(fn.Body)
	if len(body) != 2 {
		t.Fatalf("got %d statements in body, want 2:\n%s", len(body), dump(res))
	}
	expectKind(t, res, body[0], ast.ReturnStmt)
	if res.Tree.Child(body[0], "arg") != ast.NoNode {
		t.Fatalf("return took an argument across a line break:\n%s", dump(res))
	}
}

func TestJumpTargets(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"break", diag.SynIllegalBreak},
		{"continue", diag.SynIllegalBreak},
		{"while (a) { break nowhere }", diag.SynUndefinedLabel},
		{"l: { continue l }", diag.SynIllegalBreak},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseJS(t, tt.src)
			if !hasCode(res, tt.code) {
				t.Fatalf("want %s, got %v", tt.code.ID(), codes(res))
			}
		})
	}
	expectClean(t, parseJS(t, "l: { break l }"))
	expectClean(t, parseJS(t, "a: while (x) { for (;;) continue a }"))
}

func TestSwitchDuplicateDefault(t *testing.T) {
	res := parseJS(t, "switch (x) { default: a(); case 1: default: }")
	if !hasCode(res, diag.SynDuplicateDefault) {
		t.Fatalf("want %s, got %v", diag.SynDuplicateDefault.ID(), codes(res))
	}
	cases := res.Tree.Elems(onlyStmt(t, res), "cases")
	if len(cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(cases))
	}
}

func TestVarDeclarations(t *testing.T) {
	res := parseJS(t, "const {a, b: [c = 1], ...d} = e, f = 2")
	expectClean(t, res)
	decl, _ := res.Tree.VarDeclaration(onlyStmt(t, res))
	if decl.Keyword != token.KwConst || len(decl.Declarations) != 2 {
		t.Fatalf("want two const declarators:\n%s", dump(res))
	}
	pat := decl.Declarations[0].ID
	expectKind(t, res, pat, ast.ObjectPattern)
	props := res.Tree.Elems(pat, "props")
	if len(props) != 3 {
		t.Fatalf("got %d pattern properties, want 3:\n%s", len(props), dump(res))
	}
	expectKind(t, res, props[2], ast.RestElement)
}

func TestMissingInitializer(t *testing.T) {
	for _, src := range []string{"const a", "let [b]", "var {c}"} {
		res := parseJS(t, src)
		if !hasCode(res, diag.SynMissingInitializer) {
			t.Fatalf("%q: want %s, got %v", src, diag.SynMissingInitializer.ID(), codes(res))
		}
	}
	expectClean(t, parseJS(t, "let a; var b"))
}

func TestWithStatement(t *testing.T) {
	res := parseWith(t, "with (o) { x }", scriptCfg)
	expectClean(t, res)
	expectKind(t, res, onlyStmt(t, res), ast.WithStmt)

	res = parseJS(t, "with (o) { x }")
	if res.Diagnostics.Len() == 0 {
		t.Fatalf("'with' in a module should be reported")
	}
}
