package parser_test

import (
	"testing"

	"esfront/internal/ast"
	"esfront/internal/dialect"
)

// A declaration whose last declarator ends in a placeholder on the next line
// must still cover that placeholder; parseWith checks the span invariants.
func TestVarDeclCoversTrailingPlaceholder(t *testing.T) {
	for _, src := range []string{
		"let [\n1",
		"let[\n!",
		"let[\n#x",
		"var a = 1, [\n2",
	} {
		for _, cfg := range []dialect.Config{jsCfg, tsCfg} {
			res := parseWith(t, src, cfg)
			if !res.Corrupt || res.Diagnostics.Len() == 0 {
				t.Errorf("%q (%s): corrupt=%v diagnostics=%v", src, cfg, res.Corrupt, codes(res))
			}
		}
	}
}

func TestVarDeclSpanIncludesTerminator(t *testing.T) {
	res := parseJS(t, "let a = 1;\n")
	expectClean(t, res)
	decl := onlyStmt(t, res)
	expectKind(t, res, decl, ast.VarDecl)
	if sp := res.Tree.Span(decl); sp.Start != 0 || sp.End != 10 {
		t.Fatalf("VarDecl span = %d-%d, want 0-10", sp.Start, sp.End)
	}
}
