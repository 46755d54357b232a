package crosscheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esfront/internal/dialect"
	"esfront/internal/driver"
)

func TestCheckAgreement(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name, path, src string
		grammar         string
		statements      int
		errors          bool
	}{
		{"plain", "a.js", "let a = 1;\nfoo(a);\n", "javascript", 2, false},
		{"comments", "b.js", "// lead\nx;\n/* tail */\n", "javascript", 1, false},
		{"broken", "c.js", "let = ;\n", "javascript", 0, true},
		{"typed", "d.ts", "let x: number = 1;\ninterface P { a: string }\n", "typescript", 2, false},
		{"tsx", "e.tsx", "const v = <div>{x}</div>;\n", "tsx", 1, false},
		{"unclosed", "f.ts", "function f( {\n", "typescript", 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			r, err := Check(context.Background(), c.path, []byte(c.src), driver.Options{})
			require.NoError(t, err)
			assert.Equal(t, c.grammar, r.Grammar)
			require.True(t, r.Agree(), "mismatches: %v (esfront %+v, tree-sitter %+v)", r.Mismatches, r.Esfront, r.TreeSitter)
			assert.Equal(t, c.errors, r.Esfront.HasErrors)
			if !c.errors {
				assert.Equal(t, c.statements, r.Esfront.Statements)
				return
			}
			assert.NotZero(t, r.Esfront.FirstError.Line, "esfront first error not located")
			assert.NotZero(t, r.TreeSitter.FirstError.Line, "tree-sitter first error not located")
		})
	}
}

func TestCheckReportsDisagreement(t *testing.T) {
	t.Parallel()
	// JSX in a .js file is a dialect error here; tree-sitter's JavaScript
	// grammar always accepts it.
	r, err := Check(context.Background(), "view.js", []byte("const v = <div/>;\n"), driver.Options{})
	require.NoError(t, err)
	assert.False(t, r.Agree())
	assert.True(t, r.Esfront.HasErrors)
	assert.False(t, r.TreeSitter.HasErrors)
}

func TestGrammar(t *testing.T) {
	t.Parallel()
	for path, want := range map[string]string{
		"a.js": "javascript", "a.jsx": "javascript", "a.ts": "typescript",
		"a.d.ts": "typescript", "a.tsx": "tsx", "a.cjs": "javascript",
	} {
		_, got := Grammar(dialect.ForPath(path))
		assert.Equal(t, want, got, path)
	}
}
