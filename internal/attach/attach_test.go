package attach_test

import (
	"testing"

	"esfront/internal/ast"
	"esfront/internal/dialect"
	"esfront/internal/parser"
	"esfront/internal/source"
)

func parse(t *testing.T, src string) *parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(src))
	return parser.Parse(fs.Get(id), dialect.Default(), parser.Options{})
}

// owner finds the node carrying the comment with the given text and
// whether it leads or trails.
func owner(res *parser.Result, text string) (ast.NodeID, string) {
	tree := res.Tree
	for id := ast.NodeID(1); int(id) <= tree.Len(); id++ {
		c := tree.Comments(id)
		for _, tr := range c.Leading {
			if tr.Text == text {
				return id, "leading"
			}
		}
		for _, tr := range c.Trailing {
			if tr.Text == text {
				return id, "trailing"
			}
		}
	}
	return ast.NoNode, ""
}

func TestAttach(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		comment string
		kind    ast.Kind
		where   string
	}{
		{"line comment before statement", "// head\nlet a = 1;\n", "// head", ast.VarDecl, "leading"},
		{"same line after statement", "let a = 1; // tail\nlet b = 2;\n", "// tail", ast.VarDecl, "trailing"},
		{"next line leads following", "let a = 1;\n// mid\nlet b = 2;\n", "// mid", ast.VarDecl, "leading"},
		{"end of file trails last", "let a = 1;\n\n/* end */\n", "/* end */", ast.VarDecl, "trailing"},
		{"inner block comment", "f(/* arg */ x);\n", "/* arg */", ast.Identifier, "trailing"},
		{"empty file trails program", "/* only */\n", "/* only */", ast.Program, "trailing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, tt.src)
			id, where := owner(res, tt.comment)
			if id == ast.NoNode {
				t.Fatalf("comment %q not attached", tt.comment)
			}
			if got := res.Tree.Kind(id); got != tt.kind {
				t.Errorf("attached to %s, want %s", got, tt.kind)
			}
			if where != tt.where {
				t.Errorf("attached as %s, want %s", where, tt.where)
			}
		})
	}
}

func TestAttachEveryCommentOnce(t *testing.T) {
	src := "// a\nfunction f(/* b */ x) { // c\n  return x; /* d */\n}\n// e\n"
	res := parse(t, src)
	if got := res.Tree.CommentCount(); got != len(res.Comments) {
		t.Fatalf("attached %d comments, file has %d", got, len(res.Comments))
	}
	if len(res.Comments) != 5 {
		t.Fatalf("expected 5 comments, got %d", len(res.Comments))
	}
}

func TestAttachOutermostNode(t *testing.T) {
	// The statement, its expression and the call all start at offset 9.
	res := parse(t, "// lead\n\nfoo();\n")
	id, where := owner(res, "// lead")
	if where != "leading" || res.Tree.Kind(id) != ast.ExprStmt {
		t.Fatalf("got %s %s, want leading ExprStmt", where, res.Tree.Kind(id))
	}
}
