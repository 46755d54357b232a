package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"esfront/internal/dialect"
	"esfront/internal/lexer"
	"esfront/internal/parser"
	"esfront/internal/source"
)

func parseSource(t *testing.T, src string) (*source.FileSet, *parser.Result) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.js", []byte(src))
	return fs, parser.Parse(fs.Get(id), dialect.Default(), parser.Options{})
}

func TestFormatTreeBoxes(t *testing.T) {
	_, res := parseSource(t, "a + b;")
	var buf bytes.Buffer
	if err := FormatTree(&buf, res.Tree, res.Root, TreeOpts{Style: TreeBoxes, Spans: true}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	checks := []string{
		"Program @0..6",
		"└─ body: ExprStmt",
		"   └─ expr: BinaryExpr op=+",
		`      ├─ left: Identifier "a" @0..1`,
		`      └─ right: Identifier "b" @4..5`,
	}
	for i, want := range checks {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
}

func TestFormatTreeJSON(t *testing.T) {
	_, res := parseSource(t, "// lead\nf(1, 2);")
	var buf bytes.Buffer
	if err := FormatTree(&buf, res.Tree, res.Root, TreeOpts{Style: TreeJSON, Comments: true}); err != nil {
		t.Fatal(err)
	}
	var root TreeNodeJSON
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Kind != "Program" || len(root.Children) != 1 {
		t.Fatalf("root = %+v", root)
	}
	stmt := root.Children[0]
	if stmt.Slot != "body" || len(stmt.Leading) != 1 || stmt.Leading[0] != "// lead" {
		t.Fatalf("statement = %+v", stmt)
	}
	call := stmt.Children[0]
	var args int
	for _, c := range call.Children {
		if c.Slot == "args" {
			args++
		}
	}
	if call.Kind != "CallExpr" || args != 2 {
		t.Fatalf("call = %+v", call)
	}
}

func TestFormatTreeSExpr(t *testing.T) {
	_, res := parseSource(t, "x;")
	var buf bytes.Buffer
	if err := FormatTree(&buf, res.Tree, res.Root, TreeOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "(Program") || !strings.Contains(buf.String(), "expr=(Identifier") {
		t.Fatalf("sexpr:\n%s", buf.String())
	}
	if _, err := ParseTreeStyle("yaml"); err == nil {
		t.Fatalf("unknown style accepted")
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.js", []byte("x = 0x1F; // c\n"))
	toks := lexer.Tokenize(lexer.New(fs.Get(id), lexer.Options{}))

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := pretty.String()
	if !strings.Contains(out, `"0x1F" at 1:5-1:9 [hex]`) || !strings.Contains(out, "EOF") {
		t.Fatalf("pretty tokens:\n%s", out)
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	last := decoded[len(decoded)-1]
	if last.Kind != "EOF" || len(last.Leading) == 0 {
		t.Fatalf("last token = %+v", last)
	}
}

func TestFormatDirectives(t *testing.T) {
	_, res := parseSource(t, "// esfront-ignore parse -- legacy\nx y\n/* eslint-disable */\n")
	var text bytes.Buffer
	if err := FormatDirectives(&text, res.Directives, false); err != nil {
		t.Fatal(err)
	}
	out := text.String()
	if !strings.Contains(out, "esfront-ignore") || !strings.Contains(out, "line 2") || !strings.Contains(out, "eslint-disable") {
		t.Fatalf("directives:\n%s", out)
	}

	var js bytes.Buffer
	if err := FormatDirectives(&js, res.Directives, true); err != nil {
		t.Fatal(err)
	}
	var decoded []DirectiveJSON
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || !decoded[1].FileWide || decoded[0].Categories[0] != "parse" {
		t.Fatalf("decoded = %+v", decoded)
	}
}
