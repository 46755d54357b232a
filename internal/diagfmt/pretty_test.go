package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"esfront/internal/diag"
	"esfront/internal/fix"
	"esfront/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.js", []byte("let x = \"unterminated string\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28}, "unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.js:1:9"},
		{"relative", PathModeRelative, "src/test.js:1:9"},
		{"basename", PathModeBasename, "test.js:1:9"},
		{"auto", PathModeAuto, "/home/user/project/src/test.js:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode, BaseDir: "/home/user/project"})
			out := buf.String()
			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "[lex/unterminated-string]", "unterminated string literal"} {
				if !strings.Contains(out, want) {
					t.Errorf("output lacks %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "abs": PathModeAbsolute, "relative": PathModeRelative, "base": PathModeBasename} {
		if got, ok := ParsePathMode(in); !ok || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("weird"); ok {
		t.Errorf("unknown mode accepted")
	}
}

func caretLine(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "^") {
			return line
		}
	}
	t.Fatalf("no caret line in:\n%s", out)
	return ""
}

func TestCaretUsesDisplayWidth(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wide.js", []byte("let 名前 = y;\n"))

	tests := []struct {
		name string
		span source.Span
		want string
	}{
		{"after wide runes", source.Span{File: fileID, Start: 13, End: 14}, "   | " + strings.Repeat(" ", 11) + "^"},
		{"over wide runes", source.Span{File: fileID, Start: 4, End: 10}, "   | " + strings.Repeat(" ", 4) + "^~~~"},
		{"empty span", source.Span{File: fileID, Start: 14, End: 14}, "   | " + strings.Repeat(" ", 12) + "^"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(1)
			bag.Add(diag.NewError(diag.SynUnexpectedToken, tt.span, "x"))
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{})
			if got := caretLine(t, buf.String()); got != tt.want {
				t.Fatalf("caret line\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestCaretKeepsTabs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("tab.js", []byte("\tfoo bar\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 5, End: 8}, "x"))
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if got := caretLine(t, buf.String()); got != "   | \t    ^~~" {
		t.Fatalf("caret line %q", got)
	}
}

func TestContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("ctx.js", []byte("a;\nb;\nc d;\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: fileID, Start: 8, End: 9}, "expected ';'"))
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	out := buf.String()
	if !strings.Contains(out, " 2 | b;") || !strings.Contains(out, " 3 | c d;") || strings.Contains(out, " 1 | a;") {
		t.Fatalf("context:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("import x from\n")
	fileID := fs.AddVirtual("test.js", content)

	primary := source.Span{File: fileID, Start: 9, End: 13}
	d := diag.New(diag.SevWarning, diag.SynUnexpectedToken, primary, "unexpected token").
		WithNote(source.Span{File: fileID, Start: 0, End: 6}, "in this import").
		WithFix("insert ';'", diag.TextEdit{Span: source.Span{File: fileID, Start: 8, End: 8}, NewText: ";"})

	wrapped := fix.Parenthesize("wrap", source.Span{File: fileID, Start: 7, End: 8}, fix.WithID("wrap-x"))
	d = d.WithFixSuggestion(diag.Fix{
		Title:         "wrap lazily",
		Applicability: diag.FixApplicabilitySafeWithHeuristics,
		Thunk:         func(diag.FixBuildContext) (diag.Fix, error) { return wrapped, nil },
	})

	bag := diag.NewBag(4)
	bag.Add(d)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	out := buf.String()

	for _, want := range []string{
		"WARNING",
		"note: test.js:1:1: in this import",
		"fix #1: insert ';' [always-safe]",
		`apply=";" at 1:9`,
		"fix #2: wrap [safe-with-heuristics] id=wrap-x",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("example.js", []byte("let a = 42 // missing semicolon"))
	at := source.Span{File: fileID, Start: 10, End: 10}
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, at, "missing semicolon").
		WithFix("insert ';'", diag.TextEdit{Span: at, NewText: ";"}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true, ShowPreview: true})
	out := buf.String()
	for _, want := range []string{"preview:", "- let a = 42 // missing semicolon", "+ let a = 42; // missing semicolon"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestPrettyReportsDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("many.js", []byte("a b c d"))
	bag := diag.NewBag(2)
	for i := range uint32(4) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 2 * i, End: 2*i + 1}, "x"))
	}
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "2 more diagnostics not shown") {
		t.Fatalf("output:\n%s", buf.String())
	}
}

func TestColorToggle(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.js", []byte("x"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 1}, "x"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}
