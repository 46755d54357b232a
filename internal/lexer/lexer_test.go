package lexer_test

import (
	"testing"

	"esfront/internal/diag"
	"esfront/internal/lexer"
	"esfront/internal/source"
	"esfront/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := lexer.Tokenize(lx)
	want = append(want, token.EOF)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("%q: unexpected diagnostics %v", input, rep.codes())
	}
	return toks
}

func TestPunctuators(t *testing.T) {
	expectKinds(t, "a ??= b?.c ?? d",
		token.Ident, token.QuestionQuestionAssign, token.Ident, token.QuestionDot, token.Ident,
		token.QuestionQuestion, token.Ident)
	expectKinds(t, "x **= 2 ** 3", token.Ident, token.StarStarAssign, token.NumericLit, token.StarStar, token.NumericLit)
	expectKinds(t, "a ? .5 : b", token.Ident, token.Question, token.NumericLit, token.Colon, token.Ident)
	expectKinds(t, "(...args) => {}", token.LParen, token.DotDotDot, token.Ident, token.RParen, token.FatArrow, token.LBrace, token.RBrace)
	expectKinds(t, "a !== b === c", token.Ident, token.BangEqEq, token.Ident, token.EqEqEq, token.Ident)
	expectKinds(t, "@dec #priv", token.At, token.Ident, token.PrivateName)
}

func TestGreaterIsRescanned(t *testing.T) {
	toks := expectKinds(t, "a >>>= b >> c >= d", token.Ident, token.UShrAssign, token.Ident, token.Shr, token.Ident, token.GtEq, token.Ident)
	if toks[1].Text != ">>>=" {
		t.Fatalf("text = %q", toks[1].Text)
	}
	lx, _ := makeTestLexer("> >")
	first := lx.Next(lexer.ModeDivide)
	if got := lx.RescanGreater(first); got.Kind != token.Gt {
		t.Fatalf("separated '>' must not merge, got %v", got.Kind)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := expectKinds(t, "let async = class extends $_ { static of }",
		token.KwLet, token.KwAsync, token.Assign, token.KwClass, token.KwExtends, token.Ident,
		token.LBrace, token.KwStatic, token.KwOf, token.RBrace)
	if toks[5].Text != "$_" {
		t.Fatalf("ident text %q", toks[5].Text)
	}
	toks = expectKinds(t, `\u0069f café ünï`, token.KwIf, token.Ident, token.Ident)
	if !toks[0].Has(token.Escaped) || !toks[0].IsIdentLike() {
		t.Fatalf("escaped keyword must be flagged and act as identifier")
	}
	if toks[1].Text != "café" {
		t.Fatalf("cooked ident %q", toks[1].Text)
	}
}

func TestNumericFormats(t *testing.T) {
	tests := []struct {
		src  string
		want token.NumFormat
	}{
		{"123", 0},
		{"1_000", token.NumSeparators},
		{"1.5e-3", token.NumFloat | token.NumExponent},
		{".5", token.NumFloat},
		{"0x1F", token.NumHex},
		{"0o17", token.NumOctal},
		{"0b101", token.NumBinary},
		{"017", token.NumLegacyOctal},
		{"10n", token.NumBigInt},
		{"0xFFn", token.NumHex | token.NumBigInt},
	}
	for _, tt := range tests {
		toks := expectKinds(t, tt.src, token.NumericLit)
		if toks[0].NumFormat != tt.want {
			t.Errorf("%s: format %v want %v", tt.src, toks[0].NumFormat, tt.want)
		}
		if toks[0].Text != tt.src {
			t.Errorf("%s: text %q", tt.src, toks[0].Text)
		}
	}
}

func TestBadNumbers(t *testing.T) {
	for _, src := range []string{"0x", "1__0", "1_", "1.5n", "3in", "0b12", "1e"} {
		lx, rep := makeTestLexer(src)
		toks := lexer.Tokenize(lx)
		if toks[0].Kind != token.NumericLit {
			t.Errorf("%s: first token %v", src, toks[0].Kind)
		}
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
			t.Errorf("%s: diagnostics %v", src, rep.codes())
		}
	}
}

func TestRegexVersusDivide(t *testing.T) {
	expectKinds(t, "a / b / c", token.Ident, token.Slash, token.Ident, token.Slash, token.Ident)
	toks := expectKinds(t, "x = /[/]+\\//gi.test(y)",
		token.Ident, token.Assign, token.RegexLit, token.Dot, token.Ident, token.LParen, token.Ident, token.RParen)
	if toks[2].Text != `/[/]+\//gi` {
		t.Fatalf("regex text %q", toks[2].Text)
	}

	lx, _ := makeTestLexer("/=ab/g")
	tok := lx.Next(lexer.ModeDivide)
	if tok.Kind != token.SlashAssign {
		t.Fatalf("divide mode gave %v", tok.Kind)
	}
	re := lx.RescanSlash(tok)
	if re.Kind != token.RegexLit || re.Text != "/=ab/g" {
		t.Fatalf("rescan gave %v %q", re.Kind, re.Text)
	}
	if next := lx.Next(lexer.ModeDivide); next.Kind != token.EOF {
		t.Fatalf("after rescan: %v", next.Kind)
	}
}

func TestRegexFlagsAndUnterminated(t *testing.T) {
	lx, rep := makeTestLexer("x = /ab/gq\ny = /open\nz")
	toks := lexer.Tokenize(lx)
	if got := rep.codes(); len(got) != 2 || got[0] != diag.LexInvalidRegexFlag || got[1] != diag.LexUnterminatedRegex {
		t.Fatalf("codes %v", got)
	}
	last := toks[len(toks)-2]
	if last.Kind != token.Ident || last.Text != "z" || !last.NewlineBefore() {
		t.Fatalf("scanning must resume on the next line, got %v %q", last.Kind, last.Text)
	}
}

func TestStrings(t *testing.T) {
	toks := expectKinds(t, `'a\'b' "c\x41\u{1F600}"`, token.StringLit, token.StringLit)
	if v, ok := lexer.CookString(toks[0].Text); !ok || v != "a'b" {
		t.Fatalf("cooked %q %v", v, ok)
	}
	if v, ok := lexer.CookString(toks[1].Text); !ok || v != "cA😀" {
		t.Fatalf("cooked %q %v", v, ok)
	}
}

func TestUnterminatedStringStopsAtLineEnd(t *testing.T) {
	lx, rep := makeTestLexer("let s = 'oops\nlet t = 1;")
	toks := lexer.Tokenize(lx)
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("codes %v", rep.codes())
	}
	str := toks[3]
	if str.Kind != token.StringLit || !str.Has(token.Unterminated) || str.Text != "'oops" {
		t.Fatalf("string token %v %q", str.Kind, str.Text)
	}
	want := []token.Kind{token.KwLet, token.Ident, token.Assign, token.NumericLit, token.Semicolon, token.EOF}
	rest := kinds(toks[4:])
	for i := range want {
		if rest[i] != want[i] {
			t.Fatalf("resync: got %v", rest)
		}
	}
	if !toks[4].NewlineBefore() {
		t.Fatal("newline flag lost after unterminated string")
	}
}

func TestInvalidEscape(t *testing.T) {
	lx, rep := makeTestLexer(`"\xZZ" "\u12"`)
	toks := lexer.Tokenize(lx)
	if len(rep.diagnostics) != 2 {
		t.Fatalf("codes %v", rep.codes())
	}
	for _, tok := range toks[:2] {
		if !tok.Has(token.InvalidEscape) {
			t.Fatalf("%q must carry InvalidEscape", tok.Text)
		}
	}
}

func TestTemplateInterpolationDepth(t *testing.T) {
	toks := expectKinds(t, "`a${ {b: 1} }c${d}e`",
		token.TemplateHead, token.LBrace, token.Ident, token.Colon, token.NumericLit, token.RBrace,
		token.TemplateMiddle, token.Ident, token.TemplateTail)
	if toks[6].Text != "}c${" || toks[8].Text != "}e`" {
		t.Fatalf("template chunks %q %q", toks[6].Text, toks[8].Text)
	}
	expectKinds(t, "`x${`y${z}`}w`",
		token.TemplateHead, token.TemplateHead, token.Ident, token.TemplateTail, token.TemplateTail)
	expectKinds(t, "`plain` + {}", token.NoSubstTemplate, token.Plus, token.LBrace, token.RBrace)
}

func TestTemplateModeForcesContinuation(t *testing.T) {
	lx, _ := makeTestLexer("`a${ { }`")
	head := lx.Next(lexer.ModeRegex)
	lx.PushTemplate()
	if head.Kind != token.TemplateHead {
		t.Fatalf("head %v", head.Kind)
	}
	if tok := lx.Next(lexer.ModeRegex); tok.Kind != token.LBrace {
		t.Fatalf("brace %v", tok.Kind)
	}
	tail := lx.Next(lexer.ModeTemplate)
	if tail.Kind != token.TemplateTail {
		t.Fatalf("template mode gave %v", tail.Kind)
	}
}

func TestUnterminatedTemplate(t *testing.T) {
	lx, rep := makeTestLexer("`abc")
	toks := lexer.Tokenize(lx)
	if toks[0].Kind != token.NoSubstTemplate || !toks[0].Has(token.Unterminated) {
		t.Fatalf("token %v", toks[0].Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedTemplate {
		t.Fatalf("codes %v", rep.codes())
	}
}

func TestTriviaAndNewlineFlag(t *testing.T) {
	lx, rep := makeTestLexer("#!/usr/bin/env node\na // one\n/* two\n */ b /* three */ c")
	toks := lexer.Tokenize(lx)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("codes %v", rep.codes())
	}
	if toks[0].Text != "a" || !toks[0].NewlineBefore() {
		t.Fatalf("first token %q", toks[0].Text)
	}
	if !toks[1].NewlineBefore() {
		t.Fatal("b follows a line break")
	}
	if toks[2].NewlineBefore() {
		t.Fatal("a single-line block comment is not a line break")
	}
	comments := 0
	var hashbang bool
	for _, tr := range lx.Trivia() {
		if tr.IsComment() {
			comments++
		}
		if tr.Kind == token.TriviaHashbang {
			hashbang = true
		}
	}
	if comments != 3 || !hashbang {
		t.Fatalf("comments=%d hashbang=%v", comments, hashbang)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("a /* never closed")
	toks := lexer.Tokenize(lx)
	if len(toks) != 2 || toks[1].Kind != token.EOF {
		t.Fatalf("tokens %v", kinds(toks))
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("codes %v", rep.codes())
	}
	tr := lx.Trivia()[len(lx.Trivia())-1]
	if !tr.Unterminated || tr.Span.End != 17 {
		t.Fatalf("trivia %+v", tr)
	}
}

func TestJSXModes(t *testing.T) {
	lx, rep := makeTestLexer(`<my-tag data-x="a\b">hi {name}</my-tag>`)
	if tok := lx.Next(lexer.ModeRegex); tok.Kind != token.Lt {
		t.Fatalf("lt %v", tok.Kind)
	}
	name := lx.Next(lexer.ModeJSXTag)
	attr := lx.Next(lexer.ModeJSXTag)
	eq := lx.Next(lexer.ModeJSXTag)
	val := lx.Next(lexer.ModeJSXTag)
	gt := lx.Next(lexer.ModeJSXTag)
	text := lx.Next(lexer.ModeJSXChild)
	brace := lx.Next(lexer.ModeJSXChild)
	if name.Kind != token.JSXIdent || name.Text != "my-tag" || attr.Text != "data-x" || eq.Kind != token.Assign {
		t.Fatalf("tag tokens %v %q %q %v", name.Kind, name.Text, attr.Text, eq.Kind)
	}
	if val.Kind != token.JSXString || val.Text != `"a\b"` || gt.Kind != token.Gt {
		t.Fatalf("value %v %q", val.Kind, val.Text)
	}
	if text.Kind != token.JSXText || text.Text != "hi " || brace.Kind != token.LBrace {
		t.Fatalf("child %v %q %v", text.Kind, text.Text, brace.Kind)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("codes %v", rep.codes())
	}
}

func TestJSXTextRejectsRawCloseChars(t *testing.T) {
	for _, tc := range []struct {
		input, text string
		at          uint32
	}{
		{"x > y<", "x > y", 2},
		{"}<", "}", 0},
	} {
		lx, rep := makeTestLexer(tc.input)
		text := lx.Next(lexer.ModeJSXChild)
		if text.Kind != token.JSXText || text.Text != tc.text {
			t.Fatalf("%q: child %v %q", tc.input, text.Kind, text.Text)
		}
		if lt := lx.Next(lexer.ModeJSXChild); lt.Kind != token.Lt {
			t.Fatalf("%q: after text %v", tc.input, lt.Kind)
		}
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexJSXTextChar {
			t.Fatalf("%q: codes %v", tc.input, rep.codes())
		}
		if sp := rep.diagnostics[0].Primary; sp.Start != tc.at || sp.End != tc.at+1 {
			t.Fatalf("%q: span %v", tc.input, sp)
		}
	}
}

func TestCheckpointRewind(t *testing.T) {
	lx, rep := makeTestLexer("a /* c */ 'x\nb")
	first := lx.Next(lexer.ModeRegex)
	cp := lx.Checkpoint()
	triviaBefore := len(lx.Trivia())
	_ = lx.Next(lexer.ModeDivide)
	_ = lx.Next(lexer.ModeDivide)
	lx.Rewind(cp)
	if len(lx.Trivia()) != triviaBefore {
		t.Fatalf("trivia not rewound: %d vs %d", len(lx.Trivia()), triviaBefore)
	}
	again := lx.Next(lexer.ModeDivide)
	if first.Text != "a" || again.Kind != token.StringLit || again.Text != "'x" {
		t.Fatalf("after rewind: %v %q", again.Kind, again.Text)
	}
	if len(rep.diagnostics) != 2 {
		t.Fatalf("the unterminated string is reported once per scan, got %d", len(rep.diagnostics))
	}
}

func TestUnknownCharacters(t *testing.T) {
	lx, rep := makeTestLexer("a \x00 # \xff b")
	toks := lexer.Tokenize(lx)
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Invalid, token.Invalid, token.Invalid, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v", got)
		}
	}
	if len(rep.diagnostics) != 3 {
		t.Fatalf("codes %v", rep.codes())
	}
}

func TestSpansMatchText(t *testing.T) {
	src := "const f = async (a, b = 1) => `${a}` + /x/g.source; // done"
	lx, _ := makeTestLexer(src)
	for _, tok := range lexer.Tokenize(lx) {
		if tok.Kind == token.EOF {
			if int(tok.Span.Start) != len(src) {
				t.Fatalf("EOF at %d", tok.Span.Start)
			}
			continue
		}
		if src[tok.Span.Start:tok.Span.End] != tok.Text {
			t.Fatalf("%v: span text %q vs %q", tok.Kind, src[tok.Span.Start:tok.Span.End], tok.Text)
		}
	}
}
