package lexer

import (
	"slices"

	"esfront/internal/diag"
	"esfront/internal/source"
	"esfront/internal/token"
)

// Lexer produces tokens on demand. It never materialises the token stream;
// the parser pulls one token at a time and picks the Mode for each.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	// templates holds the brace depth of every open ${ interpolation,
	// innermost last.
	templates []uint32
	// trivia is every whitespace run and comment scanned so far, in order.
	trivia []token.Trivia
}

// Checkpoint captures everything Rewind needs to restore the scanner.
type Checkpoint struct {
	off       uint32
	templates []uint32
	trivia    int
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		trivia: make([]token.Trivia, 0, 64),
	}
	lx.scanHashbang()
	return lx
}

// File returns the buffer being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Offset returns the current byte offset.
func (lx *Lexer) Offset() uint32 { return lx.cursor.Off }

// Trivia returns all trivia scanned so far in source order. The slice is
// owned by the lexer.
func (lx *Lexer) Trivia() []token.Trivia { return lx.trivia }

// Checkpoint saves the scanner state.
func (lx *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{
		off:       lx.cursor.Off,
		templates: slices.Clone(lx.templates),
		trivia:    len(lx.trivia),
	}
}

// Rewind restores a state saved by Checkpoint. Trivia scanned after the
// checkpoint is forgotten.
func (lx *Lexer) Rewind(cp Checkpoint) {
	lx.cursor.Off = cp.off
	lx.templates = append(lx.templates[:0], cp.templates...)
	if cp.trivia < len(lx.trivia) {
		clear(lx.trivia[cp.trivia:])
		lx.trivia = lx.trivia[:cp.trivia]
	}
}

// PushTemplate records that the parser entered a ${ interpolation.
func (lx *Lexer) PushTemplate() {
	lx.templates = append(lx.templates, 0)
}

// PopTemplate records that the parser left the innermost interpolation.
func (lx *Lexer) PopTemplate() {
	if n := len(lx.templates); n > 0 {
		lx.templates = lx.templates[:n-1]
	}
}

// TemplateDepth reports how many interpolations are open.
func (lx *Lexer) TemplateDepth() int { return len(lx.templates) }

// Next returns the next significant token with its leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next(mode Mode) token.Token {
	if mode == ModeJSXChild {
		return lx.scanJSXChild()
	}

	leading, flags := lx.collectLeadingTrivia()
	var tok token.Token
	if lx.cursor.EOF() {
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	} else {
		tok = lx.scan(mode)
	}
	tok.Flags |= flags
	tok.Leading = leading
	return tok
}

func (lx *Lexer) scan(mode Mode) token.Token {
	ch := lx.cursor.Peek()
	switch {
	case mode == ModeJSXTag && (isIdentStartByte(ch) || ch >= utf8RuneSelf):
		return lx.scanJSXIdent()
	case mode == ModeJSXTag && (ch == '"' || ch == '\''):
		return lx.scanJSXString()
	case isIdentStartByte(ch) || ch == '\\' || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString()
	case ch == '`':
		return lx.scanTemplate(true)
	case ch == '#':
		return lx.scanPrivateName()
	case ch == '}':
		if n := len(lx.templates); n > 0 && (lx.templates[n-1] == 0 || mode == ModeTemplate) {
			lx.templates[n-1] = 0
			return lx.scanTemplate(false)
		}
		return lx.scanOperatorOrPunct()
	case ch == '/' && mode == ModeRegex:
		return lx.scanRegex()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// RescanSlash re-reads a '/' or '/=' token as a regular expression literal.
// The parser calls it when the token turns out to start an expression.
func (lx *Lexer) RescanSlash(tok token.Token) token.Token {
	if tok.Kind != token.Slash && tok.Kind != token.SlashAssign {
		return tok
	}
	lx.cursor.Off = tok.Span.Start
	re := lx.scanRegex()
	re.Flags |= tok.Flags &^ token.Unterminated
	re.Leading = tok.Leading
	return re
}

// RescanTemplate re-reads a '}' as the continuation of the innermost
// template interpolation. The parser uses it when brace counting was thrown
// off by malformed input inside ${...}.
func (lx *Lexer) RescanTemplate(tok token.Token) token.Token {
	n := len(lx.templates)
	if tok.Kind != token.RBrace || n == 0 || lx.cursor.Off != tok.Span.End {
		return tok
	}
	lx.cursor.Off = tok.Span.Start
	lx.templates[n-1] = 0
	out := lx.scanTemplate(false)
	out.Flags |= tok.Flags
	out.Leading = tok.Leading
	return out
}

// RescanGreater extends a '>' token into '>=', '>>', '>>=', '>>>' or '>>>='
// when the following bytes allow it. '>' is always scanned alone so that
// nested type argument lists close correctly.
func (lx *Lexer) RescanGreater(tok token.Token) token.Token {
	if tok.Kind != token.Gt || lx.cursor.Off != tok.Span.End {
		return tok
	}
	start := Mark(tok.Span.Start)
	kind := token.Gt
	switch {
	case lx.try3('>', '>', '='):
		kind = token.UShrAssign
	case lx.try2('>', '>'):
		kind = token.UShr
	case lx.try2('>', '='):
		kind = token.ShrAssign
	case lx.cursor.Eat('>'):
		kind = token.Shr
	case lx.cursor.Eat('='):
		kind = token.GtEq
	}
	if kind == token.Gt {
		return tok
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp), Flags: tok.Flags, Leading: tok.Leading}
}

// RescanJSXIdent re-reads an identifier-like token as a dashed JSX name.
func (lx *Lexer) RescanJSXIdent(tok token.Token) token.Token {
	if !tok.Kind.IsIdentifierName() || lx.cursor.Off != tok.Span.End {
		return tok
	}
	lx.cursor.Off = tok.Span.Start
	out := lx.scanJSXIdent()
	out.Flags |= tok.Flags
	out.Leading = tok.Leading
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) invalid(start Mark, msg string) token.Token {
	if lx.cursor.Off == uint32(start) {
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
