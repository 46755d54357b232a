package lexer

import (
	"esfront/internal/diag"
	"esfront/internal/token"
)

// scanJSXChild scans element content: raw text up to '{' or '<', or one of
// those two tokens. No trivia is collected; whitespace belongs to the text.
func (lx *Lexer) scanJSXChild() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	switch lx.cursor.Peek() {
	case '{':
		lx.cursor.Bump()
		lx.trackBrace(token.LBrace)
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.LBrace, Span: sp, Text: "{"}
	case '<':
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Lt, Span: sp, Text: "<"}
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '{' || b == '<' {
			break
		}
		if b == '>' || b == '}' {
			// Kept in the text so the element still closes where written.
			at := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.errLex(diag.LexJSXTextChar, lx.cursor.SpanFrom(at), jsxTextCharMsg(b))
			continue
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.JSXText, Span: sp, Text: lx.text(sp)}
}

func jsxTextCharMsg(b byte) string {
	if b == '>' {
		return "unexpected '>' in JSX text; write {'>'} or &gt;"
	}
	return "unexpected '}' in JSX text; write {'}'} or &rbrace;"
}

// scanJSXIdent scans a JSX name, which may contain '-'.
func (lx *Lexer) scanJSXIdent() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		r, sz := lx.peekRune()
		if sz == 0 {
			break
		}
		if r == '-' && lx.cursor.Off > uint32(start) {
			lx.cursor.Bump()
			continue
		}
		if lx.cursor.Off == uint32(start) && !isIdentStartRune(r) || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	if lx.cursor.Off == uint32(start) {
		return lx.invalid(start, "unexpected character in JSX tag")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.JSXIdent, Span: sp, Text: lx.text(sp)}
}

// scanJSXString scans an attribute value. JSX strings have no escapes and may
// span lines.
func (lx *Lexer) scanJSXString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	var flags token.Flags
	for {
		if lx.cursor.EOF() {
			lx.errLex(diag.LexUnterminatedJSXString, lx.cursor.SpanFrom(start), "unterminated JSX attribute string")
			flags |= token.Unterminated
			break
		}
		if lx.cursor.Bump() == quote {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.JSXString, Span: sp, Text: lx.text(sp), Flags: flags}
}
