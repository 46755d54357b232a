package lexer

import (
	"esfront/internal/diag"
	"esfront/internal/token"
)

// scanString scans a '...' or "..." literal. An unterminated string stops
// before the line terminator so the next line is scanned normally.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	var flags token.Flags

	for {
		if lx.cursor.EOF() || (lx.atLineTerminator() && !lx.atLineSeparator()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			flags |= token.Unterminated
			break
		}
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			break
		}
		if b == '\\' {
			if !lx.scanEscape(false) {
				flags |= token.InvalidEscape
			}
			continue
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Flags: flags}
}

// atLineSeparator reports U+2028/U+2029, which strings may contain.
func (lx *Lexer) atLineSeparator() bool {
	if lx.cursor.Peek() < utf8RuneSelf {
		return false
	}
	r, _ := lx.peekRune()
	return r == 0x2028 || r == 0x2029
}

// scanEscape consumes one escape sequence starting at '\'. It reports false
// and emits a diagnostic for a malformed escape. In templates, legacy octal
// escapes are malformed too.
func (lx *Lexer) scanEscape(template bool) bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return true
	}
	b := lx.cursor.Peek()
	switch {
	case b == 'x':
		lx.cursor.Bump()
		if !isHex(lx.cursor.Peek()) || !isHex(lx.cursor.PeekAt(1)) {
			lx.errLex(diag.LexInvalidEscape, lx.cursor.SpanFrom(start), "invalid hexadecimal escape sequence")
			return false
		}
		lx.cursor.Off += 2
		return true
	case b == 'u':
		lx.cursor.Reset(start)
		if _, ok := lx.scanUnicodeEscape(); !ok {
			lx.errLex(diag.LexInvalidEscape, lx.cursor.SpanFrom(start), "invalid unicode escape sequence")
			return false
		}
		return true
	case b == '\r':
		lx.cursor.Bump()
		lx.cursor.Eat('\n')
		return true
	case isDec(b):
		lx.cursor.Bump()
		if b == '0' && !isDec(lx.cursor.Peek()) {
			return true
		}
		if template || b == '8' || b == '9' {
			if template {
				lx.errLex(diag.LexInvalidEscape, lx.cursor.SpanFrom(start), "octal escape sequences are not allowed in templates")
				return false
			}
			return true
		}
		for i := 0; i < 2 && isOct(lx.cursor.Peek()); i++ {
			lx.cursor.Bump()
		}
		return true
	default:
		lx.bumpRune()
		return true
	}
}

// scanTemplate scans a template chunk. opening is true at a backtick and
// false at the '}' closing an interpolation. The chunk ends at the closing
// backtick (NoSubstTemplate / TemplateTail) or at '${' (TemplateHead /
// TemplateMiddle).
func (lx *Lexer) scanTemplate(opening bool) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`' or '}'
	var flags token.Flags
	kind := token.TemplateTail
	if opening {
		kind = token.NoSubstTemplate
	}

	for {
		if lx.cursor.EOF() {
			lx.errLex(diag.LexUnterminatedTemplate, lx.cursor.SpanFrom(start), "unterminated template literal")
			flags |= token.Unterminated
			break
		}
		b := lx.cursor.Peek()
		if b == '`' {
			lx.cursor.Bump()
			break
		}
		if b == '$' && lx.cursor.PeekAt(1) == '{' {
			lx.cursor.Off += 2
			if opening {
				kind = token.TemplateHead
			} else {
				kind = token.TemplateMiddle
			}
			break
		}
		if b == '\\' {
			if !lx.scanEscape(true) {
				flags |= token.InvalidEscape
			}
			continue
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp), Flags: flags}
}
