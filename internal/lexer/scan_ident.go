package lexer

import (
	"strings"

	"esfront/internal/diag"
	"esfront/internal/token"
)

// scanIdentOrKeyword scans an IdentifierName and classifies it through
// token.LookupKeyword. Names spelled with \u escapes carry token.Escaped and
// their Text is the cooked name.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	var cooked strings.Builder
	escaped := false
	first := true

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			escStart := lx.cursor.Mark()
			r, ok := lx.scanUnicodeEscape()
			valid := ok && ((first && isIdentStartRune(r)) || (!first && isIdentContinueRune(r)))
			if !valid {
				lx.errLex(diag.LexInvalidIdentifier, lx.cursor.SpanFrom(escStart), "invalid unicode escape in identifier")
			}
			if !escaped {
				cooked.Write(lx.file.Content[start:escStart])
				escaped = true
			}
			if ok {
				cooked.WriteRune(r)
			}
			first = false
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 {
			break
		}
		if first && !isIdentStartRune(r) || !first && !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
		if escaped {
			cooked.WriteRune(r)
		}
		first = false
	}

	if lx.cursor.Off == uint32(start) {
		return lx.invalid(start, "unexpected character")
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	var flags token.Flags
	if escaped {
		text = cooked.String()
		flags |= token.Escaped
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text, Flags: flags}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text, Flags: flags}
}

// scanUnicodeEscape consumes \uXXXX or \u{X...} and returns the code point.
// On malformed input it consumes what it can and reports ok=false.
func (lx *Lexer) scanUnicodeEscape() (rune, bool) {
	lx.cursor.Bump() // '\'
	if !lx.cursor.Eat('u') {
		return 0, false
	}
	if lx.cursor.Eat('{') {
		var r rune
		digits := 0
		for isHex(lx.cursor.Peek()) {
			r = r*16 + hexVal(lx.cursor.Bump())
			digits++
			if r > 0x10FFFF {
				r = 0x110000
			}
		}
		if !lx.cursor.Eat('}') || digits == 0 || r > 0x10FFFF {
			return 0, false
		}
		return r, true
	}
	var r rune
	for range 4 {
		if !isHex(lx.cursor.Peek()) {
			return 0, false
		}
		r = r*16 + hexVal(lx.cursor.Bump())
	}
	return r, true
}

// scanPrivateName scans #name.
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	r, sz := lx.peekRune()
	if sz == 0 || (!isIdentStartRune(r) && r != '\\') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "'#' must be followed by a private name")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	name := lx.scanIdentOrKeyword()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.PrivateName, Span: sp, Text: "#" + name.Text, Flags: name.Flags}
}
