package lexer

import (
	"strings"

	"esfront/internal/diag"
	"esfront/internal/token"
)

const regexFlags = "dgimsuyv"

// scanRegex scans /body/flags. '/' inside a class [...] does not end the
// body. An unterminated literal stops at the line end.
func (lx *Lexer) scanRegex() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	var flags token.Flags

	for {
		if lx.cursor.EOF() || lx.atLineTerminator() {
			lx.errLex(diag.LexUnterminatedRegex, lx.cursor.SpanFrom(start), "unterminated regular expression literal")
			flags |= token.Unterminated
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.RegexLit, Span: sp, Text: lx.text(sp), Flags: flags}
		}
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() && !lx.atLineTerminator() {
				lx.bumpRune()
			}
			continue
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			lx.cursor.Bump()
			lx.scanRegexFlags()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.RegexLit, Span: sp, Text: lx.text(sp), Flags: flags}
		}
		lx.bumpRune()
	}
}

func (lx *Lexer) scanRegexFlags() {
	seen := ""
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		flagStart := lx.cursor.Mark()
		lx.bumpRune()
		f := string(r)
		if !strings.Contains(regexFlags, f) {
			lx.errLex(diag.LexInvalidRegexFlag, lx.cursor.SpanFrom(flagStart), "unknown regular expression flag '"+f+"'")
			continue
		}
		if strings.Contains(seen, f) {
			lx.errLex(diag.LexInvalidRegexFlag, lx.cursor.SpanFrom(flagStart), "duplicate regular expression flag '"+f+"'")
			continue
		}
		seen += f
	}
}
