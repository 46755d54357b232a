package lexer

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"esfront/internal/diag"
	"esfront/internal/token"
)

// scanHashbang records a #! line at offset zero as trivia.
func (lx *Lexer) scanHashbang() {
	if b0, b1, ok := lx.cursor.Peek2(); !ok || b0 != '#' || b1 != '!' {
		return
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && !lx.atLineTerminator() {
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.trivia = append(lx.trivia, token.Trivia{Kind: token.TriviaHashbang, Span: sp, Text: lx.text(sp)})
}

// collectLeadingTrivia scans whitespace, line breaks and comments before the
// next significant token. It returns the trivia run and NewlineBefore when a
// line break (or a block comment spanning lines) was seen.
//   - spaces, tabs and other Zs characters coalesce into one TriviaWhitespace
//   - consecutive line terminators coalesce into one TriviaNewline
//   - //... up to the line end is a TriviaLineComment
//   - /* ... */ is a TriviaBlockComment; an unclosed one runs to EOF
func (lx *Lexer) collectLeadingTrivia() ([]token.Trivia, token.Flags) {
	first := len(lx.trivia)
	var flags token.Flags
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch {
		case lx.atWhitespace():
			for !lx.cursor.EOF() && lx.atWhitespace() {
				lx.bumpRune()
			}
			lx.pushTrivia(token.TriviaWhitespace, start, false)
			continue
		case lx.atLineTerminator():
			for !lx.cursor.EOF() && lx.atLineTerminator() {
				lx.bumpRune()
			}
			lx.pushTrivia(token.TriviaNewline, start, false)
			flags |= token.NewlineBefore
			continue
		case lx.cursor.Peek() == '/':
			if multiline, ok := lx.scanComment(); ok {
				if multiline {
					flags |= token.NewlineBefore
				}
				continue
			}
		}
		break
	}
	if first == len(lx.trivia) {
		return nil, flags
	}
	return slices.Clip(lx.trivia[first:]), flags
}

// scanComment consumes one comment if the cursor is at // or /*.
func (lx *Lexer) scanComment() (multiline, ok bool) {
	start := lx.cursor.Mark()
	b0, b1, has := lx.cursor.Peek2()
	if !has || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false, false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	if b1 == '/' {
		for !lx.cursor.EOF() && !lx.atLineTerminator() {
			lx.bumpRune()
		}
		lx.pushTrivia(token.TriviaLineComment, start, false)
		return false, true
	}

	closed := false
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			closed = true
			break
		}
		if lx.atLineTerminator() {
			multiline = true
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	lx.pushTrivia(token.TriviaBlockComment, start, !closed)
	return multiline, true
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark, unterminated bool) {
	sp := lx.cursor.SpanFrom(start)
	lx.trivia = append(lx.trivia, token.Trivia{
		Kind:         kind,
		Span:         sp,
		Text:         lx.text(sp),
		Unterminated: unterminated,
	})
}

func (lx *Lexer) atWhitespace() bool {
	b := lx.cursor.Peek()
	switch b {
	case ' ', '\t', '\v', '\f':
		return true
	}
	if b < utf8.RuneSelf {
		return false
	}
	r, _ := lx.peekRune()
	return r == 0xFEFF || (r != 0x2028 && r != 0x2029 && unicode.Is(unicode.Zs, r))
}

func (lx *Lexer) atLineTerminator() bool {
	b := lx.cursor.Peek()
	if b == '\n' || b == '\r' {
		return true
	}
	if b < utf8.RuneSelf {
		return false
	}
	r, _ := lx.peekRune()
	return r == 0x2028 || r == 0x2029
}
