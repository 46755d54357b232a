package lexer

import (
	"esfront/internal/token"
)

// scanOperatorOrPunct scans the longest operator at the cursor. '>' is always
// returned alone; the parser widens it with RescanGreater in expression
// position.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := lx.scanPunctKind()
	if kind == token.Invalid {
		return lx.invalid(start, "unexpected character")
	}
	lx.trackBrace(kind)
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// trackBrace keeps the brace depth of the innermost interpolation current.
func (lx *Lexer) trackBrace(kind token.Kind) {
	n := len(lx.templates)
	if n == 0 {
		return
	}
	switch kind {
	case token.LBrace:
		lx.templates[n-1]++
	case token.RBrace:
		if lx.templates[n-1] > 0 {
			lx.templates[n-1]--
		}
	}
}

func (lx *Lexer) scanPunctKind() token.Kind {
	c := lx.cursor.Bump()
	switch c {
	case '{':
		return token.LBrace
	case '}':
		return token.RBrace
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case '[':
		return token.LBracket
	case ']':
		return token.RBracket
	case ';':
		return token.Semicolon
	case ',':
		return token.Comma
	case ':':
		return token.Colon
	case '~':
		return token.Tilde
	case '@':
		return token.At
	case '>':
		return token.Gt
	case '.':
		if lx.try2('.', '.') {
			return token.DotDotDot
		}
		return token.Dot
	case '?':
		switch {
		case lx.try2('?', '='):
			return token.QuestionQuestionAssign
		case lx.cursor.Eat('?'):
			return token.QuestionQuestion
		case lx.cursor.Peek() == '.' && !isDec(lx.cursor.PeekAt(1)):
			lx.cursor.Bump()
			return token.QuestionDot
		}
		return token.Question
	case '<':
		switch {
		case lx.try2('<', '='):
			return token.ShlAssign
		case lx.cursor.Eat('<'):
			return token.Shl
		case lx.cursor.Eat('='):
			return token.LtEq
		}
		return token.Lt
	case '=':
		switch {
		case lx.try2('=', '='):
			return token.EqEqEq
		case lx.cursor.Eat('='):
			return token.EqEq
		case lx.cursor.Eat('>'):
			return token.FatArrow
		}
		return token.Assign
	case '!':
		switch {
		case lx.try2('=', '='):
			return token.BangEqEq
		case lx.cursor.Eat('='):
			return token.BangEq
		}
		return token.Bang
	case '+':
		switch {
		case lx.cursor.Eat('+'):
			return token.PlusPlus
		case lx.cursor.Eat('='):
			return token.PlusAssign
		}
		return token.Plus
	case '-':
		switch {
		case lx.cursor.Eat('-'):
			return token.MinusMinus
		case lx.cursor.Eat('='):
			return token.MinusAssign
		}
		return token.Minus
	case '*':
		switch {
		case lx.try2('*', '='):
			return token.StarStarAssign
		case lx.cursor.Eat('*'):
			return token.StarStar
		case lx.cursor.Eat('='):
			return token.StarAssign
		}
		return token.Star
	case '/':
		if lx.cursor.Eat('=') {
			return token.SlashAssign
		}
		return token.Slash
	case '%':
		if lx.cursor.Eat('=') {
			return token.PercentAssign
		}
		return token.Percent
	case '&':
		switch {
		case lx.try2('&', '='):
			return token.AndAndAssign
		case lx.cursor.Eat('&'):
			return token.AndAnd
		case lx.cursor.Eat('='):
			return token.AmpAssign
		}
		return token.Amp
	case '|':
		switch {
		case lx.try2('|', '='):
			return token.OrOrAssign
		case lx.cursor.Eat('|'):
			return token.OrOr
		case lx.cursor.Eat('='):
			return token.PipeAssign
		}
		return token.Pipe
	case '^':
		if lx.cursor.Eat('=') {
			return token.CaretAssign
		}
		return token.Caret
	}
	lx.cursor.Off--
	return token.Invalid
}
