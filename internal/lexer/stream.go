package lexer

import (
	"esfront/internal/token"
)

// ModeAfter picks ModeDivide when prev can end an expression and ModeRegex
// otherwise. Standalone token dumps use it; the parser knows better and
// rescans when the guess is wrong.
func ModeAfter(prev token.Kind) Mode {
	if prev.EndsExpression() {
		return ModeDivide
	}
	return ModeRegex
}

// Tokenize scans the whole file without a parser, tracking template
// interpolations the way the parser would. The EOF token is included.
func Tokenize(lx *Lexer) []token.Token {
	out := make([]token.Token, 0, 128)
	prev := token.Invalid
	for {
		tok := lx.Next(ModeAfter(prev))
		switch tok.Kind {
		case token.Gt:
			tok = lx.RescanGreater(tok)
		case token.TemplateHead:
			lx.PushTemplate()
		case token.TemplateTail:
			lx.PopTemplate()
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
		prev = tok.Kind
	}
}
