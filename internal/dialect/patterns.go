package dialect

import (
	"esfront/internal/token"
)

// ObserveTokenPair records token-pattern evidence using a sliding 2-token
// window. It works on a raw token stream, before any parse, so it only
// looks for shapes that plain JavaScript never produces. The caller feeds
// tokens in source order.
func ObserveTokenPair(e *Evidence, prev, tok token.Token) {
	if e == nil {
		return
	}

	adjacent := prev.Span.File == tok.Span.File && prev.Span.End == tok.Span.Start
	sameLine := !tok.NewlineBefore()

	switch prev.Kind {
	case token.KwInterface, token.KwEnum, token.KwNamespace:
		if tok.Kind == token.Ident && sameLine {
			e.Add(Hint{Dialect: TypeScript, Score: 5, Reason: "`" + prev.Text + "` declaration", Span: prev.Span.Cover(tok.Span)})
		}
	case token.KwType:
		if tok.Kind == token.Ident && sameLine {
			e.Add(Hint{Dialect: TypeScript, Score: 3, Reason: "type alias", Span: prev.Span.Cover(tok.Span)})
		}
	case token.KwImplements, token.KwAbstract, token.KwDeclare, token.KwReadonly:
		if tok.IsIdentLike() && sameLine {
			e.Add(Hint{Dialect: TypeScript, Score: 2, Reason: "typescript modifier `" + prev.Text + "`", Span: prev.Span})
		}
	case token.Colon:
		switch tok.Kind {
		case token.KwString, token.KwNumber, token.KwBoolean, token.KwAny, token.KwUnknown, token.KwNever:
			e.Add(Hint{Dialect: TypeScript, Score: 2, Reason: "type annotation `: " + tok.Text + "`", Span: prev.Span.Cover(tok.Span)})
		}
	case token.KwAs:
		if tok.Kind == token.KwConst {
			e.Add(Hint{Dialect: TypeScript, Score: 4, Reason: "`as const` assertion", Span: prev.Span.Cover(tok.Span)})
		}
	case token.Lt:
		// A raw stream scans "/div>" after '<' as a regex.
		if (tok.Kind == token.Slash || tok.Kind == token.RegexLit) && adjacent {
			e.Add(Hint{Dialect: JSX, Score: 5, Reason: "JSX closing tag `</`", Span: prev.Span.Cover(tok.Span)})
		}
		if tok.Kind == token.Gt && adjacent {
			e.Add(Hint{Dialect: JSX, Score: 3, Reason: "JSX fragment `<>`", Span: prev.Span.Cover(tok.Span)})
		}
	case token.Slash:
		if tok.Kind == token.Gt && adjacent {
			e.Add(Hint{Dialect: JSX, Score: 3, Reason: "self-closing JSX tag `/>`", Span: prev.Span.Cover(tok.Span)})
		}
	case token.At:
		if tok.IsIdentLike() && adjacent {
			e.Add(Hint{Dialect: Decorators, Score: 2, Reason: "decorator `@" + tok.Text + "`", Span: prev.Span.Cover(tok.Span)})
		}
	}
}

// Sniff runs ObserveTokenPair over a whole token stream.
func Sniff(toks []token.Token) *Evidence {
	e := NewEvidence()
	prev := token.Token{Kind: token.Invalid}
	for _, tok := range toks {
		ObserveTokenPair(e, prev, tok)
		prev = tok
	}
	return e
}
