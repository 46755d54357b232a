package parser

import (
	"fmt"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/source"
	"esfront/internal/token"
)

// skipTo discards tokens until one in set appears outside any bracket
// opened while skipping. It returns the skipped range. During speculation
// nothing is skipped; the attempt fails instead.
func (p *Parser) skipTo(set syncSet) source.Span {
	start := p.tok.Span.Start
	if p.state == StateSpeculating {
		p.specFailed = true
		return p.emptyAt(start)
	}
	saved := p.state
	p.state = StateRecovering
	depth, skipped := 0, 0
	for !p.at(token.EOF) {
		k := p.tok.Kind
		if depth == 0 && set.has(k) {
			break
		}
		switch k {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth > 0 {
				depth--
			}
		}
		p.next()
		skipped++
	}
	p.state = saved
	if skipped == 0 {
		return p.emptyAt(start)
	}
	p.corrupt = true
	sp := p.spanFrom(start)
	p.tracePoint("recover", fmt.Sprintf("skipped %d tokens at %d-%d", skipped, sp.Start, sp.End))
	return sp
}

// recoverStatement turns an unusable token run into a Skipped node. At
// least one token is consumed so that statement loops always advance.
func (p *Parser) recoverStatement() ast.NodeID {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.RParen, token.RBracket, token.RBrace:
		p.fail(diag.SynStrayCloser, p.tok.Span, fmt.Sprintf("unmatched '%s'", p.tok.Kind))
	default:
		p.unexpected(diag.SynExpectStatement, "a statement")
	}
	p.next()
	p.skipTo(syncStatement)
	p.eat(token.Semicolon)
	return p.b.New(ast.Skipped, p.spanFrom(start))
}

// enter guards recursion. Past maxDepth it reports once and the caller
// must bail out with tooDeep.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= maxDepth {
		return true
	}
	if !p.tooDeep {
		p.tooDeep = true
		p.fail(diag.SynNestingTooDeep, p.errSpan(), fmt.Sprintf("nesting exceeds %d levels", maxDepth))
	}
	return false
}

func (p *Parser) leave() { p.depth-- }

// bailOut skips the rest of the over-deep region: a balanced token run up
// to a closer, ';' or ',' at its own level. It returns a placeholder of kind.
func (p *Parser) bailOut(kind ast.Kind) ast.NodeID {
	id := p.placeholder(kind)
	if p.state == StateSpeculating {
		p.specFailed = true
		return id
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return id
			}
			depth--
		case token.Semicolon, token.Comma:
			if depth == 0 {
				return id
			}
		}
		p.next()
	}
	return id
}

// canStartStatement reports whether the current token can begin a
// statement or declaration.
func (p *Parser) canStartStatement() bool {
	switch p.tok.Kind {
	case token.Semicolon, token.LBrace, token.KwVar, token.KwConst, token.KwIf, token.KwFor,
		token.KwWhile, token.KwDo, token.KwReturn, token.KwBreak, token.KwContinue,
		token.KwThrow, token.KwTry, token.KwSwitch, token.KwFunction, token.KwClass,
		token.KwImport, token.KwExport, token.KwDebugger, token.KwWith, token.KwEnum, token.At:
		return true
	}
	return p.canStartExpression()
}

// canStartExpression reports whether the current token can begin an
// expression.
func (p *Parser) canStartExpression() bool {
	if p.tok.IsIdentLike() {
		return true
	}
	switch p.tok.Kind {
	case token.NumericLit, token.StringLit, token.RegexLit, token.NoSubstTemplate, token.TemplateHead,
		token.PrivateName, token.LParen, token.LBracket, token.LBrace, token.Plus, token.Minus,
		token.Bang, token.Tilde, token.PlusPlus, token.MinusMinus, token.Slash, token.SlashAssign,
		token.Lt, token.At, token.KwThis, token.KwSuper, token.KwNull, token.KwTrue, token.KwFalse,
		token.KwFunction, token.KwClass, token.KwNew, token.KwDelete, token.KwVoid, token.KwTypeof,
		token.KwImport:
		return true
	}
	return false
}
