package parser

import (
	"fmt"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/fix"
	"esfront/internal/token"
)

// Binding power of binary operators; higher binds tighter.
const (
	precNone = iota
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
)

func (p *Parser) binaryPrec(k token.Kind) int {
	switch k {
	case token.QuestionQuestion:
		return precNullish
	case token.OrOr:
		return precOr
	case token.AndAnd:
		return precAnd
	case token.Pipe:
		return precBitOr
	case token.Caret:
		return precBitXor
	case token.Amp:
		return precBitAnd
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return precEquality
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.KwInstanceof:
		return precRelational
	case token.KwIn:
		if p.ctx.noIn {
			return precNone
		}
		return precRelational
	case token.Shl, token.Shr, token.UShr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	case token.StarStar:
		return precExponent
	}
	return precNone
}

// parseExpression parses a comma-separated Expression.
func (p *Parser) parseExpression() ast.NodeID {
	start := p.tok.Span.Start
	first := p.parseAssign()
	if !p.at(token.Comma) {
		return first
	}
	exprs := []ast.NodeID{first}
	for p.eat(token.Comma) {
		exprs = append(exprs, p.parseAssign())
	}
	return p.node(ast.SequenceExpr, start, p.list(exprs, start))
}

// parseAssign parses an AssignmentExpression. Object and array literals on
// the left of '=' are reinterpreted as patterns; shorthand initializers
// that never became patterns are reported when the outermost assignment
// expression ends.
func (p *Parser) parseAssign() ast.NodeID {
	if !p.enter() {
		p.leave()
		return p.bailOut(ast.MissingExpr)
	}
	defer p.leave()

	p.assignNest++
	mark := len(p.coverInits)
	id := p.parseAssignInner(mark)
	p.assignNest--
	if p.assignNest == 0 {
		p.reportCoverInits(mark)
	}
	return id
}

func (p *Parser) parseAssignInner(mark int) ast.NodeID {
	if p.at(token.KwYield) && p.ctx.generator {
		return p.parseYield()
	}
	start := p.tok.Span.Start
	left := p.parseConditional()

	if p.at(token.FatArrow) && p.b.Kind(left) == ast.Identifier {
		param := p.b.New(ast.Param, p.b.Span(left), ast.NoNode, left, ast.NoNode, ast.NoNode)
		return p.parseArrowRest(start, 0, ast.NoNode, p.list([]ast.NodeID{param}, start), ast.NoNode)
	}

	p.widenGreater()
	if !p.tok.Kind.IsAssign() {
		return left
	}
	op := p.tok
	if op.Kind == token.Assign {
		switch p.b.Kind(left) {
		case ast.ObjectLit, ast.ArrayLit:
			left = p.toPattern(left)
			p.coverInits = p.coverInits[:mark]
		default:
			p.checkSimpleTarget(left)
		}
	} else {
		p.checkSimpleTarget(left)
	}
	p.next()
	right := p.parseAssign()
	id := p.node(ast.AssignExpr, start, left, right)
	p.b.SetOp(id, op.Kind)
	return id
}

func (p *Parser) parseYield() ast.NodeID {
	tok := p.next()
	var flags ast.Flags
	arg := ast.NoNode
	if !p.tok.NewlineBefore() {
		if p.at(token.Star) {
			p.next()
			flags |= ast.FlagDelegate
			arg = p.parseAssign()
		} else if p.canStartExpression() && !p.at(token.KwIn) {
			arg = p.parseAssign()
		}
	}
	id := p.node(ast.YieldExpr, tok.Span.Start, arg)
	p.b.AddFlags(id, flags)
	return id
}

func (p *Parser) parseConditional() ast.NodeID {
	start := p.tok.Span.Start
	test := p.parseBinary(precNone)
	if !p.at(token.Question) {
		return test
	}
	p.next()
	savedNoIn, savedCons := p.ctx.noIn, p.ctx.inCondCons
	p.ctx.noIn = false
	p.ctx.inCondCons = true
	cons := p.parseAssign()
	p.ctx.noIn, p.ctx.inCondCons = savedNoIn, savedCons
	var alt ast.NodeID
	if p.expect(token.Colon) {
		alt = p.parseAssign()
	} else {
		alt = p.missingExpr()
	}
	return p.node(ast.ConditionalExpr, start, test, cons, alt)
}

// widenGreater lets the scanner join '>' with following '>' and '='.
func (p *Parser) widenGreater() {
	if p.tok.Kind == token.Gt {
		p.tok = p.lx.RescanGreater(p.tok)
	}
}

func (p *Parser) parseBinary(minPrec int) ast.NodeID {
	start := p.tok.Span.Start
	left := p.parseUnary()
	for {
		p.widenGreater()
		k := p.tok.Kind
		if (k == token.KwAs || k == token.KwSatisfies) && p.tok.Flags&(token.NewlineBefore|token.Escaped) == 0 {
			if precRelational <= minPrec {
				break
			}
			left = p.parseAsExpr(start, left)
			continue
		}
		if k == token.Lt && p.isJSX(left) {
			left = p.parseAdjacentJSX(start, left)
			continue
		}
		prec := p.binaryPrec(k)
		if prec == precNone || prec <= minPrec {
			break
		}
		op := p.next()
		var right ast.NodeID
		if k == token.StarStar {
			p.checkExponentBase(left, op)
			right = p.parseBinary(prec - 1)
		} else {
			right = p.parseBinary(prec)
		}
		kind := ast.BinaryExpr
		if k == token.AndAnd || k == token.OrOr || k == token.QuestionQuestion {
			kind = ast.LogicalExpr
			p.checkNullishMix(k, left, right)
		}
		left = p.node(kind, start, left, right)
		p.b.SetOp(left, k)
	}
	return left
}

func (p *Parser) parseAsExpr(start uint32, left ast.NodeID) ast.NodeID {
	tok := p.next()
	kind := ast.AsExpr
	if tok.Kind == token.KwSatisfies {
		kind = ast.SatisfiesExpr
	}
	var typ ast.NodeID
	if tok.Kind == token.KwAs && p.at(token.KwConst) {
		c := p.next()
		typ = p.b.New(ast.KeywordType, c.Span)
		p.b.SetOp(typ, token.KwConst)
	} else {
		typ = p.parseType()
	}
	id := p.node(kind, start, left, typ)
	p.typeSyntax(p.spanFrom(tok.Span.Start), "'"+tok.Text+"' expression")
	return id
}

// checkExponentBase rejects an unparenthesised unary or await operand on
// the left of '**'.
func (p *Parser) checkExponentBase(left ast.NodeID, op token.Token) {
	switch p.b.Kind(left) {
	case ast.UnaryExpr, ast.AwaitExpr:
	default:
		return
	}
	sp := p.b.Span(left)
	p.errorAt(diag.SynExponentUnary, sp, "unary operator before '**' must be parenthesised").
		WithNote(op.Span, "exponent operator is here").
		WithFixSuggestion(fix.Parenthesize("wrap the operand in parentheses", sp)).
		Emit()
}

// checkNullishMix rejects '??' next to unparenthesised '&&' or '||'.
func (p *Parser) checkNullishMix(op token.Kind, left, right ast.NodeID) {
	mixes := func(operand ast.NodeID) bool {
		if p.b.Kind(operand) != ast.LogicalExpr {
			return false
		}
		inner := p.b.Op(operand)
		if op == token.QuestionQuestion {
			return inner == token.AndAnd || inner == token.OrOr
		}
		return inner == token.QuestionQuestion
	}
	for _, operand := range []ast.NodeID{left, right} {
		if !mixes(operand) {
			continue
		}
		sp := p.b.Span(operand)
		p.errorAt(diag.SynMixedNullish, sp, fmt.Sprintf("'%s' cannot be mixed with '%s' without parentheses", op, p.b.Op(operand))).
			WithFixSuggestion(fix.Parenthesize("wrap in parentheses", sp, fix.Preferred())).
			Emit()
		return
	}
}

func (p *Parser) parseUnary() ast.NodeID {
	if !p.enter() {
		p.leave()
		return p.bailOut(ast.MissingExpr)
	}
	defer p.leave()

	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Plus, token.Minus, token.Bang, token.Tilde, token.KwTypeof, token.KwVoid, token.KwDelete:
		op := p.next()
		arg := p.parseUnary()
		if op.Kind == token.KwDelete && p.ctx.strict && p.b.Kind(arg) == ast.Identifier {
			p.errorAt(diag.DialectStrictMode, p.spanFrom(start), "deleting a plain identifier is not allowed in strict mode").Emit()
		}
		id := p.node(ast.UnaryExpr, start, arg)
		p.b.SetOp(id, op.Kind)
		return id
	case token.PlusPlus, token.MinusMinus:
		op := p.next()
		arg := p.parseUnary()
		p.checkSimpleTarget(arg)
		id := p.node(ast.UpdateExpr, start, arg)
		p.b.SetOp(id, op.Kind)
		p.b.AddFlags(id, ast.FlagPrefix)
		return id
	case token.KwAwait:
		if p.awaitAllowed() {
			p.next()
			arg := p.parseUnary()
			return p.node(ast.AwaitExpr, start, arg)
		}
	case token.Lt:
		if p.cfg.TypeSyntax && !p.cfg.JSX {
			return p.parseTypeAssertionOrArrow()
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.NodeID {
	start := p.tok.Span.Start
	expr := p.parseLHS()
	if (p.at(token.PlusPlus) || p.at(token.MinusMinus)) && !p.tok.NewlineBefore() {
		op := p.next()
		p.checkSimpleTarget(expr)
		expr = p.node(ast.UpdateExpr, start, expr)
		p.b.SetOp(expr, op.Kind)
	}
	return expr
}

// checkSimpleTarget reports operands that cannot be assigned to.
func (p *Parser) checkSimpleTarget(id ast.NodeID) {
	if p.simpleTarget(id) {
		return
	}
	if p.b.Kind(id).IsMissing() {
		return
	}
	p.errorAt(diag.SynInvalidAssignTarget, p.b.Span(id), "invalid assignment target").Emit()
}

func (p *Parser) simpleTarget(id ast.NodeID) bool {
	switch p.b.Kind(id) {
	case ast.Identifier, ast.MemberExpr:
		return true
	case ast.ParenExpr, ast.NonNullExpr, ast.AsExpr, ast.SatisfiesExpr:
		return p.simpleTarget(p.b.Children(id)[0])
	case ast.TypeAssertion:
		return p.simpleTarget(p.b.Children(id)[1])
	}
	return false
}

// parseLHS parses member access, calls, optional chains and tagged
// templates on top of a primary or 'new' expression.
func (p *Parser) parseLHS() ast.NodeID {
	start := p.tok.Span.Start
	var expr ast.NodeID
	if p.at(token.KwNew) {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	return p.parseCallTail(start, expr, false)
}

func (p *Parser) parseNew() ast.NodeID {
	tok := p.next()
	start := tok.Span.Start
	if p.at(token.Dot) {
		p.next()
		meta := p.leaf(ast.Identifier, tok)
		if !p.atContextual(token.KwTarget) {
			p.unexpected(diag.SynUnexpectedToken, "'target'")
			return p.node(ast.MetaProperty, start, meta, p.missingExpr())
		}
		prop := p.leaf(ast.Identifier, p.next())
		if !p.ctx.inFunction {
			p.errorAt(diag.SynUnexpectedToken, p.spanFrom(start), "'new.target' outside of a function").Emit()
		}
		return p.node(ast.MetaProperty, start, meta, prop)
	}
	cstart := p.tok.Span.Start
	var callee ast.NodeID
	if p.at(token.KwNew) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseCallTail(cstart, callee, true)
	targs := ast.NoNode
	if p.at(token.Lt) && p.cfg.TypeSyntax {
		p.speculate(func() bool {
			targs = p.parseTypeArgs()
			return true
		})
	}
	args := ast.NoNode
	if p.at(token.LParen) {
		args = p.parseArguments()
	}
	return p.node(ast.NewExpr, start, callee, targs, args)
}

// parseCallTail applies postfix operators to expr. Under 'new' (noCall)
// only member accesses are taken; the argument list belongs to 'new'.
func (p *Parser) parseCallTail(start uint32, expr ast.NodeID, noCall bool) ast.NodeID {
	chain := false
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.next()
			prop := p.parseMemberName()
			expr = p.node(ast.MemberExpr, start, expr, prop)
		case token.QuestionDot:
			q := p.next()
			if noCall {
				p.errorAt(diag.SynNewOptionalChain, q.Span, "optional chain is not allowed in a 'new' callee").Emit()
			} else {
				chain = true
			}
			expr = p.parseOptionalStep(start, expr, q)
		case token.LBracket:
			open := p.next()
			savedNoIn := p.ctx.noIn
			p.ctx.noIn = false
			prop := p.parseExpression()
			p.ctx.noIn = savedNoIn
			p.expectClose(token.RBracket, open)
			expr = p.node(ast.MemberExpr, start, expr, prop)
			p.b.AddFlags(expr, ast.FlagComputed)
		case token.LParen:
			if noCall {
				return expr
			}
			args := p.parseArguments()
			expr = p.node(ast.CallExpr, start, expr, ast.NoNode, args)
		case token.NoSubstTemplate, token.TemplateHead:
			if chain {
				p.errorAt(diag.SynOptionalChainTemplate, p.tok.Span, "tagged template cannot be used in an optional chain").Emit()
			}
			expr = p.parseTaggedTemplate(start, expr, ast.NoNode)
		case token.Bang:
			if p.tok.NewlineBefore() || !p.cfg.TypeSyntax {
				return p.closeChain(start, expr, chain)
			}
			tok := p.next()
			p.typeSyntax(tok.Span, "a non-null assertion")
			expr = p.node(ast.NonNullExpr, start, expr)
		case token.Lt:
			if !p.cfg.TypeSyntax || noCall {
				return p.closeChain(start, expr, chain)
			}
			next, ok := p.tryTypeArgsTail(start, expr)
			if !ok {
				return p.closeChain(start, expr, chain)
			}
			expr = next
		default:
			return p.closeChain(start, expr, chain)
		}
	}
}

func (p *Parser) closeChain(start uint32, expr ast.NodeID, chain bool) ast.NodeID {
	if !chain {
		return expr
	}
	return p.node(ast.OptionalChain, start, expr)
}

// parseOptionalStep parses what follows '?.': a name, '[expr]', a call or
// type arguments and a call.
func (p *Parser) parseOptionalStep(start uint32, expr ast.NodeID, q token.Token) ast.NodeID {
	var id ast.NodeID
	switch p.tok.Kind {
	case token.LParen:
		args := p.parseArguments()
		id = p.node(ast.CallExpr, start, expr, ast.NoNode, args)
	case token.LBracket:
		open := p.next()
		prop := p.parseExpression()
		p.expectClose(token.RBracket, open)
		id = p.node(ast.MemberExpr, start, expr, prop)
		p.b.AddFlags(id, ast.FlagComputed)
	case token.Lt:
		targs := p.parseTypeArgs()
		args := p.parseArguments()
		id = p.node(ast.CallExpr, start, expr, targs, args)
	case token.NoSubstTemplate, token.TemplateHead:
		p.errorAt(diag.SynOptionalChainTemplate, q.Span, "tagged template cannot be used in an optional chain").Emit()
		return p.parseTaggedTemplate(start, expr, ast.NoNode)
	default:
		prop := p.parseMemberName()
		id = p.node(ast.MemberExpr, start, expr, prop)
	}
	p.b.AddFlags(id, ast.FlagOptional)
	return id
}

// tryTypeArgsTail speculatively reads '<...>' after a callee. It is kept
// when a call, a tagged template or a token that cannot continue a
// relational expression follows.
func (p *Parser) tryTypeArgsTail(start uint32, expr ast.NodeID) (ast.NodeID, bool) {
	var targs ast.NodeID
	ok := p.speculate(func() bool {
		targs = p.parseTypeArgs()
		return p.typeArgsFollow()
	})
	if !ok {
		return expr, false
	}
	switch p.tok.Kind {
	case token.LParen:
		args := p.parseArguments()
		return p.node(ast.CallExpr, start, expr, targs, args), true
	case token.NoSubstTemplate, token.TemplateHead:
		return p.parseTaggedTemplate(start, expr, targs), true
	}
	return p.node(ast.InstantiationExpr, start, expr, targs), true
}

func (p *Parser) typeArgsFollow() bool {
	switch p.tok.Kind {
	case token.LParen, token.NoSubstTemplate, token.TemplateHead,
		token.RParen, token.RBracket, token.Semicolon, token.Comma, token.RBrace, token.EOF,
		token.Dot, token.QuestionDot, token.Colon, token.EqEq, token.EqEqEq, token.BangEq,
		token.BangEqEq, token.AndAnd, token.OrOr, token.QuestionQuestion, token.Question:
		return true
	}
	return p.tok.NewlineBefore()
}

// parseMemberName parses the name after '.' or '?.'.
func (p *Parser) parseMemberName() ast.NodeID {
	switch {
	case p.at(token.PrivateName):
		return p.leaf(ast.PrivateIdentifier, p.next())
	case p.tok.Kind.IsIdentifierName():
		return p.leaf(ast.Identifier, p.next())
	}
	p.unexpected(diag.SynExpectIdentifier, "a property name")
	return p.missingExpr()
}

func (p *Parser) parseArguments() ast.NodeID {
	open := p.next()
	savedNoIn := p.ctx.noIn
	p.ctx.noIn = false
	args := p.delimited(open, token.RParen, p.canStartArgument, p.parseArgument)
	p.ctx.noIn = savedNoIn
	list := p.list(args, open.Span.End)
	p.expectClose(token.RParen, open)
	return list
}

func (p *Parser) canStartArgument() bool {
	return p.at(token.DotDotDot) || p.canStartExpression()
}

func (p *Parser) parseArgument() ast.NodeID {
	if !p.at(token.DotDotDot) {
		return p.parseAssign()
	}
	start := p.next().Span.Start
	arg := p.parseAssign()
	return p.node(ast.SpreadElement, start, arg)
}
