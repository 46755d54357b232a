package parser

import (
	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/source"
	"esfront/internal/token"
)

func (p *Parser) parsePrimary() ast.NodeID {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.KwThis:
		return p.b.New(ast.ThisExpr, p.next().Span)
	case token.KwSuper:
		tok := p.next()
		if !p.at(token.LParen) && !p.at(token.Dot) && !p.at(token.LBracket) {
			p.errorAt(diag.SynUnexpectedToken, tok.Span, "'super' must be followed by an argument list or member access").Emit()
		}
		return p.b.New(ast.SuperExpr, tok.Span)
	case token.KwNull:
		return p.b.New(ast.NullLit, p.next().Span)
	case token.KwTrue, token.KwFalse:
		tok := p.next()
		id := p.leaf(ast.BoolLit, tok)
		p.b.SetOp(id, tok.Kind)
		return id
	case token.NumericLit, token.StringLit, token.RegexLit:
		return p.parseLiteral()
	case token.Slash, token.SlashAssign:
		p.tok = p.lx.RescanSlash(p.tok)
		return p.parseLiteral()
	case token.NoSubstTemplate, token.TemplateHead:
		return p.parseTemplate(false)
	case token.LParen:
		return p.parseParenOrArrow()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		return p.parseFunctionExpr()
	case token.KwClass:
		return p.parseClass(ast.ClassExpr, start, nil, 0)
	case token.At:
		decorators := p.parseDecorators()
		if !p.at(token.KwClass) {
			p.fail(diag.SynDecoratorPosition, p.spanFrom(start), "decorators must precede a class")
			return p.parsePrimary()
		}
		return p.parseClass(ast.ClassExpr, start, decorators, 0)
	case token.KwNew:
		return p.parseNew()
	case token.KwImport:
		return p.parseImportExpr()
	case token.Lt:
		return p.parseAngle()
	case token.PrivateName:
		tok := p.next()
		if !p.at(token.KwIn) {
			p.errorAt(diag.SynUnexpectedToken, tok.Span, "a private name is only allowed before 'in' or after '.'").Emit()
		}
		return p.leaf(ast.PrivateIdentifier, tok)
	case token.Invalid:
		// The scanner already reported the character.
		tok := p.next()
		p.corrupt = true
		return p.b.New(ast.MissingExpr, tok.Span)
	}

	if p.atIdent() {
		if p.atContextual(token.KwAsync) {
			if id, ok := p.tryAsyncArrowOrFunction(); ok {
				return id
			}
		}
		return p.leaf(ast.Identifier, p.next())
	}
	p.unexpected(diag.SynExpectExpression, "an expression")
	return p.missingExpr()
}

func (p *Parser) parseLiteral() ast.NodeID {
	tok := p.next()
	switch tok.Kind {
	case token.NumericLit:
		id := p.leaf(ast.NumericLit, tok)
		p.b.SetAux(id, uint16(tok.NumFormat))
		if tok.NumFormat&token.NumLegacyOctal != 0 && p.ctx.strict {
			p.errorAt(diag.DialectStrictMode, tok.Span, "legacy octal literals are not allowed in strict mode").Emit()
		}
		return id
	case token.StringLit:
		id := p.leaf(ast.StringLit, tok)
		if tok.Flags&token.Unterminated != 0 {
			p.b.AddFlags(id, ast.FlagUnterminated)
		}
		return id
	case token.RegexLit:
		id := p.leaf(ast.RegexLit, tok)
		if tok.Flags&token.Unterminated != 0 {
			p.b.AddFlags(id, ast.FlagUnterminated)
		}
		return id
	}
	p.unexpected(diag.SynExpectExpression, "a literal")
	return p.missingExpr()
}

// parseTemplate parses a template literal. Interpolations alternate with
// TemplateElement parts. An interpolation that does not end at its '}'
// abandons the template.
func (p *Parser) parseTemplate(tagged bool) ast.NodeID {
	return p.parseTemplateParts(ast.TemplateLit, tagged, func() ast.NodeID {
		savedNoIn := p.ctx.noIn
		p.ctx.noIn = false
		expr := p.parseExpression()
		p.ctx.noIn = savedNoIn
		return expr
	})
}

// parseTemplateParts parses template elements alternating with the
// interpolations read by inner. Template literal types share it.
func (p *Parser) parseTemplateParts(kind ast.Kind, tagged bool, inner func() ast.NodeID) ast.NodeID {
	start := p.tok.Span.Start
	parts := make([]ast.NodeID, 0, 3)
	first := p.next()
	parts = append(parts, p.templateElement(first))
	invalid := first.Flags&token.InvalidEscape != 0
	if first.Kind == token.TemplateHead {
	loop:
		for {
			var expr ast.NodeID
			if p.at(token.TemplateMiddle) || p.at(token.TemplateTail) {
				p.fail(diag.SynEmptyTemplateExpr, p.tok.Span, "template interpolation is empty")
				expr = p.missingExpr()
			} else {
				expr = inner()
			}
			parts = append(parts, expr)
			if p.at(token.RBrace) {
				p.tok = p.lx.RescanTemplate(p.tok)
			}
			switch p.tok.Kind {
			case token.TemplateMiddle, token.TemplateTail:
				tok := p.next()
				invalid = invalid || tok.Flags&token.InvalidEscape != 0
				parts = append(parts, p.templateElement(tok))
				if tok.Kind == token.TemplateTail {
					break loop
				}
			default:
				p.lx.PopTemplate()
				p.fail(diag.SynUnclosedDelimiter, p.errSpan(), "expected '}' to close the template interpolation")
				break loop
			}
		}
	}
	id := p.node(kind, start, p.list(parts, start))
	if tagged && invalid {
		p.dropEscapeErrors(p.b.Span(id))
	}
	return id
}

func (p *Parser) templateElement(tok token.Token) ast.NodeID {
	id := p.leaf(ast.TemplateElement, tok)
	switch tok.Kind {
	case token.NoSubstTemplate, token.TemplateTail:
		p.b.AddFlags(id, ast.FlagTail)
	}
	if tok.Flags&token.Unterminated != 0 {
		p.b.AddFlags(id, ast.FlagUnterminated)
	}
	return id
}

// dropEscapeErrors removes escape diagnostics inside a tagged template,
// whose raw strings may hold any escape.
func (p *Parser) dropEscapeErrors(sp source.Span) {
	p.bag.Filter(func(d diag.Diagnostic) bool {
		return d.Code != diag.LexInvalidEscape || !sp.Contains(d.Primary)
	})
}

func (p *Parser) parseTaggedTemplate(start uint32, tag, typeArgs ast.NodeID) ast.NodeID {
	quasi := p.parseTemplate(true)
	return p.node(ast.TaggedTemplate, start, tag, typeArgs, quasi)
}

// parseParenOrArrow tells a parenthesised expression from an arrow
// function's parameter list by looking past the matching ')'.
func (p *Parser) parseParenOrArrow() ast.NodeID {
	start := p.tok.Span.Start
	switch after := p.parenThen(1); {
	case after.Kind == token.FatArrow:
		return p.parseArrow(start, 0, ast.NoNode)
	case after.Kind == token.Colon:
		var id ast.NodeID
		if p.speculate(func() bool {
			id = p.parseArrow(start, 0, ast.NoNode)
			return p.closesConsequent()
		}) {
			return id
		}
	}
	open := p.next()
	if p.at(token.RParen) {
		p.unexpected(diag.SynExpectExpression, "an expression")
		expr := p.missingExpr()
		p.next()
		return p.node(ast.ParenExpr, start, expr)
	}
	savedNoIn, savedCons := p.ctx.noIn, p.ctx.inCondCons
	p.ctx.noIn, p.ctx.inCondCons = false, false
	expr := p.parseExpression()
	p.ctx.noIn, p.ctx.inCondCons = savedNoIn, savedCons
	p.expectClose(token.RParen, open)
	return p.node(ast.ParenExpr, start, expr)
}

// closesConsequent reports whether an arrow with a return type may end here.
// In the consequent of '?:' it must be followed by the conditional's ':',
// so 'c ? (a): b => a : d' keeps the arrow and 'c ? (a) : b => a' does not.
func (p *Parser) closesConsequent() bool {
	return !p.ctx.inCondCons || p.at(token.Colon)
}

// parseArrow parses an arrow function whose parameter list starts at the
// current '('.
func (p *Parser) parseArrow(start uint32, flags ast.Flags, typeParams ast.NodeID) ast.NodeID {
	saved := p.enterFunction(flags&ast.FlagAsync != 0, false)
	params := p.parseParams()
	ret := ast.NoNode
	if p.at(token.Colon) {
		ret = p.parseReturnType()
	}
	p.ctx = saved
	return p.parseArrowRest(start, flags, typeParams, params, ret)
}

// parseArrowRest parses '=>' and the body.
func (p *Parser) parseArrowRest(start uint32, flags ast.Flags, typeParams, params, ret ast.NodeID) ast.NodeID {
	if p.at(token.FatArrow) {
		if p.tok.NewlineBefore() {
			p.errorAt(diag.SynLineBreakNotAllowed, p.tok.Span, "line break is not allowed before '=>'").Emit()
		}
		p.next()
	} else {
		p.missingToken(token.FatArrow)
	}
	saved := p.enterFunction(flags&ast.FlagAsync != 0, false)
	var body ast.NodeID
	if p.at(token.LBrace) {
		body = p.parseFunctionBody()
	} else {
		flags |= ast.FlagExprBody
		body = p.parseAssign()
	}
	p.ctx = saved
	id := p.node(ast.ArrowFunc, start, typeParams, params, ret, body)
	p.b.AddFlags(id, flags)
	return id
}

// tryAsyncArrowOrFunction handles the forms 'async' can start: async
// function expressions and async arrow functions. Otherwise 'async' is a
// plain identifier.
func (p *Parser) tryAsyncArrowOrFunction() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	a, b := p.peek2()
	if a.NewlineBefore() {
		return ast.NoNode, false
	}
	switch {
	case a.Kind == token.KwFunction:
		return p.parseFunctionExpr(), true
	case a.IsIdentLike() && b.Kind == token.FatArrow:
		p.next()
		saved := p.enterFunction(true, false)
		binding := p.parseBindingIdent()
		p.ctx = saved
		param := p.b.New(ast.Param, p.b.Span(binding), ast.NoNode, binding, ast.NoNode, ast.NoNode)
		params := p.list([]ast.NodeID{param}, start)
		return p.parseArrowRest(start, ast.FlagAsync, ast.NoNode, params, ast.NoNode), true
	case a.Kind == token.LParen:
		after := p.parenThen(0)
		if after.Kind == token.FatArrow {
			p.next()
			return p.parseArrow(start, ast.FlagAsync, ast.NoNode), true
		}
		if after.Kind == token.Colon {
			var id ast.NodeID
			ok := p.speculate(func() bool {
				p.next()
				id = p.parseArrow(start, ast.FlagAsync, ast.NoNode)
				return p.closesConsequent()
			})
			return id, ok
		}
	case a.Kind == token.Lt && p.cfg.TypeSyntax:
		var id ast.NodeID
		ok := p.speculate(func() bool {
			p.next()
			tp := p.parseTypeParams()
			if !p.at(token.LParen) {
				return false
			}
			id = p.parseArrow(start, ast.FlagAsync, tp)
			return true
		})
		return id, ok
	}
	return ast.NoNode, false
}

// parseAngle handles '<' in primary position: a generic arrow function in
// TypeScript, otherwise a JSX element or fragment.
func (p *Parser) parseAngle() ast.NodeID {
	if p.cfg.TypeSyntax {
		a, b := p.peek2()
		generic := !p.cfg.JSX || a.IsIdentLike() && (b.Kind == token.Comma || b.Kind == token.KwExtends)
		if generic {
			if id, ok := p.tryGenericArrow(); ok {
				return id
			}
		}
	}
	return p.parseJSXElementOrFragment()
}

func (p *Parser) tryGenericArrow() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	var id ast.NodeID
	ok := p.speculate(func() bool {
		tp := p.parseTypeParams()
		if !p.at(token.LParen) {
			return false
		}
		id = p.parseArrow(start, 0, tp)
		return true
	})
	return id, ok
}

// parseTypeAssertionOrArrow handles '<' in unary position in TypeScript
// without JSX: '<T>(x) => x' or the old-style assertion '<T>expr'.
func (p *Parser) parseTypeAssertionOrArrow() ast.NodeID {
	if id, ok := p.tryGenericArrow(); ok {
		return id
	}
	start := p.next().Span.Start
	typ := p.parseType()
	p.expect(token.Gt)
	expr := p.parseUnary()
	id := p.node(ast.TypeAssertion, start, typ, expr)
	p.typeSyntax(p.b.Span(id), "a type assertion")
	return id
}

func (p *Parser) parseArrayLiteral() ast.NodeID {
	open := p.next()
	savedNoIn := p.ctx.noIn
	p.ctx.noIn = false
	elems := make([]ast.NodeID, 0, 4)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			elems = append(elems, p.b.New(ast.Hole, p.emptyAt(p.tok.Span.Start)))
			p.next()
			continue
		}
		elems = append(elems, p.parseArgument())
		if p.at(token.RBracket) {
			break
		}
		if !p.eat(token.Comma) && !p.missingSeparator(p.canStartArgument) {
			break
		}
	}
	p.ctx.noIn = savedNoIn
	list := p.list(elems, open.Span.End)
	p.expectClose(token.RBracket, open)
	return p.node(ast.ArrayLit, open.Span.Start, list)
}

func (p *Parser) parseObjectLiteral() ast.NodeID {
	open := p.next()
	savedNoIn := p.ctx.noIn
	p.ctx.noIn = false
	props := p.delimited(open, token.RBrace, p.canStartObjectMember, p.parseObjectMember)
	p.ctx.noIn = savedNoIn
	list := p.list(props, open.Span.End)
	p.expectClose(token.RBrace, open)
	return p.node(ast.ObjectLit, open.Span.Start, list)
}

func (p *Parser) canStartPropertyKey() bool {
	switch p.tok.Kind {
	case token.StringLit, token.NumericLit, token.LBracket, token.PrivateName, token.DotDotDot:
		return true
	}
	return p.tok.Kind.IsIdentifierName()
}

func (p *Parser) canStartObjectMember() bool {
	return p.canStartPropertyKey() || p.at(token.Star)
}

// parsePropertyKey parses an object or class member name. Computed keys
// report computed=true and return the inner expression.
func (p *Parser) parsePropertyKey(allowPrivate bool) (ast.NodeID, bool) {
	switch {
	case p.at(token.StringLit), p.at(token.NumericLit):
		return p.parseLiteral(), false
	case p.at(token.PrivateName):
		tok := p.next()
		if !allowPrivate {
			p.errorAt(diag.SynUnexpectedToken, tok.Span, "private names are only allowed in classes").Emit()
		}
		return p.leaf(ast.PrivateIdentifier, tok), false
	case p.at(token.LBracket):
		open := p.next()
		savedNoIn := p.ctx.noIn
		p.ctx.noIn = false
		expr := p.parseAssign()
		p.ctx.noIn = savedNoIn
		p.expectClose(token.RBracket, open)
		return expr, true
	case p.tok.Kind.IsIdentifierName():
		return p.leaf(ast.Identifier, p.next()), false
	}
	p.unexpected(diag.SynExpectIdentifier, "a property name")
	return p.missingExpr(), false
}

// atMemberModifier reports whether a modifier word like 'get' or 'async'
// is followed by a member name rather than being the name itself.
func (p *Parser) atMemberModifier() bool {
	t := p.peek()
	switch t.Kind {
	case token.Comma, token.Colon, token.LParen, token.RBrace, token.Assign, token.Semicolon,
		token.Question, token.Bang, token.Lt, token.EOF:
		return false
	}
	return true
}

func (p *Parser) parseObjectMember() ast.NodeID {
	start := p.tok.Span.Start
	if p.at(token.DotDotDot) {
		p.next()
		arg := p.parseAssign()
		return p.node(ast.SpreadElement, start, arg)
	}

	var flags ast.Flags
	kind := ast.MethodPlain
	if p.atContextual(token.KwAsync) && p.atMemberModifier() && !p.peek().NewlineBefore() {
		p.next()
		flags |= ast.FlagAsync
	}
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	if flags == 0 && (p.atContextual(token.KwGet) || p.atContextual(token.KwSet)) && p.atMemberModifier() {
		if p.next().Kind == token.KwGet {
			kind = ast.MethodGet
		} else {
			kind = ast.MethodSet
		}
	}
	keyTok := p.tok
	key, computed := p.parsePropertyKey(false)

	if p.at(token.LParen) || p.at(token.Lt) || flags != 0 || kind != ast.MethodPlain {
		fn := p.parseMethodFunction(p.tok.Span.Start, flags)
		id := p.node(ast.Property, start, key, fn)
		p.b.AddFlags(id, ast.FlagMethod)
		p.b.SetAux(id, uint16(kind))
		if computed {
			p.b.AddFlags(id, ast.FlagComputed)
		}
		return id
	}
	if p.eat(token.Colon) {
		value := p.parseAssign()
		id := p.node(ast.Property, start, key, value)
		if computed {
			p.b.AddFlags(id, ast.FlagComputed)
		}
		return id
	}

	// Shorthand: the key is the value.
	if computed || p.b.Kind(key) != ast.Identifier || keyTok.Kind.IsReserved() && keyTok.Flags&token.Escaped == 0 {
		p.missingToken(token.Colon)
		return p.node(ast.Property, start, key, p.missingExpr())
	}
	value := key
	if p.at(token.Assign) {
		// '{a = 1}' is only valid once the literal becomes a pattern.
		eq := p.next()
		init := p.parseAssign()
		value = p.node(ast.AssignExpr, start, key, init)
		p.b.SetOp(value, token.Assign)
		p.coverInits = append(p.coverInits, eq.Span.Cover(p.b.Span(init)))
	}
	id := p.node(ast.Property, start, ast.NoNode, value)
	p.b.AddFlags(id, ast.FlagShorthand)
	return id
}

// parseMethodFunction parses the parameter list, return type and body of a
// method into a FunctionExpr.
func (p *Parser) parseMethodFunction(start uint32, flags ast.Flags) ast.NodeID {
	typeParams := p.parseTypeParamsOpt()
	saved := p.enterFunction(flags&ast.FlagAsync != 0, flags&ast.FlagGenerator != 0)
	params := p.parseParams()
	ret := ast.NoNode
	if p.at(token.Colon) {
		ret = p.parseReturnType()
	}
	var body ast.NodeID
	if p.at(token.LBrace) {
		body = p.parseFunctionBody()
	} else {
		p.missingToken(token.LBrace)
		body = p.node(ast.BlockStmt, p.prevEnd(), p.list(nil, p.prevEnd()))
	}
	p.ctx = saved
	id := p.node(ast.FunctionExpr, start, ast.NoNode, typeParams, params, ret, body)
	p.b.AddFlags(id, flags)
	return id
}

// parseImportExpr parses 'import(...)' and 'import.meta'.
func (p *Parser) parseImportExpr() ast.NodeID {
	tok := p.next()
	start := tok.Span.Start
	if p.eat(token.Dot) {
		meta := p.leaf(ast.Identifier, tok)
		if !p.atContextual(token.KwMeta) {
			p.unexpected(diag.SynUnexpectedToken, "'meta'")
			return p.node(ast.MetaProperty, start, meta, p.missingExpr())
		}
		prop := p.leaf(ast.Identifier, p.next())
		id := p.node(ast.MetaProperty, start, meta, prop)
		if !p.cfg.Module {
			p.errorAt(diag.SynImportOutsideModule, p.b.Span(id), "'import.meta' is only allowed in modules").Emit()
		}
		return id
	}
	open := p.tok
	if !p.eat(token.LParen) {
		p.missingToken(token.LParen)
		return p.node(ast.ImportCall, start, p.missingExpr(), ast.NoNode)
	}
	savedNoIn := p.ctx.noIn
	p.ctx.noIn = false
	src := p.parseAssign()
	opts := ast.NoNode
	if p.eat(token.Comma) && !p.at(token.RParen) {
		opts = p.parseAssign()
		p.eat(token.Comma)
	}
	p.ctx.noIn = savedNoIn
	p.expectClose(token.RParen, open)
	return p.node(ast.ImportCall, start, src, opts)
}

func (p *Parser) isJSX(id ast.NodeID) bool {
	k := p.b.Kind(id)
	return k == ast.JSXElement || k == ast.JSXFragment
}

// parseAdjacentJSX reports sibling JSX elements without a common parent and
// keeps both in a sequence so the second is not lost.
func (p *Parser) parseAdjacentJSX(start uint32, left ast.NodeID) ast.NodeID {
	right := p.parseJSXElementOrFragment()
	p.fail(diag.SynJSXAdjacent, p.b.Span(right), "adjacent JSX elements must be wrapped in an enclosing element or fragment")
	return p.node(ast.SequenceExpr, start, p.list([]ast.NodeID{left, right}, start))
}
