package parser

import (
	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/token"
)

func (p *Parser) parseVarStatement(start uint32, flags ast.Flags) ast.NodeID {
	decl := p.parseVarDecl(start, flags, false)
	p.checkInitializers(decl)
	p.semicolon()
	p.b.SetSpan(decl, p.b.Span(decl).Cover(p.spanFrom(start)))
	return decl
}

// parseVarDecl parses a var, let, const, using or await using declaration
// without its terminator. Op holds the keyword.
func (p *Parser) parseVarDecl(start uint32, flags ast.Flags, inFor bool) ast.NodeID {
	if p.at(token.KwAwait) {
		tok := p.next()
		flags |= ast.FlagAwait
		if !p.awaitAllowed() {
			p.fail(diag.SynUnexpectedToken, tok.Span, "'await using' is only allowed in async functions and at module top level")
		}
	}
	kw := p.next()
	decls := make([]ast.NodeID, 0, 2)
	for {
		decls = append(decls, p.parseVarDeclarator(inFor))
		if !p.eat(token.Comma) {
			break
		}
	}
	id := p.node(ast.VarDecl, start, p.list(decls, p.prevEnd()))
	p.b.SetOp(id, kw.Kind)
	p.b.AddFlags(id, flags)
	return id
}

func (p *Parser) parseVarDeclarator(inFor bool) ast.NodeID {
	start := p.tok.Span.Start
	target := p.parseBindingTarget()
	var flags ast.Flags
	if p.at(token.Bang) && !p.tok.NewlineBefore() {
		tok := p.next()
		p.typeSyntax(tok.Span, "a definite assignment assertion")
		flags |= ast.FlagDefinite
	}
	typ, init := ast.NoNode, ast.NoNode
	if p.at(token.Colon) {
		typ = p.parseTypeAnnotation()
	}
	if p.eat(token.Assign) {
		init = p.parseAssign()
	}
	id := p.node(ast.VarDeclarator, start, target, typ, init)
	p.b.AddFlags(id, flags)
	return id
}

// checkInitializers reports const, using and destructuring declarators
// without an initializer. Ambient declarations need none.
func (p *Parser) checkInitializers(decl ast.NodeID) {
	if p.ambient() || p.b.Flags(decl)&ast.FlagDeclare != 0 {
		return
	}
	op := p.b.Op(decl)
	for _, d := range p.b.Children(p.b.Children(decl)[0]) {
		ch := p.b.Children(d)
		if ch[2] != ast.NoNode {
			continue
		}
		switch {
		case op == token.KwConst || op == token.KwUsing:
			p.errorAt(diag.SynMissingInitializer, p.b.Span(d), "missing initializer in "+op.String()+" declaration").Emit()
		case p.b.Kind(ch[0]) == ast.ObjectPattern || p.b.Kind(ch[0]) == ast.ArrayPattern:
			p.errorAt(diag.SynMissingInitializer, p.b.Span(d), "missing initializer in destructuring declaration").Emit()
		}
	}
}

func (p *Parser) ambient() bool { return p.ctx.ambient || p.cfg.Ambient }

// parseBindingTarget parses an identifier, array pattern or object pattern.
func (p *Parser) parseBindingTarget() ast.NodeID {
	switch {
	case p.at(token.LBracket):
		return p.parseArrayPattern()
	case p.at(token.LBrace):
		return p.parseObjectPattern()
	case p.atIdent():
		return p.parseBindingIdent()
	}
	p.unexpected(diag.SynExpectBinding, "a binding name or pattern")
	return p.placeholder(ast.MissingBinding)
}

func (p *Parser) parseBindingIdent() ast.NodeID {
	if !p.atIdent() {
		p.unexpected(diag.SynExpectIdentifier, "an identifier")
		return p.placeholder(ast.MissingBinding)
	}
	tok := p.next()
	if p.ctx.strict && (tok.Text == "eval" || tok.Text == "arguments") {
		p.errorAt(diag.DialectStrictMode, tok.Span, "'"+tok.Text+"' cannot be a binding name in strict mode").Emit()
	}
	return p.leaf(ast.Identifier, tok)
}

// parseBindingElement parses a binding target with an optional default.
func (p *Parser) parseBindingElement() ast.NodeID {
	start := p.tok.Span.Start
	target := p.parseBindingTarget()
	if !p.eat(token.Assign) {
		return target
	}
	init := p.parseAssign()
	return p.node(ast.AssignPattern, start, target, init)
}

func (p *Parser) canStartBinding() bool {
	return p.atIdent() || p.at(token.LBracket) || p.at(token.LBrace) || p.at(token.DotDotDot)
}

func (p *Parser) parseArrayPattern() ast.NodeID {
	open := p.next()
	elems := make([]ast.NodeID, 0, 4)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			elems = append(elems, p.b.New(ast.Hole, p.emptyAt(p.tok.Span.Start)))
			p.next()
			continue
		}
		if p.at(token.DotDotDot) {
			elems = append(elems, p.parseRestBinding(false))
		} else {
			elems = append(elems, p.parseBindingElement())
		}
		if p.at(token.RBracket) {
			break
		}
		if !p.eat(token.Comma) && !p.missingSeparator(p.canStartBinding) {
			break
		}
	}
	p.checkRestLast(elems, p.at(token.Comma))
	list := p.list(elems, open.Span.End)
	p.expectClose(token.RBracket, open)
	return p.node(ast.ArrayPattern, open.Span.Start, list)
}

func (p *Parser) parseObjectPattern() ast.NodeID {
	open := p.next()
	props := p.delimited(open, token.RBrace, p.canStartPropertyKey, p.parsePatternProperty)
	p.checkRestLast(props, false)
	list := p.list(props, open.Span.End)
	p.expectClose(token.RBrace, open)
	return p.node(ast.ObjectPattern, open.Span.Start, list)
}

func (p *Parser) parsePatternProperty() ast.NodeID {
	if p.at(token.DotDotDot) {
		return p.parseRestBinding(true)
	}
	start := p.tok.Span.Start
	key, computed := p.parsePropertyKey(false)
	if p.eat(token.Colon) {
		value := p.parseBindingElement()
		id := p.node(ast.PatternProperty, start, key, value)
		if computed {
			p.b.AddFlags(id, ast.FlagComputed)
		}
		return id
	}
	if computed || p.b.Kind(key) != ast.Identifier {
		p.missingToken(token.Colon)
		return p.node(ast.PatternProperty, start, key, p.placeholder(ast.MissingBinding))
	}
	value := key
	if p.eat(token.Assign) {
		init := p.parseAssign()
		value = p.node(ast.AssignPattern, start, key, init)
	}
	id := p.node(ast.PatternProperty, start, ast.NoNode, value)
	p.b.AddFlags(id, ast.FlagShorthand)
	return id
}

// parseRestBinding parses '...target'. Object rest takes only an identifier.
func (p *Parser) parseRestBinding(object bool) ast.NodeID {
	start := p.next().Span.Start
	var arg ast.NodeID
	if object {
		arg = p.parseBindingIdent()
	} else {
		arg = p.parseBindingTarget()
	}
	if p.at(token.Assign) {
		tok := p.next()
		p.parseAssign()
		p.errorAt(diag.SynMultipleRestOrDefault, tok.Span, "a rest element cannot have a default value").Emit()
	}
	return p.node(ast.RestElement, start, arg, ast.NoNode)
}

// checkRestLast reports a rest element followed by more elements or by a
// trailing comma.
func (p *Parser) checkRestLast(elems []ast.NodeID, trailingComma bool) {
	for i, e := range elems {
		if p.b.Kind(e) != ast.RestElement {
			continue
		}
		if i < len(elems)-1 || trailingComma {
			p.errorAt(diag.SynRestNotLast, p.b.Span(e), "a rest element must be last").Emit()
		}
	}
}

// delimited parses comma-separated elements up to close, which it leaves
// for the caller. A missing comma between two elements is reported and
// assumed.
func (p *Parser) delimited(open token.Token, close token.Kind, starts func() bool, elem func() ast.NodeID) []ast.NodeID {
	out := make([]ast.NodeID, 0, 4)
	for !p.at(close) && !p.at(token.EOF) {
		before := p.tok.Span
		if e := elem(); e != ast.NoNode {
			out = append(out, e)
		}
		if p.at(close) {
			break
		}
		if p.eat(token.Comma) {
			continue
		}
		if p.tok.Span == before || !p.missingSeparator(starts) {
			break
		}
	}
	return out
}

// missingSeparator reports a missing ',' when the current token can start
// another element. After an unterminated literal that swallowed the rest
// of its line, a token on the next line ends the list instead.
func (p *Parser) missingSeparator(starts func() bool) bool {
	if p.prev.Flags&token.Unterminated != 0 && p.tok.NewlineBefore() {
		return false
	}
	if !starts() {
		return false
	}
	p.missingToken(token.Comma)
	return true
}

// parseParams parses a parenthesised parameter list.
func (p *Parser) parseParams() ast.NodeID {
	open := p.tok
	if !p.eat(token.LParen) {
		p.missingToken(token.LParen)
		return p.list(nil, p.prevEnd())
	}
	params := p.delimited(open, token.RParen, p.canStartParam, p.parseParam)
	for i, prm := range params {
		if p.b.Flags(prm)&ast.FlagRest != 0 && (i < len(params)-1 || p.prev.Kind == token.Comma) {
			p.errorAt(diag.SynRestNotLast, p.b.Span(prm), "a rest parameter must be last").Emit()
		}
	}
	list := p.list(params, open.Span.End)
	p.expectClose(token.RParen, open)
	return list
}

func (p *Parser) canStartParam() bool {
	return p.canStartBinding() || p.at(token.At) || p.at(token.KwThis)
}

func (p *Parser) parseParam() ast.NodeID {
	start := p.tok.Span.Start
	decorators := p.parseDecorators()
	var flags ast.Flags
	for p.atParamModifier() {
		tok := p.next()
		p.typeSyntax(tok.Span, "a parameter property modifier")
		flags |= modifierFlag(tok.Kind)
	}
	var binding ast.NodeID
	switch {
	case p.at(token.DotDotDot):
		p.next()
		flags |= ast.FlagRest
		binding = p.parseBindingTarget()
	case p.at(token.KwThis):
		tok := p.next()
		binding = p.leaf(ast.Identifier, tok)
		if !p.at(token.Colon) {
			p.typeSyntax(tok.Span, "a 'this' parameter")
		}
	default:
		binding = p.parseBindingTarget()
	}
	if p.at(token.Question) {
		tok := p.next()
		p.typeSyntax(tok.Span, "an optional parameter")
		flags |= ast.FlagOptional
	}
	typ, init := ast.NoNode, ast.NoNode
	if p.at(token.Colon) {
		typ = p.parseTypeAnnotation()
	}
	if p.at(token.Assign) {
		tok := p.next()
		init = p.parseAssign()
		if flags&ast.FlagRest != 0 {
			p.errorAt(diag.SynMultipleRestOrDefault, tok.Span, "a rest parameter cannot have a default value").Emit()
		}
	}
	id := p.node(ast.Param, start, p.optList(decorators, start), binding, typ, init)
	p.b.AddFlags(id, flags)
	return id
}

// atParamModifier reports whether the current token is an accessibility
// or readonly modifier followed by a parameter name.
func (p *Parser) atParamModifier() bool {
	switch p.tok.Kind {
	case token.KwPublic, token.KwPrivate, token.KwProtected, token.KwReadonly, token.KwOverride:
	default:
		return false
	}
	t := p.peek()
	return !t.NewlineBefore() && (t.IsIdentLike() || t.Kind == token.LBrace || t.Kind == token.LBracket || t.Kind == token.DotDotDot)
}

func modifierFlag(k token.Kind) ast.Flags {
	switch k {
	case token.KwPublic:
		return ast.FlagPublic
	case token.KwPrivate:
		return ast.FlagPrivate
	case token.KwProtected:
		return ast.FlagProtected
	case token.KwReadonly:
		return ast.FlagReadonly
	case token.KwOverride:
		return ast.FlagOverride
	case token.KwStatic:
		return ast.FlagStatic
	case token.KwAbstract:
		return ast.FlagAbstract
	case token.KwDeclare:
		return ast.FlagDeclare
	case token.KwAccessor:
		return ast.FlagAccessor
	case token.KwAsync:
		return ast.FlagAsync
	case token.KwExport:
		return ast.FlagExport
	case token.KwDefault:
		return ast.FlagDefault
	case token.KwConst:
		return ast.FlagConst
	case token.KwIn:
		return ast.FlagIn
	case token.KwOut:
		return ast.FlagOut
	}
	return 0
}

// parseFunctionDecl parses 'function' or 'async function' declarations.
// The name may be omitted under 'export default'.
func (p *Parser) parseFunctionDecl(start uint32, flags ast.Flags) ast.NodeID {
	return p.parseFunction(ast.FunctionDecl, start, flags)
}

func (p *Parser) parseFunctionExpr() ast.NodeID {
	return p.parseFunction(ast.FunctionExpr, p.tok.Span.Start, 0)
}

func (p *Parser) parseFunction(kind ast.Kind, start uint32, flags ast.Flags) ast.NodeID {
	if p.atContextual(token.KwAsync) {
		p.next()
		flags |= ast.FlagAsync
	}
	p.expect(token.KwFunction)
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	name := ast.NoNode
	if p.atIdent() {
		name = p.parseBindingIdent()
	} else if kind == ast.FunctionDecl && flags&ast.FlagDefault == 0 {
		p.unexpected(diag.SynExpectIdentifier, "a function name")
		name = p.placeholder(ast.MissingBinding)
	}
	typeParams := p.parseTypeParamsOpt()
	saved := p.enterFunction(flags&ast.FlagAsync != 0, flags&ast.FlagGenerator != 0)
	params := p.parseParams()
	ret := ast.NoNode
	if p.at(token.Colon) {
		ret = p.parseReturnType()
	}
	body := ast.NoNode
	switch {
	case p.at(token.LBrace):
		body = p.parseFunctionBody()
	case kind == ast.FunctionDecl && (p.cfg.TypeSyntax || p.ambient() || flags&ast.FlagDeclare != 0 || p.at(token.Semicolon) || p.tok.NewlineBefore()):
		if !p.ambient() && flags&ast.FlagDeclare == 0 {
			p.typeSyntax(p.spanFrom(start), "a function overload without a body")
		}
		p.semicolon()
	default:
		p.missingToken(token.LBrace)
		body = p.node(ast.BlockStmt, p.prevEnd(), p.list(nil, p.prevEnd()))
	}
	p.ctx = saved
	id := p.node(kind, start, name, typeParams, params, ret, body)
	p.b.AddFlags(id, flags)
	return id
}

// parseFunctionBody parses a braced body with its directive prologue.
func (p *Parser) parseFunctionBody() ast.NodeID {
	open := p.next()
	savedNest, savedCover := p.assignNest, len(p.coverInits)
	p.assignNest = 0
	body := p.parseStatementList(token.RBrace, true)
	p.assignNest = savedNest
	p.coverInits = p.coverInits[:savedCover]
	list := p.list(body, open.Span.End)
	p.expectClose(token.RBrace, open)
	return p.node(ast.BlockStmt, open.Span.Start, list)
}
