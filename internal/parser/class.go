package parser

import (
	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/dialect"
	"esfront/internal/token"
)

func (p *Parser) parseClassDecl(start uint32, decorators []ast.NodeID, flags ast.Flags) ast.NodeID {
	return p.parseClass(ast.ClassDecl, start, decorators, flags)
}

// parseClass parses a class declaration or expression from the 'class'
// keyword. start is the offset of the first decorator or modifier.
func (p *Parser) parseClass(kind ast.Kind, start uint32, decorators []ast.NodeID, flags ast.Flags) ast.NodeID {
	p.expect(token.KwClass)
	savedStrict, savedClass := p.ctx.strict, p.ctx.inClass
	p.ctx.strict = true

	name := ast.NoNode
	if p.atIdent() && !p.atContextual(token.KwImplements) {
		name = p.parseBindingIdent()
	} else if kind == ast.ClassDecl && flags&ast.FlagDefault == 0 {
		p.unexpected(diag.SynExpectIdentifier, "a class name")
		name = p.placeholder(ast.MissingBinding)
	}
	typeParams := p.parseTypeParamsOpt()

	super, superArgs := ast.NoNode, ast.NoNode
	if p.eat(token.KwExtends) {
		super = p.parseLHS()
		if p.at(token.Lt) {
			superArgs = p.parseTypeArgs()
		}
	}
	var implements []ast.NodeID
	if p.atContextual(token.KwImplements) {
		tok := p.next()
		implements = p.parseHeritage()
		p.typeSyntax(p.spanFrom(tok.Span.Start), "an 'implements' clause")
	}

	p.ctx.inClass = true
	body := p.parseClassBody(flags&ast.FlagAbstract != 0)
	p.ctx.strict, p.ctx.inClass = savedStrict, savedClass

	id := p.node(kind, start, p.optList(decorators, start), name, typeParams, super, superArgs,
		p.optList(implements, p.prevEnd()), body)
	p.b.AddFlags(id, flags)
	return id
}

// parseHeritage parses the comma-separated type references after
// 'implements' or an interface's 'extends'.
func (p *Parser) parseHeritage() []ast.NodeID {
	out := make([]ast.NodeID, 0, 2)
	for {
		start := p.tok.Span.Start
		expr := p.parseEntityName()
		targs := ast.NoNode
		if p.at(token.Lt) {
			targs = p.parseTypeArgs()
		}
		out = append(out, p.node(ast.ExprWithTypeArgs, start, expr, targs))
		if !p.eat(token.Comma) {
			return out
		}
	}
}

func (p *Parser) parseClassBody(abstract bool) ast.NodeID {
	start := p.tok.Span.Start
	open := p.tok
	if !p.eat(token.LBrace) {
		p.missingToken(token.LBrace)
		return p.node(ast.ClassBody, start, p.list(nil, p.prevEnd()))
	}
	members := make([]ast.NodeID, 0, 8)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		before := p.tok
		members = append(members, p.parseClassMember(abstract))
		if p.tok.Span == before.Span && p.tok.Kind == before.Kind {
			mstart := p.tok.Span.Start
			p.next()
			p.skipTo(syncClassMember)
			members = append(members, p.b.New(ast.Skipped, p.spanFrom(mstart)))
		}
	}
	list := p.list(members, open.Span.End)
	p.expectClose(token.RBrace, open)
	return p.node(ast.ClassBody, start, list)
}

// atClassModifier reports whether the current word modifies the member
// after it rather than naming the member.
func (p *Parser) atClassModifier() bool {
	if p.tok.Flags&token.Escaped != 0 {
		return false
	}
	switch p.tok.Kind {
	case token.KwStatic, token.KwPublic, token.KwPrivate, token.KwProtected, token.KwReadonly,
		token.KwAbstract, token.KwOverride, token.KwDeclare, token.KwAccessor:
	case token.KwAsync:
		if p.peek().NewlineBefore() {
			return false
		}
	default:
		return false
	}
	return p.atMemberModifier()
}

func (p *Parser) parseClassMember(abstractClass bool) ast.NodeID {
	start := p.tok.Span.Start
	decorators := p.parseDecorators()

	if p.atContextual(token.KwStatic) && p.peek().Kind == token.LBrace {
		p.next()
		open := p.next()
		saved := p.enterFunction(false, false)
		body := p.parseStatementList(token.RBrace, false)
		p.ctx = saved
		list := p.list(body, open.Span.End)
		p.expectClose(token.RBrace, open)
		return p.node(ast.StaticBlock, start, list)
	}

	var flags ast.Flags
	for p.atClassModifier() {
		tok := p.next()
		f := modifierFlag(tok.Kind)
		switch tok.Kind {
		case token.KwStatic, token.KwAsync, token.KwAccessor:
		case token.KwAbstract:
			p.typeSyntax(tok.Span, "the 'abstract' modifier")
			if !abstractClass {
				p.errorAt(diag.SynAbstractNotAllowed, tok.Span, "abstract members are only allowed in an abstract class").Emit()
			}
		default:
			p.typeSyntax(tok.Span, "the '"+tok.Text+"' modifier")
		}
		if flags&f != 0 {
			p.errorAt(diag.SynModifierNotAllowed, tok.Span, "'"+tok.Text+"' modifier already seen").Emit()
		}
		flags |= f
	}

	if p.at(token.LBracket) {
		if a, b := p.peek2(); a.IsIdentLike() && b.Kind == token.Colon {
			id := p.parseIndexSignature(start, flags)
			if decorators != nil {
				p.errorAt(diag.SynDecoratorPosition, p.b.Span(id), "decorators are not allowed on index signatures").Emit()
			}
			return id
		}
	}

	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	kind := ast.MethodPlain
	if flags&(ast.FlagGenerator|ast.FlagAsync) == 0 && (p.atContextual(token.KwGet) || p.atContextual(token.KwSet)) && p.atMemberModifier() {
		if p.next().Kind == token.KwGet {
			kind = ast.MethodGet
		} else {
			kind = ast.MethodSet
		}
	}
	key, computed := p.parsePropertyKey(true)
	if !computed && kind == ast.MethodPlain && flags&ast.FlagStatic == 0 && p.isConstructorKey(key) {
		kind = ast.MethodConstructor
	}
	if p.at(token.Question) {
		tok := p.next()
		p.typeSyntax(tok.Span, "an optional member")
		flags |= ast.FlagOptional
	} else if p.at(token.Bang) && !p.tok.NewlineBefore() {
		tok := p.next()
		p.typeSyntax(tok.Span, "a definite assignment assertion")
		flags |= ast.FlagDefinite
	}
	if computed {
		flags |= ast.FlagComputed
	}

	if p.at(token.LParen) || p.at(token.Lt) || kind != ast.MethodPlain || flags&ast.FlagGenerator != 0 {
		return p.parseMethodDef(start, decorators, key, kind, flags)
	}

	typ, value := ast.NoNode, ast.NoNode
	if p.at(token.Colon) {
		typ = p.parseTypeAnnotation()
	}
	if p.eat(token.Assign) {
		saved := p.ctx
		p.ctx.inFunction = true
		p.ctx.async, p.ctx.generator = false, false
		value = p.parseAssign()
		p.ctx = saved
	}
	p.semicolon()
	id := p.node(ast.PropertyDef, start, p.optList(decorators, start), key, typ, value)
	p.b.AddFlags(id, flags)
	return id
}

func (p *Parser) isConstructorKey(key ast.NodeID) bool {
	switch p.b.Kind(key) {
	case ast.Identifier:
		return p.b.Text(key) == "constructor"
	case ast.StringLit:
		t := p.b.Text(key)
		return t == `"constructor"` || t == `'constructor'`
	}
	return false
}

func (p *Parser) parseMethodDef(start uint32, decorators []ast.NodeID, key ast.NodeID, kind ast.MethodKind, flags ast.Flags) ast.NodeID {
	typeParams := p.parseTypeParamsOpt()
	saved := p.enterFunction(flags&ast.FlagAsync != 0, flags&ast.FlagGenerator != 0)
	params := p.parseParams()
	ret := ast.NoNode
	if p.at(token.Colon) {
		ret = p.parseReturnType()
	}
	body := ast.NoNode
	if p.at(token.LBrace) {
		body = p.parseFunctionBody()
	} else {
		if flags&(ast.FlagAbstract|ast.FlagDeclare) == 0 && !p.ambient() {
			p.typeSyntax(p.spanFrom(start), "a method overload without a body")
		}
		p.semicolon()
	}
	p.ctx = saved
	id := p.node(ast.MethodDef, start, p.optList(decorators, start), key, typeParams, params, ret, body)
	p.b.SetAux(id, uint16(kind))
	p.b.AddFlags(id, flags)
	if kind == ast.MethodConstructor && flags&ast.FlagGenerator != 0 {
		p.errorAt(diag.SynModifierNotAllowed, p.b.Span(key), "a constructor cannot be a generator").Emit()
	}
	return id
}

// parseDecorators parses '@expr' decorators; nil when there are none.
func (p *Parser) parseDecorators() []ast.NodeID {
	if !p.at(token.At) {
		return nil
	}
	var out []ast.NodeID
	for p.at(token.At) {
		start := p.next().Span.Start
		var expr ast.NodeID
		if p.at(token.LParen) {
			expr = p.parseParenOrArrow()
		} else {
			estart := p.tok.Span.Start
			if p.atIdent() {
				expr = p.leaf(ast.Identifier, p.next())
			} else {
				p.unexpected(diag.SynExpectIdentifier, "a decorator name")
				expr = p.missingExpr()
			}
			for p.at(token.Dot) {
				p.next()
				prop := p.parseMemberName()
				expr = p.node(ast.MemberExpr, estart, expr, prop)
			}
			if p.at(token.LParen) {
				args := p.parseArguments()
				expr = p.node(ast.CallExpr, estart, expr, ast.NoNode, args)
			}
		}
		id := p.node(ast.Decorator, start, expr)
		p.feature(dialect.Decorators, p.b.Span(id), "a decorator")
		out = append(out, id)
	}
	return out
}

// parseDecoratedStatement handles decorators in statement position: before
// a class, an exported class or an abstract class.
func (p *Parser) parseDecoratedStatement() ast.NodeID {
	start := p.tok.Span.Start
	decorators := p.parseDecorators()
	switch {
	case p.at(token.KwClass):
		return p.parseClassDecl(start, decorators, 0)
	case p.at(token.KwExport):
		return p.parseExport(start, decorators)
	case p.atContextual(token.KwAbstract) && p.peek().Kind == token.KwClass:
		tok := p.next()
		p.typeSyntax(tok.Span, "an abstract class")
		return p.parseClassDecl(start, decorators, ast.FlagAbstract)
	}
	p.fail(diag.SynDecoratorPosition, p.spanFrom(start), "decorators must precede a class declaration")
	return p.parseStatement()
}
