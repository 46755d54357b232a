package parser

import (
	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/token"
)

// tryTSDeclaration parses a declaration introduced by a contextual word
// such as 'interface' or 'declare'. It returns NoNode, consuming nothing,
// when the word is an ordinary identifier here.
func (p *Parser) tryTSDeclaration(start uint32, flags ast.Flags) ast.NodeID {
	if p.tok.Flags&token.Escaped != 0 {
		return ast.NoNode
	}
	next := p.peek()
	if next.NewlineBefore() || next.Kind == token.EOF {
		return ast.NoNode
	}
	switch p.tok.Kind {
	case token.KwInterface:
		if next.IsIdentLike() {
			return p.parseInterface(start, flags)
		}
	case token.KwType:
		if next.IsIdentLike() {
			return p.parseTypeAlias(start, flags)
		}
	case token.KwNamespace:
		if next.IsIdentLike() {
			return p.parseModuleDecl(start, flags)
		}
	case token.KwModule:
		if next.IsIdentLike() || next.Kind == token.StringLit {
			return p.parseModuleDecl(start, flags)
		}
	case token.KwGlobal:
		if next.Kind == token.LBrace {
			return p.parseModuleDecl(start, flags)
		}
	case token.KwAbstract:
		if next.Kind == token.KwClass {
			tok := p.next()
			p.typeSyntax(tok.Span, "an abstract class")
			return p.parseClassDecl(start, nil, flags|ast.FlagAbstract)
		}
	case token.KwEnum:
		return p.parseEnum(start, flags)
	case token.KwDeclare:
		if declarable(next.Kind) {
			return p.parseDeclare(start, flags)
		}
	}
	return ast.NoNode
}

func declarable(k token.Kind) bool {
	switch k {
	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwClass, token.KwEnum,
		token.KwInterface, token.KwType, token.KwNamespace, token.KwModule, token.KwGlobal,
		token.KwAbstract, token.KwAsync, token.KwUsing:
		return true
	}
	return false
}

// parseDeclare parses 'declare' and the ambient declaration after it.
func (p *Parser) parseDeclare(start uint32, flags ast.Flags) ast.NodeID {
	tok := p.next()
	p.typeSyntax(tok.Span, "an ambient declaration")
	flags |= ast.FlagDeclare
	saved := p.ctx.ambient
	p.ctx.ambient = true
	defer func() { p.ctx.ambient = saved }()

	switch p.tok.Kind {
	case token.KwVar, token.KwLet, token.KwUsing:
		return p.parseVarStatement(start, flags)
	case token.KwConst:
		if p.peekIs(token.KwEnum) {
			return p.parseEnum(start, flags)
		}
		return p.parseVarStatement(start, flags)
	case token.KwFunction, token.KwAsync:
		return p.parseFunctionDecl(start, flags)
	case token.KwClass:
		return p.parseClassDecl(start, nil, flags)
	}
	if decl := p.tryTSDeclaration(start, flags); decl != ast.NoNode {
		return decl
	}
	p.unexpected(diag.SynExpectStatement, "a declaration after 'declare'")
	return p.recoverStatement()
}

// parseEnum parses 'enum' and 'const enum' declarations.
func (p *Parser) parseEnum(start uint32, flags ast.Flags) ast.NodeID {
	if p.eat(token.KwConst) {
		flags |= ast.FlagConst
	}
	p.expect(token.KwEnum)
	name := p.parseBindingIdent()
	open := p.tok
	var members []ast.NodeID
	if p.eat(token.LBrace) {
		members = p.delimited(open, token.RBrace, p.canStartPropertyKey, p.parseEnumMember)
	} else {
		p.missingToken(token.LBrace)
	}
	list := p.list(members, p.prevEnd())
	if open.Kind == token.LBrace {
		p.expectClose(token.RBrace, open)
	}
	id := p.node(ast.EnumDecl, start, name, list)
	p.b.AddFlags(id, flags)
	p.typeSyntax(p.b.Span(id), "an enum declaration")
	return id
}

func (p *Parser) parseEnumMember() ast.NodeID {
	start := p.tok.Span.Start
	var key ast.NodeID
	switch {
	case p.at(token.StringLit):
		key = p.parseLiteral()
	case p.at(token.NumericLit):
		key = p.parseLiteral()
		p.errorAt(diag.SynEnumMember, p.b.Span(key), "an enum member cannot have a numeric name").Emit()
	case p.at(token.LBracket):
		key, _ = p.parsePropertyKey(false)
		p.errorAt(diag.SynEnumMember, p.spanFrom(start), "an enum member cannot have a computed name").Emit()
	case p.tok.Kind.IsIdentifierName():
		key = p.leaf(ast.Identifier, p.next())
	default:
		p.unexpected(diag.SynExpectIdentifier, "an enum member name")
		key = p.missingExpr()
	}
	init := ast.NoNode
	if p.eat(token.Assign) {
		init = p.parseAssign()
	}
	return p.node(ast.EnumMember, start, key, init)
}

func (p *Parser) parseTypeAlias(start uint32, flags ast.Flags) ast.NodeID {
	p.next()
	name := p.parseBindingIdent()
	p.typeDepth++
	typeParams := p.parseTypeParamsOpt()
	p.expect(token.Assign)
	typ := p.parseType()
	p.typeDepth--
	p.semicolon()
	id := p.node(ast.TypeAliasDecl, start, name, typeParams, typ)
	p.b.AddFlags(id, flags)
	p.typeSyntax(p.b.Span(id), "a type alias")
	return id
}

func (p *Parser) parseInterface(start uint32, flags ast.Flags) ast.NodeID {
	p.next()
	name := p.parseBindingIdent()
	p.typeDepth++
	typeParams := p.parseTypeParamsOpt()
	var extends []ast.NodeID
	if p.eat(token.KwExtends) {
		extends = p.parseHeritage()
	}
	body := p.parseTypeMembers(ast.InterfaceBody)
	p.typeDepth--
	id := p.node(ast.InterfaceDecl, start, name, typeParams, p.optList(extends, p.prevEnd()), body)
	p.b.AddFlags(id, flags)
	p.typeSyntax(p.b.Span(id), "an interface declaration")
	return id
}

// parseModuleDecl parses 'namespace A.B {}', 'module "m" {}' and
// 'global {}'. A body is optional in ambient code.
func (p *Parser) parseModuleDecl(start uint32, flags ast.Flags) ast.NodeID {
	kw := p.next()
	var name ast.NodeID
	switch {
	case kw.Kind == token.KwGlobal:
		flags |= ast.FlagGlobal
		name = p.leaf(ast.Identifier, kw)
	case kw.Kind == token.KwModule && p.at(token.StringLit):
		name = p.parseLiteral()
	default:
		if kw.Kind == token.KwNamespace {
			flags |= ast.FlagNamespace
		}
		nstart := p.tok.Span.Start
		name = p.parseBindingIdent()
		for p.eat(token.Dot) {
			right := p.parseBindingIdent()
			name = p.node(ast.QualifiedName, nstart, name, right)
		}
	}

	body := ast.NoNode
	if p.at(token.LBrace) {
		open := p.next()
		saved := p.ctx
		p.ctx.inNamespace = true
		p.ctx.topLevel = false
		p.ctx.labels = nil
		stmts := p.parseStatementList(token.RBrace, false)
		p.ctx = saved
		list := p.list(stmts, open.Span.End)
		p.expectClose(token.RBrace, open)
		body = p.node(ast.ModuleBlock, open.Span.Start, list)
	} else {
		if !p.ambient() && p.b.Kind(name) != ast.StringLit {
			p.missingToken(token.LBrace)
		}
		p.semicolon()
	}
	id := p.node(ast.ModuleDecl, start, name, body)
	p.b.AddFlags(id, flags)
	p.typeSyntax(p.b.Span(id), "a namespace declaration")
	return id
}

// parseIndexSignature parses '[key: K]: T' in classes and type members.
func (p *Parser) parseIndexSignature(start uint32, flags ast.Flags) ast.NodeID {
	open := p.next()
	p.typeDepth++
	params := p.delimited(open, token.RBracket, p.canStartParam, p.parseParam)
	list := p.list(params, open.Span.End)
	p.expectClose(token.RBracket, open)
	typ := ast.NoNode
	if p.at(token.Colon) {
		typ = p.parseTypeAnnotation()
	}
	p.typeDepth--
	p.typeMemberEnd()
	id := p.node(ast.IndexSignature, start, list, typ)
	p.b.AddFlags(id, flags)
	p.typeSyntax(p.b.Span(id), "an index signature")
	return id
}

// typeMemberEnd consumes the separator after a class or type member.
func (p *Parser) typeMemberEnd() {
	if p.eat(token.Semicolon) || p.eat(token.Comma) {
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.tok.NewlineBefore() {
		return
	}
	p.corrupt = true
	p.errorAt(diag.SynExpectSemicolon, p.errSpan(), "expected ';' or ',' after a member, found "+describe(p.tok)).
		WithFix("insert ';'", p.insertAt(p.prevEnd(), ";")).
		Emit()
	p.skipTo(syncTypeMember)
	if !p.eat(token.Semicolon) {
		p.eat(token.Comma)
	}
}
