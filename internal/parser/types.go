package parser

import (
	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/lexer"
	"esfront/internal/token"
)

// parseTypeAnnotation parses ': Type'.
func (p *Parser) parseTypeAnnotation() ast.NodeID {
	colon := p.tok
	p.expect(token.Colon)
	typ := p.parseType()
	p.typeSyntax(colon.Span.Cover(p.b.Span(typ)), "a type annotation")
	return typ
}

// parseReturnType parses ': Type' after a parameter list, where type
// predicates are also allowed.
func (p *Parser) parseReturnType() ast.NodeID {
	colon := p.tok
	p.expect(token.Colon)
	p.typeDepth++
	typ := p.parseTypeOrPredicate()
	p.typeDepth--
	p.typeSyntax(colon.Span.Cover(p.b.Span(typ)), "a return type annotation")
	return typ
}

// parseTypeOrPredicate parses a type, 'x is T', 'asserts x' or
// 'asserts x is T'.
func (p *Parser) parseTypeOrPredicate() ast.NodeID {
	start := p.tok.Span.Start
	if p.atContextual(token.KwAsserts) {
		if t := p.peek(); (t.IsIdentLike() || t.Kind == token.KwThis) && !t.NewlineBefore() {
			p.next()
			param := p.predicateParam()
			typ := ast.NoNode
			if p.atContextual(token.KwIs) && !p.tok.NewlineBefore() {
				p.next()
				typ = p.parseType()
			}
			id := p.node(ast.TypePredicate, start, param, typ)
			p.b.AddFlags(id, ast.FlagAsserts)
			return id
		}
	}
	if p.atIdent() || p.at(token.KwThis) {
		if t := p.peek(); t.Kind == token.KwIs && !t.NewlineBefore() {
			param := p.predicateParam()
			p.next()
			typ := p.parseType()
			return p.node(ast.TypePredicate, start, param, typ)
		}
	}
	return p.parseType()
}

func (p *Parser) predicateParam() ast.NodeID {
	if p.at(token.KwThis) {
		return p.leaf(ast.ThisType, p.next())
	}
	return p.leaf(ast.Identifier, p.next())
}

// parseType parses a full type including function and conditional types.
func (p *Parser) parseType() ast.NodeID {
	if !p.enter() {
		return p.bailOut(ast.MissingType)
	}
	defer p.leave()
	p.typeDepth++
	defer func() { p.typeDepth-- }()

	if typ, ok := p.tryFunctionType(); ok {
		return typ
	}
	start := p.tok.Span.Start
	check := p.parseUnionType()
	if !p.at(token.KwExtends) || p.tok.NewlineBefore() {
		return check
	}
	p.next()
	ext := p.parseTypeNoConditional()
	p.expect(token.Question)
	trueType := p.parseType()
	p.expect(token.Colon)
	falseType := p.parseType()
	return p.node(ast.ConditionalType, start, check, ext, trueType, falseType)
}

// parseTypeNoConditional parses the 'extends' operand of a conditional
// type, which cannot itself be conditional without parentheses.
func (p *Parser) parseTypeNoConditional() ast.NodeID {
	if typ, ok := p.tryFunctionType(); ok {
		return typ
	}
	return p.parseUnionType()
}

// tryFunctionType parses '(a: A) => R', '<T>(a: T) => R' and constructor
// types; it reports false without consuming when none starts here.
func (p *Parser) tryFunctionType() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	switch {
	case p.at(token.Lt):
		return p.parseFunctionType(ast.FunctionType, start), true
	case p.at(token.LParen) && p.parenThen(1).Kind == token.FatArrow:
		return p.parseFunctionType(ast.FunctionType, start), true
	case p.at(token.KwNew):
		p.next()
		return p.parseFunctionType(ast.ConstructorType, start), true
	case p.atContextual(token.KwAbstract) && p.peekIs(token.KwNew):
		p.next()
		p.next()
		id := p.parseFunctionType(ast.ConstructorType, start)
		p.b.AddFlags(id, ast.FlagAbstract)
		return id, true
	}
	return ast.NoNode, false
}

func (p *Parser) parseFunctionType(kind ast.Kind, start uint32) ast.NodeID {
	typeParams := p.parseTypeParamsOpt()
	params := p.parseParams()
	p.expect(token.FatArrow)
	ret := p.parseTypeOrPredicate()
	return p.node(kind, start, typeParams, params, ret)
}

func (p *Parser) parseUnionType() ast.NodeID {
	return p.parseTypeList(ast.UnionType, token.Pipe, p.parseIntersectionType)
}

func (p *Parser) parseIntersectionType() ast.NodeID {
	return p.parseTypeList(ast.IntersectionType, token.Amp, p.parseTypeOperator)
}

// parseTypeList parses elem (sep elem)* with an optional leading sep.
func (p *Parser) parseTypeList(kind ast.Kind, sep token.Kind, elem func() ast.NodeID) ast.NodeID {
	start := p.tok.Span.Start
	leading := p.eat(sep)
	first := elem()
	if !p.at(sep) && !leading {
		return first
	}
	types := []ast.NodeID{first}
	for p.eat(sep) {
		types = append(types, elem())
	}
	return p.node(kind, start, p.list(types, start))
}

func (p *Parser) parseTypeOperator() ast.NodeID {
	start := p.tok.Span.Start
	switch {
	case p.atContextual(token.KwKeyof), p.atContextual(token.KwUnique), p.atContextual(token.KwReadonly):
		if !p.canStartTypeAt(p.peek()) {
			break
		}
		op := p.next()
		inner := p.parseTypeOperator()
		id := p.node(ast.TypeOperator, start, inner)
		p.b.SetOp(id, op.Kind)
		return id
	case p.atContextual(token.KwInfer) && p.peek().IsIdentLike():
		p.next()
		return p.node(ast.InferType, start, p.parseInferParam())
	}
	return p.parsePostfixType()
}

// parseInferParam parses the name after 'infer' and an 'extends'
// constraint, unless that 'extends' starts a conditional type.
func (p *Parser) parseInferParam() ast.NodeID {
	start := p.tok.Span.Start
	name := p.parseBindingIdent()
	constraint := ast.NoNode
	if p.at(token.KwExtends) {
		p.speculate(func() bool {
			p.next()
			constraint = p.parseTypeNoConditional()
			return !p.at(token.Question)
		})
	}
	return p.node(ast.TypeParam, start, name, constraint, ast.NoNode)
}

func (p *Parser) parsePostfixType() ast.NodeID {
	start := p.tok.Span.Start
	typ := p.parsePrimaryType()
	for p.at(token.LBracket) && !p.tok.NewlineBefore() {
		open := p.next()
		if p.eat(token.RBracket) {
			typ = p.node(ast.ArrayType, start, typ)
			continue
		}
		index := p.parseType()
		p.expectClose(token.RBracket, open)
		typ = p.node(ast.IndexedAccessType, start, typ, index)
	}
	return typ
}

func keywordType(k token.Kind) bool {
	switch k {
	case token.KwAny, token.KwUnknown, token.KwNumber, token.KwBigint, token.KwBoolean, token.KwString,
		token.KwSymbol, token.KwObject, token.KwNever, token.KwUndefined, token.KwVoid, token.KwNull:
		return true
	}
	return false
}

func (p *Parser) parsePrimaryType() ast.NodeID {
	start := p.tok.Span.Start
	switch {
	case keywordType(p.tok.Kind) && p.tok.Flags&token.Escaped == 0 && !p.peekIs(token.Dot):
		tok := p.next()
		id := p.leaf(ast.KeywordType, tok)
		p.b.SetOp(id, tok.Kind)
		return id
	case p.at(token.KwThis):
		return p.leaf(ast.ThisType, p.next())
	case p.at(token.StringLit), p.at(token.NumericLit), p.at(token.KwTrue), p.at(token.KwFalse):
		return p.node(ast.LiteralType, start, p.parseLiteral())
	case p.at(token.NoSubstTemplate):
		return p.node(ast.LiteralType, start, p.parseTemplate(false))
	case p.at(token.TemplateHead):
		return p.parseTemplateParts(ast.TemplateLiteralType, false, p.parseType)
	case p.at(token.Minus) && p.peekIs(token.NumericLit):
		op := p.next()
		num := p.parseLiteral()
		neg := p.node(ast.UnaryExpr, start, num)
		p.b.SetOp(neg, op.Kind)
		return p.node(ast.LiteralType, start, neg)
	case p.at(token.KwTypeof):
		return p.parseTypeQuery()
	case p.at(token.KwImport):
		return p.parseImportType()
	case p.at(token.LBrace):
		if p.atMappedType() {
			return p.parseMappedType()
		}
		return p.parseTypeMembers(ast.TypeLiteral)
	case p.at(token.LBracket):
		return p.parseTupleType()
	case p.at(token.LParen):
		open := p.next()
		inner := p.parseType()
		p.expectClose(token.RParen, open)
		return p.node(ast.ParenType, start, inner)
	case p.atIdent():
		name := p.parseEntityName()
		args := ast.NoNode
		if p.at(token.Lt) && !p.tok.NewlineBefore() {
			args = p.parseTypeArgs()
		}
		return p.node(ast.TypeRef, start, name, args)
	}
	p.unexpected(diag.SynExpectType, "a type")
	return p.placeholder(ast.MissingType)
}

// parseEntityName parses 'A' or 'A.B.C' as an Identifier or nested
// QualifiedName.
func (p *Parser) parseEntityName() ast.NodeID {
	start := p.tok.Span.Start
	var name ast.NodeID
	switch {
	case p.atIdent(), p.at(token.KwThis):
		name = p.leaf(ast.Identifier, p.next())
	default:
		p.unexpected(diag.SynExpectIdentifier, "a type name")
		return p.missingExpr()
	}
	for p.at(token.Dot) {
		p.next()
		var right ast.NodeID
		if p.tok.Kind.IsIdentifierName() || p.at(token.PrivateName) {
			right = p.leaf(ast.Identifier, p.next())
		} else {
			p.unexpected(diag.SynExpectIdentifier, "a name after '.'")
			right = p.missingExpr()
		}
		name = p.node(ast.QualifiedName, start, name, right)
	}
	return name
}

func (p *Parser) parseTypeQuery() ast.NodeID {
	start := p.next().Span.Start
	var expr ast.NodeID
	if p.at(token.KwImport) {
		expr = p.parseImportType()
	} else {
		expr = p.parseEntityName()
	}
	args := ast.NoNode
	if p.at(token.Lt) && !p.tok.NewlineBefore() {
		args = p.parseTypeArgs()
	}
	return p.node(ast.TypeQuery, start, expr, args)
}

// parseImportType parses 'import("m").A.B<T>'.
func (p *Parser) parseImportType() ast.NodeID {
	start := p.next().Span.Start
	open := p.tok
	var arg ast.NodeID
	if p.eat(token.LParen) {
		astart := p.tok.Span.Start
		if p.at(token.StringLit) {
			arg = p.node(ast.LiteralType, astart, p.parseLiteral())
		} else {
			arg = p.parseType()
		}
		p.expectClose(token.RParen, open)
	} else {
		p.missingToken(token.LParen)
		arg = p.placeholder(ast.MissingType)
	}
	qualifier := ast.NoNode
	if p.eat(token.Dot) {
		qualifier = p.parseEntityName()
	}
	args := ast.NoNode
	if p.at(token.Lt) && !p.tok.NewlineBefore() {
		args = p.parseTypeArgs()
	}
	return p.node(ast.ImportType, start, arg, qualifier, args)
}

func (p *Parser) parseTupleType() ast.NodeID {
	start := p.tok.Span.Start
	open := p.next()
	elems := p.delimited(open, token.RBracket, p.canStartType, p.parseTupleElement)
	list := p.list(elems, open.Span.End)
	p.expectClose(token.RBracket, open)
	return p.node(ast.TupleType, start, list)
}

// parseTupleElement parses 'T', 'T?', '...T' and the labelled forms
// 'name: T', 'name?: T' and '...name: T'.
func (p *Parser) parseTupleElement() ast.NodeID {
	start := p.tok.Span.Start
	rest := p.eat(token.DotDotDot)
	var elem ast.NodeID
	if a, b := p.peek2(); p.tok.Kind.IsIdentifierName() && (a.Kind == token.Colon || a.Kind == token.Question && b.Kind == token.Colon) {
		label := p.leaf(ast.Identifier, p.next())
		optional := p.eat(token.Question)
		p.expect(token.Colon)
		typ := p.parseType()
		elem = p.node(ast.NamedTupleMember, start, label, typ)
		if optional {
			p.b.AddFlags(elem, ast.FlagOptional)
		}
		if rest {
			p.b.AddFlags(elem, ast.FlagRest)
		}
		return elem
	}
	elem = p.parseType()
	if rest {
		return p.node(ast.RestType, start, elem)
	}
	if p.at(token.Question) {
		p.next()
		return p.node(ast.OptionalType, start, elem)
	}
	return elem
}

// atMappedType reports whether '{' opens '{ [K in T]: U }' with optional
// readonly modifiers.
func (p *Parser) atMappedType() bool {
	// '-readonly [K in' is the longest prefix: five tokens.
	var toks []token.Token
	p.lookahead(func(t token.Token) bool {
		toks = append(toks, t)
		return len(toks) < 5
	})
	i := 0
	if i < len(toks) && (toks[i].Kind == token.Plus || toks[i].Kind == token.Minus) {
		i++
		if i >= len(toks) || toks[i].Kind != token.KwReadonly {
			return false
		}
	}
	if i < len(toks) && toks[i].Kind == token.KwReadonly {
		i++
	}
	return i+2 < len(toks) && toks[i].Kind == token.LBracket && toks[i+1].IsIdentLike() && toks[i+2].Kind == token.KwIn
}

func (p *Parser) parseMappedType() ast.NodeID {
	start := p.tok.Span.Start
	open := p.next()
	var mod ast.MappedModifier
	var flags ast.Flags
	switch {
	case p.eat(token.Plus):
		mod |= ast.MappedReadonlyPlus
	case p.eat(token.Minus):
		mod |= ast.MappedReadonlyMinus
	}
	if p.eat(token.KwReadonly) {
		flags |= ast.FlagReadonly
	}
	bracket := p.tok
	p.expect(token.LBracket)
	pstart := p.tok.Span.Start
	name := p.parseBindingIdent()
	p.expect(token.KwIn)
	constraint := p.parseType()
	param := p.node(ast.TypeParam, pstart, name, constraint, ast.NoNode)
	nameType := ast.NoNode
	if p.atContextual(token.KwAs) {
		p.next()
		nameType = p.parseType()
	}
	p.expectClose(token.RBracket, bracket)
	switch {
	case p.eat(token.Plus):
		mod |= ast.MappedOptionalPlus
		p.expect(token.Question)
		flags |= ast.FlagOptional
	case p.eat(token.Minus):
		mod |= ast.MappedOptionalMinus
		p.expect(token.Question)
	case p.eat(token.Question):
		flags |= ast.FlagOptional
	}
	typ := ast.NoNode
	if p.eat(token.Colon) {
		typ = p.parseType()
	}
	if !p.eat(token.Semicolon) {
		p.eat(token.Comma)
	}
	p.expectClose(token.RBrace, open)
	id := p.node(ast.MappedType, start, param, nameType, typ)
	p.b.SetAux(id, uint16(mod))
	p.b.AddFlags(id, flags)
	return id
}

// parseTypeMembers parses '{ members }' of a type literal or interface.
func (p *Parser) parseTypeMembers(kind ast.Kind) ast.NodeID {
	start := p.tok.Span.Start
	open := p.tok
	if !p.eat(token.LBrace) {
		p.missingToken(token.LBrace)
		return p.node(kind, start, p.list(nil, p.prevEnd()))
	}
	members := make([]ast.NodeID, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.tok
		members = append(members, p.parseTypeMember())
		if p.tok.Span == before.Span && p.tok.Kind == before.Kind {
			p.next()
			p.skipTo(syncTypeMember)
			if !p.eat(token.Semicolon) {
				p.eat(token.Comma)
			}
		}
	}
	list := p.list(members, open.Span.End)
	p.expectClose(token.RBrace, open)
	return p.node(kind, start, list)
}

func (p *Parser) parseTypeMember() ast.NodeID {
	start := p.tok.Span.Start
	switch {
	case p.at(token.LParen), p.at(token.Lt):
		id := p.parseSignature(ast.CallSignature, start)
		p.typeMemberEnd()
		return id
	case p.at(token.KwNew) && (p.peekIs(token.LParen) || p.peekIs(token.Lt)):
		p.next()
		id := p.parseSignature(ast.ConstructSignature, start)
		p.typeMemberEnd()
		return id
	}

	var flags ast.Flags
	if p.atContextual(token.KwReadonly) && p.atMemberModifier() {
		p.next()
		flags |= ast.FlagReadonly
	}
	if p.at(token.LBracket) {
		if a, b := p.peek2(); a.IsIdentLike() && b.Kind == token.Colon {
			return p.parseIndexSignature(start, flags)
		}
	}
	kind := ast.MethodPlain
	if (p.atContextual(token.KwGet) || p.atContextual(token.KwSet)) && p.atMemberModifier() {
		if p.next().Kind == token.KwGet {
			kind = ast.MethodGet
		} else {
			kind = ast.MethodSet
		}
	}
	key, computed := p.parsePropertyKey(false)
	if computed {
		flags |= ast.FlagComputed
	}
	if p.eat(token.Question) {
		flags |= ast.FlagOptional
	}
	var id ast.NodeID
	if p.at(token.LParen) || p.at(token.Lt) || kind != ast.MethodPlain {
		typeParams := p.parseTypeParamsOpt()
		params := p.parseParams()
		ret := ast.NoNode
		if p.at(token.Colon) {
			ret = p.parseReturnType()
		}
		id = p.node(ast.MethodSignature, start, key, typeParams, params, ret)
		p.b.SetAux(id, uint16(kind))
	} else {
		typ := ast.NoNode
		if p.at(token.Colon) {
			typ = p.parseTypeAnnotation()
		}
		id = p.node(ast.PropertySignature, start, key, typ)
	}
	p.b.AddFlags(id, flags)
	p.typeMemberEnd()
	return id
}

func (p *Parser) parseSignature(kind ast.Kind, start uint32) ast.NodeID {
	typeParams := p.parseTypeParamsOpt()
	params := p.parseParams()
	ret := ast.NoNode
	if p.at(token.Colon) {
		ret = p.parseReturnType()
	}
	return p.node(kind, start, typeParams, params, ret)
}

func (p *Parser) canStartType() bool { return p.canStartTypeAt(p.tok) }

func (p *Parser) canStartTypeAt(t token.Token) bool {
	switch t.Kind {
	case token.LParen, token.LBracket, token.LBrace, token.Lt, token.Minus, token.Pipe, token.Amp,
		token.StringLit, token.NumericLit, token.NoSubstTemplate, token.TemplateHead,
		token.KwThis, token.KwTypeof, token.KwImport, token.KwNew, token.KwVoid, token.KwNull,
		token.KwTrue, token.KwFalse, token.DotDotDot:
		return true
	}
	return t.IsIdentLike()
}

func (p *Parser) parseTypeParamsOpt() ast.NodeID {
	if !p.at(token.Lt) {
		return ast.NoNode
	}
	return p.parseTypeParams()
}

// parseTypeParams parses '<T extends C = D, ...>'.
func (p *Parser) parseTypeParams() ast.NodeID {
	open := p.next()
	p.typeDepth++
	params := p.delimited(open, token.Gt, p.canStartTypeParam, p.parseTypeParam)
	p.typeDepth--
	list := p.list(params, open.Span.End)
	p.expectClose(token.Gt, open)
	p.typeSyntax(p.spanFrom(open.Span.Start), "a type parameter list")
	return list
}

func (p *Parser) canStartTypeParam() bool {
	return p.atIdent() || p.at(token.KwIn) || p.at(token.KwConst)
}

func (p *Parser) parseTypeParam() ast.NodeID {
	start := p.tok.Span.Start
	var flags ast.Flags
	for {
		f := p.typeParamModifier()
		if f == 0 {
			break
		}
		flags |= f
		p.next()
	}
	id := p.parseBindingIdent()
	constraint, def := ast.NoNode, ast.NoNode
	if p.eat(token.KwExtends) {
		constraint = p.parseType()
	}
	if p.eat(token.Assign) {
		def = p.parseType()
	}
	param := p.node(ast.TypeParam, start, id, constraint, def)
	p.b.AddFlags(param, flags)
	return param
}

func (p *Parser) typeParamModifier() ast.Flags {
	switch {
	case p.at(token.KwConst):
		return ast.FlagConst
	case p.at(token.KwIn) && p.peek().IsIdentLike():
		return ast.FlagIn
	case p.atContextual(token.KwOut) && p.peek().IsIdentLike():
		return ast.FlagOut
	}
	return 0
}

// parseTypeArgs parses '<A, B>'.
func (p *Parser) parseTypeArgs() ast.NodeID {
	return p.parseTypeArgsThen(lexer.ModeAfter(token.Gt))
}

// parseTypeArgsThen parses '<A, B>' and scans the token after '>' in
// mode, which JSX tags need.
func (p *Parser) parseTypeArgsThen(mode lexer.Mode) ast.NodeID {
	open := p.nextMode(lexer.ModeRegex)
	p.typeDepth++
	args := p.delimited(open, token.Gt, p.canStartType, p.parseType)
	p.typeDepth--
	list := p.list(args, open.Span.End)
	if p.at(token.Gt) {
		p.nextMode(mode)
	} else {
		p.expectClose(token.Gt, open)
	}
	p.typeSyntax(p.spanFrom(open.Span.Start), "type arguments")
	return list
}
