package parser

import (
	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/token"
)

// moduleOnly reports import and export declarations in script files. The
// declaration is still parsed in full.
func (p *Parser) moduleOnly(tok token.Token) {
	if p.cfg.Module || p.ambient() || p.ctx.inNamespace {
		return
	}
	p.errorAt(diag.SynImportOutsideModule, tok.Span, "'"+tok.Text+"' declarations are only allowed in modules").
		WithNote(tok.Span, "the file is parsed as a script").
		Emit()
}

func (p *Parser) parseImport() ast.NodeID {
	kw := p.next()
	start := kw.Span.Start
	p.moduleOnly(kw)

	var flags ast.Flags
	if p.atContextual(token.KwType) {
		t := p.peek()
		if t.Kind == token.LBrace || t.Kind == token.Star || (t.IsIdentLike() && t.Kind != token.KwFrom) ||
			(t.Kind == token.KwFrom && p.peekFromIsBinding()) {
			tok := p.next()
			p.typeSyntax(tok.Span, "a type-only import")
			flags |= ast.FlagTypeOnly
		}
	}

	if p.atIdent() && p.peek().Kind == token.Assign {
		id := p.parseImportEquals(start)
		p.b.AddFlags(id, flags)
		return id
	}

	if p.at(token.StringLit) {
		source := p.parseLiteral()
		attrs := p.parseImportAttributes()
		p.semicolon()
		return p.node(ast.ImportDecl, start, ast.NoNode, source, attrs)
	}

	specStart := p.tok.Span.Start
	specs := make([]ast.NodeID, 0, 4)
	more := true
	if p.atIdent() {
		s := p.tok.Span.Start
		local := p.parseBindingIdent()
		specs = append(specs, p.node(ast.ImportDefaultSpecifier, s, local))
		more = p.eat(token.Comma)
	}
	switch {
	case !more:
	case p.at(token.Star):
		s := p.next().Span.Start
		p.expect(token.KwAs)
		local := p.parseBindingIdent()
		specs = append(specs, p.node(ast.ImportNamespaceSpecifier, s, local))
	case p.at(token.LBrace):
		open := p.next()
		specs = append(specs, p.delimited(open, token.RBrace, p.canStartModuleName, p.parseImportSpecifier)...)
		p.expectClose(token.RBrace, open)
	default:
		p.unexpected(diag.SynExpectToken, "'{', '*' or a binding")
	}

	list := p.list(specs, specStart)
	source := p.parseFromClause()
	attrs := p.parseImportAttributes()
	p.semicolon()
	id := p.node(ast.ImportDecl, start, list, source, attrs)
	p.b.AddFlags(id, flags)
	return id
}

// peekFromIsBinding distinguishes 'import type from "x"' (a default import
// named type) from 'import type from from "x"'.
func (p *Parser) peekFromIsBinding() bool {
	_, b := p.peek2()
	return b.Kind == token.KwFrom
}

func (p *Parser) canStartModuleName() bool {
	return p.tok.Kind.IsIdentifierName() || p.at(token.StringLit)
}

// parseModuleExportName parses an identifier name or a string literal used
// as an imported or exported name.
func (p *Parser) parseModuleExportName() ast.NodeID {
	if p.at(token.StringLit) {
		return p.parseLiteral()
	}
	if p.tok.Kind.IsIdentifierName() {
		return p.leaf(ast.Identifier, p.next())
	}
	p.unexpected(diag.SynExpectIdentifier, "a name")
	return p.missingExpr()
}

func (p *Parser) parseImportSpecifier() ast.NodeID {
	start := p.tok.Span.Start
	var flags ast.Flags
	if p.atContextual(token.KwType) && p.typeModifierApplies() {
		tok := p.next()
		p.typeSyntax(tok.Span, "a type-only import specifier")
		flags |= ast.FlagTypeOnly
	}
	if p.atIdent() && !p.peekIs(token.KwAs) {
		local := p.parseBindingIdent()
		id := p.node(ast.ImportSpecifier, start, ast.NoNode, local)
		p.b.AddFlags(id, flags)
		return id
	}
	imported := p.parseModuleExportName()
	p.expect(token.KwAs)
	local := p.parseBindingIdent()
	id := p.node(ast.ImportSpecifier, start, imported, local)
	p.b.AddFlags(id, flags)
	return id
}

// typeModifierApplies reports whether 'type' in a specifier list modifies
// the following name: 'type as' alone names an import called type.
func (p *Parser) typeModifierApplies() bool {
	a, b := p.peek2()
	if a.Kind == token.Comma || a.Kind == token.RBrace {
		return false
	}
	if a.Kind == token.KwAs {
		// 'type as as x' and 'type as' are type-only; 'type as x' renames type.
		return b.Kind == token.KwAs || b.Kind == token.Comma || b.Kind == token.RBrace
	}
	return a.Kind.IsIdentifierName() || a.Kind == token.StringLit
}

func (p *Parser) peekIs(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) parseFromClause() ast.NodeID {
	if !p.atContextual(token.KwFrom) {
		p.missingToken(token.KwFrom)
	} else {
		p.next()
	}
	if !p.at(token.StringLit) {
		p.unexpected(diag.SynExpectToken, "a module specifier string")
		return p.missingExpr()
	}
	return p.parseLiteral()
}

// parseImportAttributes parses 'with { type: "json" }' and the older
// 'assert' spelling, which may not follow a line break.
func (p *Parser) parseImportAttributes() ast.NodeID {
	switch {
	case p.at(token.KwWith):
	case p.at(token.Ident) && p.tok.Text == "assert" && !p.tok.NewlineBefore():
	default:
		return ast.NoNode
	}
	p.next()
	open := p.tok
	if !p.eat(token.LBrace) {
		p.missingToken(token.LBrace)
		return p.list(nil, p.prevEnd())
	}
	attrs := p.delimited(open, token.RBrace, p.canStartModuleName, func() ast.NodeID {
		start := p.tok.Span.Start
		key := p.parseModuleExportName()
		p.expect(token.Colon)
		var value ast.NodeID
		if p.at(token.StringLit) {
			value = p.parseLiteral()
		} else {
			p.unexpected(diag.SynExpectToken, "a string")
			value = p.missingExpr()
		}
		return p.node(ast.ImportAttribute, start, key, value)
	})
	list := p.list(attrs, open.Span.End)
	p.expectClose(token.RBrace, open)
	return list
}

// parseImportEquals parses 'import x = require("m")' and 'import x = A.B'.
func (p *Parser) parseImportEquals(start uint32) ast.NodeID {
	name := p.parseBindingIdent()
	p.expect(token.Assign)
	var ref ast.NodeID
	if p.atContextual(token.KwRequire) && p.peekIs(token.LParen) {
		rs := p.next().Span.Start
		open := p.next()
		var arg ast.NodeID
		if p.at(token.StringLit) {
			arg = p.parseLiteral()
		} else {
			p.unexpected(diag.SynExpectToken, "a module specifier string")
			arg = p.missingExpr()
		}
		p.expectClose(token.RParen, open)
		ref = p.node(ast.ExternalModuleRef, rs, arg)
	} else {
		ref = p.parseEntityName()
	}
	p.semicolon()
	id := p.node(ast.ImportEqualsDecl, start, name, ref)
	p.typeSyntax(p.b.Span(id), "an import alias")
	return id
}

// parseExport parses every export form. start is the offset of the first
// decorator when decorators precede 'export'.
func (p *Parser) parseExport(start uint32, decorators []ast.NodeID) ast.NodeID {
	kw := p.next()
	p.moduleOnly(kw)

	if decorators == nil && p.at(token.At) {
		decorators = p.parseDecorators()
	}
	if decorators != nil && !p.at(token.KwClass) && !p.at(token.KwDefault) && !p.atContextual(token.KwAbstract) {
		p.fail(diag.SynDecoratorPosition, p.b.Span(decorators[0]), "decorators must precede a class declaration")
		decorators = nil
	}

	switch {
	case p.at(token.Assign):
		eq := p.next()
		expr := p.parseAssign()
		p.semicolon()
		id := p.node(ast.ExportAssignment, start, expr)
		p.typeSyntax(eq.Span, "an export assignment")
		return id

	case p.atContextual(token.KwAs) && p.peekIs(token.KwNamespace):
		p.next()
		p.next()
		name := p.parseBindingIdent()
		p.semicolon()
		id := p.node(ast.NamespaceExportDecl, start, name)
		p.typeSyntax(p.b.Span(id), "a UMD namespace export")
		return id

	case p.at(token.KwDefault):
		p.next()
		decl := p.parseExportDefault(decorators)
		return p.node(ast.ExportDefaultDecl, start, decl)

	case p.at(token.Star), p.atContextual(token.KwType) && p.peekIs(token.Star):
		var flags ast.Flags
		if p.at(token.KwType) {
			tok := p.next()
			p.typeSyntax(tok.Span, "a type-only export")
			flags |= ast.FlagTypeOnly
		}
		p.next()
		exported := ast.NoNode
		if p.atContextual(token.KwAs) {
			p.next()
			exported = p.parseModuleExportName()
		}
		source := p.parseFromClause()
		attrs := p.parseImportAttributes()
		p.semicolon()
		id := p.node(ast.ExportAllDecl, start, exported, source, attrs)
		p.b.AddFlags(id, flags)
		return id

	case p.at(token.LBrace), p.atContextual(token.KwType) && p.peekIs(token.LBrace):
		var flags ast.Flags
		if p.at(token.KwType) {
			tok := p.next()
			p.typeSyntax(tok.Span, "a type-only export")
			flags |= ast.FlagTypeOnly
		}
		open := p.next()
		specs := p.delimited(open, token.RBrace, p.canStartModuleName, p.parseExportSpecifier)
		list := p.list(specs, open.Span.End)
		p.expectClose(token.RBrace, open)
		source, attrs := ast.NoNode, ast.NoNode
		if p.atContextual(token.KwFrom) {
			source = p.parseFromClause()
			attrs = p.parseImportAttributes()
		}
		p.semicolon()
		id := p.node(ast.ExportNamedDecl, start, ast.NoNode, list, source, attrs)
		p.b.AddFlags(id, flags)
		return id

	case p.at(token.KwImport) && p.peekImportAlias():
		is := p.next().Span.Start
		decl := p.parseImportEquals(is)
		return p.node(ast.ExportNamedDecl, start, decl, ast.NoNode, ast.NoNode, ast.NoNode)
	}

	decl := p.parseExportedDeclaration(start, decorators)
	return p.node(ast.ExportNamedDecl, start, decl, ast.NoNode, ast.NoNode, ast.NoNode)
}

func (p *Parser) peekImportAlias() bool {
	a, b := p.peek2()
	return a.IsIdentLike() && b.Kind == token.Assign
}

func (p *Parser) parseExportSpecifier() ast.NodeID {
	start := p.tok.Span.Start
	var flags ast.Flags
	if p.atContextual(token.KwType) && p.typeModifierApplies() {
		tok := p.next()
		p.typeSyntax(tok.Span, "a type-only export specifier")
		flags |= ast.FlagTypeOnly
	}
	local := p.parseModuleExportName()
	exported := ast.NoNode
	if p.atContextual(token.KwAs) {
		p.next()
		exported = p.parseModuleExportName()
	}
	id := p.node(ast.ExportSpecifier, start, local, exported)
	p.b.AddFlags(id, flags)
	return id
}

// parseExportDefault parses what follows 'export default'. Function and
// class declarations may omit their names here.
func (p *Parser) parseExportDefault(decorators []ast.NodeID) ast.NodeID {
	start := p.tok.Span.Start
	if decorators != nil {
		start = p.b.Span(decorators[0]).Start
	}
	if decorators == nil && p.at(token.At) {
		decorators = p.parseDecorators()
	}
	switch {
	case p.at(token.KwClass):
		return p.parseClassDecl(start, decorators, ast.FlagDefault)
	case p.atContextual(token.KwAbstract) && p.peekIs(token.KwClass):
		tok := p.next()
		p.typeSyntax(tok.Span, "an abstract class")
		return p.parseClassDecl(start, decorators, ast.FlagDefault|ast.FlagAbstract)
	}
	if decorators != nil {
		p.fail(diag.SynDecoratorPosition, p.b.Span(decorators[0]), "decorators must precede a class declaration")
	}
	switch {
	case p.at(token.KwFunction):
		return p.parseFunctionDecl(start, ast.FlagDefault)
	case p.atContextual(token.KwAsync) && p.peekIs(token.KwFunction) && !p.peek().NewlineBefore():
		return p.parseFunctionDecl(start, ast.FlagDefault)
	case p.atContextual(token.KwInterface) && p.nextOnSameLine():
		if decl := p.tryTSDeclaration(start, ast.FlagDefault); decl != ast.NoNode {
			return decl
		}
	}
	expr := p.parseAssign()
	p.semicolon()
	return expr
}

// parseExportedDeclaration parses the declaration after 'export'.
func (p *Parser) parseExportedDeclaration(start uint32, decorators []ast.NodeID) ast.NodeID {
	if decorators != nil {
		start = p.b.Span(decorators[0]).Start
	} else {
		start = p.tok.Span.Start
	}
	switch p.tok.Kind {
	case token.KwVar, token.KwLet, token.KwUsing:
		return p.parseVarStatement(start, ast.FlagExport)
	case token.KwConst:
		if p.peekIs(token.KwEnum) {
			return p.parseEnum(start, ast.FlagExport)
		}
		return p.parseVarStatement(start, ast.FlagExport)
	case token.KwAwait:
		if p.awaitUsingDeclaration() {
			return p.parseVarStatement(start, ast.FlagExport)
		}
	case token.KwFunction:
		return p.parseFunctionDecl(start, ast.FlagExport)
	case token.KwAsync:
		if t := p.peek(); t.Kind == token.KwFunction && !t.NewlineBefore() {
			return p.parseFunctionDecl(start, ast.FlagExport)
		}
	case token.KwClass:
		return p.parseClassDecl(start, decorators, ast.FlagExport)
	case token.KwEnum:
		return p.parseEnum(start, ast.FlagExport)
	case token.KwAbstract:
		if p.peekIs(token.KwClass) {
			tok := p.next()
			p.typeSyntax(tok.Span, "an abstract class")
			return p.parseClassDecl(start, decorators, ast.FlagExport|ast.FlagAbstract)
		}
	}
	if decl := p.tryTSDeclaration(start, ast.FlagExport); decl != ast.NoNode {
		return decl
	}
	p.unexpected(diag.SynExpectStatement, "a declaration after 'export'")
	if p.canStartExpression() {
		return p.parseExpressionStatement()
	}
	return p.recoverStatement()
}
