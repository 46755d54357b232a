package parser

import (
	"fmt"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/token"
)

// parseStatementList parses statements until end. With prologue set, a
// leading run of string-literal statements becomes Directive nodes and
// "use strict" switches the rest of the list to strict mode.
func (p *Parser) parseStatementList(end token.Kind, prologue bool) []ast.NodeID {
	out := make([]ast.NodeID, 0, 8)
	for !p.at(end) && !p.at(token.EOF) {
		before := p.tok
		stmt := p.parseStatement()
		out = append(out, stmt)
		if prologue {
			prologue = p.directive(stmt)
		}
		if p.tok.Span == before.Span && p.tok.Kind == before.Kind {
			p.next()
		}
	}
	return out
}

// directive retags stmt as a Directive when it is a bare string literal
// statement and reports whether the prologue continues.
func (p *Parser) directive(stmt ast.NodeID) bool {
	if p.b.Kind(stmt) != ast.ExprStmt {
		return false
	}
	expr := p.b.Children(stmt)[0]
	if p.b.Kind(expr) != ast.StringLit {
		return false
	}
	p.b.Retag(stmt, ast.Directive)
	raw := p.b.Text(expr)
	if (raw == `"use strict"` || raw == `'use strict'`) && p.cfg.StrictDirectives {
		p.ctx.strict = true
	}
	return true
}

func (p *Parser) parseStatement() ast.NodeID {
	if !p.enter() {
		p.leave()
		return p.bailOut(ast.MissingStmt)
	}
	defer p.leave()

	switch p.tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		tok := p.next()
		return p.b.New(ast.EmptyStmt, tok.Span)
	case token.KwVar:
		return p.parseVarStatement(p.tok.Span.Start, 0)
	case token.KwConst:
		if p.peek().Kind == token.KwEnum {
			return p.parseEnum(p.tok.Span.Start, 0)
		}
		return p.parseVarStatement(p.tok.Span.Start, 0)
	case token.KwLet:
		if p.letDeclaration() {
			return p.parseVarStatement(p.tok.Span.Start, 0)
		}
	case token.KwUsing:
		if p.usingDeclaration() {
			return p.parseVarStatement(p.tok.Span.Start, 0)
		}
	case token.KwAwait:
		if p.awaitUsingDeclaration() {
			return p.parseVarStatement(p.tok.Span.Start, 0)
		}
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak, token.KwContinue:
		return p.parseJump()
	case token.KwThrow:
		return p.parseThrow()
	case token.KwTry:
		return p.parseTry()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwDebugger:
		tok := p.next()
		p.semicolon()
		return p.node(ast.DebuggerStmt, tok.Span.Start)
	case token.KwWith:
		return p.parseWith()
	case token.KwFunction:
		return p.parseFunctionDecl(p.tok.Span.Start, 0)
	case token.KwAsync:
		if t := p.peek(); t.Kind == token.KwFunction && !t.NewlineBefore() {
			return p.parseFunctionDecl(p.tok.Span.Start, 0)
		}
	case token.KwClass:
		return p.parseClassDecl(p.tok.Span.Start, nil, 0)
	case token.At:
		return p.parseDecoratedStatement()
	case token.KwImport:
		if t := p.peek(); t.Kind != token.LParen && t.Kind != token.Dot {
			return p.parseImport()
		}
	case token.KwExport:
		return p.parseExport(p.tok.Span.Start, nil)
	case token.KwEnum:
		return p.parseEnum(p.tok.Span.Start, 0)
	case token.KwInterface, token.KwType, token.KwNamespace, token.KwModule, token.KwDeclare,
		token.KwAbstract, token.KwGlobal:
		if decl := p.tryTSDeclaration(p.tok.Span.Start, 0); decl != ast.NoNode {
			return decl
		}
	}

	if p.atIdent() && p.peek().Kind == token.Colon {
		return p.parseLabeled()
	}
	if !p.canStartExpression() {
		return p.recoverStatement()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() ast.NodeID {
	start := p.tok.Span.Start
	expr := p.parseExpression()
	p.semicolon()
	return p.node(ast.ExprStmt, start, expr)
}

// letDeclaration reports whether 'let' starts a declaration rather than
// naming a variable.
func (p *Parser) letDeclaration() bool {
	t := p.peek()
	return t.Kind == token.LBracket || t.Kind == token.LBrace || t.IsIdentLike()
}

func (p *Parser) usingDeclaration() bool {
	t := p.peek()
	return t.IsIdentLike() && !t.NewlineBefore() && t.Kind != token.KwIn && t.Kind != token.KwOf
}

func (p *Parser) awaitUsingDeclaration() bool {
	a, b := p.peek2()
	return a.Kind == token.KwUsing && !a.NewlineBefore() && b.IsIdentLike() && !b.NewlineBefore()
}

func (p *Parser) parseBlock() ast.NodeID {
	start := p.tok.Span.Start
	open := p.tok
	if !p.at(token.LBrace) {
		p.missingToken(token.LBrace)
		return p.node(ast.BlockStmt, start, p.list(nil, start))
	}
	p.next()
	body := p.parseStatementList(token.RBrace, false)
	list := p.list(body, open.Span.End)
	p.expectClose(token.RBrace, open)
	return p.node(ast.BlockStmt, start, list)
}

// parseParenHead parses '(' Expression ')' after if, while, switch and with.
func (p *Parser) parseParenHead() ast.NodeID {
	open := p.tok
	if !p.eat(token.LParen) {
		p.missingToken(token.LParen)
		expr := p.parseExpression()
		p.eat(token.RParen)
		return expr
	}
	expr := p.parseExpression()
	p.expectClose(token.RParen, open)
	return expr
}

func (p *Parser) parseIf() ast.NodeID {
	start := p.next().Span.Start
	test := p.parseParenHead()
	cons := p.parseStatement()
	alt := ast.NoNode
	if p.eat(token.KwElse) {
		alt = p.parseStatement()
	}
	return p.node(ast.IfStmt, start, test, cons, alt)
}

func (p *Parser) parseLoopBody() ast.NodeID {
	saved := p.ctx.inLoop
	p.ctx.inLoop = true
	body := p.parseStatement()
	p.ctx.inLoop = saved
	return body
}

func (p *Parser) parseWhile() ast.NodeID {
	start := p.next().Span.Start
	test := p.parseParenHead()
	body := p.parseLoopBody()
	return p.node(ast.WhileStmt, start, test, body)
}

func (p *Parser) parseDoWhile() ast.NodeID {
	start := p.next().Span.Start
	body := p.parseLoopBody()
	var test ast.NodeID
	if p.expect(token.KwWhile) {
		test = p.parseParenHead()
	} else {
		test = p.missingExpr()
	}
	// A ';' after do-while is optional even on the same line.
	p.eat(token.Semicolon)
	return p.node(ast.DoWhileStmt, start, body, test)
}

func (p *Parser) parseFor() ast.NodeID {
	start := p.next().Span.Start
	await := false
	if p.atContextual(token.KwAwait) {
		tok := p.next()
		await = true
		if !p.awaitAllowed() {
			p.fail(diag.SynUnexpectedToken, tok.Span, "'for await' is only allowed in async functions and at module top level")
		}
	}
	open := p.tok
	if !p.eat(token.LParen) {
		p.missingToken(token.LParen)
	}

	savedNoIn := p.ctx.noIn
	p.ctx.noIn = true
	p.assignNest++
	coverMark := len(p.coverInits)
	init := ast.NoNode
	isDecl := false
	switch {
	case p.at(token.Semicolon):
	case p.at(token.KwVar), p.at(token.KwConst),
		p.at(token.KwLet) && p.letDeclaration(),
		p.at(token.KwUsing) && p.usingDeclaration(),
		p.at(token.KwAwait) && p.awaitUsingDeclaration():
		init = p.parseVarDecl(p.tok.Span.Start, 0, true)
		isDecl = true
	default:
		init = p.parseExpression()
	}
	p.assignNest--
	p.ctx.noIn = savedNoIn

	if p.at(token.KwIn) || p.atContextual(token.KwOf) {
		of := p.at(token.KwOf)
		if isDecl {
			p.checkForInOfDecl(init, of)
		} else {
			init = p.toAssignTarget(init)
			p.coverInits = p.coverInits[:coverMark]
		}
		p.next()
		var right ast.NodeID
		if of {
			right = p.parseAssign()
		} else {
			right = p.parseExpression()
		}
		p.expectClose(token.RParen, open)
		body := p.parseLoopBody()
		kind := ast.ForInStmt
		if of {
			kind = ast.ForOfStmt
		}
		id := p.node(kind, start, init, right, body)
		if await {
			p.b.AddFlags(id, ast.FlagAwait)
			if !of {
				p.fail(diag.SynUnexpectedToken, p.b.Span(id), "'for await' requires 'of'")
			}
		}
		return id
	}

	p.reportCoverInits(coverMark)
	if isDecl {
		p.checkInitializers(init)
	}
	p.expect(token.Semicolon)
	test := ast.NoNode
	if !p.at(token.Semicolon) {
		test = p.parseExpression()
	}
	p.expect(token.Semicolon)
	update := ast.NoNode
	if !p.at(token.RParen) {
		update = p.parseExpression()
	}
	p.expectClose(token.RParen, open)
	body := p.parseLoopBody()
	if await {
		p.fail(diag.SynUnexpectedToken, p.spanFrom(start), "'for await' requires 'of'")
	}
	return p.node(ast.ForStmt, start, init, test, update, body)
}

// checkForInOfDecl validates the declaration heading a for-in or for-of
// loop: one declarator, and no initializer except the legacy
// 'for (var x = e in o)' form.
func (p *Parser) checkForInOfDecl(decl ast.NodeID, of bool) {
	decls := p.b.Children(p.b.Children(decl)[0])
	if len(decls) != 1 {
		p.fail(diag.SynForInitializer, p.b.Span(decl), "only one variable can be declared in a for-in or for-of head")
		return
	}
	init := p.b.Children(decls[0])[2]
	if init == ast.NoNode {
		return
	}
	if !of && p.b.Op(decl) == token.KwVar {
		return
	}
	loop := "for-in"
	if of {
		loop = "for-of"
	}
	p.fail(diag.SynForInitializer, p.b.Span(init), fmt.Sprintf("%s loop variable cannot have an initializer", loop))
}

func (p *Parser) parseReturn() ast.NodeID {
	tok := p.next()
	if !p.ctx.inFunction && !p.cfg.AllowReturnOutsideFunction {
		p.errorAt(diag.SynReturnOutsideFunction, tok.Span, "'return' outside of a function").Emit()
	}
	arg := ast.NoNode
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) && !p.tok.NewlineBefore() {
		arg = p.parseExpression()
	}
	p.semicolon()
	return p.node(ast.ReturnStmt, tok.Span.Start, arg)
}

func (p *Parser) parseJump() ast.NodeID {
	tok := p.next()
	isBreak := tok.Kind == token.KwBreak
	kind := ast.ContinueStmt
	if isBreak {
		kind = ast.BreakStmt
	}
	lbl := ast.NoNode
	if p.atIdent() && !p.tok.NewlineBefore() {
		name := p.next()
		lbl = p.leaf(ast.Identifier, name)
		l, ok := p.ctx.hasLabel(name.Text)
		switch {
		case !ok:
			p.errorAt(diag.SynUndefinedLabel, name.Span, fmt.Sprintf("undefined label '%s'", name.Text)).Emit()
		case !isBreak && !l.loop:
			p.errorAt(diag.SynIllegalBreak, name.Span, fmt.Sprintf("label '%s' does not name a loop", name.Text)).Emit()
		}
	} else if isBreak && !p.ctx.inLoop && !p.ctx.inSwitch {
		p.errorAt(diag.SynIllegalBreak, tok.Span, "'break' outside of a loop or switch").Emit()
	} else if !isBreak && !p.ctx.inLoop {
		p.errorAt(diag.SynIllegalBreak, tok.Span, "'continue' outside of a loop").Emit()
	}
	p.semicolon()
	return p.node(kind, tok.Span.Start, lbl)
}

func (p *Parser) parseThrow() ast.NodeID {
	tok := p.next()
	if p.tok.NewlineBefore() {
		p.fail(diag.SynLineBreakNotAllowed, p.errSpan(), "line break is not allowed after 'throw'")
	}
	arg := p.parseExpression()
	p.semicolon()
	return p.node(ast.ThrowStmt, tok.Span.Start, arg)
}

func (p *Parser) parseTry() ast.NodeID {
	start := p.next().Span.Start
	block := p.parseBlock()
	handler, finalizer := ast.NoNode, ast.NoNode
	if p.at(token.KwCatch) {
		cstart := p.next().Span.Start
		param, typ := ast.NoNode, ast.NoNode
		if open := p.tok; p.eat(token.LParen) {
			param = p.parseBindingTarget()
			if p.at(token.Colon) {
				typ = p.parseTypeAnnotation()
			}
			p.expectClose(token.RParen, open)
		}
		body := p.parseBlock()
		handler = p.node(ast.CatchClause, cstart, param, typ, body)
	}
	if p.eat(token.KwFinally) {
		finalizer = p.parseBlock()
	}
	if handler == ast.NoNode && finalizer == ast.NoNode {
		p.fail(diag.SynExpectToken, p.errSpan(), fmt.Sprintf("expected 'catch' or 'finally', found %s", describe(p.tok)))
	}
	return p.node(ast.TryStmt, start, block, handler, finalizer)
}

func (p *Parser) parseSwitch() ast.NodeID {
	start := p.next().Span.Start
	disc := p.parseParenHead()
	open := p.tok
	if !p.eat(token.LBrace) {
		p.missingToken(token.LBrace)
		return p.node(ast.SwitchStmt, start, disc, p.list(nil, p.prevEnd()))
	}
	saved := p.ctx.inSwitch
	p.ctx.inSwitch = true
	cases := make([]ast.NodeID, 0, 4)
	var firstDefault ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.KwCase) && !p.at(token.KwDefault) {
			p.unexpected(diag.SynUnexpectedToken, "'case' or 'default'")
			p.next()
			p.skipTo(syncSwitch)
			continue
		}
		cstart := p.tok.Span.Start
		test := ast.NoNode
		if p.next().Kind == token.KwCase {
			test = p.parseExpression()
		}
		p.expect(token.Colon)
		body := make([]ast.NodeID, 0, 4)
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
			before := p.tok
			body = append(body, p.parseStatement())
			if p.tok.Span == before.Span && p.tok.Kind == before.Kind {
				p.next()
			}
		}
		c := p.node(ast.SwitchCase, cstart, test, p.list(body, p.prevEnd()))
		if test == ast.NoNode {
			if firstDefault != ast.NoNode {
				p.errorAt(diag.SynDuplicateDefault, p.b.Span(c), "more than one 'default' clause in switch").
					WithNote(p.b.Span(firstDefault), "first 'default' is here").
					Emit()
			} else {
				firstDefault = c
			}
		}
		cases = append(cases, c)
	}
	p.ctx.inSwitch = saved
	list := p.list(cases, open.Span.End)
	p.expectClose(token.RBrace, open)
	return p.node(ast.SwitchStmt, start, disc, list)
}

func (p *Parser) parseLabeled() ast.NodeID {
	name := p.next()
	start := name.Span.Start
	p.next() // ':'
	lbl := p.leaf(ast.Identifier, name)
	t := p.tok.Kind
	p.ctx.labels = append(p.ctx.labels, label{
		name: name.Text,
		loop: t == token.KwFor || t == token.KwWhile || t == token.KwDo,
	})
	body := p.parseStatement()
	p.ctx.labels = p.ctx.labels[:len(p.ctx.labels)-1]
	return p.node(ast.LabeledStmt, start, lbl, body)
}

func (p *Parser) parseWith() ast.NodeID {
	tok := p.next()
	if p.ctx.strict {
		p.errorAt(diag.DialectStrictMode, tok.Span, "'with' is not allowed in strict mode").Emit()
	}
	obj := p.parseParenHead()
	body := p.parseStatement()
	return p.node(ast.WithStmt, tok.Span.Start, obj, body)
}
