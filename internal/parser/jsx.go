package parser

import (
	"fmt"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/dialect"
	"esfront/internal/fix"
	"esfront/internal/lexer"
	"esfront/internal/source"
	"esfront/internal/token"
)

// parseJSXElementOrFragment parses JSX in expression position; the current
// token is '<'. The token after the element is scanned as an operator.
func (p *Parser) parseJSXElementOrFragment() ast.NodeID {
	outer := p.jsxDepth == 0
	lt := p.nextMode(lexer.ModeJSXTag)
	id := p.parseJSXAfterLt(lt, lexer.ModeDivide)
	if outer {
		p.feature(dialect.JSX, p.b.Span(id), "JSX")
	}
	return id
}

// parseJSXAfterLt parses an element or fragment whose '<' has been
// consumed. after is the scan mode for the token following it.
func (p *Parser) parseJSXAfterLt(lt token.Token, after lexer.Mode) ast.NodeID {
	if !p.enter() {
		return p.bailOut(ast.MissingExpr)
	}
	defer p.leave()
	p.jsxDepth++
	defer func() { p.jsxDepth-- }()

	start := lt.Span.Start
	if p.at(token.Gt) {
		p.nextMode(lexer.ModeJSXChild)
		opening := p.b.New(ast.JSXOpeningFragment, p.spanFrom(start))
		children, closing := p.parseJSXChildren(ast.NoNode, p.b.Span(opening), after)
		return p.node(ast.JSXFragment, start, opening, children, closing)
	}

	name := p.parseJSXElementName()
	typeArgs := ast.NoNode
	if p.at(token.Lt) {
		typeArgs = p.parseTypeArgsThen(lexer.ModeJSXTag)
	}
	attrs := p.parseJSXAttributes()
	selfClosing := false
	if p.at(token.Slash) {
		p.nextMode(lexer.ModeJSXTag)
		selfClosing = true
	}
	switch {
	case p.at(token.Gt) && selfClosing:
		p.nextMode(after)
	case p.at(token.Gt):
		p.nextMode(lexer.ModeJSXChild)
	default:
		p.missingToken(token.Gt)
		selfClosing = true
	}
	opening := p.node(ast.JSXOpeningElement, start, name, typeArgs, p.list(attrs, p.prevEnd()))
	if selfClosing {
		p.b.AddFlags(opening, ast.FlagSelfClosing)
		return p.node(ast.JSXElement, start, opening, p.list(nil, p.prevEnd()), ast.NoNode)
	}
	children, closing := p.parseJSXChildren(name, p.b.Span(opening), after)
	return p.node(ast.JSXElement, start, opening, children, closing)
}

// parseJSXElementName parses 'a', 'ns:a' or 'a.b.c'.
func (p *Parser) parseJSXElementName() ast.NodeID {
	start := p.tok.Span.Start
	name := p.parseJSXIdent()
	if p.at(token.Colon) {
		p.nextMode(lexer.ModeJSXTag)
		local := p.parseJSXIdent()
		return p.node(ast.JSXNamespacedName, start, name, local)
	}
	for p.at(token.Dot) {
		p.nextMode(lexer.ModeJSXTag)
		prop := p.parseJSXIdent()
		name = p.node(ast.JSXMemberExpr, start, name, prop)
	}
	return name
}

func (p *Parser) parseJSXIdent() ast.NodeID {
	if !p.at(token.JSXIdent) {
		p.unexpected(diag.SynExpectIdentifier, "a JSX name")
		return p.missingExpr()
	}
	return p.leaf(ast.JSXIdentifier, p.nextMode(lexer.ModeJSXTag))
}

func (p *Parser) parseJSXAttributes() []ast.NodeID {
	attrs := make([]ast.NodeID, 0, 4)
	for {
		start := p.tok.Span.Start
		switch {
		case p.at(token.LBrace):
			open := p.nextMode(lexer.ModeRegex)
			if !p.eat(token.DotDotDot) {
				p.missingToken(token.DotDotDot)
			}
			arg := p.parseAssign()
			p.jsxCloseBrace(open, lexer.ModeJSXTag)
			attrs = append(attrs, p.node(ast.JSXSpreadAttribute, start, arg))
		case p.at(token.JSXIdent):
			name := p.parseJSXIdent()
			if p.at(token.Colon) {
				p.nextMode(lexer.ModeJSXTag)
				local := p.parseJSXIdent()
				name = p.node(ast.JSXNamespacedName, start, name, local)
			}
			value := ast.NoNode
			if p.at(token.Assign) {
				p.nextMode(lexer.ModeJSXTag)
				value = p.parseJSXAttrValue()
			}
			attrs = append(attrs, p.node(ast.JSXAttribute, start, name, value))
		default:
			return attrs
		}
	}
}

func (p *Parser) parseJSXAttrValue() ast.NodeID {
	start := p.tok.Span.Start
	switch {
	case p.at(token.JSXString):
		tok := p.nextMode(lexer.ModeJSXTag)
		id := p.leaf(ast.StringLit, tok)
		if tok.Flags&token.Unterminated != 0 {
			p.b.AddFlags(id, ast.FlagUnterminated)
		}
		return id
	case p.at(token.LBrace):
		open := p.nextMode(lexer.ModeRegex)
		var expr ast.NodeID
		if p.at(token.RBrace) {
			expr = p.b.New(ast.JSXEmptyExpr, source.Span{File: p.file.ID, Start: open.Span.End, End: p.tok.Span.Start})
			p.fail(diag.SynJSXEmptyExpression, p.spanFrom(start).Cover(p.tok.Span), "JSX attributes must be assigned a non-empty expression")
		} else {
			expr = p.parseAssign()
		}
		p.jsxCloseBrace(open, lexer.ModeJSXTag)
		return p.node(ast.JSXExpressionContainer, start, expr)
	case p.at(token.Lt):
		lt := p.nextMode(lexer.ModeJSXTag)
		return p.parseJSXAfterLt(lt, lexer.ModeJSXTag)
	}
	p.unexpected(diag.SynExpectExpression, "a JSX attribute value")
	return p.missingExpr()
}

// jsxCloseBrace consumes the '}' of an expression container and scans the
// next token in mode.
func (p *Parser) jsxCloseBrace(open token.Token, mode lexer.Mode) bool {
	if p.at(token.RBrace) {
		p.nextMode(mode)
		return true
	}
	return p.expectClose(token.RBrace, open)
}

// parseJSXChildren parses element content up to and including the closing
// tag. openName is NoNode for fragments.
func (p *Parser) parseJSXChildren(openName ast.NodeID, openSpan source.Span, after lexer.Mode) (ast.NodeID, ast.NodeID) {
	listStart := p.prevEnd()
	children := make([]ast.NodeID, 0, 4)
	for {
		start := p.tok.Span.Start
		switch p.tok.Kind {
		case token.JSXText:
			children = append(children, p.leaf(ast.JSXText, p.nextMode(lexer.ModeJSXChild)))
		case token.LBrace:
			open := p.nextMode(lexer.ModeRegex)
			kind := ast.JSXExpressionContainer
			var expr ast.NodeID
			switch {
			case p.at(token.RBrace):
				expr = p.b.New(ast.JSXEmptyExpr, source.Span{File: p.file.ID, Start: open.Span.End, End: p.tok.Span.Start})
			case p.at(token.DotDotDot):
				p.next()
				kind = ast.JSXSpreadChild
				expr = p.parseExpression()
			default:
				expr = p.parseExpression()
			}
			closed := p.jsxCloseBrace(open, lexer.ModeJSXChild)
			children = append(children, p.node(kind, start, expr))
			if !closed {
				return p.list(children, listStart), ast.NoNode
			}
		case token.Lt:
			lt := p.nextMode(lexer.ModeJSXTag)
			if p.at(token.Slash) {
				closing := p.parseJSXClosing(lt, openName, openSpan, after)
				return p.list(children, listStart), closing
			}
			children = append(children, p.parseJSXAfterLt(lt, lexer.ModeJSXChild))
		default:
			p.corrupt = true
			p.errorAt(diag.SynJSXUnclosed, openSpan, "JSX element has no closing tag").
				WithNote(p.errSpan(), "content ends here").
				Emit()
			return p.list(children, listStart), ast.NoNode
		}
	}
}

func (p *Parser) parseJSXClosing(lt token.Token, openName ast.NodeID, openSpan source.Span, after lexer.Mode) ast.NodeID {
	start := lt.Span.Start
	p.nextMode(lexer.ModeJSXTag)
	if p.at(token.Gt) {
		p.nextMode(after)
		closing := p.b.New(ast.JSXClosingFragment, p.spanFrom(start))
		if openName != ast.NoNode {
			want := p.jsxName(openName)
			p.fail(diag.SynJSXMismatchedClose, p.b.Span(closing), fmt.Sprintf("expected closing tag '</%s>'", want))
		}
		return closing
	}
	name := p.parseJSXElementName()
	if p.at(token.Gt) {
		p.nextMode(after)
	} else {
		p.missingToken(token.Gt)
	}
	closing := p.node(ast.JSXClosingElement, start, name)
	switch {
	case openName == ast.NoNode:
		p.fail(diag.SynJSXMismatchedClose, p.b.Span(closing), "expected closing fragment '</>'")
	case p.jsxName(openName) != p.jsxName(name):
		want := p.jsxName(openName)
		p.corrupt = true
		p.errorAt(diag.SynJSXMismatchedClose, p.b.Span(name),
			fmt.Sprintf("closing tag '%s' does not match opening tag '%s'", p.jsxName(name), want)).
			WithNote(openSpan, "opening tag is here").
			WithFixSuggestion(fix.Replace("rename closing tag to '"+want+"'", p.b.Span(name), want, p.jsxName(name),
				fix.WithApplicability(diag.FixApplicabilitySafeWithHeuristics))).
			Emit()
	}
	return closing
}

// jsxName is the source text of a JSX tag name.
func (p *Parser) jsxName(id ast.NodeID) string {
	sp := p.b.Span(id)
	return string(p.file.Content[sp.Start:sp.End])
}
