package parser

import (
	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/token"
)

// toPattern reinterprets an object or array literal, parsed before '=' or
// a for-in/of keyword was seen, as an assignment pattern. Nodes are
// retagged in place.
func (p *Parser) toPattern(id ast.NodeID) ast.NodeID {
	switch p.b.Kind(id) {
	case ast.ObjectLit:
		p.b.Retag(id, ast.ObjectPattern)
		list := p.b.Children(id)[0]
		props := p.b.Children(list)
		for i, prop := range props {
			switch p.b.Kind(prop) {
			case ast.SpreadElement:
				p.b.SetChild(list, i, p.toRest(prop, i == len(props)-1))
			case ast.Property:
				if p.b.Flags(prop)&ast.FlagMethod != 0 {
					p.invalidTarget(prop)
					continue
				}
				p.b.Retag(prop, ast.PatternProperty)
				value := p.b.Children(prop)[1]
				p.b.SetChild(prop, 1, p.toPattern(value))
			}
		}
		return id
	case ast.ArrayLit:
		p.b.Retag(id, ast.ArrayPattern)
		list := p.b.Children(id)[0]
		elems := p.b.Children(list)
		for i, el := range elems {
			switch p.b.Kind(el) {
			case ast.Hole:
			case ast.SpreadElement:
				p.b.SetChild(list, i, p.toRest(el, i == len(elems)-1))
			default:
				p.b.SetChild(list, i, p.toPattern(el))
			}
		}
		return id
	case ast.AssignExpr:
		if p.b.Op(id) != token.Assign {
			p.invalidTarget(id)
			return id
		}
		p.b.Retag(id, ast.AssignPattern)
		p.b.SetChild(id, 0, p.toPattern(p.b.Children(id)[0]))
		return id
	case ast.Identifier, ast.MemberExpr, ast.PatternProperty, ast.ObjectPattern, ast.ArrayPattern,
		ast.AssignPattern, ast.RestElement:
		return id
	case ast.MissingExpr:
		return id
	}
	if !p.simpleTarget(id) {
		p.invalidTarget(id)
	}
	return id
}

func (p *Parser) toRest(spread ast.NodeID, last bool) ast.NodeID {
	arg := p.toPattern(p.b.Children(spread)[0])
	if p.b.Kind(arg) == ast.AssignPattern {
		p.errorAt(diag.SynMultipleRestOrDefault, p.b.Span(arg), "a rest element cannot have a default value").Emit()
	}
	rest := p.b.New(ast.RestElement, p.b.Span(spread), arg, ast.NoNode)
	if !last {
		p.errorAt(diag.SynRestNotLast, p.b.Span(spread), "a rest element must be last").Emit()
	}
	return rest
}

func (p *Parser) invalidTarget(id ast.NodeID) {
	p.errorAt(diag.SynInvalidAssignTarget, p.b.Span(id), "invalid destructuring assignment target").Emit()
}

// toAssignTarget checks the left side of a for-in or for-of head.
func (p *Parser) toAssignTarget(id ast.NodeID) ast.NodeID {
	switch p.b.Kind(id) {
	case ast.ObjectLit, ast.ArrayLit:
		return p.toPattern(id)
	}
	p.checkSimpleTarget(id)
	return id
}

// reportCoverInits reports '{a = 1}' shorthand initializers recorded since
// mark that never became part of a pattern.
func (p *Parser) reportCoverInits(mark int) {
	if mark >= len(p.coverInits) {
		return
	}
	for _, sp := range p.coverInits[mark:] {
		p.errorAt(diag.SynInvalidCoverGrammar, sp, "shorthand property initializer is only valid in a destructuring pattern").Emit()
	}
	p.coverInits = p.coverInits[:mark]
}
