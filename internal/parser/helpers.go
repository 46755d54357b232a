package parser

import (
	"fmt"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/dialect"
	"esfront/internal/lexer"
	"esfront/internal/source"
	"esfront/internal/token"
	"esfront/internal/trace"
)

// next consumes the current token. The mode for the following token is
// guessed from the consumed kind; expression parsing rescans '/' and '>'
// where the guess is wrong.
func (p *Parser) next() token.Token {
	return p.nextMode(lexer.ModeAfter(p.tok.Kind))
}

// nextMode consumes the current token and scans the following one in mode.
func (p *Parser) nextMode(mode lexer.Mode) token.Token {
	cur := p.tok
	switch cur.Kind {
	case token.TemplateHead:
		p.lx.PushTemplate()
	case token.TemplateTail:
		p.lx.PopTemplate()
	case token.EOF:
		return cur
	}
	p.prev = cur
	p.tok = p.lx.Next(mode)
	return cur
}

func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

// atContextual reports whether the current token is the contextual keyword
// k spelled without escapes.
func (p *Parser) atContextual(k token.Kind) bool {
	return p.tok.Kind == k && p.tok.Flags&token.Escaped == 0
}

func (p *Parser) atIdent() bool { return p.tok.IsIdentLike() }

func (p *Parser) eat(k token.Kind) bool {
	if p.tok.Kind != k {
		return false
	}
	p.next()
	return true
}

// expect consumes k or reports it missing with a fix that inserts it.
// The caller carries on as if the token had been there.
func (p *Parser) expect(k token.Kind) bool {
	if p.eat(k) {
		return true
	}
	p.missingToken(k)
	return false
}

// expectClose consumes the closing delimiter matching open.
func (p *Parser) expectClose(k token.Kind, open token.Token) bool {
	if p.eat(k) {
		return true
	}
	if p.tok.Kind == token.EOF {
		p.corrupt = true
		p.errorAt(diag.SynUnclosedDelimiter, open.Span, fmt.Sprintf("'%s' is never closed", open.Kind)).
			WithNote(p.tok.Span, fmt.Sprintf("expected '%s' before end of input", k)).
			WithFix(fmt.Sprintf("insert '%s'", k), p.insertAt(p.prevEnd(), k.String())).
			Emit()
		return false
	}
	p.corrupt = true
	p.errorAt(diag.SynExpectToken, p.errSpan(), fmt.Sprintf("expected '%s', found %s", k, describe(p.tok))).
		WithNote(open.Span, fmt.Sprintf("to match this '%s'", open.Kind)).
		WithFix(fmt.Sprintf("insert '%s'", k), p.insertAt(p.prevEnd(), k.String())).
		Emit()
	return false
}

func (p *Parser) missingToken(k token.Kind) {
	p.corrupt = true
	p.errorAt(diag.SynExpectToken, p.errSpan(), fmt.Sprintf("expected '%s', found %s", k, describe(p.tok))).
		WithFix(fmt.Sprintf("insert '%s'", k), p.insertAt(p.prevEnd(), k.String())).
		Emit()
}

// semicolon ends a statement: an explicit ';', or an automatically inserted
// one before '}', at end of input or after a line break.
func (p *Parser) semicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.tok.NewlineBefore() {
		return
	}
	p.corrupt = true
	p.errorAt(diag.SynExpectSemicolon, p.errSpan(), fmt.Sprintf("expected ';', found %s", describe(p.tok))).
		WithFix("insert ';'", p.insertAt(p.prevEnd(), ";")).
		Emit()
	if !p.canStartStatement() {
		p.skipTo(syncStatement)
		p.eat(token.Semicolon)
	}
}

func (p *Parser) insertAt(off uint32, text string) diag.TextEdit {
	return diag.TextEdit{Span: source.Span{File: p.file.ID, Start: off, End: off}, NewText: text}
}

// prevEnd is the end offset of the last consumed token.
func (p *Parser) prevEnd() uint32 {
	if p.prev.Kind == token.Invalid && p.prev.Span.End == 0 {
		return p.tok.Span.Start
	}
	return p.prev.Span.End
}

// errSpan is where a problem with the current token is reported. At end of
// input it points just past the last token.
func (p *Parser) errSpan() source.Span {
	if p.tok.Kind == token.EOF {
		end := p.prevEnd()
		return source.Span{File: p.file.ID, Start: end, End: end}
	}
	return p.tok.Span
}

// spanFrom covers start up to the end of the last consumed token.
func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.prevEnd()
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) emptyAt(off uint32) source.Span {
	return source.Span{File: p.file.ID, Start: off, End: off}
}

// node builds kind from start to the last consumed token, widened to cover
// every child.
func (p *Parser) node(kind ast.Kind, start uint32, children ...ast.NodeID) ast.NodeID {
	sp := p.spanFrom(start)
	for _, c := range children {
		if c != ast.NoNode {
			sp = sp.Cover(p.b.Span(c))
		}
	}
	return p.b.New(kind, sp, children...)
}

func (p *Parser) leaf(kind ast.Kind, tok token.Token) ast.NodeID {
	return p.b.Leaf(kind, tok.Span, tok.Text)
}

// list builds a List node; an empty list sits at off.
func (p *Parser) list(elems []ast.NodeID, off uint32) ast.NodeID {
	return p.b.NewList(p.listSpan(elems, p.emptyAt(off)), elems)
}

// optList is list for optional list slots: nil means absent.
func (p *Parser) optList(elems []ast.NodeID, off uint32) ast.NodeID {
	if elems == nil {
		return ast.NoNode
	}
	return p.list(elems, off)
}

func (p *Parser) listSpan(elems []ast.NodeID, empty source.Span) source.Span {
	if len(elems) == 0 {
		return empty
	}
	sp := p.b.Span(elems[0])
	for _, e := range elems[1:] {
		sp = sp.Cover(p.b.Span(e))
	}
	return sp
}

// placeholder synthesises an empty node of kind at the current token.
func (p *Parser) placeholder(kind ast.Kind) ast.NodeID {
	p.corrupt = true
	return p.b.New(kind, p.emptyAt(p.tok.Span.Start), make([]ast.NodeID, max(kind.NumSlots(), 0))...)
}

func (p *Parser) missingExpr() ast.NodeID { return p.placeholder(ast.MissingExpr) }

// Report implements diag.Reporter for parser diagnostics. A second syntax
// error at the same offset is dropped, and a syntax error during
// speculation marks the attempt as failed. Dialect errors describe well
// formed input and pass through both rules.
func (p *Parser) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if sev >= diag.SevError && !isDialectCode(code) {
		switch p.state {
		case StateRecovering:
			return
		case StateSpeculating:
			p.specFailed = true
			return
		}
		if int64(primary.Start) == p.lastErrOff {
			return
		}
		p.lastErrOff = int64(primary.Start)
	}
	p.bag.Add(diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func isDialectCode(c diag.Code) bool {
	return c >= diag.DialectTypeSyntax && c <= diag.DialectStrictMode
}

func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(p, code, sp, msg)
}

// fail reports an error and marks the tree corrupt.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	p.corrupt = true
	p.errorAt(code, sp, msg).Emit()
}

// unexpected reports the current token as out of place.
func (p *Parser) unexpected(code diag.Code, want string) {
	p.fail(code, p.errSpan(), fmt.Sprintf("expected %s, found %s", want, describe(p.tok)))
}

// feature records that the file uses an extension and reports it when the
// dialect does not enable it.
func (p *Parser) feature(k dialect.Kind, sp source.Span, what string) {
	p.ev.Add(dialect.Hint{Dialect: k, Score: 3, Reason: what, Span: sp})
	if p.cfg.Enabled(k) || (k == dialect.TypeScript && p.typeDepth > 0) {
		return
	}
	code := diag.DialectTypeSyntax
	switch k {
	case dialect.JSX:
		code = diag.DialectJSX
	case dialect.Decorators:
		code = diag.DialectDecorators
	}
	p.errorAt(code, sp, what+" is not allowed in this file").
		WithNote(sp, k.Advice()).
		Emit()
}

func (p *Parser) typeSyntax(sp source.Span, what string) { p.feature(dialect.TypeScript, sp, what) }

func (p *Parser) tracePoint(name, detail string) {
	trace.Point(p.tracer, trace.ScopeNode, name, detail, p.span.ID())
}

// describe names a token for messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.NumericLit:
		return "number " + tok.Text
	case token.StringLit, token.JSXString:
		return "string " + tok.Text
	case token.RegexLit:
		return "regular expression"
	case token.NoSubstTemplate, token.TemplateHead, token.TemplateMiddle, token.TemplateTail:
		return "template literal"
	case token.PrivateName:
		return "private name " + tok.Text
	case token.JSXText:
		return "JSX text"
	case token.Invalid:
		return fmt.Sprintf("'%s'", tok.Text)
	}
	if tok.Kind.IsKeyword() {
		return fmt.Sprintf("keyword '%s'", tok.Kind)
	}
	return fmt.Sprintf("'%s'", tok.Kind)
}
