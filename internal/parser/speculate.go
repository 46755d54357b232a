package parser

import (
	"esfront/internal/ast"
	"esfront/internal/lexer"
	"esfront/internal/token"
)

// snapshot is everything a failed speculative parse must undo.
type snapshot struct {
	lx         lexer.Checkpoint
	tok, prev  token.Token
	bag        int
	nodes      ast.BuilderMark
	evidence   int
	corrupt    bool
	lastErrOff int64
	state      State
	specFailed bool
	tooDeep    bool
	depth      int
	ctx        context
	assignNest int
	coverInits int
}

func (p *Parser) save() snapshot {
	return snapshot{
		lx:         p.lx.Checkpoint(),
		tok:        p.tok,
		prev:       p.prev,
		bag:        p.bag.Checkpoint(),
		nodes:      p.b.Mark(),
		evidence:   p.ev.Len(),
		corrupt:    p.corrupt,
		lastErrOff: p.lastErrOff,
		state:      p.state,
		specFailed: p.specFailed,
		tooDeep:    p.tooDeep,
		depth:      p.depth,
		ctx:        p.ctx,
		assignNest: p.assignNest,
		coverInits: len(p.coverInits),
	}
}

func (p *Parser) restore(s snapshot) {
	p.lx.Rewind(s.lx)
	p.tok = s.tok
	p.prev = s.prev
	p.bag.Truncate(s.bag)
	p.b.Reset(s.nodes)
	p.ev.Truncate(s.evidence)
	p.corrupt = s.corrupt
	p.lastErrOff = s.lastErrOff
	p.state = s.state
	p.specFailed = s.specFailed
	p.tooDeep = s.tooDeep
	p.depth = s.depth
	p.ctx = s.ctx
	p.assignNest = s.assignNest
	p.coverInits = p.coverInits[:s.coverInits]
}

// speculate runs fn with errors turned into failure. When fn returns false
// or reports an error, every effect is rolled back and speculate returns
// false.
func (p *Parser) speculate(fn func() bool) bool {
	s := p.save()
	p.state = StateSpeculating
	p.specFailed = false
	ok := fn() && !p.specFailed
	if !ok {
		p.restore(s)
		p.tracePoint("rollback", s.tok.Kind.String())
		return false
	}
	p.state = s.state
	p.specFailed = s.specFailed
	return true
}

// lookahead feeds the tokens after the current one to fn until it returns
// false or input ends, then rewinds the scanner. Scanner diagnostics raised
// on the way are discarded; they come back when the tokens are read for real.
func (p *Parser) lookahead(fn func(token.Token) bool) {
	cp := p.lx.Checkpoint()
	mark := p.bag.Checkpoint()
	corrupt := p.corrupt
	prev := p.tok
	for prev.Kind != token.EOF {
		switch prev.Kind {
		case token.TemplateHead:
			p.lx.PushTemplate()
		case token.TemplateTail:
			p.lx.PopTemplate()
		}
		t := p.lx.Next(lexer.ModeAfter(prev.Kind))
		if !fn(t) {
			break
		}
		prev = t
	}
	p.lx.Rewind(cp)
	p.bag.Truncate(mark)
	p.corrupt = corrupt
}

// peek returns the token after the current one.
func (p *Parser) peek() token.Token {
	var out token.Token
	p.lookahead(func(t token.Token) bool {
		out = t
		return false
	})
	return out
}

// peek2 returns the two tokens after the current one.
func (p *Parser) peek2() (token.Token, token.Token) {
	var a, b token.Token
	n := 0
	p.lookahead(func(t token.Token) bool {
		n++
		if n == 1 {
			a = t
			return true
		}
		b = t
		return false
	})
	if n < 2 {
		b = a
	}
	return a, b
}

// nextOnSameLine reports whether the token after the current one exists
// and has no line break before it.
func (p *Parser) nextOnSameLine() bool {
	t := p.peek()
	return t.Kind != token.EOF && !t.NewlineBefore()
}

// parenThen scans to the ')' matching the next '(' and reports the token
// after it. depth is 1 when the current token is that '(' and 0 when the
// '(' is the next token.
func (p *Parser) parenThen(depth int) token.Token {
	var after token.Token
	closed := false
	p.lookahead(func(t token.Token) bool {
		if closed {
			after = t
			return false
		}
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				if t.Kind != token.RParen {
					return false
				}
				closed = true
			}
		}
		return true
	})
	return after
}
