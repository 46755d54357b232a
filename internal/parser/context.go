package parser

// context tracks what the current position is nested in. Function and
// class boundaries save and restore it.
type context struct {
	strict     bool
	topLevel   bool
	inFunction bool
	async      bool
	generator  bool
	inLoop     bool
	inSwitch   bool
	inClass    bool
	// noIn disables the 'in' operator inside a for-statement head.
	noIn bool
	// inCondCons is set in the consequent of '?:', where '(a): b => c'
	// is an arrow function with a return type only if a ':' follows it.
	inCondCons bool
	// ambient is set inside 'declare' and .d.ts code, where bodies are optional.
	ambient bool
	// inNamespace allows export declarations in a namespace body of a script.
	inNamespace bool
	labels      []label
}

type label struct {
	name string
	loop bool
}

func (c *context) hasLabel(name string) (label, bool) {
	for i := len(c.labels) - 1; i >= 0; i-- {
		if c.labels[i].name == name {
			return c.labels[i], true
		}
	}
	return label{}, false
}

// enterFunction returns the saved context; callers restore it with
// p.ctx = saved.
func (p *Parser) enterFunction(async, generator bool) context {
	saved := p.ctx
	p.ctx.inFunction = true
	p.ctx.topLevel = false
	p.ctx.async = async
	p.ctx.generator = generator
	p.ctx.inLoop = false
	p.ctx.inSwitch = false
	p.ctx.noIn = false
	p.ctx.inCondCons = false
	p.ctx.labels = nil
	return saved
}

// awaitAllowed reports whether 'await' is an operator here: inside async
// functions and at module top level.
func (p *Parser) awaitAllowed() bool {
	return p.ctx.async || (p.ctx.topLevel && p.cfg.Module)
}
