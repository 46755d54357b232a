package parser

import (
	"strconv"

	"esfront/internal/ast"
	"esfront/internal/attach"
	"esfront/internal/diag"
	"esfront/internal/dialect"
	"esfront/internal/directive"
	"esfront/internal/lexer"
	"esfront/internal/observ"
	"esfront/internal/source"
	"esfront/internal/token"
	"esfront/internal/trace"
)

// DefaultMaxDiagnostics caps the diagnostics kept for one file.
const DefaultMaxDiagnostics = 500

// maxDepth bounds nesting of statements, expressions, types and JSX.
const maxDepth = 400

type Options struct {
	// MaxDiagnostics caps the bag; zero means DefaultMaxDiagnostics and a
	// negative value means unlimited.
	MaxDiagnostics int
	// Tracer receives pass-level spans and, at debug level, recovery events.
	Tracer trace.Tracer
	// Timer, when set, records lex+parse, attach and directive phases.
	Timer *observ.Timer
}

// Result is everything one parse produces. It is immutable once returned
// and safe to share between goroutines.
type Result struct {
	File        *source.File
	Tree        *ast.Tree
	Root        ast.NodeID
	Diagnostics *diag.Bag
	// Corrupt is set when the parser had to recover: it skipped tokens or
	// synthesised a missing token or node.
	Corrupt    bool
	Dialect    dialect.Config
	Directives []directive.Directive
	// Comments lists every comment in source order.
	Comments []token.Trivia
	// Evidence collects hints about extensions the file appears to use.
	Evidence *dialect.Evidence
}

// State is the recovery state of the parser.
type State uint8

const (
	StateNormal State = iota
	StateRecovering
	StateSpeculating
)

func (s State) String() string {
	switch s {
	case StateRecovering:
		return "recovering"
	case StateSpeculating:
		return "speculating"
	default:
		return "normal"
	}
}

// Parser holds the state for one file.
type Parser struct {
	file *source.File
	lx   *lexer.Lexer
	b    *ast.Builder
	cfg  dialect.Config
	opts Options
	bag  *diag.Bag
	ev   *dialect.Evidence

	tok  token.Token // current lookahead
	prev token.Token // last consumed token

	state      State
	specFailed bool
	corrupt    bool
	depth      int
	tooDeep    bool
	lastErrOff int64

	ctx        context
	assignNest int
	coverInits []source.Span
	// typeDepth is non-zero inside a type; nested annotations do not
	// repeat the dialect error of the outermost one.
	typeDepth int
	jsxDepth  int

	tracer trace.Tracer
	span   *trace.Span
}

// Parse parses one file. It never fails: malformed input yields
// diagnostics, placeholder nodes and Corrupt.
func Parse(file *source.File, cfg dialect.Config, opts Options) *Result {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	span := trace.Begin(tracer, trace.ScopePhase, "parse", 0).WithExtra("path", file.Path)
	defer span.End("")

	maxDiag := opts.MaxDiagnostics
	if maxDiag == 0 {
		maxDiag = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)

	phase := -1
	if opts.Timer != nil {
		phase = opts.Timer.Begin("parse")
	}
	p := &Parser{
		file:       file,
		b:          ast.NewBuilder(file, len(file.Content)/4),
		cfg:        cfg,
		opts:       opts,
		bag:        bag,
		ev:         dialect.NewEvidence(),
		lastErrOff: -1,
		tracer:     tracer,
		span:       span,
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: lexReporter{p}})
	p.ctx.strict = cfg.Module
	p.ctx.topLevel = true
	p.tok = p.lx.Next(lexer.ModeRegex)
	root := p.parseProgram()
	tree := p.b.Finish(root)
	if opts.Timer != nil {
		opts.Timer.End(phase, "")
	}

	comments := collectComments(p.lx.Trivia())

	if opts.Timer != nil {
		phase = opts.Timer.Begin("attach")
	}
	tree = attach.Attach(tree, comments)
	if opts.Timer != nil {
		opts.Timer.End(phase, "")
		phase = opts.Timer.Begin("directives")
	}
	dirs := directive.Scan(file, comments, diag.BagReporter{Bag: bag})
	if opts.Timer != nil {
		opts.Timer.End(phase, "")
	}

	span.WithExtra("diagnostics", strconv.Itoa(bag.Len()))
	return &Result{
		File:        file,
		Tree:        tree,
		Root:        root,
		Diagnostics: bag,
		Corrupt:     p.corrupt,
		Dialect:     cfg,
		Directives:  dirs,
		Comments:    comments,
		Evidence:    p.ev,
	}
}

// lexReporter stores scanner diagnostics. A scanner error means the token
// was repaired, so the tree no longer mirrors the input.
type lexReporter struct{ p *Parser }

func (r lexReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if sev >= diag.SevError {
		r.p.corrupt = true
	}
	diag.BagReporter{Bag: r.p.bag}.Report(code, sev, primary, msg, notes, fixes)
}

func collectComments(trivia []token.Trivia) []token.Trivia {
	out := make([]token.Trivia, 0, len(trivia)/4)
	for _, tr := range trivia {
		if tr.IsComment() {
			out = append(out, tr)
		}
	}
	return out
}

// parseProgram parses the whole buffer. The Program spans the full file so
// leading and trailing comments fall inside it.
func (p *Parser) parseProgram() ast.NodeID {
	sp := source.Span{File: p.file.ID, Start: 0, End: p.file.Len()}
	body := p.parseStatementList(token.EOF, true)
	list := p.b.NewList(p.listSpan(body, sp.ZeroideToStart()), body)
	return p.b.New(ast.Program, sp, list)
}
