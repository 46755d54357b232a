package driver

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"esfront/internal/diag"
	"esfront/internal/dialect"
	"esfront/internal/directive"
	"esfront/internal/observ"
	"esfront/internal/parser"
	"esfront/internal/source"
	"esfront/internal/trace"
)

// Options control a single-file parse.
type Options struct {
	// MaxDiagnostics caps each file's bag; zero uses the config or the
	// parser default.
	MaxDiagnostics int
	// NoSuppress reports diagnostics even when a directive covers them.
	NoSuppress bool
	// Timings appends an observ/timings diagnostic to each result.
	Timings bool
	Tracer  trace.Tracer
	// Timer, when set, receives every file's phases in addition to the
	// per-file timings.
	Timer  *observ.Timer
	Logger logrus.FieldLogger
	// Config supplies dialect overrides; nil means defaults.
	Config *Config
	// Dialect, when set, replaces the configuration derived from the path.
	Dialect *dialect.Config
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics != 0 {
		return o.MaxDiagnostics
	}
	if o.Config != nil && o.Config.Parse.MaxDiagnostics > 0 {
		return o.Config.Parse.MaxDiagnostics
	}
	return parser.DefaultMaxDiagnostics
}

func (o Options) dialectFor(path string) dialect.Config {
	if o.Dialect != nil {
		return *o.Dialect
	}
	return o.Config.DialectFor(path)
}

func (o Options) suppress() bool {
	return !o.NoSuppress && o.Config.SuppressEnabled()
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

var discardLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}()

// FileResult is the outcome of checking one file. It owns its FileSet and
// is not modified after it is returned.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	// Parse is nil when the file failed to load or came from the cache.
	Parse       *parser.Result
	Dialect     dialect.Config
	Diagnostics *diag.Bag
	// Unused lists '@ts-expect-error' directives that suppressed nothing.
	Unused  []directive.Directive
	Corrupt bool
	Cached  bool
	Elapsed time.Duration
}

// HasErrors reports whether any kept diagnostic is an error.
func (r *FileResult) HasErrors() bool {
	return r != nil && r.Diagnostics != nil && r.Diagnostics.HasErrors()
}

// ParseSource parses an in-memory buffer stored as a virtual file.
func ParseSource(path string, src []byte, opts Options) *FileResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, src)
	return parseLoaded(fs, fs.Get(id), opts)
}

// ParseFile loads path from disk and parses it.
func ParseFile(path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return parseLoaded(fs, fs.Get(id), opts), nil
}

func parseLoaded(fs *source.FileSet, file *source.File, opts Options) *FileResult {
	started := time.Now()
	cfg := opts.dialectFor(file.Path)

	timer := opts.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	res := parser.Parse(file, cfg, parser.Options{
		MaxDiagnostics: opts.maxDiagnostics(),
		Tracer:         opts.Tracer,
		Timer:          timer,
	})

	out := &FileResult{
		Path:        file.Path,
		FileSet:     fs,
		File:        file,
		Parse:       res,
		Dialect:     cfg,
		Corrupt:     res.Corrupt,
	}
	// The parse result keeps its bag in insertion order; sorting and the
	// timings entry work on a copy.
	if opts.suppress() {
		out.Diagnostics, out.Unused = suppress(file, res)
	} else {
		out.Diagnostics = res.Diagnostics.Clone()
	}
	out.Diagnostics.Sort()
	out.Elapsed = time.Since(started)

	if opts.Timings {
		report := timer.Report()
		appendTimingDiagnostic(out.Diagnostics, timingPayload{
			Kind:    "parse",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
		if opts.Timer != nil {
			for _, p := range report.Phases {
				opts.Timer.Record(p.Name, time.Duration(p.DurationMS*float64(time.Millisecond)))
			}
		}
	}

	opts.logger().WithFields(logrus.Fields{
		"path":        file.Path,
		"dialect":     cfg.String(),
		"diagnostics": out.Diagnostics.Len(),
		"corrupt":     out.Corrupt,
		"elapsed":     out.Elapsed,
	}).Debug("parsed")
	return out
}

// suppress filters the parse diagnostics through the file's directives and
// reports '@ts-expect-error' comments that matched nothing.
func suppress(file *source.File, res *parser.Result) (*diag.Bag, []directive.Directive) {
	kept, unused := directive.Suppress(file, res.Diagnostics.Items(), res.Directives)
	bag := diag.NewBag(max(res.Diagnostics.Cap(), len(kept)+len(unused)))
	for _, d := range kept {
		bag.Add(d)
	}
	for _, dir := range unused {
		bag.Add(diag.New(diag.SevWarning, diag.DirMisplaced, dir.Span,
			"unused '@ts-expect-error' directive: no error on the next line"))
	}
	if dropped := res.Diagnostics.Dropped(); dropped > 0 {
		bag.AddDropped(dropped)
	}
	return bag, unused
}
