package diagfmt

import (
	"encoding/json"
	"io"
	"slices"

	"esfront/internal/diag"
	"esfront/internal/source"
)

// RangeJSON is a byte range with optional 1-based positions.
type RangeJSON struct {
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// AdviceJSON is a secondary range with a message.
type AdviceJSON struct {
	Message string    `json:"message"`
	File    string    `json:"file,omitempty"`
	Range   RangeJSON `json:"range"`
}

type FixEditJSON struct {
	File        string    `json:"file"`
	Range       RangeJSON `json:"range"`
	NewText     string    `json:"new_text"`
	OldText     string    `json:"old_text,omitempty"`
	BeforeLines []string  `json:"before_lines,omitempty"`
	AfterLines  []string  `json:"after_lines,omitempty"`
}

type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	BuildError    string        `json:"build_error,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON is the wire shape of one diagnostic.
type DiagnosticJSON struct {
	Category string       `json:"category"`
	Code     string       `json:"code"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	File     string       `json:"file"`
	Range    RangeJSON    `json:"range"`
	Advice   []AdviceJSON `json:"advice,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	// Dropped counts diagnostics the bag discarded at its cap.
	Dropped int `json:"dropped,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) path(id source.FileID) string {
	f := b.fs.Get(id)
	if f == nil {
		return ""
	}
	return formatPath(f, b.opts.PathMode, b.opts.BaseDir)
}

func (b jsonBuilder) rng(sp source.Span) RangeJSON {
	r := RangeJSON{Start: sp.Start, End: sp.End}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(sp)
		r.StartLine, r.StartCol = start.Line, start.Col
		r.EndLine, r.EndCol = end.Line, end.Col
	}
	return r
}

// BuildDiagnosticsOutput assembles the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	b := jsonBuilder{fs: fs, opts: opts}
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Dropped:     bag.Dropped(),
	}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	dj := DiagnosticJSON{
		Category: d.Code.Category(),
		Code:     d.Code.ID(),
		Severity: d.Severity.Wire(),
		Message:  d.Message,
		File:     b.path(d.Primary.File),
		Range:    b.rng(d.Primary),
	}
	// Timing notes are the payload of the diagnostic, not advice.
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			a := AdviceJSON{Message: n.Msg, Range: b.rng(n.Span)}
			if n.Span.File != d.Primary.File {
				a.File = b.path(n.Span.File)
			}
			dj.Advice = append(dj.Advice, a)
		}
	}
	if b.opts.IncludeFixes && len(d.Fixes) > 0 {
		dj.Fixes = b.fixes(d.Fixes)
	}
	return dj
}

// fixes lists preferred and safer fixes first.
func (b jsonBuilder) fixes(fixes []diag.Fix) []FixJSON {
	sorted := slices.Clone(fixes)
	slices.SortStableFunc(sorted, func(x, y diag.Fix) int {
		switch {
		case x.IsPreferred != y.IsPreferred:
			if x.IsPreferred {
				return -1
			}
			return 1
		case x.Applicability != y.Applicability:
			return int(x.Applicability) - int(y.Applicability)
		case x.Kind != y.Kind:
			return int(x.Kind) - int(y.Kind)
		}
		return 0
	})

	ctx := diag.FixBuildContext{FileSet: b.fs}
	out := make([]FixJSON, 0, len(sorted))
	for _, f := range sorted {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			resolved = f
		}
		fj := FixJSON{
			ID:            resolved.ID,
			Title:         resolved.Title,
			Kind:          resolved.Kind.String(),
			Applicability: resolved.Applicability.String(),
			IsPreferred:   resolved.IsPreferred,
		}
		if err != nil {
			fj.BuildError = err.Error()
			out = append(out, fj)
			continue
		}
		for _, e := range resolved.Edits {
			ej := FixEditJSON{
				File:    b.path(e.Span.File),
				Range:   b.rng(e.Span),
				NewText: e.NewText,
				OldText: e.OldText,
			}
			if b.opts.IncludePreviews {
				if p, err := buildFixEditPreview(b.fs, e); err == nil {
					ej.BeforeLines, ej.AfterLines = p.before, p.after
				}
			}
			fj.Edits = append(fj.Edits, ej)
		}
		out = append(out, fj)
	}
	return out
}

// Unit pairs a bag with the FileSet its spans refer to. Batch output takes
// one unit per file since every file is parsed in its own FileSet.
type Unit struct {
	Bag     *diag.Bag
	FileSet *source.FileSet
}

// JSONUnits writes the diagnostics of several files as one document. Max
// applies to the combined list.
func JSONUnits(w io.Writer, units []Unit, opts JSONOpts) error {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, u := range units {
		if u.Bag == nil || u.FileSet == nil {
			continue
		}
		part := BuildDiagnosticsOutput(u.Bag, u.FileSet, opts)
		out.Diagnostics = append(out.Diagnostics, part.Diagnostics...)
		out.Dropped += part.Dropped
	}
	if opts.Max > 0 && opts.Max < len(out.Diagnostics) {
		out.Dropped += len(out.Diagnostics) - opts.Max
		out.Diagnostics = out.Diagnostics[:opts.Max]
	}
	out.Count = len(out.Diagnostics)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// JSON writes the diagnostics of bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
