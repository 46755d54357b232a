package fix

import (
	"esfront/internal/diag"
	"esfront/internal/source"
)

// Option adjusts a fix while it is built.
type Option func(*diag.Fix)

func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) { f.Applicability = app }
}

func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) { f.Kind = kind }
}

// WithID gives the fix a stable identifier for 'esfront fix --id'.
func WithID(id string) Option {
	return func(f *diag.Fix) { f.ID = id }
}

func Preferred() Option {
	return func(f *diag.Fix) { f.IsPreferred = true }
}

func build(title string, edits []diag.TextEdit, opts []Option) diag.Fix {
	f := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         edits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// Insert adds text at offset off of file.
func Insert(title string, file source.FileID, off uint32, text string, opts ...Option) diag.Fix {
	return build(title, []diag.TextEdit{{
		Span:    source.Span{File: file, Start: off, End: off},
		NewText: text,
	}}, opts)
}

// Delete removes span; expect, when set, guards against stale content.
func Delete(title string, span source.Span, expect string, opts ...Option) diag.Fix {
	return build(title, []diag.TextEdit{{Span: span, OldText: expect}}, opts)
}

// Replace swaps the text of span for text.
func Replace(title string, span source.Span, text, expect string, opts ...Option) diag.Fix {
	return build(title, []diag.TextEdit{{Span: span, NewText: text, OldText: expect}}, opts)
}

// Parenthesize wraps span in '(' and ')'. Grouping changes how a reader
// sees the expression, so it is not applied by 'fix --all' unless unsafe
// fixes are allowed.
func Parenthesize(title string, span source.Span, opts ...Option) diag.Fix {
	edits := []diag.TextEdit{
		{Span: source.Span{File: span.File, Start: span.Start, End: span.Start}, NewText: "("},
		{Span: source.Span{File: span.File, Start: span.End, End: span.End}, NewText: ")"},
	}
	opts = append([]Option{
		WithKind(diag.FixKindRewrite),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
	}, opts...)
	return build(title, edits, opts)
}
