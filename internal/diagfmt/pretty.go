package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"esfront/internal/diag"
	"esfront/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note, fix       *color.Color
	added, removed  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.FgMagenta),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgRed, color.Bold),
		note:    color.New(color.FgCyan),
		fix:     color.New(color.FgGreen),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.fix, p.added, p.removed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in human-readable form, in bag order (call
// bag.Sort first). Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE> [<category>]: <message>
//
// followed by the source line with a ^~~~ underline, then notes and fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pr := prettyPrinter{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		pr.diagnostic(d)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostics not shown\n", dropped)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
}

func (pr *prettyPrinter) location(sp source.Span) string {
	f := pr.fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := pr.fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, pr.opts.PathMode, pr.opts.BaseDir), start.Line, start.Col)
}

func (pr *prettyPrinter) diagnostic(d diag.Diagnostic) {
	sev := pr.pal.severity(d.Severity)
	fmt.Fprintf(pr.w, "%s: %s %s [%s]: %s\n",
		pr.pal.path.Sprint(pr.location(d.Primary)),
		sev.Sprint(d.Severity.String()),
		pr.pal.code.Sprint(d.Code.ID()),
		d.Code.Category(),
		d.Message,
	)
	pr.snippet(d.Primary, pr.opts.Context)

	if pr.opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(pr.w, "  %s %s: %s\n", pr.pal.note.Sprint("note:"), pr.location(n.Span), n.Msg)
			pr.snippet(n.Span, 0)
		}
	}
	if pr.opts.ShowFixes {
		pr.fixes(d)
	}
}

func (pr *prettyPrinter) fixes(d diag.Diagnostic) {
	ctx := diag.FixBuildContext{FileSet: pr.fs}
	for i, f := range d.Fixes {
		label := pr.pal.fix.Sprintf("fix #%d:", i+1)
		resolved, err := f.Resolve(ctx)
		if err != nil {
			fmt.Fprintf(pr.w, "  %s %s (unavailable: %v)\n", label, f.Title, err)
			continue
		}
		line := fmt.Sprintf("  %s %s [%s", label, resolved.Title, resolved.Applicability)
		if resolved.IsPreferred {
			line += ", preferred"
		}
		line += "]"
		if resolved.ID != "" {
			line += " id=" + resolved.ID
		}
		fmt.Fprintln(pr.w, line)
		for _, edit := range resolved.Edits {
			start, _ := pr.fs.Resolve(edit.Span)
			fmt.Fprintf(pr.w, "      apply=%q at %d:%d\n", edit.NewText, start.Line, start.Col)
			if !pr.opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(pr.fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(pr.w, "      preview:")
			for _, l := range preview.before {
				fmt.Fprintf(pr.w, "        %s\n", pr.pal.removed.Sprint("- "+l))
			}
			for _, l := range preview.after {
				fmt.Fprintf(pr.w, "        %s\n", pr.pal.added.Sprint("+ "+l))
			}
		}
	}
}

// snippet prints the line holding sp.Start, up to context lines before it,
// and an underline measured in display columns.
func (pr *prettyPrinter) snippet(sp source.Span, context int8) {
	f := pr.fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 && sp.Start == 0 {
		return
	}
	start, end := pr.fs.Resolve(sp)
	first := start.Line
	if context > 0 && uint32(context) < first {
		first -= uint32(context)
	} else if context > 0 {
		first = 1
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	blank := strings.Repeat(" ", gutterWidth)

	for ln := first; ln <= start.Line; ln++ {
		text := f.GetLine(ln)
		if pr.opts.Width > 0 && runewidth.StringWidth(text) > int(pr.opts.Width) {
			text = runewidth.Truncate(text, int(pr.opts.Width), "…")
		}
		fmt.Fprintf(pr.w, " %s %s\n", pr.pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.GetLine(start.Line)
	col := int(start.Col - 1)
	col = min(col, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col-1), len(line))
	}
	stop = max(stop, col)

	// Tabs stay tabs so the underline lines up with the printed source.
	var pad strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(line[col:stop]), 1)
	mark := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(pr.w, " %s %s%s\n", pr.pal.gutter.Sprint(blank+" |"), pad.String(), pr.pal.caret.Sprint(mark))
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.Path
	}
}
