package fix

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"esfront/internal/diag"
	"esfront/internal/source"
)

// ErrNoFixes is returned when nothing could be applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Mode selects which fixes Plan applies.
type Mode uint8

const (
	ModeOnce Mode = iota // the first applicable fix
	ModeAll              // every fix at or above the safety threshold
	ModeID               // the fix with Options.ID
)

type Options struct {
	Mode Mode
	ID   string
	// Unsafe lets ModeAll apply fixes that are only safe with heuristics.
	// Manual-review fixes are never applied in bulk.
	Unsafe bool
	// Codes restricts fixes to diagnostics with these codes when non-empty.
	Codes []diag.Code
}

type Applied struct {
	ID    string
	Title string
	Code  diag.Code
	Path  string
	Edits int
}

type Skipped struct {
	ID     string
	Title  string
	Reason string
}

// FileResult is the new content of one edited buffer.
type FileResult struct {
	File    source.FileID
	Path    string
	Virtual bool
	Before  []byte
	After   []byte
	Edits   int
}

type Result struct {
	Applied []Applied
	Skipped []Skipped
	Files   []FileResult
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Plan selects fixes from diagnostics and computes the edited buffers. It
// touches no files; see Result.Write. All edit spans refer to the buffers
// as stored in fs, so edits from one parse can be combined freely as long
// as they do not overlap.
func Plan(fs *source.FileSet, diagnostics []diag.Diagnostic, opts Options) (*Result, error) {
	res := &Result{}
	if fs == nil {
		return res, errors.New("fix: nil FileSet")
	}
	cands, skips := gather(fs, diagnostics, opts.Codes)
	res.Skipped = append(res.Skipped, skips...)
	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.diag.Primary.File, b.diag.Primary.File),
			cmp.Compare(a.diag.Primary.Start, b.diag.Primary.Start),
			cmp.Compare(a.order, b.order),
		)
	})

	selected, skips := selectFixes(cands, opts)
	res.Skipped = append(res.Skipped, skips...)
	if len(selected) == 0 {
		return res, ErrNoFixes
	}
	res.apply(fs, selected)
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}
	return res, nil
}

// gather materialises fixes and gives each a stable ID of the form
// 'SYN2009@3:9'. A diagnostic reported twice contributes its fixes once.
func gather(fs *source.FileSet, diagnostics []diag.Diagnostic, codes []diag.Code) ([]candidate, []Skipped) {
	var cands []candidate
	var skips []Skipped
	seen := make(map[string]bool)
	same := make(map[string]bool)
	ctx := diag.FixBuildContext{FileSet: fs}
	for _, d := range diagnostics {
		if len(d.Fixes) == 0 || (len(codes) > 0 && !slices.Contains(codes, d.Code)) {
			continue
		}
		resolved, err := diag.MaterializeFixes(ctx, d.Fixes)
		if err != nil {
			skips = append(skips, Skipped{Title: d.Message, Reason: err.Error()})
			continue
		}
		for i, f := range resolved {
			if f.ID == "" {
				f.ID = fixID(fs, d, i)
			}
			key := fixKey(d, f)
			switch {
			case same[key]:
				continue
			case len(f.Edits) == 0:
				skips = append(skips, Skipped{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			case seen[f.ID]:
				skips = append(skips, Skipped{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = true
			same[key] = true
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

// fixKey identifies a fix by its diagnostic and its edits.
func fixKey(d diag.Diagnostic, f diag.Fix) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d@%d:%d-%d", d.Code, d.Primary.File, d.Primary.Start, d.Primary.End)
	for _, e := range f.Edits {
		fmt.Fprintf(&b, "|%d:%d-%d=%q", e.Span.File, e.Span.Start, e.Span.End, e.NewText)
	}
	return b.String()
}

func fixID(fs *source.FileSet, d diag.Diagnostic, idx int) string {
	start, _ := fs.Resolve(d.Primary)
	id := fmt.Sprintf("%s@%d:%d", d.Code.ID(), start.Line, start.Col)
	if idx > 0 {
		id += fmt.Sprintf("#%d", idx)
	}
	return id
}

func selectFixes(cands []candidate, opts Options) ([]candidate, []Skipped) {
	switch opts.Mode {
	case ModeID:
		for _, c := range cands {
			if c.fix.ID != opts.ID {
				continue
			}
			if c.fix.RequiresAll {
				return nil, []Skipped{{ID: c.fix.ID, Title: c.fix.Title, Reason: "fix must be applied together with the others"}}
			}
			return []candidate{c}, nil
		}
		return nil, []Skipped{{ID: opts.ID, Reason: "fix id not found"}}

	case ModeAll:
		limit := diag.FixApplicabilityAlwaysSafe
		if opts.Unsafe {
			limit = diag.FixApplicabilitySafeWithHeuristics
		}
		var selected []candidate
		var skipped []Skipped
		for _, c := range cands {
			if c.fix.Applicability <= limit {
				selected = append(selected, c)
				continue
			}
			skipped = append(skipped, Skipped{ID: c.fix.ID, Title: c.fix.Title, Reason: "applicability is " + c.fix.Applicability.String()})
		}
		return selected, skipped

	default:
		var fallback *candidate
		var skipped []Skipped
		for i := range cands {
			c := cands[i]
			switch {
			case c.fix.RequiresAll:
				skipped = append(skipped, Skipped{ID: c.fix.ID, Title: c.fix.Title, Reason: "fix must be applied together with the others"})
			case c.fix.Applicability == diag.FixApplicabilityAlwaysSafe:
				return []candidate{c}, skipped
			case fallback == nil && c.fix.Applicability != diag.FixApplicabilityManualReview:
				fallback = &cands[i]
			}
		}
		if fallback != nil {
			return []candidate{*fallback}, skipped
		}
		return nil, skipped
	}
}

type acceptedEdit struct {
	diag.TextEdit
	seq int
}

// apply accepts candidates in order, skipping any that overlap an earlier
// one or whose guard text no longer matches, then rewrites each buffer
// back to front.
func (r *Result) apply(fs *source.FileSet, selected []candidate) {
	accepted := make(map[source.FileID][]acceptedEdit)
	var order []source.FileID
	seq := 0
	for _, c := range selected {
		if reason := check(fs, accepted, c.fix.Edits); reason != "" {
			r.Skipped = append(r.Skipped, Skipped{ID: c.fix.ID, Title: c.fix.Title, Reason: reason})
			continue
		}
		for _, e := range c.fix.Edits {
			if _, seen := accepted[e.Span.File]; !seen {
				order = append(order, e.Span.File)
			}
			accepted[e.Span.File] = append(accepted[e.Span.File], acceptedEdit{TextEdit: e, seq: seq})
			seq++
		}
		r.Applied = append(r.Applied, Applied{
			ID:    c.fix.ID,
			Title: c.fix.Title,
			Code:  c.diag.Code,
			Path:  fs.Get(c.diag.Primary.File).Path,
			Edits: len(c.fix.Edits),
		})
	}

	for _, id := range order {
		file := fs.Get(id)
		edits := accepted[id]
		// Equal starts are insertions at one point; the earlier fix keeps
		// its text first.
		slices.SortFunc(edits, func(a, b acceptedEdit) int {
			return cmp.Or(cmp.Compare(b.Span.Start, a.Span.Start), cmp.Compare(b.seq, a.seq))
		})
		out := slices.Clone(file.Content)
		for _, e := range edits {
			out = slices.Concat(out[:e.Span.Start], []byte(e.NewText), out[e.Span.End:])
		}
		r.Files = append(r.Files, FileResult{
			File:    id,
			Path:    file.Path,
			Virtual: file.Flags&source.FileVirtual != 0,
			Before:  file.Content,
			After:   out,
			Edits:   len(edits),
		})
	}
	slices.SortFunc(r.Files, func(a, b FileResult) int { return cmp.Compare(a.Path, b.Path) })
}

func check(fs *source.FileSet, accepted map[source.FileID][]acceptedEdit, edits []diag.TextEdit) string {
	for i, e := range edits {
		file := fs.Get(e.Span.File)
		if file == nil {
			return "edit targets an unknown file"
		}
		if e.Span.End < e.Span.Start || e.Span.End > file.Len() {
			return "edit span out of range"
		}
		if e.OldText != "" && file.Slice(e.Span) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range accepted[e.Span.File] {
			if overlaps(prev.TextEdit, e) {
				return "conflicts with an earlier fix"
			}
		}
		for _, other := range edits[:i] {
			if other.Span.File == e.Span.File && overlaps(other, e) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// overlaps treats spans as half-open. Two insertions never overlap; an
// insertion overlaps a replacement when it falls inside it.
func overlaps(a, b diag.TextEdit) bool {
	as, ae, bs, be := a.Span.Start, a.Span.End, b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs <= as && as < be
	case bs == be:
		return as <= bs && bs < ae
	}
	return as < be && bs < ae
}

// Write stores every edited file that came from disk, keeping its mode,
// and returns the written paths. Virtual buffers are left to the caller.
func (r *Result) Write() ([]string, error) {
	var written []string
	for _, f := range r.Files {
		if f.Virtual {
			continue
		}
		if err := WriteFile(f.Path, f.After); err != nil {
			return written, err
		}
		written = append(written, f.Path)
	}
	return written, nil
}

// WriteFile replaces path with data, keeping the existing mode. The data is
// written to a temp file in the same directory and renamed over path, so a
// failed write never leaves a truncated source behind.
func WriteFile(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".fix-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
