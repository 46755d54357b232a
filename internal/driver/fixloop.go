package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"esfront/internal/fix"
	"esfront/internal/source"
)

// DefaultFixRounds bounds reparse-and-fix iterations in fix.ModeAll.
const DefaultFixRounds = 8

type FixOptions struct {
	Options
	Fix fix.Options
	// Rounds bounds iterations; zero means DefaultFixRounds. ModeOnce and
	// ModeID always stop after one round.
	Rounds int
}

// FixOutcome is the result of fixing one buffer.
type FixOutcome struct {
	Path    string
	Before  []byte
	After   []byte
	Applied []fix.Applied
	Skipped []fix.Skipped
	Rounds  int
	// Final is the parse of After.
	Final *FileResult
}

// Changed reports whether any fix was applied.
func (o *FixOutcome) Changed() bool {
	return o != nil && !bytes.Equal(o.Before, o.After)
}

// FixSource applies fixes to an in-memory buffer. Fixes that insert a
// missing token often unblock further recovery, so in ModeAll the buffer
// is reparsed and fixed again until nothing applies. It returns
// fix.ErrNoFixes when the first round applied nothing.
func FixSource(path string, src []byte, opts FixOptions) (*FixOutcome, error) {
	rounds := opts.Rounds
	if rounds <= 0 {
		rounds = DefaultFixRounds
	}
	if opts.Fix.Mode != fix.ModeAll {
		rounds = 1
	}
	current, _ := source.Normalize(src)
	out := &FixOutcome{Path: path, Before: current, After: current}

	var res *FileResult
	for out.Rounds < rounds {
		res = ParseSource(path, out.After, opts.Options)
		plan, err := fix.Plan(res.FileSet, res.Diagnostics.Items(), opts.Fix)
		if plan != nil {
			// A fix skipped in one round is offered again by the next parse,
			// so only the latest round's skips describe the buffer.
			out.Skipped = plan.Skipped
		}
		if errors.Is(err, fix.ErrNoFixes) {
			break
		}
		if err != nil {
			return out, err
		}
		out.Rounds++
		out.Applied = append(out.Applied, plan.Applied...)
		next := plan.Files[0].After
		if bytes.Equal(next, out.After) {
			break
		}
		out.After = next
		res = nil
	}
	if res == nil {
		res = ParseSource(path, out.After, opts.Options)
	}
	out.Final = res
	if len(out.Applied) == 0 {
		return out, fix.ErrNoFixes
	}
	return out, nil
}

// FixFile fixes path and, when write is set, stores the result with the
// file's original BOM and line endings restored.
func FixFile(path string, opts FixOptions, write bool) (*FixOutcome, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	out, err := FixSource(path, raw, opts)
	if err != nil || !write || !out.Changed() {
		return out, err
	}
	_, flags := source.Normalize(raw)
	if err := fix.WriteFile(path, denormalize(out.After, flags)); err != nil {
		return out, err
	}
	return out, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func denormalize(content []byte, flags source.FileFlags) []byte {
	if flags&source.FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if flags&source.FileHadBOM != 0 {
		content = append(bytes.Clone(utf8BOM), content...)
	}
	return content
}
