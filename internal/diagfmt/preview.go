package diagfmt

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"esfront/internal/diag"
	"esfront/internal/source"
)

// editPreview holds the whole lines touched by an edit, before and after.
type editPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (editPreview, error) {
	if fs == nil {
		return editPreview{}, errors.New("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return editPreview{}, fmt.Errorf("file %d not in FileSet", edit.Span.File)
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return editPreview{}, fmt.Errorf("file too large for preview: %w", err)
	}
	if edit.Span.End < edit.Span.Start || edit.Span.End > size {
		return editPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	from := lineStart(file, startPos.Line)
	to := min(max(lineEnd(file, max(endPos.Line, startPos.Line)), from), size)

	block := file.Content[from:to]
	relStart, relEnd := edit.Span.Start-from, edit.Span.End-from
	after := make([]byte, 0, len(block)+len(edit.NewText))
	after = append(after, block[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, block[relEnd:]...)

	return editPreview{before: previewLines(block), after: previewLines(after)}, nil
}

func previewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

// lineStart is the offset of the first byte of the 1-based line.
func lineStart(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := int(line - 2); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return f.Len()
}

// lineEnd is the offset just past the line terminator of the 1-based line.
func lineEnd(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line - 1); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return f.Len()
}
