package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"esfront/internal/directive"
)

type DirectiveJSON struct {
	Kind       string   `json:"kind"`
	Line       uint32   `json:"line"`
	TargetLine uint32   `json:"target_line,omitempty"`
	FileWide   bool     `json:"file_wide,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Start      uint32   `json:"start"`
	End        uint32   `json:"end"`
}

// FormatDirectives lists suppression comments, as text or as a JSON array.
func FormatDirectives(w io.Writer, dirs []directive.Directive, asJSON bool) error {
	if asJSON {
		out := make([]DirectiveJSON, 0, len(dirs))
		for _, d := range dirs {
			out = append(out, DirectiveJSON{
				Kind:       d.Kind.String(),
				Line:       d.Line,
				TargetLine: d.TargetLine,
				FileWide:   d.FileWide(),
				Categories: d.Categories,
				Reason:     d.Reason,
				Start:      d.Span.Start,
				End:        d.Span.End,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, d := range dirs {
		target := fmt.Sprintf("line %d", d.TargetLine)
		if d.FileWide() {
			target = "file"
		}
		cats := "*"
		if len(d.Categories) > 0 {
			cats = strings.Join(d.Categories, ",")
		}
		line := fmt.Sprintf("%4d: %-26s %-10s %s", d.Line, d.Kind, target, cats)
		if d.Reason != "" {
			line += "  -- " + d.Reason
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
