package directive

import (
	"esfront/internal/diag"
	"esfront/internal/source"
)

// Suppress drops diagnostics covered by a directive. Diagnostics of the
// directive family itself are never dropped. The second result lists
// '@ts-expect-error' directives that matched nothing.
func Suppress(file *source.File, diags []diag.Diagnostic, dirs []Directive) (kept []diag.Diagnostic, unused []Directive) {
	if len(dirs) == 0 {
		return diags, nil
	}
	used := make([]bool, len(dirs))
	kept = make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if isDirectiveCode(d.Code) {
			kept = append(kept, d)
			continue
		}
		line := file.LineOf(d.Primary.Start)
		covered := false
		for i, dir := range dirs {
			if dir.Covers(line, d.Code) {
				used[i] = true
				covered = true
			}
		}
		if !covered {
			kept = append(kept, d)
		}
	}
	for i, dir := range dirs {
		if dir.Kind == TSExpectError && !used[i] {
			unused = append(unused, dir)
		}
	}
	return kept, unused
}

func isDirectiveCode(c diag.Code) bool {
	return c >= diag.DirUnknownVerb && c <= diag.DirMisplaced
}
