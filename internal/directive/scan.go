package directive

import (
	"fmt"
	"strings"

	"esfront/internal/diag"
	"esfront/internal/source"
	"esfront/internal/token"
)

const verbPrefix = "esfront-"

// prefixes is ordered so that longer spellings are tried first.
var prefixes = []struct {
	text string
	kind Kind
}{
	{"esfront-ignore-file", IgnoreFile},
	{"esfront-ignore", Ignore},
	{"@ts-expect-error", TSExpectError},
	{"@ts-ignore", TSIgnore},
	{"eslint-disable-next-line", ESLintDisableNextLine},
	{"eslint-disable-line", ESLintDisableLine},
	{"eslint-disable", ESLintDisable},
}

// Scan recognises directives among comments, which must be in source
// order. Malformed directives are reported as warnings through r.
func Scan(file *source.File, comments []token.Trivia, r diag.Reporter) []Directive {
	r = diag.NewDedupReporter(r)
	var out []Directive
	codeBefore := false
	var last uint32
	for _, c := range comments {
		if !codeBefore && hasCode(file.Content, last, c.Span.Start) {
			codeBefore = true
		}
		last = c.Span.End

		body := commentBody(c)
		if body == "" {
			continue
		}
		d, ok := parseDirective(body, c, r)
		if !ok {
			continue
		}
		d.Span = c.Span
		d.Line = file.LineOf(c.Span.Start)
		switch d.Kind {
		case IgnoreFile, ESLintDisable:
		case ESLintDisableLine:
			d.TargetLine = d.Line
		default:
			d.TargetLine = file.LineOf(c.Span.End) + 1
		}
		if d.Kind == IgnoreFile && codeBefore {
			diag.ReportWarning(r, diag.DirMisplaced, c.Span, "'esfront-ignore-file' must come before any code").
				WithNote(c.Span, "it still applies to the whole file").
				Emit()
		}
		out = append(out, d)
	}
	return out
}

// hasCode reports whether content[from:to] holds anything but whitespace
// or a hashbang line.
func hasCode(content []byte, from, to uint32) bool {
	if to > uint32(len(content)) || from >= to {
		return false
	}
	seg := content[from:to]
	if from == 0 && len(seg) >= 2 && seg[0] == '#' && seg[1] == '!' {
		if nl := strings.IndexByte(string(seg), '\n'); nl >= 0 {
			seg = seg[nl:]
		} else {
			return false
		}
	}
	return strings.TrimSpace(string(seg)) != ""
}

// commentBody strips the delimiters and the leading '*' of doc-style
// block comments.
func commentBody(c token.Trivia) string {
	body := strings.TrimSpace(c.Body())
	if c.Kind == token.TriviaBlockComment {
		body = strings.TrimLeft(body, "* \t\r\n")
	}
	return body
}

func parseDirective(body string, c token.Trivia, r diag.Reporter) (Directive, bool) {
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(body, p.text)
		if !ok || (rest != "" && !isSpace(rest[0])) {
			continue
		}
		return build(p.kind, strings.TrimSpace(rest), c, r), true
	}
	if verb, ok := strings.CutPrefix(body, verbPrefix); ok {
		if i := strings.IndexFunc(verb, func(r rune) bool { return r == ' ' || r == '\t' }); i >= 0 {
			verb = verb[:i]
		}
		diag.ReportWarning(r, diag.DirUnknownVerb, c.Span, fmt.Sprintf("unknown directive '%s%s'", verbPrefix, verb)).
			WithNote(c.Span, "known directives are 'esfront-ignore' and 'esfront-ignore-file'").
			Emit()
	}
	return Directive{}, false
}

func build(kind Kind, rest string, c token.Trivia, r diag.Reporter) Directive {
	d := Directive{Kind: kind}
	switch kind {
	case Ignore, IgnoreFile:
		cat, reason, _ := strings.Cut(rest, " ")
		if cat != "" {
			d.Categories = splitList(cat)
		} else if kind == Ignore {
			diag.ReportWarning(r, diag.DirMissingCategory, c.Span, "'esfront-ignore' needs a diagnostic category").
				WithNote(c.Span, "write e.g. 'esfront-ignore parse/missing-semicolon'").
				Emit()
		}
		d.Reason = strings.TrimSpace(reason)
	case TSIgnore, TSExpectError:
		d.Reason = rest
	default:
		rules, reason, _ := strings.Cut(rest, "--")
		if rules = strings.TrimSpace(rules); rules != "" {
			d.Categories = splitList(rules)
		}
		d.Reason = strings.TrimSpace(reason)
	}
	return d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
