// Package directive recognises suppression comments such as
// 'esfront-ignore', '@ts-ignore' and 'eslint-disable-next-line'.
//
// Directives are a side list of a parse result. They never change the
// tree; Suppress applies them to a diagnostic list on request.
package directive

import (
	"strings"

	"esfront/internal/diag"
	"esfront/internal/source"
)

// Kind identifies the comment form of a directive.
type Kind uint8

const (
	// Ignore is 'esfront-ignore <category> [reason]' and covers the next line.
	Ignore Kind = iota
	// IgnoreFile is 'esfront-ignore-file [category]'.
	IgnoreFile
	TSIgnore
	TSExpectError
	// ESLintDisable covers the rest of the file.
	ESLintDisable
	ESLintDisableNextLine
	ESLintDisableLine
)

var kindNames = [...]string{
	Ignore:                "esfront-ignore",
	IgnoreFile:            "esfront-ignore-file",
	TSIgnore:              "@ts-ignore",
	TSExpectError:         "@ts-expect-error",
	ESLintDisable:         "eslint-disable",
	ESLintDisableNextLine: "eslint-disable-next-line",
	ESLintDisableLine:     "eslint-disable-line",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Directive is one recognised suppression comment.
type Directive struct {
	Kind Kind
	// Categories narrows the directive to diagnostic categories or rule
	// names; empty means every category.
	Categories []string
	Reason     string
	// Span covers the whole comment.
	Span source.Span
	// TargetLine is the 1-based line the directive applies to. It is zero
	// for the file-wide forms.
	TargetLine uint32
	// Line is the 1-based line of the comment.
	Line uint32
}

// FileWide reports whether the directive covers lines by position rather
// than a single target line.
func (d Directive) FileWide() bool {
	return d.Kind == IgnoreFile || d.Kind == ESLintDisable
}

// Covers reports whether d applies to a diagnostic on line with code.
func (d Directive) Covers(line uint32, code diag.Code) bool {
	switch d.Kind {
	case IgnoreFile:
	case ESLintDisable:
		if line < d.Line {
			return false
		}
	default:
		if line != d.TargetLine {
			return false
		}
	}
	return d.matchesCategory(code)
}

// matchesCategory accepts a category, its prefix up to '/', or the short ID.
func (d Directive) matchesCategory(code diag.Code) bool {
	if len(d.Categories) == 0 {
		return true
	}
	cat := code.Category()
	for _, c := range d.Categories {
		if c == cat || c == code.ID() || strings.HasPrefix(cat, c+"/") {
			return true
		}
	}
	return false
}
