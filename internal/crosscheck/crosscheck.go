// Package crosscheck compares esfront's verdict on a buffer with the
// tree-sitter grammars for JavaScript, TypeScript and TSX. It is a testing
// aid: tree-sitter is more permissive in places, so a disagreement is a
// lead to investigate, not proof of a bug.
package crosscheck

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"esfront/internal/dialect"
	"esfront/internal/driver"
	"esfront/internal/source"
)

// maxErrorDepth bounds the walk for the first tree-sitter error.
const maxErrorDepth = 1000

// Side is one parser's verdict.
type Side struct {
	HasErrors bool `json:"has_errors"`
	// Statements counts top-level statements, comments excluded.
	Statements int `json:"statements"`
	// FirstError is the start of the earliest error, zero when clean.
	FirstError source.LineCol `json:"first_error"`
}

// Report compares both sides for one buffer.
type Report struct {
	Path       string   `json:"path"`
	Grammar    string   `json:"grammar"`
	Esfront    Side     `json:"esfront"`
	TreeSitter Side     `json:"tree_sitter"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// Agree reports whether no mismatch was found.
func (r *Report) Agree() bool { return len(r.Mismatches) == 0 }

// Grammar picks the tree-sitter language matching cfg.
func Grammar(cfg dialect.Config) (*sitter.Language, string) {
	switch {
	case cfg.TypeSyntax && cfg.JSX:
		return tsx.GetLanguage(), "tsx"
	case cfg.TypeSyntax:
		return typescript.GetLanguage(), "typescript"
	default:
		// The JavaScript grammar always accepts JSX.
		return javascript.GetLanguage(), "javascript"
	}
}

// Check parses src with both parsers. Statement counts are only compared
// when both sides are clean, since recovery strategies differ.
func Check(ctx context.Context, path string, src []byte, opts driver.Options) (*Report, error) {
	opts.NoSuppress = true
	res := driver.ParseSource(path, src, opts)
	lang, name := Grammar(res.Dialect)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, res.File.Content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned no root for %s", path)
	}

	report := &Report{Path: res.Path, Grammar: name}
	report.Esfront = Side{
		HasErrors:  res.HasErrors(),
		Statements: len(res.Parse.Tree.Statements(res.Parse.Root)),
	}
	if report.Esfront.HasErrors {
		for _, d := range res.Diagnostics.Items() {
			if d.IsError() {
				report.Esfront.FirstError, _ = res.File.Resolve(d.Primary)
				break
			}
		}
	}
	report.TreeSitter = Side{
		HasErrors:  root.HasError(),
		Statements: countStatements(root),
	}
	if n := firstError(root, 0); n != nil {
		p := n.StartPoint()
		report.TreeSitter.FirstError = source.LineCol{Line: p.Row + 1, Col: p.Column + 1}
	}

	switch {
	case report.Esfront.HasErrors && !report.TreeSitter.HasErrors:
		report.Mismatches = append(report.Mismatches, "esfront reports errors, tree-sitter accepts the file")
	case !report.Esfront.HasErrors && report.TreeSitter.HasErrors:
		report.Mismatches = append(report.Mismatches, "tree-sitter reports errors, esfront accepts the file")
	case !report.Esfront.HasErrors && report.Esfront.Statements != report.TreeSitter.Statements:
		report.Mismatches = append(report.Mismatches, fmt.Sprintf("top-level statements: esfront %d, tree-sitter %d",
			report.Esfront.Statements, report.TreeSitter.Statements))
	}
	return report, nil
}

func countStatements(root *sitter.Node) int {
	n := 0
	for i := range int(root.NamedChildCount()) {
		switch root.NamedChild(i).Type() {
		case "comment", "hash_bang_line", "html_comment":
		default:
			n++
		}
	}
	return n
}

// firstError returns the earliest ERROR or MISSING node in document order.
func firstError(node *sitter.Node, depth int) *sitter.Node {
	if node == nil || depth > maxErrorDepth || !node.HasError() && !node.IsMissing() {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := range int(node.ChildCount()) {
		if n := firstError(node.Child(i), depth+1); n != nil {
			return n
		}
	}
	return nil
}
