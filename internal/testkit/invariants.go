package testkit

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"esfront/internal/ast"
	"esfront/internal/diag"
	"esfront/internal/source"
)

// CheckTree walks every node reachable from the root and checks the span
// invariants a parsed tree promises:
// 1) the root lies within the file buffer
// 2) every child span is contained in its parent span
// 3) the non-empty spans of siblings do not overlap
// 4) every node has a valid kind and the slot count its schema declares
func CheckTree(t *ast.Tree) error {
	if t == nil || t.File() == nil {
		return fmt.Errorf("nil tree or file")
	}
	sf := t.File()
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	root := t.Root()
	if rs := t.Span(root); rs.End > lenContent || rs.Start > rs.End {
		return fmt.Errorf("root span %v outside buffer of %d bytes", rs, lenContent)
	}
	return checkNode(t, root, make(map[ast.NodeID]bool, t.Len()))
}

func checkNode(t *ast.Tree, id ast.NodeID, seen map[ast.NodeID]bool) error {
	if seen[id] {
		return fmt.Errorf("node %d reachable twice", id)
	}
	seen[id] = true

	k := t.Kind(id)
	if !k.Valid() {
		return fmt.Errorf("node %d has invalid kind %d", id, k)
	}
	sp := t.Span(id)
	if sp.Start > sp.End {
		return fmt.Errorf("%s node %d has inverted span %v", k, id, sp)
	}
	children := t.Children(id)
	if k != ast.List && len(children) != k.NumSlots() {
		return fmt.Errorf("%s node %d has %d children, schema declares %d", k, id, len(children), k.NumSlots())
	}

	spans := make([]source.Span, 0, len(children))
	for _, c := range children {
		if c == ast.NoNode {
			continue
		}
		cs := t.Span(c)
		if cs.Start < sp.Start || cs.End > sp.End {
			return fmt.Errorf("%s %v escapes parent %s %v", t.Kind(c), cs, k, sp)
		}
		if !cs.Empty() {
			spans = append(spans, cs)
		}
		if err := checkNode(t, c, seen); err != nil {
			return err
		}
	}

	// siblings
	slices.SortFunc(spans, func(a, b source.Span) int { return int(a.Start) - int(b.Start) })
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			return fmt.Errorf("children of %s %v overlap: %v and %v", k, sp, spans[i-1], spans[i])
		}
	}
	return nil
}

// CheckDiagnostics verifies every diagnostic range, note and fix edit lies
// within [0, len(source)].
func CheckDiagnostics(sf *source.File, bag *diag.Bag) error {
	if sf == nil || bag == nil {
		return fmt.Errorf("nil file or bag")
	}
	n := sf.Len()
	within := func(sp source.Span) bool { return sp.Start <= sp.End && sp.End <= n }
	for _, d := range bag.Items() {
		if !within(d.Primary) {
			return fmt.Errorf("%s %q: range %v outside [0,%d]", d.Code.ID(), d.Message, d.Primary, n)
		}
		for _, note := range d.Notes {
			if note.Span.File == sf.ID && !within(note.Span) {
				return fmt.Errorf("%s: note range %v outside [0,%d]", d.Code.ID(), note.Span, n)
			}
		}
		for _, fix := range d.Fixes {
			for _, e := range fix.Edits {
				if !within(e.Span) {
					return fmt.Errorf("%s: fix %q edit %v outside [0,%d]", d.Code.ID(), fix.Title, e.Span, n)
				}
			}
		}
	}
	return nil
}

// Check runs CheckTree and CheckDiagnostics.
func Check(t *ast.Tree, bag *diag.Bag) error {
	if err := CheckTree(t); err != nil {
		return err
	}
	return CheckDiagnostics(t.File(), bag)
}
