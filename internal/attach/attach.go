// Package attach assigns comments to syntax nodes after parsing.
//
// A comment that shares a line with the end of the node finishing just
// before it trails that node. Any other comment leads the node starting
// next. When several nodes share the boundary, the outermost one wins.
// Comments after the last node trail it; in a file with no statements they
// trail the Program.
package attach

import (
	"slices"

	"esfront/internal/ast"
	"esfront/internal/token"
)

// boundary is the outermost node starting or ending at off.
type boundary struct {
	off uint32
	id  ast.NodeID
}

// Attach returns a copy of tree carrying comments. tree is not modified.
func Attach(tree *ast.Tree, comments []token.Trivia) *ast.Tree {
	if len(comments) == 0 || tree == nil {
		return tree
	}
	starts, ends := boundaries(tree)
	table := make(map[ast.NodeID]ast.Comments)
	file := tree.File()

	for _, c := range comments {
		if prev, ok := before(ends, c.Span.Start); ok && file.LineOf(prev.off) == file.LineOf(c.Span.Start) {
			entry := table[prev.id]
			entry.Trailing = append(entry.Trailing, c)
			table[prev.id] = entry
			continue
		}
		if next, ok := after(starts, c.Span.End); ok {
			entry := table[next.id]
			entry.Leading = append(entry.Leading, c)
			table[next.id] = entry
			continue
		}
		last := tree.Root()
		if len(ends) > 0 {
			last = ends[len(ends)-1].id
		}
		entry := table[last]
		entry.Trailing = append(entry.Trailing, c)
		table[last] = entry
	}
	return tree.WithComments(table)
}

// boundaries lists, sorted by offset, the outermost node beginning and
// ending at every offset. Lists, empty placeholders and the Program are
// not attachment targets.
func boundaries(tree *ast.Tree) (starts, ends []boundary) {
	seenStart := make(map[uint32]bool)
	seenEnd := make(map[uint32]bool)
	root := tree.Root()
	ast.Inspect(tree, root, func(id ast.NodeID, _ ast.Path) bool {
		if id == root || tree.Kind(id) == ast.List {
			return true
		}
		sp := tree.Span(id)
		if sp.Empty() {
			return true
		}
		// Pre-order visits a parent before its children.
		if !seenStart[sp.Start] {
			seenStart[sp.Start] = true
			starts = append(starts, boundary{off: sp.Start, id: id})
		}
		if !seenEnd[sp.End] {
			seenEnd[sp.End] = true
			ends = append(ends, boundary{off: sp.End, id: id})
		}
		return true
	})
	byOff := func(a, b boundary) int { return int(a.off) - int(b.off) }
	slices.SortFunc(starts, byOff)
	slices.SortFunc(ends, byOff)
	return starts, ends
}

// before finds the last node ending at or before off.
func before(ends []boundary, off uint32) (boundary, bool) {
	i, found := slices.BinarySearchFunc(ends, off, func(b boundary, off uint32) int { return int(b.off) - int(off) })
	if found {
		return ends[i], true
	}
	if i == 0 {
		return boundary{}, false
	}
	return ends[i-1], true
}

// after finds the first node starting at or after off.
func after(starts []boundary, off uint32) (boundary, bool) {
	i, _ := slices.BinarySearchFunc(starts, off, func(b boundary, off uint32) int { return int(b.off) - int(off) })
	if i == len(starts) {
		return boundary{}, false
	}
	return starts[i], true
}
