package ast

// EqualOptions tunes structural comparison.
type EqualOptions struct {
	IgnoreSpans    bool
	IgnoreComments bool
}

// Equal reports whether the subtrees at a and b have the same shape, kinds,
// operators, flags, text and (unless ignored) spans and comments. Node IDs
// themselves are not compared.
func Equal(ta *Tree, a NodeID, tb *Tree, b NodeID, opts EqualOptions) bool {
	if (a == NoNode) != (b == NoNode) {
		return false
	}
	if a == NoNode {
		return true
	}
	na, nb := ta.Node(a), tb.Node(b)
	if na.Kind != nb.Kind || na.Op != nb.Op || na.Aux != nb.Aux || na.Flags != nb.Flags {
		return false
	}
	if !opts.IgnoreSpans && (na.Span.Start != nb.Span.Start || na.Span.End != nb.Span.End) {
		return false
	}
	if ta.Text(a) != tb.Text(b) {
		return false
	}
	if !opts.IgnoreComments && !equalComments(ta.Comments(a), tb.Comments(b)) {
		return false
	}
	ca, cb := ta.Children(a), tb.Children(b)
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !Equal(ta, ca[i], tb, cb[i], opts) {
			return false
		}
	}
	return true
}

// EqualTrees compares two whole trees from their roots.
func EqualTrees(a, b *Tree, opts EqualOptions) bool {
	return Equal(a, a.Root(), b, b.Root(), opts)
}

func equalComments(a, b Comments) bool {
	if len(a.Leading) != len(b.Leading) || len(a.Trailing) != len(b.Trailing) {
		return false
	}
	for i := range a.Leading {
		if a.Leading[i].Span != b.Leading[i].Span || a.Leading[i].Text != b.Leading[i].Text {
			return false
		}
	}
	for i := range a.Trailing {
		if a.Trailing[i].Span != b.Trailing[i].Span || a.Trailing[i].Text != b.Trailing[i].Text {
			return false
		}
	}
	return true
}
