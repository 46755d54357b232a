package ast

// WithComments returns a shallow copy of t whose comment table is c. Node
// storage is shared with t; t itself is unchanged.
func (t *Tree) WithComments(c map[NodeID]Comments) *Tree {
	cp := *t
	cp.comments = c
	return &cp
}

// CommentCount is the number of comments attached across all nodes.
func (t *Tree) CommentCount() int {
	seen := make(map[NodeID]bool)
	n := 0
	for l := t; l != nil; l = l.base {
		for id, c := range l.comments {
			if seen[id] {
				continue
			}
			seen[id] = true
			n += len(c.Leading) + len(c.Trailing)
		}
	}
	return n
}
