package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"esfront/internal/ast"
	"esfront/internal/source"
	"esfront/internal/token"
)

// TreeStyle selects the rendering of FormatTree.
type TreeStyle uint8

const (
	// TreeSExpr is the indented S-expression of ast.Dump.
	TreeSExpr TreeStyle = iota
	// TreeBoxes draws the tree with box characters, one node per line.
	TreeBoxes
	TreeJSON
)

// ParseTreeStyle maps a flag value to a TreeStyle.
func ParseTreeStyle(s string) (TreeStyle, error) {
	switch strings.ToLower(s) {
	case "", "sexpr", "sexp":
		return TreeSExpr, nil
	case "tree", "boxes":
		return TreeBoxes, nil
	case "json":
		return TreeJSON, nil
	}
	return TreeSExpr, fmt.Errorf("unknown tree style %q (want sexpr, tree or json)", s)
}

type TreeOpts struct {
	Style    TreeStyle
	Spans    bool
	Comments bool
}

// TreeNodeJSON is the JSON form of one node. List slots become arrays of
// children tagged with the slot name.
type TreeNodeJSON struct {
	Kind     string          `json:"kind"`
	Slot     string          `json:"slot,omitempty"`
	Start    uint32          `json:"start"`
	End      uint32          `json:"end"`
	Text     string          `json:"text,omitempty"`
	Op       string          `json:"op,omitempty"`
	Aux      string          `json:"aux,omitempty"`
	Flags    []string        `json:"flags,omitempty"`
	Leading  []string        `json:"leading_comments,omitempty"`
	Trailing []string        `json:"trailing_comments,omitempty"`
	Children []*TreeNodeJSON `json:"children,omitempty"`
}

// FormatTree writes the subtree at root in the chosen style.
func FormatTree(w io.Writer, tree *ast.Tree, root ast.NodeID, opts TreeOpts) error {
	switch opts.Style {
	case TreeBoxes:
		return formatTreeBoxes(w, tree, root, opts)
	case TreeJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(BuildTreeJSON(tree, root, opts))
	default:
		_, err := fmt.Fprintln(w, ast.Dump(tree, root, ast.DumpOptions{
			Spans:    opts.Spans,
			Slots:    true,
			Comments: opts.Comments,
			Indent:   true,
		}))
		return err
	}
}

// BuildTreeJSON converts the subtree at id. Optional empty slots are left out.
func BuildTreeJSON(tree *ast.Tree, id ast.NodeID, opts TreeOpts) *TreeNodeJSON {
	return buildTreeJSON(tree, id, "", opts)
}

func buildTreeJSON(tree *ast.Tree, id ast.NodeID, slot string, opts TreeOpts) *TreeNodeJSON {
	if id == ast.NoNode {
		return nil
	}
	n := tree.Node(id)
	out := &TreeNodeJSON{
		Kind:  n.Kind.String(),
		Slot:  slot,
		Start: n.Span.Start,
		End:   n.Span.End,
		Text:  tree.Text(id),
		Aux:   ast.AuxString(n.Kind, n.Aux),
		Flags: n.Flags.Names(),
	}
	if n.Op != token.Invalid {
		out.Op = n.Op.String()
	}
	if opts.Comments {
		c := tree.Comments(id)
		for _, tr := range c.Leading {
			out.Leading = append(out.Leading, tr.Text)
		}
		for _, tr := range c.Trailing {
			out.Trailing = append(out.Trailing, tr.Text)
		}
	}
	for _, ch := range slotChildren(tree, id) {
		if child := buildTreeJSON(tree, ch.id, ch.slot, opts); child != nil {
			out.Children = append(out.Children, child)
		}
	}
	return out
}

type slotChild struct {
	slot string
	id   ast.NodeID
}

// slotChildren flattens list slots so every child carries its slot name.
func slotChildren(tree *ast.Tree, id ast.NodeID) []slotChild {
	k := tree.Kind(id)
	if k == ast.List {
		var out []slotChild
		for _, e := range tree.ListElems(id) {
			out = append(out, slotChild{id: e})
		}
		return out
	}
	slots := k.Schema().Slots
	var out []slotChild
	for i, c := range tree.Children(id) {
		name := ""
		if i < len(slots) {
			name = slots[i].Name
		}
		if c == ast.NoNode {
			continue
		}
		if tree.Kind(c) == ast.List {
			for _, e := range tree.ListElems(c) {
				out = append(out, slotChild{slot: name, id: e})
			}
			continue
		}
		out = append(out, slotChild{slot: name, id: c})
	}
	return out
}

func nodeLabel(tree *ast.Tree, id ast.NodeID, opts TreeOpts) string {
	if id == ast.NoNode {
		return "<missing>"
	}
	n := tree.Node(id)
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	if n.Op != token.Invalid {
		sb.WriteString(" op=" + n.Op.String())
	}
	if aux := ast.AuxString(n.Kind, n.Aux); aux != "" {
		sb.WriteString(" " + aux)
	}
	if names := n.Flags.Names(); len(names) > 0 {
		sb.WriteString(" {" + strings.Join(names, ",") + "}")
	}
	if txt := tree.Text(id); txt != "" {
		sb.WriteString(" " + strconv.Quote(txt))
	}
	if opts.Spans {
		sb.WriteString(" " + spanLabel(n.Span))
	}
	return sb.String()
}

func spanLabel(sp source.Span) string {
	return fmt.Sprintf("@%d..%d", sp.Start, sp.End)
}

func formatTreeBoxes(w io.Writer, tree *ast.Tree, root ast.NodeID, opts TreeOpts) error {
	var sb strings.Builder
	sb.WriteString(nodeLabel(tree, root, opts))
	sb.WriteByte('\n')
	writeBoxChildren(&sb, tree, root, "", opts)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBoxChildren(sb *strings.Builder, tree *ast.Tree, id ast.NodeID, prefix string, opts TreeOpts) {
	children := slotChildren(tree, id)
	for i, ch := range children {
		last := i == len(children)-1
		branch, indent := "├─ ", "│  "
		if last {
			branch, indent = "└─ ", "   "
		}
		sb.WriteString(prefix + branch)
		if ch.slot != "" {
			sb.WriteString(ch.slot + ": ")
		}
		sb.WriteString(nodeLabel(tree, ch.id, opts))
		sb.WriteByte('\n')
		writeBoxChildren(sb, tree, ch.id, prefix+indent, opts)
	}
}
