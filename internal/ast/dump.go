package ast

import (
	"fmt"
	"strconv"
	"strings"

	"esfront/internal/token"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// Spans appends @start..end to every node.
	Spans bool
	// Slots prefixes children with their slot name.
	Slots bool
	// Comments prints attached comments.
	Comments bool
	// Indent renders one node per line; otherwise the dump is a single line.
	Indent bool
}

// Dump renders the subtree at id as an S-expression. The output depends
// only on the tree, never on map order.
func Dump(t *Tree, id NodeID, opts DumpOptions) string {
	var sb strings.Builder
	d := dumper{t: t, opts: opts, sb: &sb}
	d.node(id, 0)
	return sb.String()
}

// DumpCompact is Dump with default options, handy in tests.
func DumpCompact(t *Tree, id NodeID) string {
	return Dump(t, id, DumpOptions{})
}

type dumper struct {
	t    *Tree
	opts DumpOptions
	sb   *strings.Builder
}

func (d *dumper) sep(depth int) {
	if d.opts.Indent {
		d.sb.WriteByte('\n')
		d.sb.WriteString(strings.Repeat("  ", depth))
		return
	}
	d.sb.WriteByte(' ')
}

func (d *dumper) node(id NodeID, depth int) {
	t := d.t
	if id == NoNode {
		d.sb.WriteString("_")
		return
	}
	k := t.Kind(id)
	if k == List {
		d.sb.WriteByte('[')
		for i, e := range t.ListElems(id) {
			if d.opts.Indent {
				d.sep(depth + 1)
			} else if i > 0 {
				d.sb.WriteByte(' ')
			}
			d.node(e, depth+1)
		}
		d.sb.WriteByte(']')
		return
	}
	d.sb.WriteByte('(')
	d.sb.WriteString(k.String())
	d.attrs(id)
	slots := k.Schema().Slots
	for i, c := range t.Children(id) {
		if c == NoNode && i < len(slots) && slots[i].IsOptional() {
			continue
		}
		d.sep(depth + 1)
		if d.opts.Slots && i < len(slots) {
			d.sb.WriteString(slots[i].Name)
			d.sb.WriteByte('=')
		}
		d.node(c, depth+1)
	}
	d.sb.WriteByte(')')
}

func (d *dumper) attrs(id NodeID) {
	t := d.t
	n := t.Node(id)
	if n.Op != token.Invalid {
		d.sb.WriteString(" op=")
		d.sb.WriteString(n.Op.String())
	}
	if aux := AuxString(n.Kind, n.Aux); aux != "" {
		d.sb.WriteByte(' ')
		d.sb.WriteString(aux)
	}
	if names := n.Flags.Names(); len(names) > 0 {
		d.sb.WriteString(" {")
		d.sb.WriteString(strings.Join(names, ","))
		d.sb.WriteByte('}')
	}
	if txt := t.Text(id); txt != "" {
		d.sb.WriteByte(' ')
		d.sb.WriteString(strconv.Quote(txt))
	}
	if d.opts.Spans {
		fmt.Fprintf(d.sb, " @%d..%d", n.Span.Start, n.Span.End)
	}
	if d.opts.Comments {
		c := t.Comments(id)
		for _, tr := range c.Leading {
			d.sb.WriteString(" leading=")
			d.sb.WriteString(strconv.Quote(tr.Text))
		}
		for _, tr := range c.Trailing {
			d.sb.WriteString(" trailing=")
			d.sb.WriteString(strconv.Quote(tr.Text))
		}
	}
}

// AuxString renders the Aux payload of a node of kind k, or "" when unset.
func AuxString(k Kind, aux uint16) string {
	if aux == 0 {
		return ""
	}
	switch k {
	case NumericLit:
		return "fmt=" + token.NumFormat(aux).String()
	case MethodDef, MethodSignature, Property:
		return "kind=" + MethodKind(aux).String()
	case MappedType:
		var parts []string
		m := MappedModifier(aux)
		if m&MappedReadonlyPlus != 0 {
			parts = append(parts, "+readonly")
		}
		if m&MappedReadonlyMinus != 0 {
			parts = append(parts, "-readonly")
		}
		if m&MappedOptionalPlus != 0 {
			parts = append(parts, "+?")
		}
		if m&MappedOptionalMinus != 0 {
			parts = append(parts, "-?")
		}
		return "mod=" + strings.Join(parts, ",")
	}
	return "aux=" + strconv.Itoa(int(aux))
}
