package ast

import (
	"esfront/internal/source"
	"esfront/internal/token"
)

// NodeID addresses a node inside a Tree. IDs are 1-based; NoNode marks an
// absent optional slot.
type NodeID uint32

const NoNode NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNode }

// Flags carry per-node facts that do not warrant a child slot.
type Flags uint64

const (
	FlagComputed Flags = 1 << iota
	FlagOptional
	FlagShorthand
	FlagStatic
	FlagAsync
	FlagGenerator
	FlagPrefix
	FlagDelegate
	FlagAwait
	FlagSelfClosing
	FlagTail
	FlagExprBody
	FlagDeclare
	FlagAbstract
	FlagReadonly
	FlagOverride
	FlagAccessor
	FlagPublic
	FlagPrivate
	FlagProtected
	FlagRest
	FlagDefinite
	FlagTypeOnly
	FlagConst
	FlagDefault
	FlagGlobal
	FlagAsserts
	FlagNamespace
	FlagExport
	FlagIn
	FlagOut
	FlagParenthesized
	FlagUnterminated
	// FlagSynthetic marks nodes created by an Editor rather than the parser.
	FlagSynthetic
	// FlagMethod marks object literal members written in method syntax.
	FlagMethod
)

var flagNames = [...]string{
	"computed", "optional", "shorthand", "static", "async", "generator",
	"prefix", "delegate", "await", "self-closing", "tail", "expr-body",
	"declare", "abstract", "readonly", "override", "accessor", "public",
	"private", "protected", "rest", "definite", "type-only", "const",
	"default", "global", "asserts", "namespace", "export", "in", "out",
	"parenthesized", "unterminated", "synthetic", "method",
}

// Names lists the set flags in bit order.
func (f Flags) Names() []string {
	var out []string
	for i, name := range flagNames {
		if f&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// MethodKind distinguishes class and object methods; it is stored in Aux.
type MethodKind uint16

const (
	MethodPlain MethodKind = iota
	MethodGet
	MethodSet
	MethodConstructor
)

func (m MethodKind) String() string {
	switch m {
	case MethodGet:
		return "get"
	case MethodSet:
		return "set"
	case MethodConstructor:
		return "constructor"
	default:
		return "method"
	}
}

// MappedModifier records '+'/'-' prefixes on mapped type modifiers; stored in Aux.
type MappedModifier uint16

const (
	MappedReadonlyPlus MappedModifier = 1 << iota
	MappedReadonlyMinus
	MappedOptionalPlus
	MappedOptionalMinus
)

// Node is the stored form of one syntax node. Children live in the owning
// layer's edge table; use Tree accessors rather than reading first/count.
type Node struct {
	Kind Kind
	// Op is the operator or keyword token for operator and keyword-bearing kinds.
	Op    token.Kind
	Aux   uint16
	Flags Flags
	Span  source.Span
	Text  source.StringID

	first uint32
	count uint32
}

func (n *Node) Has(f Flags) bool { return n.Flags&f == f }

// Comments are the comment trivia attached to a node.
type Comments struct {
	Leading  []token.Trivia
	Trailing []token.Trivia
}

func (c Comments) Empty() bool { return len(c.Leading) == 0 && len(c.Trailing) == 0 }
