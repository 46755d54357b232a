package dialect

import "fmt"

// Kind names a grammar extension on top of plain JavaScript.
type Kind uint8

const (
	Unknown Kind = iota
	TypeScript
	JSX
	Decorators

	kindCount
)

func (k Kind) String() string {
	switch k {
	case TypeScript:
		return "typescript"
	case JSX:
		return "jsx"
	case Decorators:
		return "decorators"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}

// Flag is the Config field that enables k.
func (k Kind) Flag() string {
	switch k {
	case TypeScript:
		return "TypeSyntax"
	case JSX:
		return "JSX"
	case Decorators:
		return "Decorators"
	default:
		return ""
	}
}

// Advice is the note attached to diagnostics for syntax that k would accept.
func (k Kind) Advice() string {
	switch k {
	case TypeScript:
		return "this is TypeScript syntax; enable TypeSyntax (or use a .ts/.tsx file) to accept it"
	case JSX:
		return "this is JSX syntax; enable JSX (or use a .jsx/.tsx file) to accept it"
	case Decorators:
		return "decorators are disabled; enable Decorators to accept them"
	default:
		return ""
	}
}
