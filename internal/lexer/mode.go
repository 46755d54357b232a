package lexer

// Mode tells the scanner how to read ambiguous characters. The parser picks
// it before every call to Next.
type Mode uint8

const (
	// ModeRegex reads '/' as the start of a regular expression literal.
	ModeRegex Mode = iota
	// ModeDivide reads '/' and '/=' as operators.
	ModeDivide
	// ModeJSXChild reads raw text up to '{' or '<' as JSXText.
	ModeJSXChild
	// ModeJSXTag reads dashed names as JSXIdent and quoted values as JSXString.
	ModeJSXTag
	// ModeTemplate reads a '}' as a template continuation even when the brace
	// depth of the innermost interpolation is not zero.
	ModeTemplate
)

func (m Mode) String() string {
	switch m {
	case ModeRegex:
		return "regex"
	case ModeDivide:
		return "divide"
	case ModeJSXChild:
		return "jsx-child"
	case ModeJSXTag:
		return "jsx-tag"
	case ModeTemplate:
		return "template"
	default:
		return "unknown"
	}
}
