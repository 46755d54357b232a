package token

import (
	"esfront/internal/source"
)

// Flags carries scanner facts the parser needs for re-lexing and statement
// termination decisions.
type Flags uint8

const (
	// NewlineBefore is set when a line terminator precedes the token.
	NewlineBefore Flags = 1 << iota
	// Escaped marks identifiers spelled with \u escapes; they never act as keywords.
	Escaped
	// Unterminated marks a literal or comment that ran into end of line or input.
	Unterminated
	// InvalidEscape marks a string or template containing a malformed escape.
	InvalidEscape
)

// NumFormat tags the sub-format of a NumericLit. Decimal is the zero value.
type NumFormat uint8

const (
	NumHex NumFormat = 1 << iota
	NumOctal
	NumBinary
	NumLegacyOctal
	NumFloat
	NumExponent
	NumBigInt
	NumSeparators
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind      Kind
	Span      source.Span
	Text      string
	Flags     Flags
	NumFormat NumFormat
	Leading   []Trivia
}

// Has reports whether all bits of f are set.
func (t Token) Has(f Flags) bool { return t.Flags&f == f }

// NewlineBefore reports whether a line break separates t from the previous token.
func (t Token) NewlineBefore() bool { return t.Flags&NewlineBefore != 0 }

// IsIdentLike reports whether t can serve as an identifier. Escaped keywords
// count as identifiers.
func (t Token) IsIdentLike() bool {
	return t.Kind.IsIdentLike() || (t.Kind.IsReserved() && t.Flags&Escaped != 0)
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

func (f NumFormat) String() string {
	if f == 0 {
		return "decimal"
	}
	out := ""
	add := func(bit NumFormat, name string) {
		if f&bit == 0 {
			return
		}
		if out != "" {
			out += "|"
		}
		out += name
	}
	add(NumHex, "hex")
	add(NumOctal, "octal")
	add(NumBinary, "binary")
	add(NumLegacyOctal, "legacy-octal")
	add(NumFloat, "float")
	add(NumExponent, "exponent")
	add(NumBigInt, "bigint")
	add(NumSeparators, "separators")
	return out
}
