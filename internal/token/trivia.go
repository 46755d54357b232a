package token

import "esfront/internal/source"

type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaHashbang is a #! line at offset zero.
	TriviaHashbang
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "Whitespace"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaHashbang:
		return "Hashbang"
	default:
		return "TriviaKind(?)"
	}
}

// Trivia is one whitespace run or one comment.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
	// Unterminated is set for a block comment that ran into end of input.
	Unterminated bool
}

// IsComment reports whether the trivia is a line or block comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment
}

// Body returns the comment text without its delimiters.
func (t Trivia) Body() string {
	switch t.Kind {
	case TriviaLineComment:
		if len(t.Text) >= 2 {
			return t.Text[2:]
		}
	case TriviaBlockComment:
		s := t.Text
		if len(s) >= 2 {
			s = s[2:]
		}
		if !t.Unterminated && len(s) >= 2 {
			s = s[:len(s)-2]
		}
		return s
	}
	return ""
}
