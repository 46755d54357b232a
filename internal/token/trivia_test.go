package token_test

import (
	"testing"

	"esfront/internal/token"
)

func TestTriviaBody(t *testing.T) {
	tests := []struct {
		tr   token.Trivia
		want string
	}{
		{token.Trivia{Kind: token.TriviaLineComment, Text: "// hi"}, " hi"},
		{token.Trivia{Kind: token.TriviaBlockComment, Text: "/* a */"}, " a "},
		{token.Trivia{Kind: token.TriviaBlockComment, Text: "/* open", Unterminated: true}, " open"},
		{token.Trivia{Kind: token.TriviaWhitespace, Text: "  "}, ""},
	}
	for _, tt := range tests {
		if got := tt.tr.Body(); got != tt.want {
			t.Errorf("%v Body() = %q want %q", tt.tr.Kind, got, tt.want)
		}
	}
	if !(token.Trivia{Kind: token.TriviaBlockComment}).IsComment() {
		t.Error("block comment is a comment")
	}
	if (token.Trivia{Kind: token.TriviaHashbang}).IsComment() {
		t.Error("hashbang is not attached as a comment")
	}
}

func TestNumFormatString(t *testing.T) {
	if got := token.NumFormat(0).String(); got != "decimal" {
		t.Errorf("zero = %q", got)
	}
	if got := (token.NumHex | token.NumBigInt).String(); got != "hex|bigint" {
		t.Errorf("hex bigint = %q", got)
	}
}
