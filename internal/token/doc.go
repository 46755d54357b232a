// Package token defines lexical token kinds and trivia for esfront.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span, except for
//     tokens synthesized during recovery, which have an empty span.
//   - Reserved words have their own kinds. Contextual keywords (let, async,
//     of, type, ...) also have their own kinds but remain usable wherever an
//     identifier is; Kind.IsIdentLike reports that.
//   - All numeric literals share NumericLit; Token.NumFormat tells the
//     sub-formats apart.
//   - Whitespace and comments are Trivia and never appear in the token stream.
package token
