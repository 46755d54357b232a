// Package diag defines the diagnostic model shared by the scanner, the parser
// and the post-parse passes.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     scanning and parsing.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//   - Model fix suggestions as structured edits that the fix engine or an
//     editor integration can apply.
//
// # Scope
//
// Package diag does no formatting and no IO. Rendering lives in
// internal/diagfmt; applying fixes lives in internal/fix.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable ID (LEX1002) and a stable
//     category string (lex/unterminated-string) used on the wire.
//   - Message: short, actionable text.
//   - Primary: the source.Span the finding is about.
//   - Notes: secondary spans carrying advice ("wrap the operands in
//     parentheses", "enable jsx for .jsx files").
//   - Fixes: optional Fix records.
//
// Diagnostics are pure data. Nothing in the parser branches on their content;
// recovery decisions look at tokens only.
//
// # Speculation
//
// The parser resolves ambiguities by trying one interpretation and rolling
// back when it fails. Bag.Checkpoint returns the current length and
// Bag.Truncate drops everything recorded after it, so a discarded branch
// leaves no diagnostics behind.
//
// # Fix suggestions
//
// A Fix carries a Title, a Kind, an Applicability level, an IsPreferred marker
// and concrete TextEdits. Producers may attach a Thunk instead of edits when
// the edits are cheap to describe but need the file content to build;
// MaterializeFixes expands thunks deterministically. TextEdit.OldText is an
// optional guard the fix engine verifies before writing.
package diag
