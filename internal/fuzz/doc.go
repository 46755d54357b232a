// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). They check that any input terminates, never
// panics, and yields a tree whose spans satisfy the invariants checked by
// internal/testkit.
package fuzztests
