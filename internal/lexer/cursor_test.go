package lexer

import (
	"testing"

	"esfront/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("c.js", []byte("abc")))
	c := NewCursor(f)

	if c.Peek() != 'a' || c.PeekAt(2) != 'c' || c.PeekAt(3) != 0 {
		t.Fatalf("peek mismatch")
	}
	m := c.Mark()
	if !c.Eat('a') || c.Eat('x') {
		t.Fatalf("eat mismatch")
	}
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Fatalf("peek2 = %c %c %v", b0, b1, ok)
	}
	if _, _, _, ok := c.Peek3(); ok {
		t.Fatalf("peek3 past end must fail")
	}
	c.Bump()
	c.Bump()
	if !c.EOF() || c.Bump() != 0 {
		t.Fatalf("expected EOF")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 3 {
		t.Fatalf("span %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("reset to %d", c.Off)
	}
}

func TestCookTemplate(t *testing.T) {
	if v, ok := CookTemplate(`a\nbA`); !ok || v != "a\nbA" {
		t.Fatalf("cooked %q %v", v, ok)
	}
	if _, ok := CookTemplate(`\01`); ok {
		t.Fatalf("octal escapes are invalid in templates")
	}
	if v, ok := CookTemplate("x\r\ny"); !ok || v != "x\ny" {
		t.Fatalf("CRLF must cook to LF, got %q", v)
	}
}
