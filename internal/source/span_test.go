package source

import "testing"

func TestSpanCoverContainsOverlaps(t *testing.T) {
	a := Span{Start: 2, End: 5}
	b := Span{Start: 4, End: 9}
	c := Span{Start: 5, End: 7}

	if got := a.Cover(b); got != (Span{Start: 2, End: 9}) {
		t.Errorf("Cover = %v", got)
	}
	if !a.Cover(b).Contains(a) || !a.Cover(b).Contains(b) {
		t.Errorf("cover must contain both operands")
	}
	if !a.Overlaps(b) {
		t.Errorf("a and b overlap")
	}
	if a.Overlaps(c) {
		t.Errorf("adjacent spans must not overlap")
	}
	empty := Span{Start: 3, End: 3}
	if empty.Overlaps(a) || !a.Contains(empty) {
		t.Errorf("empty span: overlaps=%v contains=%v", empty.Overlaps(a), a.Contains(empty))
	}
	other := Span{File: 1, Start: 2, End: 5}
	if a.Contains(other) || a.Overlaps(other) {
		t.Errorf("spans of different files are unrelated")
	}
	if a.Len() != 3 || !empty.Empty() {
		t.Errorf("Len/Empty mismatch")
	}
}

func TestSpanShift(t *testing.T) {
	s := Span{Start: 4, End: 6}
	if got := s.ShiftLeft(2); got.Start != 2 || got.End != 4 {
		t.Errorf("ShiftLeft = %v", got)
	}
	if got := s.ShiftLeft(5); got != s {
		t.Errorf("ShiftLeft past zero must be a no-op, got %v", got)
	}
	if got := s.ShiftRight(1); got.Start != 5 || got.End != 7 {
		t.Errorf("ShiftRight = %v", got)
	}
	if z := s.ZeroideToEnd(); !z.Empty() || z.Start != 6 {
		t.Errorf("ZeroideToEnd = %v", z)
	}
}
