package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("parse")
	tm.End(idx, "")
	tm.Time("attach", func() {})
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %d phases", len(r.Phases))
	}
}

func TestTotalsGroupByName(t *testing.T) {
	tm := NewTimer()
	for range 3 {
		tm.Time("parse", func() {})
		tm.Time("attach", func() {})
	}
	tm.End(tm.Begin("directives"), "2 found")

	totals := tm.Totals()
	if len(totals.Phases) != 3 {
		t.Fatalf("got %d phase groups, want 3", len(totals.Phases))
	}
	if totals.Phases[0].Name != "parse" || totals.Phases[0].Count != 3 {
		t.Fatalf("first group = %+v", totals.Phases[0])
	}
	if got := tm.Summary(); !strings.Contains(got, "x3") || !strings.Contains(got, "total") {
		t.Fatalf("summary:\n%s", got)
	}
}

func TestEndIgnoresBadHandle(t *testing.T) {
	tm := NewTimer()
	tm.End(-1, "")
	tm.End(5, "")
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("bad handles created phases")
	}
}

func TestConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 50 {
				tm.Time("parse", func() {})
			}
		})
	}
	wg.Wait()
	if n := tm.Totals().Phases[0].Count; n != 400 {
		t.Fatalf("count = %d, want 400", n)
	}
	if s := tm.Slowest(3); len(s) != 3 {
		t.Fatalf("slowest returned %d", len(s))
	}
}
