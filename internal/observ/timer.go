package observ

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Phase is one timed stretch of work: lexing and parsing, comment
// attachment or directive scanning.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases. A nil Timer ignores every call, so callers can pass
// one through unconditionally. Safe for concurrent use: ParseFiles shares one
// Timer across workers.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Time runs fn as a phase.
func (t *Timer) Time(name string, fn func()) {
	idx := t.Begin(name)
	fn()
	t.End(idx, "")
}

// Record adds a phase that was measured elsewhere.
func (t *Timer) Record(name string, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now().Add(-dur), Dur: dur})
}

// PhaseReport is the serialised form of a phase or of all phases sharing a
// name.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"ms"`
	Count      int     `json:"count,omitempty" msgpack:"count,omitempty"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report lists phases in the order they began.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		report.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Count: 1, Note: p.Note}
	}
	report.TotalMS = millis(total)
	return report
}

// Totals sums phases by name, ordered by first appearance. A batch of files
// reports one line per phase rather than one per file.
func (t *Timer) Totals() Report {
	full := t.Report()
	var order []string
	sums := make(map[string]*PhaseReport)
	for _, p := range full.Phases {
		s, ok := sums[p.Name]
		if !ok {
			s = &PhaseReport{Name: p.Name}
			sums[p.Name] = s
			order = append(order, p.Name)
		}
		s.DurationMS += p.DurationMS
		s.Count++
	}
	out := Report{TotalMS: full.TotalMS, Phases: make([]PhaseReport, 0, len(order))}
	for _, name := range order {
		out.Phases = append(out.Phases, *sums[name])
	}
	return out
}

// Slowest returns the n longest phases, longest first.
func (t *Timer) Slowest(n int) []PhaseReport {
	phases := t.Report().Phases
	slices.SortStableFunc(phases, func(a, b PhaseReport) int {
		switch {
		case a.DurationMS > b.DurationMS:
			return -1
		case a.DurationMS < b.DurationMS:
			return 1
		}
		return 0
	})
	return phases[:min(n, len(phases))]
}

// Summary renders Totals as aligned text.
func (t *Timer) Summary() string {
	report := t.Totals()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&sb, "  x%d", p.Count)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
