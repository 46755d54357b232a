package dialect

import "esfront/internal/source"

// Hint is a small piece of evidence suggesting a file uses an extension.
// It is not itself a diagnostic.
type Hint struct {
	Dialect Kind
	Score   int
	Reason  string
	Span    source.Span
}

// Evidence aggregates per-file hints collected during tokenization/parsing.
type Evidence struct {
	hints []Hint
}

func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 16),
	}
}

// Add appends a hint. A nil Evidence ignores it.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// Len is the number of collected hints.
func (e *Evidence) Len() int {
	if e == nil {
		return 0
	}
	return len(e.hints)
}

// Truncate drops hints added after n; speculative parses use it on rollback.
func (e *Evidence) Truncate(n int) {
	if e == nil || n >= len(e.hints) {
		return
	}
	e.hints = e.hints[:n]
}
