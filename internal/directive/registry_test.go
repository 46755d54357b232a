package directive

import "testing"

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry()
	r.Add("a.ts", []Directive{{Kind: TSIgnore}, {Kind: Ignore, Categories: []string{"parse"}}})
	r.Add("b.ts", []Directive{{Kind: TSIgnore}})

	if r.Len() != 3 {
		t.Errorf("expected 3 directives, got %d", r.Len())
	}
	if r.Count(TSIgnore) != 2 {
		t.Errorf("expected 2 @ts-ignore, got %d", r.Count(TSIgnore))
	}
	if got := r.For("a.ts"); len(got) != 2 || got[1].Categories[0] != "parse" {
		t.Errorf("unexpected directives for a.ts: %+v", got)
	}
}

func TestRegistry_Replace(t *testing.T) {
	r := NewRegistry()
	r.Add("a.ts", []Directive{{Kind: TSIgnore}, {Kind: TSIgnore}})
	r.Add("a.ts", []Directive{{Kind: ESLintDisable}})

	if r.Count(TSIgnore) != 0 {
		t.Errorf("replaced directives still counted: %d", r.Count(TSIgnore))
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 directive, got %d", r.Len())
	}
	r.Add("a.ts", nil)
	if r.Len() != 0 || len(r.For("a.ts")) != 0 {
		t.Errorf("expected empty registry after clearing a.ts")
	}
}

func TestRegistry_FilterByKind(t *testing.T) {
	r := NewRegistry()
	r.Add("a.ts", []Directive{{Kind: TSIgnore}, {Kind: Ignore}})
	r.Add("b.ts", []Directive{{Kind: ESLintDisableLine}})

	if got := r.FilterByKind(TSIgnore); len(got) != 1 || len(got["a.ts"]) != 1 {
		t.Errorf("unexpected @ts-ignore filter result: %+v", got)
	}
	if got := r.FilterByKind(Ignore, ESLintDisableLine); len(got) != 2 {
		t.Errorf("expected 2 paths, got %d", len(got))
	}
	if got := r.FilterByKind(); len(got) != 2 {
		t.Errorf("expected all paths without a filter, got %d", len(got))
	}
}
