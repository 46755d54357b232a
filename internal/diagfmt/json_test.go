package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"esfront/internal/diag"
	"esfront/internal/dialect"
	"esfront/internal/parser"
	"esfront/internal/source"
)

func TestJSONWireShape(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("src/test.js", []byte("function f() {\n\tlet x = \"unterminated\n}"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 24, End: 37}, "unterminated string literal"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	first := raw["diagnostics"].([]any)[0].(map[string]any)
	for _, key := range []string{"category", "message", "range", "severity"} {
		if _, ok := first[key]; !ok {
			t.Errorf("wire object lacks %q: %v", key, first)
		}
	}
	if _, ok := first["advice"]; ok {
		t.Errorf("advice present without notes")
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	d := out.Diagnostics[0]
	if out.Count != 1 || d.Severity != "error" || d.Code != "LEX1002" || d.Category != "lex/unterminated-string" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.File != "test.js" || d.Range.Start != 24 || d.Range.End != 37 {
		t.Fatalf("location = %s %+v", d.File, d.Range)
	}
	if d.Range.StartLine != 2 || d.Range.StartCol != 10 {
		t.Fatalf("position = %d:%d", d.Range.StartLine, d.Range.StartCol)
	}
}

func TestJSONAdviceAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("let x = 42"))

	preferred := diag.Fix{
		Title:       "use const",
		Kind:        diag.FixKindRewrite,
		IsPreferred: true,
		Edits:       []diag.TextEdit{{Span: source.Span{File: fileID, Start: 0, End: 3}, NewText: "const", OldText: "let"}},
	}
	d := diag.New(diag.SevWarning, diag.SynUnexpectedToken, source.Span{File: fileID, Start: 4, End: 5}, "unused").
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "declared here").
		WithFix("remove", diag.TextEdit{Span: source.Span{File: fileID, Start: 0, End: 10}}).
		WithFixSuggestion(preferred)
	bag := diag.NewBag(10)
	bag.Add(d)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true, IncludeFixes: true, IncludePreviews: true})
	got := out.Diagnostics[0]
	if got.Severity != "warning" || len(got.Advice) != 1 || got.Advice[0].Message != "declared here" {
		t.Fatalf("advice = %+v", got.Advice)
	}
	if len(got.Fixes) != 2 || got.Fixes[0].Title != "use const" {
		t.Fatalf("preferred fix not first: %+v", got.Fixes)
	}
	first := got.Fixes[0]
	if first.Kind != "rewrite" || first.Applicability != "always-safe" || !first.IsPreferred {
		t.Fatalf("fix = %+v", first)
	}
	edit := first.Edits[0]
	if edit.OldText != "let" || len(edit.AfterLines) != 1 || edit.AfterLines[0] != "const x = 42" {
		t.Fatalf("edit = %+v", edit)
	}
}

func TestJSONMaxAndPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("a b c"))
	bag := diag.NewBag(0)
	for i := range uint32(3) {
		bag.Add(diag.New(diag.SevInfo, diag.SynInfo, source.Span{File: fileID, Start: 2 * i, End: 2*i + 1}, "note"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	if r := out.Diagnostics[1].Range; r.StartLine != 0 || r.Start != 2 {
		t.Fatalf("range = %+v", r)
	}
	if out.Diagnostics[0].Severity != "info" {
		t.Fatalf("severity = %s", out.Diagnostics[0].Severity)
	}
}

func TestJSONTimingsAlwaysCarryNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", nil)
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{File: fileID}, "timings").
		WithNote(source.Span{File: fileID}, "parse: 1.00ms"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(out.Diagnostics[0].Advice) != 1 {
		t.Fatalf("timing notes dropped")
	}
}

func TestJSONFromParse(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("p.ts", []byte("let a: number = 1 let b = 2"))
	res := parser.Parse(fs.Get(fileID), dialect.ForPath("p.ts"), parser.Options{})
	var buf bytes.Buffer
	if err := JSON(&buf, res.Diagnostics, fs, JSONOpts{IncludeFixes: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"category": "parse/missing-semicolon"`) || !strings.Contains(buf.String(), `"new_text": ";"`) {
		t.Fatalf("output:\n%s", buf.String())
	}
}

func TestSarif(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("a b"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: fileID, Start: 2, End: 3}, "expected ';'").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "after this"))
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: fileID, Start: 3, End: 3}, "expected ';'"))

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolVersion: "0.1.0", InvocationArgs: []string{"check", "a.js"}}); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	run := log.Runs[0]
	if log.Version != "2.1.0" || run.Tool.Driver.Name != "esfront" || len(run.Tool.Driver.Rules) != 1 {
		t.Fatalf("run = %+v", run.Tool)
	}
	if len(run.Results) != 2 || run.Results[0].Level != "error" || len(run.Results[0].RelatedLocations) != 1 {
		t.Fatalf("results = %+v", run.Results)
	}
	if region := run.Results[0].Locations[0].PhysicalLocation.Region; region.StartColumn != 3 || region.ByteLength != 1 {
		t.Fatalf("region = %+v", region)
	}
}

func TestUnitsCombineFiles(t *testing.T) {
	var units []Unit
	for _, name := range []string{"a.js", "b.js"} {
		fs := source.NewFileSet()
		id := fs.AddVirtual(name, []byte("a b"))
		bag := diag.NewBag(0)
		bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: id, Start: 2, End: 3}, "expected ';'"))
		units = append(units, Unit{Bag: bag, FileSet: fs})
	}

	var buf bytes.Buffer
	if err := JSONUnits(&buf, units, JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Dropped != 1 || out.Diagnostics[0].File != "a.js" {
		t.Fatalf("json = %+v", out)
	}

	buf.Reset()
	if err := SarifUnits(&buf, units, SarifRunMeta{}); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	results := log.Runs[0].Results
	if len(results) != 2 || len(log.Runs[0].Tool.Driver.Rules) != 1 {
		t.Fatalf("sarif results = %+v", results)
	}
	if uri := results[1].Locations[0].PhysicalLocation.ArtifactLocation.URI; uri != "b.js" {
		t.Fatalf("second uri = %q", uri)
	}
}
