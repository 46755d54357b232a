package driver_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"esfront/internal/driver"
	"esfront/internal/fix"
)

func TestFixSourceAll(t *testing.T) {
	out, err := driver.FixSource("a.js", []byte("let a = 1 let b = 2 let c = 3"), driver.FixOptions{Fix: fix.Options{Mode: fix.ModeAll}})
	if err != nil {
		t.Fatalf("FixSource: %v", err)
	}
	if got := string(out.After); got != "let a = 1; let b = 2; let c = 3" {
		t.Fatalf("after = %q", got)
	}
	if !out.Changed() || out.Rounds == 0 || len(out.Applied) != 2 {
		t.Fatalf("outcome = %+v", out)
	}
	if out.Final == nil || out.Final.Diagnostics.Len() != 0 {
		t.Fatalf("final parse not clean")
	}
}

func TestFixSourceOnce(t *testing.T) {
	out, err := driver.FixSource("a.js", []byte("let a = 1 let b = 2 let c = 3"), driver.FixOptions{Fix: fix.Options{Mode: fix.ModeOnce}})
	if err != nil {
		t.Fatalf("FixSource: %v", err)
	}
	if out.Rounds != 1 || string(out.After) != "let a = 1; let b = 2 let c = 3" {
		t.Fatalf("rounds %d after %q", out.Rounds, out.After)
	}
}

func TestFixSourceNothingToDo(t *testing.T) {
	out, err := driver.FixSource("a.js", []byte("let a = 1;\n"), driver.FixOptions{Fix: fix.Options{Mode: fix.ModeAll}})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v", err)
	}
	if out.Changed() {
		t.Fatalf("clean buffer changed")
	}
}

func TestFixFileKeepsLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.js")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFlet a = 1 let b = 2\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := driver.FixFile(path, driver.FixOptions{Fix: fix.Options{Mode: fix.ModeAll}}, true)
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if string(out.After) != "let a = 1; let b = 2\n" {
		t.Fatalf("after = %q", out.After)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\xEF\xBB\xBFlet a = 1; let b = 2\r\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestFixFileDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.js")
	if err := os.WriteFile(path, []byte("let a = 1 let b = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := driver.FixFile(path, driver.FixOptions{Fix: fix.Options{Mode: fix.ModeAll}}, false); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "let a = 1 let b = 2\n" {
		t.Fatalf("dry run wrote the file: %q", data)
	}
}

func TestFixSourceReportsSkippedFixOnce(t *testing.T) {
	src := "a ?? b || c\nlet x = 1 let y = 2\n"
	out, err := driver.FixSource("a.js", []byte(src), driver.FixOptions{Fix: fix.Options{Mode: fix.ModeAll}})
	if err != nil {
		t.Fatalf("FixSource: %v", err)
	}
	if got := string(out.After); got != "a ?? b || c\nlet x = 1; let y = 2\n" {
		t.Fatalf("after = %q", got)
	}
	if out.Rounds != 1 {
		t.Fatalf("rounds = %d", out.Rounds)
	}
	if len(out.Skipped) != 1 || out.Skipped[0].ID != "SYN2010@1:6" {
		t.Fatalf("skipped = %+v", out.Skipped)
	}
}
