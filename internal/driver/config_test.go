package driver_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"esfront/internal/driver"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, driver.ConfigFileName), `
[parse]
max_diagnostics = 20
jobs = 2
decorators = false

[dialect.js]
jsx = true

[dialect."d.ts"]
strict = false

[cache]
enabled = true
dir = ".cache"
`)
	sub := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := driver.LoadConfig(sub)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Path != filepath.Join(root, driver.ConfigFileName) {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Parse.MaxDiagnostics != 20 || cfg.Parse.Jobs != 2 {
		t.Errorf("parse section = %+v", cfg.Parse)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Dir != filepath.Join(root, ".cache") {
		t.Errorf("cache section = %+v", cfg.Cache)
	}

	js := cfg.DialectFor("app.js")
	if !js.JSX || js.Decorators {
		t.Errorf("app.js dialect = %s", js)
	}
	ts := cfg.DialectFor("app.ts")
	if ts.JSX || !ts.TypeSyntax || ts.Decorators {
		t.Errorf("app.ts dialect = %s", ts)
	}
	dts := cfg.DialectFor("lib.d.ts")
	if !dts.Ambient || dts.StrictDirectives {
		t.Errorf("lib.d.ts dialect = %s", dts)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := driver.LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Path != "" {
		// A config above the temp dir would make this test meaningless.
		t.Skipf("found %s above the temp dir", cfg.Path)
	}
	if !cfg.SuppressEnabled() {
		t.Errorf("suppression off by default")
	}
}

func TestReadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), driver.ConfigFileName)
	writeFile(t, path, "[parse]\nmax_diagnostic = 3\n")
	_, err := driver.ReadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "parse.max_diagnostic") {
		t.Fatalf("err = %v", err)
	}
}

func TestReadConfigRejectsNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), driver.ConfigFileName)
	writeFile(t, path, "[parse]\njobs = -1\n")
	if _, err := driver.ReadConfig(path); err == nil {
		t.Fatalf("negative jobs accepted")
	}
}

func TestNilConfigDialect(t *testing.T) {
	var cfg *driver.Config
	if got := cfg.DialectFor("x.tsx"); !got.JSX || !got.TypeSyntax {
		t.Errorf("x.tsx = %s", got)
	}
}

func TestListSources(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"b.ts", "a.js", "c.txt", "lib/d.tsx", "lib/e.cjs",
		"node_modules/pkg/index.js", ".git/hooks/x.js", "vendor/v.js",
	} {
		writeFile(t, filepath.Join(root, p), "")
	}
	got, err := driver.ListSources(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.js", "b.ts", "lib/d.tsx", "lib/e.cjs"}
	if len(got) != len(want) {
		t.Fatalf("ListSources = %v", got)
	}
	for i, w := range want {
		if got[i] != filepath.Join(root, filepath.FromSlash(w)) {
			t.Errorf("[%d] = %q, want %q", i, got[i], w)
		}
	}
}

func TestExpandPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), "")
	writeFile(t, filepath.Join(root, "notes.md"), "")
	writeFile(t, filepath.Join(root, "sub", "b.ts"), "")

	got, err := driver.ExpandPaths([]string{
		filepath.Join(root, "notes.md"),
		root,
		filepath.Join(root, "a.js"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "notes.md"),
		filepath.Join(root, "a.js"),
		filepath.Join(root, "sub", "b.ts"),
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("ExpandPaths = %v, want %v", got, want)
	}

	if _, err := driver.ExpandPaths([]string{filepath.Join(root, "missing")}); err == nil {
		t.Fatalf("missing path accepted")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ESFRONT_MAX_DIAGNOSTICS": "25",
		"ESFRONT_SUPPRESS":        "false",
		"ESFRONT_CACHE":           "true",
		"ESFRONT_CACHE_DIR":       "/tmp/esfront-cache",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := &driver.Config{Parse: driver.ParseConfig{Jobs: 3}}
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Parse.MaxDiagnostics != 25 || cfg.Parse.Jobs != 3 {
		t.Fatalf("parse = %+v", cfg.Parse)
	}
	if cfg.SuppressEnabled() || !cfg.Cache.Enabled || cfg.Cache.Dir != "/tmp/esfront-cache" {
		t.Fatalf("config = %+v", cfg)
	}

	env = map[string]string{"ESFRONT_JOBS": "many"}
	if err := (&driver.Config{}).ApplyEnv(lookup); err == nil {
		t.Fatal("expected an error for a non-numeric ESFRONT_JOBS")
	}
	env = map[string]string{"ESFRONT_JOBS": "-2"}
	if err := (&driver.Config{}).ApplyEnv(lookup); err == nil {
		t.Fatal("expected an error for negative ESFRONT_JOBS")
	}
}
