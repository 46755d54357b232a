package fuzztests

import (
	"bytes"
	"testing"
	"time"

	"esfront/internal/ast"
	"esfront/internal/dialect"
	"esfront/internal/parser"
	"esfront/internal/source"
	"esfront/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// Longer runs point at a recovery loop that makes no progress.
const parseTimeout = 5 * time.Second

var fuzzDialects = []struct {
	path string
	cfg  dialect.Config
}{
	{"fuzz.js", dialect.ForPath("fuzz.js")},
	{"fuzz.tsx", dialect.ForPath("fuzz.tsx")},
	{"fuzz.d.ts", dialect.ForPath("fuzz.d.ts")},
}

func parse(path string, input []byte, cfg dialect.Config) *parser.Result {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(path, input))
	return parser.Parse(file, cfg, parser.Options{MaxDiagnostics: 128})
}

// FuzzParserInvariants parses every input in several dialects and checks
// the tree and diagnostic invariants, plus that a second parse of the same
// bytes yields the same tree.
func FuzzParserInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		for _, d := range fuzzDialects {
			res := parse(d.path, input, d.cfg)
			if err := testkit.Check(res.Tree, res.Diagnostics); err != nil {
				t.Fatalf("%s: %v\ninput: %q", d.path, err, truncateForLog(input, 200))
			}
			again := parse(d.path, input, d.cfg)
			first := ast.DumpCompact(res.Tree, res.Root)
			second := ast.DumpCompact(again.Tree, again.Root)
			if first != second {
				t.Fatalf("%s: parse is not deterministic\ninput: %q", d.path, truncateForLog(input, 200))
			}
		}
	})
}

// FuzzParserNoHang fails when a single parse exceeds parseTimeout.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("function f() { let x = 1\nlet y = 2 }"))
	f.Add([]byte("{ { { { { { { { { { } } } } } } } } }"))
	f.Add([]byte("for (let i = 0 i < 10 i++) {}"))
	f.Add([]byte("<a><b><c></a>"))
	f.Add([]byte("x = (a, b) => (c, d) => { e"))
	f.Add(bytes.Repeat([]byte("[{("), 4000))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parse("fuzz.tsx", input, dialect.ForPath("fuzz.tsx"))
		}()

		timer := time.NewTimer(parseTimeout)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes.
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
