package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"esfront/internal/dialect"
)

const maxSeedBytes = 64 << 10

// inlineSeeds cover constructs that once stressed recovery or
// disambiguation.
var inlineSeeds = []string{
	"",
	"let a = 1 let b = 2",
	"a ?? b || c",
	"x = a ? (b) : c => d",
	"f<T>(x) < y > (z)",
	"`${`${`${a}`}`}`",
	"/=/.test(s) / 2 /= 1",
	"<div>{</div>",
	"class { #x; m() { super.x } }",
	"for (let [a, b] of c) for await (x of y);",
	"(((((((((((((((((((((((((((((((((a)))))))))))))))))))))))))))))))))",
	"if (a) function f() {} else label: x",
	"// @ts-expect-error\nlet x: = 1",
	"\xEF\xBB\xBFlet a = 1;\r\n",
	"let s = '\\u{110000}';",
	"0b102 0o9 1_000_ 08 .5e+",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !dialect.IsSourcePath(path) {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
