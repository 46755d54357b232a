package parser_test

import (
	"bytes"
	"fmt"
	"testing"

	"esfront/internal/dialect"
	"esfront/internal/parser"
	"esfront/internal/source"
)

func benchParse(b *testing.B, program []byte, cfg dialect.Config) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.ts", program))

	b.ReportAllocs()
	b.SetBytes(int64(len(program)))
	b.ResetTimer()

	for b.Loop() {
		parser.Parse(file, cfg, parser.Options{})
	}
}

func BenchmarkParseShort(b *testing.B) {
	benchParse(b, []byte(`import { readFile } from "fs"; export function main() { return readFile("x") }`), jsCfg)
}

func BenchmarkParseLarge(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString("import * as m from \"m\";\n")
	for i := range 2000 {
		fmt.Fprintf(&buf, "export function f%d(a: number, b?: string): Promise<number> { const x = a ** 2 + m.g(b ?? '') ; return x > 1 ? x : -x }\n", i)
	}
	benchParse(b, buf.Bytes(), tsCfg)
}

func BenchmarkParseJSX(b *testing.B) {
	var buf bytes.Buffer
	for i := range 500 {
		fmt.Fprintf(&buf, "const C%d = ({ items }) => <ul className=\"list\">{items.map(i => <li key={i}>{i}</li>)}</ul>\n", i)
	}
	benchParse(b, buf.Bytes(), jsxCfg)
}

func TestParseAllocs(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("alloc.js", []byte("import { a } from 'm'; function main() { let x = a(1); }")))

	allocs := testing.AllocsPerRun(100, func() {
		parser.Parse(file, jsCfg, parser.Options{})
	})

	t.Logf("allocs/op: %.1f", allocs)
}
