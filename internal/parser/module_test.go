package parser_test

import (
	"testing"

	"esfront/internal/ast"
	"esfront/internal/diag"
)

func TestImportForms(t *testing.T) {
	tests := []struct {
		src   string
		specs []ast.Kind
	}{
		{`import "side-effect"`, nil},
		{`import a from "m"`, []ast.Kind{ast.ImportDefaultSpecifier}},
		{`import * as ns from "m"`, []ast.Kind{ast.ImportNamespaceSpecifier}},
		{`import { a, b as c, "d-e" as f } from "m"`, []ast.Kind{ast.ImportSpecifier, ast.ImportSpecifier, ast.ImportSpecifier}},
		{`import a, { b } from "m"`, []ast.Kind{ast.ImportDefaultSpecifier, ast.ImportSpecifier}},
		{`import a, * as b from "m"`, []ast.Kind{ast.ImportDefaultSpecifier, ast.ImportNamespaceSpecifier}},
		{`import data from "./d.json" with { type: "json" }`, []ast.Kind{ast.ImportDefaultSpecifier}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseJS(t, tt.src)
			expectClean(t, res)
			imp, ok := res.Tree.Import(onlyStmt(t, res))
			if !ok {
				t.Fatalf("not an import:\n%s", dump(res))
			}
			if len(imp.Specifiers) != len(tt.specs) {
				t.Fatalf("got %d specifiers, want %d:\n%s", len(imp.Specifiers), len(tt.specs), dump(res))
			}
			for i, k := range tt.specs {
				expectKind(t, res, imp.Specifiers[i], k)
			}
			expectKind(t, res, imp.Source, ast.StringLit)
		})
	}
}

func TestExportForms(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Kind
	}{
		{"export const a = 1, b = 2", ast.ExportNamedDecl},
		{"export function f() {}", ast.ExportNamedDecl},
		{"export async function g() {}", ast.ExportNamedDecl},
		{"export class C {}", ast.ExportNamedDecl},
		{"export { a, b as c, d as default }", ast.ExportNamedDecl},
		{`export { x } from "m"`, ast.ExportNamedDecl},
		{`export * from "m"`, ast.ExportAllDecl},
		{`export * as ns from "m"`, ast.ExportAllDecl},
		{"export default function () {}", ast.ExportDefaultDecl},
		{"export default class {}", ast.ExportDefaultDecl},
		{"export default a + b", ast.ExportDefaultDecl},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseJS(t, tt.src)
			expectClean(t, res)
			expectKind(t, res, onlyStmt(t, res), tt.want)
		})
	}
}

func TestExportSpecifiers(t *testing.T) {
	res := parseJS(t, "export { a, b as c }")
	specs := res.Tree.Elems(onlyStmt(t, res), "specifiers")
	if len(specs) != 2 {
		t.Fatalf("got %d specifiers", len(specs))
	}
	if res.Tree.Child(specs[0], "exported") != ast.NoNode {
		t.Fatalf("plain specifier has an exported name")
	}
	if got := res.Tree.Source(res.Tree.Child(specs[1], "exported")); got != "c" {
		t.Fatalf("exported name = %q", got)
	}
}

func TestImportOutsideModule(t *testing.T) {
	for _, src := range []string{`import a from "m"`, "export const x = 1", "import.meta.url"} {
		res := parseWith(t, src, scriptCfg)
		if !hasCode(res, diag.SynImportOutsideModule) {
			t.Fatalf("%q: want %s, got %v", src, diag.SynImportOutsideModule.ID(), codes(res))
		}
	}
	// dynamic import is an expression and fine in scripts
	res := parseWith(t, `import("m").then(load)`, scriptCfg)
	expectClean(t, res)
	expectKind(t, res, res.Tree.Child(mustFind(t, res, ast.MemberExpr), "object"), ast.ImportCall)
}

func TestTypeScriptModuleForms(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Kind
	}{
		{`import fs = require("fs")`, ast.ImportEqualsDecl},
		{"import Alias = NS.Inner", ast.ImportEqualsDecl},
		{"export = Foo", ast.ExportAssignment},
		{"export as namespace Lib", ast.NamespaceExportDecl},
		{`import type { T } from "m"`, ast.ImportDecl},
		{`import { type T, U } from "m"`, ast.ImportDecl},
		{`export type { T } from "m"`, ast.ExportNamedDecl},
		{"export interface I {}", ast.ExportNamedDecl},
		{"export type A = string", ast.ExportNamedDecl},
		{"export default interface I {}", ast.ExportDefaultDecl},
		{"export import A = B.C", ast.ExportNamedDecl},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := parseWith(t, tt.src, tsCfg)
			expectClean(t, res)
			expectKind(t, res, onlyStmt(t, res), tt.want)
		})
	}
}

func TestTypeOnlyImport(t *testing.T) {
	res := parseWith(t, `import type { T } from "m"`, tsCfg)
	imp, _ := res.Tree.Import(onlyStmt(t, res))
	if !imp.TypeOnly {
		t.Fatalf("import type not flagged")
	}

	// a default import named type
	res = parseWith(t, `import type from "m"`, tsCfg)
	expectClean(t, res)
	imp, _ = res.Tree.Import(onlyStmt(t, res))
	if imp.TypeOnly || len(imp.Specifiers) != 1 {
		t.Fatalf("default import named type misread:\n%s", dump(res))
	}

	res = parseWith(t, `import { type T, U } from "m"`, tsCfg)
	imp, _ = res.Tree.Import(onlyStmt(t, res))
	if !res.Tree.Has(imp.Specifiers[0], ast.FlagTypeOnly) || res.Tree.Has(imp.Specifiers[1], ast.FlagTypeOnly) {
		t.Fatalf("type modifier on the wrong specifier:\n%s", dump(res))
	}
}
