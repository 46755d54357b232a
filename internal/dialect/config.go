package dialect

import (
	"path/filepath"
	"strings"
)

// Config selects the grammar accepted by one parse.
type Config struct {
	JSX        bool
	TypeSyntax bool
	// StrictDirectives honours "use strict" prologues: legacy octal literals,
	// 'with' and reserved strict-mode names are reported after one.
	StrictDirectives bool
	// AllowReturnOutsideFunction accepts top-level 'return' (CommonJS wrappers).
	AllowReturnOutsideFunction bool
	Decorators                 bool
	// Module parses the buffer as an ES module: import/export are accepted and
	// strict mode is implied.
	Module bool
	// Ambient marks declaration files (.d.ts), where bodies are optional.
	Ambient bool
}

// Default is plain JavaScript with modules, strict directives and decorators.
func Default() Config {
	return Config{StrictDirectives: true, Decorators: true, Module: true}
}

// ForPath derives the configuration from a file name.
func ForPath(path string) Config {
	cfg := Default()
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".d.ts"), strings.HasSuffix(base, ".d.mts"), strings.HasSuffix(base, ".d.cts"):
		cfg.TypeSyntax = true
		cfg.Ambient = true
	case strings.HasSuffix(base, ".tsx"):
		cfg.TypeSyntax = true
		cfg.JSX = true
	case strings.HasSuffix(base, ".ts"), strings.HasSuffix(base, ".mts"), strings.HasSuffix(base, ".cts"):
		cfg.TypeSyntax = true
	case strings.HasSuffix(base, ".jsx"):
		cfg.JSX = true
	case strings.HasSuffix(base, ".cjs"):
		cfg.Module = false
		cfg.AllowReturnOutsideFunction = true
	}
	return cfg
}

// Extensions lists every file extension ForPath recognises.
func Extensions() []string {
	return []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}
}

// IsSourcePath reports whether path has a recognised extension.
func IsSourcePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// Enabled reports whether the extension k is accepted.
func (c Config) Enabled(k Kind) bool {
	switch k {
	case TypeScript:
		return c.TypeSyntax
	case JSX:
		return c.JSX
	case Decorators:
		return c.Decorators
	default:
		return true
	}
}

// With returns a copy of c with k enabled.
func (c Config) With(k Kind) Config {
	switch k {
	case TypeScript:
		c.TypeSyntax = true
	case JSX:
		c.JSX = true
	case Decorators:
		c.Decorators = true
	}
	return c
}

// String lists the enabled flags, e.g. "ts+jsx+module".
func (c Config) String() string {
	var parts []string
	add := func(on bool, name string) {
		if on {
			parts = append(parts, name)
		}
	}
	add(c.TypeSyntax, "ts")
	add(c.JSX, "jsx")
	add(c.Decorators, "decorators")
	add(c.Module, "module")
	add(c.StrictDirectives, "strict")
	add(c.AllowReturnOutsideFunction, "return")
	add(c.Ambient, "ambient")
	if len(parts) == 0 {
		return "js"
	}
	return strings.Join(parts, "+")
}

// Key is a compact stable encoding used in cache keys.
func (c Config) Key() uint8 {
	var k uint8
	for i, on := range []bool{c.JSX, c.TypeSyntax, c.StrictDirectives, c.AllowReturnOutsideFunction, c.Decorators, c.Module, c.Ambient} {
		if on {
			k |= 1 << uint(i)
		}
	}
	return k
}
