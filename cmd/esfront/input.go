package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"esfront/internal/dialect"
)

// readInput returns the buffer named by arg. "-" reads standard input and
// names the buffer after --stdin-path, whose extension picks the dialect.
func readInput(cmd *cobra.Command, arg string) (path string, src []byte, err error) {
	if arg != "-" {
		return arg, nil, nil
	}
	path, err = cmd.Flags().GetString("stdin-path")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get stdin-path flag: %w", err)
	}
	src, err = io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return path, src, nil
}

func addStdinFlag(cmd *cobra.Command) {
	cmd.Flags().String("stdin-path", "stdin.ts", "file name used for input read from '-'")
}

// readDialect maps --dialect to a configuration; empty means derive it from
// the path and esfront.toml.
func readDialect(cmd *cobra.Command) (*dialect.Config, error) {
	value, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return nil, fmt.Errorf("failed to get dialect flag: %w", err)
	}
	if value == "" {
		return nil, nil
	}
	switch value {
	case "js", "mjs", "cjs", "jsx", "ts", "mts", "cts", "tsx", "d.ts":
		cfg := dialect.ForPath("input." + value)
		return &cfg, nil
	}
	return nil, fmt.Errorf("invalid --dialect value %q (expected js|cjs|jsx|ts|tsx|d.ts)", value)
}

func addDialectFlag(cmd *cobra.Command) {
	cmd.Flags().String("dialect", "", "parse as this file type regardless of extension (js|cjs|jsx|ts|tsx|d.ts)")
}
