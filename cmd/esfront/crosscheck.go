package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"esfront/internal/crosscheck"
	"esfront/internal/driver"
)

func newCrosscheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crosscheck [flags] <file|directory>...",
		Short: "Compare esfront's verdict with tree-sitter",
		Long: `Crosscheck parses each file with esfront and with the tree-sitter grammar of
the same dialect, and lists files where the two disagree on whether the file
has errors or how many top-level statements it holds`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCrosscheck,
	}
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("all", false, "list files that agree too")
	return cmd
}

func runCrosscheck(cmd *cobra.Command, args []string) error {
	sess := sessionOf(cmd)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	showAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}

	files, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}

	opts := sess.options()
	opts.Timings = false
	reports := make([]*crosscheck.Report, 0, len(files))
	disagreements := 0
	for _, path := range files {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		report, err := crosscheck.Check(cmd.Context(), path, src, opts)
		if err != nil {
			return err
		}
		if !report.Agree() {
			disagreements++
		}
		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			if r.Agree() && !showAll {
				continue
			}
			verdict := "agree"
			if !r.Agree() {
				verdict = "DISAGREE"
			}
			fmt.Fprintf(out, "%s [%s] %s\n", relPath(r.Path), r.Grammar, verdict)
			for _, m := range r.Mismatches {
				fmt.Fprintf(out, "  %s\n", m)
			}
			if r.Esfront.HasErrors {
				fmt.Fprintf(out, "  esfront first error at %d:%d\n", r.Esfront.FirstError.Line, r.Esfront.FirstError.Col)
			}
			if r.TreeSitter.HasErrors {
				fmt.Fprintf(out, "  tree-sitter first error at %d:%d\n", r.TreeSitter.FirstError.Line, r.TreeSitter.FirstError.Col)
			}
		}
		if !sess.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "crosschecked %d files: %d disagreements\n", len(reports), disagreements)
		}
	}

	if disagreements > 0 {
		return errFindings
	}
	return nil
}
