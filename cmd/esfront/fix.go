package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"esfront/internal/diag"
	"esfront/internal/driver"
	"esfront/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file|directory>...",
		Short: "Apply suggested fixes to source files",
		Long: `Fix parses each file, applies the fixes its diagnostics suggest and writes the
result back, keeping the file's BOM and line endings. With --all the file is
reparsed after every round since one fix can expose the next`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFix,
	}
	cmd.Flags().Bool("all", false, "apply all safe fixes")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply the fix with this identifier")
	cmd.Flags().Bool("unsafe", false, "with --all, also apply fixes that rely on heuristics")
	cmd.Flags().StringSlice("category", nil, "only fix diagnostics of these categories")
	cmd.Flags().Bool("dry-run", false, "report what would change without writing")
	addDialectFlag(cmd)
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	sess := sessionOf(cmd)

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	unsafe, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return fmt.Errorf("failed to get unsafe flag: %w", err)
	}
	categories, err := cmd.Flags().GetStringSlice("category")
	if err != nil {
		return fmt.Errorf("failed to get category flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	fixOpts := fix.Options{Mode: fix.ModeOnce, ID: targetID, Unsafe: unsafe}
	if targetID != "" {
		fixOpts.Mode = fix.ModeID
	} else if applyAll {
		fixOpts.Mode = fix.ModeAll
	}
	for _, c := range categories {
		code, ok := diag.CodeForCategory(c)
		if !ok {
			return fmt.Errorf("unknown diagnostic category %q", c)
		}
		fixOpts.Codes = append(fixOpts.Codes, code)
	}

	files, err := driver.ExpandPaths(args)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// Fix IDs are only unique within one file.
	if targetID != "" && len(files) != 1 {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	opts := driver.FixOptions{Options: sess.options(), Fix: fixOpts}
	opts.Timings = false
	if opts.Dialect, err = readDialect(cmd); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	changed := 0
	for _, path := range files {
		outcome, err := driver.FixFile(path, opts, !dryRun)
		if errors.Is(err, fix.ErrNoFixes) {
			if outcome != nil {
				printSkipped(out, outcome.Skipped)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		if outcome.Changed() {
			changed++
		}
		if err := printFixOutcome(out, outcome, dryRun); err != nil {
			return err
		}
	}

	if changed == 0 {
		if targetID != "" {
			return fmt.Errorf("fix: no fix with id %q", targetID)
		}
		if !sess.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no applicable fixes found")
		}
	}
	return nil
}

func printFixOutcome(w io.Writer, o *driver.FixOutcome, dryRun bool) error {
	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	if _, err := fmt.Fprintf(w, "%s %d fix(es) to %s", verb, len(o.Applied), relPath(o.Path)); err != nil {
		return err
	}
	if o.Rounds > 1 {
		fmt.Fprintf(w, " in %d rounds", o.Rounds)
	}
	fmt.Fprintln(w, ":")
	for _, item := range o.Applied {
		if _, err := fmt.Fprintf(w, "  %s [%s] (%d edits, %s)\n", item.Title, item.ID, item.Edits, item.Code.Category()); err != nil {
			return err
		}
	}
	printSkipped(w, o.Skipped)
	if o.Final != nil && o.Final.HasErrors() {
		fmt.Fprintf(w, "  %d diagnostics remain\n", o.Final.Diagnostics.Len())
	}
	return nil
}

func printSkipped(w io.Writer, skipped []fix.Skipped) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintln(w, "Skipped fixes:")
	for _, skip := range skipped {
		id := skip.ID
		if id == "" {
			id = "(unnamed)"
		}
		if skip.Title != "" {
			fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
		} else {
			fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
		}
	}
}
