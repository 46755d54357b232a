package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esfront/internal/diagfmt"
	"esfront/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file|->",
		Short: "Parse a source file and print its syntax tree",
		Long: `Parse builds the syntax tree of one file and prints it. Diagnostics go to
stderr; the tree is printed even when recovery was needed`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("style", "sexpr", "tree style (sexpr|tree|json)")
	cmd.Flags().Bool("spans", false, "include byte ranges")
	cmd.Flags().Bool("comments", false, "include attached comments")
	cmd.Flags().Bool("directives", false, "list suppression directives after the tree")
	cmd.Flags().Bool("no-suppress", false, "report diagnostics covered by directives")
	addDialectFlag(cmd)
	addStdinFlag(cmd)
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	sess := sessionOf(cmd)

	styleStr, err := cmd.Flags().GetString("style")
	if err != nil {
		return fmt.Errorf("failed to get style flag: %w", err)
	}
	style, err := diagfmt.ParseTreeStyle(styleStr)
	if err != nil {
		return err
	}
	spans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	comments, err := cmd.Flags().GetBool("comments")
	if err != nil {
		return fmt.Errorf("failed to get comments flag: %w", err)
	}
	showDirectives, err := cmd.Flags().GetBool("directives")
	if err != nil {
		return fmt.Errorf("failed to get directives flag: %w", err)
	}
	noSuppress, err := cmd.Flags().GetBool("no-suppress")
	if err != nil {
		return fmt.Errorf("failed to get no-suppress flag: %w", err)
	}

	opts := sess.options()
	opts.NoSuppress = noSuppress
	if opts.Dialect, err = readDialect(cmd); err != nil {
		return err
	}

	path, src, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	var res *driver.FileResult
	if src != nil {
		res = driver.ParseSource(path, src, opts)
	} else if res, err = driver.ParseFile(path, opts); err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if res.Diagnostics.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Diagnostics, res.FileSet, diagfmt.PrettyOpts{
			Color:     sess.color,
			Context:   2,
			ShowNotes: true,
		})
	}

	out := cmd.OutOrStdout()
	if err := diagfmt.FormatTree(out, res.Parse.Tree, res.Parse.Root, diagfmt.TreeOpts{
		Style:    style,
		Spans:    spans,
		Comments: comments,
	}); err != nil {
		return err
	}
	if showDirectives {
		return diagfmt.FormatDirectives(out, res.Parse.Directives, style == diagfmt.TreeJSON)
	}
	return nil
}
