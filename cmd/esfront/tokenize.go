package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"esfront/internal/diagfmt"
	"esfront/internal/dialect"
	"esfront/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file|->",
		Short: "Print the token stream of a source file",
		Long: `Tokenize breaks a source file into tokens without parsing it. Regex and
template boundaries are decided from the previous token, so the stream can
differ from the parser's in rare cases`,
		Args: cobra.ExactArgs(1),
		RunE: runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("sniff", false, "report which grammar extensions the tokens suggest")
	addStdinFlag(cmd)
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	sess := sessionOf(cmd)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	sniff, err := cmd.Flags().GetBool("sniff")
	if err != nil {
		return fmt.Errorf("failed to get sniff flag: %w", err)
	}

	path, src, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	var result *driver.TokenizeResult
	if src != nil {
		result = driver.TokenizeSource(path, src, sess.maxDiagnostics)
	} else if result, err = driver.Tokenize(path, sess.maxDiagnostics); err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   sess.color,
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil || !sniff {
		return err
	}

	c := (dialect.Classifier{}).Classify(dialect.Sniff(result.Tokens))
	if c.Kind == dialect.Unknown {
		_, err = fmt.Fprintln(cmd.ErrOrStderr(), "sniff: no extension syntax found")
		return err
	}
	var scores []string
	for _, k := range []dialect.Kind{dialect.TypeScript, dialect.JSX, dialect.Decorators} {
		if c.Scores[k] > 0 {
			scores = append(scores, fmt.Sprintf("%s=%d", k, c.Scores[k]))
		}
	}
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "sniff: looks like %s (confidence %.0f%%; %s)\n",
		c.Kind, c.Confidence*100, strings.Join(scores, " "))
	return err
}
