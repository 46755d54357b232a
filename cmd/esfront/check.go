package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"esfront/internal/diag"
	"esfront/internal/diagfmt"
	"esfront/internal/directive"
	"esfront/internal/driver"
	"esfront/internal/observ"
	"esfront/internal/version"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file|directory>...",
		Short: "Report syntax diagnostics for files or directories",
		Long: `Check parses every source file named on the command line, or found below a
named directory, and prints its diagnostics. The exit status is 1 when any
error was reported`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	cmd.Flags().String("ui", "auto", "show a progress view (auto|on|off)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "show the source after applying each fix")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("disk-cache", false, "reuse diagnostics of unchanged files across runs")
	cmd.Flags().Bool("no-suppress", false, "report diagnostics covered by directives")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors for the exit status")
	cmd.Flags().Bool("suggest-dialect", false, "propose a dialect for files whose errors come from disabled extensions")
	cmd.Flags().Bool("directives", false, "summarize suppression directives found in the checked files")
	addDialectFlag(cmd)
	return cmd
}

type checkFlags struct {
	format           string
	ui               uiMode
	jobs             int
	withNotes        bool
	suggest          bool
	preview          bool
	fullPath         bool
	diskCache        bool
	noSuppress       bool
	noWarnings       bool
	warningsAsErrors bool
	suggestDialect   bool
	directives       bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json", "sarif":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{"with-notes", &f.withNotes},
		{"suggest", &f.suggest},
		{"preview", &f.preview},
		{"fullpath", &f.fullPath},
		{"disk-cache", &f.diskCache},
		{"no-suppress", &f.noSuppress},
		{"no-warnings", &f.noWarnings},
		{"warnings-as-errors", &f.warningsAsErrors},
		{"suggest-dialect", &f.suggestDialect},
		{"directives", &f.directives},
	}
	for _, b := range bools {
		if *b.dst, err = flags.GetBool(b.name); err != nil {
			return f, fmt.Errorf("failed to get %s flag: %w", b.name, err)
		}
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	sess := sessionOf(cmd)
	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}

	files, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !sess.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no source files found")
		}
		return nil
	}

	opts := driver.BatchOptions{Options: sess.options(), Jobs: flags.jobs}
	opts.NoSuppress = flags.noSuppress
	if opts.Dialect, err = readDialect(cmd); err != nil {
		return err
	}
	var timer *observ.Timer
	if sess.timings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}
	if flags.diskCache || sess.config.Cache.Enabled {
		cache, err := driver.OpenDiskCache(sess.config.Cache.Dir, "esfront")
		if err != nil {
			sess.log.WithError(err).Warn("disk cache disabled")
		} else {
			opts.Cache = cache
		}
	}

	var results []*driver.FileResult
	if flags.format == "pretty" && shouldUseTUI(flags.ui, cmd.OutOrStdout(), len(files)) {
		results, err = parseFilesWithUI(cmd.Context(), cmd.OutOrStdout(), "esfront check", files, opts)
	} else {
		results, err = driver.ParseFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if flags.noWarnings {
		for _, res := range results {
			res.Diagnostics.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
		}
	}

	out := cmd.OutOrStdout()
	if err := writeCheckReport(out, results, flags, sess, args); err != nil {
		return err
	}

	errorsFound := false
	for _, res := range results {
		if res.HasErrors() || (flags.warningsAsErrors && res.Diagnostics.HasWarnings()) {
			errorsFound = true
		}
	}

	// Human-oriented extras go to stderr so machine formats stay parseable.
	stderr := cmd.ErrOrStderr()
	if flags.suggestDialect {
		printDialectSuggestions(stderr, results, opts.Options)
	}
	if flags.directives {
		printDirectiveSummary(stderr, results)
	}
	if timer != nil {
		fmt.Fprint(stderr, timer.Summary())
	}
	if !sess.quiet && flags.format == "pretty" {
		printCheckSummary(stderr, results)
	}

	if errorsFound {
		return errFindings
	}
	return nil
}

func writeCheckReport(out io.Writer, results []*driver.FileResult, flags checkFlags, sess *session, args []string) error {
	pathMode := diagfmt.PathModeAuto
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := flags.suggest || flags.preview

	switch flags.format {
	case "json":
		return diagfmt.JSONUnits(out, units(results), diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     flags.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  flags.preview,
		})
	case "sarif":
		return diagfmt.SarifUnits(out, units(results), diagfmt.SarifRunMeta{
			ToolName:       "esfront",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{"check"}, args...),
		})
	case "short":
		for _, res := range results {
			if text := diag.FormatShortDiagnostics(res.Diagnostics.Items(), res.FileSet, flags.withNotes); text != "" {
				fmt.Fprintln(out, text)
			}
		}
		return nil
	}

	first := true
	for _, res := range results {
		if res.Diagnostics.Len() == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(out)
		}
		first = false
		diagfmt.Pretty(out, res.Diagnostics, res.FileSet, diagfmt.PrettyOpts{
			Color:       sess.color,
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   flags.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: flags.preview,
		})
	}
	return nil
}

func units(results []*driver.FileResult) []diagfmt.Unit {
	out := make([]diagfmt.Unit, 0, len(results))
	for _, res := range results {
		out = append(out, diagfmt.Unit{Bag: res.Diagnostics, FileSet: res.FileSet})
	}
	return out
}

func printCheckSummary(w io.Writer, results []*driver.FileResult) {
	var errs, warns, cached, corrupt int
	for _, res := range results {
		for _, d := range res.Diagnostics.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
		if res.Cached {
			cached++
		}
		if res.Corrupt {
			corrupt++
		}
	}
	line := fmt.Sprintf("checked %d files: %d errors, %d warnings", len(results), errs, warns)
	if corrupt > 0 {
		line += fmt.Sprintf(", %d recovered", corrupt)
	}
	if cached > 0 {
		line += fmt.Sprintf(" (%d cached)", cached)
	}
	fmt.Fprintln(w, line)
}

func printDialectSuggestions(w io.Writer, results []*driver.FileResult, opts driver.Options) {
	for _, res := range results {
		s := driver.SuggestDialect(res, 0, opts)
		if s == nil {
			continue
		}
		kinds := make([]string, len(s.Enable))
		for i, k := range s.Enable {
			kinds[i] = k.String()
		}
		verdict := "errors remain"
		if s.Clean {
			verdict = "parses cleanly"
		}
		fmt.Fprintf(w, "%s: looks like %v; as %s it %s\n", relPath(s.Path), kinds, s.Suggest, verdict)
	}
}

func printDirectiveSummary(w io.Writer, results []*driver.FileResult) {
	reg := directive.NewRegistry()
	for _, res := range results {
		if res.Parse != nil {
			reg.Add(res.Path, res.Parse.Directives)
		}
	}
	fmt.Fprintf(w, "directives: %d\n", reg.Len())
	for _, kind := range []directive.Kind{
		directive.Ignore, directive.IgnoreFile, directive.TSIgnore, directive.TSExpectError,
		directive.ESLintDisable, directive.ESLintDisableNextLine, directive.ESLintDisableLine,
	} {
		if n := reg.Count(kind); n > 0 {
			fmt.Fprintf(w, "  %-26s %d\n", kind, n)
		}
	}
	unused := 0
	for _, res := range results {
		unused += len(res.Unused)
	}
	if unused > 0 {
		fmt.Fprintf(w, "  %-26s %d\n", "unused @ts-expect-error", unused)
	}
}
