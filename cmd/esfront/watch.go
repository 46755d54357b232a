package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"esfront/internal/diagfmt"
	"esfront/internal/driver"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] <file|directory>...",
		Short: "Recheck files whenever they change",
		Long: `Watch checks the given files and directories once, then prints fresh
diagnostics for each source file that is saved, created or removed. Stop
it with Ctrl-C`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWatch,
	}
	cmd.Flags().Duration("debounce", driver.DefaultWatchDebounce, "wait this long for more changes before rechecking")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	sess := sessionOf(cmd)

	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := driver.WatchOptions{
		BatchOptions: driver.BatchOptions{Options: sess.options(), Jobs: jobs},
		Debounce:     debounce,
	}
	// Timings describe one run and would defeat the result cache.
	opts.Timings = false

	out := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	prettyOpts := diagfmt.PrettyOpts{
		Color:     sess.color,
		Context:   2,
		ShowNotes: withNotes,
		ShowFixes: suggest,
	}
	return driver.Watch(ctx, args, opts, func(b driver.WatchBatch) {
		errs := 0
		for _, res := range b.Results {
			if res.HasErrors() {
				errs++
			}
			if res.Diagnostics.Len() > 0 {
				diagfmt.Pretty(out, res.Diagnostics, res.FileSet, prettyOpts)
				fmt.Fprintln(out)
			}
		}
		for _, path := range b.Removed {
			fmt.Fprintf(stderr, "removed %s\n", relPath(path))
		}
		if sess.quiet {
			return
		}
		what := "rechecked"
		if b.Initial {
			what = "checked"
		}
		fmt.Fprintf(stderr, "[%s] %s %d files, %d with errors; watching for changes\n",
			time.Now().Format(time.TimeOnly), what, len(b.Results), errs)
	})
}
