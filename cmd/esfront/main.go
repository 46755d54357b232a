package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"esfront/internal/version"
)

// errFindings makes the process exit with status 1 without printing an
// error line; the diagnostics have already been shown.
var errFindings = errors.New("errors reported")

func newRootCmd(sess *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "esfront",
		Short: "JavaScript and TypeScript syntax front end",
		Long: `esfront tokenizes and parses JavaScript, TypeScript and JSX sources,
reporting syntax diagnostics with suggested fixes`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return sess.open(cmd)
		},
	}

	root.SetVersionTemplate(version.String(false) + "\n")

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newFixCmd())
	root.AddCommand(newCrosscheckCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd())

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 uses esfront.toml or the default)")
	flags.String("config", "", "path to esfront.toml (default: search upward from the working directory)")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.String("log-format", "text", "log format (text|json)")
	flags.String("trace", "", "write trace events to a file ('-' for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace mode (stream|ring|both|log)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
	return root
}

// run executes one command line and releases the session afterwards, also
// when the command fails.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	sess := &session{}
	defer sess.close(stderr)

	root := newRootCmd(sess)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if !errors.Is(err, errFindings) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
