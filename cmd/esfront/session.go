package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"esfront/internal/driver"
	"esfront/internal/prof"
	"esfront/internal/trace"
)

// session holds what every subcommand derives from the global flags.
type session struct {
	log            *logrus.Logger
	tracer         trace.Tracer
	config         *driver.Config
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int

	cleanup func(io.Writer)
}

type sessionKey struct{}

// sessionOf returns the session opened for cmd. Commands run outside the
// root's pre-run hook get defaults.
func sessionOf(cmd *cobra.Command) *session {
	if ctx := cmd.Context(); ctx != nil {
		if s, ok := ctx.Value(sessionKey{}).(*session); ok {
			return s
		}
	}
	return &session{log: logrus.New(), tracer: trace.Nop, config: &driver.Config{}}
}

func (s *session) open(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	s.color, err = resolveColor(colorFlag, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	color.NoColor = !s.color

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.maxDiagnostics < 0 {
		return fmt.Errorf("--max-diagnostics must not be negative")
	}

	if s.log, err = newLogger(cmd); err != nil {
		return err
	}

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		s.config, err = driver.ReadConfig(configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			s.config, err = driver.LoadConfig(wd)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := s.config.ApplyEnv(nil); err != nil {
		return err
	}
	if s.config.Path != "" {
		s.log.WithField("path", s.config.Path).Debug("using config")
	}
	if s.config.Log.Level != "" && !flags.Changed("log-level") {
		level, err := logrus.ParseLevel(s.config.Log.Level)
		if err != nil {
			return fmt.Errorf("invalid log.level in %s: %w", s.config.Path, err)
		}
		s.log.SetLevel(level)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
	tracer, cleanup, err := setupTracing(cmd, s.log)
	if err != nil {
		return err
	}
	s.tracer = tracer
	s.cleanup = cleanup

	profiles, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	s.cleanup = func(stderr io.Writer) {
		if err := profiles.Stop(); err != nil {
			fmt.Fprintf(stderr, "profile: %v\n", err)
		}
		cleanup(stderr)
	}
	return nil
}

// setupProfiling starts the profilers named by the profiling flags.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}

func (s *session) close(stderr io.Writer) {
	if s.cleanup != nil {
		s.cleanup(stderr)
		s.cleanup = nil
	}
}

// options builds the single-file driver options shared by all commands.
func (s *session) options() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Timings:        s.timings,
		Tracer:         s.tracer,
		Logger:         s.log,
		Config:         s.config,
	}
}

func resolveColor(value string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return isTerminal(out) && os.Getenv("NO_COLOR") == "", nil
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}

func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	flags := cmd.Root().PersistentFlags()
	levelStr, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	format, err := flags.GetString("log-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-format flag: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(level)
	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		tty := isTerminal(stderr)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: tty, DisableColors: !tty})
	default:
		return nil, fmt.Errorf("invalid --log-format value %q (expected text|json)", format)
	}
	return log, nil
}

// relPath shortens path for display when it lies below the working
// directory.
func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
