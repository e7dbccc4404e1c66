// Package cli implements the funamb command: running a program file or an
// -e expression and printing its values, or an interactive driver loop in
// which try-again asks the current problem for its next value.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funamb/internal/backend"
	"github.com/funvibe/funamb/internal/config"
	"github.com/funvibe/funamb/internal/store"
)

const usageText = `Usage:
  funamb [flags] <file.amb>   Run a program and print its values.
  funamb [flags] -e 'source'  Run source given on the command line.
  funamb [flags]              Start the interactive driver loop.

Flags:
`

// options are the settings of one invocation, after merging the config
// file with the command line.
type options struct {
	expr       string
	file       string
	maxResults int
	maxSteps   int
	color      bool
	repl       bool
	trace      bool
	history    string
	storePath  string
	prelude    []string
}

// Run is the entry point used by cmd/funamb.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	os.Exit(Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Main runs the command with the given arguments and streams and returns
// the process exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code, ok := parseOptions(args, stdout, stderr)
	if !ok {
		return code
	}

	ctx := context.Background()
	interactive := opts.repl || (opts.file == "" && opts.expr == "" && isTerminal(stdin))
	if !interactive {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
	}

	var logger *slog.Logger
	if opts.trace {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var st *store.Store
	if opts.storePath != "" {
		var err error
		st, err = store.Open(opts.storePath)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", err)
			return 1
		}
		defer st.Close()
	}

	out := newPrinter(stdout, stderr, opts.color)
	sess, err := backend.NewSession(backend.Options{
		Context:  ctx,
		MaxSteps: opts.maxSteps,
		Out:      stdout,
		Prelude:  opts.prelude,
		Logger:   logger,
		Store:    st,
	})
	if err != nil {
		out.error(err)
		return 1
	}
	defer sess.Close()

	if interactive {
		r, closeReader := newLineReader(stdin, stdout, opts.history)
		defer closeReader()
		return runREPL(ctx, r, sess, st, out)
	}

	src, file, label, err := readProgram(opts, stdin)
	if err != nil {
		out.error(err)
		return 1
	}
	return runProgram(sess, src, file, label, opts.maxResults, out)
}

func parseOptions(args []string, stdout, stderr io.Writer) (*options, int, bool) {
	fs := flag.NewFlagSet("funamb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	var (
		opts       options
		all        bool
		configPath string
		colorMode  string
	)
	fs.StringVar(&opts.expr, "e", "", "evaluate `source` instead of a file")
	fs.IntVar(&opts.maxResults, "n", config.DefaultMaxResults, "print at most `count` values (0 prints all)")
	fs.BoolVar(&all, "all", false, "print every value until the program is exhausted")
	fs.IntVar(&opts.maxSteps, "max-steps", 0, "bound each evaluation and retry to `steps` (0 is unlimited)")
	fs.StringVar(&configPath, "config", "", "read settings from `file` (default ./"+config.DefaultConfigFile+")")
	fs.StringVar(&opts.storePath, "store", "", "record values in the SQLite database `file`")
	fs.StringVar(&colorMode, "color", "", "color output: auto, always or never")
	fs.BoolVar(&opts.repl, "repl", false, "start the driver loop even when stdin is not a terminal")
	fs.BoolVar(&opts.trace, "trace", false, "log session events to stderr")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, 0, false
		}
		return nil, 2, false
	}
	if *showVersion {
		fmt.Fprintln(stdout, "funamb "+config.Version)
		return nil, 0, false
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return nil, 1, false
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["n"] {
		opts.maxResults = cfg.MaxResults
	}
	if all {
		opts.maxResults = 0
	}
	if !set["max-steps"] {
		opts.maxSteps = cfg.MaxSteps
	}
	if !set["store"] {
		opts.storePath = cfg.Store
	}
	if !set["color"] {
		colorMode = cfg.Color
	}
	if opts.maxResults < 0 || opts.maxSteps < 0 {
		fmt.Fprintln(stderr, "error: -n and -max-steps must not be negative")
		return nil, 2, false
	}
	opts.history = cfg.History
	opts.prelude = cfg.Prelude

	switch colorMode {
	case config.ColorAlways:
		opts.color = true
	case config.ColorNever:
		opts.color = false
	case config.ColorAuto, "":
		opts.color = isTerminal(stdout)
	default:
		fmt.Fprintf(stderr, "error: -color must be auto, always or never, got %q\n", colorMode)
		return nil, 2, false
	}

	rest := fs.Args()
	if opts.expr != "" && len(rest) > 0 {
		fmt.Fprintln(stderr, "error: -e cannot be combined with a file argument")
		return nil, 2, false
	}
	if len(rest) > 1 {
		fs.Usage()
		return nil, 2, false
	}
	if len(rest) == 1 {
		opts.file = rest[0]
	}
	return &opts, 0, true
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil || found == "" {
			return config.Default(), err
		}
		path = found
	}
	return config.LoadConfig(path)
}

// readProgram returns the program text, the file name used in error
// positions and the label used when the program runs out of values.
func readProgram(opts *options, stdin io.Reader) (src, file, label string, err error) {
	switch {
	case opts.expr != "":
		return opts.expr, "<eval>", strings.TrimSpace(opts.expr), nil
	case opts.file != "":
		if !isSourceFile(opts.file) {
			return "", "", "", fmt.Errorf("%s: not a source file (expected %s)", opts.file, strings.Join(config.SourceFileExtensions, ", "))
		}
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return "", "", "", fmt.Errorf("reading input: %w", err)
		}
		return string(data), opts.file, opts.file, nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", "", fmt.Errorf("reading input: %w", err)
		}
		return string(data), "<stdin>", "<stdin>", nil
	}
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range config.SourceFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// runProgram prints up to limit values of the program (all of them when
// limit is zero) and reports exhaustion if it is reached.
func runProgram(sess *backend.Session, src, file, label string, limit int, out *printer) int {
	res, err := sess.Evaluate(src, file)
	for n := 1; ; n++ {
		if err != nil {
			out.error(err)
			return 1
		}
		if res.Exhausted {
			out.exhausted(label)
			return 0
		}
		out.value(res.Value)
		if limit > 0 && n >= limit {
			return 0
		}
		res, err = sess.TryAgain()
	}
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
