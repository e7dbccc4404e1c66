package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/funamb/internal/backend"
	"github.com/funvibe/funamb/internal/config"
	"github.com/funvibe/funamb/internal/parser"
	"github.com/funvibe/funamb/internal/prettyprinter"
	"github.com/funvibe/funamb/internal/store"
)

const historyFile = ".funamb_history"

const helpText = `Enter a program to start a new problem.

  try-again       next value of the current problem
  :load <file>    evaluate a file into the global environment
  :ast <source>   show how source is parsed
  :history [n]    show the last n recorded values (needs -store)
  :help           show this text
  :quit           exit
`

// lineReader is the part of liner.State the driver loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// newLineReader returns a liner-backed reader when stdin is a terminal and
// a plain line scanner otherwise. The returned func saves the history and
// restores the terminal.
func newLineReader(stdin io.Reader, stdout io.Writer, histPath string) (lineReader, func()) {
	if !isTerminal(stdin) || !isTerminal(stdout) {
		return &scanReader{sc: bufio.NewScanner(stdin)}, func() {}
	}

	if histPath == "" {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, historyFile)
	}

	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	return ln, func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
		ln.Close()
	}
}

// scanReader reads lines without echoing prompts.
type scanReader struct {
	sc *bufio.Scanner
}

func (r *scanReader) Prompt(string) (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scanReader) AppendHistory(string) {}

// runREPL is the driver loop. Every input other than a command starts a
// new problem; try-again resumes the current one. Ctrl-C during an
// evaluation cancels it and returns to the prompt.
func runREPL(ctx context.Context, r lineReader, sess *backend.Session, st *store.Store, out *printer) int {
	for {
		input, ok := readInput(r)
		if !ok {
			return 0
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		r.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		switch {
		case trimmed == config.TryAgainCommand:
			interruptible(ctx, sess, func() { tryAgain(sess, out) })
		case strings.HasPrefix(trimmed, ":"):
			quit := false
			interruptible(ctx, sess, func() { quit = runCommand(trimmed, sess, st, out) })
			if quit {
				return 0
			}
		default:
			out.notice("Starting a new problem")
			interruptible(ctx, sess, func() {
				res, err := sess.Evaluate(input, "<repl>")
				if err != nil {
					out.error(err)
					return
				}
				report(res, out)
			})
		}
	}
}

// interruptible runs fn with an interrupt cancelling the session's
// evaluation instead of ending the process.
func interruptible(parent context.Context, sess *backend.Session, fn func()) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()
	sess.SetContext(ctx)
	defer sess.SetContext(parent)
	fn()
}

// readInput reads one input, continuing on further lines while the source
// is incomplete. ok is false at end of input.
func readInput(r lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := config.InputPrompt
		if b.Len() > 0 {
			prompt = config.ContinuationPrompt
		}
		line, err := r.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C drops the pending input.
			b.Reset()
			continue
		}
		if err != nil {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		trimmed := strings.TrimSpace(src)
		if trimmed == config.TryAgainCommand || strings.HasPrefix(trimmed, ":") {
			return src, true
		}
		if _, errs := parser.ParseSource(src); len(errs) > 0 && errs[len(errs)-1].IsIncomplete() {
			continue
		}
		return src, true
	}
}

func tryAgain(sess *backend.Session, out *printer) {
	res, err := sess.TryAgain()
	if errors.Is(err, backend.ErrNoCurrentProblem) {
		out.notice("There is no current problem")
		return
	}
	if err != nil {
		out.error(err)
		return
	}
	report(res, out)
}

func report(res *backend.Result, out *printer) {
	if res.Exhausted {
		out.exhausted(strings.TrimSpace(res.Problem))
		return
	}
	out.result(res.Value)
}

// runCommand handles a ":" command and reports whether the loop should end.
func runCommand(line string, sess *backend.Session, st *store.Store, out *printer) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(out.out, helpText)
	case ":load":
		if arg == "" {
			out.error(errors.New("usage: :load <file>"))
			return false
		}
		if err := sess.Load(arg); err != nil {
			out.error(err)
			return false
		}
		out.notice("loaded %s", arg)
	case ":ast":
		prog, errs := parser.ParseSource(arg)
		if len(errs) > 0 {
			out.error(backend.Diagnostics(errs))
			return false
		}
		fmt.Fprint(out.out, prettyprinter.Format(prog))
	case ":history":
		showHistory(arg, sess, st, out)
	default:
		fmt.Fprintf(out.out, "unknown command %s. Type :help for a list.\n", name)
	}
	return false
}

func showHistory(arg string, sess *backend.Session, st *store.Store, out *printer) {
	if st == nil {
		out.error(errors.New("no store configured; start with -store <file>"))
		return
	}
	limit := 20
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			out.error(fmt.Errorf("bad count %q", arg))
			return
		}
		limit = n
	}
	sols, err := st.Recent(context.Background(), limit)
	if err != nil {
		out.error(err)
		return
	}
	// Recent is newest first; print oldest first.
	for i := len(sols) - 1; i >= 0; i-- {
		s := sols[i]
		marker := " "
		if s.SessionID == sess.ID {
			marker = "*"
		}
		problem := strings.ReplaceAll(strings.TrimSpace(s.Problem), "\n", " ")
		if s.Exhausted {
			fmt.Fprintf(out.out, "%s %s #%d: no more values\n", marker, problem, s.Index)
		} else {
			fmt.Fprintf(out.out, "%s %s #%d: %s\n", marker, problem, s.Index, s.Value)
		}
	}
}
