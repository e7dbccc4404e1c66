// Package backend drives evaluation for the command line and the REPL. A
// Session runs source text through the pipeline and keeps the current
// problem, so that its next value can be asked for with TryAgain.
package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/funvibe/funamb/internal/diagnostics"
	"github.com/funvibe/funamb/internal/evaluator"
	"github.com/funvibe/funamb/internal/store"
)

// ErrNoCurrentProblem is returned by TryAgain when there is nothing to
// resume: no input was evaluated yet, or the last problem was exhausted or
// failed with an error.
var ErrNoCurrentProblem = errors.New("there is no current problem")

// Options configures a Session. The zero value is usable.
type Options struct {
	// Context cancels a running evaluation.
	Context context.Context

	// MaxSteps bounds each evaluation or retry; zero means unlimited.
	MaxSteps int

	// Out receives the output of display. Defaults to os.Stdout.
	Out io.Writer

	// Prelude lists source files evaluated into the global environment
	// after the built-in generators.
	Prelude []string

	// Logger receives session lifecycle events. Nil discards them.
	Logger *slog.Logger

	// Store, when set, records every produced value.
	Store *store.Store
}

// Result is one answer to a problem. Index counts the values produced for
// the problem so far, starting at 1; for an exhausted result it is the
// number of values that were produced.
type Result struct {
	Problem   string
	Index     int
	Value     evaluator.Object
	Exhausted bool
}

// Diagnostics is the error returned when a stage of the pipeline failed.
type Diagnostics []*diagnostics.DiagnosticError

func (d Diagnostics) Error() string {
	msgs := make([]string, len(d))
	for i, e := range d {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Incomplete reports whether the source ended in the middle of a
// construct, so that more input could complete it.
func (d Diagnostics) Incomplete() bool {
	return len(d) > 0 && d[len(d)-1].IsIncomplete()
}
