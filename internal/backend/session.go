package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/evaluator"
	"github.com/funvibe/funamb/internal/lexer"
	"github.com/funvibe/funamb/internal/parser"
	"github.com/funvibe/funamb/internal/pipeline"
	"github.com/funvibe/funamb/internal/store"
)

// Session holds the state of one interactive run: the global environment,
// the scope built up by earlier problems and the current problem.
// It is not safe for concurrent use.
type Session struct {
	ID uuid.UUID

	eval   *evaluator.Evaluator
	scope  *evaluator.Environment
	ctx    context.Context
	logger *slog.Logger
	store  *store.Store

	current *evaluator.Outcome
	problem string
	index   int
}

// NewSession creates the evaluator, loads the prelude and the configured
// library files and registers the session with the store.
func NewSession(opts Options) (*Session, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	eval := evaluator.New()
	eval.Context = ctx
	eval.MaxSteps = opts.MaxSteps
	if opts.Out != nil {
		eval.Out = opts.Out
	}

	s := &Session{
		ID:    uuid.New(),
		eval:  eval,
		scope: eval.GlobalEnv,
		ctx:   ctx,
		store: opts.Store,
	}
	s.logger = logger.With("session", s.ID.String())

	if err := eval.LoadPrelude(); err != nil {
		return nil, fmt.Errorf("loading prelude: %w", err)
	}
	for _, path := range opts.Prelude {
		if err := s.Load(path); err != nil {
			return nil, err
		}
	}

	if s.store != nil {
		if err := s.store.StartSession(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	s.logger.Debug("session started", "prelude", len(opts.Prelude))
	return s, nil
}

// Load evaluates a library file into the global environment.
func (s *Session) Load(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := s.eval.LoadSource(string(src), path); err != nil {
		return err
	}
	s.logger.Debug("library loaded", "file", path)
	return nil
}

// Evaluate starts a new problem with src as its input and returns its
// first result. The previous problem is dropped, but its top-level
// declarations stay visible if it produced a value. file is used in error
// positions.
func (s *Session) Evaluate(src, file string) (*Result, error) {
	exec := NewExecutionProcessor(s)
	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = file

	pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		exec,
	).Run(ctx)

	if len(ctx.Errors) > 0 {
		return nil, Diagnostics(ctx.Errors)
	}
	return exec.Result, nil
}

// TryAgain asks the current problem for its next value.
func (s *Session) TryAgain() (*Result, error) {
	if s.current == nil {
		return nil, ErrNoCurrentProblem
	}
	outcome, err := s.current.Retry()
	if err != nil {
		s.drop(err)
		return nil, err
	}
	return s.report(outcome), nil
}

// Define binds name to val in the innermost scope of the session, so that
// later problems can refer to it. An existing binding in that scope is
// replaced.
func (s *Session) Define(name string, val evaluator.Object) {
	s.scope.Set(name, val)
}

// Lookup returns the value name is bound to in the session scope.
func (s *Session) Lookup(name string) (evaluator.Object, error) {
	val, err := s.scope.Get(name)
	if err != nil {
		return nil, err
	}
	return val, nil
}

// SetContext replaces the context that cancels the following evaluations
// and retries. A nil ctx means context.Background.
func (s *Session) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.eval.Context = ctx
}

// HasProblem reports whether TryAgain has something to resume.
func (s *Session) HasProblem() bool {
	return s.current != nil
}

// Problem returns the input of the current problem.
func (s *Session) Problem() string {
	return s.problem
}

// Steps returns the number of control transfers made by the last
// evaluation or retry.
func (s *Session) Steps() int {
	return s.eval.Steps()
}

// Close forgets the current problem. The store is owned by the caller.
func (s *Session) Close() {
	s.current = nil
	s.logger.Debug("session closed")
}

func (s *Session) start(prog *ast.Program, problem, file string) (*Result, error) {
	s.current = nil
	s.problem = problem
	s.index = 0
	s.eval.CurrentFile = file
	s.logger.Debug("new problem", "input", problem)

	outcome, err := s.eval.EvaluateIn(prog, s.scope)
	if err != nil {
		s.drop(err)
		return nil, err
	}
	if !outcome.Exhausted {
		s.scope = outcome.Scope()
	}
	return s.report(outcome), nil
}

func (s *Session) report(outcome *evaluator.Outcome) *Result {
	res := &Result{Problem: s.problem, Exhausted: outcome.Exhausted}
	if outcome.Exhausted {
		s.current = nil
		res.Index = s.index
		s.logger.Debug("problem exhausted", "values", s.index, "steps", s.eval.Steps())
		s.record(func(ctx context.Context) error {
			return s.store.RecordExhausted(ctx, s.ID, s.problem, s.index)
		})
		return res
	}

	s.current = outcome
	s.index++
	res.Index = s.index
	res.Value = outcome.Value
	s.logger.Debug("value", "index", s.index, "steps", s.eval.Steps())
	text := evaluator.Stringify(outcome.Value)
	s.record(func(ctx context.Context) error {
		return s.store.RecordSolution(ctx, s.ID, s.problem, s.index, text)
	})
	return res
}

func (s *Session) drop(err error) {
	s.current = nil
	s.logger.Debug("problem failed", "error", err.Error())
}

// record writes to the store when one is configured. Store failures are
// logged and do not affect the evaluation.
func (s *Session) record(write func(ctx context.Context) error) {
	if s.store == nil {
		return
	}
	if err := write(s.ctx); err != nil {
		s.logger.Warn("recording solution failed", "error", err.Error())
	}
}
