package evaluator

import (
	"errors"

	"github.com/funvibe/funamb/internal/ast"
)

// Outcome is the result of one run: either a value together with the means
// to ask for the next one, or exhaustion of all alternatives.
type Outcome struct {
	Value     Object
	Exhausted bool

	search *search
	retry  Fail
}

// Retry resumes the search after o and returns the next outcome. Retrying
// an exhausted outcome returns it unchanged.
func (o *Outcome) Retry() (*Outcome, error) {
	if o.Exhausted || o.retry == nil {
		return o, nil
	}
	return o.search.resume(Thunk(o.retry))
}

// Scope returns the frame holding the top-level declarations of the
// program that produced o.
func (o *Outcome) Scope() *Environment {
	return o.search.scope
}

// search is shared by every outcome of one top-level evaluation. The
// top-level continuations write into it, so resuming an old continuation
// reports through the same place.
type search struct {
	e      *Evaluator
	scope  *Environment
	result *Outcome
}

func (s *search) succeed(val Object, fail Fail) Step {
	s.result = &Outcome{Value: val, search: s, retry: fail}
	return nil
}

func (s *search) fail() Step {
	s.result = &Outcome{Exhausted: true, search: s}
	return nil
}

func (s *search) resume(step Step) (*Outcome, error) {
	s.result = nil
	if err := s.e.run(step); err != nil {
		if err.File == "" {
			err.File = s.e.CurrentFile
		}
		return nil, err
	}
	if s.result == nil {
		return nil, errors.New("evaluation halted without a result")
	}
	return s.result, nil
}

// Evaluate runs node against the global environment. A program is run as a
// block: its declarations go into a fresh frame of their own.
func (e *Evaluator) Evaluate(node ast.Node) (*Outcome, error) {
	return e.EvaluateIn(node, e.GlobalEnv)
}

// EvaluateIn is Evaluate with env in place of the global environment. The
// REPL passes the scope of the previous problem so earlier declarations
// stay visible.
func (e *Evaluator) EvaluateIn(node ast.Node, env *Environment) (*Outcome, error) {
	scope := env
	var proc Proc
	if prog, ok := node.(*ast.Program); ok {
		locals, err := scanLocals(prog.Body)
		if err != nil {
			return nil, e.located(err)
		}
		frame, err := env.extendUnassigned(locals)
		if err != nil {
			return nil, e.located(at(prog, err))
		}
		scope = frame
		body, err := e.analyzeSequence(prog.Body)
		if err != nil {
			return nil, e.located(err)
		}
		proc = body
	} else {
		p, err := e.analyze(node)
		if err != nil {
			return nil, e.located(err)
		}
		proc = p
	}

	s := &search{e: e, scope: scope}
	return s.resume(Thunk(func() Step {
		return proc(scope, s.succeed, s.fail)
	}))
}

func (e *Evaluator) located(err *Error) *Error {
	if err.File == "" {
		err.File = e.CurrentFile
	}
	return err
}
