package evaluator

import (
	_ "embed"
	"fmt"

	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/parser"
)

//go:embed prelude.amb
var preludeSource string

// LoadPrelude evaluates the built-in generators into the global environment.
func (e *Evaluator) LoadPrelude() error {
	return e.LoadSource(preludeSource, "prelude.amb")
}

// LoadSource evaluates a program directly in the global frame, so its
// declarations are visible to every later evaluation. Only the first
// result is taken; a library that fails outright is an error and leaves
// the global frame as it was.
func (e *Evaluator) LoadSource(src, file string) error {
	prog, errs := parser.ParseSource(src)
	if len(errs) > 0 {
		for _, d := range errs {
			d.File = file
		}
		return errs[0]
	}
	return e.loadProgram(prog, file)
}

func (e *Evaluator) loadProgram(prog *ast.Program, file string) error {
	prevFile := e.CurrentFile
	e.CurrentFile = file
	defer func() { e.CurrentFile = prevFile }()

	locals, err := scanLocals(prog.Body)
	if err != nil {
		return e.located(err)
	}
	if err := e.GlobalEnv.Declare(locals); err != nil {
		return e.located(at(prog, err))
	}
	outcome, evalErr := e.EvaluateIn(prog.Body, e.GlobalEnv)
	if evalErr != nil {
		e.GlobalEnv.forget(locals)
		return evalErr
	}
	if outcome.Exhausted {
		e.GlobalEnv.forget(locals)
		return fmt.Errorf("%s: program produced no value", file)
	}
	return nil
}
