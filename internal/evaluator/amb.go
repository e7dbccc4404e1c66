package evaluator

import (
	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/config"
)

// analyzeAmb tries the choices strictly left to right. Each choice runs with
// a failure continuation that moves on to the next one; after the last
// choice the failure that amb was called with takes over.
func (e *Evaluator) analyzeAmb(node *ast.Application) (Proc, *Error) {
	choices, err := e.analyzeOperands(node.Operands)
	if err != nil {
		return nil, err
	}
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		var try func(i int) Step
		try = func(i int) Step {
			if i == len(choices) {
				return backtrack(fail)
			}
			return choices[i](env, succeed, func() Step {
				return try(i + 1)
			})
		}
		return try(0)
	}, nil
}

// analyzeRequire succeeds when the predicate is truthy and fails otherwise.
// Errors raised while evaluating the predicate stay fatal.
func (e *Evaluator) analyzeRequire(node *ast.Application) (Proc, *Error) {
	if len(node.Operands) != 1 {
		return nil, at(node, newError("%s expects exactly one argument, got %d", config.RequireName, len(node.Operands)))
	}
	predProc, err := e.analyze(node.Operands[0])
	if err != nil {
		return nil, err
	}
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		return predProc(env, func(pred Object, fail2 Fail) Step {
			if isTruthy(pred) {
				return yield(succeed, ACK, fail2)
			}
			return backtrack(fail2)
		}, fail)
	}, nil
}
