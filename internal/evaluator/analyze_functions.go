package evaluator

import (
	"github.com/funvibe/funamb/internal/ast"
)

// analyzeFunctionDefinition does all the work that does not depend on the
// environment once: parameter and local names, and the analyzed body.
func (e *Evaluator) analyzeFunctionDefinition(node *ast.FunctionDefinition) (Proc, *Error) {
	params := make([]string, len(node.Parameters))
	seen := make(map[string]bool, len(node.Parameters))
	for i, p := range node.Parameters {
		if seen[p.Value] {
			return nil, at(p, newError("multiple declarations of: %s", p.Value))
		}
		seen[p.Value] = true
		params[i] = p.Value
	}
	locals, err := scanLocals(node.Body)
	if err != nil {
		return nil, err
	}
	for _, name := range locals {
		if seen[name] {
			return nil, at(node, newError("multiple declarations of: %s", name))
		}
	}
	body, err := e.analyzeBody(node.Body)
	if err != nil {
		return nil, err
	}

	return func(env *Environment, succeed Succeed, fail Fail) Step {
		fn := &CompoundFunction{
			Name:       node.Name,
			Parameters: params,
			Locals:     locals,
			Body:       body,
			Env:        env,
			Node:       node,
		}
		return yield(succeed, fn, fail)
	}, nil
}

// analyzeApplication evaluates the operator, then the operands left to
// right, then applies. Backtracking into an operand retries the operands
// before it in reverse order.
func (e *Evaluator) analyzeApplication(node *ast.Application) (Proc, *Error) {
	operatorProc, err := e.analyze(node.Operator)
	if err != nil {
		return nil, err
	}
	operandProcs, err := e.analyzeOperands(node.Operands)
	if err != nil {
		return nil, err
	}
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		return operatorProc(env, func(fn Object, fail2 Fail) Step {
			return getArgs(operandProcs, env, func(args []Object, fail3 Fail) Step {
				return e.apply(node, fn, args, succeed, fail3)
			}, fail2)
		}, fail)
	}, nil
}

func (e *Evaluator) analyzeOperands(operands []ast.Expression) ([]Proc, *Error) {
	procs := make([]Proc, 0, len(operands))
	for _, operand := range operands {
		proc, err := e.analyze(operand)
		if err != nil {
			return nil, err
		}
		procs = append(procs, proc)
	}
	return procs, nil
}

type argsSucceed func(args []Object, fail Fail) Step

// getArgs evaluates procs in order. Every continuation gets its own copy of
// the argument slice, since a continuation may be resumed more than once.
func getArgs(procs []Proc, env *Environment, succeed argsSucceed, fail Fail) Step {
	var next func(i int, args []Object, fail Fail) Step
	next = func(i int, args []Object, fail Fail) Step {
		if i == len(procs) {
			return succeed(args, fail)
		}
		return procs[i](env, func(arg Object, fail2 Fail) Step {
			return next(i+1, append(args[:i:i], arg), fail2)
		}, fail)
	}
	return next(0, make([]Object, 0, len(procs)), fail)
}
