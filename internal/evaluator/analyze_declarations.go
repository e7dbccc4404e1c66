package evaluator

import (
	"github.com/funvibe/funamb/internal/ast"
)

func (e *Evaluator) analyzeDeclaration(node ast.Node, name *ast.Name, value ast.Expression, mutable bool) (Proc, *Error) {
	if name == nil {
		return nil, at(node, newError("declaration without a name"))
	}
	valueProc, err := e.analyze(value)
	if err != nil {
		return nil, err
	}
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		return valueProc(env, func(val Object, fail2 Fail) Step {
			if err := env.Define(name.Value, val, mutable); err != nil {
				return at(node, err)
			}
			return yield(succeed, ACK, fail2)
		}, fail)
	}, nil
}

// analyzeAssignment undoes the assignment when backtracking passes back
// through it, before the failure reaches earlier choice points.
func (e *Evaluator) analyzeAssignment(node *ast.Assignment) (Proc, *Error) {
	if node.Name == nil {
		return nil, at(node, newError("assignment without a target"))
	}
	name := node.Name.Value
	valueProc, err := e.analyze(node.Value)
	if err != nil {
		return nil, err
	}
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		return valueProc(env, func(val Object, fail2 Fail) Step {
			undo, err := env.Assign(name, val)
			if err != nil {
				return at(node, err)
			}
			return yield(succeed, ACK, func() Step {
				undo()
				return backtrack(fail2)
			})
		}, fail)
	}, nil
}

// scanLocals collects the names declared directly in seq, not inside
// nested blocks or function bodies. A name declared twice is an error.
func scanLocals(seq *ast.Sequence) ([]string, *Error) {
	if seq == nil {
		return nil, nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, stmt := range seq.Statements {
		var name *ast.Name
		switch s := stmt.(type) {
		case *ast.ConstantDeclaration:
			name = s.Name
		case *ast.VariableDeclaration:
			name = s.Name
		case *ast.Sequence:
			nested, err := scanLocals(s)
			if err != nil {
				return nil, err
			}
			for _, n := range nested {
				if seen[n] {
					return nil, at(s, newError("multiple declarations of: %s", n))
				}
				seen[n] = true
				names = append(names, n)
			}
			continue
		default:
			continue
		}
		if name == nil {
			continue
		}
		if seen[name.Value] {
			return nil, at(stmt, newError("multiple declarations of: %s", name.Value))
		}
		seen[name.Value] = true
		names = append(names, name.Value)
	}
	return names, nil
}
