package evaluator

import (
	"github.com/funvibe/funamb/internal/ast"
)

func (e *Evaluator) analyzeConditional(node *ast.ConditionalExpression) (Proc, *Error) {
	predProc, err := e.analyze(node.Predicate)
	if err != nil {
		return nil, err
	}
	consProc, err := e.analyze(node.Consequent)
	if err != nil {
		return nil, err
	}
	altProc, err := e.analyze(node.Alternative)
	if err != nil {
		return nil, err
	}
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		return predProc(env, func(pred Object, fail2 Fail) Step {
			if isTruthy(pred) {
				return consProc(env, succeed, fail2)
			}
			return altProc(env, succeed, fail2)
		}, fail)
	}, nil
}

// analyzeBooleanOperation short-circuits: && and || only evaluate their
// right operand when the left one does not decide the result. Both succeed
// with a boolean.
func (e *Evaluator) analyzeBooleanOperation(node *ast.BooleanOperation) (Proc, *Error) {
	leftProc, err := e.analyze(node.Left)
	if err != nil {
		return nil, err
	}
	rightProc, err := e.analyze(node.Right)
	if err != nil {
		return nil, err
	}
	switch node.Operator {
	case "&&":
		return func(env *Environment, succeed Succeed, fail Fail) Step {
			return leftProc(env, func(val Object, fail2 Fail) Step {
				if isTruthy(val) {
					return rightProc(env, truthValue(succeed), fail2)
				}
				return yield(succeed, FALSE, fail2)
			}, fail)
		}, nil
	case "||":
		return func(env *Environment, succeed Succeed, fail Fail) Step {
			return leftProc(env, func(val Object, fail2 Fail) Step {
				if isTruthy(val) {
					return yield(succeed, TRUE, fail2)
				}
				return rightProc(env, truthValue(succeed), fail2)
			}, fail)
		}, nil
	}
	return nil, at(node, newError("unknown boolean operator: %s", node.Operator))
}

func truthValue(succeed Succeed) Succeed {
	return func(val Object, fail Fail) Step {
		return yield(succeed, nativeBoolToBooleanObject(isTruthy(val)), fail)
	}
}

// returns reports whether running stmt always ends the enclosing function.
func returns(stmt ast.Node) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		return true
	case *ast.Block:
		return sequenceReturns(s.Body)
	case *ast.Sequence:
		return sequenceReturns(s)
	}
	return false
}

func sequenceReturns(seq *ast.Sequence) bool {
	if seq == nil {
		return false
	}
	for _, stmt := range seq.Statements {
		if returns(stmt) {
			return true
		}
	}
	return false
}

// liveStatements drops the statements that follow a return.
func liveStatements(seq *ast.Sequence) []ast.Node {
	if seq == nil {
		return nil
	}
	for i, stmt := range seq.Statements {
		if returns(stmt) {
			return seq.Statements[:i+1]
		}
	}
	return seq.Statements
}

func (e *Evaluator) analyzeStatements(stmts []ast.Node) ([]Proc, *Error) {
	procs := make([]Proc, 0, len(stmts))
	for _, stmt := range stmts {
		proc, err := e.analyze(stmt)
		if err != nil {
			return nil, err
		}
		procs = append(procs, proc)
	}
	return procs, nil
}

// analyzeSequence runs the live statements left to right. The value of the
// sequence is the value of the last one; an empty sequence is undefined.
func (e *Evaluator) analyzeSequence(seq *ast.Sequence) (Proc, *Error) {
	procs, err := e.analyzeStatements(liveStatements(seq))
	if err != nil {
		return nil, err
	}
	return sequentially(procs), nil
}

// analyzeBody is analyzeSequence for a function body: a body that can
// finish without reaching a return produces undefined.
func (e *Evaluator) analyzeBody(seq *ast.Sequence) (Proc, *Error) {
	procs, err := e.analyzeStatements(liveStatements(seq))
	if err != nil {
		return nil, err
	}
	if !sequenceReturns(seq) {
		procs = append(procs, literal(UNDEFINED))
	}
	return sequentially(procs), nil
}

// sequentially chains procs so each one runs with the failure continuation
// left by the previous one.
func sequentially(procs []Proc) Proc {
	if len(procs) == 0 {
		return literal(UNDEFINED)
	}
	if len(procs) == 1 {
		return procs[0]
	}
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		var next func(i int, fail Fail) Step
		next = func(i int, fail Fail) Step {
			if i == len(procs)-1 {
				return procs[i](env, succeed, fail)
			}
			return procs[i](env, func(_ Object, fail2 Fail) Step {
				return next(i+1, fail2)
			}, fail)
		}
		return next(0, fail)
	}
}

// analyzeBlock runs the body in a fresh frame holding the block's locals,
// all unassigned until their declarations run.
func (e *Evaluator) analyzeBlock(node *ast.Block) (Proc, *Error) {
	locals, err := scanLocals(node.Body)
	if err != nil {
		return nil, err
	}
	body, err := e.analyzeSequence(node.Body)
	if err != nil {
		return nil, err
	}
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		frame, err := env.extendUnassigned(locals)
		if err != nil {
			return at(node, err)
		}
		return body(frame, succeed, fail)
	}, nil
}

func (e *Evaluator) analyzeReturn(node *ast.ReturnStatement) (Proc, *Error) {
	if node.Value == nil {
		return literal(UNDEFINED), nil
	}
	return e.analyze(node.Value)
}
