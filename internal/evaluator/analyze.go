package evaluator

import (
	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/config"
)

// Analyze turns node into a procedure. Nothing runs until the procedure is
// invoked with an environment and a pair of continuations.
func (e *Evaluator) Analyze(node ast.Node) (Proc, error) {
	proc, err := e.analyze(node)
	if err != nil {
		return nil, err
	}
	return proc, nil
}

func (e *Evaluator) analyze(node ast.Node) (Proc, *Error) {
	switch node := node.(type) {
	case *ast.NumberLiteral:
		return literal(&Number{Value: node.Value}), nil
	case *ast.StringLiteral:
		return literal(&String{Value: node.Value}), nil
	case *ast.BooleanLiteral:
		return literal(nativeBoolToBooleanObject(node.Value)), nil
	case *ast.NullLiteral:
		return literal(NULL), nil
	case *ast.Name:
		return analyzeName(node), nil
	case *ast.ConstantDeclaration:
		return e.analyzeDeclaration(node, node.Name, node.Value, false)
	case *ast.VariableDeclaration:
		return e.analyzeDeclaration(node, node.Name, node.Value, true)
	case *ast.Assignment:
		return e.analyzeAssignment(node)
	case *ast.ConditionalExpression:
		return e.analyzeConditional(node)
	case *ast.FunctionDefinition:
		return e.analyzeFunctionDefinition(node)
	case *ast.Sequence:
		return e.analyzeSequence(node)
	case *ast.Block:
		return e.analyzeBlock(node)
	case *ast.Program:
		return e.analyzeBlock(&ast.Block{Token: node.GetToken(), Body: node.Body})
	case *ast.ReturnStatement:
		return e.analyzeReturn(node)
	case *ast.BooleanOperation:
		return e.analyzeBooleanOperation(node)
	case *ast.Application:
		switch node.OperatorName() {
		case config.AmbName:
			return e.analyzeAmb(node)
		case config.RequireName:
			return e.analyzeRequire(node)
		}
		return e.analyzeApplication(node)
	}
	err := newError("unknown statement type: %T", node)
	if node != nil {
		err = at(node, err)
	}
	return nil, err
}

func literal(val Object) Proc {
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		return yield(succeed, val, fail)
	}
}

func analyzeName(node *ast.Name) Proc {
	name := node.Value
	return func(env *Environment, succeed Succeed, fail Fail) Step {
		val, err := env.Get(name)
		if err != nil {
			return at(node, err)
		}
		return yield(succeed, val, fail)
	}
}
