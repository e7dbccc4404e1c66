package evaluator

import (
	"fmt"
	"math"

	"github.com/funvibe/funamb/internal/ast"
)

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

// at fills in the position of node unless err already has one.
func at(node ast.Node, err *Error) *Error {
	if err.Line == 0 && node != nil {
		tok := node.GetToken()
		err.Line = tok.Line
		err.Column = tok.Column
	}
	return err
}

// isTruthy follows JavaScript: false, 0, NaN, "", null and undefined are
// falsy, everything else is truthy.
func isTruthy(obj Object) bool {
	switch v := obj.(type) {
	case *Boolean:
		return v.Value
	case *Number:
		return v.Value != 0 && !math.IsNaN(v.Value)
	case *String:
		return v.Value != ""
	case *Null, *Undefined:
		return false
	default:
		return true
	}
}

// typeName is the name used for obj in error messages.
func typeName(obj Object) string {
	switch obj.(type) {
	case *Number:
		return "number"
	case *String:
		return "string"
	case *Boolean:
		return "boolean"
	case *Null:
		return "null"
	case *Undefined:
		return "undefined"
	case *Pair:
		return "pair"
	case *CompoundFunction, *Builtin:
		return "function"
	case *Acknowledgement:
		return "acknowledgement"
	}
	return string(obj.Type())
}
