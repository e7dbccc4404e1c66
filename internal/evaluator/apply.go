package evaluator

import (
	"github.com/funvibe/funamb/internal/ast"
)

// apply calls fn with already evaluated arguments. Primitives run directly;
// a compound function runs its body in a new frame enclosed by the
// environment it captured, with the caller's continuations.
func (e *Evaluator) apply(node ast.Node, fn Object, args []Object, succeed Succeed, fail Fail) Step {
	switch fn := fn.(type) {
	case *Builtin:
		result := fn.Fn(e, args...)
		if err, ok := result.(*Error); ok {
			return at(node, err)
		}
		if result == nil {
			result = UNDEFINED
		}
		return yield(succeed, result, fail)

	case *CompoundFunction:
		if len(args) < len(fn.Parameters) {
			return at(node, newError("too few arguments supplied to %s: expected %d, got %d", fn.displayName(), len(fn.Parameters), len(args)))
		}
		if len(args) > len(fn.Parameters) {
			return at(node, newError("too many arguments supplied to %s: expected %d, got %d", fn.displayName(), len(fn.Parameters), len(args)))
		}
		names := make([]string, 0, len(fn.Parameters)+len(fn.Locals))
		names = append(names, fn.Parameters...)
		names = append(names, fn.Locals...)
		values := make([]Object, len(names))
		copy(values, args)
		for i := len(args); i < len(values); i++ {
			values[i] = unassigned
		}
		frame, err := fn.Env.Extend(names, values)
		if err != nil {
			return at(node, err)
		}
		return fn.Body(frame, succeed, fail)
	}
	return at(node, newError("unknown function type: %s", Stringify(fn)))
}

func (f *CompoundFunction) displayName() string {
	if f.Name != "" {
		return f.Name
	}
	return "function"
}
