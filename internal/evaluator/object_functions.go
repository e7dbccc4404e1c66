package evaluator

import (
	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/prettyprinter"
)

// CompoundFunction is a user defined function: an analyzed body closed over
// the environment it was created in.
type CompoundFunction struct {
	Name       string   // declared name, empty for lambdas
	Parameters []string
	Locals     []string // names declared at the top level of the body
	Body       Proc
	Env        *Environment
	Node       *ast.FunctionDefinition
}

func (f *CompoundFunction) Type() ObjectType { return FUNCTION_OBJ }

// Inspect prints the source of the function. The captured environment is
// never printed, it may be cyclic.
func (f *CompoundFunction) Inspect() string {
	if f.Node == nil {
		return "function(...) { ... }"
	}
	return prettyprinter.FormatFunction(f.Node)
}

// Builtin Function
type BuiltinFunction func(e *Evaluator, args ...Object) Object

type Builtin struct {
	Fn   BuiltinFunction
	Name string
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "function " + b.Name + "() { [primitive] }" }
