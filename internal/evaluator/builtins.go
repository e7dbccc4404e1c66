package evaluator

import (
	"math"
	"sort"

	"github.com/funvibe/funamb/internal/config"
)

// Constants installed next to the primitive functions.
var Constants = map[string]Object{
	config.UndefinedName: UNDEFINED,
	config.InfinityName:  &Number{Value: math.Inf(1)},
	config.NaNName:       &Number{Value: math.NaN()},
	config.MathPIName:    &Number{Value: math.Pi},
	config.MathEName:     &Number{Value: math.E},
}

// Builtins returns every primitive function by name.
func Builtins() map[string]*Builtin {
	all := make(map[string]*Builtin)
	for _, table := range []map[string]*Builtin{
		operatorBuiltins,
		listBuiltins,
		mathBuiltins,
		stdBuiltins,
	} {
		for name, b := range table {
			all[name] = b
		}
	}
	return all
}

// RegisterBuiltins installs the primitive functions and constants into env,
// the bootstrap frame. Primitive bindings are constants.
func RegisterBuiltins(env *Environment) {
	builtins := Builtins()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		env.SetConstant(name, builtins[name])
	}

	names = names[:0]
	for name := range Constants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		env.SetConstant(name, Constants[name])
	}
}

func checkArity(name string, args []Object, n int) *Error {
	if len(args) != n {
		return newError("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func numberArg(name string, args []Object, i int) (float64, *Error) {
	n, ok := args[i].(*Number)
	if !ok {
		return 0, newError("%s expects a number as argument %d, got %s", name, i+1, typeName(args[i]))
	}
	return n.Value, nil
}

func pairArg(name string, args []Object, i int) (*Pair, *Error) {
	p, ok := args[i].(*Pair)
	if !ok {
		return nil, newError("%s expects a pair as argument %d, got %s", name, i+1, typeName(args[i]))
	}
	return p, nil
}

func listArg(name string, args []Object, i int) ([]Object, *Error) {
	elements, ok := ListToSlice(args[i])
	if !ok {
		return nil, newError("%s expects a list as argument %d, got %s", name, i+1, Stringify(args[i]))
	}
	return elements, nil
}
