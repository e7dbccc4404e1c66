package evaluator

import (
	"fmt"

	"github.com/funvibe/funamb/internal/config"
)

var stdBuiltins = map[string]*Builtin{
	// display prints its argument, strings without quotes, and returns it.
	// An optional second string argument is printed in front.
	config.DisplayFuncName: {Name: config.DisplayFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if len(args) == 0 || len(args) > 2 {
			return newError("%s expects 1 or 2 arguments, got %d", config.DisplayFuncName, len(args))
		}
		text := toDisplayString(args[0])
		if len(args) == 2 {
			text = toDisplayString(args[1]) + " " + text
		}
		_, _ = fmt.Fprintln(e.Out, text)
		return args[0]
	}},
	config.StringifyFuncName: {Name: config.StringifyFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.StringifyFuncName, args, 1); err != nil {
			return err
		}
		return &String{Value: Stringify(args[0])}
	}},
	// error aborts the run. error(v, "prefix: ") reports prefix followed by v.
	config.ErrorFuncName: {Name: config.ErrorFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if len(args) == 0 || len(args) > 2 {
			return newError("%s expects 1 or 2 arguments, got %d", config.ErrorFuncName, len(args))
		}
		msg := toDisplayString(args[0])
		if len(args) == 2 {
			msg = toDisplayString(args[1]) + msg
		}
		return newError("%s", msg)
	}},
	"is_number":    typePredicate("is_number", NUMBER_OBJ),
	"is_string":    typePredicate("is_string", STRING_OBJ),
	"is_boolean":   typePredicate("is_boolean", BOOLEAN_OBJ),
	"is_undefined": typePredicate("is_undefined", UNDEFINED_OBJ),
	"is_function": {Name: "is_function", Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity("is_function", args, 1); err != nil {
			return err
		}
		switch args[0].(type) {
		case *CompoundFunction, *Builtin:
			return TRUE
		}
		return FALSE
	}},
}

func typePredicate(name string, t ObjectType) *Builtin {
	return &Builtin{Name: name, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(name, args, 1); err != nil {
			return err
		}
		return nativeBoolToBooleanObject(args[0].Type() == t)
	}}
}
