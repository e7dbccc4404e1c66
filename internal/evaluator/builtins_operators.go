package evaluator

import (
	"math"
)

// Operators are ordinary primitives; the parser turns a + b into +(a, b).
var operatorBuiltins = map[string]*Builtin{
	"+": {Name: "+", Fn: builtinPlus},
	"-": {Name: "-", Fn: builtinMinus},
	"*": arithmetic("*", func(a, b float64) float64 { return a * b }),
	"/": arithmetic("/", func(a, b float64) float64 { return a / b }),
	"%": arithmetic("%", math.Mod),

	"===": {Name: "===", Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity("===", args, 2); err != nil {
			return err
		}
		return nativeBoolToBooleanObject(StrictEquals(args[0], args[1]))
	}},
	"!==": {Name: "!==", Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity("!==", args, 2); err != nil {
			return err
		}
		return nativeBoolToBooleanObject(!StrictEquals(args[0], args[1]))
	}},

	"<":  comparison("<", func(c int) bool { return c < 0 }),
	"<=": comparison("<=", func(c int) bool { return c <= 0 }),
	">":  comparison(">", func(c int) bool { return c > 0 }),
	">=": comparison(">=", func(c int) bool { return c >= 0 }),

	"!": {Name: "!", Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity("!", args, 1); err != nil {
			return err
		}
		return nativeBoolToBooleanObject(!isTruthy(args[0]))
	}},
}

// builtinPlus adds numbers, and concatenates when either side is a string.
func builtinPlus(e *Evaluator, args ...Object) Object {
	if err := checkArity("+", args, 2); err != nil {
		return err
	}
	if a, ok := args[0].(*Number); ok {
		if b, ok := args[1].(*Number); ok {
			return &Number{Value: a.Value + b.Value}
		}
	}
	_, leftString := args[0].(*String)
	_, rightString := args[1].(*String)
	if leftString || rightString {
		return &String{Value: toDisplayString(args[0]) + toDisplayString(args[1])}
	}
	return newError("+ expects two numbers or a string, got %s and %s", typeName(args[0]), typeName(args[1]))
}

// builtinMinus is binary subtraction, or negation with one argument.
func builtinMinus(e *Evaluator, args ...Object) Object {
	switch len(args) {
	case 1:
		x, err := numberArg("-", args, 0)
		if err != nil {
			return err
		}
		return &Number{Value: -x}
	case 2:
		x, err := numberArg("-", args, 0)
		if err != nil {
			return err
		}
		y, err := numberArg("-", args, 1)
		if err != nil {
			return err
		}
		return &Number{Value: x - y}
	}
	return newError("- expects 1 or 2 arguments, got %d", len(args))
}

func arithmetic(name string, op func(a, b float64) float64) *Builtin {
	return &Builtin{Name: name, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(name, args, 2); err != nil {
			return err
		}
		x, err := numberArg(name, args, 0)
		if err != nil {
			return err
		}
		y, err := numberArg(name, args, 1)
		if err != nil {
			return err
		}
		return &Number{Value: op(x, y)}
	}}
}

// comparison orders two numbers or two strings. Comparisons involving NaN
// are false.
func comparison(name string, test func(c int) bool) *Builtin {
	return &Builtin{Name: name, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(name, args, 2); err != nil {
			return err
		}
		switch a := args[0].(type) {
		case *Number:
			if b, ok := args[1].(*Number); ok {
				if math.IsNaN(a.Value) || math.IsNaN(b.Value) {
					return FALSE
				}
				return nativeBoolToBooleanObject(test(compareFloats(a.Value, b.Value)))
			}
		case *String:
			if b, ok := args[1].(*String); ok {
				return nativeBoolToBooleanObject(test(compareStrings(a.Value, b.Value)))
			}
		}
		return newError("%s expects two numbers or two strings, got %s and %s", name, typeName(args[0]), typeName(args[1]))
	}}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
