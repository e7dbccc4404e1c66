package evaluator

import (
	"math"
)

var mathBuiltins = map[string]*Builtin{
	"math_abs":   unaryMath("math_abs", math.Abs),
	"math_floor": unaryMath("math_floor", math.Floor),
	"math_ceil":  unaryMath("math_ceil", math.Ceil),
	"math_sqrt":  unaryMath("math_sqrt", math.Sqrt),
	"math_round": unaryMath("math_round", jsRound),
	"math_max":   variadicMath("math_max", math.Inf(-1), math.Max),
	"math_min":   variadicMath("math_min", math.Inf(1), math.Min),
	"math_pow": {Name: "math_pow", Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity("math_pow", args, 2); err != nil {
			return err
		}
		x, err := numberArg("math_pow", args, 0)
		if err != nil {
			return err
		}
		y, err := numberArg("math_pow", args, 1)
		if err != nil {
			return err
		}
		return &Number{Value: math.Pow(x, y)}
	}},
	"is_prime": {Name: "is_prime", Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity("is_prime", args, 1); err != nil {
			return err
		}
		n, err := numberArg("is_prime", args, 0)
		if err != nil {
			return err
		}
		return nativeBoolToBooleanObject(isPrime(n))
	}},
}

func unaryMath(name string, fn func(float64) float64) *Builtin {
	return &Builtin{Name: name, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(name, args, 1); err != nil {
			return err
		}
		x, err := numberArg(name, args, 0)
		if err != nil {
			return err
		}
		return &Number{Value: fn(x)}
	}}
}

// variadicMath folds fn over any number of arguments, starting at empty.
func variadicMath(name string, empty float64, fn func(a, b float64) float64) *Builtin {
	return &Builtin{Name: name, Fn: func(e *Evaluator, args ...Object) Object {
		result := empty
		for i := range args {
			x, err := numberArg(name, args, i)
			if err != nil {
				return err
			}
			result = fn(result, x)
		}
		return &Number{Value: result}
	}}
}

// jsRound rounds half up, as Math.round does.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

// isPrime finds the smallest divisor by trial division.
func isPrime(n float64) bool {
	if n < 2 || n != math.Trunc(n) || math.IsInf(n, 0) {
		return false
	}
	for d := 2.0; d*d <= n; d++ {
		if math.Mod(n, d) == 0 {
			return false
		}
	}
	return true
}
