package evaluator

import (
	"math"
	"strconv"
	"strings"
)

// formatNumber prints a number the way JavaScript does for the common
// cases: integers without a fraction, Infinity and NaN by name.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go writes 1e+06 and 1e-07, JavaScript 1e+6 and 1e-7.
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Stringify returns the textual form of a value: strings quoted, lists in
// [head, tail] pair notation, functions as source.
func Stringify(obj Object) string {
	if obj == nil {
		return "undefined"
	}
	return obj.Inspect()
}

// toDisplayString is Stringify except that strings are not quoted.
func toDisplayString(obj Object) string {
	if s, ok := obj.(*String); ok {
		return s.Value
	}
	return Stringify(obj)
}
