package evaluator

import (
	"strings"
	"testing"
)

func TestBuiltins(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// operators
		{"7 % 3;", "1"},
		{"-7 % 3;", "-1"},
		{"1 / 0;", "Infinity"},
		{"-1 / 0;", "-Infinity"},
		{"0 / 0;", "NaN"},
		{"0.1 + 0.2;", "0.30000000000000004"},
		{"1e21;", "1e+21"},
		{"0.0000001;", "1e-7"},
		{"123456789 * 1000;", "123456789000"},
		{"'n = ' + 1;", `"n = 1"`},
		{"1 + '!';", `"1!"`},
		{"'a' < 'b';", "true"},
		{"2 >= 2;", "true"},
		{"NaN < 1;", "false"},
		{"NaN === NaN;", "false"},
		{"'x' === 'x';", "true"},
		{"1 === '1';", "false"},
		{"null === null;", "true"},
		{"list(1) === list(1);", "false"},
		{"const l = list(1); l === l;", "true"},
		{"1 !== 2;", "true"},
		{"!0;", "true"},
		{"!'';", "true"},
		{"!null;", "true"},
		{"!list();", "true"},
		{"!pair(1, 2);", "false"},

		// lists
		{"list();", "null"},
		{"pair(1, 2);", "[1, 2]"},
		{"head(list(1, 2));", "1"},
		{"tail(list(1, 2));", "[2, null]"},
		{"is_pair(list(1));", "true"},
		{"is_pair(null);", "false"},
		{"is_null(list());", "true"},
		{"length(list(1, 2, 3));", "3"},
		{"length(null);", "0"},
		{"append(list(1, 2), list(3));", "[1, [2, [3, null]]]"},
		{"append(null, list(3));", "[3, null]"},
		{"reverse(list(1, 2, 3));", "[3, [2, [1, null]]]"},
		{"member(2, list(1, 2, 3));", "[2, [3, null]]"},
		{"member(4, list(1, 2, 3));", "null"},
		{"distinct(list(1, 2, 3));", "true"},
		{"distinct(list(1, 2, 1));", "false"},
		{"distinct(null);", "true"},
		{"const p = pair(1, 2); set_head(p, 3); p;", "[3, 2]"},
		{"const p = pair(1, 2); set_tail(p, null); p;", "[1, null]"},
		{"const p = pair(1, 2); set_tail(p, p); p;", "[1, ...]"},

		// math
		{"math_abs(-3);", "3"},
		{"math_floor(2.7);", "2"},
		{"math_ceil(2.1);", "3"},
		{"math_sqrt(16);", "4"},
		{"math_round(2.5);", "3"},
		{"math_round(-2.5);", "-2"},
		{"math_max(1, 5, 3);", "5"},
		{"math_min(1, 5, 3);", "1"},
		{"math_max();", "-Infinity"},
		{"math_pow(2, 10);", "1024"},
		{"math_PI > 3.14 && math_PI < 3.15;", "true"},
		{"is_prime(1);", "false"},
		{"is_prime(2);", "true"},
		{"is_prime(97);", "true"},
		{"is_prime(91);", "false"},
		{"is_prime(7.5);", "false"},

		// std
		{"stringify(list('a'));", `"[\"a\", null]"`},
		{"is_number(1);", "true"},
		{"is_number('1');", "false"},
		{"is_string('1');", "true"},
		{"is_boolean(false);", "true"},
		{"is_undefined(undefined);", "true"},
		{"is_undefined(null);", "false"},
		{"is_function(x => x);", "true"},
		{"is_function(head);", "true"},
		{"is_function(1);", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectValues(t, tt.input, tt.expected)
		})
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"head(1);", "head expects a pair as argument 1, got number"},
		{"tail();", "tail expects 1 argument(s), got 0"},
		{"pair(1);", "pair expects 2 argument(s), got 1"},
		{"length(pair(1, 2));", "length"},
		{"'a' * 2;", "* expects a number as argument 1, got string"},
		{"true + 1;", "+ expects two numbers or a string, got boolean and number"},
		{"1 < 'a';", "< expects two numbers or two strings, got number and string"},
		{"display();", "display expects 1 or 2 arguments, got 0"},
		{"math_sqrt('x');", "math_sqrt expects a number"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e := newTestEvaluator(t)
			_, err := evaluate(t, e, tt.input)
			if err == nil {
				t.Fatalf("expected error %q", tt.expected)
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("expected error containing %q, got %q", tt.expected, err.Error())
			}
		})
	}
}

func TestPrimitivesAreConstants(t *testing.T) {
	env := NewEnvironment()
	RegisterBuiltins(env)
	for _, name := range []string{"head", "+", "display"} {
		if _, err := env.Assign(name, NULL); err == nil {
			t.Errorf("assigning to primitive %s should fail", name)
		}
	}
	for name := range Constants {
		if _, err := env.Get(name); err != nil {
			t.Errorf("constant %s not registered: %v", name, err)
		}
	}
}

func TestBuiltinInspect(t *testing.T) {
	env := NewEnvironment()
	RegisterBuiltins(env)
	head, err := env.Get("head")
	if err != nil {
		t.Fatal(err)
	}
	if head.Inspect() != "function head() { [primitive] }" {
		t.Errorf("unexpected primitive text %q", head.Inspect())
	}
}
