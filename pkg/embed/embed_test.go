package funamb_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	funamb "github.com/funvibe/funamb/pkg/embed"
)

func newInterpreter(t *testing.T, opts ...funamb.Option) *funamb.Interpreter {
	t.Helper()
	it, err := funamb.New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(it.Close)
	return it
}

func TestEmbedAPI(t *testing.T) {
	it := newInterpreter(t)

	if err := it.Bind("double", func(x int) int { return x * 2 }); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := it.Bind("limit", 30); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	got, err := it.All(`
		const x = amb(5, 10, 15, 20);
		require(double(x) <= limit);
		double(x);
	`, 0)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	want := []interface{}{10.0, 20.0, 30.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEvalAndNext(t *testing.T) {
	it := newInterpreter(t)

	first, err := it.Eval(`amb("a", "b");`)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if first != "a" {
		t.Errorf("expected a, got %v", first)
	}
	second, err := it.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if second != "b" {
		t.Errorf("expected b, got %v", second)
	}
	if _, err := it.Next(); !errors.Is(err, funamb.ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

func TestAllWithLimit(t *testing.T) {
	it := newInterpreter(t)
	got, err := it.All("amb(1, 2, 3, 4);", 2)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 values, got %v", got)
	}
}

func TestListConversion(t *testing.T) {
	it := newInterpreter(t)

	if err := it.Bind("xs", []int{3, 1, 2}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := it.Bind("sum", func(xs []float64) float64 {
		total := 0.0
		for _, x := range xs {
			total += x
		}
		return total
	}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	val, err := it.Eval("sum(xs);")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if val != 6.0 {
		t.Errorf("expected 6, got %v", val)
	}

	list, err := it.Get("xs")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	want := []interface{}{3.0, 1.0, 2.0}
	if !reflect.DeepEqual(list, want) {
		t.Errorf("expected %v, got %v", want, list)
	}
}

func TestCall(t *testing.T) {
	it := newInterpreter(t)

	if _, err := it.Eval("function add(a, b) { return a + b; }"); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	val, err := it.Call("add", 40, 2)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if val != 42.0 {
		t.Errorf("expected 42, got %v", val)
	}
}

func TestHostErrors(t *testing.T) {
	it := newInterpreter(t)

	if err := it.Bind("fetch", func(key string) (string, error) {
		if key == "" {
			return "", fmt.Errorf("empty key")
		}
		return strings.ToUpper(key), nil
	}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	val, err := it.Eval(`fetch("k");`)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if val != "K" {
		t.Errorf("expected K, got %v", val)
	}

	tests := []struct {
		code string
		want string
	}{
		{`fetch("");`, "fetch: empty key"},
		{`fetch("a", "b");`, "fetch: expected 1 arguments, got 2"},
		{`fetch(1);`, "fetch: argument 1: cannot convert 1 to string"},
	}
	for _, tt := range tests {
		_, err := it.Eval(tt.code)
		if err == nil {
			t.Errorf("%s: expected an error", tt.code)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %q", tt.code, tt.want, err.Error())
		}
	}
}

func TestIntegerArguments(t *testing.T) {
	it := newInterpreter(t)
	if err := it.Bind("half", func(n int) int { return n / 2 }); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if _, err := it.Eval("half(1.5);"); err == nil {
		t.Error("expected an error for a fractional argument")
	}
}

func TestNumberRange(t *testing.T) {
	it := newInterpreter(t)
	if err := it.Bind("echo8", func(x uint8) int { return int(x) }); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := it.Bind("echo16", func(x int16) int16 { return x }); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := it.Bind("echo32", func(x float32) float32 { return x }); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	val, err := it.Eval("echo8(255);")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if val != 255.0 {
		t.Errorf("expected 255, got %v", val)
	}

	tests := []string{
		"echo8(300);",
		"echo8(-1);",
		"echo16(40000);",
		"echo16(-40000);",
		"echo32(1e300);",
	}
	for _, code := range tests {
		val, err := it.Eval(code)
		if err == nil {
			t.Errorf("%s: expected an error, got %v", code, val)
			continue
		}
		if !strings.Contains(err.Error(), "cannot convert") {
			t.Errorf("%s: unexpected error %q", code, err.Error())
		}
	}
}

func TestOutputAndLoadFile(t *testing.T) {
	var out bytes.Buffer
	it := newInterpreter(t, funamb.WithOutput(&out), funamb.WithMaxSteps(100000))

	path := filepath.Join(t.TempDir(), "lib.amb")
	if err := os.WriteFile(path, []byte("function greet(n) { display(n, \"hello\"); return n; }"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := it.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if _, err := it.Eval(`greet("world");`); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hello world" {
		t.Errorf("expected display output %q, got %q", "hello world", got)
	}
}
