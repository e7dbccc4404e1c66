package backend

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/funamb/internal/diagnostics"
	"github.com/funvibe/funamb/internal/evaluator"
	"github.com/funvibe/funamb/internal/store"
)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func values(t *testing.T, s *Session, src string) []string {
	t.Helper()
	res, err := s.Evaluate(src, "test.amb")
	if err != nil {
		t.Fatalf("Evaluate(%q) failed: %v", src, err)
	}
	var out []string
	for !res.Exhausted {
		out = append(out, evaluator.Stringify(res.Value))
		if len(out) > 100 {
			t.Fatalf("too many values for %q", src)
		}
		res, err = s.TryAgain()
		if err != nil {
			t.Fatalf("TryAgain failed: %v", err)
		}
	}
	return out
}

func TestSessionEnumeratesValues(t *testing.T) {
	s := newTestSession(t, Options{})
	got := values(t, s, "amb(1, 2, 3);")
	want := []string{"1", "2", "3"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
	if s.HasProblem() {
		t.Error("problem should be dropped after exhaustion")
	}
}

func TestTryAgainWithoutProblem(t *testing.T) {
	s := newTestSession(t, Options{})
	if _, err := s.TryAgain(); !errors.Is(err, ErrNoCurrentProblem) {
		t.Fatalf("expected ErrNoCurrentProblem, got %v", err)
	}

	values(t, s, "amb();")
	if _, err := s.TryAgain(); !errors.Is(err, ErrNoCurrentProblem) {
		t.Fatalf("expected ErrNoCurrentProblem after exhaustion, got %v", err)
	}
}

func TestResultIndex(t *testing.T) {
	s := newTestSession(t, Options{})
	res, err := s.Evaluate("amb('a', 'b');", "test.amb")
	if err != nil {
		t.Fatal(err)
	}
	if res.Index != 1 || res.Problem != "amb('a', 'b');" {
		t.Errorf("unexpected first result: %+v", res)
	}
	res, _ = s.TryAgain()
	if res.Index != 2 {
		t.Errorf("expected index 2, got %d", res.Index)
	}
	res, _ = s.TryAgain()
	if !res.Exhausted || res.Index != 2 {
		t.Errorf("expected exhaustion after 2 values, got %+v", res)
	}
}

func TestDeclarationsPersistAcrossProblems(t *testing.T) {
	s := newTestSession(t, Options{})
	if _, err := s.Evaluate("const x = 40;", "repl"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Evaluate("function inc(n) { return n + 1; }", "repl"); err != nil {
		t.Fatal(err)
	}
	got := values(t, s, "inc(x) + 1;")
	if len(got) != 1 || got[0] != "42" {
		t.Errorf("expected [42], got %v", got)
	}
}

func TestNewProblemDropsOld(t *testing.T) {
	s := newTestSession(t, Options{})
	if _, err := s.Evaluate("amb(1, 2, 3);", "repl"); err != nil {
		t.Fatal(err)
	}
	res, err := s.Evaluate("amb(10, 20);", "repl")
	if err != nil {
		t.Fatal(err)
	}
	if evaluator.Stringify(res.Value) != "10" {
		t.Fatalf("expected 10, got %s", res.Value.Inspect())
	}
	res, _ = s.TryAgain()
	if evaluator.Stringify(res.Value) != "20" {
		t.Errorf("expected 20 from the new problem, got %s", res.Value.Inspect())
	}
}

func TestSyntaxErrorsAreDiagnostics(t *testing.T) {
	s := newTestSession(t, Options{})
	_, err := s.Evaluate("const = 1;", "bad.amb")
	var diags Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("expected Diagnostics, got %T: %v", err, err)
	}
	if diags[0].Code == diagnostics.ErrR001 {
		t.Errorf("expected a parser diagnostic, got %s", diags[0].Code)
	}
	if !strings.HasPrefix(err.Error(), "bad.amb:1:") {
		t.Errorf("expected file position in %q", err.Error())
	}
}

func TestIncompleteInput(t *testing.T) {
	s := newTestSession(t, Options{})
	_, err := s.Evaluate("function f(x) {\n  return x;", "repl")
	var diags Diagnostics
	if !errors.As(err, &diags) || !diags.Incomplete() {
		t.Fatalf("expected incomplete input, got %v", err)
	}
}

func TestRuntimeErrorIsDiagnostic(t *testing.T) {
	s := newTestSession(t, Options{})
	_, err := s.Evaluate("\n  nope + 1;", "run.amb")
	var diags Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("expected Diagnostics, got %T: %v", err, err)
	}
	d := diags[0]
	if d.Code != diagnostics.ErrR001 {
		t.Errorf("expected R001, got %s", d.Code)
	}
	if d.Message != "unbound name: nope" {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.Token.Line != 2 || d.File != "run.amb" {
		t.Errorf("unexpected position %s:%d", d.File, d.Token.Line)
	}
	if s.HasProblem() {
		t.Error("failed problem must not be resumable")
	}
}

func TestDisplayGoesToOut(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(t, Options{Out: &out})
	values(t, s, "display('hi');")
	if out.String() != "hi\n" {
		t.Errorf("expected display output, got %q", out.String())
	}
}

func TestStepLimit(t *testing.T) {
	s := newTestSession(t, Options{MaxSteps: 1000})
	_, err := s.Evaluate("function loop(n) { return loop(n + 1); } loop(0);", "loop.amb")
	if err == nil || !strings.Contains(err.Error(), "step limit of 1000 exceeded") {
		t.Fatalf("expected step limit error, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newTestSession(t, Options{Context: ctx})
	cancel()
	_, err := s.Evaluate("an_integer_starting_from(1) < 0 ? 1 : amb();", "loop.amb")
	if err == nil || !strings.Contains(err.Error(), "execution cancelled") {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestPreludeFiles(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.amb")
	if err := os.WriteFile(lib, []byte("function square(x) { return x * x; }\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, Options{Prelude: []string{lib}})
	got := values(t, s, "square(int_between(2, 3));")
	if strings.Join(got, ",") != "4,9" {
		t.Errorf("expected 4,9, got %v", got)
	}
}

func TestMissingPreludeFile(t *testing.T) {
	_, err := NewSession(Options{Prelude: []string{filepath.Join(t.TempDir(), "missing.amb")}})
	if err == nil {
		t.Fatal("expected an error for a missing prelude file")
	}
}

func TestSessionRecordsSolutions(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "funamb.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	s := newTestSession(t, Options{Store: st})
	values(t, s, "amb('x', 'y');")

	sols, err := st.Solutions(context.Background(), s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sols) != 3 {
		t.Fatalf("expected 2 values and an exhaustion marker, got %d rows", len(sols))
	}
	if sols[0].Value != `"x"` || sols[1].Value != `"y"` || !sols[2].Exhausted {
		t.Errorf("unexpected rows: %+v", sols)
	}
	if sols[0].Problem != "amb('x', 'y');" {
		t.Errorf("unexpected problem %q", sols[0].Problem)
	}
}

func TestDefineAndLookup(t *testing.T) {
	s := newTestSession(t, Options{})
	s.Define("limit", &evaluator.Number{Value: 3})

	got := values(t, s, "const n = amb(1, 2, 3, 4); require(n < limit); n;")
	if strings.Join(got, ",") != "1,2" {
		t.Errorf("expected [1 2], got %v", got)
	}

	if _, err := s.Evaluate("const m = amb(10, 20);", "test.amb"); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	val, err := s.Lookup("m")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if evaluator.Stringify(val) != "10" {
		t.Errorf("expected m to be 10, got %s", evaluator.Stringify(val))
	}

	if _, err := s.Lookup("missing"); err == nil {
		t.Error("expected an error for an unbound name")
	}
}

func TestExhaustedProblemKeepsPreviousScope(t *testing.T) {
	s := newTestSession(t, Options{})

	for _, src := range []string{"const x = 1; amb();", "const y = amb(); 1;"} {
		res, err := s.Evaluate(src, "test.amb")
		if err != nil {
			t.Fatalf("Evaluate(%q) failed: %v", src, err)
		}
		if !res.Exhausted {
			t.Fatalf("expected %q to be exhausted", src)
		}
	}

	for _, name := range []string{"x", "y"} {
		_, err := s.Evaluate(name+";", "test.amb")
		if err == nil || !strings.Contains(err.Error(), "unbound name: "+name) {
			t.Errorf("expected %s to be unbound, got %v", name, err)
		}
	}

	got := values(t, s, "const x = 2; x;")
	if strings.Join(got, ",") != "2" {
		t.Errorf("expected x to be declarable again, got %v", got)
	}
}

func TestSetContextCancelsLaterRuns(t *testing.T) {
	s := newTestSession(t, Options{})
	loop := "function loop(n) { return loop(n + 1); } loop(0);"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.SetContext(ctx)
	if _, err := s.Evaluate(loop, "test.amb"); err == nil || !strings.Contains(err.Error(), "execution cancelled") {
		t.Fatalf("expected cancellation, got %v", err)
	}

	s.SetContext(nil)
	got := values(t, s, "amb(1, 2);")
	if strings.Join(got, ",") != "1,2" {
		t.Errorf("expected [1 2] after resetting the context, got %v", got)
	}
}
