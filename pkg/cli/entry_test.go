package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runMain(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Main(append([]string{"-color", "never"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestEvalFlag(t *testing.T) {
	out, errOut, code := runMain(t, "", "-e", "amb(1, 2, 3);")
	if code != 0 || errOut != "" {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if out != "1\n" {
		t.Errorf("expected the first value only, got %q", out)
	}
}

func TestEvalAll(t *testing.T) {
	out, _, code := runMain(t, "", "-all", "-e", "amb('a', 'b');")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	want := "\"a\"\n\"b\"\nThere are no more values of: amb('a', 'b');\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestEvalCount(t *testing.T) {
	out, _, _ := runMain(t, "", "-n", "4", "-e", "an_integer_starting_from(1);")
	if out != "1\n2\n3\n4\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestProgramFromStdin(t *testing.T) {
	out, _, code := runMain(t, "const x = 6;\nx * 7;\n")
	if code != 0 || out != "42\n" {
		t.Errorf("exit %d, output %q", code, out)
	}
}

func TestNoValues(t *testing.T) {
	out, _, code := runMain(t, "", "-e", "amb();")
	if code != 0 {
		t.Fatalf("exhaustion is not an error, exit %d", code)
	}
	if out != "There are no more values of: amb();\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRuntimeErrorExitCode(t *testing.T) {
	_, errOut, code := runMain(t, "", "-e", "nope;")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if errOut != "error: <eval>:1:1: unbound name: nope\n" {
		t.Errorf("unexpected stderr %q", errOut)
	}
}

func TestSyntaxErrorExitCode(t *testing.T) {
	_, errOut, code := runMain(t, "", "-e", "const = 1;")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, "error [P") {
		t.Errorf("expected a parser diagnostic, got %q", errOut)
	}
}

func TestMaxStepsFlag(t *testing.T) {
	_, errOut, code := runMain(t, "", "-max-steps", "200", "-e", "function loop(n) { return loop(n + 1); } loop(0);")
	if code != 1 || !strings.Contains(errOut, "step limit of 200 exceeded") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func TestBadFlags(t *testing.T) {
	tests := [][]string{
		{"-color", "purple", "-e", "1;"},
		{"-n", "-1", "-e", "1;"},
		{"-e", "1;", "file.amb"},
		{"a.amb", "b.amb"},
		{"-unknown"},
	}
	for _, args := range tests {
		_, _, code := runMain(t, "", args...)
		if code != 2 {
			t.Errorf("%v: expected exit 2, got %d", args, code)
		}
	}
}

func TestNotASourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.txt")
	if err := os.WriteFile(path, []byte("1;"), 0644); err != nil {
		t.Fatal(err)
	}
	_, errOut, code := runMain(t, "", path)
	if code != 1 || !strings.Contains(errOut, "not a source file") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func TestVersion(t *testing.T) {
	out, _, code := runMain(t, "", "-version")
	if code != 0 || !strings.HasPrefix(out, "funamb ") {
		t.Errorf("exit %d, output %q", code, out)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.amb")
	if err := os.WriteFile(lib, []byte("const answer = 42;\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "funamb.yaml")
	if err := os.WriteFile(cfg, []byte("max_results: 2\nprelude: [lib.amb]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, errOut, code := runMain(t, "", "-config", cfg, "-e", "amb(answer, answer + 1, answer + 2);")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if out != "42\n43\n" {
		t.Errorf("expected two values from max_results, got %q", out)
	}

	out, _, _ = runMain(t, "", "-config", cfg, "-n", "1", "-e", "amb(answer, 0);")
	if out != "42\n" {
		t.Errorf("-n should override max_results, got %q", out)
	}
}

func TestBadConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "funamb.yaml")
	if err := os.WriteFile(cfg, []byte("color: sometimes\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, errOut, code := runMain(t, "", "-config", cfg, "-e", "1;")
	if code != 1 || !strings.Contains(errOut, "color must be one of") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func TestColorAlways(t *testing.T) {
	var stdout, stderr bytes.Buffer
	Main([]string{"-color", "always", "-e", "1;"}, strings.NewReader(""), &stdout, &stderr)
	if stdout.String() != blue("1")+"\n" {
		t.Errorf("expected colored output, got %q", stdout.String())
	}
}

func TestTraceLogsSessionEvents(t *testing.T) {
	_, errOut, _ := runMain(t, "", "-trace", "-e", "amb();")
	if !strings.Contains(errOut, "problem exhausted") || !strings.Contains(errOut, "session=") {
		t.Errorf("expected slog output on stderr, got %q", errOut)
	}
}
