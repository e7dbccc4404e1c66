package evaluator

import (
	"strings"
	"testing"

	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/token"
)

// strayNode satisfies ast.Node but is not a kind the analyzer knows.
type strayNode struct {
	tok token.Token
}

func (n *strayNode) TokenLiteral() string  { return "stray" }
func (n *strayNode) Accept(v ast.Visitor)  {}
func (n *strayNode) GetToken() token.Token { return n.tok }

func TestAnalyzeThenRun(t *testing.T) {
	e := New()
	proc, err := e.Analyze(&ast.NumberLiteral{Value: 7})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var got Object
	step := proc(e.GlobalEnv, func(val Object, fail Fail) Step {
		got = val
		return nil
	}, func() Step { return nil })
	if err := e.run(step); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got == nil || got.Inspect() != "7" {
		t.Errorf("expected 7, got %v", got)
	}
}

func TestUnknownNodeIsFatal(t *testing.T) {
	e := New()
	stray := &strayNode{tok: token.Token{Line: 3, Column: 4}}

	if _, err := e.Analyze(stray); err == nil || !strings.Contains(err.Error(), "unknown statement type: *evaluator.strayNode") {
		t.Errorf("Analyze: expected unknown statement error, got %v", err)
	}

	prog := &ast.Program{Body: &ast.Sequence{Statements: []ast.Node{stray}}}
	_, err := e.Evaluate(prog)
	if err == nil {
		t.Fatal("expected an error for an unknown node")
	}
	evalErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if evalErr.Line != 3 || evalErr.Column != 4 {
		t.Errorf("expected position 3:4, got %d:%d", evalErr.Line, evalErr.Column)
	}
	if !strings.Contains(evalErr.Message, "unknown statement type") {
		t.Errorf("unexpected message: %s", evalErr.Message)
	}
}

func TestEvaluateNilNode(t *testing.T) {
	e := New()
	_, err := e.Evaluate(nil)
	if err == nil || !strings.Contains(err.Error(), "unknown statement type: <nil>") {
		t.Errorf("expected unknown statement error, got %v", err)
	}
}
