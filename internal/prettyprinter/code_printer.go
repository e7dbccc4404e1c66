package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/funamb/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter). Mirrors the parser.
var operatorPrecedence = map[string]int{
	"||":  3,
	"&&":  4,
	"===": 5,
	"!==": 5,
	"<":   6,
	">":   6,
	"<=":  6,
	">=":  6,
	"+":   7,
	"-":   7,
	"*":   8,
	"/":   8,
	"%":   8,
}

const (
	precLambda      = 1 // assignments and lambdas
	precConditional = 2
	precPrefix      = 100
)

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

// IsOperator reports whether name is spelled as an infix operator.
func IsOperator(name string) bool {
	_, ok := operatorPrecedence[name]
	return ok || name == "!"
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Format prints a single node as source code.
func Format(node ast.Node) string {
	p := NewCodePrinter()
	if node == nil {
		return ""
	}
	if expr, ok := node.(ast.Expression); ok {
		p.printExpr(expr, 0, false)
	} else {
		node.Accept(p)
	}
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// operatorApplication returns the operator name when app is written as an
// operator expression rather than a call.
func operatorApplication(app *ast.Application) (string, bool) {
	name, ok := app.Operator.(*ast.Name)
	if !ok || name.Token != app.Token || !IsOperator(name.Value) {
		return "", false
	}
	if len(app.Operands) == 1 && (name.Value == "-" || name.Value == "!") {
		return name.Value, true
	}
	if len(app.Operands) == 2 && name.Value != "!" {
		return name.Value, true
	}
	return "", false
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.Application:
		op, ok := operatorApplication(e)
		if !ok {
			e.Accept(p)
			return
		}
		if len(e.Operands) == 1 {
			p.write(op)
			p.printExpr(e.Operands[0], precPrefix, false)
			return
		}
		p.printInfix(op, e.Operands[0], e.Operands[1], parentPrec, isRight)
	case *ast.BooleanOperation:
		p.printInfix(e.Operator, e.Left, e.Right, parentPrec, isRight)
	case *ast.ConditionalExpression:
		needParens := precConditional < parentPrec || (precConditional == parentPrec && !isRight)
		if needParens {
			p.write("(")
		}
		e.Accept(p)
		if needParens {
			p.write(")")
		}
	case *ast.Assignment, *ast.FunctionDefinition:
		needParens := parentPrec > precLambda
		if needParens {
			p.write("(")
		}
		expr.Accept(p)
		if needParens {
			p.write(")")
		}
	default:
		expr.Accept(p)
	}
}

// Infix operators are all left-associative.
func (p *CodePrinter) printInfix(op string, left, right ast.Expression, parentPrec int, isRight bool) {
	prec := getPrecedence(op)
	needParens := prec < parentPrec || (prec == parentPrec && isRight)
	if needParens {
		p.write("(")
	}
	p.printExpr(left, prec, false)
	p.write(" " + op + " ")
	p.printExpr(right, prec, true)
	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	if n.Body == nil {
		return
	}
	for _, stmt := range n.Body.Statements {
		p.printStatement(stmt)
		p.write("\n")
	}
}

func (p *CodePrinter) printStatement(stmt ast.Node) {
	switch s := stmt.(type) {
	case nil:
		p.write("<???>")
	case ast.Expression:
		p.printExpr(s, 0, false)
		p.write(";")
	default:
		s.Accept(p)
	}
}

// VisitSequence prints the statements between braces, one per line.
func (p *CodePrinter) VisitSequence(n *ast.Sequence) {
	p.write("{\n")
	p.indent++
	for _, stmt := range n.Statements {
		p.writeIndent()
		p.printStatement(stmt)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitBlock(n *ast.Block) {
	if n.Body == nil {
		p.write("{}")
		return
	}
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitConstantDeclaration(n *ast.ConstantDeclaration) {
	if fn, ok := n.Value.(*ast.FunctionDefinition); ok && fn.Name != "" && fn.Token == n.Token {
		p.write("function " + fn.Name)
		p.printParameters(fn.Parameters)
		p.write(" ")
		p.VisitSequence(fn.Body)
		return
	}
	p.printDeclaration("const", n.Name, n.Value)
}

func (p *CodePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	p.printDeclaration("let", n.Name, n.Value)
}

func (p *CodePrinter) printDeclaration(keyword string, name *ast.Name, value ast.Expression) {
	p.write(keyword + " ")
	if name != nil {
		p.write(name.Value)
	} else {
		p.write("<???>")
	}
	p.write(" = ")
	p.printExpr(value, 0, false)
	p.write(";")
}

func (p *CodePrinter) VisitAssignment(n *ast.Assignment) {
	if n.Name != nil {
		p.write(n.Name.Value)
	} else {
		p.write("<???>")
	}
	p.write(" = ")
	p.printExpr(n.Value, 0, true)
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	if n.Value == nil {
		p.write("return;")
		return
	}
	p.write("return ")
	p.printExpr(n.Value, 0, false)
	p.write(";")
}

func (p *CodePrinter) VisitNumberLiteral(n *ast.NumberLiteral) {
	if n.Token.Lexeme != "" {
		p.write(n.Token.Lexeme)
		return
	}
	p.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *CodePrinter) VisitNullLiteral(n *ast.NullLiteral) {
	p.write("null")
}

func (p *CodePrinter) VisitName(n *ast.Name) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitConditionalExpression(n *ast.ConditionalExpression) {
	p.printExpr(n.Predicate, precConditional+1, false)
	p.write(" ? ")
	p.printExpr(n.Consequent, 0, false)
	p.write(" : ")
	p.printExpr(n.Alternative, precConditional, true)
}

// VisitFunctionDefinition prints a lambda. A body that only returns an
// expression is printed in the short arrow form.
func (p *CodePrinter) VisitFunctionDefinition(n *ast.FunctionDefinition) {
	if len(n.Parameters) == 1 {
		p.write(n.Parameters[0].Value)
	} else {
		p.printParameters(n.Parameters)
	}
	p.write(" => ")
	if n.Body == nil {
		p.write("{}")
		return
	}
	if len(n.Body.Statements) == 1 {
		if ret, ok := n.Body.Statements[0].(*ast.ReturnStatement); ok && ret.Value != nil {
			if _, isLambda := ret.Value.(*ast.FunctionDefinition); isLambda {
				ret.Value.Accept(p)
			} else {
				p.printExpr(ret.Value, precLambda, true)
			}
			return
		}
	}
	p.VisitSequence(n.Body)
}

func (p *CodePrinter) printParameters(params []*ast.Name) {
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.Value
	}
	p.write("(" + strings.Join(names, ", ") + ")")
}

func (p *CodePrinter) VisitApplication(n *ast.Application) {
	if _, ok := operatorApplication(n); ok {
		p.printExpr(n, 0, false)
		return
	}
	p.printExpr(n.Operator, precPrefix, false)
	p.write("(")
	for i, arg := range n.Operands {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, 0, false)
	}
	p.write(")")
}

func (p *CodePrinter) VisitBooleanOperation(n *ast.BooleanOperation) {
	p.printExpr(n, 0, false)
}

// FormatFunction prints a function definition in declaration form,
// function name(params) { body }, whatever syntax it was written in.
func FormatFunction(fn *ast.FunctionDefinition) string {
	p := NewCodePrinter()
	p.write("function")
	if fn.Name != "" {
		p.write(" " + fn.Name)
	}
	p.printParameters(fn.Parameters)
	p.write(" ")
	if fn.Body == nil {
		p.write("{}")
	} else {
		p.VisitSequence(fn.Body)
	}
	return p.String()
}
