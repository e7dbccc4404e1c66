package ast

import (
	"github.com/funvibe/funamb/internal/token"
)

// NumberLiteral is a self-evaluating number.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) Accept(v Visitor)      { v.VisitNumberLiteral(nl) }
func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

// StringLiteral is a self-evaluating string.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// NullLiteral is null, the empty list.
type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) Accept(v Visitor)      { v.VisitNullLiteral(nl) }
func (nl *NullLiteral) expressionNode()       {}
func (nl *NullLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NullLiteral) GetToken() token.Token { return nl.Token }

// Name is a reference to a binding.
type Name struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (n *Name) Accept(v Visitor)      { v.VisitName(n) }
func (n *Name) expressionNode()       {}
func (n *Name) TokenLiteral() string  { return n.Token.Lexeme }
func (n *Name) GetToken() token.Token { return n.Token }

// Assignment changes the value of a variable.
// x = 1
type Assignment struct {
	Token token.Token // the token.ASSIGN token
	Name  *Name
	Value Expression
}

func (a *Assignment) Accept(v Visitor)      { v.VisitAssignment(a) }
func (a *Assignment) expressionNode()       {}
func (a *Assignment) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assignment) GetToken() token.Token { return a.Token }

// ConditionalExpression is pred ? cons : alt.
type ConditionalExpression struct {
	Token       token.Token // ?
	Predicate   Expression
	Consequent  Expression
	Alternative Expression
}

func (ce *ConditionalExpression) Accept(v Visitor)      { v.VisitConditionalExpression(ce) }
func (ce *ConditionalExpression) expressionNode()       {}
func (ce *ConditionalExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *ConditionalExpression) GetToken() token.Token { return ce.Token }

// FunctionDefinition is a lambda: (params) => body.
// Function declarations are parsed into a ConstantDeclaration holding one of these.
// Expression bodies (x => x + 1) are stored as a sequence with a single return.
type FunctionDefinition struct {
	Token      token.Token // '=>' or 'function'
	Name       string      // declared name, empty for lambdas; used only for display
	Parameters []*Name
	Body       *Sequence
}

func (fd *FunctionDefinition) Accept(v Visitor)      { v.VisitFunctionDefinition(fd) }
func (fd *FunctionDefinition) expressionNode()       {}
func (fd *FunctionDefinition) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDefinition) GetToken() token.Token { return fd.Token }

// Application is a function call. Operators are applications of the
// primitive bound to the operator's name: 1 + 2 is +(1, 2).
type Application struct {
	Token    token.Token // The '(' token, or the operator token
	Operator Expression
	Operands []Expression
}

func (a *Application) Accept(v Visitor)      { v.VisitApplication(a) }
func (a *Application) expressionNode()       {}
func (a *Application) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Application) GetToken() token.Token { return a.Token }

// OperatorName returns the name the operator refers to, or "" if the operator
// is not a plain name (e.g. f()(x)).
func (a *Application) OperatorName() string {
	if n, ok := a.Operator.(*Name); ok {
		return n.Value
	}
	return ""
}

// BooleanOperation is a short-circuiting && or ||.
type BooleanOperation struct {
	Token    token.Token
	Operator string // "&&" or "||"
	Left     Expression
	Right    Expression
}

func (bo *BooleanOperation) Accept(v Visitor)      { v.VisitBooleanOperation(bo) }
func (bo *BooleanOperation) expressionNode()       {}
func (bo *BooleanOperation) TokenLiteral() string  { return bo.Token.Lexeme }
func (bo *BooleanOperation) GetToken() token.Token { return bo.Token }
