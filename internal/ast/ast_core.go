package ast

import (
	"github.com/funvibe/funamb/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	GetToken() token.Token
}

// Statement is a Node that may only appear directly inside a sequence.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Visitor walks the tree. Each node calls the method matching its own type.
type Visitor interface {
	VisitProgram(n *Program)
	VisitSequence(n *Sequence)
	VisitBlock(n *Block)
	VisitConstantDeclaration(n *ConstantDeclaration)
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitAssignment(n *Assignment)
	VisitReturnStatement(n *ReturnStatement)
	VisitNumberLiteral(n *NumberLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNullLiteral(n *NullLiteral)
	VisitName(n *Name)
	VisitConditionalExpression(n *ConditionalExpression)
	VisitFunctionDefinition(n *FunctionDefinition)
	VisitApplication(n *Application)
	VisitBooleanOperation(n *BooleanOperation)
}

// Program is the root node of every AST our parser produces.
// It is evaluated like a block: its top-level declarations live in a frame of their own.
type Program struct {
	File string
	Body *Sequence
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if p.Body != nil && len(p.Body.Statements) > 0 {
		return p.Body.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token {
	if p == nil || p.Body == nil {
		return token.Token{}
	}
	return p.Body.Token
}

// Sequence is a list of statements evaluated left to right.
type Sequence struct {
	Token      token.Token // first token of the sequence
	Statements []Node
}

func (s *Sequence) Accept(v Visitor)      { v.VisitSequence(s) }
func (s *Sequence) statementNode()        {}
func (s *Sequence) TokenLiteral() string  { return s.Token.Lexeme }
func (s *Sequence) GetToken() token.Token { return s.Token }

// Block is a braced sequence that opens a new scope.
// { const x = 1; x; }
type Block struct {
	Token token.Token // {
	Body  *Sequence
}

func (b *Block) Accept(v Visitor)      { v.VisitBlock(b) }
func (b *Block) statementNode()        {}
func (b *Block) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token { return b.Token }

// ConstantDeclaration represents a constant binding.
// const x = 1;
type ConstantDeclaration struct {
	Token token.Token // The 'const' token (or 'function' for function declarations)
	Name  *Name
	Value Expression
}

func (cd *ConstantDeclaration) Accept(v Visitor)     { v.VisitConstantDeclaration(cd) }
func (cd *ConstantDeclaration) statementNode()       {}
func (cd *ConstantDeclaration) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ConstantDeclaration) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// VariableDeclaration represents a mutable binding.
// let x = 1;
type VariableDeclaration struct {
	Token token.Token // The 'let' token
	Name  *Name
	Value Expression
}

func (vd *VariableDeclaration) Accept(v Visitor)     { v.VisitVariableDeclaration(vd) }
func (vd *VariableDeclaration) statementNode()       {}
func (vd *VariableDeclaration) TokenLiteral() string { return vd.Token.Lexeme }
func (vd *VariableDeclaration) GetToken() token.Token {
	if vd == nil {
		return token.Token{}
	}
	return vd.Token
}

// ReturnStatement ends the enclosing function body with a value.
type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression
}

func (rs *ReturnStatement) Accept(v Visitor)      { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }
