package parser

import (
	"fmt"

	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/diagnostics"
	"github.com/funvibe/funamb/internal/lexer"
	"github.com/funvibe/funamb/internal/pipeline"
	"github.com/funvibe/funamb/internal/token"
)

// MaxRecursionDepth bounds expression nesting so hostile input cannot
// exhaust the Go stack.
const MaxRecursionDepth = 1000

const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	CONDITIONAL // ? :
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	EQUALS      // === !==
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // f(x)
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:   ASSIGN,
	token.QUESTION: CONDITIONAL,
	token.OR:       LOGIC_OR,
	token.AND:      LOGIC_AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GT:       LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	stream pipeline.TokenStream
	ctx    *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth int
}

func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseNameOrArrow)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrArrow)
	p.registerPrefix(token.ILLEGAL, p.parseIllegal)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE,
	} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	p.registerInfix(token.AND, p.parseBooleanOperation)
	p.registerInfix(token.OR, p.parseBooleanOperation)
	p.registerInfix(token.QUESTION, p.parseConditionalExpression)
	p.registerInfix(token.ASSIGN, p.parseAssignment)
	p.registerInfix(token.LPAREN, p.parseApplication)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// ParseSource is a convenience wrapper running lexer and parser over src.
func ParseSource(src string) (*ast.Program, []*diagnostics.DiagnosticError) {
	ctx := pipeline.NewPipelineContext(src)
	p := New(lexer.NewTokenStream(lexer.New(src)), ctx)
	prog := p.ParseProgram()
	return prog, ctx.Errors
}

func (p *Parser) registerPrefix(t token.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// upcoming returns the i-th token after curToken (0 is peekToken).
func (p *Parser) upcoming(i int) token.Token {
	if i == 0 {
		return p.peekToken
	}
	return p.stream.Peek(i)[i-1]
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	err := diagnostics.NewError(code, tok, fmt.Sprintf(format, args...))
	err.File = p.ctx.FilePath
	p.ctx.Errors = append(p.ctx.Errors, err)
}

func (p *Parser) peekError(t token.TokenType) {
	if p.peekToken.Type == token.ILLEGAL {
		p.reportIllegal(p.peekToken)
		return
	}
	p.addError(diagnostics.ErrP001, p.peekToken, "expected next token to be %s, got %s instead", t, describe(p.peekToken))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.addError(diagnostics.ErrP002, tok, "unexpected %s", describe(tok))
}

func (p *Parser) reportIllegal(tok token.Token) {
	code := diagnostics.ErrL001
	if lexer.IsUnterminated(tok) {
		code = diagnostics.ErrL002
	}
	msg, _ := tok.Literal.(string)
	p.addError(code, tok, "%s", msg)
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

// skipToStatementBoundary moves past the current statement after an error.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		if p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
			return
		}
		p.nextToken()
	}
}
