package parser

import (
	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/diagnostics"
	"github.com/funvibe/funamb/internal/token"
)

// ParseProgram parses the whole token stream. The result is never nil;
// callers must check ctx.Errors.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.ctx.FilePath}
	program.Body = &ast.Sequence{Token: p.curToken, Statements: []ast.Node{}}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Body.Statements = append(program.Body.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

// parseStatement starts on the first token of a statement and leaves
// curToken on its last token (the ';' when there is one).
func (p *Parser) parseStatement() ast.Node {
	var stmt ast.Node
	switch p.curToken.Type {
	case token.SEMICOLON:
		return nil
	case token.CONST:
		stmt = p.parseDeclaration()
	case token.LET:
		stmt = p.parseDeclaration()
	case token.FUNCTION:
		stmt = p.parseFunctionDeclaration()
	case token.RETURN:
		stmt = p.parseReturnStatement()
	case token.LBRACE:
		stmt = p.parseBlock()
	default:
		stmt = p.parseExpressionStatement()
	}
	if stmt == nil {
		p.skipToStatementBoundary()
		return nil
	}
	return stmt
}

// parseDeclaration handles const x = e and let x = e.
func (p *Parser) parseDeclaration() ast.Node {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Name{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	if !p.endStatement() {
		return nil
	}
	if tok.Type == token.LET {
		return &ast.VariableDeclaration{Token: tok, Name: name, Value: value}
	}
	return &ast.ConstantDeclaration{Token: tok, Name: name, Value: value}
}

// parseFunctionDeclaration turns function f(a, b) { ... } into
// const f = (a, b) => { ... }.
func (p *Parser) parseFunctionDeclaration() ast.Node {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Name{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParameterList()
	if !ok {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockSequence()
	if body == nil {
		return nil
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	fn := &ast.FunctionDefinition{Token: tok, Name: name.Value, Parameters: params, Body: body}
	return &ast.ConstantDeclaration{Token: tok, Name: name, Value: fn}
}

// parseReturnStatement accepts both "return e;" and a bare "return;".
func (p *Parser) parseReturnStatement() ast.Node {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}
	if p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	if !p.endStatement() {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Node {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.endStatement() {
		return nil
	}
	return expr
}

// endStatement consumes an optional ';'. Without one the statement must be
// followed by '}', the end of input, or a line break.
func (p *Parser) endStatement() bool {
	switch {
	case p.peekTokenIs(token.SEMICOLON):
		p.nextToken()
		return true
	case p.peekTokenIs(token.RBRACE), p.peekTokenIs(token.EOF):
		return true
	case p.peekToken.Line > p.curToken.Line:
		return true
	}
	if p.peekToken.Type == token.ILLEGAL {
		p.reportIllegal(p.peekToken)
		return false
	}
	p.addError(diagnostics.ErrP001, p.peekToken, "expected ';' before %s", describe(p.peekToken))
	return false
}

func (p *Parser) parseBlock() ast.Node {
	tok := p.curToken
	body := p.parseBlockSequence()
	if body == nil {
		return nil
	}
	return &ast.Block{Token: tok, Body: body}
}

// parseBlockSequence starts on '{' and ends on the matching '}'.
func (p *Parser) parseBlockSequence() *ast.Sequence {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.ErrP006, p.curToken, "block nesting too deep")
		return nil
	}

	seq := &ast.Sequence{Token: p.curToken, Statements: []ast.Node{}}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrP001, p.curToken, "expected '}' to close block opened at %d:%d", seq.Token.Line, seq.Token.Column)
			return nil
		}
		stmt := p.parseStatement()
		if stmt != nil {
			seq.Statements = append(seq.Statements, stmt)
		}
		p.nextToken()
	}
	return seq
}
