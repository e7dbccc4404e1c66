package parser

import (
	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/diagnostics"
	"github.com/funvibe/funamb/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.ErrP006, p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}

	if p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP002, p.curToken, "unexpected end of input, expected an expression")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}
	return leftExp
}

func (p *Parser) parseIllegal() ast.Expression {
	p.reportIllegal(p.curToken)
	return nil
}

// parsePrefixExpression handles unary - and !. They become applications of
// the primitive with the same name to a single operand.
func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &ast.Application{
		Token:    tok,
		Operator: &ast.Name{Token: tok, Value: tok.Lexeme},
		Operands: []ast.Expression{operand},
	}
}

// parseInfixExpression handles the arithmetic and comparison operators,
// all left-associative.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Application{
		Token:    tok,
		Operator: &ast.Name{Token: tok, Value: tok.Lexeme},
		Operands: []ast.Expression{left, right},
	}
}

func (p *Parser) parseBooleanOperation(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.BooleanOperation{Token: tok, Operator: tok.Lexeme, Left: left, Right: right}
}

// parseConditionalExpression parses pred ? cons : alt. It is right-associative,
// so a ? b : c ? d : e groups as a ? b : (c ? d : e).
func (p *Parser) parseConditionalExpression(predicate ast.Expression) ast.Expression {
	expr := &ast.ConditionalExpression{Token: p.curToken, Predicate: predicate}
	p.nextToken()
	expr.Consequent = p.parseExpression(LOWEST)
	if expr.Consequent == nil {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	expr.Alternative = p.parseExpression(CONDITIONAL - 1)
	if expr.Alternative == nil {
		return nil
	}
	return expr
}

// parseAssignment parses x = e. Only plain names can be assigned.
func (p *Parser) parseAssignment(left ast.Expression) ast.Expression {
	tok := p.curToken
	name, ok := left.(*ast.Name)
	if !ok {
		p.addError(diagnostics.ErrP003, tok, "invalid assignment target")
		return nil
	}
	p.nextToken()
	value := p.parseExpression(ASSIGN - 1)
	if value == nil {
		return nil
	}
	return &ast.Assignment{Token: tok, Name: name, Value: value}
}

// parseApplication parses a call: the operator is already parsed and
// curToken is '('.
func (p *Parser) parseApplication(operator ast.Expression) ast.Expression {
	app := &ast.Application{Token: p.curToken, Operator: operator}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	app.Operands = args
	return app
}

// parseExpressionList parses comma separated expressions up to end.
// curToken is the opening token; on success curToken is end.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil, false
	}
	list = append(list, expr)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}
