package parser

import (
	"github.com/funvibe/funamb/internal/ast"
	"github.com/funvibe/funamb/internal/diagnostics"
	"github.com/funvibe/funamb/internal/token"
)

// parseNameOrArrow parses a name, or a single-parameter lambda x => body.
func (p *Parser) parseNameOrArrow() ast.Expression {
	name := &ast.Name{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.peekTokenIs(token.ARROW) {
		return name
	}
	p.nextToken()
	return p.parseArrowBody([]*ast.Name{name})
}

// parseGroupedOrArrow parses (e), or a lambda (a, b) => body when the
// parenthesised list is followed by '=>'.
func (p *Parser) parseGroupedOrArrow() ast.Expression {
	if p.arrowAhead() {
		params, ok := p.parseParameterList()
		if !ok {
			return nil
		}
		if !p.expectPeek(token.ARROW) {
			return nil
		}
		return p.parseArrowBody(params)
	}

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// arrowAhead reports whether curToken '(' opens a lambda parameter list.
// It only looks at tokens, nothing is consumed.
func (p *Parser) arrowAhead() bool {
	i := 0
	if p.upcoming(i).Type == token.RPAREN {
		return p.upcoming(i+1).Type == token.ARROW
	}
	for {
		if p.upcoming(i).Type != token.IDENT {
			return false
		}
		i++
		switch p.upcoming(i).Type {
		case token.COMMA:
			i++
		case token.RPAREN:
			return p.upcoming(i+1).Type == token.ARROW
		default:
			return false
		}
	}
}

// parseParameterList starts on '(' and ends on ')'.
func (p *Parser) parseParameterList() ([]*ast.Name, bool) {
	params := []*ast.Name{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	seen := make(map[string]bool)
	for {
		if !p.peekTokenIs(token.IDENT) {
			if p.peekToken.Type == token.EOF {
				p.peekError(token.IDENT)
			} else {
				p.addError(diagnostics.ErrP004, p.peekToken, "expected parameter name, got %s", describe(p.peekToken))
			}
			return nil, false
		}
		p.nextToken()
		if seen[p.curToken.Lexeme] {
			p.addError(diagnostics.ErrP004, p.curToken, "duplicate parameter %s", p.curToken.Lexeme)
			return nil, false
		}
		seen[p.curToken.Lexeme] = true
		params = append(params, &ast.Name{Token: p.curToken, Value: p.curToken.Lexeme})

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseArrowBody starts on '=>'. A braced body is a statement sequence;
// an expression body becomes a sequence holding a single return.
func (p *Parser) parseArrowBody(params []*ast.Name) ast.Expression {
	fn := &ast.FunctionDefinition{Token: p.curToken, Parameters: params}
	p.nextToken()

	if p.curTokenIs(token.LBRACE) {
		fn.Body = p.parseBlockSequence()
		if fn.Body == nil {
			return nil
		}
		return fn
	}

	bodyTok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	fn.Body = &ast.Sequence{
		Token:      bodyTok,
		Statements: []ast.Node{&ast.ReturnStatement{Token: bodyTok, Value: expr}},
	}
	return fn
}
