package parser

import (
	"fmt"

	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/token"
)

// parseBlockStatement parses { stmt NL stmt ... }. The opening brace is
// the current token on entry; the closing brace is current on exit.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.skipPeekNewlines()
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.skipPeekNewlines()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses: let name [: Type] = expr.
func (p *Parser) parseLetStatement() *ast.LetStatement {
	ls := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT_LOWER) {
		return nil
	}
	ls.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if p.peekTokenIs(token.COLON) {
		p.nextToken() // consume :
		if !p.expectPeek(token.IDENT_UPPER) {
			return nil
		}
		ls.TypeAnnotation = &ast.TypeRef{Token: p.curToken, Name: p.curToken.Literal.(string)}
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	ls.Value = p.parseExpression()
	if ls.Value == nil {
		return nil
	}
	return ls
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	es := &ast.ExpressionStatement{Token: p.curToken}
	es.Expression = p.parseExpression()
	if es.Expression == nil {
		return nil
	}
	return es
}

// parseExpression parses a primary expression followed by postfix
// member access, calls, and at most one trailing type annotation.
func (p *Parser) parseExpression() ast.Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.peekTokenIs(token.DOT):
			p.nextToken() // consume .
			dotTok := p.curToken
			if !p.expectPeek(token.IDENT_LOWER) {
				return nil
			}
			expr = &ast.MemberExpression{
				Token:  dotTok,
				Left:   expr,
				Member: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)},
			}
		case p.peekTokenIs(token.LPAREN):
			p.nextToken() // consume (
			call := p.parseCallExpression(expr)
			if call == nil {
				return nil
			}
			expr = call
		case p.peekTokenIs(token.COLON):
			p.nextToken() // consume :
			colonTok := p.curToken
			if !p.expectPeek(token.IDENT_UPPER) {
				return nil
			}
			return &ast.AnnotatedExpression{
				Token:          colonTok,
				Expression:     expr,
				TypeAnnotation: &ast.TypeRef{Token: p.curToken, Name: p.curToken.Literal.(string)},
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.IDENT_LOWER:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}
	case token.IDENT_UPPER:
		return &ast.TypeDesignatorExpression{
			Token: p.curToken,
			Ref:   &ast.TypeRef{Token: p.curToken, Name: p.curToken.Literal.(string)},
		}
	case token.INT:
		return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.Literal.(int64)}
	case token.FLOAT:
		return &ast.FloatLiteral{Token: p.curToken, Value: p.curToken.Literal.(float64)}
	case token.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
	case token.TYPECASE:
		return p.parseTypecaseExpression()
	case token.LPAREN:
		p.nextToken()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return expr
	default:
		p.addError(diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("unexpected token %s in expression", p.curToken.Type))
		return nil
	}
}

func (p *Parser) parseCallExpression(fn ast.Expression) *ast.CallExpression {
	call := &ast.CallExpression{Token: p.curToken, Function: fn}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}

	for {
		p.nextToken()
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

// parseTypecaseExpression parses the conditional-cast construct:
//
//	typecase other {
//	    Collider c  -> { ... }
//	    Rigidbody r -> { ... }
//	    else        -> { ... }
//	}
func (p *Parser) parseTypecaseExpression() *ast.TypecaseExpression {
	te := &ast.TypecaseExpression{Token: p.curToken}

	p.nextToken()
	te.Subject = p.parseExpression()
	if te.Subject == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	p.skipPeekNewlines()
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if p.peekTokenIs(token.ELSE) {
			p.nextToken() // consume else
			if te.Default != nil {
				p.addError(diagnostics.ErrP002, p.curToken, "duplicate else clause in typecase")
				return nil
			}
			if p.peekTokenIs(token.ARROW) {
				p.nextToken()
			}
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			te.Default = p.parseBlockStatement()
			if te.Default == nil {
				return nil
			}
		} else {
			clause := p.parseTypecaseClause()
			if clause == nil {
				return nil
			}
			if te.Default != nil {
				p.addError(diagnostics.ErrP002, clause.Token, "typecase clause after else")
				return nil
			}
			te.Clauses = append(te.Clauses, clause)
		}
		p.skipPeekNewlines()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return te
}

// parseTypecaseClause parses: Type binder -> { body }.
func (p *Parser) parseTypecaseClause() *ast.TypecaseClause {
	if !p.expectPeek(token.IDENT_UPPER) {
		return nil
	}
	clause := &ast.TypecaseClause{
		Token: p.curToken,
		Type:  &ast.TypeRef{Token: p.curToken, Name: p.curToken.Literal.(string)},
	}

	if !p.expectPeek(token.IDENT_LOWER) {
		return nil
	}
	clause.Binder = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	clause.Body = p.parseBlockStatement()
	if clause.Body == nil {
		return nil
	}
	return clause
}
