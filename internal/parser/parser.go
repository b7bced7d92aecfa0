package parser

import (
	"fmt"

	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/lexer"
	"github.com/tetherlang/tether/internal/token"
)

// Parser is a recursive-descent parser for component definition files.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	file   string
	errors []*diagnostics.DiagnosticError
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// NewWithFile creates a parser that tags diagnostics with a file path.
func NewWithFile(l *lexer.Lexer, file string) *Parser {
	p := New(l)
	p.file = file
	return p
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, msg string) {
	err := diagnostics.NewError(code, tok, msg)
	err.File = p.file
	p.errors = append(p.errors, err)
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.ErrP001, p.peekToken,
		fmt.Sprintf("expected %s, got %s", t, p.peekToken.Type))
	return false
}

// skipNewlines advances past any NEWLINE tokens at the current position.
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) skipPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseProgram parses a whole source file: a sequence of component
// declarations.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.file}

	p.skipNewlines()
	for !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.COMPONENT) {
			p.addError(diagnostics.ErrP001, p.curToken,
				fmt.Sprintf("expected 'component', got %s", p.curToken.Type))
			return program
		}
		cd := p.parseComponentDeclaration()
		if cd == nil {
			return program
		}
		program.Components = append(program.Components, cd)
		p.nextToken()
		p.skipNewlines()
	}
	return program
}

// parseComponentDeclaration parses:
//
//	component Player (health, speed) { ...members... }
func (p *Parser) parseComponentDeclaration() *ast.ComponentDeclaration {
	cd := &ast.ComponentDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT_UPPER) {
		return nil
	}
	cd.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // consume (
		cd.Fields = p.parseFieldList()
		if cd.Fields == nil && diagnostics.HasErrors(p.errors) {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	p.skipPeekNewlines()
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		member := p.parseComponentMember()
		if member == nil {
			return nil
		}
		cd.Members = append(cd.Members, member)
		p.skipPeekNewlines()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return cd
}

// parseFieldList parses the parenthesized field declarations. The
// opening paren is the current token on entry; the closing paren is the
// current token on exit.
func (p *Parser) parseFieldList() []*ast.FieldDeclaration {
	fields := []*ast.FieldDeclaration{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return fields
	}

	for {
		if !p.expectPeek(token.IDENT_LOWER) {
			return nil
		}
		fields = append(fields, &ast.FieldDeclaration{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)},
		})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return fields
}

// parseComponentMember parses either a shorthand message form or an
// explicit interface group. The member's first token is current.
func (p *Parser) parseComponentMember() ast.ComponentMember {
	switch p.curToken.Type {
	case token.IDENT_LOWER:
		return p.parseMessageDeclaration()
	case token.INTERFACE:
		return p.parseInterfaceGroup()
	default:
		p.addError(diagnostics.ErrP003, p.curToken,
			fmt.Sprintf("expected message name or 'interface', got %s", p.curToken.Type))
		return nil
	}
}

// parseMessageDeclaration parses the shorthand form: name { body }.
func (p *Parser) parseMessageDeclaration() *ast.MessageDeclaration {
	md := &ast.MessageDeclaration{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)},
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	md.Body = p.parseBlockStatement()
	if md.Body == nil {
		return nil
	}
	return md
}

// parseInterfaceGroup parses:
//
//	interface Collidable {
//	    onHit(other) -> { ... }
//	}
func (p *Parser) parseInterfaceGroup() *ast.InterfaceGroup {
	ig := &ast.InterfaceGroup{Token: p.curToken}

	if !p.expectPeek(token.IDENT_UPPER) {
		return nil
	}
	ig.Interface = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	p.skipPeekNewlines()
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT_LOWER) {
			return nil
		}
		method := p.parseMethodDeclaration()
		if method == nil {
			return nil
		}
		ig.Methods = append(ig.Methods, method)
		p.skipPeekNewlines()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	if len(ig.Methods) == 0 {
		p.addError(diagnostics.ErrP003, ig.Token,
			fmt.Sprintf("interface group %s declares no methods", ig.Interface.Value))
		return nil
	}
	return ig
}

// parseMethodDeclaration parses: name(params) [->] { body }.
func (p *Parser) parseMethodDeclaration() *ast.MethodDeclaration {
	md := &ast.MethodDeclaration{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)},
	}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.peekTokenIs(token.RPAREN) {
		for {
			if !p.expectPeek(token.IDENT_LOWER) {
				return nil
			}
			md.Params = append(md.Params, &ast.Identifier{
				Token: p.curToken,
				Value: p.curToken.Literal.(string),
			})
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	md.Body = p.parseBlockStatement()
	if md.Body == nil {
		return nil
	}
	return md
}
