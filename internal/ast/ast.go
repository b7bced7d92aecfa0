package ast

import (
	"github.com/tetherlang/tether/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Components []*ComponentDeclaration
}

func (p *Program) TokenLiteral() string {
	if len(p.Components) > 0 {
		return p.Components[0].TokenLiteral()
	}
	return ""
}

// TypeRef is a type designator, e.g. Collider. It names a class that
// must resolve in the type registry at expansion time.
type TypeRef struct {
	Token token.Token // The IDENT_UPPER token
	Name  string
}

func (tr *TypeRef) TokenLiteral() string { return tr.Token.Lexeme }
func (tr *TypeRef) GetToken() token.Token {
	if tr == nil {
		return token.Token{}
	}
	return tr.Token
}

// BlockStatement represents a list of statements within curly braces.
type BlockStatement struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// LetStatement represents a local binding, optionally annotated.
// let c = fetch(self, Collider)
// let c: Collider = ...
type LetStatement struct {
	Token          token.Token // The 'let' token
	Name           *Identifier
	TypeAnnotation *TypeRef // Optional
	Value          Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token {
	if ls == nil {
		return token.Token{}
	}
	return ls.Token
}

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}
