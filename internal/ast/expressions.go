package ast

import (
	"github.com/tetherlang/tether/internal/token"
)

// Identifier represents a name reference, e.g. health or self.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IntegerLiteral represents an integer literal, e.g. 42.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// FloatLiteral represents a floating point literal, e.g. 0.5.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// StringLiteral represents a string literal, e.g. "player".
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// CallExpression represents a call, e.g. fetch(self, Collider).
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// MemberExpression represents dot access, e.g. obj.field.
type MemberExpression struct {
	Token  token.Token // The '.' token
	Left   Expression
	Member *Identifier
}

func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }

// TypeDesignatorExpression is a type used in expression position, e.g.
// the second argument of fetch(self, Collider).
type TypeDesignatorExpression struct {
	Token token.Token // The IDENT_UPPER token
	Ref   *TypeRef
}

func (td *TypeDesignatorExpression) expressionNode()       {}
func (td *TypeDesignatorExpression) TokenLiteral() string  { return td.Token.Lexeme }
func (td *TypeDesignatorExpression) GetToken() token.Token { return td.Token }

// AnnotatedExpression represents an expression with an explicit type
// annotation, e.g. x: Collider. The annotation always wins during type
// resolution.
type AnnotatedExpression struct {
	Token          token.Token // The COLON token
	Expression     Expression
	TypeAnnotation *TypeRef
}

func (ae *AnnotatedExpression) expressionNode()       {}
func (ae *AnnotatedExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AnnotatedExpression) GetToken() token.Token { return ae.Token }

// TypecaseClause is a single (type, branch) pair within a typecase.
// The binder receives the scrutinee re-bound at the clause type.
type TypecaseClause struct {
	Token  token.Token // The clause's type designator token
	Type   *TypeRef
	Binder *Identifier
	Body   *BlockStatement
}

func (tc *TypecaseClause) GetToken() token.Token {
	if tc == nil {
		return token.Token{}
	}
	return tc.Token
}

// TypecaseExpression represents the conditional-cast construct:
//
//	typecase other {
//	    Collider c  -> { handle(c) }
//	    Rigidbody r -> { push(r) }
//	    else        -> { skip() }
//	}
type TypecaseExpression struct {
	Token   token.Token // The 'typecase' token
	Subject Expression
	Clauses []*TypecaseClause
	Default *BlockStatement // Optional
}

func (te *TypecaseExpression) expressionNode()       {}
func (te *TypecaseExpression) TokenLiteral() string  { return te.Token.Lexeme }
func (te *TypecaseExpression) GetToken() token.Token { return te.Token }
