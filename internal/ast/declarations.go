package ast

import (
	"github.com/tetherlang/tether/internal/token"
)

// ComponentMember is either a shorthand message declaration or an
// explicit interface group, in source order. The Definition Compiler
// checks that all shorthand members precede all groups.
type ComponentMember interface {
	Node
	componentMemberNode()
	GetToken() token.Token
}

// FieldDeclaration is a single serialized field of a component.
// Fields are individually mutable in the emitted definition because the
// host engine's serialization machinery writes them directly after
// construction.
type FieldDeclaration struct {
	Token token.Token
	Name  *Identifier
}

func (fd *FieldDeclaration) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FieldDeclaration) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// MessageDeclaration is the shorthand surface form: a bare lifecycle
// message name plus body. The interface and parameter list are derived
// from the message registry at expansion time.
type MessageDeclaration struct {
	Token token.Token // The message name token
	Name  *Identifier
	Body  *BlockStatement
}

func (md *MessageDeclaration) componentMemberNode() {}
func (md *MessageDeclaration) TokenLiteral() string { return md.Token.Lexeme }
func (md *MessageDeclaration) GetToken() token.Token {
	if md == nil {
		return token.Token{}
	}
	return md.Token
}

// MethodDeclaration is one method inside an explicit interface group.
type MethodDeclaration struct {
	Token  token.Token // The method name token
	Name   *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

func (md *MethodDeclaration) TokenLiteral() string { return md.Token.Lexeme }
func (md *MethodDeclaration) GetToken() token.Token {
	if md == nil {
		return token.Token{}
	}
	return md.Token
}

// InterfaceGroup is the explicit surface form: an interface name plus
// one or more method declarations tagged with that interface.
type InterfaceGroup struct {
	Token     token.Token // The 'interface' token
	Interface *Identifier
	Methods   []*MethodDeclaration
}

func (ig *InterfaceGroup) componentMemberNode() {}
func (ig *InterfaceGroup) TokenLiteral() string { return ig.Token.Lexeme }
func (ig *InterfaceGroup) GetToken() token.Token {
	if ig == nil {
		return token.Token{}
	}
	return ig.Token
}

// ComponentDeclaration is a full component definition:
//
//	component Player (health, speed) {
//	    ready { ... }
//	    interface Collidable {
//	        onHit(other) { ... }
//	    }
//	}
type ComponentDeclaration struct {
	Token   token.Token // The 'component' token
	Name    *Identifier
	Fields  []*FieldDeclaration
	Members []ComponentMember // Source order preserved
}

func (cd *ComponentDeclaration) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ComponentDeclaration) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}
