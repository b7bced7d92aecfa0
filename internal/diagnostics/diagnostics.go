package diagnostics

import (
	"fmt"

	"github.com/tetherlang/tether/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // unterminated string

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // malformed typecase clause
	ErrP003 ErrorCode = "P003" // malformed declaration

	// Expansion
	ErrE001 ErrorCode = "E001" // message name not in registry
	ErrE002 ErrorCode = "E002" // type designator does not resolve to a concrete type
	ErrE003 ErrorCode = "E003" // malformed accessor invocation
	ErrE004 ErrorCode = "E004" // duplicate shorthand message declaration (warning)
	ErrE005 ErrorCode = "E005" // shorthand declaration after explicit interface group
	ErrE006 ErrorCode = "E006" // invalid field declaration

	// Configuration
	ErrC001 ErrorCode = "C001" // invalid project configuration
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// DiagnosticError is a positioned compile-time diagnostic.
type DiagnosticError struct {
	Code     ErrorCode
	Token    token.Token
	Message  string
	File     string
	Severity Severity
}

func (e *DiagnosticError) Error() string {
	prefix := ""
	if e.File != "" {
		prefix = e.File + ":"
	}
	label := "error"
	if e.Severity == SeverityWarning {
		label = "warning"
	}
	return fmt.Sprintf("%s%d:%d: %s[%s]: %s", prefix, e.Token.Line, e.Token.Column, label, e.Code, e.Message)
}

// NewError creates an error-severity diagnostic at the given token.
func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: msg, Severity: SeverityError}
}

// NewWarning creates a warning-severity diagnostic at the given token.
func NewWarning(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: msg, Severity: SeverityWarning}
}

// HasErrors reports whether any diagnostic in the list is error-severity.
func HasErrors(diags []*DiagnosticError) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
