package token

type TokenType string

// Token is a single lexical unit with its source position.
// Literal holds the decoded value (string for identifiers and strings,
// int64/float64 for numbers); Lexeme is the raw source text.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	// Identifiers and literals
	IDENT_LOWER = "IDENT_LOWER" // bindings, message names: health, onHit
	IDENT_UPPER = "IDENT_UPPER" // type designators: Collider, Entity
	INT         = "INT"
	FLOAT       = "FLOAT"
	STRING      = "STRING"

	// Delimiters and operators
	ASSIGN = "="
	COLON  = ":"
	COMMA  = ","
	DOT    = "."
	ARROW  = "->"

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"

	// Keywords
	COMPONENT = "COMPONENT"
	INTERFACE = "INTERFACE"
	TYPECASE  = "TYPECASE"
	ELSE      = "ELSE"
	LET       = "LET"
)

var keywords = map[string]TokenType{
	"component": COMPONENT,
	"interface": INTERFACE,
	"typecase":  TYPECASE,
	"else":      ELSE,
	"let":       LET,
}

// LookupIdent returns the keyword type for an identifier, or the
// identifier type matching its capitalization.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if len(ident) > 0 && ident[0] >= 'A' && ident[0] <= 'Z' {
		return IDENT_UPPER
	}
	return IDENT_LOWER
}
