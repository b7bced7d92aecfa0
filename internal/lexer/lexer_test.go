package lexer

import (
	"testing"

	"github.com/tetherlang/tether/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `component Player (health, speed) {
    ready {
        let c = fetch(self, Collider)
    }
    # comment line
    interface Collidable {
        onHit(other) -> { push(other.body, 0.5) }
    }
}`

	tests := []struct {
		wantType    token.TokenType
		wantLexeme  string
	}{
		{token.COMPONENT, "component"},
		{token.IDENT_UPPER, "Player"},
		{token.LPAREN, "("},
		{token.IDENT_LOWER, "health"},
		{token.COMMA, ","},
		{token.IDENT_LOWER, "speed"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.NEWLINE, "\n"},
		{token.IDENT_LOWER, "ready"},
		{token.LBRACE, "{"},
		{token.NEWLINE, "\n"},
		{token.LET, "let"},
		{token.IDENT_LOWER, "c"},
		{token.ASSIGN, "="},
		{token.IDENT_LOWER, "fetch"},
		{token.LPAREN, "("},
		{token.IDENT_LOWER, "self"},
		{token.COMMA, ","},
		{token.IDENT_UPPER, "Collider"},
		{token.RPAREN, ")"},
		{token.NEWLINE, "\n"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.NEWLINE, "\n"},
		{token.INTERFACE, "interface"},
		{token.IDENT_UPPER, "Collidable"},
		{token.LBRACE, "{"},
		{token.NEWLINE, "\n"},
		{token.IDENT_LOWER, "onHit"},
		{token.LPAREN, "("},
		{token.IDENT_LOWER, "other"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.LBRACE, "{"},
		{token.IDENT_LOWER, "push"},
		{token.LPAREN, "("},
		{token.IDENT_LOWER, "other"},
		{token.DOT, "."},
		{token.IDENT_LOWER, "body"},
		{token.COMMA, ","},
		{token.FLOAT, "0.5"},
		{token.RPAREN, ")"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("tests[%d]: type = %q (%q), want %q", i, tok.Type, tok.Lexeme, tt.wantType)
		}
		if tok.Lexeme != tt.wantLexeme {
			t.Fatalf("tests[%d]: lexeme = %q, want %q", i, tok.Lexeme, tt.wantLexeme)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\"c"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("type = %q, want STRING", tok.Type)
	}
	if got := tok.Literal.(string); got != "a\nb\"c" {
		t.Errorf("literal = %q", got)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("type = %q, want ILLEGAL", tok.Type)
	}
}

func TestNumberLiterals(t *testing.T) {
	l := New("42 0.25 7.name")
	tok := l.NextToken()
	if tok.Type != token.INT || tok.Literal.(int64) != 42 {
		t.Fatalf("int token = %+v", tok)
	}
	tok = l.NextToken()
	if tok.Type != token.FLOAT || tok.Literal.(float64) != 0.25 {
		t.Fatalf("float token = %+v", tok)
	}
	// 7.name must lex as INT DOT IDENT, not a float.
	tok = l.NextToken()
	if tok.Type != token.INT || tok.Literal.(int64) != 7 {
		t.Fatalf("int token = %+v", tok)
	}
	if tok = l.NextToken(); tok.Type != token.DOT {
		t.Fatalf("dot token = %+v", tok)
	}
	if tok = l.NextToken(); tok.Type != token.IDENT_LOWER || tok.Lexeme != "name" {
		t.Fatalf("ident token = %+v", tok)
	}
}
