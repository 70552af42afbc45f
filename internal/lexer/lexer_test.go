package lexer

import (
	"testing"

	"github.com/arclang/arcvm/internal/token"
)

func TestLexerBasicTokens(t *testing.T) {
	input := `
func add(a, b) {
  c = a + b
  if (c >= 10 && a != b) {
    return c
  }
}
`

	tests := []token.Token{
		{Kind: token.Func, Literal: "func"},
		{Kind: token.Ident, Literal: "add"},
		{Kind: token.LParen, Literal: "("},
		{Kind: token.Ident, Literal: "a"},
		{Kind: token.Comma, Literal: ","},
		{Kind: token.Ident, Literal: "b"},
		{Kind: token.RParen, Literal: ")"},
		{Kind: token.LBrace, Literal: "{"},
		{Kind: token.Ident, Literal: "c"},
		{Kind: token.Assign, Literal: "="},
		{Kind: token.Ident, Literal: "a"},
		{Kind: token.Plus, Literal: "+"},
		{Kind: token.Ident, Literal: "b"},
		{Kind: token.If, Literal: "if"},
		{Kind: token.LParen, Literal: "("},
		{Kind: token.Ident, Literal: "c"},
		{Kind: token.GreaterEqual, Literal: ">="},
		{Kind: token.Number, Literal: "10"},
		{Kind: token.AndAnd, Literal: "&&"},
		{Kind: token.Ident, Literal: "a"},
		{Kind: token.NotEqual, Literal: "!="},
		{Kind: token.Ident, Literal: "b"},
		{Kind: token.RParen, Literal: ")"},
		{Kind: token.LBrace, Literal: "{"},
		{Kind: token.Return, Literal: "return"},
		{Kind: token.Ident, Literal: "c"},
		{Kind: token.RBrace, Literal: "}"},
		{Kind: token.RBrace, Literal: "}"},
		{Kind: token.EOF},
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Kind != expected.Kind || tok.Literal != expected.Literal {
			t.Fatalf("token %d: expected %v %q, got %v %q", i, expected.Kind, expected.Literal, tok.Kind, tok.Literal)
		}
	}
}

func TestLexerNewlinesAreWhitespace(t *testing.T) {
	// A statement split across lines inside parens, and two statements
	// on separate lines, should lex identically to collapsing all the
	// whitespace: newlines carry no significance in this grammar.
	input := `a = (
  1 +
  2)
b = call(b, 2)
`

	expected := []token.Kind{
		token.Ident, token.Assign, token.LParen, token.Number, token.Plus, token.Number, token.RParen,
		token.Ident, token.Assign, token.Ident, token.LParen, token.Ident, token.Comma, token.Number, token.RParen,
		token.EOF,
	}

	l := New(input)
	for i, kind := range expected {
		tok := l.NextToken()
		if tok.Kind != kind {
			t.Fatalf("token %d: expected %v, got %v (%q)", i, kind, tok.Kind, tok.Literal)
		}
	}
}

func TestLexerComments(t *testing.T) {
	input := `// line comment
a = 1
/* block
comment */
b = 2`

	expected := []token.Kind{
		token.Ident, token.Assign, token.Number,
		token.Ident, token.Assign, token.Number, token.EOF,
	}

	l := New(input)
	for i, kind := range expected {
		tok := l.NextToken()
		if tok.Kind != kind {
			t.Fatalf("token %d: expected %v, got %v (%q)", i, kind, tok.Kind, tok.Literal)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	l := New(`"line\nbreak"`)
	tok := l.NextToken()
	if tok.Kind != token.String || tok.Literal != "line\nbreak" {
		t.Fatalf("unexpected string token: %+v", tok)
	}
}
