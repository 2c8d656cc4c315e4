package sysasm

import "testing"

func TestNextTokenTuple(t *testing.T) {
	l := New(`(add 2 0 1)`)
	want := []Token{
		{Type: TokenLParen, Literal: "("},
		{Type: TokenSymbol, Literal: "add"},
		{Type: TokenInt, Literal: "2"},
		{Type: TokenInt, Literal: "0"},
		{Type: TokenInt, Literal: "1"},
		{Type: TokenRParen, Literal: ")"},
		{Type: TokenEOF},
	}
	for i, w := range want {
		got := l.NextToken()
		if got.Type != w.Type || got.Literal != w.Literal {
			t.Fatalf("token %d: got {%s %q}, want {%s %q}", i, got.Type, got.Literal, w.Type, w.Literal)
		}
	}
}

func TestNextTokenKeyword(t *testing.T) {
	l := New(`:entry`)
	tok := l.NextToken()
	if tok.Type != TokenKeyword || tok.Literal != "entry" {
		t.Errorf("got {%s %q}, want {KEYWORD entry}", tok.Type, tok.Literal)
	}
}

func TestNextTokenFloat(t *testing.T) {
	l := New(`3.14`)
	tok := l.NextToken()
	if tok.Type != TokenFloat || tok.Literal != "3.14" {
		t.Errorf("got {%s %q}, want {FLOAT 3.14}", tok.Type, tok.Literal)
	}
}

func TestNextTokenNegativeInt(t *testing.T) {
	l := New(`-7`)
	tok := l.NextToken()
	if tok.Type != TokenInt || tok.Literal != "-7" {
		t.Errorf("got {%s %q}, want {INT -7}", tok.Type, tok.Literal)
	}
}

func TestNextTokenString(t *testing.T) {
	l := New(`"hello\nworld"`)
	tok := l.NextToken()
	if tok.Type != TokenString || tok.Literal != "hello\nworld" {
		t.Errorf("got {%s %q}, want {STRING %q}", tok.Type, tok.Literal, "hello\nworld")
	}
}

func TestNextTokenSkipsLineComments(t *testing.T) {
	l := New("; a comment\n(add 0 1 2) ; trailing\n")
	tok := l.NextToken()
	if tok.Type != TokenLParen {
		t.Fatalf("expected '(' after comment, got %s", tok.Type)
	}
}

func TestNextTokenLineAndColumn(t *testing.T) {
	l := New("(add\n  1)")
	l.NextToken() // (
	l.NextToken() // add
	tok := l.NextToken()
	if tok.Line != 2 {
		t.Errorf("expected token on line 2, got %d", tok.Line)
	}
}

func TestNextTokenBareSymbolCharacters(t *testing.T) {
	// Anything outside the reserved set ( ) " : ; and whitespace is a
	// valid symbol character, matching the permissive mnemonic/label
	// alphabet sysir.c itself accepts.
	l := New(`'quoted-ish`)
	tok := l.NextToken()
	if tok.Type != TokenSymbol || tok.Literal != "'quoted-ish" {
		t.Errorf("got {%s %q}, want a symbol token", tok.Type, tok.Literal)
	}
}
