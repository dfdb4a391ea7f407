package syntax

import (
	"testing"

	"github.com/gahag/hush/symbol"
)

func lexAll(input string) []Token {
	l := newLexer(input, symbol.Invalid)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == tokenEOF {
			return toks
		}
	}
}

func TestLexerTokenTypes(t *testing.T) {
	input := `let x = @[ a: 1, b: 2.5 ] # trailing comment
x.a ++ "s\n" != 'c' and not nil <= >= == % elseif`
	want := []TokenType{
		tokenLet, tokenIdent, tokenAssign, tokenDictOpen, tokenIdent, tokenColon, tokenInt,
		tokenComma, tokenIdent, tokenColon, tokenFloat, tokenRBracket,
		tokenIdent, tokenDot, tokenIdent, tokenConcat, tokenString, tokenNotEQ, tokenByte,
		tokenAnd, tokenNot, tokenNil, tokenLTE, tokenGTE, tokenEQ, tokenPercent, tokenElseIf,
		tokenEOF,
	}
	toks := lexAll(input)
	if len(toks) != len(want) {
		t.Fatalf("token count mismatch: got %d want %d (%v)", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Fatalf("token %d: got %s want %s", i, toks[i].Type, tt)
		}
	}
	if toks[16].Literal != "s\n" {
		t.Fatalf("string escape not decoded: %q", toks[16].Literal)
	}
	if toks[18].Literal != "c" {
		t.Fatalf("byte literal mismatch: %q", toks[18].Literal)
	}
}

func TestLexerPositions(t *testing.T) {
	toks := lexAll("let x\n  y")
	cases := []struct {
		line, column int
	}{
		{1, 1},
		{1, 5},
		{2, 3},
	}
	for i, c := range cases {
		if toks[i].Pos.Line != c.line || toks[i].Pos.Column != c.column {
			t.Fatalf("token %d (%s): got %d:%d want %d:%d", i, toks[i].Literal, toks[i].Pos.Line, toks[i].Pos.Column, c.line, c.column)
		}
	}
}

func TestLexerIllegalInput(t *testing.T) {
	cases := map[string]string{
		`"open`:    "unterminated string literal",
		`"bad \q"`: "invalid escape sequence \\q",
		`''`:       "empty byte literal",
		`'ab'`:     "unterminated byte literal",
		`$`:        "unexpected character '$'",
		`@x`:       "expected '[' after '@'",
	}
	for input, want := range cases {
		toks := lexAll(input)
		if toks[0].Type != tokenIllegal {
			t.Fatalf("%q: expected illegal token, got %s", input, toks[0].Type)
		}
		if toks[0].Literal != want {
			t.Fatalf("%q: got message %q want %q", input, toks[0].Literal, want)
		}
	}
}

func TestLexerEmptyInput(t *testing.T) {
	toks := lexAll("")
	if len(toks) != 1 || toks[0].Type != tokenEOF {
		t.Fatalf("expected lone EOF, got %v", toks)
	}
}

func TestLexerStringKeepsRawBytes(t *testing.T) {
	toks := lexAll("\"a\xffé\\n\"")
	if toks[0].Type != tokenString {
		t.Fatalf("expected string, got %s", toks[0].Type)
	}
	if toks[0].Literal != "a\xffé\n" {
		t.Fatalf("string bytes changed: %q", toks[0].Literal)
	}
}
