package syntax

import "github.com/gahag/hush/source"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenInt    TokenType = "INT"
	tokenFloat  TokenType = "FLOAT"
	tokenString TokenType = "STRING"
	tokenByte   TokenType = "BYTE"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenPercent  TokenType = "%"
	tokenConcat   TokenType = "++"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"
	tokenLTE      TokenType = "<="
	tokenGTE      TokenType = ">="
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="

	tokenComma    TokenType = ","
	tokenColon    TokenType = ":"
	tokenDot      TokenType = "."
	tokenLParen   TokenType = "("
	tokenRParen   TokenType = ")"
	tokenLBracket TokenType = "["
	tokenRBracket TokenType = "]"
	tokenDictOpen TokenType = "@["

	tokenLet      TokenType = "LET"
	tokenFunction TokenType = "FUNCTION"
	tokenIf       TokenType = "IF"
	tokenThen     TokenType = "THEN"
	tokenElseIf   TokenType = "ELSEIF"
	tokenElse     TokenType = "ELSE"
	tokenEnd      TokenType = "END"
	tokenWhile    TokenType = "WHILE"
	tokenFor      TokenType = "FOR"
	tokenIn       TokenType = "IN"
	tokenDo       TokenType = "DO"
	tokenReturn   TokenType = "RETURN"
	tokenBreak    TokenType = "BREAK"
	tokenSelf     TokenType = "SELF"
	tokenNil      TokenType = "NIL"
	tokenTrue     TokenType = "TRUE"
	tokenFalse    TokenType = "FALSE"
	tokenAnd      TokenType = "AND"
	tokenOr       TokenType = "OR"
	tokenNot      TokenType = "NOT"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     source.Pos
}

var keywords = map[string]TokenType{
	"let":      tokenLet,
	"function": tokenFunction,
	"if":       tokenIf,
	"then":     tokenThen,
	"elseif":   tokenElseIf,
	"else":     tokenElse,
	"end":      tokenEnd,
	"while":    tokenWhile,
	"for":      tokenFor,
	"in":       tokenIn,
	"do":       tokenDo,
	"return":   tokenReturn,
	"break":    tokenBreak,
	"self":     tokenSelf,
	"nil":      tokenNil,
	"true":     tokenTrue,
	"false":    tokenFalse,
	"and":      tokenAnd,
	"or":       tokenOr,
	"not":      tokenNot,
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}
