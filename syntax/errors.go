package syntax

import (
	"fmt"
	"strings"

	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
)

// Error is a syntax error. Syntax errors never abort parsing.
type Error struct {
	Pos     source.Pos
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

// Show renders the error with its path resolved.
func (e *Error) Show(in *symbol.Interner) string {
	return fmt.Sprintf("syntax error in %s: %s", e.Pos.Show(in), e.Message)
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok.Type)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addError(tok.Pos, fmt.Sprintf("unexpected %s", tokenLabel(tok.Type)))
}

// addError records a syntax error. Errors cascading from one already reported at the
// same position are dropped.
func (p *parser) addError(pos source.Pos, msg string) {
	if n := len(p.errors); n > 0 && p.errors[n-1].Pos == pos {
		return
	}
	p.errors = append(p.errors, &Error{Pos: pos, Message: msg})
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenInt:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenString:
		return "string"
	case tokenByte:
		return "byte"
	default:
		for word, kw := range keywords {
			if kw == tt {
				return "'" + word + "'"
			}
		}
		return fmt.Sprintf("%q", strings.ToLower(string(tt)))
	}
}
