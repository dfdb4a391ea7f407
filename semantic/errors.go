package semantic

import (
	"fmt"

	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
)

type ErrorKind int

const (
	UndeclaredVariable ErrorKind = iota
	DuplicateDeclaration
	ReturnOutsideFunction
	BreakOutsideLoop
	SelfOutsideFunction
)

func (k ErrorKind) String() string {
	switch k {
	case UndeclaredVariable:
		return "undeclared variable"
	case DuplicateDeclaration:
		return "duplicate declaration"
	case ReturnOutsideFunction:
		return "return outside function"
	case BreakOutsideLoop:
		return "break outside loop"
	case SelfOutsideFunction:
		return "self outside function"
	default:
		return "semantic error"
	}
}

// Error is a static error. Name is set for the variable related kinds.
type Error struct {
	Kind ErrorKind
	Name symbol.Symbol
	Pos  source.Pos
}

func (e *Error) Error() string {
	if e.Name != symbol.Invalid {
		return fmt.Sprintf("semantic error at %s: %s (symbol %d)", e.Pos, e.Kind, e.Name)
	}
	return fmt.Sprintf("semantic error at %s: %s", e.Pos, e.Kind)
}

// Show renders the error with names resolved.
func (e *Error) Show(in *symbol.Interner) string {
	msg := e.Kind.String()
	if e.Name != symbol.Invalid {
		msg = fmt.Sprintf("%s '%s'", msg, in.Name(e.Name))
	}
	return fmt.Sprintf("semantic error in %s: %s", e.Pos.Show(in), msg)
}
