package runtime

import (
	"fmt"

	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
)

type PanicKind int

const (
	PanicIo PanicKind = iota
	PanicStackOverflow
	PanicIndexOutOfBounds
	PanicTypeError
	PanicInvalidOperand
	PanicDivisionByZero
	PanicIntegerOverflow
	PanicInvalidCall
	PanicAssertionFailed
	PanicUser
	PanicHost
)

func (k PanicKind) String() string {
	switch k {
	case PanicIo:
		return "io error"
	case PanicStackOverflow:
		return "stack overflow"
	case PanicIndexOutOfBounds:
		return "index out of bounds"
	case PanicTypeError:
		return "type error"
	case PanicInvalidOperand:
		return "invalid operand"
	case PanicDivisionByZero:
		return "division by zero"
	case PanicIntegerOverflow:
		return "integer overflow"
	case PanicInvalidCall:
		return "invalid call"
	case PanicAssertionFailed:
		return "assertion failed"
	case PanicUser:
		return "panic"
	case PanicHost:
		return "host error"
	default:
		return fmt.Sprintf("panic(%d)", int(k))
	}
}

// Panic is an unrecoverable runtime fault. It is never a Value: it aborts evaluation
// and surfaces as the error returned by Eval.
type Panic struct {
	Kind    PanicKind
	Pos     source.Pos
	Message string
	// Value is the payload of a user panic.
	Value Value
	// Err is the host error behind the panic, if any.
	Err error
}

func newPanic(kind PanicKind, pos source.Pos, format string, args ...any) *Panic {
	return &Panic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// IoPanic wraps an I/O failure at pos.
func IoPanic(err error, pos source.Pos) *Panic {
	return &Panic{Kind: PanicIo, Pos: pos, Message: err.Error(), Err: err}
}

// HostPanic wraps an error a native returned that is neither a Panic nor an I/O failure.
func HostPanic(err error, pos source.Pos) *Panic {
	return &Panic{Kind: PanicHost, Pos: pos, Message: err.Error(), Err: err}
}

func (p *Panic) Error() string {
	return fmt.Sprintf("panic at %s: %s", p.Pos, p.describe())
}

func (p *Panic) Unwrap() error { return p.Err }

// Show renders the panic with its path resolved.
func (p *Panic) Show(in *symbol.Interner) string {
	return fmt.Sprintf("panic in %s: %s", p.Pos.Show(in), p.describe())
}

func (p *Panic) describe() string {
	if p.Message == "" {
		return p.Kind.String()
	}
	return p.Kind.String() + ": " + p.Message
}
