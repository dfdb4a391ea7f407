package runtime

import (
	"fmt"
	"sync/atomic"

	"github.com/gahag/hush/program"
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
)

// Function is a callable value, either a script closure or a Go native. Functions
// compare by identity; the identity order is creation order.
//
// A returned error aborts evaluation: *Panic values propagate as is, anything else
// becomes a Panic at the call position. Recoverable failures are returned as Error
// values instead.
type Function interface {
	Call(ctx *CallContext) (Value, error)
	Name() string

	functionID() uint64
}

var functionIDs atomic.Uint64

func nextFunctionID() uint64 {
	return functionIDs.Add(1)
}

// CallContext is the per call state handed to a function. It must not be retained
// after the call returns.
type CallContext struct {
	Runtime  *Runtime
	Args     []Value
	Self     Value
	Pos      source.Pos
	Interner *symbol.Interner
}

// Arg returns argument i, or Nil when absent.
func (ctx *CallContext) Arg(i int) Value {
	if i < 0 || i >= len(ctx.Args) {
		return Value{}
	}
	return ctx.Args[i]
}

// NativeFunc is the Go implementation behind a Native.
type NativeFunc func(ctx *CallContext) (Value, error)

type Native struct {
	id   uint64
	name string
	fn   NativeFunc
}

func NewNative(name string, fn NativeFunc) *Native {
	return &Native{id: nextFunctionID(), name: name, fn: fn}
}

func (n *Native) Call(ctx *CallContext) (Value, error) { return n.fn(ctx) }
func (n *Native) Name() string                         { return n.name }
func (n *Native) functionID() uint64                   { return n.id }

// Closure is a script function together with the frame it was created in.
type Closure struct {
	id  uint64
	fn  *program.Function
	env *frame
	in  *symbol.Interner
}

func (c *Closure) Call(ctx *CallContext) (Value, error) {
	return ctx.Runtime.callClosure(c, ctx)
}

func (c *Closure) Name() string {
	if c.fn.Name == symbol.Invalid {
		return ""
	}
	return c.in.Name(c.fn.Name)
}

func (c *Closure) functionID() uint64 { return c.id }

// Arity reports an InvalidArgument error value unless ctx has between lo and hi
// arguments. A negative hi means no upper bound.
func Arity(ctx *CallContext, name string, lo, hi int) (Value, bool) {
	n := len(ctx.Args)
	if n >= lo && (hi < 0 || n <= hi) {
		return Value{}, true
	}
	var want string
	switch {
	case lo == hi:
		want = fmt.Sprintf("%d", lo)
	case hi < 0:
		want = fmt.Sprintf("at least %d", lo)
	default:
		want = fmt.Sprintf("%d to %d", lo, hi)
	}
	return invalidArgument(name, "expected %s arguments, got %d", want, n), false
}

// ExpectKind reports an InvalidArgument error value unless argument i has kind k.
func ExpectKind(ctx *CallContext, name string, i int, k Kind) (Value, bool) {
	if got := ctx.Arg(i).Kind(); got != k {
		return invalidArgument(name, "argument %d must be %s, got %s", i+1, k, got), false
	}
	return Value{}, true
}

func invalidArgument(name, format string, args ...any) Value {
	return NewError(ErrorFrom(&InvalidArgument{Function: name, Message: fmt.Sprintf(format, args...)}))
}
