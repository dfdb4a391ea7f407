package runtime

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/gahag/hush/program"
	"github.com/gahag/hush/source"
)

type flow int

const (
	flowNormal flow = iota
	flowBreak
	flowReturn
)

// execBlock runs stmts in order. The block's value is the value of its last statement.
func (r *Runtime) execBlock(stmts program.Block, f *frame) (Value, flow, error) {
	result := NewNil()
	for _, stmt := range stmts {
		value, fl, err := r.exec(stmt, f)
		if err != nil {
			return Value{}, flowNormal, err
		}
		if fl != flowNormal {
			return value, fl, nil
		}
		result = value
	}
	return result, flowNormal, nil
}

func (r *Runtime) exec(stmt program.Stmt, f *frame) (Value, flow, error) {
	switch s := stmt.(type) {
	case *program.Let:
		value, err := r.evalOptional(s.Value, f)
		if err != nil {
			return Value{}, flowNormal, err
		}
		f.slots[s.Index] = value
		return NewNil(), flowNormal, nil

	case *program.AssignVar:
		value, err := r.eval(s.Value, f)
		if err != nil {
			return Value{}, flowNormal, err
		}
		*f.slot(s.Slot) = value
		return NewNil(), flowNormal, nil

	case *program.AssignIndex:
		object, err := r.eval(s.Object, f)
		if err != nil {
			return Value{}, flowNormal, err
		}
		index, err := r.eval(s.Index, f)
		if err != nil {
			return Value{}, flowNormal, err
		}
		value, err := r.eval(s.Value, f)
		if err != nil {
			return Value{}, flowNormal, err
		}
		return NewNil(), flowNormal, r.setIndex(object, index, value, s.At)

	case *program.ExprStmt:
		value, err := r.eval(s.Expr, f)
		return value, flowNormal, err

	case *program.If:
		cond, err := r.condition(s.Condition, f)
		if err != nil {
			return Value{}, flowNormal, err
		}
		if cond {
			return r.execBlock(s.Then, f)
		}
		return r.execBlock(s.Else, f)

	case *program.While:
		for {
			cond, err := r.condition(s.Condition, f)
			if err != nil {
				return Value{}, flowNormal, err
			}
			if !cond {
				return NewNil(), flowNormal, nil
			}
			value, fl, err := r.execBlock(s.Body, f)
			if err != nil || fl == flowReturn {
				return value, fl, err
			}
			if fl == flowBreak {
				return NewNil(), flowNormal, nil
			}
		}

	case *program.For:
		return r.execFor(s, f)

	case *program.Return:
		value, err := r.evalOptional(s.Value, f)
		if err != nil {
			return Value{}, flowNormal, err
		}
		return value, flowReturn, nil

	case *program.Break:
		return NewNil(), flowBreak, nil

	default:
		return Value{}, flowNormal, newPanic(PanicInvalidOperand, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

func (r *Runtime) condition(expr program.Expr, f *frame) (bool, error) {
	value, err := r.eval(expr, f)
	if err != nil {
		return false, err
	}
	if value.Kind() != KindBool {
		return false, newPanic(PanicTypeError, expr.Pos(), "condition must be bool, got %s", value.Kind())
	}
	return value.Bool(), nil
}

func (r *Runtime) evalOptional(expr program.Expr, f *frame) (Value, error) {
	if expr == nil {
		return NewNil(), nil
	}
	return r.eval(expr, f)
}

func (r *Runtime) evalAll(exprs []program.Expr, f *frame) ([]Value, error) {
	values := make([]Value, len(exprs))
	for i, expr := range exprs {
		value, err := r.eval(expr, f)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

func (r *Runtime) eval(expr program.Expr, f *frame) (Value, error) {
	switch e := expr.(type) {
	case *program.NilLit:
		return NewNil(), nil
	case *program.BoolLit:
		return NewBool(e.Value), nil
	case *program.IntLit:
		return NewInt(e.Value), nil
	case *program.FloatLit:
		return NewFloat(Float(e.Value)), nil
	case *program.ByteLit:
		return NewByte(e.Value), nil
	case *program.StringLit:
		return NewString(e.Value), nil

	case *program.Var:
		return *f.slot(e.Slot), nil

	case *program.Self:
		return f.self, nil

	case *program.ArrayLit:
		elems, err := r.evalAll(e.Elements, f)
		if err != nil {
			return Value{}, err
		}
		return NewArray(ArrayOf(elems...)), nil

	case *program.DictLit:
		d := DictOf()
		for _, entry := range e.Entries {
			value, err := r.eval(entry.Value, f)
			if err != nil {
				return Value{}, err
			}
			d.SetString(entry.Key, value)
		}
		return NewDict(d), nil

	case *program.FunctionLit:
		return NewFunction(&Closure{id: nextFunctionID(), fn: e.Func, env: f, in: r.in}), nil

	case *program.Unary:
		operand, err := r.eval(e.Operand, f)
		if err != nil {
			return Value{}, err
		}
		return unaryOp(e.Op, operand, e.At)

	case *program.Binary:
		return r.evalBinary(e, f)

	case *program.Call:
		callee, err := r.eval(e.Callee, f)
		if err != nil {
			return Value{}, err
		}
		args, err := r.evalAll(e.Args, f)
		if err != nil {
			return Value{}, err
		}
		return r.call(callee, NewNil(), args, e.At)

	case *program.MethodCall:
		object, err := r.eval(e.Object, f)
		if err != nil {
			return Value{}, err
		}
		method, err := r.index(object, NewString(e.Field), e.At)
		if err != nil {
			return Value{}, err
		}
		args, err := r.evalAll(e.Args, f)
		if err != nil {
			return Value{}, err
		}
		return r.call(method, object, args, e.At)

	case *program.Index:
		object, err := r.eval(e.Object, f)
		if err != nil {
			return Value{}, err
		}
		index, err := r.eval(e.Index, f)
		if err != nil {
			return Value{}, err
		}
		return r.index(object, index, e.At)

	default:
		return Value{}, newPanic(PanicInvalidOperand, expr.Pos(), "unsupported expression %T", expr)
	}
}

// Call invokes fn from Go code, for natives that take callbacks.
func (r *Runtime) Call(fn Value, args []Value, pos source.Pos) (Value, error) {
	return r.call(fn, NewNil(), args, pos)
}

func (r *Runtime) call(callee, self Value, args []Value, pos source.Pos) (Value, error) {
	if callee.Kind() != KindFunction {
		return Value{}, newPanic(PanicInvalidCall, pos, "attempt to call a %s value", callee.Kind())
	}

	if r.depth >= r.config.RecursionLimit {
		return Value{}, newPanic(PanicStackOverflow, pos, "recursion depth exceeded (limit %d)", r.config.RecursionLimit)
	}
	r.depth++
	defer func() { r.depth-- }()

	ctx := &CallContext{Runtime: r, Args: args, Self: self, Pos: pos, Interner: r.in}
	value, err := callee.Function().Call(ctx)
	if err != nil {
		return Value{}, asPanic(err, pos)
	}
	return value, nil
}

// asPanic keeps panics raised deeper down and wraps host failures at pos.
func asPanic(err error, pos source.Pos) *Panic {
	var p *Panic
	switch {
	case errors.As(err, &p):
		return p
	case isIOError(err):
		return IoPanic(err, pos)
	default:
		return HostPanic(err, pos)
	}
}

func isIOError(err error) bool {
	var pathErr *fs.PathError
	var errno syscall.Errno
	return errors.As(err, &pathErr) ||
		errors.As(err, &errno) ||
		errors.Is(err, io.ErrShortWrite) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, os.ErrClosed)
}

func (r *Runtime) callClosure(c *Closure, ctx *CallContext) (Value, error) {
	if len(ctx.Args) != c.fn.Params {
		return Value{}, newPanic(PanicInvalidCall, ctx.Pos, "%s expects %d arguments, got %d", describeClosure(c), c.fn.Params, len(ctx.Args))
	}

	f := &frame{slots: make([]Value, c.fn.FrameSize), parent: c.env, self: ctx.Self}
	copy(f.slots, ctx.Args)

	value, _, err := r.execBlock(c.fn.Body, f)
	if err != nil {
		return Value{}, err
	}
	return value, nil
}

func describeClosure(c *Closure) string {
	if name := c.Name(); name != "" {
		return "function " + name
	}
	return "function"
}
