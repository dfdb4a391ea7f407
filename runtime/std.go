package runtime

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// newStd builds the std dict bound to r's writers.
func newStd(r *Runtime) *Dict {
	std := DictOf()
	add := func(d *Dict, name string, fn NativeFunc) {
		d.SetString(name, NewFunction(NewNative(name, fn)))
	}

	add(std, "print", func(ctx *CallContext) (Value, error) {
		return writeLine(ctx, r.config.Stdout)
	})
	add(std, "eprint", func(ctx *CallContext) (Value, error) {
		return writeLine(ctx, r.config.Stderr)
	})
	add(std, "len", stdLen)
	add(std, "push", stdPush)
	add(std, "pop", stdPop)
	add(std, "get", stdGet)
	add(std, "contains", stdContains)
	add(std, "keys", stdKeys)
	add(std, "values", stdValues)
	add(std, "remove", stdRemove)
	add(std, "sort", stdSort)
	add(std, "copy", stdCopy)
	add(std, "type", stdType)
	add(std, "to_string", stdToString)
	add(std, "int", stdInt)
	add(std, "float", stdFloat)
	add(std, "error", stdError)
	add(std, "is_error", stdIsError)
	add(std, "assert", stdAssert)
	add(std, "panic", stdPanic)
	add(std, "range", stdRange)
	add(std, "iter", stdIter)

	for _, c := range codecs {
		codec := DictOf()
		add(codec, "encode", c.encodeNative())
		add(codec, "decode", c.decodeNative())
		std.SetString(c.name, NewDict(codec))
	}

	return std
}

// writeLine reports any write failure as an I/O panic, whatever the writer returned.
func writeLine(ctx *CallContext, w io.Writer) (Value, error) {
	parts := make([]string, len(ctx.Args))
	for i, arg := range ctx.Args {
		parts[i] = arg.String()
	}
	if _, err := io.WriteString(w, strings.Join(parts, " ")+"\n"); err != nil {
		return Value{}, IoPanic(err, ctx.Pos)
	}
	return NewNil(), nil
}

func stdLen(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "len", 1, 1); !ok {
		return bad, nil
	}
	switch v := ctx.Arg(0); v.Kind() {
	case KindArray:
		return NewInt(int64(v.Array().Len())), nil
	case KindDict:
		return NewInt(int64(v.Dict().Len())), nil
	case KindString:
		return NewInt(int64(len(v.str()))), nil
	case KindError:
		return NewInt(int64(v.Err().Len())), nil
	default:
		return invalidArgument("len", "cannot take the length of %s", v.Kind()), nil
	}
}

func stdPush(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "push", 2, 2); !ok {
		return bad, nil
	}
	if bad, ok := ExpectKind(ctx, "push", 0, KindArray); !ok {
		return bad, nil
	}
	ctx.Arg(0).Array().Push(ctx.Arg(1))
	return NewNil(), nil
}

func stdPop(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "pop", 1, 1); !ok {
		return bad, nil
	}
	if bad, ok := ExpectKind(ctx, "pop", 0, KindArray); !ok {
		return bad, nil
	}
	value, ok := ctx.Arg(0).Array().Pop()
	if !ok {
		return NewError(ErrorFrom(&EmptyCollection{Operation: "pop"})), nil
	}
	return value, nil
}

// stdGet is the recoverable form of indexing: missing entries are Error values.
func stdGet(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "get", 2, 2); !ok {
		return bad, nil
	}
	coll, key := ctx.Arg(0), ctx.Arg(1)
	var (
		value Value
		found bool
	)
	switch coll.Kind() {
	case KindArray:
		if bad, ok := ExpectKind(ctx, "get", 1, KindInt); !ok {
			return bad, nil
		}
		value, found = coll.Array().Get(key.Int())
	case KindDict:
		value, found = coll.Dict().Get(key)
	default:
		return invalidArgument("get", "cannot index %s", coll.Kind()), nil
	}
	if !found {
		return NewError(ErrorFrom(&IndexOutOfBounds{Index: key})), nil
	}
	return value, nil
}

func stdContains(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "contains", 2, 2); !ok {
		return bad, nil
	}
	coll, item := ctx.Arg(0), ctx.Arg(1)
	switch coll.Kind() {
	case KindArray:
		return NewBool(coll.Array().Contains(item)), nil
	case KindDict:
		return NewBool(coll.Dict().Has(item)), nil
	case KindString:
		switch item.Kind() {
		case KindString:
			return NewBool(strings.Contains(coll.str(), item.str())), nil
		case KindByte:
			return NewBool(strings.IndexByte(coll.str(), item.Byte()) >= 0), nil
		}
		return invalidArgument("contains", "cannot search a string for %s", item.Kind()), nil
	default:
		return invalidArgument("contains", "cannot search %s", coll.Kind()), nil
	}
}

func stdKeys(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "keys", 1, 1); !ok {
		return bad, nil
	}
	if bad, ok := ExpectKind(ctx, "keys", 0, KindDict); !ok {
		return bad, nil
	}
	return NewArray(ArrayOf(ctx.Arg(0).Dict().Keys()...)), nil
}

func stdValues(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "values", 1, 1); !ok {
		return bad, nil
	}
	if bad, ok := ExpectKind(ctx, "values", 0, KindDict); !ok {
		return bad, nil
	}
	return NewArray(ArrayOf(ctx.Arg(0).Dict().Values()...)), nil
}

func stdRemove(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "remove", 2, 2); !ok {
		return bad, nil
	}
	coll, key := ctx.Arg(0), ctx.Arg(1)
	var (
		value Value
		found bool
	)
	switch coll.Kind() {
	case KindArray:
		if bad, ok := ExpectKind(ctx, "remove", 1, KindInt); !ok {
			return bad, nil
		}
		value, found = coll.Array().Remove(key.Int())
	case KindDict:
		value, found = coll.Dict().Remove(key)
	default:
		return invalidArgument("remove", "cannot remove from %s", coll.Kind()), nil
	}
	if !found {
		return NewError(ErrorFrom(&IndexOutOfBounds{Index: key})), nil
	}
	return value, nil
}

func stdSort(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "sort", 1, 1); !ok {
		return bad, nil
	}
	if bad, ok := ExpectKind(ctx, "sort", 0, KindArray); !ok {
		return bad, nil
	}
	ctx.Arg(0).Array().Sort()
	return NewNil(), nil
}

func stdCopy(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "copy", 1, 1); !ok {
		return bad, nil
	}
	return ctx.Arg(0).Copy(), nil
}

func stdType(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "type", 1, 1); !ok {
		return bad, nil
	}
	return NewString(ctx.Arg(0).Kind().String()), nil
}

func stdToString(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "to_string", 1, 1); !ok {
		return bad, nil
	}
	return NewString(ctx.Arg(0).String()), nil
}

func stdInt(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "int", 1, 1); !ok {
		return bad, nil
	}
	switch v := ctx.Arg(0); v.Kind() {
	case KindInt:
		return v, nil
	case KindByte:
		return NewInt(int64(v.Byte())), nil
	case KindFloat:
		f := math.Trunc(float64(v.Float()))
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return NewError(ErrorOf("float out of integer range", v)), nil
		}
		return NewInt(int64(f)), nil
	case KindString:
		return Result(strconv.ParseInt(strings.TrimSpace(v.str()), 10, 64)), nil
	default:
		return invalidArgument("int", "cannot convert %s to int", v.Kind()), nil
	}
}

func stdFloat(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "float", 1, 1); !ok {
		return bad, nil
	}
	switch v := ctx.Arg(0); v.Kind() {
	case KindFloat:
		return v, nil
	case KindInt:
		return NewFloat(Float(v.Int())), nil
	case KindByte:
		return NewFloat(Float(v.Byte())), nil
	case KindString:
		return Result(strconv.ParseFloat(strings.TrimSpace(v.str()), 64)), nil
	default:
		return invalidArgument("float", "cannot convert %s to float", v.Kind()), nil
	}
}

func stdError(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "error", 1, 2); !ok {
		return bad, nil
	}
	if bad, ok := ExpectKind(ctx, "error", 0, KindString); !ok {
		return bad, nil
	}
	return NewError(ErrorOf(ctx.Arg(0).str(), ctx.Arg(1))), nil
}

func stdIsError(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "is_error", 1, 1); !ok {
		return bad, nil
	}
	return NewBool(ctx.Arg(0).IsError()), nil
}

func stdAssert(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "assert", 1, 2); !ok {
		return bad, nil
	}
	if bad, ok := ExpectKind(ctx, "assert", 0, KindBool); !ok {
		return bad, nil
	}
	if ctx.Arg(0).Bool() {
		return NewNil(), nil
	}
	p := newPanic(PanicAssertionFailed, ctx.Pos, "")
	if len(ctx.Args) > 1 {
		p.Message = ctx.Arg(1).String()
		p.Value = ctx.Arg(1)
	}
	return Value{}, p
}

func stdPanic(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "panic", 1, 1); !ok {
		return bad, nil
	}
	return Value{}, &Panic{Kind: PanicUser, Pos: ctx.Pos, Message: ctx.Arg(0).String(), Value: ctx.Arg(0)}
}

// iteratorResult builds one step of the iterator protocol.
func iteratorResult(value Value, finished bool) Value {
	d := DictOf()
	d.SetString("finished", NewBool(finished))
	if !finished {
		d.SetString("value", value)
	}
	return NewDict(d)
}

// stdRange returns an iterator over from, from+step, ... stopping before to.
func stdRange(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "range", 2, 3); !ok {
		return bad, nil
	}
	for i := range ctx.Args {
		if bad, ok := ExpectKind(ctx, "range", i, KindInt); !ok {
			return bad, nil
		}
	}
	from, to, step := ctx.Arg(0).Int(), ctx.Arg(1).Int(), int64(1)
	if len(ctx.Args) == 3 {
		step = ctx.Arg(2).Int()
	}
	if step == 0 {
		return invalidArgument("range", "step must not be zero"), nil
	}

	current, done := from, false
	return NewFunction(NewNative("range", func(*CallContext) (Value, error) {
		if done || (step > 0 && current >= to) || (step < 0 && current <= to) {
			done = true
			return iteratorResult(Value{}, true), nil
		}
		value := current
		next := current + step
		if (step > 0 && next < current) || (step < 0 && next > current) {
			done = true
		}
		current = next
		return iteratorResult(NewInt(value), false), nil
	})), nil
}

// stdIter wraps a collection in an iterator function, using the same order as for.
func stdIter(ctx *CallContext) (Value, error) {
	if bad, ok := Arity(ctx, "iter", 1, 1); !ok {
		return bad, nil
	}
	coll := ctx.Arg(0)
	if coll.Kind() == KindFunction {
		return coll, nil
	}
	next, err := ctx.Runtime.iterator(coll, ctx.Pos)
	if err != nil {
		return invalidArgument("iter", "cannot iterate over %s", coll.Kind()), nil
	}
	return NewFunction(NewNative("iter", func(*CallContext) (Value, error) {
		value, ok, err := next()
		if err != nil {
			return Value{}, err
		}
		return iteratorResult(value, !ok), nil
	})), nil
}
