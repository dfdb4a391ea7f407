package runtime

import (
	"math"

	"github.com/gahag/hush/program"
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
	"github.com/gahag/hush/syntax"
)

func unaryOp(op syntax.Operator, operand Value, pos source.Pos) (Value, error) {
	switch op {
	case syntax.OpNot:
		if operand.Kind() != KindBool {
			return Value{}, newPanic(PanicTypeError, pos, "operand of 'not' must be bool, got %s", operand.Kind())
		}
		return NewBool(!operand.Bool()), nil
	case syntax.OpNegate:
		switch operand.Kind() {
		case KindInt:
			if operand.Int() == math.MinInt64 {
				return Value{}, newPanic(PanicIntegerOverflow, pos, "cannot negate %d", operand.Int())
			}
			return NewInt(-operand.Int()), nil
		case KindFloat:
			return NewFloat(-operand.Float()), nil
		}
		return Value{}, newPanic(PanicInvalidOperand, pos, "cannot negate %s", operand.Kind())
	default:
		return Value{}, newPanic(PanicInvalidOperand, pos, "unknown unary operator %s", op)
	}
}

func (r *Runtime) evalBinary(e *program.Binary, f *frame) (Value, error) {
	left, err := r.eval(e.Left, f)
	if err != nil {
		return Value{}, err
	}

	if e.Op == syntax.OpAnd || e.Op == syntax.OpOr {
		if left.Kind() != KindBool {
			return Value{}, newPanic(PanicTypeError, e.Left.Pos(), "operand of '%s' must be bool, got %s", e.Op, left.Kind())
		}
		if left.Bool() == (e.Op == syntax.OpOr) {
			return left, nil
		}
		right, err := r.eval(e.Right, f)
		if err != nil {
			return Value{}, err
		}
		if right.Kind() != KindBool {
			return Value{}, newPanic(PanicTypeError, e.Right.Pos(), "operand of '%s' must be bool, got %s", e.Op, right.Kind())
		}
		return right, nil
	}

	right, err := r.eval(e.Right, f)
	if err != nil {
		return Value{}, err
	}
	return binaryOp(e.Op, left, right, e.At)
}

func binaryOp(op syntax.Operator, left, right Value, pos source.Pos) (Value, error) {
	switch op {
	case syntax.OpEquals:
		return NewBool(Equal(left, right)), nil
	case syntax.OpNotEquals:
		return NewBool(!Equal(left, right)), nil
	case syntax.OpLower, syntax.OpLowerEquals, syntax.OpGreater, syntax.OpGreaterEquals:
		return ordering(op, left, right, pos)
	case syntax.OpConcat:
		return concat(left, right, pos)
	case syntax.OpPlus, syntax.OpMinus, syntax.OpTimes, syntax.OpDivide, syntax.OpModulo:
		if left.Kind() != right.Kind() {
			return Value{}, invalidOperands(op, left, right, pos)
		}
		switch left.Kind() {
		case KindInt:
			return intArithmetic(op, left.Int(), right.Int(), pos)
		case KindFloat:
			return floatArithmetic(op, left.Float(), right.Float()), nil
		}
		return Value{}, invalidOperands(op, left, right, pos)
	default:
		return Value{}, newPanic(PanicInvalidOperand, pos, "unknown binary operator %s", op)
	}
}

func invalidOperands(op syntax.Operator, left, right Value, pos source.Pos) *Panic {
	return newPanic(PanicInvalidOperand, pos, "cannot apply '%s' to %s and %s", op, left.Kind(), right.Kind())
}

func ordering(op syntax.Operator, left, right Value, pos source.Pos) (Value, error) {
	if left.Kind() != right.Kind() {
		return Value{}, invalidOperands(op, left, right, pos)
	}
	switch left.Kind() {
	case KindInt, KindFloat, KindByte, KindString:
	default:
		return Value{}, invalidOperands(op, left, right, pos)
	}

	c := Compare(left, right)
	switch op {
	case syntax.OpLower:
		return NewBool(c < 0), nil
	case syntax.OpLowerEquals:
		return NewBool(c <= 0), nil
	case syntax.OpGreater:
		return NewBool(c > 0), nil
	default:
		return NewBool(c >= 0), nil
	}
}

func concat(left, right Value, pos source.Pos) (Value, error) {
	switch {
	case left.Kind() == KindString && right.Kind() == KindString:
		return NewString(left.str() + right.str()), nil
	case left.Kind() == KindArray && right.Kind() == KindArray:
		return NewArray(left.Array().Concat(right.Array())), nil
	default:
		return Value{}, invalidOperands(syntax.OpConcat, left, right, pos)
	}
}

func intArithmetic(op syntax.Operator, a, b int64, pos source.Pos) (Value, error) {
	overflow := func() (Value, error) {
		return Value{}, newPanic(PanicIntegerOverflow, pos, "%d %s %d overflows", a, op, b)
	}

	switch op {
	case syntax.OpPlus:
		sum := a + b
		if (a^sum)&(b^sum) < 0 {
			return overflow()
		}
		return NewInt(sum), nil
	case syntax.OpMinus:
		diff := a - b
		if (a^b)&(a^diff) < 0 {
			return overflow()
		}
		return NewInt(diff), nil
	case syntax.OpTimes:
		if a == 0 || b == 0 {
			return NewInt(0), nil
		}
		product := a * b
		if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return overflow()
		}
		return NewInt(product), nil
	case syntax.OpDivide:
		if b == 0 {
			return Value{}, newPanic(PanicDivisionByZero, pos, "%d / 0", a)
		}
		if a == math.MinInt64 && b == -1 {
			return overflow()
		}
		return NewInt(a / b), nil
	default:
		if b == 0 {
			return Value{}, newPanic(PanicDivisionByZero, pos, "%d %% 0", a)
		}
		return NewInt(a % b), nil
	}
}

func floatArithmetic(op syntax.Operator, a, b Float) Value {
	switch op {
	case syntax.OpPlus:
		return NewFloat(a + b)
	case syntax.OpMinus:
		return NewFloat(a - b)
	case syntax.OpTimes:
		return NewFloat(a * b)
	case syntax.OpDivide:
		return NewFloat(a / b)
	default:
		return NewFloat(Float(math.Mod(float64(a), float64(b))))
	}
}

func (r *Runtime) index(object, key Value, pos source.Pos) (Value, error) {
	switch object.Kind() {
	case KindArray:
		if key.Kind() != KindInt {
			return Value{}, newPanic(PanicTypeError, pos, "array index must be int, got %s", key.Kind())
		}
		arr := object.Array()
		value, ok := arr.Get(key.Int())
		if !ok {
			return Value{}, newPanic(PanicIndexOutOfBounds, pos, "index %d out of bounds for array of length %d", key.Int(), arr.Len())
		}
		return value, nil
	case KindString:
		if key.Kind() != KindInt {
			return Value{}, newPanic(PanicTypeError, pos, "string index must be int, got %s", key.Kind())
		}
		s, i := object.str(), key.Int()
		if i < 0 || i >= int64(len(s)) {
			return Value{}, newPanic(PanicIndexOutOfBounds, pos, "index %d out of bounds for string of length %d", i, len(s))
		}
		return NewByte(s[i]), nil
	case KindDict:
		value, ok := object.Dict().Get(key)
		if !ok {
			return Value{}, newPanic(PanicIndexOutOfBounds, pos, "key %s not found", key.Inspect())
		}
		return value, nil
	case KindError:
		sym, err := r.errorKey(key, pos)
		if err != nil {
			return Value{}, err
		}
		value, ok := object.Err().Get(sym)
		if !ok {
			return Value{}, newPanic(PanicIndexOutOfBounds, pos, "error has no field %s", key.Inspect())
		}
		return value, nil
	default:
		return Value{}, newPanic(PanicTypeError, pos, "cannot index %s", object.Kind())
	}
}

func (r *Runtime) setIndex(object, key, value Value, pos source.Pos) error {
	switch object.Kind() {
	case KindArray:
		if key.Kind() != KindInt {
			return newPanic(PanicTypeError, pos, "array index must be int, got %s", key.Kind())
		}
		arr := object.Array()
		if !arr.Set(key.Int(), value) {
			return newPanic(PanicIndexOutOfBounds, pos, "index %d out of bounds for array of length %d", key.Int(), arr.Len())
		}
		return nil
	case KindDict:
		object.Dict().Set(key, value)
		return nil
	case KindError:
		if key.Kind() != KindString {
			return newPanic(PanicTypeError, pos, "error field must be string, got %s", key.Kind())
		}
		object.Err().Set(r.in.GetOrIntern(key.str()), value)
		return nil
	default:
		return newPanic(PanicTypeError, pos, "cannot assign into %s", object.Kind())
	}
}

// errorKey resolves a String key to an error field symbol without interning it.
func (r *Runtime) errorKey(key Value, pos source.Pos) (symbol.Symbol, error) {
	if key.Kind() != KindString {
		return symbol.Invalid, newPanic(PanicTypeError, pos, "error field must be string, got %s", key.Kind())
	}
	sym, ok := r.in.Get(key.str())
	if !ok {
		return symbol.Invalid, newPanic(PanicIndexOutOfBounds, pos, "error has no field %s", key.Inspect())
	}
	return sym, nil
}

func (r *Runtime) execFor(s *program.For, f *frame) (Value, flow, error) {
	iterable, err := r.eval(s.Iterable, f)
	if err != nil {
		return Value{}, flowNormal, err
	}

	next, err := r.iterator(iterable, s.Iterable.Pos())
	if err != nil {
		return Value{}, flowNormal, err
	}

	for {
		item, ok, err := next()
		if err != nil {
			return Value{}, flowNormal, err
		}
		if !ok {
			return NewNil(), flowNormal, nil
		}
		f.slots[s.Index] = item
		value, fl, err := r.execBlock(s.Body, f)
		if err != nil || fl == flowReturn {
			return value, fl, err
		}
		if fl == flowBreak {
			return NewNil(), flowNormal, nil
		}
	}
}

type iterFunc func() (Value, bool, error)

// iterator walks arrays by live index, strings by byte, dicts over a snapshot of their
// keys, and calls iterator functions until they report finished.
func (r *Runtime) iterator(iterable Value, pos source.Pos) (iterFunc, error) {
	switch iterable.Kind() {
	case KindArray:
		arr, i := iterable.Array(), int64(0)
		return func() (Value, bool, error) {
			value, ok := arr.Get(i)
			i++
			return value, ok, nil
		}, nil
	case KindString:
		s, i := iterable.str(), 0
		return func() (Value, bool, error) {
			if i >= len(s) {
				return Value{}, false, nil
			}
			i++
			return NewByte(s[i-1]), true, nil
		}, nil
	case KindDict:
		keys, i := iterable.Dict().Keys(), 0
		return func() (Value, bool, error) {
			if i >= len(keys) {
				return Value{}, false, nil
			}
			i++
			return keys[i-1], true, nil
		}, nil
	case KindFunction:
		return func() (Value, bool, error) {
			step, err := r.call(iterable, NewNil(), nil, pos)
			if err != nil {
				return Value{}, false, err
			}
			return iteratorStep(step, pos)
		}, nil
	default:
		return nil, newPanic(PanicTypeError, pos, "cannot iterate over %s", iterable.Kind())
	}
}

// iteratorStep decodes the @[finished: bool, value: any] protocol.
func iteratorStep(step Value, pos source.Pos) (Value, bool, error) {
	d := step.Dict()
	if d == nil {
		return Value{}, false, newPanic(PanicTypeError, pos, "iterator must return a dict, got %s", step.Kind())
	}
	finished, _ := d.GetString("finished")
	if finished.Kind() != KindBool {
		return Value{}, false, newPanic(PanicTypeError, pos, "iterator field 'finished' must be bool, got %s", finished.Kind())
	}
	if finished.Bool() {
		return Value{}, false, nil
	}
	value, _ := d.GetString("value")
	return value, true, nil
}
