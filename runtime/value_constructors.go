package runtime

import "math"

func NewNil() Value { return Value{kind: KindNil} }

func NewBool(b bool) Value {
	if b {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

func NewInt(i int64) Value         { return Value{kind: KindInt, num: uint64(i)} }
func NewFloat(f Float) Value       { return Value{kind: KindFloat, num: math.Float64bits(float64(f))} }
func NewByte(b byte) Value         { return Value{kind: KindByte, num: uint64(b)} }
func NewString(s string) Value     { return Value{kind: KindString, ref: s} }
func NewArray(a *Array) Value      { return Value{kind: KindArray, ref: a} }
func NewDict(d *Dict) Value        { return Value{kind: KindDict, ref: d} }
func NewFunction(f Function) Value { return Value{kind: KindFunction, ref: f} }
func NewError(e *Error) Value      { return Value{kind: KindError, ref: e} }
