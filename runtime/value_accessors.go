package runtime

import "math"

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

// IsError reports whether v is a language level Error value.
func (v Value) IsError() bool { return v.kind == KindError }

func (v Value) Bool() bool {
	return v.kind == KindBool && v.num != 0
}

func (v Value) Int() int64 {
	if v.kind == KindInt {
		return int64(v.num)
	}
	return 0
}

func (v Value) Float() Float {
	if v.kind == KindFloat {
		return Float(math.Float64frombits(v.num))
	}
	return 0
}

func (v Value) Byte() byte {
	if v.kind == KindByte {
		return byte(v.num)
	}
	return 0
}

func (v Value) Array() *Array {
	if v.kind != KindArray {
		return nil
	}
	return v.ref.(*Array)
}

func (v Value) Dict() *Dict {
	if v.kind != KindDict {
		return nil
	}
	return v.ref.(*Dict)
}

func (v Value) Function() Function {
	if v.kind != KindFunction {
		return nil
	}
	return v.ref.(Function)
}

// Err returns the Error payload of an Error value.
func (v Value) Err() *Error {
	if v.kind != KindError {
		return nil
	}
	return v.ref.(*Error)
}

// str is the payload of a String value.
func (v Value) str() string {
	if v.kind != KindString {
		return ""
	}
	return v.ref.(string)
}
