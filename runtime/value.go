// Package runtime holds the value model and the tree-walking evaluator.
//
// Values of kind Nil, Bool, Int, Float and Byte are plain data. String is an immutable
// Go string. Array, Dict, Function and Error are handles: binding or assigning one shares
// the underlying object, and mutation through any holder is visible to all of them.
// Value.Copy produces an observably independent shallow copy.
package runtime

type Kind int

// Kinds are declared in their cross-kind ordering.
const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindByte
	KindString
	KindArray
	KindDict
	KindFunction
	KindError
)

// Value is the closed tagged union of runtime values. The zero Value is Nil.
//
// Scalars live in num (Float as its IEEE bits, so payloads survive); strings and handles
// live in ref.
type Value struct {
	kind Kind
	num  uint64
	ref  any
}

// Default returns the default value, Nil.
func Default() Value { return Value{} }
