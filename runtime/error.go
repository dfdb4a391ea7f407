package runtime

import (
	"errors"
	"slices"

	"github.com/gahag/hush/symbol"
)

// Error is the payload of an Error value: an ordered table of fields keyed by symbol.
// Every error carries a description; context and cause are conventional.
type Error struct {
	keys   []symbol.Symbol
	values []Value
}

// HushError is implemented by host errors that choose their own Error shape.
type HushError interface {
	HushError() *Error
}

// ErrorOf builds an error with a description and a context value.
func ErrorOf(description string, context Value) *Error {
	e := &Error{}
	e.Set(symbol.Description, NewString(description))
	e.Set(symbol.Context, context)
	return e
}

// ErrorFrom converts any Go error. Errors implementing HushError convert themselves;
// the wrapped chain of other errors becomes a chain of cause fields.
func ErrorFrom(err error) *Error {
	if err == nil {
		return nil
	}
	if he, ok := err.(HushError); ok {
		return he.HushError()
	}

	e := ErrorOf(err.Error(), NewNil())
	if cause := errors.Unwrap(err); cause != nil {
		e.Set(symbol.Cause, NewError(ErrorFrom(cause)))
	}
	return e
}

func (e *Error) Get(key symbol.Symbol) (Value, bool) {
	i := slices.Index(e.keys, key)
	if i < 0 {
		return Value{}, false
	}
	return e.values[i], true
}

func (e *Error) Set(key symbol.Symbol, value Value) {
	if i := slices.Index(e.keys, key); i >= 0 {
		e.values[i] = value
		return
	}
	e.keys = append(e.keys, key)
	e.values = append(e.values, value)
}

func (e *Error) Len() int { return len(e.keys) }

// Description returns the description field when it is a String.
func (e *Error) Description() string {
	if v, ok := e.Get(symbol.Description); ok && v.Kind() == KindString {
		return v.str()
	}
	return ""
}

func (e *Error) Context() Value {
	v, _ := e.Get(symbol.Context)
	return v
}

// Each visits the fields in insertion order until fn returns false.
func (e *Error) Each(fn func(key symbol.Symbol, value Value) bool) {
	for i := range e.keys {
		if !fn(e.keys[i], e.values[i]) {
			return
		}
	}
}

// Copy returns an error with a fresh field table.
func (e *Error) Copy() *Error {
	return &Error{keys: slices.Clone(e.keys), values: slices.Clone(e.values)}
}

func (e *Error) sortedFields() []int {
	order := make([]int, len(e.keys))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return int(e.keys[a]) - int(e.keys[b])
	})
	return order
}
