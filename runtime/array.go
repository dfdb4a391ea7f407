package runtime

import "slices"

// Array is a mutable sequence of values shared by every Value holding it.
type Array struct {
	elems []Value
}

// ArrayOf returns an array owning elems.
func ArrayOf(elems ...Value) *Array {
	return &Array{elems: elems}
}

func (a *Array) Len() int { return len(a.elems) }

func (a *Array) Get(i int64) (Value, bool) {
	if i < 0 || i >= int64(len(a.elems)) {
		return Value{}, false
	}
	return a.elems[i], true
}

func (a *Array) Set(i int64, v Value) bool {
	if i < 0 || i >= int64(len(a.elems)) {
		return false
	}
	a.elems[i] = v
	return true
}

func (a *Array) Push(v Value) {
	a.elems = append(a.elems, v)
}

func (a *Array) Pop() (Value, bool) {
	n := len(a.elems)
	if n == 0 {
		return Value{}, false
	}
	v := a.elems[n-1]
	a.elems[n-1] = Value{}
	a.elems = a.elems[:n-1]
	return v, true
}

func (a *Array) Remove(i int64) (Value, bool) {
	v, ok := a.Get(i)
	if !ok {
		return Value{}, false
	}
	a.elems = slices.Delete(a.elems, int(i), int(i)+1)
	return v, true
}

// Elements returns a snapshot of the elements.
func (a *Array) Elements() []Value {
	return slices.Clone(a.elems)
}

// Sort orders the elements by Compare. The sort is stable.
func (a *Array) Sort() {
	slices.SortStableFunc(a.elems, Compare)
}

func (a *Array) Contains(v Value) bool {
	return slices.ContainsFunc(a.elems, func(e Value) bool { return Equal(e, v) })
}

// Copy returns a new array holding the same element values.
func (a *Array) Copy() *Array {
	return &Array{elems: slices.Clone(a.elems)}
}

// Concat returns a new array with the elements of a followed by those of b.
func (a *Array) Concat(b *Array) *Array {
	elems := make([]Value, 0, len(a.elems)+len(b.elems))
	elems = append(elems, a.elems...)
	elems = append(elems, b.elems...)
	return &Array{elems: elems}
}
