package runtime

import "slices"

// Dict is a mutable mapping from values to values that remembers insertion order.
// Keys are located through Hash and confirmed with Equal; mutating a container after
// using it as a key leaves the dict in an unspecified state.
type Dict struct {
	keys   []Value
	values []Value
	index  map[uint64][]int
}

func DictOf() *Dict {
	return &Dict{index: make(map[uint64][]int)}
}

func (d *Dict) Len() int { return len(d.keys) }

func (d *Dict) find(key Value) (int, uint64) {
	h := key.Hash()
	for _, i := range d.index[h] {
		if Equal(d.keys[i], key) {
			return i, h
		}
	}
	return -1, h
}

func (d *Dict) Get(key Value) (Value, bool) {
	i, _ := d.find(key)
	if i < 0 {
		return Value{}, false
	}
	return d.values[i], true
}

func (d *Dict) Has(key Value) bool {
	i, _ := d.find(key)
	return i >= 0
}

// Set inserts or overwrites key. Overwriting keeps the original position.
func (d *Dict) Set(key, value Value) {
	i, h := d.find(key)
	if i >= 0 {
		d.values[i] = value
		return
	}
	if d.index == nil {
		d.index = make(map[uint64][]int)
	}
	d.index[h] = append(d.index[h], len(d.keys))
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
}

// SetString is Set with a String key.
func (d *Dict) SetString(key string, value Value) {
	d.Set(NewString(key), value)
}

func (d *Dict) GetString(key string) (Value, bool) {
	return d.Get(NewString(key))
}

func (d *Dict) Remove(key Value) (Value, bool) {
	i, _ := d.find(key)
	if i < 0 {
		return Value{}, false
	}
	value := d.values[i]
	d.keys = slices.Delete(d.keys, i, i+1)
	d.values = slices.Delete(d.values, i, i+1)
	d.reindex()
	return value, true
}

func (d *Dict) reindex() {
	clear(d.index)
	for i, key := range d.keys {
		h := key.Hash()
		d.index[h] = append(d.index[h], i)
	}
}

// Keys returns a snapshot of the keys in insertion order.
func (d *Dict) Keys() []Value {
	return slices.Clone(d.keys)
}

// Values returns a snapshot of the values in insertion order.
func (d *Dict) Values() []Value {
	return slices.Clone(d.values)
}

// Each calls fn for every entry in insertion order until fn returns false.
func (d *Dict) Each(fn func(key, value Value) bool) {
	for i := range d.keys {
		if !fn(d.keys[i], d.values[i]) {
			return
		}
	}
}

// Copy returns a new dict with the same entries.
func (d *Dict) Copy() *Dict {
	index := make(map[uint64][]int, len(d.index))
	for h, slots := range d.index {
		index[h] = slices.Clone(slots)
	}
	return &Dict{keys: slices.Clone(d.keys), values: slices.Clone(d.values), index: index}
}

// sortedEntries returns the entry positions ordered by key.
func (d *Dict) sortedEntries() []int {
	order := make([]int, len(d.keys))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return Compare(d.keys[a], d.keys[b])
	})
	return order
}
