package runtime

import (
	"cmp"
	"encoding/binary"
	"strings"

	"github.com/zeebo/xxh3"
)

// Compare is the total order over values: kinds order by their tag, then by content.
func Compare(a, b Value) int {
	return new(comparer).compare(a, b)
}

// Equal is value equality, consistent with Compare and Hash.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// handlePair identifies one pair of containers under comparison.
type handlePair struct {
	x, y any
}

// comparer remembers container pairs it has entered. Meeting a pair again means
// either a cycle, where the pair is assumed equal until a difference shows up, or
// shared structure already found equal. Any difference ends the whole walk, so a
// recorded pair never hides one.
type comparer struct {
	visited map[handlePair]struct{}
}

func (c *comparer) enter(x, y any) bool {
	key := handlePair{x, y}
	if _, ok := c.visited[key]; ok {
		return false
	}
	if c.visited == nil {
		c.visited = make(map[handlePair]struct{})
	}
	c.visited[key] = struct{}{}
	return true
}

func (c *comparer) compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}

	switch a.kind {
	case KindNil:
		return 0
	case KindBool, KindByte:
		return cmp.Compare(a.num, b.num)
	case KindInt:
		return cmp.Compare(a.Int(), b.Int())
	case KindFloat:
		return a.Float().Compare(b.Float())
	case KindString:
		return strings.Compare(a.str(), b.str())
	case KindArray:
		x, y := a.Array(), b.Array()
		if x == y || !c.enter(x, y) {
			return 0
		}
		for i := 0; i < len(x.elems) && i < len(y.elems); i++ {
			if r := c.compare(x.elems[i], y.elems[i]); r != 0 {
				return r
			}
		}
		return cmp.Compare(len(x.elems), len(y.elems))
	case KindDict:
		x, y := a.Dict(), b.Dict()
		if x == y || !c.enter(x, y) {
			return 0
		}
		xs, ys := x.sortedEntries(), y.sortedEntries()
		for i := 0; i < len(xs) && i < len(ys); i++ {
			if r := c.compare(x.keys[xs[i]], y.keys[ys[i]]); r != 0 {
				return r
			}
			if r := c.compare(x.values[xs[i]], y.values[ys[i]]); r != 0 {
				return r
			}
		}
		return cmp.Compare(len(xs), len(ys))
	case KindFunction:
		return cmp.Compare(a.Function().functionID(), b.Function().functionID())
	case KindError:
		x, y := a.Err(), b.Err()
		if x == y || !c.enter(x, y) {
			return 0
		}
		xs, ys := x.sortedFields(), y.sortedFields()
		for i := 0; i < len(xs) && i < len(ys); i++ {
			if r := cmp.Compare(x.keys[xs[i]], y.keys[ys[i]]); r != 0 {
				return r
			}
			if r := c.compare(x.values[xs[i]], y.values[ys[i]]); r != 0 {
				return r
			}
		}
		return cmp.Compare(len(xs), len(ys))
	default:
		return 0
	}
}

// Hash is consistent with Equal: equal values hash equally. Only the top-level
// container is walked. Nested containers contribute their kind and size, which
// equal values share however their cycles are unrolled.
func (v Value) Hash() uint64 {
	switch v.kind {
	case KindArray:
		elems := v.Array().elems
		words := make([]uint64, len(elems))
		for i, elem := range elems {
			words[i] = shallowHash(elem)
		}
		return hashWords(KindArray, words...)
	case KindDict:
		// Entry hashes are summed so that insertion order does not matter.
		d := v.Dict()
		var sum uint64
		for i := range d.keys {
			sum += hashWords(KindDict, shallowHash(d.keys[i]), shallowHash(d.values[i]))
		}
		return hashWords(KindDict, uint64(len(d.keys)), sum)
	case KindError:
		e := v.Err()
		var sum uint64
		for i := range e.keys {
			sum += hashWords(KindError, uint64(e.keys[i]), shallowHash(e.values[i]))
		}
		return hashWords(KindError, uint64(len(e.keys)), sum)
	default:
		return shallowHash(v)
	}
}

func shallowHash(v Value) uint64 {
	switch v.kind {
	case KindNil:
		return hashWords(KindNil)
	case KindBool, KindInt, KindByte:
		return hashWords(v.kind, v.num)
	case KindFloat:
		return hashWords(KindFloat, v.Float().hashBits())
	case KindString:
		return hashWords(KindString, xxh3.HashString(v.str()))
	case KindArray:
		return hashWords(KindArray, uint64(v.Array().Len()))
	case KindDict:
		return hashWords(KindDict, uint64(len(v.Dict().keys)))
	case KindFunction:
		return hashWords(KindFunction, v.Function().functionID())
	case KindError:
		return hashWords(KindError, uint64(len(v.Err().keys)))
	default:
		return 0
	}
}

func hashWords(kind Kind, words ...uint64) uint64 {
	buf := make([]byte, 8*(len(words)+1))
	binary.LittleEndian.PutUint64(buf, uint64(kind))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[8*(i+1):], w)
	}
	return xxh3.Hash(buf)
}
