package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Float is a float64 with a total order: every NaN equals every other NaN and is
// greater than all other floats, and -0 equals +0.
type Float float64

// canonicalNaN is the bit pattern every NaN hashes as.
const canonicalNaN = 0x7ff8000000000001

// Copy returns f with its bits untouched, NaN payloads included.
func (f Float) Copy() Float {
	return Float(math.Float64frombits(math.Float64bits(float64(f))))
}

func (f Float) IsNaN() bool {
	return math.IsNaN(float64(f))
}

func (f Float) Compare(other Float) int {
	a, b := float64(f), float64(other)
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (f Float) Equal(other Float) bool {
	return f.Compare(other) == 0
}

// hashBits normalizes f so that equal floats share a representation.
func (f Float) hashBits() uint64 {
	switch {
	case f.IsNaN():
		return canonicalNaN
	case f == 0:
		return 0
	default:
		return math.Float64bits(float64(f))
	}
}

func (f Float) String() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
