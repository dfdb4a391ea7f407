package runtime

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/gahag/hush/symbol"
)

// ValueOf converts a host value. It never panics: values that cannot be represented
// become Error values.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return NewNil()
	case Value:
		return v
	case bool:
		return NewBool(v)
	case int:
		return NewInt(int64(v))
	case int8:
		return NewInt(int64(v))
	case int16:
		return NewInt(int64(v))
	case int32:
		return NewInt(int64(v))
	case int64:
		return NewInt(v)
	case uint8:
		return NewByte(v)
	case uint16:
		return NewInt(int64(v))
	case uint32:
		return NewInt(int64(v))
	case uint:
		return fromUint64(uint64(v))
	case uint64:
		return fromUint64(v)
	case float32:
		return NewFloat(Float(v))
	case float64:
		return NewFloat(Float(v))
	case Float:
		return NewFloat(v)
	case string:
		return NewString(v)
	case []byte:
		return NewString(string(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return NewInt(i)
		}
		f, err := v.Float64()
		if err != nil {
			return NewError(ErrorOf("invalid number", NewString(v.String())))
		}
		return NewFloat(Float(f))
	case []Value:
		return NewArray(ArrayOf(slices.Clone(v)...))
	case []any:
		elems := make([]Value, len(v))
		for i, item := range v {
			elems[i] = ValueOf(item)
		}
		return NewArray(ArrayOf(elems...))
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		d := DictOf()
		for _, key := range keys {
			d.SetString(key, ValueOf(v[key]))
		}
		return NewDict(d)
	case map[any]any:
		type entry struct{ key, value Value }
		entries := make([]entry, 0, len(v))
		for key, item := range v {
			entries = append(entries, entry{ValueOf(key), ValueOf(item)})
		}
		slices.SortFunc(entries, func(a, b entry) int { return Compare(a.key, b.key) })
		d := DictOf()
		for _, e := range entries {
			d.Set(e.key, e.value)
		}
		return NewDict(d)
	case *Array:
		if v == nil {
			return NewNil()
		}
		return NewArray(v)
	case *Dict:
		if v == nil {
			return NewNil()
		}
		return NewDict(v)
	case *Error:
		if v == nil {
			return NewNil()
		}
		return NewError(v)
	case Function:
		return NewFunction(v)
	case error:
		return NewError(ErrorFrom(v))
	case fmt.Stringer:
		return NewString(v.String())
	default:
		return NewError(ErrorOf("unsupported host value", NewString(fmt.Sprintf("%T", x))))
	}
}

func fromUint64(u uint64) Value {
	if u > math.MaxInt64 {
		return NewError(ErrorOf("integer out of range", NewString(strconv.FormatUint(u, 10))))
	}
	return NewInt(int64(u))
}

// Optional maps a missing value to Nil regardless of T.
func Optional[T any](v T, ok bool) Value {
	if !ok {
		return NewNil()
	}
	return ValueOf(v)
}

// FromPtr maps a nil pointer to Nil and otherwise converts the pointee.
func FromPtr[T any](p *T) Value {
	if p == nil {
		return NewNil()
	}
	return ValueOf(*p)
}

// Result maps a failed host result to an Error value, never a Panic.
func Result[T any](v T, err error) Value {
	if err != nil {
		return NewError(ErrorFrom(err))
	}
	return ValueOf(v)
}

// hostOptions controls ToHost for the different codecs.
type hostOptions struct {
	// anyKeys allows dicts with non String keys, producing map[any]any.
	anyKeys bool
}

// toHost converts v into plain Go data for an encoder. Cycles, functions and
// unsupported keys are errors.
func toHost(v Value, in *symbol.Interner, opts hostOptions) (any, error) {
	state := &hostState{in: in, opts: opts, seen: map[any]struct{}{}}
	return state.convert(v)
}

type hostState struct {
	in   *symbol.Interner
	opts hostOptions
	seen map[any]struct{}
}

func (s *hostState) enter(ref any) error {
	if _, ok := s.seen[ref]; ok {
		return fmt.Errorf("cannot encode cyclic value")
	}
	s.seen[ref] = struct{}{}
	return nil
}

func (s *hostState) convert(v Value) (any, error) {
	switch v.kind {
	case KindNil:
		return nil, nil
	case KindBool:
		return v.Bool(), nil
	case KindInt:
		return v.Int(), nil
	case KindFloat:
		return float64(v.Float()), nil
	case KindByte:
		return int64(v.Byte()), nil
	case KindString:
		return v.str(), nil
	case KindArray:
		arr := v.Array()
		if err := s.enter(arr); err != nil {
			return nil, err
		}
		defer delete(s.seen, arr)
		out := make([]any, len(arr.elems))
		for i, elem := range arr.elems {
			converted, err := s.convert(elem)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case KindDict:
		d := v.Dict()
		if err := s.enter(d); err != nil {
			return nil, err
		}
		defer delete(s.seen, d)
		if s.opts.anyKeys {
			out := make(map[any]any, d.Len())
			for i := range d.keys {
				key, err := s.convert(d.keys[i])
				if err != nil {
					return nil, err
				}
				if !isHashableHost(key) {
					return nil, fmt.Errorf("cannot encode dict key %s", d.keys[i].Inspect())
				}
				value, err := s.convert(d.values[i])
				if err != nil {
					return nil, err
				}
				out[key] = value
			}
			return out, nil
		}
		out := make(map[string]any, d.Len())
		for i := range d.keys {
			if d.keys[i].kind != KindString {
				return nil, fmt.Errorf("cannot encode dict key %s, keys must be strings", d.keys[i].Inspect())
			}
			value, err := s.convert(d.values[i])
			if err != nil {
				return nil, err
			}
			out[d.keys[i].str()] = value
		}
		return out, nil
	case KindError:
		e := v.Err()
		if err := s.enter(e); err != nil {
			return nil, err
		}
		defer delete(s.seen, e)
		out := make(map[string]any, e.Len())
		for i := range e.keys {
			value, err := s.convert(e.values[i])
			if err != nil {
				return nil, err
			}
			out[s.in.Name(e.keys[i])] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot encode %s value", v.kind)
	}
}

func isHashableHost(x any) bool {
	switch x.(type) {
	case nil, bool, int64, float64, string:
		return true
	default:
		return false
	}
}
