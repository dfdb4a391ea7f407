package runtime

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindByte:
		return "byte"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	case KindFunction:
		return "function"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Copy returns a shallow copy of v. Containers get fresh storage holding the same
// element values; everything else is returned as is.
func (v Value) Copy() Value {
	switch v.kind {
	case KindFloat:
		return NewFloat(v.Float().Copy())
	case KindArray:
		return NewArray(v.Array().Copy())
	case KindDict:
		return NewDict(v.Dict().Copy())
	case KindError:
		return NewError(v.Err().Copy())
	default:
		return v
	}
}

// String renders v for display. Strings render raw at the top level and quoted when
// nested inside a container.
func (v Value) String() string {
	if v.kind == KindString {
		return v.str()
	}
	return v.Inspect()
}

// Inspect renders v the way it would be written in a script. Containers already being
// rendered show as [...] or @[...].
func (v Value) Inspect() string {
	var b strings.Builder
	p := &valuePrinter{b: &b, seen: map[any]struct{}{}}
	p.print(v)
	return b.String()
}

type valuePrinter struct {
	b    *strings.Builder
	seen map[any]struct{}
}

func (p *valuePrinter) enter(ref any) bool {
	if _, ok := p.seen[ref]; ok {
		return false
	}
	p.seen[ref] = struct{}{}
	return true
}

func (p *valuePrinter) leave(ref any) {
	delete(p.seen, ref)
}

func (p *valuePrinter) print(v Value) {
	switch v.kind {
	case KindNil:
		p.b.WriteString("nil")
	case KindBool:
		p.b.WriteString(strconv.FormatBool(v.Bool()))
	case KindInt:
		p.b.WriteString(strconv.FormatInt(v.Int(), 10))
	case KindFloat:
		p.b.WriteString(v.Float().String())
	case KindByte:
		p.b.WriteString(quoteByte(v.Byte()))
	case KindString:
		p.b.WriteString(strconv.Quote(v.str()))
	case KindArray:
		arr := v.Array()
		if !p.enter(arr) {
			p.b.WriteString("[...]")
			return
		}
		defer p.leave(arr)
		p.b.WriteByte('[')
		for i, elem := range arr.elems {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.print(elem)
		}
		p.b.WriteByte(']')
	case KindDict:
		d := v.Dict()
		if !p.enter(d) {
			p.b.WriteString("@[...]")
			return
		}
		defer p.leave(d)
		if d.Len() == 0 {
			p.b.WriteString("@[]")
			return
		}
		p.b.WriteString("@[ ")
		for i := range d.keys {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.key(d.keys[i])
			p.b.WriteString(": ")
			p.print(d.values[i])
		}
		p.b.WriteString(" ]")
	case KindFunction:
		if name := v.Function().Name(); name != "" {
			fmt.Fprintf(p.b, "<function %s>", name)
		} else {
			p.b.WriteString("<function>")
		}
	case KindError:
		e := v.Err()
		if !p.enter(e) {
			p.b.WriteString("error(...)")
			return
		}
		defer p.leave(e)
		p.b.WriteString("error: ")
		p.b.WriteString(e.Description())
		if ctx := e.Context(); !ctx.IsNil() {
			p.b.WriteString(" (")
			p.print(ctx)
			p.b.WriteByte(')')
		}
	default:
		fmt.Fprintf(p.b, "<%s>", v.kind)
	}
}

// key prints identifier-like String keys bare, as in dict literals.
func (p *valuePrinter) key(k Value) {
	if k.kind == KindString && isIdentifier(k.str()) {
		p.b.WriteString(k.str())
		return
	}
	p.print(k)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func quoteByte(b byte) string {
	switch b {
	case '\n':
		return `'\n'`
	case '\t':
		return `'\t'`
	case '\r':
		return `'\r'`
	case 0:
		return `'\0'`
	case '\\':
		return `'\\'`
	case '\'':
		return `'\''`
	}
	if b < 0x20 || b >= 0x7f {
		return fmt.Sprintf("'\\x%02x'", b)
	}
	return "'" + string(rune(b)) + "'"
}
